package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"

	"github.com/MattiooFR/1pic1day/config"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingAuthHeader   = errors.New("authorization header is expected")
	ErrMalformedAuthHeader = errors.New("authorization header must be a bearer token")
	ErrKeyNotFound         = errors.New("unable to find the appropriate key")
	ErrTokenExpired        = errors.New("token expired")
	ErrInvalidClaims       = errors.New("incorrect claims, check the audience and issuer")
	ErrMalformedToken      = errors.New("unable to parse authentication token")
	ErrPermissionsMissing  = errors.New("permissions not included in token")
	ErrPermissionDenied    = errors.New("permission not found")
)

// Claims is the verified payload of an access token
type Claims struct {
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// Check verifies the required permission is granted. A token carrying no
// permissions claim at all is a different failure than one whose list just
// lacks the permission.
func (c *Claims) Check(permission string) error {
	if c.Permissions == nil {
		return ErrPermissionsMissing
	}
	for _, p := range c.Permissions {
		if p == permission {
			return nil
		}
	}
	return ErrPermissionDenied
}

// GetBearerToken extracts the token from an Authorization header value,
// which must be exactly "Bearer <token>"
func GetBearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingAuthHeader
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrMalformedAuthHeader
	}
	return parts[1], nil
}

type jsonWebKey struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type KeySet struct {
	Keys []jsonWebKey `json:"keys"`
}

func (ks *KeySet) rsaKey(kid string) (*rsa.PublicKey, error) {
	for _, key := range ks.Keys {
		if key.Kid != kid {
			continue
		}
		n, err := base64.RawURLEncoding.DecodeString(key.N)
		if err != nil {
			return nil, ErrMalformedToken
		}
		e, err := base64.RawURLEncoding.DecodeString(key.E)
		if err != nil {
			return nil, ErrMalformedToken
		}
		return &rsa.PublicKey{
			N: new(big.Int).SetBytes(n),
			E: int(new(big.Int).SetBytes(e).Int64()),
		}, nil
	}
	return nil, ErrKeyNotFound
}

// FetchKeySet downloads the tenant's current signing keys. Called on every
// verification, no caching.
func FetchKeySet(ctx context.Context) (*KeySet, error) {
	url := "https://" + config.AUTH0_DOMAIN + "/.well-known/jwks.json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jwks fetch: unexpected status %d", resp.StatusCode)
	}
	keySet := &KeySet{}
	if err := json.NewDecoder(resp.Body).Decode(keySet); err != nil {
		return nil, err
	}
	return keySet, nil
}

// VerifyToken fetches the tenant keys and verifies the token against them
func VerifyToken(ctx context.Context, token string) (*Claims, error) {
	keySet, err := FetchKeySet(ctx)
	if err != nil {
		return nil, err
	}
	return VerifyTokenWithKeySet(token, keySet)
}

// VerifyTokenWithKeySet checks signature, audience and issuer and returns
// the verified claims
func VerifyTokenWithKeySet(token string, keySet *KeySet) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithAudience(config.API_AUDIENCE),
		jwt.WithIssuer("https://"+config.AUTH0_DOMAIN+"/"),
	)
	_, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, ErrMalformedToken
		}
		return keySet.rsaKey(kid)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrKeyNotFound):
			return nil, ErrKeyNotFound
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenInvalidAudience),
			errors.Is(err, jwt.ErrTokenInvalidIssuer),
			errors.Is(err, jwt.ErrTokenInvalidClaims):
			return nil, ErrInvalidClaims
		default:
			return nil, ErrMalformedToken
		}
	}
	return claims, nil
}
