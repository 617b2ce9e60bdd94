package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/MattiooFR/1pic1day/config"

	"golang.org/x/oauth2"
)

// OAuthConfig builds the authorization-code flow configuration for the
// Auth0 tenant
func OAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.AUTH0_CLIENT_ID,
		ClientSecret: config.AUTH0_CLIENT_SECRET,
		RedirectURL:  config.AUTH0_CALLBACK_URL,
		Scopes:       []string{"openid", "profile", "email"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://" + config.AUTH0_DOMAIN + "/authorize",
			TokenURL: "https://" + config.AUTH0_DOMAIN + "/oauth/token",
		},
	}
}

// AuthCodeURL is the provider login URL the visitor is redirected to. The
// audience parameter makes Auth0 issue an access token our API accepts.
func AuthCodeURL(conf *oauth2.Config, state string) string {
	return conf.AuthCodeURL(state, oauth2.SetAuthURLParam("audience", config.API_AUDIENCE))
}

// UserInfo is the identity returned by the provider's userinfo endpoint
type UserInfo struct {
	Subject string `json:"sub"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

func FetchUserInfo(ctx context.Context, conf *oauth2.Config, token *oauth2.Token) (*UserInfo, error) {
	client := conf.Client(ctx, token)
	resp, err := client.Get("https://" + config.AUTH0_DOMAIN + "/userinfo")
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch userinfo: unexpected status %d", resp.StatusCode)
	}
	info := &UserInfo{}
	if err := json.NewDecoder(resp.Body).Decode(info); err != nil {
		return nil, err
	}
	return info, nil
}

// LogoutURL is the provider endpoint that clears the Auth0 session and
// bounces the visitor back to us
func LogoutURL(returnTo string) string {
	params := url.Values{}
	params.Set("returnTo", returnTo)
	params.Set("client_id", config.AUTH0_CLIENT_ID)
	return "https://" + config.AUTH0_DOMAIN + "/v2/logout?" + params.Encode()
}
