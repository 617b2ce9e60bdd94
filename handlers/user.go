package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/MattiooFR/1pic1day/auth"
	"github.com/MattiooFR/1pic1day/config"
	"github.com/MattiooFR/1pic1day/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func Home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.tmpl", pageData(c, nil))
}

// Login redirects the visitor to the identity provider's login page
func Login(c *gin.Context) {
	session := auth.LoadSession(c)
	state := uuid.NewString()
	session.SetOAuthState(state)
	c.Redirect(http.StatusFound, auth.AuthCodeURL(auth.OAuthConfig(), state))
}

// AuthCallback handles the response from the provider's token endpoint:
// code exchange, userinfo fetch, lazy local user creation, session login
func AuthCallback(c *gin.Context) {
	session := auth.LoadSession(c)
	if state := c.Query("state"); state == "" || state != session.PopOAuthState() {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false, "error": http.StatusBadRequest, "message": "invalid state",
		})
		return
	}
	conf := auth.OAuthConfig()
	token, err := conf.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		log.Printf("Token exchange failed: %v", err)
		session.Flash("An error occurred. Could not login !")
		c.Redirect(http.StatusFound, "/")
		return
	}
	info, err := auth.FetchUserInfo(c.Request.Context(), conf, token)
	if err != nil {
		log.Printf("Userinfo fetch failed: %v", err)
		session.Flash("An error occurred. Could not login !")
		c.Redirect(http.StatusFound, "/")
		return
	}
	user, err := models.UserFromIdentity(info.Name, info.Email, info.Subject, info.Picture)
	if err != nil {
		log.Printf("User create failed: %v", err)
		session.Flash("An error occurred. Could not login !")
		c.Redirect(http.StatusFound, "/")
		return
	}
	session.LogInUser(auth.Profile{
		Subject: info.Subject,
		Name:    info.Name,
		Picture: info.Picture,
	}, token.AccessToken)
	session.Flash("Hello " + strings.Split(user.Name, " ")[0])
	c.Redirect(http.StatusFound, "/")
}

// Logout clears the local session and sends the visitor to the provider's
// logout endpoint so the Auth0 session is cleared too
func Logout(c *gin.Context) {
	session := auth.LoadSession(c)
	session.LogOutUser()
	c.Redirect(http.StatusFound, auth.LogoutURL(config.BASE_URL))
}

func Profile(c *gin.Context, claims *auth.Claims) {
	c.HTML(http.StatusOK, "profile.tmpl", pageData(c, nil))
}
