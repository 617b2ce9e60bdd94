package handlers

import (
	"github.com/MattiooFR/1pic1day/auth"

	"github.com/gin-gonic/gin"
)

// pageData merges the session login state and queued flash messages into
// the data every rendered template expects
func pageData(c *gin.Context, extra gin.H) gin.H {
	session := auth.LoadSession(c)
	profile, loggedIn := session.Profile()
	data := gin.H{
		"logged_in": loggedIn,
		"flashes":   session.PopFlashes(),
	}
	if loggedIn {
		data["userinfo"] = profile
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}
