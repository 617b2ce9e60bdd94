package web

import (
	"errors"
	"net/http"

	"github.com/MattiooFR/1pic1day/auth"
	"github.com/MattiooFR/1pic1day/models"
	"github.com/MattiooFR/1pic1day/storage"

	"github.com/gin-gonic/gin"
)

// AlbumView is the public page behind a shared album slug: it runs the
// photo picker and renders whatever image the album features right now
func AlbumView(c *gin.Context) {
	album, err := models.AlbumBySlug(c.Param("slug"))
	if err != nil {
		session := auth.LoadSession(c)
		session.Flash("Wrong album URL")
		c.HTML(http.StatusNotFound, "404.tmpl", gin.H{})
		return
	}

	session := auth.LoadSession(c)
	profile, loggedIn := session.Profile()
	canManage := loggedIn && album.IsOwnedBy(profile.Subject)

	data := gin.H{
		"album_title": album.Name,
		"slug":        album.URL,
		"logged_in":   loggedIn,
		"can_manage":  canManage,
		"flashes":     session.PopFlashes(),
	}
	if loggedIn {
		data["userinfo"] = profile
	}

	image, err := models.PickTodaysPhoto(&album)
	switch {
	case errors.Is(err, models.ErrEmptyAlbum):
		// Nothing to feature - render the page with a placeholder rather
		// than failing the request
		data["empty"] = true
	case err != nil:
		c.HTML(http.StatusInternalServerError, "500.tmpl", gin.H{})
		return
	default:
		data["photo"] = storage.Get().URL(album.URL, image.URL)
	}
	c.HTML(http.StatusOK, "album_view.tmpl", data)
}

func DisallowRobots(c *gin.Context) {
	c.String(http.StatusOK, "User-agent: *\nDisallow: /\n")
}
