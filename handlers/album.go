package handlers

import (
	"bytes"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/MattiooFR/1pic1day/auth"
	"github.com/MattiooFR/1pic1day/config"
	"github.com/MattiooFR/1pic1day/models"
	"github.com/MattiooFR/1pic1day/storage"
	"github.com/MattiooFR/1pic1day/utils"

	"github.com/gin-gonic/gin"
)

const (
	fileNameSalt = "admin"
	thumbSize    = 640
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// AlbumEntry is one row of the owner's album list page
type AlbumEntry struct {
	Name     string
	Slug     string
	ThumbURL string
	Count    int
}

// AlbumList shows the calling owner's albums. Requires get:albums.
func AlbumList(c *gin.Context, claims *auth.Claims) {
	albums, err := models.AlbumsByOwner(claims.Subject)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false, "error": http.StatusInternalServerError, "message": "Internal Server Error",
		})
		return
	}
	store := storage.Get()
	entries := make([]AlbumEntry, 0, len(albums))
	for _, album := range albums {
		entry := AlbumEntry{Name: album.Name, Slug: album.URL}
		images, err := models.ImagesForAlbum(album.ID)
		if err == nil {
			entry.Count = len(images)
			if len(images) > 0 && images[0].ThumbURL != "" {
				entry.ThumbURL = store.URL(album.URL, images[0].ThumbURL)
			}
		}
		entries = append(entries, entry)
	}
	c.HTML(http.StatusOK, "albums.tmpl", pageData(c, gin.H{"albums": entries}))
}

func CreateAlbumForm(c *gin.Context) {
	c.HTML(http.StatusOK, "create_album.tmpl", pageData(c, gin.H{"success": false}))
}

// CreateAlbum handles the create form: album row, one stored file plus
// thumbnail and one Image row per upload. Any failure compensates by
// deleting the partial rows and the stored media - best-effort, not atomic.
// Anonymous visitors may create albums too.
func CreateAlbum(c *gin.Context) {
	session := auth.LoadSession(c)
	owner := models.AnonymousOwner
	if profile, ok := session.Profile(); ok {
		owner = profile.Subject
	}

	name := strings.TrimSpace(c.PostForm("name"))
	form, err := c.MultipartForm()
	if name == "" || err != nil || len(form.File["photo"]) == 0 {
		session.Flash("A name and at least one photo are required")
		c.HTML(http.StatusOK, "create_album.tmpl", pageData(c, gin.H{"success": false}))
		return
	}
	files := form.File["photo"]
	for _, file := range files {
		if !allowedExtensions[strings.ToLower(filepath.Ext(file.Filename))] {
			session.Flash("Image Only!")
			c.HTML(http.StatusOK, "create_album.tmpl", pageData(c, gin.H{"success": false}))
			return
		}
	}

	album, err := models.NewAlbum(name, owner)
	if err != nil {
		log.Printf("Album create failed: %v", err)
		session.Flash("An error occurred. Try again")
		c.HTML(http.StatusOK, "create_album.tmpl", pageData(c, gin.H{"success": false}))
		return
	}
	store := storage.Get()
	bucket, err := store.InitAlbum(album.URL)
	if err == nil && bucket != "" {
		err = models.SetAlbumBucket(&album, bucket)
	}
	if err == nil {
		for _, file := range files {
			if err = saveUpload(store, &album, file); err != nil {
				break
			}
		}
	}
	if err != nil {
		log.Printf("Album %s creation failed, compensating: %v", album.URL, err)
		compensateCreate(store, &album)
		session.Flash("An error occurred. Try again")
		c.HTML(http.StatusOK, "create_album.tmpl", pageData(c, gin.H{"success": false}))
		return
	}

	session.Flash("The album was created. Accessible at this address : " + config.BASE_URL + "/" + album.URL)
	c.HTML(http.StatusOK, "create_album.tmpl", pageData(c, gin.H{
		"success": true,
		"slug":    album.URL,
	}))
}

func saveUpload(store storage.StorageAPI, album *models.Album, file *multipart.FileHeader) error {
	reader, err := file.Open()
	if err != nil {
		return err
	}
	data, err := io.ReadAll(reader)
	reader.Close()
	if err != nil {
		return err
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := utils.TimedHash(fileNameSalt) + ext
	locator, err := store.Save(album.Bucket, album.URL, name, bytes.NewReader(data))
	if err != nil {
		return err
	}
	// Thumbnail failures are not fatal - the album page only needs the
	// original
	thumbLocator := ""
	var thumb bytes.Buffer
	if _, err := utils.CreateThumb(thumbSize, bytes.NewReader(data), &thumb); err == nil {
		thumbName := strings.TrimSuffix(name, ext) + "_thumb.jpg"
		if tl, err := store.Save(album.Bucket, album.URL, thumbName, &thumb); err == nil {
			thumbLocator = tl
		}
	}
	_, err = models.NewImage(album, locator, thumbLocator)
	return err
}

func compensateCreate(store storage.StorageAPI, album *models.Album) {
	if err := models.DeleteImagesForAlbum(album.ID); err != nil {
		log.Printf("Compensation: image rows for album %s not removed: %v", album.URL, err)
	}
	if err := album.Delete(); err != nil {
		log.Printf("Compensation: album row %s not removed: %v", album.URL, err)
	}
	if err := store.DeleteAlbum(album.Bucket, album.URL); err != nil {
		log.Printf("Compensation: stored media for album %s not removed: %v", album.URL, err)
	}
}

// EditAlbumForm renders the rename form. Requires patch:album + ownership.
func EditAlbumForm(c *gin.Context, claims *auth.Claims) {
	album, ok := ownedAlbum(c, claims)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "edit_album.tmpl", pageData(c, gin.H{
		"name": album.Name,
		"slug": album.URL,
	}))
}

// EditAlbum renames the album in place, no history kept
func EditAlbum(c *gin.Context, claims *auth.Claims) {
	album, ok := ownedAlbum(c, claims)
	if !ok {
		return
	}
	session := auth.LoadSession(c)
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		session.Flash("A title is required")
		c.HTML(http.StatusOK, "edit_album.tmpl", pageData(c, gin.H{
			"name": album.Name,
			"slug": album.URL,
		}))
		return
	}
	if err := album.Rename(name); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false, "error": http.StatusInternalServerError, "message": "Internal Server Error",
		})
		return
	}
	session.Flash("Album name changed with success!")
	c.Redirect(http.StatusFound, "/"+album.URL)
}

// DeleteAlbum removes the stored media, then the image rows, then the album
// row. The three steps share no transaction; failures are logged and the
// remaining steps still run.
func DeleteAlbum(c *gin.Context, claims *auth.Claims) {
	album, ok := ownedAlbum(c, claims)
	if !ok {
		return
	}
	session := auth.LoadSession(c)
	store := storage.Get()
	if err := store.DeleteAlbum(album.Bucket, album.URL); err != nil {
		log.Printf("Stored media for album %s not fully removed: %v", album.URL, err)
	}
	if err := models.DeleteImagesForAlbum(album.ID); err != nil {
		log.Printf("Image rows for album %s not removed: %v", album.URL, err)
	}
	if err := album.Delete(); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false, "error": http.StatusInternalServerError, "message": "Internal Server Error",
		})
		return
	}
	session.Flash("The album was deleted")
	c.Redirect(http.StatusFound, "/")
}

// ownedAlbum loads the album behind :slug and enforces that the verified
// claims belong to its owner. Writes the error response itself.
func ownedAlbum(c *gin.Context, claims *auth.Claims) (*models.Album, bool) {
	album, err := models.AlbumBySlug(c.Param("slug"))
	if err != nil {
		c.HTML(http.StatusNotFound, "404.tmpl", pageData(c, nil))
		c.Abort()
		return nil, false
	}
	if !album.IsOwnedBy(claims.Subject) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false, "error": http.StatusUnauthorized, "message": "You are not the owner of this album",
		})
		return nil, false
	}
	return &album, true
}
