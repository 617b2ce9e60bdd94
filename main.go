package main

import (
	"log"
	"strings"
	"time"

	"github.com/MattiooFR/1pic1day/auth"
	"github.com/MattiooFR/1pic1day/config"
	"github.com/MattiooFR/1pic1day/db"
	"github.com/MattiooFR/1pic1day/handlers"
	"github.com/MattiooFR/1pic1day/models"
	"github.com/MattiooFR/1pic1day/storage"
	"github.com/MattiooFR/1pic1day/utils"
	"github.com/MattiooFR/1pic1day/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

const (
	sessionCookieName     = "token"
	sessionExpirationTime = 365 * 86400 // 1 year
)

func main() {
	db.Init()
	models.Init()
	storage.Init()

	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))

	// HTML templates
	router.LoadHTMLGlob("templates/*.tmpl")

	cookieStore := gormsessions.NewStore(db.Instance, true, []byte(config.SECRET_KEY))
	cookieStore.Options(sessions.Options{Path: "/", MaxAge: sessionExpirationTime})
	router.Use(sessions.Sessions(sessionCookieName, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/static/uploads"})))
	}
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()) // Album pages must not be cached

	// Uploaded files are served straight off the disk; on S3 the image
	// URLs point at the bucket instead
	if config.STORAGE_TYPE == "file" {
		router.Static("/static/uploads", config.STORAGE_PATH)
	}

	// Public pages
	router.GET("/", handlers.Home)
	router.GET("/login", handlers.Login)
	router.GET("/auth", handlers.AuthCallback)
	router.GET("/logout", handlers.Logout)
	router.GET("/create", handlers.CreateAlbumForm)
	router.POST("/create", handlers.CreateAlbum)
	router.GET("/robots.txt", web.DisallowRobots)

	// Permission-guarded pages
	authRouter := &auth.Router{Base: router}
	authRouter.GET("/albums", handlers.AlbumList, "get:albums")
	authRouter.GET("/profile", handlers.Profile, "get:albums")
	authRouter.GET("/:slug/edit", handlers.EditAlbumForm, "patch:album")
	authRouter.POST("/:slug/edit", handlers.EditAlbum, "patch:album")
	authRouter.GET("/:slug/delete", handlers.DeleteAlbum, "delete:album")
	authRouter.DELETE("/:slug/delete", handlers.DeleteAlbum, "delete:album")

	// Shared album view, by slug
	router.GET("/:slug", web.AlbumView)

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
