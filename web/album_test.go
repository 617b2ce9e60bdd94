package web

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/MattiooFR/1pic1day/config"
	"github.com/MattiooFR/1pic1day/db"
	"github.com/MattiooFR/1pic1day/models"
	"github.com/MattiooFR/1pic1day/storage"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbName := strings.ReplaceAll(t.Name(), "/", "_")
	tdb, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("cannot open test database: %v", err)
	}
	db.Instance = tdb
	models.Init()
	storage.SetForTesting(storage.NewDiskStorage(t.TempDir()))
	config.ROTATE_WINDOW_SECONDS = 60

	router := gin.New()
	router.Use(sessions.Sessions("token", cookie.NewStore([]byte("test secret"))))
	router.LoadHTMLGlob("../templates/*.tmpl")
	router.GET("/:slug", AlbumView)
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

var photoSrcPattern = regexp.MustCompile(`src="(/static/uploads/[^"]+)"`)

func TestAlbumViewUnknownSlug(t *testing.T) {
	router := setupRouter(t)

	w := get(router, "/nosuchslug")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestAlbumViewFeaturesOnePhoto(t *testing.T) {
	router := setupRouter(t)

	album, err := models.NewAlbum("holidays", models.AnonymousOwner)
	if err != nil {
		t.Fatalf("NewAlbum: %v", err)
	}
	for _, name := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		if _, err := models.NewImage(&album, name, ""); err != nil {
			t.Fatalf("NewImage: %v", err)
		}
	}

	w := get(router, "/"+album.URL)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}
	match := photoSrcPattern.FindStringSubmatch(w.Body.String())
	if match == nil {
		t.Fatalf("no photo rendered: %s", w.Body.String())
	}
	first := match[1]
	if !strings.Contains(first, album.URL) {
		t.Errorf("photo URL %q not namespaced by slug", first)
	}

	// Within the window every visitor sees the same photo
	w = get(router, "/"+album.URL)
	match = photoSrcPattern.FindStringSubmatch(w.Body.String())
	if match == nil || match[1] != first {
		t.Errorf("second view showed %v, want sticky %q", match, first)
	}
}

func TestAlbumViewEmptyAlbum(t *testing.T) {
	router := setupRouter(t)

	album, err := models.NewAlbum("empty", models.AnonymousOwner)
	if err != nil {
		t.Fatalf("NewAlbum: %v", err)
	}

	// Renders a placeholder rather than failing
	w := get(router, "/"+album.URL)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "no photos") {
		t.Errorf("placeholder missing: %s", w.Body.String())
	}
}

func TestDisallowRobots(t *testing.T) {
	router := setupRouter(t)
	router.GET("/robots.txt", DisallowRobots)

	w := get(router, "/robots.txt")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Disallow: /") {
		t.Errorf("robots.txt = %d %q", w.Code, w.Body.String())
	}
}
