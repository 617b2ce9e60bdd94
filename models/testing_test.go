package models

import (
	"testing"

	"github.com/MattiooFR/1pic1day/db"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB points the global gorm instance at a fresh in-memory SQLite
// database, one per test
func setupTestDB(t *testing.T) {
	t.Helper()
	tdb, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("cannot open test database: %v", err)
	}
	db.Instance = tdb
	Init()
}

func mustCreateAlbum(t *testing.T, name, owner string) Album {
	t.Helper()
	album, err := NewAlbum(name, owner)
	if err != nil {
		t.Fatalf("NewAlbum: %v", err)
	}
	return album
}

func mustCreateImage(t *testing.T, album *Album, locator string) Image {
	t.Helper()
	image, err := NewImage(album, locator, "")
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	return image
}
