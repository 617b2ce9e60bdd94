package models

import (
	"github.com/MattiooFR/1pic1day/db"
	"github.com/MattiooFR/1pic1day/utils"
)

// AnonymousOwner marks albums created without a logged-in user
const AnonymousOwner = "ANON"

const slugSalt = "unicorn"

type Album struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	UpdatedAt int64
	Name      string `gorm:"type:varchar(50);index;not null"`
	// URL is the short public slug the album is reachable under. Nothing
	// enforces uniqueness, see NewAlbum.
	URL    string `gorm:"column:url;type:varchar(500);not null;index"`
	UserID string `gorm:"type:varchar(50);index"` // external subject id or AnonymousOwner
	// Bucket is the per-album S3 bucket, empty on disk deployments
	Bucket          string `gorm:"type:varchar(100)"`
	LastTimeViewed  int64
	LastPhotoViewed string  `gorm:"type:varchar(500)"` // locator of the currently-featured Image
	Images          []Image `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// NewAlbum inserts an album with a freshly-derived slug. The slug is a timed
// hash and is not checked against existing albums - a collision is possible
// at this volume and deliberately left unhandled.
func NewAlbum(name, owner string) (Album, error) {
	album := Album{
		Name:   name,
		URL:    utils.TimedHash(slugSalt),
		UserID: owner,
	}
	return album, db.Instance.Create(&album).Error
}

func AlbumBySlug(slug string) (album Album, err error) {
	err = db.Instance.Where("url = ?", slug).First(&album).Error
	return
}

func AlbumsByOwner(owner string) (albums []Album, err error) {
	err = db.Instance.Where("user_id = ?", owner).Find(&albums).Error
	return
}

// SetAlbumBucket records the provisioned S3 bucket on the album row
func SetAlbumBucket(a *Album, bucket string) error {
	a.Bucket = bucket
	return db.Instance.Model(a).Update("bucket", bucket).Error
}

func (a *Album) Rename(name string) error {
	a.Name = name
	return db.Instance.Model(a).Update("name", name).Error
}

// Delete removes the album row only. Callers remove the Image rows and the
// stored media first - the three steps share no transaction.
func (a *Album) Delete() error {
	return db.Instance.Delete(a).Error
}

func (a *Album) IsOwnedBy(subject string) bool {
	return a.UserID != AnonymousOwner && a.UserID == subject
}
