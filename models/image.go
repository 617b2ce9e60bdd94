package models

import (
	"github.com/MattiooFR/1pic1day/db"
)

type Image struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	// URL is the storage locator: a bare file name on disk deployments, a
	// fully-qualified object URL on S3
	URL      string `gorm:"column:url;type:varchar(500);not null"`
	ThumbURL string `gorm:"column:thumb_url;type:varchar(500)"`
	Viewed   bool   `gorm:"not null;default:false"`
	AlbumID  uint64 `gorm:"not null;index"`
}

func NewImage(album *Album, locator, thumbLocator string) (Image, error) {
	image := Image{
		URL:      locator,
		ThumbURL: thumbLocator,
		AlbumID:  album.ID,
	}
	return image, db.Instance.Create(&image).Error
}

func ImagesForAlbum(albumID uint64) (images []Image, err error) {
	err = db.Instance.Where("album_id = ?", albumID).Find(&images).Error
	return
}

// DeleteImagesForAlbum drops all Image rows of an album in one statement
func DeleteImagesForAlbum(albumID uint64) error {
	return db.Instance.Delete(&Image{}, "album_id = ?", albumID).Error
}
