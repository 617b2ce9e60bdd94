package models

import (
	"errors"
	"math/rand"
	"time"

	"github.com/MattiooFR/1pic1day/config"
	"github.com/MattiooFR/1pic1day/db"
)

// ErrEmptyAlbum is returned when an album holds no images at all
var ErrEmptyAlbum = errors.New("album has no images")

// PickTodaysPhoto decides which image the album shows right now and persists
// the choice. Called on every public album view.
//
// The selection is sticky: within the rotation window every view returns the
// same image. Once the window elapses (or no image was ever featured) one
// image is drawn uniformly from the unseen set and marked viewed. When the
// unseen set runs dry a new viewing cycle starts by clearing every viewed
// flag, so all images keep coming around. Concurrent viewers within the same
// instant can race on the read-modify-write; the later commit wins.
func PickTodaysPhoto(album *Album) (Image, error) {
	unseen, err := unseenImages(album.ID)
	if err != nil {
		return Image{}, err
	}
	if len(unseen) == 0 {
		var total int64
		if err := db.Instance.Model(&Image{}).Where("album_id = ?", album.ID).Count(&total).Error; err != nil {
			return Image{}, err
		}
		if total == 0 {
			return Image{}, ErrEmptyAlbum
		}
		// Every image was shown - start a new viewing cycle. This runs
		// before the window check, on every call that finds the set empty.
		if err := db.Instance.Model(&Image{}).Where("album_id = ?", album.ID).Update("viewed", false).Error; err != nil {
			return Image{}, err
		}
		if unseen, err = unseenImages(album.ID); err != nil {
			return Image{}, err
		}
	}

	window := time.Duration(config.ROTATE_WINDOW_SECONDS) * time.Second
	lastViewed := time.Unix(album.LastTimeViewed, 0)
	if album.LastPhotoViewed != "" && time.Since(lastViewed) <= window {
		var current Image
		err := db.Instance.Where("album_id = ? and url = ?", album.ID, album.LastPhotoViewed).First(&current).Error
		if err == nil {
			return current, nil
		}
		// The featured image is gone, fall through and pick again
	}

	picked := unseen[rand.Intn(len(unseen))]
	album.LastPhotoViewed = picked.URL
	album.LastTimeViewed = time.Now().Unix()
	if err := db.Instance.Model(&picked).Update("viewed", true).Error; err != nil {
		return Image{}, err
	}
	err = db.Instance.Model(album).Updates(map[string]interface{}{
		"last_photo_viewed": album.LastPhotoViewed,
		"last_time_viewed":  album.LastTimeViewed,
	}).Error
	if err != nil {
		return Image{}, err
	}
	picked.Viewed = true
	return picked, nil
}

func unseenImages(albumID uint64) (images []Image, err error) {
	err = db.Instance.Where("album_id = ? and viewed = ?", albumID, false).Find(&images).Error
	return
}
