package storage

import (
	"fmt"
	"io"
	"log"

	"github.com/MattiooFR/1pic1day/config"
)

// StorageAPI stores the binary media behind Image records. Albums are
// namespaced by slug: a directory per album on disk, a bucket per album on
// S3. The bucket name returned by InitAlbum is recorded on the Album row and
// passed back on every later call (it is empty for disk storage).
type StorageAPI interface {
	// InitAlbum provisions the place media for this album lives in
	InitAlbum(slug string) (bucket string, err error)
	// Save writes one file and returns its locator: a bare file name on
	// disk, a fully-qualified object URL on S3
	Save(bucket, slug, name string, reader io.Reader) (locator string, err error)
	// URL resolves a locator to something a browser can fetch
	URL(slug, locator string) string
	Delete(bucket, slug, locator string) error
	// DeleteAlbum removes every stored file for the album, best-effort
	DeleteAlbum(bucket, slug string) error
}

var active StorageAPI

func Init() {
	switch config.STORAGE_TYPE {
	case "file":
		active = NewDiskStorage(config.STORAGE_PATH)
	case "s3":
		active = NewS3Storage()
	default:
		panic(fmt.Sprintf("Unknown STORAGE_TYPE %q", config.STORAGE_TYPE))
	}
	log.Printf("Media storage: %s\n", config.STORAGE_TYPE)
}

func Get() StorageAPI {
	if active == nil {
		panic("storage not initialised")
	}
	return active
}

// SetForTesting swaps the active storage out from under the handlers
func SetForTesting(s StorageAPI) {
	active = s
}
