package models

import (
	"math/rand"
	"time"

	"github.com/MattiooFR/1pic1day/db"
)

func Init() {
	// Seed the random number generator - required for the photo picker
	rand.Seed(time.Now().UnixNano())

	db.Instance.AutoMigrate(&Album{})
	db.Instance.AutoMigrate(&Image{})
	db.Instance.AutoMigrate(&User{})
}
