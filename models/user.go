package models

import (
	"errors"

	"github.com/MattiooFR/1pic1day/db"

	"gorm.io/gorm"
)

// User caches the external identity locally. Rows are only ever created
// lazily on first successful login.
type User struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	UpdatedAt int64
	Name      string `gorm:"type:varchar(100)"`
	Email     string `gorm:"type:varchar(150);index:uniq_email,unique"`
	Subject   string `gorm:"type:varchar(100);index:uniq_subject,unique"` // identity provider subject id
	Picture   string `gorm:"type:varchar(500)"`
}

// UserFromIdentity returns the local user matching the identity's email,
// creating it when this is the first login
func UserFromIdentity(name, email, subject, picture string) (u User, err error) {
	err = db.Instance.Where("email = ?", email).First(&u).Error
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, err
	}
	u = User{
		Name:    name,
		Email:   email,
		Subject: subject,
		Picture: picture,
	}
	return u, db.Instance.Create(&u).Error
}
