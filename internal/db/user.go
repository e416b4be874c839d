package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultProfileImagePath is used for accounts that never uploaded a picture.
const DefaultProfileImagePath = "/static/uploads/default_avatar.png"

// User is the single maintainer account on the site.
type User struct {
	ID               string `gorm:"primaryKey;size:36"`
	Email            string `gorm:"uniqueIndex;not null;size:128"`
	Name             string `gorm:"size:100"`
	PasswordHash     string `gorm:"not null;size:128"`
	AboutMe          string `gorm:"type:text"`
	ProfileImagePath string `gorm:"size:255"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// BeforeCreate assigns a fresh uuid primary key when none was supplied.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.ProfileImagePath == "" {
		u.ProfileImagePath = DefaultProfileImagePath
	}
	return nil
}
