package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/timesheet_backend/config"
	"bitbucket.org/mmdatafocus/timesheet_backend/utils"
	"gorm.io/gorm"
)

type User struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// NormalizeEmail is the single place email identity is canonicalized.
// Every owner-scoped query uses the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func GetUserByEmail(ctx context.Context, email string) (*User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, utils.ErrorRecordNotFound
	}

	db := config.GetDB()
	var user User
	err := db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetOrCreateUser implements the passwordless login contract: an unknown email
// becomes a new user. Returns created=true when the row was inserted.
func GetOrCreateUser(ctx context.Context, email string) (*User, bool, error) {
	email = NormalizeEmail(email)
	if !utils.IsValidEmail(email) {
		return nil, false, errors.New("a valid email is required")
	}

	user, err := GetUserByEmail(ctx, email)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, utils.ErrorRecordNotFound) {
		return nil, false, err
	}

	newUser := User{Email: email}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&newUser).Error; err != nil {
		return nil, false, err
	}
	return &newUser, true, nil
}
