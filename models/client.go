package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/timesheet_backend/config"
	"bitbucket.org/mmdatafocus/timesheet_backend/utils"
	"gorm.io/gorm"
)

type Client struct {
	ID          int       `gorm:"primary_key" json:"id"`
	UserEmail   string    `gorm:"size:255;index;not null" json:"-"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewClient struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

func ListClients(ctx context.Context, userEmail string) ([]*Client, error) {
	db := config.GetDB()
	var clients []*Client
	err := db.WithContext(ctx).
		Where("user_email = ?", userEmail).
		Order("name ASC").
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

// GetClient resolves a client owned by userEmail. Ownership and existence are
// the same check: a client owned by someone else is a not-found, never a
// forbidden. Non-positive ids short-circuit without touching the store.
func GetClient(ctx context.Context, userEmail string, id int) (*Client, error) {
	if id <= 0 {
		return nil, utils.ErrorRecordNotFound
	}

	db := config.GetDB()
	var client Client
	err := db.WithContext(ctx).
		Where("id = ? AND user_email = ?", id, userEmail).
		First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &client, nil
}

func ClientExists(ctx context.Context, userEmail string, id int) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	db := config.GetDB()
	var count int64
	err := db.WithContext(ctx).Model(&Client{}).
		Where("id = ? AND user_email = ?", id, userEmail).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func CreateClient(ctx context.Context, userEmail string, input *NewClient) (*Client, error) {
	client := Client{
		UserEmail:   userEmail,
		Name:        input.Name,
		Description: input.Description,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func UpdateClient(ctx context.Context, userEmail string, id int, input *NewClient) (*Client, error) {
	client, err := GetClient(ctx, userEmail, id)
	if err != nil {
		return nil, err
	}

	client.Name = input.Name
	client.Description = input.Description

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

// DeleteClient removes the client and its work entries in one transaction.
func DeleteClient(ctx context.Context, userEmail string, id int) error {
	client, err := GetClient(ctx, userEmail, id)
	if err != nil {
		return err
	}

	db := config.GetDB()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ? AND user_email = ?", client.ID, userEmail).
			Delete(&WorkEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(client).Error
	})
}

func DeleteAllClients(ctx context.Context, userEmail string) error {
	db := config.GetDB()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_email = ?", userEmail).
			Delete(&WorkEntry{}).Error; err != nil {
			return err
		}
		return tx.Where("user_email = ?", userEmail).
			Delete(&Client{}).Error
	})
}
