package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/timesheet_backend/config"
	"bitbucket.org/mmdatafocus/timesheet_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const WorkDateLayout = "2006-01-02"

type WorkEntry struct {
	ID          int             `gorm:"primary_key" json:"id"`
	ClientId    int             `gorm:"index;not null" json:"client_id"`
	UserEmail   string          `gorm:"size:255;index;not null" json:"-"`
	Hours       decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"hours"`
	Description *string         `gorm:"size:1000" json:"description"`
	Date        time.Time       `gorm:"type:date;not null" json:"-"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	Client *Client `gorm:"foreignKey:ClientId" json:"-"`
}

type NewWorkEntry struct {
	ClientId    int             `json:"client_id" binding:"required"`
	Hours       decimal.Decimal `json:"hours" binding:"required,gt=0,lte=24"`
	Description *string         `json:"description" binding:"omitempty,max=1000"`
	Date        string          `json:"date" binding:"required,datetime=2006-01-02"`
}

func (e *WorkEntry) DateString() string {
	return e.Date.Format(WorkDateLayout)
}

// ListWorkEntries returns the caller's entries, most recent first, with the
// client row preloaded for display. clientId narrows to one client when set.
func ListWorkEntries(ctx context.Context, userEmail string, clientId *int) ([]*WorkEntry, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).
		Preload("Client").
		Where("work_entries.user_email = ?", userEmail)
	if clientId != nil {
		dbCtx = dbCtx.Where("client_id = ?", *clientId)
	}

	var entries []*WorkEntry
	err := dbCtx.Order("date DESC").Order("id DESC").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func GetWorkEntry(ctx context.Context, userEmail string, id int) (*WorkEntry, error) {
	if id <= 0 {
		return nil, utils.ErrorRecordNotFound
	}

	db := config.GetDB()
	var entry WorkEntry
	err := db.WithContext(ctx).
		Preload("Client").
		Where("work_entries.id = ? AND work_entries.user_email = ?", id, userEmail).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// validate input for both create & update. Client ownership is the only check
// the binding layer cannot do.
func (input *NewWorkEntry) validate(ctx context.Context, userEmail string) (time.Time, error) {
	exists, err := ClientExists(ctx, userEmail, input.ClientId)
	if err != nil {
		return time.Time{}, err
	}
	if !exists {
		return time.Time{}, utils.ErrorRecordNotFound
	}

	date, err := time.Parse(WorkDateLayout, input.Date)
	if err != nil {
		return time.Time{}, errors.New("date must be in YYYY-MM-DD format")
	}
	return date, nil
}

func CreateWorkEntry(ctx context.Context, userEmail string, input *NewWorkEntry) (*WorkEntry, error) {
	date, err := input.validate(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	entry := WorkEntry{
		ClientId:    input.ClientId,
		UserEmail:   userEmail,
		Hours:       input.Hours,
		Description: input.Description,
		Date:        date,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}

	return GetWorkEntry(ctx, userEmail, entry.ID)
}

func UpdateWorkEntry(ctx context.Context, userEmail string, id int, input *NewWorkEntry) (*WorkEntry, error) {
	date, err := input.validate(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	entry, err := GetWorkEntry(ctx, userEmail, id)
	if err != nil {
		return nil, err
	}

	entry.ClientId = input.ClientId
	entry.Hours = input.Hours
	entry.Description = input.Description
	entry.Date = date

	db := config.GetDB()
	if err := db.WithContext(ctx).Omit("Client").Save(entry).Error; err != nil {
		return nil, err
	}

	return GetWorkEntry(ctx, userEmail, entry.ID)
}

func DeleteWorkEntry(ctx context.Context, userEmail string, id int) error {
	entry, err := GetWorkEntry(ctx, userEmail, id)
	if err != nil {
		return err
	}

	db := config.GetDB()
	return db.WithContext(ctx).Delete(entry).Error
}
