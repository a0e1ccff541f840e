package reports

import (
	"context"

	"bitbucket.org/mmdatafocus/timesheet_backend/config"
	"bitbucket.org/mmdatafocus/timesheet_backend/models"
)

// GormStore answers the two report queries against the primary database.
// Both are read-only and explicitly scoped by user_email; the tenant guard
// plugin is a backstop, not the mechanism.
type GormStore struct{}

func NewGormStore() *GormStore { return &GormStore{} }

func (s *GormStore) GetOwnedClient(ctx context.Context, userEmail string, clientId int) (*models.Client, error) {
	return models.GetClient(ctx, userEmail, clientId)
}

func (s *GormStore) ListOwnedWorkEntries(ctx context.Context, userEmail string, clientId int) ([]*models.WorkEntry, error) {
	db := config.GetDB()
	var entries []*models.WorkEntry
	err := db.WithContext(ctx).
		Where("client_id = ? AND user_email = ?", clientId, userEmail).
		Order("date ASC").Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
