// seed-demo creates a demo user with one client and a few work entries so the
// report endpoints have something to render in a fresh environment.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-demo
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"bitbucket.org/mmdatafocus/timesheet_backend/config"
	"bitbucket.org/mmdatafocus/timesheet_backend/models"
	"bitbucket.org/mmdatafocus/timesheet_backend/utils"
	"github.com/shopspring/decimal"
)

const demoEmail = "demo@timesheet.local"

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}
	models.MigrateTable()

	// Seeding writes rows for the demo user directly; tenant scoping from
	// request context does not apply here.
	ctx = utils.SetSkipTenantScopeInContext(ctx, true)

	user, created, err := models.GetOrCreateUser(ctx, demoEmail)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create demo user: %v\n", err)
		os.Exit(1)
	}
	if !created {
		fmt.Printf("demo user %s already exists (id=%d); leaving data untouched\n", user.Email, user.ID)
		return
	}

	client, err := models.CreateClient(ctx, user.Email, &models.NewClient{
		Name:        "Acme Corp",
		Description: utils.NilIfEmpty("Demo client seeded by cmd/seed-demo"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create demo client: %v\n", err)
		os.Exit(1)
	}

	hours := []string{"8.5", "4", "6.5"}
	for i, h := range hours {
		date := time.Now().AddDate(0, 0, -(len(hours) - i)).Format(models.WorkDateLayout)
		entry := &models.NewWorkEntry{
			ClientId:    client.ID,
			Hours:       decimal.RequireFromString(h),
			Description: utils.NilIfEmpty(fmt.Sprintf("Demo work entry %d", i+1)),
			Date:        date,
		}
		if _, err := models.CreateWorkEntry(ctx, user.Email, entry); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create demo work entry: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("seeded demo user %s (id=%d) with client %q (id=%d) and %d entries\n",
		user.Email, user.ID, client.Name, client.ID, len(hours))
}
