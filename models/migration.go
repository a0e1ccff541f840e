package models

import (
	"log"

	"bitbucket.org/mmdatafocus/timesheet_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&User{},
		&Client{},
		&WorkEntry{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
