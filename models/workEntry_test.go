package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestWorkEntryDateString(t *testing.T) {
	day, err := time.Parse(WorkDateLayout, "2025-03-01")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	e := WorkEntry{Date: day}
	if got := e.DateString(); got != "2025-03-01" {
		t.Fatalf("expected 2025-03-01, got %q", got)
	}
}

func TestWorkEntryHoursMarshalAsNumber(t *testing.T) {
	hours, _ := decimal.NewFromString("8.5")
	e := WorkEntry{ID: 1, ClientId: 1, Hours: hours}

	data, err := json.Marshal(&e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"hours":8.5`) {
		t.Fatalf("expected hours as a bare JSON number, got %s", data)
	}
	if strings.Contains(string(data), "user_email") {
		t.Fatalf("owner email must not serialize, got %s", data)
	}
}
