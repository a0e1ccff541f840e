package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/timesheet_backend/models"
	"bitbucket.org/mmdatafocus/timesheet_backend/utils"
	"github.com/shopspring/decimal"
)

// NOTE: These tests are intentionally DB-free. The fake store implements the
// same contract as GormStore: ownership and existence are one check, and a
// client owned by someone else is a plain not-found.

type fakeStore struct {
	clients map[string]map[int]*models.Client
	entries map[int][]*models.WorkEntry

	getCalls  int
	listCalls int

	storeErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		clients: map[string]map[int]*models.Client{},
		entries: map[int][]*models.WorkEntry{},
	}
}

func (f *fakeStore) addClient(owner string, client *models.Client) {
	if f.clients[owner] == nil {
		f.clients[owner] = map[int]*models.Client{}
	}
	f.clients[owner][client.ID] = client
}

func (f *fakeStore) GetOwnedClient(ctx context.Context, userEmail string, clientId int) (*models.Client, error) {
	f.getCalls++
	if f.storeErr != nil {
		return nil, f.storeErr
	}
	c := f.clients[userEmail][clientId]
	if c == nil {
		return nil, utils.ErrorRecordNotFound
	}
	return c, nil
}

func (f *fakeStore) ListOwnedWorkEntries(ctx context.Context, userEmail string, clientId int) ([]*models.WorkEntry, error) {
	f.listCalls++
	if f.storeErr != nil {
		return nil, f.storeErr
	}
	var out []*models.WorkEntry
	for _, e := range f.entries[clientId] {
		if e.UserEmail == userEmail {
			out = append(out, e)
		}
	}
	return out, nil
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func entry(id int, owner string, clientId int, hours string, date string, description *string) *models.WorkEntry {
	d, _ := decimal.NewFromString(hours)
	day, _ := time.Parse(models.WorkDateLayout, date)
	return &models.WorkEntry{
		ID:          id,
		ClientId:    clientId,
		UserEmail:   owner,
		Hours:       d,
		Description: description,
		Date:        day,
	}
}

func acmeStore() *fakeStore {
	store := newFakeStore()
	store.addClient("a@example.com", &models.Client{ID: 1, UserEmail: "a@example.com", Name: "Acme Corp"})
	store.entries[1] = []*models.WorkEntry{
		entry(1, "a@example.com", 1, "8.5", "2025-03-01", nil),
		entry(2, "a@example.com", 1, "4", "2025-03-02", nil),
		entry(3, "a@example.com", 1, "6.5", "2025-03-03", nil),
	}
	return store
}

func TestBuildClientReport_Totals(t *testing.T) {
	store := acmeStore()

	report, err := BuildClientReport(context.Background(), store, "a@example.com", "1")
	if err != nil {
		t.Fatalf("BuildClientReport error: %v", err)
	}

	if !report.TotalHours.Equal(mustDecimal(t, "19")) {
		t.Fatalf("expected totalHours 19, got %s", report.TotalHours)
	}
	if report.EntryCount != 3 {
		t.Fatalf("expected entryCount 3, got %d", report.EntryCount)
	}
	if report.Client.Name != "Acme Corp" {
		t.Fatalf("expected client name Acme Corp, got %s", report.Client.Name)
	}
	if len(report.WorkEntries) != 3 {
		t.Fatalf("expected 3 work entries, got %d", len(report.WorkEntries))
	}
}

func TestBuildClientReport_EmptyEntries(t *testing.T) {
	store := newFakeStore()
	store.addClient("a@example.com", &models.Client{ID: 7, UserEmail: "a@example.com", Name: "Idle Client"})

	report, err := BuildClientReport(context.Background(), store, "a@example.com", "7")
	if err != nil {
		t.Fatalf("BuildClientReport error: %v", err)
	}

	if !report.TotalHours.IsZero() {
		t.Fatalf("expected zero totalHours, got %s", report.TotalHours)
	}
	if report.EntryCount != 0 {
		t.Fatalf("expected entryCount 0, got %d", report.EntryCount)
	}
	if report.WorkEntries == nil || len(report.WorkEntries) != 0 {
		t.Fatalf("expected empty (non-nil) workEntries, got %#v", report.WorkEntries)
	}
}

func TestBuildClientReport_InvalidId_NoStoreCall(t *testing.T) {
	store := acmeStore()

	_, err := BuildClientReport(context.Background(), store, "a@example.com", "not-a-number")
	if !errors.Is(err, ErrInvalidIdentifier) {
		t.Fatalf("expected ErrInvalidIdentifier, got %v", err)
	}
	if store.getCalls != 0 || store.listCalls != 0 {
		t.Fatalf("expected no store calls, got get=%d list=%d", store.getCalls, store.listCalls)
	}
}

func TestBuildClientReport_CrossTenantIsolation(t *testing.T) {
	store := newFakeStore()
	store.addClient("b@example.com", &models.Client{ID: 42, UserEmail: "b@example.com", Name: "B Only"})
	store.entries[42] = []*models.WorkEntry{
		entry(1, "b@example.com", 42, "8", "2025-01-01", nil),
	}

	_, err := BuildClientReport(context.Background(), store, "a@example.com", "42")
	if !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound for cross-tenant id, got %v", err)
	}
	// The ownership check failed, so entries must never have been fetched.
	if store.listCalls != 0 {
		t.Fatalf("expected no entry fetch after failed ownership check, got %d", store.listCalls)
	}
}

func TestBuildClientReport_MissingClient(t *testing.T) {
	store := newFakeStore()

	for _, raw := range []string{"999", "-1", "0"} {
		_, err := BuildClientReport(context.Background(), store, "a@example.com", raw)
		if !errors.Is(err, ErrClientNotFound) {
			t.Fatalf("id %q: expected ErrClientNotFound, got %v", raw, err)
		}
	}
}

func TestBuildClientReport_StoreError(t *testing.T) {
	store := acmeStore()
	store.storeErr = errors.New("dial tcp: connection refused")

	_, err := BuildClientReport(context.Background(), store, "a@example.com", "1")
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestBuildClientReport_SortsEntries(t *testing.T) {
	store := newFakeStore()
	store.addClient("a@example.com", &models.Client{ID: 1, UserEmail: "a@example.com", Name: "Acme Corp"})
	// Deliberately out of order: the store promises nothing about ordering.
	store.entries[1] = []*models.WorkEntry{
		entry(9, "a@example.com", 1, "1", "2025-03-02", nil),
		entry(2, "a@example.com", 1, "1", "2025-03-01", nil),
		entry(5, "a@example.com", 1, "1", "2025-03-02", nil),
		entry(1, "a@example.com", 1, "1", "2025-03-03", nil),
	}

	report, err := BuildClientReport(context.Background(), store, "a@example.com", "1")
	if err != nil {
		t.Fatalf("BuildClientReport error: %v", err)
	}

	wantIds := []int{2, 5, 9, 1}
	for i, e := range report.WorkEntries {
		if e.ID != wantIds[i] {
			t.Fatalf("position %d: expected entry id %d, got %d", i, wantIds[i], e.ID)
		}
	}
}

func TestAggregate_NoFloatDrift(t *testing.T) {
	entries := []*WorkEntryInfo{
		{Hours: mustDecimal(t, "0.33")},
		{Hours: mustDecimal(t, "0.33")},
		{Hours: mustDecimal(t, "0.34")},
	}

	totals := Aggregate(entries)
	if !totals.TotalHours.Equal(mustDecimal(t, "1")) {
		t.Fatalf("expected totalHours 1, got %s", totals.TotalHours)
	}
	if totals.EntryCount != 3 {
		t.Fatalf("expected entryCount 3, got %d", totals.EntryCount)
	}
}

func TestAggregate_Empty(t *testing.T) {
	totals := Aggregate(nil)
	if !totals.TotalHours.IsZero() {
		t.Fatalf("expected zero totalHours, got %s", totals.TotalHours)
	}
	if totals.EntryCount != 0 {
		t.Fatalf("expected entryCount 0, got %d", totals.EntryCount)
	}
}

func TestParseClientId(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"1", 1, false},
		{"42", 42, false},
		{"-3", -3, false},
		{"0", 0, false},
		{"abc", 0, true},
		{"1.5", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseClientId(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidIdentifier) {
				t.Fatalf("ParseClientId(%q): expected ErrInvalidIdentifier, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseClientId(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseClientId(%q) expected %d, got %d", tc.in, tc.want, got)
		}
	}
}
