package reports

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"bitbucket.org/mmdatafocus/timesheet_backend/models"
	"bitbucket.org/mmdatafocus/timesheet_backend/utils"
	"github.com/shopspring/decimal"
)

// Report error taxonomy. Handlers map these to HTTP codes; the raw store error
// stays wrapped behind ErrStoreUnavailable and is never shown to callers.
var (
	ErrInvalidIdentifier = errors.New("invalid client identifier")
	ErrClientNotFound    = errors.New("client not found")
	ErrStoreUnavailable  = errors.New("record store unavailable")
	ErrRender            = errors.New("report render failed")
)

// Store is the record-store surface the report subsystem consumes. The gorm
// implementation lives in store.go; tests substitute call-counting fakes.
type Store interface {
	GetOwnedClient(ctx context.Context, userEmail string, clientId int) (*models.Client, error)
	ListOwnedWorkEntries(ctx context.Context, userEmail string, clientId int) ([]*models.WorkEntry, error)
}

type ClientInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type WorkEntryInfo struct {
	ID          int             `json:"id"`
	Hours       decimal.Decimal `json:"hours"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

type Totals struct {
	TotalHours decimal.Decimal `json:"totalHours"`
	EntryCount int             `json:"entryCount"`
}

// ClientReport is ephemeral: built fresh per request, never persisted.
type ClientReport struct {
	Client      ClientInfo       `json:"client"`
	WorkEntries []*WorkEntryInfo `json:"workEntries"`
	TotalHours  decimal.Decimal  `json:"totalHours"`
	EntryCount  int              `json:"entryCount"`
}

// ParseClientId rejects anything that is not a well-formed integer before any
// store access. Negative and zero ids parse fine and later resolve to
// not-found in the store (and short-circuit there, so they stay cheap).
func ParseClientId(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrInvalidIdentifier
	}
	return id, nil
}

// Aggregate computes the report totals. Pure; order-independent; an empty
// slice yields zero totals, not an error. decimal.Decimal keeps the sum exact,
// so 0.33 + 0.33 + 0.34 is 1, not 0.9999999999999999.
func Aggregate(entries []*WorkEntryInfo) Totals {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Hours)
	}
	return Totals{
		TotalHours: total.Round(2),
		EntryCount: len(entries),
	}
}

// BuildClientReport resolves the owned client, fetches its entries, and
// aggregates them. rawClientId is the unparsed path parameter; userEmail is
// passed explicitly so the function is testable without ambient request state.
func BuildClientReport(ctx context.Context, store Store, userEmail string, rawClientId string) (*ClientReport, error) {
	clientId, err := ParseClientId(rawClientId)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	defer logSlowReport(ctx, "client_report", started, map[string]any{"client_id": clientId})

	if report, ok := cachedClientReport(userEmail, clientId); ok {
		return report, nil
	}

	// The ownership check must complete before entries are fetched; a client
	// owned by another tenant is indistinguishable from a missing one.
	client, err := store.GetOwnedClient(ctx, userEmail, clientId)
	if err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	entries, err := store.ListOwnedWorkEntries(ctx, userEmail, clientId)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	infos := make([]*WorkEntryInfo, 0, len(entries))
	for _, e := range entries {
		infos = append(infos, &WorkEntryInfo{
			ID:          e.ID,
			Hours:       e.Hours,
			Description: utils.DereferencePtr(e.Description, ""),
			Date:        e.DateString(),
			CreatedAt:   e.CreatedAt.Format(time.RFC3339),
			UpdatedAt:   e.UpdatedAt.Format(time.RFC3339),
		})
	}
	// Store ordering is expected but not guaranteed; renderers need a stable,
	// diff-friendly order, so sort here once.
	sortEntryInfos(infos)

	totals := Aggregate(infos)
	report := &ClientReport{
		Client:      ClientInfo{ID: client.ID, Name: client.Name},
		WorkEntries: infos,
		TotalHours:  totals.TotalHours,
		EntryCount:  totals.EntryCount,
	}

	cacheClientReport(userEmail, clientId, report)
	return report, nil
}

// sortEntryInfos orders by date ascending, then id ascending. Dates are
// YYYY-MM-DD strings, so lexicographic order is chronological order.
func sortEntryInfos(entries []*WorkEntryInfo) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].ID < entries[j].ID
	})
}
