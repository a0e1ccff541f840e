package reports

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/timesheet_backend/config"
	"bitbucket.org/mmdatafocus/timesheet_backend/utils"
	"github.com/sirupsen/logrus"
)

func reportCacheEnabled() bool {
	v := strings.TrimSpace(os.Getenv("ENABLE_REPORT_CACHE"))
	return v == "1" || strings.EqualFold(v, "true") || strings.EqualFold(v, "yes") || strings.EqualFold(v, "on")
}

func reportCacheTTL() time.Duration {
	// Env: REPORT_CACHE_TTL_SECONDS (default 120s)
	ttl := 120
	if v := strings.TrimSpace(os.Getenv("REPORT_CACHE_TTL_SECONDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ttl = n
		}
	}
	return time.Duration(ttl) * time.Second
}

func reportSlowMs() int64 {
	// Env: REPORT_SLOW_MS (default 500ms)
	ms := int64(500)
	if v := strings.TrimSpace(os.Getenv("REPORT_SLOW_MS")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			ms = n
		}
	}
	return ms
}

func logSlowReport(ctx context.Context, name string, started time.Time, extra map[string]any) {
	d := time.Since(started)
	if d.Milliseconds() < reportSlowMs() {
		return
	}
	owner, _ := utils.GetUserEmailFromContext(ctx)
	cid, _ := utils.GetCorrelationIdFromContext(ctx)
	config.GetLogger().WithFields(logrus.Fields{
		"name":           name,
		"ms":             d.Milliseconds(),
		"user_email":     owner,
		"correlation_id": cid,
		"extra":          extra,
	}).Warn("slow_report")
}

// The cache key embeds the owner, and values are written only after an
// ownership-checked build, so the cache can never serve rows across tenants.
// Staleness is bounded by TTL only; CRUD writes do not invalidate.
func reportCacheKey(userEmail string, clientId int) string {
	return fmt.Sprintf("report:client:%d:%s", clientId, userEmail)
}

func cachedClientReport(userEmail string, clientId int) (*ClientReport, bool) {
	if !reportCacheEnabled() {
		return nil, false
	}
	var report ClientReport
	found, err := config.GetRedisObject(reportCacheKey(userEmail, clientId), &report)
	if err != nil || !found {
		return nil, false
	}
	return &report, true
}

func cacheClientReport(userEmail string, clientId int, report *ClientReport) {
	if !reportCacheEnabled() {
		return
	}
	// Best effort; a cache write failure never fails the request.
	if err := config.SetRedisObject(reportCacheKey(userEmail, clientId), report, reportCacheTTL()); err != nil {
		config.GetLogger().WithField("key", reportCacheKey(userEmail, clientId)).Warn("report cache write failed: " + err.Error())
	}
}
