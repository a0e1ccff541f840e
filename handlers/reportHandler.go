package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"bitbucket.org/mmdatafocus/timesheet_backend/config"
	"bitbucket.org/mmdatafocus/timesheet_backend/models/reports"
	"bitbucket.org/mmdatafocus/timesheet_backend/utils"
	"github.com/gin-gonic/gin"
)

// The report subsystem holds no per-request state, so one store instance
// serves all concurrent requests.
var reportStore reports.Store = reports.NewGormStore()

func respondReportError(c *gin.Context, funcName string, err error) {
	switch {
	case errors.Is(err, reports.ErrInvalidIdentifier):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client id"})
	case errors.Is(err, reports.ErrClientNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
	default:
		// Store and render failures are logged with detail but surfaced
		// generically; driver error text never reaches the caller.
		config.LogError(config.GetLogger(), "reportHandler.go", funcName, "build report", c.Param("clientId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
	}
}

func reportEventFields(c *gin.Context, report *reports.ClientReport) map[string]any {
	owner, _ := utils.GetUserEmailFromContext(c.Request.Context())
	correlationId, _ := utils.GetCorrelationIdFromContext(c.Request.Context())
	return map[string]any{
		"user_email":     owner,
		"correlation_id": correlationId,
		"client_id":      report.Client.ID,
		"entry_count":    report.EntryCount,
	}
}

func GetClientReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := currentUserEmail(c)
		if !ok {
			return
		}

		report, err := reports.BuildClientReport(c.Request.Context(), reportStore, email, c.Param("clientId"))
		if err != nil {
			respondReportError(c, "GetClientReport", err)
			return
		}

		c.JSON(http.StatusOK, report)
		config.LogBusinessEvent(config.GetLogger(), "report_generated", reportEventFields(c, report))
	}
}

// ExportClientReport serves one export format per route. The business event
// fires only after the full document has been rendered and written.
func ExportClientReport(format reports.Format) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := currentUserEmail(c)
		if !ok {
			return
		}

		export, err := reports.ExportClientReport(c.Request.Context(), reportStore, email, c.Param("clientId"), format)
		if err != nil {
			respondReportError(c, "ExportClientReport", err)
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
		c.Data(http.StatusOK, export.ContentType, export.Data)

		owner, _ := utils.GetUserEmailFromContext(c.Request.Context())
		correlationId, _ := utils.GetCorrelationIdFromContext(c.Request.Context())
		config.LogBusinessEvent(config.GetLogger(), "report_exported", map[string]any{
			"user_email":     owner,
			"correlation_id": correlationId,
			"client_id":      c.Param("clientId"),
			"format":         string(format),
			"bytes":          len(export.Data),
		})
	}
}
