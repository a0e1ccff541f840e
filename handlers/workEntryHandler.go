package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"bitbucket.org/mmdatafocus/timesheet_backend/config"
	"bitbucket.org/mmdatafocus/timesheet_backend/models"
	"bitbucket.org/mmdatafocus/timesheet_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type workEntryResponse struct {
	ID          int             `json:"id"`
	ClientId    int             `json:"client_id"`
	Hours       decimal.Decimal `json:"hours"`
	Description *string         `json:"description"`
	Date        string          `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	ClientName  string          `json:"client_name,omitempty"`
}

func toWorkEntryResponse(e *models.WorkEntry) *workEntryResponse {
	resp := &workEntryResponse{
		ID:          e.ID,
		ClientId:    e.ClientId,
		Hours:       e.Hours,
		Description: e.Description,
		Date:        e.DateString(),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if e.Client != nil {
		resp.ClientName = e.Client.Name
	}
	return resp
}

func ListWorkEntries() gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := currentUserEmail(c)
		if !ok {
			return
		}

		var clientId *int
		if raw := c.Query("client_id"); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client_id filter"})
				return
			}
			clientId = &id
		}

		entries, err := models.ListWorkEntries(c.Request.Context(), email, clientId)
		if err != nil {
			config.LogError(config.GetLogger(), "workEntryHandler.go", "ListWorkEntries", "ListWorkEntries", clientId, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load work entries"})
			return
		}

		responses := make([]*workEntryResponse, 0, len(entries))
		for _, e := range entries {
			responses = append(responses, toWorkEntryResponse(e))
		}
		c.JSON(http.StatusOK, gin.H{"work_entries": responses})
	}
}

func GetWorkEntry() gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := currentUserEmail(c)
		if !ok {
			return
		}
		id, ok := pathId(c, "id")
		if !ok {
			return
		}

		entry, err := models.GetWorkEntry(c.Request.Context(), email, id)
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Work entry not found"})
				return
			}
			config.LogError(config.GetLogger(), "workEntryHandler.go", "GetWorkEntry", "GetWorkEntry", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load work entry"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"work_entry": toWorkEntryResponse(entry)})
	}
}

func CreateWorkEntry() gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := currentUserEmail(c)
		if !ok {
			return
		}

		var input models.NewWorkEntry
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		entry, err := models.CreateWorkEntry(c.Request.Context(), email, &input)
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
				return
			}
			config.LogError(config.GetLogger(), "workEntryHandler.go", "CreateWorkEntry", "CreateWorkEntry", input, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create work entry"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message":    "Work entry created successfully",
			"work_entry": toWorkEntryResponse(entry),
		})
	}
}

func UpdateWorkEntry() gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := currentUserEmail(c)
		if !ok {
			return
		}
		id, ok := pathId(c, "id")
		if !ok {
			return
		}

		var input models.NewWorkEntry
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		entry, err := models.UpdateWorkEntry(c.Request.Context(), email, id, &input)
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Work entry not found"})
				return
			}
			config.LogError(config.GetLogger(), "workEntryHandler.go", "UpdateWorkEntry", "UpdateWorkEntry", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update work entry"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":    "Work entry updated successfully",
			"work_entry": toWorkEntryResponse(entry),
		})
	}
}

func DeleteWorkEntry() gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := currentUserEmail(c)
		if !ok {
			return
		}
		id, ok := pathId(c, "id")
		if !ok {
			return
		}

		if err := models.DeleteWorkEntry(c.Request.Context(), email, id); err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Work entry not found"})
				return
			}
			config.LogError(config.GetLogger(), "workEntryHandler.go", "DeleteWorkEntry", "DeleteWorkEntry", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete work entry"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Work entry deleted successfully"})
	}
}
