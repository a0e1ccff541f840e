package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"bitbucket.org/mmdatafocus/timesheet_backend/config"
	"bitbucket.org/mmdatafocus/timesheet_backend/models"
	"bitbucket.org/mmdatafocus/timesheet_backend/utils"
	"github.com/gin-gonic/gin"
)

// pathId parses an :id path parameter. Non-numeric ids are a 400; numeric ids
// that match nothing owned by the caller surface later as a 404.
func pathId(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}

func ListClients() gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := currentUserEmail(c)
		if !ok {
			return
		}

		clients, err := models.ListClients(c.Request.Context(), email)
		if err != nil {
			config.LogError(config.GetLogger(), "clientHandler.go", "ListClients", "ListClients", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load clients"})
			return
		}
		if clients == nil {
			clients = []*models.Client{}
		}
		c.JSON(http.StatusOK, gin.H{"clients": clients})
	}
}

func GetClient() gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := currentUserEmail(c)
		if !ok {
			return
		}
		id, ok := pathId(c, "id")
		if !ok {
			return
		}

		client, err := models.GetClient(c.Request.Context(), email, id)
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
				return
			}
			config.LogError(config.GetLogger(), "clientHandler.go", "GetClient", "GetClient", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load client"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"client": client})
	}
}

func CreateClient() gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := currentUserEmail(c)
		if !ok {
			return
		}

		var input models.NewClient
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		client, err := models.CreateClient(c.Request.Context(), email, &input)
		if err != nil {
			config.LogError(config.GetLogger(), "clientHandler.go", "CreateClient", "CreateClient", input, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create client"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": "Client created successfully",
			"client":  client,
		})
	}
}

func UpdateClient() gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := currentUserEmail(c)
		if !ok {
			return
		}
		id, ok := pathId(c, "id")
		if !ok {
			return
		}

		var input models.NewClient
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		client, err := models.UpdateClient(c.Request.Context(), email, id, &input)
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
				return
			}
			config.LogError(config.GetLogger(), "clientHandler.go", "UpdateClient", "UpdateClient", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update client"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Client updated successfully",
			"client":  client,
		})
	}
}

func DeleteClient() gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := currentUserEmail(c)
		if !ok {
			return
		}
		id, ok := pathId(c, "id")
		if !ok {
			return
		}

		if err := models.DeleteClient(c.Request.Context(), email, id); err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
				return
			}
			config.LogError(config.GetLogger(), "clientHandler.go", "DeleteClient", "DeleteClient", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete client"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
	}
}

func DeleteAllClients() gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := currentUserEmail(c)
		if !ok {
			return
		}

		if err := models.DeleteAllClients(c.Request.Context(), email); err != nil {
			config.LogError(config.GetLogger(), "clientHandler.go", "DeleteAllClients", "DeleteAllClients", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete clients"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "All clients deleted successfully"})
	}
}
