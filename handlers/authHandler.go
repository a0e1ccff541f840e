package handlers

import (
	"errors"
	"net/http"

	"bitbucket.org/mmdatafocus/timesheet_backend/config"
	"bitbucket.org/mmdatafocus/timesheet_backend/models"
	"bitbucket.org/mmdatafocus/timesheet_backend/utils"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Login is passwordless: an unknown email becomes a new user, a known one just
// logs in. Either way the caller gets a JWT whose subject is the email.
func Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required"})
			return
		}

		user, created, err := models.GetOrCreateUser(c.Request.Context(), req.Email)
		if err != nil {
			config.LogError(config.GetLogger(), "authHandler.go", "Login", "GetOrCreateUser", req.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}

		token, err := utils.JwtGenerate(user.Email)
		if err != nil {
			config.LogError(config.GetLogger(), "authHandler.go", "Login", "JwtGenerate", user.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}

		message := "Login successful"
		status := http.StatusOK
		if created {
			message = "User created and logged in successfully"
			status = http.StatusCreated
		}
		c.JSON(status, gin.H{
			"message": message,
			"user":    user,
			"token":   token,
		})
	}
}

func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := currentUserEmail(c)
		if !ok {
			return
		}

		user, err := models.GetUserByEmail(c.Request.Context(), email)
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			config.LogError(config.GetLogger(), "authHandler.go", "Me", "GetUserByEmail", email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
