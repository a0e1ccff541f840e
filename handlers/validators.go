package handlers

import (
	"net/http"
	"reflect"

	"bitbucket.org/mmdatafocus/timesheet_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

func init() {
	// Teach the binding validator to see decimal.Decimal as a float so the
	// usual numeric tags (gt, lte) work on hours fields.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.InexactFloat64()
			}
			return nil
		}, decimal.Decimal{})
	}
}

// currentUserEmail reads the identity the auth middleware resolved. Handlers
// behind AuthMiddleware always find it; the guard is for misconfigured routes.
func currentUserEmail(c *gin.Context) (string, bool) {
	email, ok := utils.GetUserEmailFromContext(c.Request.Context())
	if !ok || email == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", false
	}
	return email, true
}
