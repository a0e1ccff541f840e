package config

import (
	"context"
	"strings"

	"bitbucket.org/mmdatafocus/timesheet_backend/appctx"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TenantGuardPlugin enforces multi-tenant isolation by automatically scoping
// queries/updates/deletes to the request's user_email when the model has a
// user_email column.
//
// NOTE:
// - This does NOT apply to Raw SQL queries. Those must include user_email manually.
// - Internal bypass is explicit via the SkipTenantScope context flag.
type TenantGuardPlugin struct{}

func NewTenantGuardPlugin() *TenantGuardPlugin { return &TenantGuardPlugin{} }

func (p *TenantGuardPlugin) Name() string { return "tenant_guard" }

func (p *TenantGuardPlugin) Initialize(db *gorm.DB) error {
	// Query
	if err := db.Callback().Query().Before("gorm:query").Register("tenant_guard:query", tenantGuardCallback); err != nil {
		return err
	}
	// Row (First/Take)
	if err := db.Callback().Row().Before("gorm:row").Register("tenant_guard:row", tenantGuardCallback); err != nil {
		return err
	}
	// Update
	if err := db.Callback().Update().Before("gorm:update").Register("tenant_guard:update", tenantGuardCallback); err != nil {
		return err
	}
	// Delete
	if err := db.Callback().Delete().Before("gorm:delete").Register("tenant_guard:delete", tenantGuardCallback); err != nil {
		return err
	}
	return nil
}

func tenantGuardCallback(db *gorm.DB) {
	if db == nil || db.Statement == nil {
		return
	}
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	if shouldBypassTenantScope(ctx) {
		return
	}
	userEmail := userEmailFromContext(ctx)
	if userEmail == "" {
		return
	}

	// Only apply if the current model/table includes a user_email column.
	if db.Statement.Schema == nil {
		return
	}
	hasUserEmail := false
	for _, f := range db.Statement.Schema.Fields {
		if strings.EqualFold(f.DBName, "user_email") {
			hasUserEmail = true
			break
		}
	}
	if !hasUserEmail {
		return
	}

	// Don't duplicate an explicit tenant filter.
	if whereHasUserEmail(db.Statement.Clauses["WHERE"]) {
		return
	}

	db.Statement.AddClause(clause.Where{
		Exprs: []clause.Expression{
			clause.Eq{
				Column: clause.Column{Table: db.Statement.Table, Name: "user_email"},
				Value:  userEmail,
			},
		},
	})
}

func userEmailFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(appctx.ContextKeyUserEmail).(string); ok && v != "" {
		return v
	}
	return ""
}

func shouldBypassTenantScope(ctx context.Context) bool {
	if v, ok := ctx.Value(appctx.ContextKeySkipTenantScope).(bool); ok && v {
		return true
	}
	return false
}

func whereHasUserEmail(c clause.Clause) bool {
	if c.Expression == nil {
		return false
	}
	w, ok := c.Expression.(clause.Where)
	if !ok {
		return false
	}
	for _, e := range w.Exprs {
		if exprHasUserEmail(e) {
			return true
		}
	}
	return false
}

func exprHasUserEmail(e clause.Expression) bool {
	switch v := e.(type) {
	case clause.Eq:
		return colIsUserEmail(v.Column)
	case clause.Neq:
		return colIsUserEmail(v.Column)
	case clause.IN:
		return colIsUserEmail(v.Column)
	case clause.AndConditions:
		for _, x := range v.Exprs {
			if exprHasUserEmail(x) {
				return true
			}
		}
		return false
	case clause.OrConditions:
		for _, x := range v.Exprs {
			if exprHasUserEmail(x) {
				return true
			}
		}
		return false
	case clause.Expr:
		// Best-effort for raw expressions.
		return strings.Contains(strings.ToLower(v.SQL), "user_email")
	default:
		return false
	}
}

func colIsUserEmail(col any) bool {
	switch c := col.(type) {
	case clause.Column:
		return strings.EqualFold(c.Name, "user_email")
	case string:
		return strings.Contains(strings.ToLower(c), "user_email")
	default:
		return false
	}
}
