package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ecommercio/storefront-backend/internal/app/model"
	"github.com/ecommercio/storefront-backend/internal/app/service"
	apperrors "github.com/ecommercio/storefront-backend/internal/errors"
	"github.com/ecommercio/storefront-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type AdminUserController struct {
	adminUserService service.AdminUserService
	exportService    service.ExportService
}

func NewAdminUserController(adminUserService service.AdminUserService, exportService service.ExportService) *AdminUserController {
	return &AdminUserController{
		adminUserService: adminUserService,
		exportService:    exportService,
	}
}

type SetBannedRequest struct {
	Banned *bool `json:"banned" binding:"required"`
}

type SetRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func adminUserJSON(user *model.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"role":       user.Role,
		"banned":     user.Banned,
		"created_at": user.CreatedAt,
	}
}

// ListUsers returns all accounts for the admin panel
// GET /api/admin/users
func (ctrl *AdminUserController) ListUsers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	users, err := ctrl.adminUserService.ListUsers()
	if err != nil {
		log.Error("Failed to list users", err, nil)
		apperrors.InternalError(c, "Failed to load users")
		return
	}

	result := make([]gin.H, 0, len(users))
	for i := range users {
		result = append(result, adminUserJSON(&users[i]))
	}

	c.JSON(http.StatusOK, result)
}

// SetBanned bans or unbans an account
// POST /api/admin/users/:id/ban
func (ctrl *AdminUserController) SetBanned(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req SetBannedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "banned must be true or false")
		return
	}

	user, err := ctrl.adminUserService.SetBanned(id, *req.Banned)
	if err != nil {
		ctrl.respondUserError(c, err, "set banned")
		return
	}

	log.Info("User ban state changed via API", map[string]interface{}{
		"user_id": user.ID,
		"banned":  user.Banned,
	})
	c.JSON(http.StatusOK, adminUserJSON(user))
}

// SetRole changes an account's role
// POST /api/admin/users/:id/role
func (ctrl *AdminUserController) SetRole(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "role is required")
		return
	}

	user, err := ctrl.adminUserService.SetRole(id, model.UserRole(req.Role))
	if err != nil {
		ctrl.respondUserError(c, err, "set role")
		return
	}

	log.Info("User role changed via API", map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	})
	c.JSON(http.StatusOK, adminUserJSON(user))
}

// ExportProducts streams the product catalog as an XLSX workbook
// GET /api/admin/export/products
func (ctrl *AdminUserController) ExportProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filename := fmt.Sprintf("products-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := ctrl.exportService.ExportProductsXLSX(c.Writer); err != nil {
		log.Error("Failed to export products", err, nil)
		// Headers may already be sent, abort the stream.
		c.Abort()
		return
	}
}

func (ctrl *AdminUserController) respondUserError(c *gin.Context, err error, context string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrUserNotFound):
		apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
	case errors.Is(err, service.ErrLastAdmin):
		apperrors.Conflict(c, apperrors.AuthzLastAdmin, "At least one admin must remain")
	case errors.Is(err, service.ErrInvalidRole):
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Role must be user or admin")
	default:
		log.Error("Admin user operation failed", err, map[string]interface{}{
			"context": context,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, context)
	}
}
