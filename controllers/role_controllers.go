package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/daneswara/kafe-pos/models"
	"github.com/daneswara/kafe-pos/services"
	"github.com/daneswara/kafe-pos/utils"
)

type RoleController struct {
	DB    *gorm.DB
	Cache *services.CacheService
}

func NewRoleController(db *gorm.DB, cache *services.CacheService) *RoleController {
	return &RoleController{DB: db, Cache: cache}
}

func (rc *RoleController) GetAllRoles(c *gin.Context) {
	db := rc.DB.WithContext(c.Request.Context())
	p := utils.ParsePagination(c)

	query := db.Model(&models.Role{})
	if p.Search != "" {
		query = query.Where("name LIKE ?", "%"+p.Search+"%")
	}

	var total int64
	query.Count(&total)

	var roles []models.Role
	if err := query.Scopes(p.Scope()).Order("name asc").Find(&roles).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondPage(c, http.StatusOK, "Daftar role", roles, p.Meta(total))
}

func (rc *RoleController) GetRoleByUUID(c *gin.Context) {
	var role models.Role
	if err := rc.DB.WithContext(c.Request.Context()).
		Preload("Menus").Where("uuid = ?", c.Param("uuid")).First(&role).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("role tidak ditemukan"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Detail role", role)
}

func (rc *RoleController) CreateRole(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	db := rc.DB.WithContext(c.Request.Context())

	var count int64
	db.Model(&models.Role{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("nama role sudah dipakai"))
		return
	}

	role := models.Role{Name: req.Name, Description: req.Description}
	if err := db.Create(&role).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Role dibuat", role)
}

func (rc *RoleController) UpdateRole(c *gin.Context) {
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	db := rc.DB.WithContext(c.Request.Context())

	var role models.Role
	if err := db.Where("uuid = ?", c.Param("uuid")).First(&role).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("role tidak ditemukan"))
		return
	}

	if req.Name != nil && *req.Name != role.Name {
		var count int64
		db.Model(&models.Role{}).Where("name = ? AND id != ?", *req.Name, role.ID).Count(&count)
		if count > 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("nama role sudah dipakai"))
			return
		}
		role.Name = *req.Name
	}
	if req.Description != nil {
		role.Description = *req.Description
	}

	if err := db.Save(&role).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Role diperbarui", role)
}

// DeleteRole ditolak selama masih ada user yang memegang role.
func (rc *RoleController) DeleteRole(c *gin.Context) {
	db := rc.DB.WithContext(c.Request.Context())

	var role models.Role
	if err := db.Where("uuid = ?", c.Param("uuid")).First(&role).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("role tidak ditemukan"))
		return
	}

	var holders int64
	db.Table("user_roles").Where("role_id = ?", role.ID).Count(&holders)
	if holders > 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("role masih dipakai user"))
		return
	}

	if err := softDelete(db, &role, c.GetString("user_name")); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	rc.Cache.InvalidateMenus(c.Request.Context())
	utils.RespondJSON(c, http.StatusOK, "Role dihapus", gin.H{"uuid": role.UUID})
}

// UpdateMenuAccess mengganti seluruh menu yang boleh dilihat role (replace set).
func (rc *RoleController) UpdateMenuAccess(c *gin.Context) {
	var req struct {
		MenuUUIDs []string `json:"menu_uuids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	db := rc.DB.WithContext(c.Request.Context())

	var role models.Role
	if err := db.Where("uuid = ?", c.Param("uuid")).First(&role).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("role tidak ditemukan"))
		return
	}

	var menus []models.Menu
	if len(req.MenuUUIDs) > 0 {
		if err := db.Where("uuid IN ?", req.MenuUUIDs).Find(&menus).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		if len(menus) != len(req.MenuUUIDs) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("ada menu yang tidak ditemukan"))
			return
		}
	}

	if err := db.Model(&role).Association("Menus").Replace(&menus); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	rc.Cache.InvalidateMenus(c.Request.Context())

	utils.InfoLogger.Printf("Menu access role %s diganti (%d menu)", role.Name, len(menus))
	utils.RespondJSON(c, http.StatusOK, "Menu access diperbarui", gin.H{
		"role":  role.Name,
		"total": len(menus),
	})
}
