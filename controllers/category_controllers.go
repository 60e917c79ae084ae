package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/daneswara/kafe-pos/models"
	"github.com/daneswara/kafe-pos/utils"
)

type CategoryController struct {
	DB *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db}
}

func (cc *CategoryController) GetAllCategories(c *gin.Context) {
	db := cc.DB.WithContext(c.Request.Context())
	p := utils.ParsePagination(c)

	query := db.Model(&models.Category{})
	if p.Search != "" {
		query = query.Where("name LIKE ?", "%"+p.Search+"%")
	}

	var total int64
	query.Count(&total)

	var categories []models.Category
	if err := query.Scopes(p.Scope()).Order("name asc").Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondPage(c, http.StatusOK, "Daftar kategori", categories, p.Meta(total))
}

func (cc *CategoryController) GetCategoryByUUID(c *gin.Context) {
	var category models.Category
	if err := cc.DB.WithContext(c.Request.Context()).
		Where("uuid = ?", c.Param("uuid")).First(&category).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("kategori tidak ditemukan"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Detail kategori", category)
}

func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	db := cc.DB.WithContext(c.Request.Context())

	var count int64
	db.Model(&models.Category{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("nama kategori sudah dipakai"))
		return
	}

	category := models.Category{Name: req.Name, Description: req.Description}
	if err := db.Create(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Kategori dibuat", category)
}

func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	db := cc.DB.WithContext(c.Request.Context())

	var category models.Category
	if err := db.Where("uuid = ?", c.Param("uuid")).First(&category).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("kategori tidak ditemukan"))
		return
	}

	if req.Name != nil && *req.Name != category.Name {
		var count int64
		db.Model(&models.Category{}).Where("name = ? AND id != ?", *req.Name, category.ID).Count(&count)
		if count > 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("nama kategori sudah dipakai"))
			return
		}
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := db.Save(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Kategori diperbarui", category)
}

// DeleteCategory ditolak selama masih direferensikan produk aktif.
func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	db := cc.DB.WithContext(c.Request.Context())

	var category models.Category
	if err := db.Where("uuid = ?", c.Param("uuid")).First(&category).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("kategori tidak ditemukan"))
		return
	}

	var products int64
	db.Model(&models.Product{}).Where("category_id = ?", category.ID).Count(&products)
	if products > 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("kategori masih dipakai produk"))
		return
	}

	if err := softDelete(db, &category, c.GetString("user_name")); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Kategori dihapus", gin.H{"uuid": category.UUID})
}
