package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/daneswara/kafe-pos/models"
	"github.com/daneswara/kafe-pos/utils"
)

type ProductController struct {
	DB *gorm.DB
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

// GetAllProducts -> list produk dengan filter kategori, is_active, dan search.
func (pc *ProductController) GetAllProducts(c *gin.Context) {
	db := pc.DB.WithContext(c.Request.Context())
	p := utils.ParsePagination(c)

	query := db.Model(&models.Product{})
	if p.Search != "" {
		query = query.Where("name LIKE ?", "%"+p.Search+"%")
	}
	if catUUID := c.Query("category_uuid"); catUUID != "" {
		var category models.Category
		if err := db.Where("uuid = ?", catUUID).First(&category).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, errors.New("kategori tidak ditemukan"))
			return
		}
		query = query.Where("category_id = ?", category.ID)
	}
	if isActive := c.Query("is_active"); isActive != "" {
		query = query.Where("is_active = ?", isActive == "true")
	}

	var total int64
	query.Count(&total)

	var products []models.Product
	if err := query.Preload("Category").Preload("Media").
		Scopes(p.Scope()).Order("name asc").Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondPage(c, http.StatusOK, "Daftar produk", products, p.Meta(total))
}

func (pc *ProductController) GetProductByUUID(c *gin.Context) {
	var product models.Product
	if err := pc.DB.WithContext(c.Request.Context()).
		Preload("Category").Preload("Media").
		Where("uuid = ?", c.Param("uuid")).First(&product).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("produk tidak ditemukan"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Detail produk", product)
}

func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req struct {
		CategoryUUID string  `json:"category_uuid" binding:"required"`
		MediaUUID    string  `json:"media_uuid"`
		Name         string  `json:"name" binding:"required"`
		Description  string  `json:"description"`
		Price        float64 `json:"price" binding:"required,gt=0"`
		Stock        int     `json:"stock"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	db := pc.DB.WithContext(c.Request.Context())

	var category models.Category
	if err := db.Where("uuid = ?", req.CategoryUUID).First(&category).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("kategori tidak ditemukan"))
		return
	}

	product := models.Product{
		CategoryID:  category.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		IsActive:    true,
	}

	if req.MediaUUID != "" {
		var media models.Media
		if err := db.Where("uuid = ?", req.MediaUUID).First(&media).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, errors.New("media tidak ditemukan"))
			return
		}
		product.MediaID = &media.ID
	}

	if err := db.Create(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Produk baru: %s (%s)", product.Name, utils.FormatCurrency(product.Price))
	utils.RespondJSON(c, http.StatusCreated, "Produk dibuat", product)
}

func (pc *ProductController) UpdateProduct(c *gin.Context) {
	var req struct {
		CategoryUUID *string  `json:"category_uuid"`
		MediaUUID    *string  `json:"media_uuid"`
		Name         *string  `json:"name"`
		Description  *string  `json:"description"`
		Price        *float64 `json:"price"`
		Stock        *int     `json:"stock"`
		IsActive     *bool    `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	db := pc.DB.WithContext(c.Request.Context())

	var product models.Product
	if err := db.Where("uuid = ?", c.Param("uuid")).First(&product).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("produk tidak ditemukan"))
		return
	}

	if req.CategoryUUID != nil {
		var category models.Category
		if err := db.Where("uuid = ?", *req.CategoryUUID).First(&category).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, errors.New("kategori tidak ditemukan"))
			return
		}
		product.CategoryID = category.ID
	}
	if req.MediaUUID != nil {
		if *req.MediaUUID == "" {
			product.MediaID = nil
		} else {
			var media models.Media
			if err := db.Where("uuid = ?", *req.MediaUUID).First(&media).Error; err != nil {
				utils.RespondError(c, http.StatusNotFound, errors.New("media tidak ditemukan"))
				return
			}
			product.MediaID = &media.ID
		}
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("harga harus lebih dari 0"))
			return
		}
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := db.Save(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Produk diperbarui", product)
}

func (pc *ProductController) DeleteProduct(c *gin.Context) {
	db := pc.DB.WithContext(c.Request.Context())

	var product models.Product
	if err := db.Where("uuid = ?", c.Param("uuid")).First(&product).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("produk tidak ditemukan"))
		return
	}

	if err := softDelete(db, &product, c.GetString("user_name")); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Produk dihapus", gin.H{"uuid": product.UUID})
}
