package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/daneswara/kafe-pos/models"
	"github.com/daneswara/kafe-pos/utils"
)

type DiscountController struct {
	DB *gorm.DB
}

func NewDiscountController(db *gorm.DB) *DiscountController {
	return &DiscountController{DB: db}
}

// validateDiscount memeriksa kode diskon terhadap subtotal: flag aktif,
// rentang tanggal, kuota pemakaian, dan minimal belanja. Mengembalikan
// diskon beserta nominal potongannya.
func validateDiscount(db *gorm.DB, code string, subtotal float64) (*models.Discount, float64, error) {
	var discount models.Discount
	if err := db.Where("code = ?", code).First(&discount).Error; err != nil {
		return nil, 0, errors.New("kode diskon tidak ditemukan")
	}

	if !discount.IsActive {
		return nil, 0, errors.New("kode diskon tidak aktif")
	}

	now := time.Now()
	if now.Before(discount.StartDate) || now.After(discount.EndDate) {
		return nil, 0, errors.New("kode diskon di luar masa berlaku")
	}

	if discount.UsageLimit != nil && discount.UsageCount >= *discount.UsageLimit {
		return nil, 0, errors.New("kuota pemakaian diskon habis")
	}

	if subtotal < discount.MinPurchase {
		return nil, 0, errors.New("belanja belum mencapai minimal pembelian diskon")
	}

	return &discount, discount.ComputeAmount(subtotal), nil
}

func (dc *DiscountController) GetAllDiscounts(c *gin.Context) {
	db := dc.DB.WithContext(c.Request.Context())
	p := utils.ParsePagination(c)

	query := db.Model(&models.Discount{})
	if p.Search != "" {
		like := "%" + p.Search + "%"
		query = query.Where("code LIKE ? OR name LIKE ?", like, like)
	}
	if isActive := c.Query("is_active"); isActive != "" {
		query = query.Where("is_active = ?", isActive == "true")
	}

	var total int64
	query.Count(&total)

	var discounts []models.Discount
	if err := query.Scopes(p.Scope()).Order("created_at desc").Find(&discounts).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondPage(c, http.StatusOK, "Daftar diskon", discounts, p.Meta(total))
}

func (dc *DiscountController) GetDiscountByUUID(c *gin.Context) {
	var discount models.Discount
	if err := dc.DB.WithContext(c.Request.Context()).
		Where("uuid = ?", c.Param("uuid")).First(&discount).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("diskon tidak ditemukan"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Detail diskon", discount)
}

func (dc *DiscountController) CreateDiscount(c *gin.Context) {
	var req struct {
		Code        string    `json:"code" binding:"required"`
		Name        string    `json:"name"`
		Type        string    `json:"type" binding:"required,oneof=PERCENTAGE FIXED"`
		Value       float64   `json:"value" binding:"required,gt=0"`
		MinPurchase float64   `json:"min_purchase"`
		MaxDiscount float64   `json:"max_discount"`
		StartDate   time.Time `json:"start_date" binding:"required"`
		EndDate     time.Time `json:"end_date" binding:"required"`
		UsageLimit  *int      `json:"usage_limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !req.EndDate.After(req.StartDate) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("end_date harus setelah start_date"))
		return
	}
	if req.Type == models.DiscountPercentage && req.Value > 100 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("persentase diskon maksimal 100"))
		return
	}

	db := dc.DB.WithContext(c.Request.Context())

	var count int64
	db.Model(&models.Discount{}).Where("code = ?", req.Code).Count(&count)
	if count > 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("kode diskon sudah dipakai"))
		return
	}

	discount := models.Discount{
		Code:        req.Code,
		Name:        req.Name,
		Type:        req.Type,
		Value:       req.Value,
		MinPurchase: req.MinPurchase,
		MaxDiscount: req.MaxDiscount,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		UsageLimit:  req.UsageLimit,
		IsActive:    true,
	}

	if err := db.Create(&discount).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Diskon dibuat", discount)
}

func (dc *DiscountController) UpdateDiscount(c *gin.Context) {
	var req struct {
		Name        *string    `json:"name"`
		Value       *float64   `json:"value"`
		MinPurchase *float64   `json:"min_purchase"`
		MaxDiscount *float64   `json:"max_discount"`
		StartDate   *time.Time `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
		UsageLimit  *int       `json:"usage_limit"`
		IsActive    *bool      `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	db := dc.DB.WithContext(c.Request.Context())

	var discount models.Discount
	if err := db.Where("uuid = ?", c.Param("uuid")).First(&discount).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("diskon tidak ditemukan"))
		return
	}

	if req.Name != nil {
		discount.Name = *req.Name
	}
	if req.Value != nil {
		if *req.Value <= 0 || (discount.Type == models.DiscountPercentage && *req.Value > 100) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("nilai diskon tidak valid"))
			return
		}
		discount.Value = *req.Value
	}
	if req.MinPurchase != nil {
		discount.MinPurchase = *req.MinPurchase
	}
	if req.MaxDiscount != nil {
		discount.MaxDiscount = *req.MaxDiscount
	}
	if req.StartDate != nil {
		discount.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		discount.EndDate = *req.EndDate
	}
	if !discount.EndDate.After(discount.StartDate) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("end_date harus setelah start_date"))
		return
	}
	if req.UsageLimit != nil {
		discount.UsageLimit = req.UsageLimit
	}
	if req.IsActive != nil {
		discount.IsActive = *req.IsActive
	}

	if err := db.Save(&discount).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Diskon diperbarui", discount)
}

// ValidateDiscount -> cek kode tanpa memakai kuota, dipakai kasir sebelum
// membuat order.
func (dc *DiscountController) ValidateDiscount(c *gin.Context) {
	var req struct {
		Code     string  `json:"code" binding:"required"`
		Subtotal float64 `json:"subtotal" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	discount, amount, err := validateDiscount(dc.DB.WithContext(c.Request.Context()), req.Code, req.Subtotal)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Kode diskon valid", gin.H{
		"discount":        discount,
		"discount_amount": amount,
	})
}

func (dc *DiscountController) DeleteDiscount(c *gin.Context) {
	db := dc.DB.WithContext(c.Request.Context())

	var discount models.Discount
	if err := db.Where("uuid = ?", c.Param("uuid")).First(&discount).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("diskon tidak ditemukan"))
		return
	}

	if err := softDelete(db, &discount, c.GetString("user_name")); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Diskon dihapus", gin.H{"uuid": discount.UUID})
}
