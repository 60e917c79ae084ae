package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/daneswara/kafe-pos/models"
	"github.com/daneswara/kafe-pos/utils"
)

var tableStatuses = map[string]bool{
	models.TableAvailable:   true,
	models.TableOccupied:    true,
	models.TableReserved:    true,
	models.TableMaintenance: true,
}

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

func (tc *TableController) GetAllTables(c *gin.Context) {
	db := tc.DB.WithContext(c.Request.Context())
	p := utils.ParsePagination(c)

	query := db.Model(&models.Table{})
	if p.Search != "" {
		query = query.Where("number LIKE ?", "%"+p.Search+"%")
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var tables []models.Table
	if err := query.Scopes(p.Scope()).Order("number asc").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondPage(c, http.StatusOK, "Daftar meja", tables, p.Meta(total))
}

func (tc *TableController) GetTableByUUID(c *gin.Context) {
	var table models.Table
	if err := tc.DB.WithContext(c.Request.Context()).
		Where("uuid = ?", c.Param("uuid")).First(&table).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("meja tidak ditemukan"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Detail meja", table)
}

func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		Number   string `json:"number" binding:"required"`
		Capacity int    `json:"capacity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	db := tc.DB.WithContext(c.Request.Context())

	var count int64
	db.Model(&models.Table{}).Where("number = ?", req.Number).Count(&count)
	if count > 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("nomor meja sudah dipakai"))
		return
	}

	table := models.Table{
		Number:   req.Number,
		Capacity: req.Capacity,
		Status:   models.TableAvailable,
	}
	if table.Capacity <= 0 {
		table.Capacity = 2
	}

	if err := db.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Meja baru: %s (kapasitas %d)", table.Number, table.Capacity)
	utils.RespondJSON(c, http.StatusCreated, "Meja dibuat", table)
}

func (tc *TableController) UpdateTable(c *gin.Context) {
	var req struct {
		Number   *string `json:"number"`
		Capacity *int    `json:"capacity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	db := tc.DB.WithContext(c.Request.Context())

	var table models.Table
	if err := db.Where("uuid = ?", c.Param("uuid")).First(&table).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("meja tidak ditemukan"))
		return
	}

	if req.Number != nil && *req.Number != table.Number {
		var count int64
		db.Model(&models.Table{}).Where("number = ? AND id != ?", *req.Number, table.ID).Count(&count)
		if count > 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("nomor meja sudah dipakai"))
			return
		}
		table.Number = *req.Number
	}
	if req.Capacity != nil && *req.Capacity > 0 {
		table.Capacity = *req.Capacity
	}

	if err := db.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Meja diperbarui", table)
}

// UpdateTableStatus mengganti status meja secara manual (mis. RESERVED atau
// MAINTENANCE). Meja dengan order aktif tidak bisa dipaksa AVAILABLE.
func (tc *TableController) UpdateTableStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !tableStatuses[req.Status] {
		utils.RespondError(c, http.StatusBadRequest, errors.New("status meja tidak dikenal"))
		return
	}

	db := tc.DB.WithContext(c.Request.Context())

	var table models.Table
	if err := db.Where("uuid = ?", c.Param("uuid")).First(&table).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("meja tidak ditemukan"))
		return
	}

	if req.Status == models.TableAvailable {
		var active int64
		db.Model(&models.Order{}).
			Where("table_id = ? AND status IN ?", table.ID, models.ActiveOrderStatuses).
			Count(&active)
		if active > 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("meja masih punya order aktif"))
			return
		}
	}

	table.Status = req.Status
	if err := db.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Status meja %s diganti ke %s", table.Number, table.Status)
	utils.RespondJSON(c, http.StatusOK, "Status meja diperbarui", table)
}

// DeleteTable ditolak selama meja masih punya order non-terminal.
func (tc *TableController) DeleteTable(c *gin.Context) {
	db := tc.DB.WithContext(c.Request.Context())

	var table models.Table
	if err := db.Where("uuid = ?", c.Param("uuid")).First(&table).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("meja tidak ditemukan"))
		return
	}

	var active int64
	db.Model(&models.Order{}).
		Where("table_id = ? AND status IN ?", table.ID, models.ActiveOrderStatuses).
		Count(&active)
	if active > 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("meja masih punya order aktif"))
		return
	}

	if err := softDelete(db, &table, c.GetString("user_name")); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Meja dihapus", gin.H{"uuid": table.UUID})
}
