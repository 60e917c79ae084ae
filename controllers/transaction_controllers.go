package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/daneswara/kafe-pos/models"
	"github.com/daneswara/kafe-pos/utils"
)

type TransactionController struct {
	DB *gorm.DB
}

func NewTransactionController(db *gorm.DB) *TransactionController {
	return &TransactionController{DB: db}
}

func (tc *TransactionController) GetAllTransactions(c *gin.Context) {
	db := tc.DB.WithContext(c.Request.Context())
	p := utils.ParsePagination(c)

	query := db.Model(&models.Transaction{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if method := c.Query("method"); method != "" {
		query = query.Where("method = ?", method)
	}
	if date := c.Query("date"); date != "" {
		day, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("format tanggal harus YYYY-MM-DD"))
			return
		}
		query = query.Where("paid_at >= ? AND paid_at < ?", day, day.AddDate(0, 0, 1))
	}

	var total int64
	query.Count(&total)

	var transactions []models.Transaction
	if err := query.Preload("Order").Scopes(p.Scope()).
		Order("paid_at desc").Find(&transactions).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondPage(c, http.StatusOK, "Daftar transaksi", transactions, p.Meta(total))
}

func (tc *TransactionController) GetTransactionByUUID(c *gin.Context) {
	var transaction models.Transaction
	if err := tc.DB.WithContext(c.Request.Context()).
		Preload("Order").Preload("Order.Items").
		Where("uuid = ?", c.Param("uuid")).First(&transaction).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("transaksi tidak ditemukan"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Detail transaksi", transaction)
}

// CreateTransaction memproses pembayaran: order belum dibayar dan tidak
// dibatalkan, pembayaran kurang ditolak, kembalian = bayar - total. Order
// menjadi COMPLETED dan meja dilepas dengan aturan zero-active-orders.
func (tc *TransactionController) CreateTransaction(c *gin.Context) {
	var req struct {
		OrderUUID  string  `json:"order_uuid" binding:"required"`
		Method     string  `json:"method" binding:"required"`
		AmountPaid float64 `json:"amount_paid" binding:"required,gt=0"`
		Notes      string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.IsValidPaymentMethod(req.Method) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("metode pembayaran tidak dikenal"))
		return
	}

	db := tc.DB.WithContext(c.Request.Context())

	var transaction models.Transaction
	err := db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Where("uuid = ?", req.OrderUUID).First(&order).Error; err != nil {
			return errors.New("order tidak ditemukan")
		}

		if order.Status == models.OrderCancelled {
			return errors.New("order sudah dibatalkan")
		}

		var paid int64
		tx.Model(&models.Transaction{}).
			Where("order_id = ? AND status = ?", order.ID, models.TransactionCompleted).
			Count(&paid)
		if paid > 0 {
			return errors.New("order sudah dibayar")
		}

		if req.AmountPaid < order.Total {
			return fmt.Errorf("pembayaran kurang, total order %s",
				utils.FormatCurrency(order.Total))
		}

		transaction = models.Transaction{
			OrderID:      order.ID,
			Method:       req.Method,
			AmountPaid:   req.AmountPaid,
			ChangeAmount: req.AmountPaid - order.Total,
			Status:       models.TransactionCompleted,
			Notes:        req.Notes,
			PaidAt:       time.Now(),
		}
		if err := tx.Create(&transaction).Error; err != nil {
			return err
		}

		order.Status = models.OrderCompleted
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		if order.TableID != nil {
			return releaseTableIfFree(tx, *order.TableID)
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	db.Preload("Order").First(&transaction, transaction.ID)

	utils.InfoLogger.Printf("Pembayaran %s diterima %s, kembalian %s",
		transaction.Method,
		utils.FormatCurrency(transaction.AmountPaid),
		utils.FormatCurrency(transaction.ChangeAmount))
	utils.RespondJSON(c, http.StatusCreated, "Pembayaran berhasil", transaction)
}

// RefundTransaction membalikkan transaksi COMPLETED menjadi REFUNDED; order
// ikut dibatalkan dengan catatan alasan refund.
func (tc *TransactionController) RefundTransaction(c *gin.Context) {
	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	db := tc.DB.WithContext(c.Request.Context())

	var transaction models.Transaction
	if err := db.Where("uuid = ?", c.Param("uuid")).First(&transaction).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("transaksi tidak ditemukan"))
		return
	}

	if transaction.Status != models.TransactionCompleted {
		utils.RespondError(c, http.StatusBadRequest, errors.New("hanya transaksi selesai yang bisa direfund"))
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		transaction.Status = models.TransactionRefunded
		transaction.Notes = strings.TrimSpace(transaction.Notes + "\nRefund: " + req.Reason)
		if err := tx.Save(&transaction).Error; err != nil {
			return err
		}

		var order models.Order
		if err := tx.First(&order, transaction.OrderID).Error; err != nil {
			return err
		}
		order.Status = models.OrderCancelled
		order.Notes = strings.TrimSpace(order.Notes + "\nRefund: " + req.Reason)
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		if order.TableID != nil {
			return releaseTableIfFree(tx, *order.TableID)
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Transaksi %s direfund: %s", transaction.UUID, req.Reason)
	utils.RespondJSON(c, http.StatusOK, "Transaksi direfund", transaction)
}

// GetDailyReport merangkum transaksi COMPLETED pada satu tanggal: total
// penjualan dan rincian per metode pembayaran.
func (tc *TransactionController) GetDailyReport(c *gin.Context) {
	date := c.DefaultQuery("date", time.Now().Format("2006-01-02"))
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("format tanggal harus YYYY-MM-DD"))
		return
	}
	next := day.AddDate(0, 0, 1)

	db := tc.DB.WithContext(c.Request.Context())

	var summary struct {
		TotalTransactions int64   `json:"total_transactions"`
		TotalSales        float64 `json:"total_sales"`
	}
	row := db.Model(&models.Transaction{}).
		Select("COUNT(*) as total_transactions, COALESCE(SUM(amount_paid - change_amount), 0) as total_sales").
		Where("status = ? AND paid_at >= ? AND paid_at < ?", models.TransactionCompleted, day, next).
		Row()
	if err := row.Scan(&summary.TotalTransactions, &summary.TotalSales); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var byMethod []struct {
		Method string  `json:"method"`
		Count  int64   `json:"count"`
		Total  float64 `json:"total"`
	}
	if err := db.Model(&models.Transaction{}).
		Select("method, COUNT(*) as count, COALESCE(SUM(amount_paid - change_amount), 0) as total").
		Where("status = ? AND paid_at >= ? AND paid_at < ?", models.TransactionCompleted, day, next).
		Group("method").
		Scan(&byMethod).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Laporan penjualan harian", gin.H{
		"date":                  date,
		"total_transactions":    summary.TotalTransactions,
		"total_sales":           summary.TotalSales,
		"total_sales_formatted": utils.FormatCurrency(summary.TotalSales),
		"by_method":             byMethod,
	})
}
