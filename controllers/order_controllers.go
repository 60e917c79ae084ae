package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/daneswara/kafe-pos/models"
	"github.com/daneswara/kafe-pos/utils"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// GetAllOrders -> list order dengan filter status, meja, dan tanggal.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	db := oc.DB.WithContext(c.Request.Context())
	p := utils.ParsePagination(c)

	query := db.Model(&models.Order{})
	if p.Search != "" {
		query = query.Where("order_number LIKE ?", "%"+p.Search+"%")
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if tableUUID := c.Query("table_uuid"); tableUUID != "" {
		var table models.Table
		if err := db.Where("uuid = ?", tableUUID).First(&table).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, errors.New("meja tidak ditemukan"))
			return
		}
		query = query.Where("table_id = ?", table.ID)
	}
	if date := c.Query("date"); date != "" {
		day, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("format tanggal harus YYYY-MM-DD"))
			return
		}
		query = query.Where("created_at >= ? AND created_at < ?", day, day.AddDate(0, 0, 1))
	}

	var total int64
	query.Count(&total)

	var orders []models.Order
	if err := query.Preload("Items").Preload("Items.Product").
		Preload("Table").Preload("Customer").Preload("Discount").
		Scopes(p.Scope()).Order("created_at desc").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondPage(c, http.StatusOK, "Daftar order", orders, p.Meta(total))
}

func (oc *OrderController) GetOrderByUUID(c *gin.Context) {
	var order models.Order
	if err := oc.DB.WithContext(c.Request.Context()).
		Preload("Items").Preload("Items.Product").
		Preload("Table").Preload("Customer").Preload("Discount").
		Where("uuid = ?", c.Param("uuid")).First(&order).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order tidak ditemukan"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Detail order", order)
}

// CreateOrder membuat order dalam satu transaksi: validasi meja/customer/
// produk, potong stok, terapkan satu kode diskon (kuota naik atomik),
// pajak 10% atas (subtotal - diskon), lalu meja DINE_IN menjadi OCCUPIED.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	type itemReq struct {
		ProductUUID string `json:"product_uuid" binding:"required"`
		Quantity    int    `json:"quantity" binding:"required,gt=0"`
		Notes       string `json:"notes"`
	}
	var req struct {
		Type         string    `json:"type" binding:"required,oneof=DINE_IN TAKEAWAY"`
		TableUUID    string    `json:"table_uuid"`
		CustomerUUID string    `json:"customer_uuid"`
		DiscountCode string    `json:"discount_code"`
		Notes        string    `json:"notes"`
		Items        []itemReq `json:"items" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	db := oc.DB.WithContext(c.Request.Context())

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		order = models.Order{
			Type:   req.Type,
			Status: models.OrderPending,
			Notes:  req.Notes,
		}

		var table *models.Table
		if req.Type == models.OrderDineIn {
			if req.TableUUID == "" {
				return errors.New("order dine-in membutuhkan meja")
			}
			table = &models.Table{}
			if err := tx.Where("uuid = ?", req.TableUUID).First(table).Error; err != nil {
				return errors.New("meja tidak ditemukan")
			}
			if table.Status != models.TableAvailable && table.Status != models.TableReserved {
				return errors.New("meja tidak tersedia")
			}
			order.TableID = &table.ID
		}

		if req.CustomerUUID != "" {
			var customer models.Customer
			if err := tx.Where("uuid = ?", req.CustomerUUID).First(&customer).Error; err != nil {
				return errors.New("customer tidak ditemukan")
			}
			order.CustomerID = &customer.ID
		}

		var subtotal float64
		items := make([]models.OrderItem, 0, len(req.Items))
		for _, item := range req.Items {
			var product models.Product
			if err := tx.Where("uuid = ?", item.ProductUUID).First(&product).Error; err != nil {
				return fmt.Errorf("produk %s tidak ditemukan", item.ProductUUID)
			}
			if !product.IsActive {
				return fmt.Errorf("produk %s sedang tidak dijual", product.Name)
			}
			if product.Stock < item.Quantity {
				return fmt.Errorf("stok %s tidak mencukupi", product.Name)
			}
			if err := tx.Model(&product).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity)).Error; err != nil {
				return err
			}

			subtotal += product.Price * float64(item.Quantity)
			items = append(items, models.OrderItem{
				ProductID: product.ID,
				Quantity:  item.Quantity,
				Price:     product.Price, // snapshot harga saat order
				Notes:     item.Notes,
				Status:    models.OrderItemPending,
			})
		}

		order.Subtotal = subtotal

		if req.DiscountCode != "" {
			discount, amount, err := validateDiscount(tx, req.DiscountCode, subtotal)
			if err != nil {
				return err
			}
			// kuota naik atomik, dijaga ulang terhadap usage_limit
			update := tx.Model(&models.Discount{}).
				Where("id = ? AND (usage_limit IS NULL OR usage_count < usage_limit)", discount.ID).
				UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
			if update.Error != nil {
				return update.Error
			}
			if update.RowsAffected == 0 {
				return errors.New("kuota pemakaian diskon habis")
			}
			order.DiscountID = &discount.ID
			order.DiscountAmount = amount
		}

		order.TaxAmount = (order.Subtotal - order.DiscountAmount) * models.TaxRate
		order.Total = order.Subtotal - order.DiscountAmount + order.TaxAmount

		number, err := generateOrderNumber(tx)
		if err != nil {
			return err
		}
		order.OrderNumber = number
		order.Items = items

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if table != nil {
			table.Status = models.TableOccupied
			if err := tx.Save(table).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	db.Preload("Items").Preload("Items.Product").Preload("Table").
		Preload("Customer").Preload("Discount").First(&order, order.ID)

	utils.InfoLogger.Printf("Order %s dibuat, total %s",
		order.OrderNumber, utils.FormatCurrency(order.Total))
	utils.RespondJSON(c, http.StatusCreated, "Order dibuat", order)
}

// UpdateOrderStatus memindahkan status sesuai adjacency map; transisi lain
// ditolak. Status terminal melepas meja jika tidak ada order aktif lain.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	db := oc.DB.WithContext(c.Request.Context())

	var order models.Order
	if err := db.Preload("Items").Where("uuid = ?", c.Param("uuid")).First(&order).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order tidak ditemukan"))
		return
	}

	if !models.CanTransitionOrder(order.Status, req.Status) {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("transisi status %s ke %s tidak diizinkan", order.Status, req.Status))
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		order.Status = req.Status
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		if req.Status == models.OrderCancelled {
			// stok produk dikembalikan untuk item yang belum dibatalkan
			for _, item := range order.Items {
				if item.Status == models.OrderItemCancelled {
					continue
				}
				if err := tx.Model(&models.Product{}).Where("id = ?", item.ProductID).
					UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
					return err
				}
			}
		}

		if models.IsTerminalOrderStatus(req.Status) && order.TableID != nil {
			return releaseTableIfFree(tx, *order.TableID)
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order %s -> %s", order.OrderNumber, order.Status)
	utils.RespondJSON(c, http.StatusOK, "Status order diperbarui", order)
}

// AddItems menambahkan item ke order yang belum terminal lalu menghitung
// ulang subtotal/pajak/total.
func (oc *OrderController) AddItems(c *gin.Context) {
	type itemReq struct {
		ProductUUID string `json:"product_uuid" binding:"required"`
		Quantity    int    `json:"quantity" binding:"required,gt=0"`
		Notes       string `json:"notes"`
	}
	var req struct {
		Items []itemReq `json:"items" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	db := oc.DB.WithContext(c.Request.Context())

	var order models.Order
	if err := db.Preload("Items").Where("uuid = ?", c.Param("uuid")).First(&order).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order tidak ditemukan"))
		return
	}

	if models.IsTerminalOrderStatus(order.Status) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("order sudah selesai atau dibatalkan"))
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, item := range req.Items {
			var product models.Product
			if err := tx.Where("uuid = ?", item.ProductUUID).First(&product).Error; err != nil {
				return fmt.Errorf("produk %s tidak ditemukan", item.ProductUUID)
			}
			if !product.IsActive {
				return fmt.Errorf("produk %s sedang tidak dijual", product.Name)
			}
			if product.Stock < item.Quantity {
				return fmt.Errorf("stok %s tidak mencukupi", product.Name)
			}
			if err := tx.Model(&product).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity)).Error; err != nil {
				return err
			}

			orderItem := models.OrderItem{
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  item.Quantity,
				Price:     product.Price,
				Notes:     item.Notes,
				Status:    models.OrderItemPending,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
			order.Items = append(order.Items, orderItem)
		}

		order.Recalculate()
		return tx.Save(&order).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	db.Preload("Items").Preload("Items.Product").First(&order, order.ID)
	utils.RespondJSON(c, http.StatusOK, "Item ditambahkan", order)
}

// UpdateItemStatus mengganti status satu item; ditolak saat order terminal.
// Item yang dibatalkan mengembalikan stok dan memicu hitung ulang total.
func (oc *OrderController) UpdateItemStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required,oneof=PENDING PREPARING READY SERVED CANCELLED"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	db := oc.DB.WithContext(c.Request.Context())

	var item models.OrderItem
	if err := db.Where("uuid = ?", c.Param("item_uuid")).First(&item).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("item tidak ditemukan"))
		return
	}

	var order models.Order
	if err := db.Preload("Items").First(&order, item.OrderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order tidak ditemukan"))
		return
	}
	if order.UUID != c.Param("uuid") {
		utils.RespondError(c, http.StatusBadRequest, errors.New("item bukan milik order ini"))
		return
	}
	if models.IsTerminalOrderStatus(order.Status) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("order sudah selesai atau dibatalkan"))
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		cancelling := req.Status == models.OrderItemCancelled && item.Status != models.OrderItemCancelled

		item.Status = req.Status
		if err := tx.Save(&item).Error; err != nil {
			return err
		}

		if cancelling {
			if err := tx.Model(&models.Product{}).Where("id = ?", item.ProductID).
				UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
				return err
			}
			for i := range order.Items {
				if order.Items[i].ID == item.ID {
					order.Items[i].Status = models.OrderItemCancelled
				}
			}
			order.Recalculate()
			return tx.Save(&order).Error
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Status item diperbarui", item)
}

// releaseTableIfFree mengembalikan meja ke AVAILABLE hanya jika tidak ada
// lagi order non-terminal yang menahannya.
func releaseTableIfFree(tx *gorm.DB, tableID uint) error {
	var active int64
	if err := tx.Model(&models.Order{}).
		Where("table_id = ? AND status IN ?", tableID, models.ActiveOrderStatuses).
		Count(&active).Error; err != nil {
		return err
	}
	if active > 0 {
		return nil
	}
	return tx.Model(&models.Table{}).Where("id = ?", tableID).
		Update("status", models.TableAvailable).Error
}

// generateOrderNumber membuat nomor ORD-YYYYMMDD-NNNN urut per hari.
func generateOrderNumber(tx *gorm.DB) (string, error) {
	today := time.Now().Format("20060102")

	var count int64
	start, _ := time.ParseInLocation("20060102", today, time.Local)
	if err := tx.Model(&models.Order{}).Unscoped().
		Where("created_at >= ?", start).Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD-%s-%04d", today, count+1), nil
}
