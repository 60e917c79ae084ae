package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/daneswara/kafe-pos/controllers"
	"github.com/daneswara/kafe-pos/models"
)

type transactionResp struct {
	UUID         string  `json:"uuid"`
	Method       string  `json:"method"`
	AmountPaid   float64 `json:"amount_paid"`
	ChangeAmount float64 `json:"change_amount"`
	Status       string  `json:"status"`
}

func setupPaymentRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	orderCtrl := controllers.NewOrderController(db)
	txCtrl := controllers.NewTransactionController(db)
	r.POST("/orders", orderCtrl.CreateOrder)
	r.POST("/transactions", txCtrl.CreateTransaction)
	r.GET("/transactions/:uuid", txCtrl.GetTransactionByUUID)
	r.POST("/transactions/:uuid/refund", txCtrl.RefundTransaction)
	r.GET("/reports/daily", txCtrl.GetDailyReport)
	return r
}

func TestCreateTransactionComputesChange(t *testing.T) {
	db := openTestDB(t)
	product, table := seedCatalog(t, db)
	r := setupPaymentRouter(db)

	order := createOrder(t, r, map[string]interface{}{
		"type":       models.OrderDineIn,
		"table_uuid": table.UUID,
		"items": []map[string]interface{}{
			{"product_uuid": product.UUID, "quantity": 3},
		},
	})
	assert.Equal(t, 39600.0, order.Total)

	// kurang bayar ditolak
	w := doRequest(r, http.MethodPost, "/transactions", map[string]interface{}{
		"order_uuid":  order.UUID,
		"method":      models.PaymentCash,
		"amount_paid": 30000,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPost, "/transactions", map[string]interface{}{
		"order_uuid":  order.UUID,
		"method":      models.PaymentCash,
		"amount_paid": 50000,
	}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	var tx transactionResp
	decodeData(t, w, &tx)
	assert.Equal(t, 10400.0, tx.ChangeAmount)
	assert.Equal(t, models.TransactionCompleted, tx.Status)

	// order selesai, meja kembali AVAILABLE
	var freshOrder models.Order
	db.First(&freshOrder, "uuid = ?", order.UUID)
	assert.Equal(t, models.OrderCompleted, freshOrder.Status)

	var freshTable models.Table
	db.First(&freshTable, table.ID)
	assert.Equal(t, models.TableAvailable, freshTable.Status)

	// bayar dua kali ditolak
	w = doRequest(r, http.MethodPost, "/transactions", map[string]interface{}{
		"order_uuid":  order.UUID,
		"method":      models.PaymentCash,
		"amount_paid": 50000,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTransactionRejectsUnknownMethod(t *testing.T) {
	db := openTestDB(t)
	product, _ := seedCatalog(t, db)
	r := setupPaymentRouter(db)

	order := createOrder(t, r, map[string]interface{}{
		"type": models.OrderTakeaway,
		"items": []map[string]interface{}{
			{"product_uuid": product.UUID, "quantity": 1},
		},
	})

	w := doRequest(r, http.MethodPost, "/transactions", map[string]interface{}{
		"order_uuid":  order.UUID,
		"method":      "BARTER",
		"amount_paid": 100000,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefundTransaction(t *testing.T) {
	db := openTestDB(t)
	product, table := seedCatalog(t, db)
	r := setupPaymentRouter(db)

	order := createOrder(t, r, map[string]interface{}{
		"type":       models.OrderDineIn,
		"table_uuid": table.UUID,
		"items": []map[string]interface{}{
			{"product_uuid": product.UUID, "quantity": 1},
		},
	})

	w := doRequest(r, http.MethodPost, "/transactions", map[string]interface{}{
		"order_uuid":  order.UUID,
		"method":      models.PaymentQRIS,
		"amount_paid": 13200,
	}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	var tx transactionResp
	decodeData(t, w, &tx)
	assert.Equal(t, 0.0, tx.ChangeAmount)

	w = doRequest(r, http.MethodPost, "/transactions/"+tx.UUID+"/refund",
		map[string]interface{}{"reason": "pesanan salah"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var refunded transactionResp
	decodeData(t, w, &refunded)
	assert.Equal(t, models.TransactionRefunded, refunded.Status)

	var freshOrder models.Order
	db.First(&freshOrder, "uuid = ?", order.UUID)
	assert.Equal(t, models.OrderCancelled, freshOrder.Status)
	assert.Contains(t, freshOrder.Notes, "pesanan salah")

	// refund kedua ditolak
	w = doRequest(r, http.MethodPost, "/transactions/"+tx.UUID+"/refund",
		map[string]interface{}{"reason": "dobel"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDailyReportAggregatesByMethod(t *testing.T) {
	db := openTestDB(t)
	product, _ := seedCatalog(t, db)
	r := setupPaymentRouter(db)

	pay := func(method string, quantity int, amount float64) {
		order := createOrder(t, r, map[string]interface{}{
			"type": models.OrderTakeaway,
			"items": []map[string]interface{}{
				{"product_uuid": product.UUID, "quantity": quantity},
			},
		})
		w := doRequest(r, http.MethodPost, "/transactions", map[string]interface{}{
			"order_uuid":  order.UUID,
			"method":      method,
			"amount_paid": amount,
		}, nil)
		if w.Code != http.StatusCreated {
			t.Fatalf("pembayaran gagal: %d %s", w.Code, w.Body.String())
		}
	}

	// 1x13200 tunai (bayar 20000) dan 2x13200 QRIS pas
	pay(models.PaymentCash, 1, 20000)
	pay(models.PaymentQRIS, 1, 13200)
	pay(models.PaymentQRIS, 1, 13200)

	w := doRequest(r, http.MethodGet, "/reports/daily", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var report struct {
		TotalTransactions int64   `json:"total_transactions"`
		TotalSales        float64 `json:"total_sales"`
		ByMethod          []struct {
			Method string  `json:"method"`
			Count  int64   `json:"count"`
			Total  float64 `json:"total"`
		} `json:"by_method"`
	}
	decodeData(t, w, &report)

	assert.Equal(t, int64(3), report.TotalTransactions)
	assert.Equal(t, 39600.0, report.TotalSales)

	totals := map[string]float64{}
	counts := map[string]int64{}
	for _, m := range report.ByMethod {
		totals[m.Method] = m.Total
		counts[m.Method] = m.Count
	}
	assert.Equal(t, 13200.0, totals[models.PaymentCash])
	assert.Equal(t, int64(1), counts[models.PaymentCash])
	assert.Equal(t, 26400.0, totals[models.PaymentQRIS])
	assert.Equal(t, int64(2), counts[models.PaymentQRIS])
}
