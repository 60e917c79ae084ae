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

func setupTableRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	tableCtrl := controllers.NewTableController(db)
	orderCtrl := controllers.NewOrderController(db)
	r.POST("/tables", tableCtrl.CreateTable)
	r.PATCH("/tables/:uuid/status", tableCtrl.UpdateTableStatus)
	r.DELETE("/tables/:uuid", tableCtrl.DeleteTable)
	r.POST("/orders", orderCtrl.CreateOrder)
	r.PATCH("/orders/:uuid/status", orderCtrl.UpdateOrderStatus)
	return r
}

func TestTableStatusGuardedByActiveOrders(t *testing.T) {
	db := openTestDB(t)
	product, table := seedCatalog(t, db)
	r := setupTableRouter(db)

	order := createOrder(t, r, map[string]interface{}{
		"type":       models.OrderDineIn,
		"table_uuid": table.UUID,
		"items": []map[string]interface{}{
			{"product_uuid": product.UUID, "quantity": 1},
		},
	})

	// meja dengan order aktif tidak bisa dipaksa AVAILABLE
	w := doRequest(r, http.MethodPatch, "/tables/"+table.UUID+"/status",
		map[string]interface{}{"status": models.TableAvailable}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// dan tidak bisa dihapus
	w = doRequest(r, http.MethodDelete, "/tables/"+table.UUID, nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// setelah order dibatalkan, meja bebas
	w = doRequest(r, http.MethodPatch, "/orders/"+order.UUID+"/status",
		map[string]interface{}{"status": models.OrderCancelled}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodPatch, "/tables/"+table.UUID+"/status",
		map[string]interface{}{"status": models.TableMaintenance}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// meja MAINTENANCE tidak bisa dipakai order baru
	w = doRequest(r, http.MethodPost, "/orders", map[string]interface{}{
		"type":       models.OrderDineIn,
		"table_uuid": table.UUID,
		"items": []map[string]interface{}{
			{"product_uuid": product.UUID, "quantity": 1},
		},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTableRejectsDuplicateNumber(t *testing.T) {
	db := openTestDB(t)
	r := setupTableRouter(db)

	w := doRequest(r, http.MethodPost, "/tables",
		map[string]interface{}{"number": "T9", "capacity": 4}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(r, http.MethodPost, "/tables",
		map[string]interface{}{"number": "T9", "capacity": 2}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// status tidak dikenal ditolak
	var created struct {
		UUID string `json:"uuid"`
	}
	w = doRequest(r, http.MethodPost, "/tables",
		map[string]interface{}{"number": "T10"}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	decodeData(t, w, &created)

	w = doRequest(r, http.MethodPatch, "/tables/"+created.UUID+"/status",
		map[string]interface{}{"status": "RUSAK"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReservedTableAcceptsOrder(t *testing.T) {
	db := openTestDB(t)
	product, table := seedCatalog(t, db)
	r := setupTableRouter(db)

	w := doRequest(r, http.MethodPatch, "/tables/"+table.UUID+"/status",
		map[string]interface{}{"status": models.TableReserved}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// meja RESERVED tetap bisa menerima order, lalu menjadi OCCUPIED
	createOrder(t, r, map[string]interface{}{
		"type":       models.OrderDineIn,
		"table_uuid": table.UUID,
		"items": []map[string]interface{}{
			{"product_uuid": product.UUID, "quantity": 1},
		},
	})

	var fresh models.Table
	db.First(&fresh, table.ID)
	assert.Equal(t, models.TableOccupied, fresh.Status)
}
