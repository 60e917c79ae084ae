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

func setupCatalogRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	categoryCtrl := controllers.NewCategoryController(db)
	productCtrl := controllers.NewProductController(db)
	r.POST("/categories", categoryCtrl.CreateCategory)
	r.DELETE("/categories/:uuid", categoryCtrl.DeleteCategory)
	r.GET("/products", productCtrl.GetAllProducts)
	r.POST("/products", productCtrl.CreateProduct)
	r.PATCH("/products/:uuid", productCtrl.UpdateProduct)
	r.DELETE("/products/:uuid", productCtrl.DeleteProduct)
	return r
}

func TestProductLifecycle(t *testing.T) {
	db := openTestDB(t)
	r := setupCatalogRouter(db)

	w := doRequest(r, http.MethodPost, "/categories",
		map[string]interface{}{"name": "Makanan"}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	var category struct {
		UUID string `json:"uuid"`
	}
	decodeData(t, w, &category)

	// harga nol ditolak
	w = doRequest(r, http.MethodPost, "/products", map[string]interface{}{
		"category_uuid": category.UUID,
		"name":          "Gratis",
		"price":         0,
		"stock":         5,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPost, "/products", map[string]interface{}{
		"category_uuid": category.UUID,
		"name":          "Nasi Goreng",
		"price":         25000,
		"stock":         5,
	}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	var product struct {
		UUID string `json:"uuid"`
	}
	decodeData(t, w, &product)

	// kategori dengan produk tidak bisa dihapus
	w = doRequest(r, http.MethodDelete, "/categories/"+category.UUID, nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// nonaktifkan lalu filter is_active
	w = doRequest(r, http.MethodPatch, "/products/"+product.UUID,
		map[string]interface{}{"is_active": false}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/products?is_active=true", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var active []struct {
		UUID string `json:"uuid"`
	}
	decodeData(t, w, &active)
	assert.Empty(t, active)

	// soft delete menghilangkan produk dari list
	w = doRequest(r, http.MethodDelete, "/products/"+product.UUID, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/products", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var all []struct {
		UUID string `json:"uuid"`
	}
	decodeData(t, w, &all)
	assert.Empty(t, all)

	// baris masih ada untuk audit
	var raw models.Product
	assert.NoError(t, db.Unscoped().First(&raw, "uuid = ?", product.UUID).Error)
	assert.True(t, raw.DeletedAt.Valid)

	// setelah produknya terhapus, kategori boleh dihapus
	w = doRequest(r, http.MethodDelete, "/categories/"+category.UUID, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInactiveProductCannotBeOrdered(t *testing.T) {
	db := openTestDB(t)
	product, _ := seedCatalog(t, db)
	r := setupCatalogRouter(db)
	orderCtrl := controllers.NewOrderController(db)
	r.POST("/orders", orderCtrl.CreateOrder)

	w := doRequest(r, http.MethodPatch, "/products/"+product.UUID,
		map[string]interface{}{"is_active": false}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodPost, "/orders", map[string]interface{}{
		"type": models.OrderTakeaway,
		"items": []map[string]interface{}{
			{"product_uuid": product.UUID, "quantity": 1},
		},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
