package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/daneswara/kafe-pos/models"
	"github.com/daneswara/kafe-pos/utils"
)

type envelope struct {
	Meta struct {
		Error   bool   `json:"error"`
		Message string `json:"message"`
		Status  int    `json:"status"`
	} `json:"meta"`
	Data json.RawMessage `json:"data"`
}

// openTestDB membuka sqlite in-memory terpisah per test dan memigrasi
// seluruh model.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("gagal membuka database test: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Role{},
		&models.Menu{},
		&models.Category{},
		&models.Media{},
		&models.Product{},
		&models.Table{},
		&models.Customer{},
		&models.Discount{},
		&models.Order{},
		&models.OrderItem{},
		&models.Transaction{},
	)
	if err != nil {
		t.Fatalf("gagal migrasi database test: %v", err)
	}
	return db
}

func doRequest(r *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("response bukan JSON valid: %v (%s)", err, w.Body.String())
	}
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	env := decode(t, w)
	if err := json.Unmarshal(env.Data, dest); err != nil {
		t.Fatalf("gagal unmarshal data: %v (%s)", err, string(env.Data))
	}
}
