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

func setupUserRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	userCtrl := controllers.NewUserController(db)
	r.Use(func(c *gin.Context) {
		// identitas admin seolah dari JWT, untuk kolom audit
		c.Set("user_name", "Admin Test")
		c.Next()
	})
	r.GET("/users", userCtrl.GetAllUsers)
	r.POST("/users", userCtrl.CreateUser)
	r.PATCH("/users/:uuid", userCtrl.UpdateUser)
	r.DELETE("/users/:uuid", userCtrl.DeleteUser)
	return r
}

func TestCreateUserByAdmin(t *testing.T) {
	db := openTestDB(t)
	_, userRole := seedRoles(t, db)
	r := setupUserRouter(db)

	w := doRequest(r, http.MethodPost, "/users", map[string]interface{}{
		"name":       "Kasir Satu",
		"email":      "kasir1@kafe.test",
		"password":   "rahasia-sekali",
		"role_uuids": []string{userRole.UUID},
	}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	// akun buatan admin langsung terverifikasi
	var user models.User
	db.First(&user, "email = ?", "kasir1@kafe.test")
	assert.NotNil(t, user.VerifiedAt)
	assert.NotNil(t, user.ActiveRoleID)

	// role_uuids kosong ditolak oleh binding
	w = doRequest(r, http.MethodPost, "/users", map[string]interface{}{
		"name":       "Tanpa Role",
		"email":      "tanparole@kafe.test",
		"password":   "rahasia-sekali",
		"role_uuids": []string{},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateUserReplacesRoles(t *testing.T) {
	db := openTestDB(t)
	adminRole, userRole := seedRoles(t, db)
	r := setupUserRouter(db)

	w := doRequest(r, http.MethodPost, "/users", map[string]interface{}{
		"name":       "Kasir Dua",
		"email":      "kasir2@kafe.test",
		"password":   "rahasia-sekali",
		"role_uuids": []string{userRole.UUID},
	}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		UUID string `json:"uuid"`
	}
	decodeData(t, w, &created)

	w = doRequest(r, http.MethodPatch, "/users/"+created.UUID, map[string]interface{}{
		"is_active":  false,
		"role_uuids": []string{adminRole.UUID},
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var user models.User
	db.Preload("Roles").First(&user, "uuid = ?", created.UUID)
	assert.False(t, user.IsActive)
	if assert.Len(t, user.Roles, 1) {
		assert.Equal(t, models.RoleAdmin, user.Roles[0].Name)
	}
}

func TestSoftDeleteUserExcludedFromList(t *testing.T) {
	db := openTestDB(t)
	_, userRole := seedRoles(t, db)
	r := setupUserRouter(db)

	w := doRequest(r, http.MethodPost, "/users", map[string]interface{}{
		"name":       "Kasir Tiga",
		"email":      "kasir3@kafe.test",
		"password":   "rahasia-sekali",
		"role_uuids": []string{userRole.UUID},
	}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		UUID string `json:"uuid"`
	}
	decodeData(t, w, &created)

	w = doRequest(r, http.MethodDelete, "/users/"+created.UUID, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// hilang dari list, baris tetap ada dengan jejak deleted_by
	w = doRequest(r, http.MethodGet, "/users", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var users []struct {
		UUID string `json:"uuid"`
	}
	decodeData(t, w, &users)
	for _, u := range users {
		assert.NotEqual(t, created.UUID, u.UUID)
	}

	var raw models.User
	err := db.Unscoped().First(&raw, "uuid = ?", created.UUID).Error
	assert.NoError(t, err)
	assert.True(t, raw.DeletedAt.Valid)
	assert.Equal(t, "Admin Test", raw.DeletedBy)
}
