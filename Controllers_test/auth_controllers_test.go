package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/daneswara/kafe-pos/controllers"
	"github.com/daneswara/kafe-pos/mailer"
	"github.com/daneswara/kafe-pos/middlewares"
	"github.com/daneswara/kafe-pos/models"
)

func seedRoles(t *testing.T, db *gorm.DB) (models.Role, models.Role) {
	t.Helper()
	admin := models.Role{Name: models.RoleAdmin}
	user := models.Role{Name: models.RoleUser}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("seed role admin: %v", err)
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed role user: %v", err)
	}
	return admin, user
}

func setupAuthRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	authCtrl := controllers.NewAuthController(db, mailer.NewQueue(8))

	r.POST("/auth/register", authCtrl.Register)
	r.POST("/auth/login", authCtrl.Login)
	r.POST("/auth/refresh", authCtrl.Refresh)
	r.GET("/auth/verify-email", authCtrl.VerifyEmail)
	r.POST("/auth/forgot-password", authCtrl.ForgotPassword)
	r.POST("/auth/reset-password", authCtrl.ResetPassword)

	protected := r.Group("")
	protected.Use(middlewares.AuthMiddleware())
	protected.POST("/auth/logout", authCtrl.Logout)
	protected.POST("/auth/switch-role", authCtrl.SwitchRole)
	protected.GET("/auth/profile", authCtrl.GetProfile)

	admin := protected.Group("")
	admin.Use(middlewares.RequireRoles(models.RoleAdmin))
	admin.GET("/admin-only", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func registerAndVerify(t *testing.T, r *gin.Engine, db *gorm.DB, email string) models.User {
	t.Helper()
	w := doRequest(r, http.MethodPost, "/auth/register", map[string]interface{}{
		"name":     "Dani",
		"email":    email,
		"password": "rahasia-sekali",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("registrasi gagal: %d %s", w.Code, w.Body.String())
	}

	var user models.User
	if err := db.First(&user, "email = ?", email).Error; err != nil {
		t.Fatalf("user tidak tersimpan: %v", err)
	}

	w = doRequest(r, http.MethodGet, "/auth/verify-email?token="+*user.VerifyToken, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("verifikasi gagal: %d %s", w.Code, w.Body.String())
	}

	db.First(&user, user.ID)
	return user
}

func login(t *testing.T, r *gin.Engine, email, password string) (string, string) {
	t.Helper()
	w := doRequest(r, http.MethodPost, "/auth/login", map[string]interface{}{
		"email":    email,
		"password": password,
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login gagal: %d %s", w.Code, w.Body.String())
	}
	var data struct {
		Token        string `json:"token"`
		RefreshToken string `json:"refresh_token"`
	}
	decodeData(t, w, &data)
	return data.Token, data.RefreshToken
}

func TestRegisterLoginFlow(t *testing.T) {
	db := openTestDB(t)
	seedRoles(t, db)
	r := setupAuthRouter(db)

	w := doRequest(r, http.MethodPost, "/auth/register", map[string]interface{}{
		"name":     "Dani",
		"email":    "dani@kafe.test",
		"password": "rahasia-sekali",
	}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	// email ganda ditolak
	w = doRequest(r, http.MethodPost, "/auth/register", map[string]interface{}{
		"name":     "Dani Kedua",
		"email":    "dani@kafe.test",
		"password": "rahasia-sekali",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// login sebelum verifikasi ditolak
	w = doRequest(r, http.MethodPost, "/auth/login", map[string]interface{}{
		"email":    "dani@kafe.test",
		"password": "rahasia-sekali",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var user models.User
	db.First(&user, "email = ?", "dani@kafe.test")
	w = doRequest(r, http.MethodGet, "/auth/verify-email?token="+*user.VerifyToken, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	token, refresh := login(t, r, "dani@kafe.test", "rahasia-sekali")
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, refresh)

	// password salah ditolak
	w = doRequest(r, http.MethodPost, "/auth/login", map[string]interface{}{
		"email":    "dani@kafe.test",
		"password": "salah-total",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshTokenRotation(t *testing.T) {
	db := openTestDB(t)
	seedRoles(t, db)
	r := setupAuthRouter(db)
	registerAndVerify(t, r, db, "rotasi@kafe.test")

	_, refresh := login(t, r, "rotasi@kafe.test", "rahasia-sekali")

	w := doRequest(r, http.MethodPost, "/auth/refresh",
		map[string]interface{}{"refresh_token": refresh}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Token        string `json:"token"`
		RefreshToken string `json:"refresh_token"`
	}
	decodeData(t, w, &data)
	assert.NotEmpty(t, data.Token)
	assert.NotEqual(t, refresh, data.RefreshToken)

	// token lama hangus setelah rotasi
	w = doRequest(r, http.MethodPost, "/auth/refresh",
		map[string]interface{}{"refresh_token": refresh}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshTokenCap(t *testing.T) {
	db := openTestDB(t)
	seedRoles(t, db)
	r := setupAuthRouter(db)
	user := registerAndVerify(t, r, db, "cap@kafe.test")

	for i := 0; i < models.MaxRefreshTokensPerUser+2; i++ {
		login(t, r, "cap@kafe.test", "rahasia-sekali")
	}

	var count int64
	db.Model(&models.RefreshToken{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(models.MaxRefreshTokensPerUser), count)
}

func TestSwitchRoleAndGuard(t *testing.T) {
	db := openTestDB(t)
	adminRole, _ := seedRoles(t, db)
	r := setupAuthRouter(db)
	user := registerAndVerify(t, r, db, "kasir@kafe.test")

	token, _ := login(t, r, "kasir@kafe.test", "rahasia-sekali")
	authHeader := map[string]string{"Authorization": "Bearer " + token}

	// role USER tidak boleh masuk route admin
	w := doRequest(r, http.MethodGet, "/admin-only", nil, authHeader)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// switch ke role yang tidak dipegang ditolak
	w = doRequest(r, http.MethodPost, "/auth/switch-role",
		map[string]interface{}{"role_uuid": adminRole.UUID}, authHeader)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// setelah diberi role ADMIN, switch menerbitkan token baru
	if err := db.Model(&user).Association("Roles").Append(&adminRole); err != nil {
		t.Fatalf("gagal menambah role: %v", err)
	}
	w = doRequest(r, http.MethodPost, "/auth/switch-role",
		map[string]interface{}{"role_uuid": adminRole.UUID}, authHeader)
	assert.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Token      string `json:"token"`
		ActiveRole string `json:"active_role"`
	}
	decodeData(t, w, &data)
	assert.Equal(t, models.RoleAdmin, data.ActiveRole)

	adminHeader := map[string]string{"Authorization": "Bearer " + data.Token}
	w = doRequest(r, http.MethodGet, "/admin-only", nil, adminHeader)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogoutBlacklistsToken(t *testing.T) {
	db := openTestDB(t)
	seedRoles(t, db)
	r := setupAuthRouter(db)
	registerAndVerify(t, r, db, "logout@kafe.test")

	token, refresh := login(t, r, "logout@kafe.test", "rahasia-sekali")
	authHeader := map[string]string{"Authorization": "Bearer " + token}

	w := doRequest(r, http.MethodGet, "/auth/profile", nil, authHeader)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodPost, "/auth/logout",
		map[string]interface{}{"refresh_token": refresh}, authHeader)
	assert.Equal(t, http.StatusOK, w.Code)

	// token lama tidak bisa dipakai lagi
	w = doRequest(r, http.MethodGet, "/auth/profile", nil, authHeader)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodPost, "/auth/refresh",
		map[string]interface{}{"refresh_token": refresh}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestResetPasswordFlow(t *testing.T) {
	db := openTestDB(t)
	seedRoles(t, db)
	r := setupAuthRouter(db)
	user := registerAndVerify(t, r, db, "reset@kafe.test")

	// response forgot-password selalu sama, terdaftar atau tidak
	w := doRequest(r, http.MethodPost, "/auth/forgot-password",
		map[string]interface{}{"email": "reset@kafe.test"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doRequest(r, http.MethodPost, "/auth/forgot-password",
		map[string]interface{}{"email": "bukan-siapa@kafe.test"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	db.First(&user, user.ID)
	if user.ResetToken == nil {
		t.Fatal("reset token tidak tersimpan")
	}

	w = doRequest(r, http.MethodPost, "/auth/reset-password", map[string]interface{}{
		"token":    *user.ResetToken,
		"password": "rahasia-baru",
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// password lama tidak berlaku, password baru berlaku
	w = doRequest(r, http.MethodPost, "/auth/login", map[string]interface{}{
		"email":    "reset@kafe.test",
		"password": "rahasia-sekali",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, _ := login(t, r, "reset@kafe.test", "rahasia-baru")
	assert.NotEmpty(t, token)
}
