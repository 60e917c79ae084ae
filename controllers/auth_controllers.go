package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/daneswara/kafe-pos/config"
	"github.com/daneswara/kafe-pos/mailer"
	"github.com/daneswara/kafe-pos/models"
	"github.com/daneswara/kafe-pos/utils"
)

type AuthController struct {
	DB    *gorm.DB
	Mails *mailer.Queue
}

func NewAuthController(db *gorm.DB, mails *mailer.Queue) *AuthController {
	return &AuthController{DB: db, Mails: mails}
}

// Register mendaftarkan user baru dengan role default USER dan mengantrekan
// email verifikasi setelah transaksi commit.
func (ac *AuthController) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	db := ac.DB.WithContext(c.Request.Context())

	var count int64
	db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("email sudah terdaftar"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	verifyToken := uuid.NewString()
	verifyExpires := time.Now().Add(24 * time.Hour)

	user := models.User{
		Name:          req.Name,
		Email:         req.Email,
		Password:      string(hashed),
		IsActive:      true,
		VerifyToken:   &verifyToken,
		VerifyExpires: &verifyExpires,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		var role models.Role
		if err := tx.Where("name = ?", models.RoleUser).First(&role).Error; err != nil {
			return errors.New("role default tidak ditemukan")
		}
		if err := tx.Model(&user).Association("Roles").Append(&role); err != nil {
			return err
		}
		user.ActiveRoleID = &role.ID
		return tx.Model(&user).Update("active_role_id", role.ID).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Email dikirim setelah transaksi commit; kegagalan kirim tidak
	// membatalkan registrasi.
	ac.Mails.Enqueue(mailer.VerificationJob(user.Email, user.Name, verifyToken))

	utils.InfoLogger.Printf("User baru terdaftar: %s", user.Email)
	utils.RespondJSON(c, http.StatusCreated, "Registrasi berhasil, silakan cek email untuk verifikasi", gin.H{
		"uuid": user.UUID,
	})
}

// Login memvalidasi kredensial, menolak akun yang belum verifikasi atau
// nonaktif, lalu menerbitkan JWT dengan klaim active role.
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	db := ac.DB.WithContext(c.Request.Context())

	var user models.User
	if err := db.Preload("Roles").Preload("ActiveRole").
		Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("email atau password salah"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("email atau password salah"))
		return
	}

	if user.VerifiedAt == nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("akun belum diverifikasi"))
		return
	}
	if !user.IsActive {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("akun dinonaktifkan"))
		return
	}

	activeRole := ac.resolveActiveRole(db, &user)
	if activeRole == nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user tidak memiliki role"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.UUID, user.Name, activeRole.Name)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	data := gin.H{
		"token":       token,
		"active_role": activeRole.Name,
		"user": gin.H{
			"uuid":  user.UUID,
			"name":  user.Name,
			"email": user.Email,
		},
	}

	if config.Get().RefreshEnabled {
		refresh, err := ac.issueRefreshToken(db, user.ID)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		data["refresh_token"] = refresh.Token
	}

	utils.InfoLogger.Printf("Login berhasil: %s (role=%s)", user.Email, activeRole.Name)
	utils.RespondJSON(c, http.StatusOK, "Login berhasil", data)
}

// resolveActiveRole memakai activeRole tersimpan atau jatuh ke role pertama.
func (ac *AuthController) resolveActiveRole(db *gorm.DB, user *models.User) *models.Role {
	if user.ActiveRole != nil {
		return user.ActiveRole
	}
	if len(user.Roles) == 0 {
		return nil
	}
	role := user.Roles[0]
	db.Model(user).Update("active_role_id", role.ID)
	return &role
}

// issueRefreshToken menerbitkan refresh token baru dan memangkas token paling
// lama jika user sudah memegang 5 token hidup.
func (ac *AuthController) issueRefreshToken(db *gorm.DB, userID uint) (*models.RefreshToken, error) {
	token := models.RefreshToken{
		UserID:    userID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(config.Get().RefreshExpiry),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&token).Error; err != nil {
			return err
		}

		var live []models.RefreshToken
		if err := tx.Where("user_id = ? AND expires_at > ?", userID, time.Now()).
			Order("created_at asc").Find(&live).Error; err != nil {
			return err
		}
		for len(live) > models.MaxRefreshTokensPerUser {
			if err := tx.Delete(&live[0]).Error; err != nil {
				return err
			}
			live = live[1:]
		}
		// token kadaluarsa ikut dibersihkan
		return tx.Where("user_id = ? AND expires_at <= ?", userID, time.Now()).
			Delete(&models.RefreshToken{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// Refresh menukar refresh token hidup dengan access token baru (token dirotasi).
func (ac *AuthController) Refresh(c *gin.Context) {
	if !config.Get().RefreshEnabled {
		utils.RespondError(c, http.StatusBadRequest, errors.New("refresh token dinonaktifkan"))
		return
	}

	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	db := ac.DB.WithContext(c.Request.Context())

	var stored models.RefreshToken
	if err := db.Where("token = ?", req.RefreshToken).First(&stored).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("refresh token tidak dikenal"))
		return
	}
	if time.Now().After(stored.ExpiresAt) {
		db.Delete(&stored)
		utils.RespondError(c, http.StatusUnauthorized, errors.New("refresh token kadaluarsa"))
		return
	}

	var user models.User
	if err := db.Preload("Roles").Preload("ActiveRole").First(&user, stored.UserID).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user tidak ditemukan"))
		return
	}
	if !user.IsActive {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("akun dinonaktifkan"))
		return
	}

	activeRole := ac.resolveActiveRole(db, &user)
	if activeRole == nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user tidak memiliki role"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.UUID, user.Name, activeRole.Name)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// rotasi: token lama hangus
	db.Delete(&stored)
	refresh, err := ac.issueRefreshToken(db, user.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Token diperbarui", gin.H{
		"token":         token,
		"refresh_token": refresh.Token,
	})
}

// Logout mem-blacklist access token aktif dan mencabut refresh token.
func (ac *AuthController) Logout(c *gin.Context) {
	if tokenString, exists := c.Get("access_token"); exists {
		if claims, err := utils.ParseToken(tokenString.(string)); err == nil {
			utils.BlacklistToken(tokenString.(string), claims.ExpiresAt.Time)
		}
	}

	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	_ = c.ShouldBindJSON(&req)
	if req.RefreshToken != "" {
		ac.DB.WithContext(c.Request.Context()).
			Where("token = ?", req.RefreshToken).Delete(&models.RefreshToken{})
	}

	utils.RespondJSON(c, http.StatusOK, "Logout berhasil", nil)
}

// VerifyEmail menukar token verifikasi sekali pakai menjadi verifiedAt.
// Token dibaca dari query string karena link datang dari email.
func (ac *AuthController) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("token verifikasi wajib diisi"))
		return
	}

	db := ac.DB.WithContext(c.Request.Context())

	var user models.User
	if err := db.Where("verify_token = ?", token).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("token verifikasi tidak dikenal"))
		return
	}
	if user.VerifyExpires == nil || time.Now().After(*user.VerifyExpires) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("token verifikasi kadaluarsa"))
		return
	}

	now := time.Now()
	if err := db.Model(&user).Updates(map[string]interface{}{
		"verified_at":    now,
		"verify_token":   nil,
		"verify_expires": nil,
	}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Akun berhasil diverifikasi", nil)
}

// ForgotPassword mengantrekan email reset; response selalu sama agar tidak
// membocorkan email mana yang terdaftar.
func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	db := ac.DB.WithContext(c.Request.Context())

	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err == nil {
		resetToken := uuid.NewString()
		resetExpires := time.Now().Add(time.Hour)
		if err := db.Model(&user).Updates(map[string]interface{}{
			"reset_token":   resetToken,
			"reset_expires": resetExpires,
		}).Error; err == nil {
			ac.Mails.Enqueue(mailer.ResetPasswordJob(user.Email, user.Name, resetToken))
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Jika email terdaftar, link reset sudah dikirim", nil)
}

// ResetPassword menukar token reset sekali pakai dengan password baru.
func (ac *AuthController) ResetPassword(c *gin.Context) {
	var req struct {
		Token    string `json:"token" binding:"required"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	db := ac.DB.WithContext(c.Request.Context())

	var user models.User
	if err := db.Where("reset_token = ?", req.Token).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("token reset tidak dikenal"))
		return
	}
	if user.ResetExpires == nil || time.Now().After(*user.ResetExpires) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("token reset kadaluarsa"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Updates(map[string]interface{}{
			"password":      string(hashed),
			"reset_token":   nil,
			"reset_expires": nil,
		}).Error; err != nil {
			return err
		}
		// seluruh sesi lama dicabut
		return tx.Where("user_id = ?", user.ID).Delete(&models.RefreshToken{}).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Password berhasil direset", nil)
}

// SwitchRole mengganti active role dan menerbitkan ulang JWT.
func (ac *AuthController) SwitchRole(c *gin.Context) {
	var req struct {
		RoleUUID string `json:"role_uuid" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	userID := c.GetUint("user_id")
	db := ac.DB.WithContext(c.Request.Context())

	var user models.User
	if err := db.Preload("Roles").First(&user, userID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user tidak ditemukan"))
		return
	}

	var target *models.Role
	for i := range user.Roles {
		if user.Roles[i].UUID == req.RoleUUID {
			target = &user.Roles[i]
			break
		}
	}
	if target == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("anda tidak memegang role tersebut"))
		return
	}

	if err := db.Model(&user).Update("active_role_id", target.ID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.UUID, user.Name, target.Name)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Active role diganti", gin.H{
		"token":       token,
		"active_role": target.Name,
	})
}

// GetProfile mengembalikan profil user dari JWT.
func (ac *AuthController) GetProfile(c *gin.Context) {
	userID := c.GetUint("user_id")

	var user models.User
	if err := ac.DB.WithContext(c.Request.Context()).
		Preload("Roles").Preload("ActiveRole").First(&user, userID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user tidak ditemukan"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Data profil", user)
}
