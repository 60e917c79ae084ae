package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/daneswara/kafe-pos/models"
	"github.com/daneswara/kafe-pos/utils"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GetAllUsers -> list user dengan paginasi dan pencarian nama/email.
func (uc *UserController) GetAllUsers(c *gin.Context) {
	db := uc.DB.WithContext(c.Request.Context())
	p := utils.ParsePagination(c)

	query := db.Model(&models.User{})
	if p.Search != "" {
		like := "%" + p.Search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", like, like)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.Preload("Roles").Preload("ActiveRole").
		Scopes(p.Scope()).Order("created_at desc").Find(&users).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondPage(c, http.StatusOK, "Daftar user", users, p.Meta(total))
}

func (uc *UserController) GetUserByUUID(c *gin.Context) {
	var user models.User
	if err := uc.DB.WithContext(c.Request.Context()).
		Preload("Roles").Preload("ActiveRole").
		Where("uuid = ?", c.Param("uuid")).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user tidak ditemukan"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Detail user", user)
}

// CreateUser dibuat admin; akun langsung terverifikasi.
func (uc *UserController) CreateUser(c *gin.Context) {
	var req struct {
		Name      string   `json:"name" binding:"required"`
		Email     string   `json:"email" binding:"required,email"`
		Password  string   `json:"password" binding:"required,min=8"`
		RoleUUIDs []string `json:"role_uuids" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	db := uc.DB.WithContext(c.Request.Context())

	var count int64
	db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("email sudah terdaftar"))
		return
	}

	var roles []models.Role
	if err := db.Where("uuid IN ?", req.RoleUUIDs).Find(&roles).Error; err != nil || len(roles) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("role tidak ditemukan"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	now := time.Now()
	user := models.User{
		Name:       req.Name,
		Email:      req.Email,
		Password:   string(hashed),
		IsActive:   true,
		VerifiedAt: &now,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if err := tx.Model(&user).Association("Roles").Append(&roles); err != nil {
			return err
		}
		return tx.Model(&user).Update("active_role_id", roles[0].ID).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("User dibuat oleh admin: %s", user.Email)
	utils.RespondJSON(c, http.StatusCreated, "User dibuat", user)
}

func (uc *UserController) UpdateUser(c *gin.Context) {
	var req struct {
		Name      *string  `json:"name"`
		IsActive  *bool    `json:"is_active"`
		Password  *string  `json:"password"`
		RoleUUIDs []string `json:"role_uuids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	db := uc.DB.WithContext(c.Request.Context())

	var user models.User
	if err := db.Where("uuid = ?", c.Param("uuid")).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user tidak ditemukan"))
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if req.Name != nil {
			user.Name = *req.Name
		}
		if req.IsActive != nil {
			user.IsActive = *req.IsActive
		}
		if req.Password != nil {
			hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			user.Password = string(hashed)
		}
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		if len(req.RoleUUIDs) > 0 {
			var roles []models.Role
			if err := tx.Where("uuid IN ?", req.RoleUUIDs).Find(&roles).Error; err != nil {
				return err
			}
			if len(roles) == 0 {
				return errors.New("role tidak ditemukan")
			}
			if err := tx.Model(&user).Association("Roles").Replace(&roles); err != nil {
				return err
			}
			return tx.Model(&user).Update("active_role_id", roles[0].ID).Error
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "User diperbarui", user)
}

// DeleteUser melakukan soft delete dan mencatat siapa yang menghapus.
func (uc *UserController) DeleteUser(c *gin.Context) {
	db := uc.DB.WithContext(c.Request.Context())

	var user models.User
	if err := db.Where("uuid = ?", c.Param("uuid")).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user tidak ditemukan"))
		return
	}

	if err := softDelete(db, &user, c.GetString("user_name")); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "User dihapus", gin.H{"uuid": user.UUID})
}
