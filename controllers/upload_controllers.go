package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/daneswara/kafe-pos/models"
	"github.com/daneswara/kafe-pos/utils"
)

const (
	uploadDir     = "./public/uploads"
	maxUploadSize = 5 << 20
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type UploadController struct {
	DB *gorm.DB
}

func NewUploadController(db *gorm.DB) *UploadController {
	return &UploadController{DB: db}
}

// UploadImage menyimpan satu gambar (jpeg/png/gif/webp, maks 5MB) ke folder
// uploads dan mencatatnya sebagai media.
func (uc *UploadController) UploadImage(c *gin.Context) {
	c.Request.ParseMultipartForm(maxUploadSize)

	file, err := c.FormFile("file")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("field file wajib diisi"))
		return
	}

	if file.Size > maxUploadSize {
		utils.RespondError(c, http.StatusBadRequest, errors.New("ukuran file maksimal 5MB"))
		return
	}

	mimeType := file.Header.Get("Content-Type")
	if !allowedImageTypes[mimeType] {
		utils.RespondError(c, http.StatusBadRequest, errors.New("tipe file harus jpeg/png/gif/webp"))
		return
	}

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("gagal menyiapkan folder upload"))
		return
	}

	// Nama file unik, karakter path dibuang dari nama asli
	safeName := strings.ReplaceAll(filepath.Base(file.Filename), " ", "_")
	filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), safeName)
	dest := filepath.Join(uploadDir, filename)

	if err := c.SaveUploadedFile(file, dest); err != nil {
		utils.ErrorLogger.Printf("Gagal menyimpan upload %s: %v", filename, err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("gagal menyimpan file"))
		return
	}

	media := models.Media{
		FileName: filename,
		FilePath: "/uploads/" + filename,
		MimeType: mimeType,
		Size:     file.Size,
	}
	if err := uc.DB.WithContext(c.Request.Context()).Create(&media).Error; err != nil {
		os.Remove(dest)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Media diunggah: %s (%d byte)", media.FileName, media.Size)
	utils.RespondJSON(c, http.StatusCreated, "File diunggah", media)
}

func (uc *UploadController) GetAllMedia(c *gin.Context) {
	db := uc.DB.WithContext(c.Request.Context())
	p := utils.ParsePagination(c)

	query := db.Model(&models.Media{})

	var total int64
	query.Count(&total)

	var media []models.Media
	if err := query.Scopes(p.Scope()).Order("created_at desc").Find(&media).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondPage(c, http.StatusOK, "Daftar media", media, p.Meta(total))
}

func (uc *UploadController) DeleteMedia(c *gin.Context) {
	db := uc.DB.WithContext(c.Request.Context())

	var media models.Media
	if err := db.Where("uuid = ?", c.Param("uuid")).First(&media).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("media tidak ditemukan"))
		return
	}

	var used int64
	db.Model(&models.Product{}).Where("media_id = ?", media.ID).Count(&used)
	if used > 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("media masih dipakai produk"))
		return
	}

	if err := softDelete(db, &media, c.GetString("user_name")); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Media dihapus", gin.H{"uuid": media.UUID})
}
