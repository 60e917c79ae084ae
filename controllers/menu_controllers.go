package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/daneswara/kafe-pos/models"
	"github.com/daneswara/kafe-pos/services"
	"github.com/daneswara/kafe-pos/utils"
)

type MenuController struct {
	DB    *gorm.DB
	Cache *services.CacheService
}

func NewMenuController(db *gorm.DB, cache *services.CacheService) *MenuController {
	return &MenuController{DB: db, Cache: cache}
}

// GetMenuTree -> seluruh menu navigasi sebagai pohon (untuk layar admin).
func (mc *MenuController) GetMenuTree(c *gin.Context) {
	var menus []models.Menu
	if err := mc.DB.WithContext(c.Request.Context()).
		Order("sort asc, name asc").Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Pohon menu", buildMenuTree(menus))
}

// GetAccessibleMenus -> menu root (beserta anak) yang boleh dilihat active
// role pemanggil, dipakai frontend untuk navigasi dinamis. Hasil di-cache
// per role.
func (mc *MenuController) GetAccessibleMenus(c *gin.Context) {
	roleName := c.GetString("role")
	db := mc.DB.WithContext(c.Request.Context())

	var role models.Role
	if err := db.Where("name = ?", roleName).First(&role).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("role tidak ditemukan"))
		return
	}

	var cached []models.Menu
	if mc.Cache.GetAccessibleMenus(c.Request.Context(), role.ID, &cached) {
		utils.RespondJSON(c, http.StatusOK, "Menu untuk role "+role.Name, cached)
		return
	}

	var menus []models.Menu
	if err := db.
		Joins("JOIN menu_accesses ma ON ma.menu_id = menus.id").
		Where("ma.role_id = ?", role.ID).
		Order("sort asc, name asc").
		Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	tree := buildMenuTree(menus)
	mc.Cache.SetAccessibleMenus(c.Request.Context(), role.ID, tree)

	utils.RespondJSON(c, http.StatusOK, "Menu untuk role "+role.Name, tree)
}

func (mc *MenuController) GetMenuByUUID(c *gin.Context) {
	var menu models.Menu
	if err := mc.DB.WithContext(c.Request.Context()).
		Preload("Children").Where("uuid = ?", c.Param("uuid")).First(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu tidak ditemukan"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Detail menu", menu)
}

func (mc *MenuController) CreateMenu(c *gin.Context) {
	var req struct {
		ParentUUID string `json:"parent_uuid"`
		Name       string `json:"name" binding:"required"`
		Path       string `json:"path"`
		Icon       string `json:"icon"`
		Sort       int    `json:"sort"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	db := mc.DB.WithContext(c.Request.Context())

	menu := models.Menu{
		Name: req.Name,
		Path: req.Path,
		Icon: req.Icon,
		Sort: req.Sort,
	}

	if req.ParentUUID != "" {
		var parent models.Menu
		if err := db.Where("uuid = ?", req.ParentUUID).First(&parent).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, errors.New("parent menu tidak ditemukan"))
			return
		}
		depth, err := menuDepth(db, &parent)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		if depth >= models.MaxMenuDepth {
			utils.RespondError(c, http.StatusBadRequest, errors.New("kedalaman menu maksimal 3 level"))
			return
		}
		menu.ParentID = &parent.ID
	}

	if err := db.Create(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mc.Cache.InvalidateMenus(c.Request.Context())
	utils.RespondJSON(c, http.StatusCreated, "Menu dibuat", menu)
}

func (mc *MenuController) UpdateMenu(c *gin.Context) {
	var req struct {
		Name *string `json:"name"`
		Path *string `json:"path"`
		Icon *string `json:"icon"`
		Sort *int    `json:"sort"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	db := mc.DB.WithContext(c.Request.Context())

	var menu models.Menu
	if err := db.Where("uuid = ?", c.Param("uuid")).First(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu tidak ditemukan"))
		return
	}

	if req.Name != nil {
		menu.Name = *req.Name
	}
	if req.Path != nil {
		menu.Path = *req.Path
	}
	if req.Icon != nil {
		menu.Icon = *req.Icon
	}
	if req.Sort != nil {
		menu.Sort = *req.Sort
	}

	if err := db.Save(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mc.Cache.InvalidateMenus(c.Request.Context())
	utils.RespondJSON(c, http.StatusOK, "Menu diperbarui", menu)
}

// DeleteMenu ditolak selama menu masih punya anak.
func (mc *MenuController) DeleteMenu(c *gin.Context) {
	db := mc.DB.WithContext(c.Request.Context())

	var menu models.Menu
	if err := db.Where("uuid = ?", c.Param("uuid")).First(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu tidak ditemukan"))
		return
	}

	var children int64
	db.Model(&models.Menu{}).Where("parent_id = ?", menu.ID).Count(&children)
	if children > 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("hapus sub-menu terlebih dahulu"))
		return
	}

	if err := softDelete(db, &menu, c.GetString("user_name")); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mc.Cache.InvalidateMenus(c.Request.Context())
	utils.RespondJSON(c, http.StatusOK, "Menu dihapus", gin.H{"uuid": menu.UUID})
}

// menuDepth menghitung level sebuah menu (root = 1).
func menuDepth(db *gorm.DB, menu *models.Menu) (int, error) {
	depth := 1
	current := menu
	for current.ParentID != nil {
		var parent models.Menu
		if err := db.First(&parent, *current.ParentID).Error; err != nil {
			return 0, err
		}
		depth++
		current = &parent
		if depth > models.MaxMenuDepth {
			break
		}
	}
	return depth, nil
}

// buildMenuTree menyusun slice menu menjadi pohon; hanya parent yang ikut
// dalam slice yang dianggap root-nya.
func buildMenuTree(menus []models.Menu) []models.Menu {
	byID := make(map[uint]bool, len(menus))
	for _, m := range menus {
		byID[m.ID] = true
	}

	childrenOf := make(map[uint][]models.Menu)
	var roots []models.Menu
	for _, m := range menus {
		if m.ParentID != nil && byID[*m.ParentID] {
			childrenOf[*m.ParentID] = append(childrenOf[*m.ParentID], m)
		} else if m.ParentID == nil {
			roots = append(roots, m)
		}
	}

	var attach func(menu *models.Menu)
	attach = func(menu *models.Menu) {
		menu.Children = childrenOf[menu.ID]
		for i := range menu.Children {
			attach(&menu.Children[i])
		}
	}
	for i := range roots {
		attach(&roots[i])
	}
	return roots
}
