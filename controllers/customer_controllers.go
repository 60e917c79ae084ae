package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/daneswara/kafe-pos/models"
	"github.com/daneswara/kafe-pos/utils"
)

type CustomerController struct {
	DB *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	db := cc.DB.WithContext(c.Request.Context())
	p := utils.ParsePagination(c)

	query := db.Model(&models.Customer{})
	if p.Search != "" {
		like := "%" + p.Search + "%"
		query = query.Where("name LIKE ? OR phone LIKE ? OR email LIKE ?", like, like, like)
	}

	var total int64
	query.Count(&total)

	var customers []models.Customer
	if err := query.Scopes(p.Scope()).Order("name asc").Find(&customers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondPage(c, http.StatusOK, "Daftar customer", customers, p.Meta(total))
}

func (cc *CustomerController) GetCustomerByUUID(c *gin.Context) {
	var customer models.Customer
	if err := cc.DB.WithContext(c.Request.Context()).
		Where("uuid = ?", c.Param("uuid")).First(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("customer tidak ditemukan"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Detail customer", customer)
}

func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required"`
		Phone string `json:"phone"`
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	customer := models.Customer{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	}

	if err := cc.DB.WithContext(c.Request.Context()).Create(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Customer dibuat", customer)
}

func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	var req struct {
		Name  *string `json:"name"`
		Phone *string `json:"phone"`
		Email *string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	db := cc.DB.WithContext(c.Request.Context())

	var customer models.Customer
	if err := db.Where("uuid = ?", c.Param("uuid")).First(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("customer tidak ditemukan"))
		return
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}

	if err := db.Save(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Customer diperbarui", customer)
}

// AdjustPoints menambah/mengurangi loyalty points; saldo tidak boleh negatif.
func (cc *CustomerController) AdjustPoints(c *gin.Context) {
	var req struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	db := cc.DB.WithContext(c.Request.Context())

	var customer models.Customer
	if err := db.Where("uuid = ?", c.Param("uuid")).First(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("customer tidak ditemukan"))
		return
	}

	newBalance := customer.LoyaltyPoints + req.Delta
	if newBalance < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("poin tidak mencukupi"))
		return
	}

	customer.LoyaltyPoints = newBalance
	if err := db.Save(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Poin customer %s disesuaikan %+d (saldo %d)",
		customer.Name, req.Delta, customer.LoyaltyPoints)
	utils.RespondJSON(c, http.StatusOK, "Poin diperbarui", customer)
}

func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	db := cc.DB.WithContext(c.Request.Context())

	var customer models.Customer
	if err := db.Where("uuid = ?", c.Param("uuid")).First(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("customer tidak ditemukan"))
		return
	}

	if err := softDelete(db, &customer, c.GetString("user_name")); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Customer dihapus", gin.H{"uuid": customer.UUID})
}
