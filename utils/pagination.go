package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Pagination struct {
	Page   int
	Limit  int
	Search string
}

// ParsePagination membaca query page/limit/search dengan batas yang wajar.
func ParsePagination(c *gin.Context) Pagination {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return Pagination{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
	}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Scope membatasi query gorm sesuai page/limit.
func (p Pagination) Scope() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(p.Limit)
	}
}

// Meta membangun meta halaman dari total baris.
func (p Pagination) Meta(total int64) *PageMeta {
	totalPage := int(total) / p.Limit
	if int(total)%p.Limit != 0 {
		totalPage++
	}
	return &PageMeta{
		Page:      p.Page,
		Limit:     p.Limit,
		Total:     total,
		TotalPage: totalPage,
	}
}
