package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paginationFromQuery(query string) Pagination {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return ParsePagination(c)
}

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	p := paginationFromQuery("")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, "", p.Search)

	p = paginationFromQuery("page=3&limit=25&search=kopi")
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 25, p.Limit)
	assert.Equal(t, "kopi", p.Search)
	assert.Equal(t, 50, p.Offset())

	// nilai tidak valid jatuh ke default, limit dipagari 100
	p = paginationFromQuery("page=0&limit=-5")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)

	p = paginationFromQuery("limit=500")
	assert.Equal(t, 100, p.Limit)
}

func TestPaginationMeta(t *testing.T) {
	p := Pagination{Page: 2, Limit: 10}

	meta := p.Meta(35)
	assert.Equal(t, int64(35), meta.Total)
	assert.Equal(t, 4, meta.TotalPage)

	// total pas kelipatan limit
	meta = p.Meta(30)
	assert.Equal(t, 3, meta.TotalPage)

	meta = p.Meta(0)
	assert.Equal(t, 0, meta.TotalPage)
}
