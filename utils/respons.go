package utils

import (
	"github.com/gin-gonic/gin"
)

// PageMeta menyertai response list yang dipaginasi.
type PageMeta struct {
	Page      int   `json:"page"`
	Limit     int   `json:"limit"`
	Total     int64 `json:"total"`
	TotalPage int   `json:"total_page"`
}

type Meta struct {
	Error   bool      `json:"error"`
	Message string    `json:"message"`
	Status  int       `json:"status"`
	Page    *PageMeta `json:"page,omitempty"`
}

type JSONResponse struct {
	Meta Meta        `json:"meta"`
	Data interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Meta: Meta{
			Error:   code >= 400,
			Message: message,
			Status:  code,
		},
		Data: data,
	})
}

func RespondPage(c *gin.Context, code int, message string, data interface{}, page *PageMeta) {
	c.JSON(code, JSONResponse{
		Meta: Meta{
			Error:   code >= 400,
			Message: message,
			Status:  code,
			Page:    page,
		},
		Data: data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Meta: Meta{
			Error:   true,
			Message: err.Error(),
			Status:  code,
		},
	})
}
