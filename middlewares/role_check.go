package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/daneswara/kafe-pos/utils"
)

// roleVariants mendaftarkan varian penulisan nama role yang dianggap sama.
// Pencocokan tetap hard-coded per nama agar kontrak API lama tidak berubah.
var roleVariants = map[string][]string{
	"ADMIN": {"ADMIN", "admin", "Admin", "ADMINISTRATOR", "administrator"},
	"USER":  {"USER", "user", "User"},
}

// RequireRoles menolak request jika active role di JWT tidak ada di daftar.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool)
	for _, role := range roles {
		variants, ok := roleVariants[strings.ToUpper(role)]
		if !ok {
			variants = []string{role}
		}
		for _, v := range variants {
			allowed[v] = true
		}
	}

	return func(c *gin.Context) {
		roleInterface, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("role tidak ditemukan di token"))
			c.Abort()
			return
		}

		role, _ := roleInterface.(string)
		if !allowed[role] {
			utils.RespondError(c, http.StatusForbidden, errors.New("anda tidak punya akses ke resource ini"))
			c.Abort()
			return
		}

		c.Next()
	}
}
