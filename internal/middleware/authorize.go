package middleware

import (
	"go-orgkit/internal/shared/apperror"
	"go-orgkit/internal/shared/response"
	"go-orgkit/internal/tenant"

	"github.com/gin-gonic/gin"
)

// PolicyService adalah interface lokal.
// Apapun package yang punya method Authorize bisa masuk ke sini.
type PolicyService interface {
	Authorize(p tenant.Principal, resource, action string) error
}

// Authorize menolak request yang role-nya tidak lolos tabel kebijakan.
// Kecocokan tenant atas resource ber-id dicek lagi di service layer.
func Authorize(svc PolicyService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := PrincipalFromContext(c)

		if err := svc.Authorize(p, resource, action); err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
