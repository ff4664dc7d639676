package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AdminOnly guards destructive and settlement endpoints: deletes, stock
// adjustments and payment status changes.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, response.ErrInvalidToken)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != jwt.RoleAdmin {
			response.HandleError(w, response.ErrAdminRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
