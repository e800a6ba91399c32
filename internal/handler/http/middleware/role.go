package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/tausif-btb/cbl-erp/internal/domain/user"
	"github.com/tausif-btb/cbl-erp/internal/handler/http/response"
)

// RequireRole allows only callers whose role claim is in the given set.
func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	allowed := make(map[user.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, user.ErrAccessDenied)
				return
			}

			roleStr, ok := claims["role"].(string)
			if !ok {
				response.HandleError(w, user.ErrAccessDenied)
				return
			}

			if _, ok := allowed[user.Role(roleStr)]; !ok {
				response.HandleError(w, user.ErrAccessDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
