package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/staffdir/employee-backend-go/internal/domain/user"
	"github.com/staffdir/employee-backend-go/internal/handler/http/response"
)

func roleFromClaims(r *http.Request) (user.Role, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return "", false
	}
	return user.Role(roleStr), true
}

// RequireEmployeeWrite allows roles that may create, update or delete
// employee records.
func RequireEmployeeWrite(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromClaims(r)
		if !ok {
			response.Forbidden(w, "Insufficient permissions")
			return
		}

		u := user.User{Role: role}
		if !u.CanManageEmployees() {
			response.Forbidden(w, "Role cannot modify employee records")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// AdminOnly guards database management endpoints.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromClaims(r)
		if !ok || role != user.RoleAdmin {
			response.Forbidden(w, "Admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
