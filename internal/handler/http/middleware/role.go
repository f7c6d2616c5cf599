package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/nominapy/payroll-backend-go/internal/domain/employee"
	"github.com/nominapy/payroll-backend-go/internal/handler/http/response"
)

// RequireChief restricts an endpoint to chiefs and sub-chiefs. Approval,
// payroll and export endpoints sit behind it.
func RequireChief(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Forbidden(w, "Chief access required")
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.Forbidden(w, "Chief access required")
			return
		}

		role := employee.JobCategory(roleStr)
		if role != employee.JobCategoryChief && role != employee.JobCategorySubChief {
			response.Forbidden(w, "Chief access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
