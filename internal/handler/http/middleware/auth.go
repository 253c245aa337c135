package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type actorKey struct{}

// AuthRequired rejects requests without a verified access token and stores
// the token's employee_id, when present, as the acting employee.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}
		if token == nil {
			response.Unauthorized(w, "Invalid token")
			return
		}

		tokenType, ok := claims["type"].(string)
		if !ok || tokenType != jwt.TokenTypeAccess {
			response.Unauthorized(w, "Invalid token")
			return
		}

		ctx := r.Context()
		if id, err := jwt.EmployeeIDFromClaims(claims); err == nil {
			ctx = context.WithValue(ctx, actorKey{}, id)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorEmployeeID returns the authenticated employee, if any.
func ActorEmployeeID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(actorKey{}).(int64)
	return id, ok
}
