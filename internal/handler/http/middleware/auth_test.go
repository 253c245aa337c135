package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter(t *testing.T) (http.Handler, jwt.Service) {
	svc, err := jwt.NewJWTService("test-secret-key-for-jwt", "1h")
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(svc.JWTAuth()))
	r.Use(AuthRequired)
	r.Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
		id, ok := ActorEmployeeID(r.Context())
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = w.Write([]byte(strconv.FormatInt(id, 10)))
	})
	return r, svc
}

func TestAuthRequired_MissingToken(t *testing.T) {
	router, _ := newProtectedRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequired_ValidToken(t *testing.T) {
	router, svc := newProtectedRouter(t)
	token, _, err := svc.GenerateAccessToken(9, "manager")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "9", rec.Body.String())
}

func TestAuthRequired_WrongTokenType(t *testing.T) {
	router, svc := newProtectedRouter(t)
	_, token, err := svc.JWTAuth().Encode(map[string]interface{}{"type": "refresh", "employee_id": "9"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
