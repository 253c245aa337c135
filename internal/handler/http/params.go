package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// urlID reads a positive integer path parameter.
func urlID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, validator.FieldError(name, name+" must be a positive integer")
	}
	return id, nil
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return validator.FieldError("body", "invalid request format")
	}
	return nil
}
