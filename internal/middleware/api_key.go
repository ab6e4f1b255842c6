package middleware

import (
	"encoding/json"
	"net/http"
	"service-fxrates/internal"
	"strings"
)

func APIKeyAuth(validator internal.APIKeyValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := strings.TrimSpace(r.Header.Get("X-API-Key"))
			if key == "" {
				writeBizErr(w, http.StatusUnauthorized, "api_key_missing", "missing X-API-Key")
				return
			}

			status, err := validator.Validate(r.Context(), key)
			if err != nil {
				writeBizErr(w, http.StatusInternalServerError, "internal_error", "internal error")
				return
			}
			switch status {
			case internal.KeyUnknown:
				writeBizErr(w, http.StatusUnauthorized, "invalid_api_key", "invalid api key")
				return
			case internal.KeyRevoked:
				writeBizErr(w, http.StatusForbidden, "api_key_revoked", "api key is revoked")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeBizErr(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(internal.BusinessError{Code: code, Message: msg})
}
