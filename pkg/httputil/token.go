package httputil

import (
	"errors"
	"net/http"
	"strings"
)

// GetTokenFromRequest extracts a bearer token from the Authorization header,
// falling back to the "token" query parameter for WebSocket clients.
func GetTokenFromRequest(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
			return token, nil
		}
		return authHeader, nil
	}

	if token := r.URL.Query().Get("token"); token != "" {
		return token, nil
	}

	return "", errors.New("no auth token found in header or query")
}
