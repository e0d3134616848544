package handlers

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/errdispatch/dispatch"
)

// AuthFailure maps token errors to 401/403 responses. Known jwt failure
// modes get specific reasons; anything else tagged as an auth failure is a
// generic 403.
func AuthFailure(err error, req *http.Request) (*dispatch.Response, error) {
	status := http.StatusForbidden
	reason := "access denied"

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		status, reason = http.StatusUnauthorized, "token expired"
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		status, reason = http.StatusUnauthorized, "token not valid yet"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		status, reason = http.StatusUnauthorized, "invalid token signature"
	case errors.Is(err, jwt.ErrTokenMalformed):
		status, reason = http.StatusUnauthorized, "malformed token"
	}

	resp := dispatch.NewResponse(status, map[string]any{"error": reason})
	if status == http.StatusUnauthorized {
		resp.WithHeader("WWW-Authenticate", "Bearer")
	}
	return resp, nil
}
