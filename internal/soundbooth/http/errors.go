package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/identity"
	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/service"
	"github.com/aussiebroadwan/soundbooth/internal/soundbooth/store"
	"github.com/aussiebroadwan/soundbooth/pkg/boothsdk"
	"github.com/aussiebroadwan/soundbooth/pkg/httpx"
	"github.com/aussiebroadwan/soundbooth/pkg/slogx"
)

// writeError is the single place errors become HTTP responses. The wrapped
// cause is logged, never sent.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, detail := classify(err)

	log := slogx.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "status", status, "err", err)
	} else {
		log.Warn("request rejected", "status", status, "code", code, "err", err)
	}

	if status == http.StatusUnauthorized {
		httpx.WriteBearerError(w, detail)
		return
	}
	httpx.WriteError(w, status, code, detail)
}

func classify(err error) (status int, code, detail string) {
	var se *service.Error
	if errors.As(err, &se) {
		status, code = kindStatus(se.Kind)
		return status, code, se.Detail
	}

	switch {
	case errors.Is(err, identity.ErrExchangeFailed):
		return http.StatusBadRequest, boothsdk.CodeInvalidRequest, "failed to exchange authorization code"
	case errors.Is(err, identity.ErrProfileFetchFailed):
		return http.StatusBadRequest, boothsdk.CodeInvalidRequest, "failed to fetch user profile"
	case errors.Is(err, store.ErrAlreadyExists):
		return http.StatusConflict, boothsdk.CodeConflict, "resource already exists"
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, boothsdk.CodeNotFound, "resource not found"
	default:
		return http.StatusInternalServerError, boothsdk.CodeInternal, "internal server error"
	}
}

func kindStatus(kind error) (int, string) {
	switch {
	case errors.Is(kind, service.ErrUnauthenticated):
		return http.StatusUnauthorized, boothsdk.CodeUnauthenticated
	case errors.Is(kind, service.ErrForbidden):
		return http.StatusForbidden, boothsdk.CodeForbidden
	case errors.Is(kind, service.ErrNotFound):
		return http.StatusNotFound, boothsdk.CodeNotFound
	case errors.Is(kind, service.ErrValidation):
		return http.StatusBadRequest, boothsdk.CodeValidation
	case errors.Is(kind, service.ErrConflict):
		return http.StatusConflict, boothsdk.CodeConflict
	case errors.Is(kind, service.ErrStorage):
		return http.StatusInternalServerError, boothsdk.CodeStorage
	default:
		return http.StatusInternalServerError, boothsdk.CodeInternal
	}
}

// badRequest reports a malformed query or body.
func badRequest(w http.ResponseWriter, r *http.Request, detail string) {
	writeError(w, r, service.Fail(service.ErrValidation, detail))
}
