package boothsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes used in ErrorResponse.Error.
const (
	CodeUnauthenticated = "unauthenticated"
	CodeForbidden       = "forbidden"
	CodeNotFound        = "not_found"
	CodeValidation      = "validation_failed"
	CodeConflict        = "conflict"
	CodeStorage         = "storage_failed"
	CodeInvalidRequest  = "invalid_request"
	CodeRateLimited     = "rate_limited"
	CodeInternal        = "internal_error"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Code       string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%d %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Detail)
}

// parseErrorResponse builds an APIError from a failed response body,
// falling back to the status text when the body isn't the usual envelope.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       errResp.Error,
			Detail:     errResp.Detail,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       CodeInternal,
		Detail:     fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
