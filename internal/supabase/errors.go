package supabase

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// CodeNoRows is the PostgREST code for a singleton read that matched no row.
const CodeNoRows = "PGRST116"

// APIError is a non-2xx response from PostgREST or GoTrue.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details string
	Hint    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("HTTP %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

// ServiceMessage returns the message reported by the service, as shown to the admin.
func (e *APIError) ServiceMessage() string {
	return e.Message
}

// IsCode reports whether err wraps an APIError carrying code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}

// IsStatus reports whether err wraps an APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == status
	}
	return false
}

// errorBody covers both the PostgREST and GoTrue error shapes.
type errorBody struct {
	Code             any    `json:"code"`
	ErrorCode        string `json:"error_code"`
	Message          string `json:"message"`
	Msg              string `json:"msg"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Details          string `json:"details"`
	Hint             string `json:"hint"`
}

func decodeAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		apiErr.Message = strings.TrimSpace(string(body))
		return apiErr
	}

	switch code := parsed.Code.(type) {
	case string:
		apiErr.Code = code
	case float64:
		if parsed.ErrorCode != "" {
			apiErr.Code = parsed.ErrorCode
		}
	}
	if apiErr.Code == "" && parsed.ErrorCode != "" {
		apiErr.Code = parsed.ErrorCode
	}

	apiErr.Message = firstNonEmpty(parsed.Message, parsed.Msg, parsed.ErrorDescription, parsed.Error)
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	apiErr.Details = parsed.Details
	apiErr.Hint = parsed.Hint

	return apiErr
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
