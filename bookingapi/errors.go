package bookingapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"hotel-booking/policy"
)

// APIError is a non-2xx answer from the booking store. Transport failures
// are never APIErrors.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("booking api: %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("booking api: %d: %s", e.StatusCode, e.Message)
}

// Rejected reports that the server understood the request and refused it.
func (e *APIError) Rejected() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// Unwrap exposes the workflow error kind the server reported, so callers can
// match with errors.Is(err, policy.ErrConflictingAssignment).
func (e *APIError) Unwrap() error {
	if kind := policy.KindFromCode(e.Code); kind != "" {
		return policy.NewError(kind, e.Message, nil)
	}
	return nil
}

func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if json.Unmarshal(raw, &envelope) != nil || len(envelope.Error) == 0 {
		apiErr.Message = strings.TrimSpace(string(raw))
		return apiErr
	}

	var structured struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if json.Unmarshal(envelope.Error, &structured) == nil {
		apiErr.Code = structured.Code
		if structured.Message != "" {
			apiErr.Message = structured.Message
		}
		return apiErr
	}

	var plain string
	if json.Unmarshal(envelope.Error, &plain) == nil && plain != "" {
		apiErr.Message = plain
	}
	return apiErr
}
