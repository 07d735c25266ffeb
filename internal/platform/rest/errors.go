package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// APIError carries the HTTP status and the backend-provided detail message.
// The detail string is shown to the user verbatim.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// decodeAPIError extracts the {"detail": "..."} body the backend returns on
// failure. A malformed body still yields an APIError with the status only.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Detail = payload.Detail
	}
	return apiErr
}
