package errx

// HTTPErrorResponse represents a standard HTTP error response
type HTTPErrorResponse struct {
	Error      string         `json:"error"`
	Code       string         `json:"code"`
	Type       string         `json:"type"`
	Details    map[string]any `json:"details,omitempty"`
	StatusCode int            `json:"status"`
	RequestID  string         `json:"request_id,omitempty"`
}

// ToHTTPResponse converts an Error to an HTTPErrorResponse
func (e *Error) ToHTTPResponse(requestID string) HTTPErrorResponse {
	resp := HTTPErrorResponse{
		Error:      e.Message,
		Code:       e.Code,
		Type:       string(e.Type),
		StatusCode: e.HTTPStatus,
		RequestID:  requestID,
	}
	if len(e.Details) > 0 {
		resp.Details = e.Details
	}
	return resp
}
