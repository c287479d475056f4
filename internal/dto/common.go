package dto

// Envelope is the standard success response body.
type Envelope struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}
