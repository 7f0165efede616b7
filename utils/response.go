package utils

// ErrorResponse is a struct for error response
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// MessageResponse is a struct for plain confirmation messages
type MessageResponse struct {
	Message string `json:"message"`
}
