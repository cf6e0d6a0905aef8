package dto

// Response is the uniform envelope returned by every endpoint.
type Response struct {
	Success bool   `json:"success"`
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// NewSuccessResponse builds a success envelope
func NewSuccessResponse(status int, message string, data any) Response {
	return Response{
		Success: true,
		Status:  status,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse builds an error envelope
func NewErrorResponse(status int, message string) Response {
	return Response{
		Success: false,
		Status:  status,
		Message: message,
	}
}
