package dto

// SuccessResponse is the envelope of every successful API response.
type SuccessResponse struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorResponse is the envelope of every failed API response.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// OK wraps data in a success envelope.
func OK(data interface{}) SuccessResponse {
	return SuccessResponse{Success: true, Data: data}
}

// Fail builds an error envelope. detail is omitted when empty.
func Fail(message, detail string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message, Error: detail}
}
