package handlers

// ErrorResponse is the error body returned by every endpoint.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
