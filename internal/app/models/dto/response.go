package dto

// APIResponse is the standard response envelope for all endpoints.
// Exactly one of Data and Error is set.
type APIResponse struct {
	Data  interface{}  `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// NewSuccessResponse wraps data in the standard envelope
func NewSuccessResponse(data interface{}) *APIResponse {
	return &APIResponse{Data: data}
}

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// PaginationInfo describes the page window of a list response
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage" example:"1"`
	PageSize    int   `json:"pageSize" example:"10"`
	TotalItems  int64 `json:"totalItems" example:"42"`
	TotalPages  int   `json:"totalPages" example:"5"`
}
