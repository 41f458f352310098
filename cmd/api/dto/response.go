package dto

// Status is the machine-readable outcome code of every response envelope.
type Status string

const (
	StatusSuccess         Status = "SUCCESS"
	StatusFailure         Status = "FAILURE"
	StatusRecordNotFound  Status = "RECORD_NOT_FOUND"
	StatusValidationError Status = "VALIDATION_ERROR"
	StatusBadRequest      Status = "BAD_REQUEST"
)

// Response is the uniform envelope returned by every handler.
type Response struct {
	Status  Status      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Pagination is a generic page envelope for list results.
// Page is 1-based; PageSize is the requested page size.
type Pagination[T any] struct {
	Data     []T   `json:"data"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

// CountResult is the payload of count responses.
type CountResult struct {
	TotalRecords int64 `json:"totalRecords"`
}

// AffectedResult is the payload of bulk mutations.
type AffectedResult struct {
	Count int64 `json:"count"`
}
