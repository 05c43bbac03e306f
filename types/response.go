package types

// APIResponse is the envelope every JSON endpoint returns.
type APIResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

type Pagination struct {
	CurrentPage int   `json:"current_page"`
	Limit       int   `json:"limit"`
	TotalPages  int   `json:"total_pages"`
	Total       int64 `json:"total"`
	HasNextPage bool  `json:"has_next_page"`
	HasPrevPage bool  `json:"has_prev_page"`
}

// NewPagination derives page counts from a total row count.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		CurrentPage: page,
		Limit:       limit,
		TotalPages:  totalPages,
		Total:       total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}
