package dto

import "portfolio-hub/internal/query"

// ListResponse is the envelope every paginated listing uses.
type ListResponse struct {
	Items      any            `json:"items"`
	Pagination query.PageInfo `json:"pagination"`
}
