package models

// Default and boundary values for page-based pagination.
const (
	DefaultPage = 1
	DefaultSize = 20
	MaxSize     = 1000
)

// PaginationParams is a validated (page, size) pair. Page starts at 1;
// size is clamped to [1, MaxSize] by [NewPaginationParams].
type PaginationParams struct {
	Page int
	Size int
}

// NewPaginationParams normalizes raw query values: out-of-range pages fall
// back to the first page and out-of-range sizes to the default size.
func NewPaginationParams(page, size int) PaginationParams {
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 || size > MaxSize {
		size = DefaultSize
	}
	return PaginationParams{Page: page, Size: size}
}

// Offset is the number of rows to skip for the current page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Size
}

// Limit is the row window size for the current page.
func (p PaginationParams) Limit() int {
	return p.Size
}

// Pagination is the page-math block attached to list payloads.
type Pagination struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Size    int   `json:"size"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"has_next"`
	HasPrev bool  `json:"has_prev"`
}

// NewPagination computes pages = ceil(total/size) (0 when total is 0),
// has_next = page < pages and has_prev = page > 1.
func NewPagination(total int64, params PaginationParams) Pagination {
	var pages int
	if total > 0 {
		pages = int((total + int64(params.Size) - 1) / int64(params.Size))
	}

	return Pagination{
		Total:   total,
		Page:    params.Page,
		Size:    params.Size,
		Pages:   pages,
		HasNext: params.Page < pages,
		HasPrev: params.Page > 1,
	}
}

// UserListResponse is the payload of GET /api/v1/users/.
type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination Pagination     `json:"pagination"`
}
