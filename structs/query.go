package structs

import "math"

// Sort orders for task listings.
const (
	SortNewest = "newest"
	SortOldest = "oldest"
)

// Pagination defaults and bounds.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps (page-1)*limit within int.
	MaxPage = math.MaxInt / MaxLimit
)

// ListTaskParams are the typed, defaulted filters of GET /api/tasks.
// UserID is always the authenticated requester.
type ListTaskParams struct {
	UserID   string
	Status   string
	Priority string
	Search   string
	Page     int
	Limit    int
	Sort     string
}

// Offset returns the number of rows to skip.
func (p *ListTaskParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Normalize applies defaults and bounds to page, limit and sort.
func (p *ListTaskParams) Normalize() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Sort != SortOldest {
		p.Sort = SortNewest
	}
}

// Pagination is the paging metadata of a listing.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TaskList is one page of tasks plus the total matching count.
type TaskList struct {
	Tasks []*Task
	Total int
}
