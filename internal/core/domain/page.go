package domain

// PageParams are the query parameters accepted by every list endpoint.
// Zero values are omitted from the request; the service then applies its own
// defaults (page 1, 20 items).
type PageParams struct {
	Page    int
	PerPage int
}

// Page is the wrapper shape returned by paginated list endpoints: the current
// page's items plus navigation metadata. The client holds only the current
// page in memory.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}
