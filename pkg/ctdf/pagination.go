package ctdf

type Pagination struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Total   *int `json:"total,omitempty"`
	HasMore bool `json:"hasMore"`
}
