package models

// Page is the envelope wrapping every list response
type Page struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// OverdueList wraps the overdue page's results with a fixed message
type OverdueList struct {
	Message string        `json:"message"`
	Tasks   []OverdueTask `json:"tasks"`
}
