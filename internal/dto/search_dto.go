package dto

type SearchRequest struct {
	Query      string `json:"query" validate:"required"`
	Crawl      bool   `json:"crawl"`
	NumResults int    `json:"num_results" validate:"omitempty,min=1,max=10"`
}
