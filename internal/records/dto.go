package records

import "time"

type createRequest struct {
	Title        string     `json:"title"`
	Summary      string     `json:"summary"`
	KeyPoints    []string   `json:"keyPoints"`
	Date         *time.Time `json:"date"`
	Author       string     `json:"author"`
	OriginalText string     `json:"originalText"`
	Metadata     *Metadata  `json:"metadata"`
}

// updateRequest uses pointers so omitted fields can be told apart from
// zero values. An explicit null decodes to nil and is treated as omitted.
type updateRequest struct {
	Title        *string    `json:"title"`
	Summary      *string    `json:"summary"`
	KeyPoints    *[]string  `json:"keyPoints"`
	Date         *time.Time `json:"date"`
	Author       *string    `json:"author"`
	OriginalText *string    `json:"originalText"`
	Metadata     *Metadata  `json:"metadata"`
}

type paginationResponse struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Limit int `json:"limit"`
}
