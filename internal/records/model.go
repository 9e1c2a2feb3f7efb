package records

import "time"

// Metadata captures provenance of the AI extraction that produced a record.
type Metadata struct {
	Model               string `json:"model,omitempty"`
	Timestamp           string `json:"timestamp,omitempty"`
	CharactersProcessed int    `json:"charactersProcessed,omitempty"`
}

// ExtractedDocument is a persisted extraction result.
type ExtractedDocument struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Summary      string    `json:"summary"`
	KeyPoints    []string  `json:"keyPoints"`
	Date         time.Time `json:"date"`
	Author       string    `json:"author"`
	OriginalText string    `json:"originalText"`
	Metadata     Metadata  `json:"metadata"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
