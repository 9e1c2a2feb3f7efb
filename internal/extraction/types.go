package extraction

import "encoding/json"

// Metadata describes which model produced a result and when.
type Metadata struct {
	Model               string `json:"model"`
	Timestamp           string `json:"timestamp"`
	CharactersProcessed int    `json:"charactersProcessed,omitempty"`
}

// Result is the output of a raw extraction run.
type Result struct {
	ExtractedText string   `json:"extractedText"`
	Metadata      Metadata `json:"metadata"`
}

// StructuredPayload is either JSON parsed from the model's reply or, when
// the reply is not valid JSON, the raw text wrapped under "extractedText".
// The raw-text form is a supported degradation, not an error.
type StructuredPayload struct {
	Parsed  json.RawMessage
	RawText string
}

// IsParsed reports whether the payload carries parsed JSON.
func (p StructuredPayload) IsParsed() bool {
	return len(p.Parsed) > 0
}

// MarshalJSON emits the parsed JSON as-is, or wraps the raw text.
func (p StructuredPayload) MarshalJSON() ([]byte, error) {
	if p.IsParsed() {
		return p.Parsed, nil
	}
	return json.Marshal(map[string]string{"extractedText": p.RawText})
}

// StructuredResult is the output of a structuring run.
type StructuredResult struct {
	Data     StructuredPayload `json:"processedData"`
	Metadata Metadata          `json:"metadata"`
}
