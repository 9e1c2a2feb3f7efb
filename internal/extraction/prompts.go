package extraction

import (
	"fmt"
	"strings"
)

const defaultExtractionPrompt = "Extract and summarize the key information from this PDF document."

func extractionPrompt(prompt, documentText string) string {
	if strings.TrimSpace(prompt) == "" {
		prompt = defaultExtractionPrompt
	}
	return prompt + "\n\nDocument content:\n" + documentText
}

func structuringPrompt(text, schemaSketch string) string {
	if strings.TrimSpace(schemaSketch) != "" {
		return fmt.Sprintf("Extract the following information from the text in a structured JSON format based on this schema: %s. Text: %s", schemaSketch, text)
	}
	return "Extract key information from the following text and return as structured JSON: " + text
}
