package gemini

// Part is a single text fragment inside a content block.
type Part struct {
	Text string `json:"text"`
}

// Content is a role-tagged block of parts. A "model" role block in the request
// acts as a prefill: generation continues from its text.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// GenerationConfig bounds a generation request.
type GenerationConfig struct {
	MaxOutputTokens  int      `json:"maxOutputTokens,omitempty"`
	StopSequences    []string `json:"stopSequences,omitempty"`
	ResponseMIMEType string   `json:"responseMimeType,omitempty"`
}

// GenerateRequest is the body for the generateContent endpoint.
type GenerateRequest struct {
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	Contents          []Content         `json:"contents"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
}

// Candidate is a single generated completion.
type Candidate struct {
	Content Content `json:"content"`
}

// GenerateResponse is the body returned by the generateContent endpoint.
type GenerateResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Text returns the first candidate's concatenated text, or "".
func (r *GenerateResponse) Text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	out := ""
	for _, p := range r.Candidates[0].Content.Parts {
		out += p.Text
	}
	return out
}
