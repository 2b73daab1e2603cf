package apimodels

type AnalysisResult struct {
	// The complete revised document
	Markdown string `json:"markdown"`

	// Bullet-point list of the changes made, one bullet per line
	Summary string `json:"summary"`
}

type ErrorResponse struct {
	Error string `json:"error"`

	// Field-level validation detail for 400s, upstream detail otherwise
	Details interface{} `json:"details,omitempty"`
}

type HealthResponse struct {
	OK bool `json:"ok"`
}
