package llm

import "context"

type Provider interface {
	// Complete submits a single two-part prompt and returns the raw model
	// output, constrained to the JSON schema given in the options.
	Complete(ctx context.Context, prompt Prompt, opts ...Option) (*Response, error)
}

// Prompt is one completion request: a fixed system instruction plus a user
// message with an optional image attachment.
type Prompt struct {
	System string
	User   string

	// ImageURL, when non-empty, is attached as an image content part
	// alongside the user text (a data URI or fetchable URL).
	ImageURL string
}

type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

type Response struct {
	Content string
	Usage   Usage
}

type Option func(*Options)

type Options struct {
	Model     string
	MaxTokens int64
	Schema    *ResponseSchema
}

// ResponseSchema names a strict JSON schema the model output must conform to.
type ResponseSchema struct {
	Name        string
	Description string
	Schema      map[string]interface{}
}

func WithSchema(s *ResponseSchema) Option {
	return func(o *Options) {
		o.Schema = s
	}
}
