package apimodels

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type AnalysisRequest struct {
	// Markdown is the document to analyze and revise
	Markdown string `json:"markdown"`

	// Instructions is the user's free-text description of the changes to make
	Instructions string `json:"instructions"`

	// Preview is an optional data-URI image of the rendered document
	Preview string `json:"preview,omitempty"`
}

// Validate gates the request before any upstream call is made. It returns a
// validation.Errors value, which marshals as a {field: message} object.
func (r AnalysisRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Markdown, validation.Required.Error("must not be empty")),
		validation.Field(&r.Instructions, validation.Required.Error("must not be empty")),
		validation.Field(&r.Preview, validation.By(embeddableImage)),
	)
}

// embeddableImage accepts an empty value or a data-URI encoded bitmap.
func embeddableImage(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if !strings.HasPrefix(s, "data:image/") {
		return errors.New("must be a data-URI encoded image")
	}
	return nil
}
