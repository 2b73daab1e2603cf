// Package analyzer implements the completion gateway: it turns a validated
// analysis request into a single upstream call and normalizes the outcome
// into either a complete result or a categorized error.
package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/sozercan/markdown-analyzer/apimodels"
	"github.com/sozercan/markdown-analyzer/internal/apierror"
	"github.com/sozercan/markdown-analyzer/internal/llm"
)

var SystemPrompt = "You are a helpful assistant that can analyze markdown with the rendered " +
	"preview as an image, and you return the updated markdown along with a " +
	"bullet-point list summary of the changes separated by line breaks. " +
	"IMPORTANT: Always return the complete markdown content from start to " +
	"finish. Do not skip any sections of the document, regardless of length. " +
	"You can make improvements, edits, and changes as requested, but ensure " +
	"you return the entire document."

// resultSchema is the required two-field shape the upstream response is
// decoded against.
var resultSchema = &llm.ResponseSchema{
	Name:        "markdown_revision",
	Description: "The complete revised markdown document and a bullet-point summary of the changes made.",
	Schema: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"markdown": map[string]interface{}{
				"type":        "string",
				"description": "The complete updated markdown document.",
			},
			"summary": map[string]interface{}{
				"type":        "string",
				"description": "Bullet-point list of the changes made, one bullet per line.",
			},
		},
		"required":             []string{"markdown", "summary"},
		"additionalProperties": false,
	},
}

type Analyzer struct {
	llmProvider llm.Provider
}

func New(llmProvider llm.Provider) *Analyzer {
	return &Analyzer{
		llmProvider: llmProvider,
	}
}

// Analyze performs one upstream call for an already-validated request. It
// either returns a complete result or a categorized error; there is no
// partial success.
func (a *Analyzer) Analyze(ctx context.Context, req apimodels.AnalysisRequest) (*apimodels.AnalysisResult, *apierror.Error) {
	slog.Info("Starting analysis",
		"markdown_bytes", len(req.Markdown),
		"instructions_bytes", len(req.Instructions),
		"has_preview", req.Preview != "",
	)
	startTime := time.Now()

	prompt := llm.Prompt{
		System:   SystemPrompt,
		User:     buildUserMessage(req),
		ImageURL: req.Preview,
	}

	resp, err := a.llmProvider.Complete(ctx, prompt, llm.WithSchema(resultSchema))
	if err != nil {
		aerr := classify(err)
		slog.Error("Upstream completion failed", "category", aerr.Category, "status", aerr.Status, "message", aerr.Message)
		return nil, aerr
	}

	var result apimodels.AnalysisResult
	if err := json.Unmarshal([]byte(resp.Content), &result); err != nil {
		slog.Error("Upstream payload did not decode into the result schema", "error", err)
		return nil, apierror.NewInternal(fmt.Sprintf("decoding upstream response: %v", err))
	}

	slog.Info("Analysis completed",
		"duration", time.Since(startTime),
		"tokens_used", resp.Usage.TotalTokens,
	)
	return &result, nil
}

// buildUserMessage assembles the per-call user message. Construction is
// deterministic: labeled instructions, a blank line, then the labeled
// document.
func buildUserMessage(req apimodels.AnalysisRequest) string {
	return fmt.Sprintf("Instructions:\n%s\n\nMarkdown:\n%s", req.Instructions, req.Markdown)
}
