package analyzer

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"syscall"
	"testing"

	"github.com/openai/openai-go"
	"github.com/stretchr/testify/assert"

	"github.com/sozercan/markdown-analyzer/apimodels"
	"github.com/sozercan/markdown-analyzer/internal/apierror"
	"github.com/sozercan/markdown-analyzer/internal/llm"
)

const testPreview = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

// stubProvider records the prompt it was called with and returns a canned
// response or error.
type stubProvider struct {
	resp  *llm.Response
	err   error
	calls int

	gotPrompt llm.Prompt
	gotOpts   llm.Options
}

func (s *stubProvider) Complete(_ context.Context, prompt llm.Prompt, opts ...llm.Option) (*llm.Response, error) {
	s.calls++
	s.gotPrompt = prompt
	for _, opt := range opts {
		opt(&s.gotOpts)
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func validRequest() apimodels.AnalysisRequest {
	return apimodels.AnalysisRequest{
		Markdown:     "# Test Header\nThis is test content.",
		Instructions: "Improve the formatting",
		Preview:      testPreview,
	}
}

// upstreamError builds an *openai.Error safe to format, mimicking what the
// SDK returns for a structured API failure.
func upstreamError(status int, message string) *openai.Error {
	return &openai.Error{
		StatusCode: status,
		Message:    message,
		Request:    httptest.NewRequest(http.MethodPost, "/chat/completions", nil),
		Response:   &http.Response{StatusCode: status},
	}
}

func TestAnalyzeSuccess(t *testing.T) {
	stub := &stubProvider{resp: &llm.Response{
		Content: `{"markdown": "# Improved Test Header\n\nThis is improved test content.", "summary": "- Enhanced header formatting\n- Added proper spacing"}`,
		Usage:   llm.Usage{TotalTokens: 42},
	}}

	result, aerr := New(stub).Analyze(context.Background(), validRequest())
	assert.Nil(t, aerr)
	assert.Equal(t, "# Improved Test Header\n\nThis is improved test content.", result.Markdown)
	assert.Equal(t, "- Enhanced header formatting\n- Added proper spacing", result.Summary)
}

func TestAnalyzePromptConstruction(t *testing.T) {
	stub := &stubProvider{resp: &llm.Response{Content: `{"markdown": "x", "summary": "y"}`}}

	_, aerr := New(stub).Analyze(context.Background(), validRequest())
	assert.Nil(t, aerr)

	assert.Equal(t, SystemPrompt, stub.gotPrompt.System)
	assert.Equal(t, "Instructions:\nImprove the formatting\n\nMarkdown:\n# Test Header\nThis is test content.", stub.gotPrompt.User)
	assert.Equal(t, testPreview, stub.gotPrompt.ImageURL)

	// output is constrained to the two-field result schema
	assert.NotNil(t, stub.gotOpts.Schema)
	assert.Equal(t, "markdown_revision", stub.gotOpts.Schema.Name)
	assert.Equal(t, []string{"markdown", "summary"}, stub.gotOpts.Schema.Schema["required"])
}

func TestAnalyzeOmitsImageWithoutPreview(t *testing.T) {
	stub := &stubProvider{resp: &llm.Response{Content: `{"markdown": "x", "summary": "y"}`}}

	req := validRequest()
	req.Preview = ""
	_, aerr := New(stub).Analyze(context.Background(), req)
	assert.Nil(t, aerr)
	assert.Empty(t, stub.gotPrompt.ImageURL)
}

type fakeNetTimeout struct{}

func (fakeNetTimeout) Error() string   { return "dial tcp: i/o timeout" }
func (fakeNetTimeout) Timeout() bool   { return true }
func (fakeNetTimeout) Temporary() bool { return true }

func TestAnalyzeErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category apierror.Category
		status   int
		message  string
	}{
		{
			name:     "context deadline exceeded",
			err:      context.DeadlineExceeded,
			category: apierror.Timeout,
			status:   http.StatusRequestTimeout,
			message:  "Request timed out",
		},
		{
			name:     "wrapped net timeout",
			err:      &url.Error{Op: "Post", URL: "https://api.openai.com", Err: fakeNetTimeout{}},
			category: apierror.Timeout,
			status:   http.StatusRequestTimeout,
			message:  "Request timed out",
		},
		{
			name:     "connection refused",
			err:      &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED},
			category: apierror.ConnectionFailure,
			status:   http.StatusServiceUnavailable,
			message:  "Connection failed",
		},
		{
			name:     "rate limited",
			err:      upstreamError(http.StatusTooManyRequests, "rate limit reached"),
			category: apierror.RateLimited,
			status:   http.StatusTooManyRequests,
			message:  "Rate limit exceeded",
		},
		{
			name:     "authentication failure",
			err:      upstreamError(http.StatusUnauthorized, "invalid api key"),
			category: apierror.AuthFailure,
			status:   http.StatusUnauthorized,
			message:  "Authentication failed",
		},
		{
			name:     "upstream error with carried status",
			err:      upstreamError(http.StatusBadGateway, "bad gateway"),
			category: apierror.Upstream,
			status:   http.StatusBadGateway,
			message:  "OpenAI API error",
		},
		{
			name:     "upstream error without status defaults to 500",
			err:      upstreamError(0, "something went wrong"),
			category: apierror.Upstream,
			status:   http.StatusInternalServerError,
			message:  "OpenAI API error",
		},
		{
			name:     "unexpected error",
			err:      errors.New("boom"),
			category: apierror.Internal,
			status:   http.StatusInternalServerError,
			message:  "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubProvider{err: tt.err}

			result, aerr := New(stub).Analyze(context.Background(), validRequest())
			assert.Nil(t, result)
			assert.NotNil(t, aerr)
			assert.Equal(t, tt.category, aerr.Category)
			assert.Equal(t, tt.status, aerr.Status)
			assert.Equal(t, tt.message, aerr.Message)
		})
	}
}

func TestAnalyzeUndecodablePayloadIsInternal(t *testing.T) {
	stub := &stubProvider{resp: &llm.Response{Content: "not json"}}

	result, aerr := New(stub).Analyze(context.Background(), validRequest())
	assert.Nil(t, result)
	assert.NotNil(t, aerr)
	assert.Equal(t, apierror.Internal, aerr.Category)
	assert.Equal(t, http.StatusInternalServerError, aerr.Status)
}
