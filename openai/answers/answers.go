// Package answers answers a question using documents and a few question/answer examples.
package answers

import (
	"context"
	"net/http"

	"github.com/maxbolgarin/gopenai/openai"
)

var _ openai.Request[Response] = Request{}

// Request is the answers payload.
// Required: Model, Question, Examples, ExamplesContext. Documents and File are exclusive.
type Request struct {
	Model           openai.Model `json:"model"`
	Question        string       `json:"question"`
	Examples        [][2]string  `json:"examples"`
	ExamplesContext string       `json:"examples_context"`

	Documents      []string       `json:"documents,omitempty"`
	File           *string        `json:"file,omitempty"`
	SearchModel    *openai.Model  `json:"search_model,omitempty"`
	MaxRerank      *int           `json:"max_rerank,omitempty"`
	Temperature    *float64       `json:"temperature,omitempty"`
	LogProbs       *int           `json:"logprobs,omitempty"`
	MaxTokens      *int           `json:"max_tokens,omitempty"`
	Stop           []string       `json:"stop,omitempty"`
	N              *int           `json:"n,omitempty"`
	LogitBias      map[string]int `json:"logit_bias,omitempty"`
	ReturnMetadata *bool          `json:"return_metadata,omitempty"`
	ReturnPrompt   *bool          `json:"return_prompt,omitempty"`
	Expand         []string       `json:"expand,omitempty"`
	User           *string        `json:"user,omitempty"`
}

// Response is the reply to a Request.
type Response struct {
	Answers           []string           `json:"answers"`
	Completion        string             `json:"completion"`
	Model             string             `json:"model"`
	Object            string             `json:"object"`
	SearchModel       string             `json:"search_model"`
	SelectedDocuments []SelectedDocument `json:"selected_documents"`
	Prompt            string             `json:"prompt,omitempty"`
}

// SelectedDocument is a document picked by search.
type SelectedDocument struct {
	Document int            `json:"document"`
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (Request) Method() string {
	return http.MethodPost
}

func (Request) URL(baseURL string) string {
	return baseURL + "/answers"
}

func (r Request) Payload() any {
	return r
}

func (Request) Decode(body []byte) (Response, error) {
	return openai.DecodeJSON[Response](body)
}

// Create executes the request.
func Create(ctx context.Context, c *openai.Client, req *Request) (Response, error) {
	return openai.Execute[Response](ctx, c, *req)
}
