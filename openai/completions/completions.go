// Package completions generates text from a prompt with a chosen engine.
package completions

import (
	"context"
	"net/http"

	"github.com/maxbolgarin/gopenai/openai"
)

var _ openai.Request[Response] = Request{}

// Request is the completion payload. Required: Model.
// The model selects the engine URL and is not part of the body.
type Request struct {
	Model openai.Model `json:"-"`

	Prompt           []string       `json:"prompt,omitempty"`
	Suffix           *string        `json:"suffix,omitempty"`
	MaxTokens        *int           `json:"max_tokens,omitempty"`
	Temperature      *float64       `json:"temperature,omitempty"`
	TopP             *float64       `json:"top_p,omitempty"`
	N                *int           `json:"n,omitempty"`
	LogProbs         *int           `json:"logprobs,omitempty"`
	Echo             *bool          `json:"echo,omitempty"`
	Stop             []string       `json:"stop,omitempty"`
	PresencePenalty  *float64       `json:"presence_penalty,omitempty"`
	FrequencyPenalty *float64       `json:"frequency_penalty,omitempty"`
	BestOf           *int           `json:"best_of,omitempty"`
	LogitBias        map[string]int `json:"logit_bias,omitempty"`
	User             *string        `json:"user,omitempty"`
}

// Response is the reply to a Request.
type Response struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []Choice     `json:"choices"`
	Usage   openai.Usage `json:"usage"`
}

// Choice is one generated alternative.
type Choice struct {
	Text         string           `json:"text"`
	Index        int              `json:"index"`
	LogProbs     *openai.LogProbs `json:"logprobs"`
	FinishReason string           `json:"finish_reason"`
}

// Text returns the text of the first choice or an empty string.
func (r Response) Text() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Text
}

func (Request) Method() string {
	return http.MethodPost
}

func (r Request) URL(baseURL string) string {
	return r.Model.URL(baseURL, "completions")
}

func (r Request) Payload() any {
	return r
}

func (Request) Decode(body []byte) (Response, error) {
	return openai.DecodeJSON[Response](body)
}

// Create executes the completion.
func Create(ctx context.Context, c *openai.Client, req *Request) (Response, error) {
	return openai.Execute[Response](ctx, c, *req)
}
