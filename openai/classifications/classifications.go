// Package classifications classifies a query using labeled examples.
//
// The endpoint first searches over the labeled examples to select the ones most relevant
// for the query. Then the relevant examples are combined with the query to construct a
// prompt that produces the final label via the completions endpoint.
// Examples can be provided inline or through an uploaded file, but not both.
//
//	req, err := classifications.New(openai.Curie, "It is a rainy day :(").
//		SearchModel(openai.Ada).
//		Example("A happy moment", "Positive").
//		Example("I am sad.", "Negative").
//		Labels("Positive", "Negative", "Neutral").
//		Build()
package classifications

import (
	"context"
	"net/http"

	"github.com/maxbolgarin/gopenai/openai"
)

var _ openai.Request[Response] = Request{}

// Request is the classification payload. Required: Model, Query.
type Request struct {
	// Model is the engine used for the completion.
	Model openai.Model `json:"model"`
	// Query is the text to be classified.
	Query string `json:"query"`
	// Examples are (text, label) pairs. Exclusive with File.
	Examples [][2]string `json:"examples,omitempty"`
	// File is the ID of an uploaded file with training examples. Exclusive with Examples.
	File *string `json:"file,omitempty"`
	// Labels is the set of categories. Collected from the examples when empty.
	Labels []string `json:"labels,omitempty"`
	// SearchModel is the engine used for search.
	SearchModel *openai.Model `json:"search_model,omitempty"`
	// Temperature is the sampling temperature: 0 for well-defined answers, 0.9 for creative ones.
	Temperature *float64 `json:"temperature,omitempty"`
	// LogProbs asks for the log probabilities of the N most likely tokens, at most 5.
	LogProbs *int `json:"logprobs,omitempty"`
	// MaxExamples is the maximum number of examples ranked by search when File is used.
	MaxExamples *int `json:"max_examples,omitempty"`
	// LogitBias maps token IDs to a bias from -100 to 100.
	LogitBias map[string]int `json:"logit_bias,omitempty"`
	// ReturnPrompt adds the final prompt to the response.
	ReturnPrompt *bool `json:"return_prompt,omitempty"`
	// ReturnMetadata adds metadata to each selected example. Only with File.
	ReturnMetadata *bool `json:"return_metadata,omitempty"`
	// Expand lists objects returned in full instead of by ID: "completion", "file".
	Expand []string `json:"expand,omitempty"`
	// User identifies the end-user for abuse monitoring.
	User *string `json:"user,omitempty"`
}

// Response is the reply to a Request.
type Response struct {
	// Completion is the ID of the completion used to pick the label.
	Completion string `json:"completion"`
	// Label is the chosen label for the query.
	Label string `json:"label"`
	// Model is the engine used for the completion.
	Model string `json:"model"`
	// Object is the kind of returned object, "classification".
	Object string `json:"object"`
	// SearchModel is the engine used for search.
	SearchModel string `json:"search_model"`
	// SelectedExamples are the examples the query was judged with.
	SelectedExamples []SelectedExample `json:"selected_examples"`
	// Prompt is present when ReturnPrompt was set.
	Prompt string `json:"prompt,omitempty"`
}

// SelectedExample is an example picked by search.
type SelectedExample struct {
	Document int              `json:"document"`
	Label    string           `json:"label"`
	Text     string           `json:"text"`
	LogProbs *openai.LogProbs `json:"logprobs,omitempty"`
	Metadata map[string]any   `json:"metadata,omitempty"`
}

func (Request) Method() string {
	return http.MethodPost
}

func (Request) URL(baseURL string) string {
	return baseURL + "/classifications"
}

func (r Request) Payload() any {
	return r
}

func (Request) Decode(body []byte) (Response, error) {
	return openai.DecodeJSON[Response](body)
}

// Create executes the classification.
func Create(ctx context.Context, c *openai.Client, req *Request) (Response, error) {
	return openai.Execute[Response](ctx, c, *req)
}
