package completions

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/maxbolgarin/gopenai/openai"
	"github.com/maxbolgarin/gopenai/openai/openaitest"
)

func TestBuildRequiresModel(t *testing.T) {
	_, err := NewBuilder().Prompt("Say this is a test").Build()

	var be *openai.BuildError
	if !errors.As(err, &be) || be.Field() != "model" {
		t.Fatalf("Build() error = %v, want missing model", err)
	}
}

func TestRequestURL(t *testing.T) {
	tests := []struct {
		model openai.Model
		want  string
	}{
		{openai.Ada, "http://stub/v1/engines/text-ada-001/completions"},
		{openai.Babbage, "http://stub/v1/engines/text-babbage-001/completions"},
		{openai.Curie, "http://stub/v1/engines/text-curie-001/completions"},
		{openai.Davinci, "http://stub/v1/engines/text-davinci-002/completions"},
	}

	for _, tt := range tests {
		t.Run(tt.model.String(), func(t *testing.T) {
			req, err := New(tt.model).Build()
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if got := req.URL("http://stub/v1"); got != tt.want {
				t.Errorf("URL() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPayloadOmitsModelAndUnsetFields(t *testing.T) {
	req, err := New(openai.Davinci).Prompt("Say this is a test").MaxTokens(7).Temperature(0).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	data, err := openai.EncodeJSON(req.Payload())
	if err != nil {
		t.Fatalf("EncodeJSON() error = %v", err)
	}
	want := `{"prompt":["Say this is a test"],"max_tokens":7,"temperature":0}`
	if string(data) != want {
		t.Errorf("payload = %s, want %s", data, want)
	}
}

func TestCreate(t *testing.T) {
	srv := openaitest.NewServer(t)
	srv.Handle(http.MethodPost, "/engines/text-davinci-002/completions", openaitest.Reply{Body: `{
		"id": "cmpl-uqkvlQyYK7bGYrRHQ0eXlWi7",
		"object": "text_completion",
		"created": 1589478378,
		"model": "text-davinci-002",
		"choices": [{"text": "\n\nThis is indeed a test", "index": 0, "logprobs": null, "finish_reason": "length"}],
		"usage": {"prompt_tokens": 5, "completion_tokens": 7, "total_tokens": 12}
	}`})
	c := openaitest.NewClient(t, srv)

	req, err := New(openai.Davinci).Prompt("Say this is a test").MaxTokens(7).Stop("\n").Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	got, err := Create(context.Background(), c, req)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	want := Response{
		ID:      "cmpl-uqkvlQyYK7bGYrRHQ0eXlWi7",
		Object:  "text_completion",
		Created: 1589478378,
		Model:   "text-davinci-002",
		Choices: []Choice{{Text: "\n\nThis is indeed a test", Index: 0, FinishReason: "length"}},
		Usage:   openai.Usage{PromptTokens: 5, CompletionTokens: 7, TotalTokens: 12},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Create() mismatch (-want +got):\n%s", diff)
	}
	if got.Text() != "\n\nThis is indeed a test" {
		t.Errorf("Text() = %q", got.Text())
	}

	body := srv.BodyMap(t)
	if _, ok := body["model"]; ok {
		t.Error("model is sent in the body")
	}
	if diff := cmp.Diff([]any{"\n"}, body["stop"]); diff != "" {
		t.Errorf("stop mismatch:\n%s", diff)
	}
}

func TestCreateServerError(t *testing.T) {
	srv := openaitest.NewServer(t)
	srv.Handle(http.MethodPost, "/engines/text-ada-001/completions", openaitest.Reply{
		Status: http.StatusTooManyRequests,
		Body:   `{"error":{"message":"Rate limit reached","type":"requests"}}`,
	})
	c := openaitest.NewClient(t, srv)

	req, _ := New(openai.Ada).Build()
	_, err := Create(context.Background(), c, req)

	var se *openai.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("Create() error = %v, want StatusError", err)
	}
	if se.StatusCode != http.StatusTooManyRequests || se.API.Message != "Rate limit reached" {
		t.Errorf("StatusError = %+v", se)
	}
	if len(srv.Requests()) != 1 {
		t.Errorf("requests = %d, the client must not retry", len(srv.Requests()))
	}
}

func TestResponseTextEmpty(t *testing.T) {
	if (Response{}).Text() != "" {
		t.Error("Text() of empty response is not empty")
	}
}
