package answers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/maxbolgarin/gopenai/openai"
	"github.com/maxbolgarin/gopenai/openai/openaitest"
)

func validBuilder() *Builder {
	return New(openai.Curie, "which puppy is happy?").
		Example("What is human life expectancy in the United States?", "78 years.").
		ExamplesContext("In 2017, U.S. life expectancy was 78.6 years.")
}

func TestBuildMissingRequired(t *testing.T) {
	tests := []struct {
		name      string
		builder   *Builder
		wantField string
	}{
		{"nothing set", NewBuilder(), "model"},
		{"no question", NewBuilder().Model(openai.Curie), "question"},
		{"no examples", New(openai.Curie, "q"), "examples"},
		{"no context", New(openai.Curie, "q").Example("a", "b"), "examples_context"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			var be *openai.BuildError
			if !errors.As(err, &be) {
				t.Fatalf("Build() error = %v, want BuildError", err)
			}
			if be.Field() != tt.wantField {
				t.Errorf("Field() = %v, want %v", be.Field(), tt.wantField)
			}
		})
	}
}

func TestBuildDocumentsAndFileConflict(t *testing.T) {
	_, err := validBuilder().Documents("Puppy A is happy.").File("file-1").Build()
	if !errors.Is(err, openai.ErrConflictingFields) {
		t.Fatalf("Build() error = %v, want ErrConflictingFields", err)
	}
}

func TestBuildEmptyDocumentsWithFile(t *testing.T) {
	req, err := validBuilder().Documents([]string{}...).File("file-1").Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	data, err := openai.EncodeJSON(req.Payload())
	if err != nil {
		t.Fatalf("EncodeJSON() error = %v", err)
	}
	if strings.Contains(string(data), `"documents"`) || !strings.Contains(string(data), `"file":"file-1"`) {
		t.Errorf("payload = %s", data)
	}
}

func TestPayloadOmitsUnsetFields(t *testing.T) {
	req, err := validBuilder().Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	data, err := openai.EncodeJSON(req.Payload())
	if err != nil {
		t.Fatalf("EncodeJSON() error = %v", err)
	}
	want := `{"model":"curie","question":"which puppy is happy?",` +
		`"examples":[["What is human life expectancy in the United States?","78 years."]],` +
		`"examples_context":"In 2017, U.S. life expectancy was 78.6 years."}`
	if string(data) != want {
		t.Errorf("payload = %s\nwant %s", data, want)
	}
}

func TestCreate(t *testing.T) {
	srv := openaitest.NewServer(t)
	srv.Handle(http.MethodPost, "/answers", openaitest.Reply{Body: `{
		"answers": ["puppy A."],
		"completion": "cmpl-2euVa1kmKUuLpSX600M41125Mo9NI",
		"model": "curie:2020-05-03",
		"object": "answer",
		"search_model": "ada",
		"selected_documents": [
			{"document": 0, "text": "Puppy A is happy. "},
			{"document": 1, "text": "Puppy B is sad. "}
		]
	}`})
	c := openaitest.NewClient(t, srv)

	req, err := validBuilder().
		Documents("Puppy A is happy.", "Puppy B is sad.").
		SearchModel(openai.Ada).
		MaxTokens(5).
		Stop("\n", "<|endoftext|>").
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	got, err := Create(context.Background(), c, req)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	want := Response{
		Answers:     []string{"puppy A."},
		Completion:  "cmpl-2euVa1kmKUuLpSX600M41125Mo9NI",
		Model:       "curie:2020-05-03",
		Object:      "answer",
		SearchModel: "ada",
		SelectedDocuments: []SelectedDocument{
			{Document: 0, Text: "Puppy A is happy. "},
			{Document: 1, Text: "Puppy B is sad. "},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Create() mismatch (-want +got):\n%s", diff)
	}

	body := srv.BodyMap(t)
	if body["search_model"] != "ada" {
		t.Errorf("search_model = %v", body["search_model"])
	}
	if _, ok := body["file"]; ok {
		t.Error("unset file is present in the body")
	}
}
