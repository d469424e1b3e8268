package openai

import (
	"errors"
	"testing"
)

func TestRequire(t *testing.T) {
	err := Require(Field{Name: "model", Set: true}, Field{Name: "query"}, Field{Name: "file"})

	var be *BuildError
	if !errors.As(err, &be) {
		t.Fatalf("Require() error = %v, want BuildError", err)
	}
	if be.Field() != "query" {
		t.Errorf("Field() = %v, want query", be.Field())
	}
	if !errors.Is(err, ErrMissingField) {
		t.Error("error does not match ErrMissingField")
	}
	if IsTransport(err) || IsDecode(err) {
		t.Error("build error matches a dispatch error")
	}

	if err := Require(Field{Name: "model", Set: true}); err != nil {
		t.Errorf("Require() error = %v", err)
	}
}

func TestExclusive(t *testing.T) {
	tests := []struct {
		name    string
		fields  []Field
		wantErr bool
	}{
		{"none set", []Field{{Name: "examples"}, {Name: "file"}}, false},
		{"one set", []Field{{Name: "examples", Set: true}, {Name: "file"}}, false},
		{"both set", []Field{{Name: "examples", Set: true}, {Name: "file", Set: true}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Exclusive(tt.fields...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Exclusive() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrConflictingFields) {
				t.Errorf("error does not match ErrConflictingFields: %v", err)
			}
		})
	}
}

func TestDecodeText(t *testing.T) {
	got, err := DecodeText([]byte("{\"prompt\": \"a\"}\nnot json at all"))
	if err != nil {
		t.Fatalf("DecodeText() error = %v", err)
	}
	if got != "{\"prompt\": \"a\"}\nnot json at all" {
		t.Errorf("DecodeText() = %q", got)
	}
}
