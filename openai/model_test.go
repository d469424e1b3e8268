package openai

import (
	"strings"
	"testing"
)

func TestModelURL(t *testing.T) {
	const base = "https://api.openai.com/v1"

	tests := []struct {
		model  Model
		action string
		want   string
	}{
		{Ada, "", base + "/engines/text-ada-001"},
		{Ada, "completions", base + "/engines/text-ada-001/completions"},
		{Babbage, "completions", base + "/engines/text-babbage-001/completions"},
		{Curie, "completions", base + "/engines/text-curie-001/completions"},
		{Davinci, "completions", base + "/engines/text-davinci-002/completions"},
		{Davinci, "/search/", base + "/engines/text-davinci-002/search"},
	}

	for _, tt := range tests {
		t.Run(tt.model.String()+"/"+tt.action, func(t *testing.T) {
			if got := tt.model.URL(base, tt.action); got != tt.want {
				t.Errorf("URL() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestModelURLTrailingSlash(t *testing.T) {
	got := Curie.URL("http://localhost:8080/v1/", "completions")
	want := "http://localhost:8080/v1/engines/text-curie-001/completions"
	if got != want {
		t.Errorf("URL() = %v, want %v", got, want)
	}
}

func TestModelFragmentsDoNotOverlap(t *testing.T) {
	all := Models()
	if len(all) != 4 {
		t.Fatalf("Models() returned %d models, want 4", len(all))
	}
	for i, a := range all {
		for j, b := range all {
			if i == j {
				continue
			}
			if strings.Contains(a.URL("", ""), b.Engine()) {
				t.Errorf("%s URL contains %s engine", a, b)
			}
		}
	}
}

func TestParseModel(t *testing.T) {
	tests := []struct {
		name    string
		want    Model
		wantErr bool
	}{
		{"ada", Ada, false},
		{"Babbage", Babbage, false},
		{" curie ", Curie, false},
		{"DAVINCI", Davinci, false},
		{"gpt-4", Model{}, true},
		{"", Model{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseModel(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseModel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseModel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestModelJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Model Model `json:"model"`
	}{Curie})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"model":"curie"}` {
		t.Errorf("Marshal() = %s", data)
	}

	var decoded struct {
		Model Model `json:"model"`
	}
	if err := json.Unmarshal([]byte(`{"model":"ada"}`), &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.Model != Ada {
		t.Errorf("Unmarshal() = %v, want ada", decoded.Model)
	}

	if err := json.Unmarshal([]byte(`{"model":"gpt"}`), &decoded); err == nil {
		t.Error("Unmarshal() of unknown model succeeded")
	}

	if _, err := json.Marshal(struct{ M Model }{}); err == nil {
		t.Error("Marshal() of zero model succeeded")
	}
}
