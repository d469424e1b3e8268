package openai

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/maxbolgarin/errm"
)

// Model selects the upstream engine a request is processed by.
// The set is closed: use one of the predeclared values. The zero value means "not set".
type Model struct {
	name   string
	engine string
}

var (
	// Ada is the fastest and cheapest engine.
	Ada = Model{name: "ada", engine: "text-ada-001"}
	// Babbage is suited for straightforward tasks.
	Babbage = Model{name: "babbage", engine: "text-babbage-001"}
	// Curie is a balance between Ada and Davinci.
	Curie = Model{name: "curie", engine: "text-curie-001"}
	// Davinci is the most capable engine.
	Davinci = Model{name: "davinci", engine: "text-davinci-002"}
)

var models = []Model{Ada, Babbage, Curie, Davinci}

// Models returns all known models.
func Models() []Model {
	return append([]Model(nil), models...)
}

// ParseModel returns the model with the provided name (case-insensitive).
func ParseModel(name string) (Model, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, m := range models {
		if m.name == name {
			return m, nil
		}
	}
	return Model{}, errm.Errorf("unknown model %q", name)
}

// String returns the model name as used in request bodies.
func (m Model) String() string {
	return m.name
}

// Engine returns the upstream engine identifier.
func (m Model) Engine() string {
	return m.engine
}

// IsZero reports whether the model is unset.
func (m Model) IsZero() bool {
	return m.name == ""
}

// URL returns the engine URL under baseURL, suffixed with action if it is not empty.
func (m Model) URL(baseURL, action string) string {
	out := strings.TrimSuffix(baseURL, "/") + "/engines/" + m.engine
	if action = strings.Trim(action, "/"); action != "" {
		out += "/" + action
	}
	return out
}

func (m Model) MarshalJSON() ([]byte, error) {
	if m.IsZero() {
		return nil, errm.New("model is not set")
	}
	return jsoniter.Marshal(m.name)
}

func (m *Model) UnmarshalJSON(data []byte) error {
	var name string
	if err := jsoniter.Unmarshal(data, &name); err != nil {
		return errm.Wrap(err, "model must be a string")
	}
	parsed, err := ParseModel(name)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
