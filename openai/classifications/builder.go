package classifications

import (
	"maps"
	"slices"

	"github.com/maxbolgarin/gopenai/openai"
)

// Builder accumulates fields of a Request. Build can be called any number of times.
type Builder struct {
	req      Request
	querySet bool
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// New returns a builder with the required fields set.
func New(model openai.Model, query string) *Builder {
	return NewBuilder().Model(model).Query(query)
}

func (b *Builder) Model(m openai.Model) *Builder {
	b.req.Model = m
	return b
}

func (b *Builder) Query(q string) *Builder {
	b.req.Query = q
	b.querySet = true
	return b
}

// Example appends one labeled example.
func (b *Builder) Example(text, label string) *Builder {
	b.req.Examples = append(b.req.Examples, [2]string{text, label})
	return b
}

// Examples replaces all labeled examples.
func (b *Builder) Examples(examples ...[2]string) *Builder {
	b.req.Examples = slices.Clone(examples)
	return b
}

func (b *Builder) File(id string) *Builder {
	b.req.File = &id
	return b
}

func (b *Builder) Labels(labels ...string) *Builder {
	b.req.Labels = slices.Clone(labels)
	return b
}

// SearchModel sets the search engine, the zero model unsets it.
func (b *Builder) SearchModel(m openai.Model) *Builder {
	b.req.SearchModel = nil
	if !m.IsZero() {
		b.req.SearchModel = &m
	}
	return b
}

func (b *Builder) Temperature(t float64) *Builder {
	b.req.Temperature = &t
	return b
}

func (b *Builder) LogProbs(n int) *Builder {
	b.req.LogProbs = &n
	return b
}

func (b *Builder) MaxExamples(n int) *Builder {
	b.req.MaxExamples = &n
	return b
}

func (b *Builder) LogitBias(bias map[string]int) *Builder {
	b.req.LogitBias = maps.Clone(bias)
	return b
}

func (b *Builder) ReturnPrompt(v bool) *Builder {
	b.req.ReturnPrompt = &v
	return b
}

func (b *Builder) ReturnMetadata(v bool) *Builder {
	b.req.ReturnMetadata = &v
	return b
}

func (b *Builder) Expand(objects ...string) *Builder {
	b.req.Expand = slices.Clone(objects)
	return b
}

func (b *Builder) User(user string) *Builder {
	b.req.User = &user
	return b
}

// Build checks required fields and returns a Request that shares no memory with the builder.
// Setting both examples and file is rejected.
func (b *Builder) Build() (*Request, error) {
	err := openai.Require(
		openai.Field{Name: "model", Set: !b.req.Model.IsZero()},
		openai.Field{Name: "query", Set: b.querySet},
	)
	if err != nil {
		return nil, err
	}
	err = openai.Exclusive(
		openai.Field{Name: "examples", Set: len(b.req.Examples) > 0},
		openai.Field{Name: "file", Set: b.req.File != nil},
	)
	if err != nil {
		return nil, err
	}

	out := b.req
	out.Examples = slices.Clone(b.req.Examples)
	out.File = openai.Clone(b.req.File)
	out.Labels = slices.Clone(b.req.Labels)
	out.SearchModel = openai.Clone(b.req.SearchModel)
	out.Temperature = openai.Clone(b.req.Temperature)
	out.LogProbs = openai.Clone(b.req.LogProbs)
	out.MaxExamples = openai.Clone(b.req.MaxExamples)
	out.LogitBias = maps.Clone(b.req.LogitBias)
	out.ReturnPrompt = openai.Clone(b.req.ReturnPrompt)
	out.ReturnMetadata = openai.Clone(b.req.ReturnMetadata)
	out.Expand = slices.Clone(b.req.Expand)
	out.User = openai.Clone(b.req.User)

	return &out, nil
}
