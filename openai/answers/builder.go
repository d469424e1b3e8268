package answers

import (
	"maps"
	"slices"

	"github.com/maxbolgarin/gopenai/openai"
)

// Builder accumulates fields of a Request.
type Builder struct {
	req         Request
	questionSet bool
	contextSet  bool
}

func NewBuilder() *Builder {
	return &Builder{}
}

// New returns a builder with model and question set.
// Examples and the examples context are still required.
func New(model openai.Model, question string) *Builder {
	return NewBuilder().Model(model).Question(question)
}

func (b *Builder) Model(m openai.Model) *Builder {
	b.req.Model = m
	return b
}

func (b *Builder) Question(q string) *Builder {
	b.req.Question = q
	b.questionSet = true
	return b
}

// Example appends one question/answer pair.
func (b *Builder) Example(question, answer string) *Builder {
	b.req.Examples = append(b.req.Examples, [2]string{question, answer})
	return b
}

func (b *Builder) Examples(examples ...[2]string) *Builder {
	b.req.Examples = slices.Clone(examples)
	return b
}

// ExamplesContext sets the background text the examples were answered from.
func (b *Builder) ExamplesContext(text string) *Builder {
	b.req.ExamplesContext = text
	b.contextSet = true
	return b
}

func (b *Builder) Documents(docs ...string) *Builder {
	b.req.Documents = slices.Clone(docs)
	return b
}

func (b *Builder) File(id string) *Builder {
	b.req.File = &id
	return b
}

func (b *Builder) SearchModel(m openai.Model) *Builder {
	b.req.SearchModel = nil
	if !m.IsZero() {
		b.req.SearchModel = &m
	}
	return b
}

func (b *Builder) MaxRerank(n int) *Builder {
	b.req.MaxRerank = &n
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

func (b *Builder) MaxTokens(n int) *Builder {
	b.req.MaxTokens = &n
	return b
}

func (b *Builder) Stop(seqs ...string) *Builder {
	b.req.Stop = slices.Clone(seqs)
	return b
}

func (b *Builder) N(n int) *Builder {
	b.req.N = &n
	return b
}

func (b *Builder) LogitBias(bias map[string]int) *Builder {
	b.req.LogitBias = maps.Clone(bias)
	return b
}

func (b *Builder) ReturnMetadata(v bool) *Builder {
	b.req.ReturnMetadata = &v
	return b
}

func (b *Builder) ReturnPrompt(v bool) *Builder {
	b.req.ReturnPrompt = &v
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

// Build checks required fields and returns an independent Request.
func (b *Builder) Build() (*Request, error) {
	err := openai.Require(
		openai.Field{Name: "model", Set: !b.req.Model.IsZero()},
		openai.Field{Name: "question", Set: b.questionSet},
		openai.Field{Name: "examples", Set: len(b.req.Examples) > 0},
		openai.Field{Name: "examples_context", Set: b.contextSet},
	)
	if err != nil {
		return nil, err
	}
	err = openai.Exclusive(
		openai.Field{Name: "documents", Set: len(b.req.Documents) > 0},
		openai.Field{Name: "file", Set: b.req.File != nil},
	)
	if err != nil {
		return nil, err
	}

	out := b.req
	out.Examples = slices.Clone(b.req.Examples)
	out.Documents = slices.Clone(b.req.Documents)
	out.File = openai.Clone(b.req.File)
	out.SearchModel = openai.Clone(b.req.SearchModel)
	out.MaxRerank = openai.Clone(b.req.MaxRerank)
	out.Temperature = openai.Clone(b.req.Temperature)
	out.LogProbs = openai.Clone(b.req.LogProbs)
	out.MaxTokens = openai.Clone(b.req.MaxTokens)
	out.Stop = slices.Clone(b.req.Stop)
	out.N = openai.Clone(b.req.N)
	out.LogitBias = maps.Clone(b.req.LogitBias)
	out.ReturnMetadata = openai.Clone(b.req.ReturnMetadata)
	out.ReturnPrompt = openai.Clone(b.req.ReturnPrompt)
	out.Expand = slices.Clone(b.req.Expand)
	out.User = openai.Clone(b.req.User)

	return &out, nil
}
