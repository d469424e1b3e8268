package completions

import (
	"maps"
	"slices"

	"github.com/maxbolgarin/gopenai/openai"
)

// Builder accumulates fields of a Request.
type Builder struct {
	req Request
}

func NewBuilder() *Builder {
	return &Builder{}
}

// New returns a builder with the model set.
func New(model openai.Model) *Builder {
	return NewBuilder().Model(model)
}

func (b *Builder) Model(m openai.Model) *Builder {
	b.req.Model = m
	return b
}

// Prompt sets one or more prompts. Each prompt gets its own choices.
func (b *Builder) Prompt(prompts ...string) *Builder {
	b.req.Prompt = slices.Clone(prompts)
	return b
}

func (b *Builder) Suffix(s string) *Builder {
	b.req.Suffix = &s
	return b
}

func (b *Builder) MaxTokens(n int) *Builder {
	b.req.MaxTokens = &n
	return b
}

func (b *Builder) Temperature(t float64) *Builder {
	b.req.Temperature = &t
	return b
}

func (b *Builder) TopP(p float64) *Builder {
	b.req.TopP = &p
	return b
}

func (b *Builder) N(n int) *Builder {
	b.req.N = &n
	return b
}

func (b *Builder) LogProbs(n int) *Builder {
	b.req.LogProbs = &n
	return b
}

func (b *Builder) Echo(v bool) *Builder {
	b.req.Echo = &v
	return b
}

// Stop sets up to 4 sequences where generation stops.
func (b *Builder) Stop(seqs ...string) *Builder {
	b.req.Stop = slices.Clone(seqs)
	return b
}

func (b *Builder) PresencePenalty(p float64) *Builder {
	b.req.PresencePenalty = &p
	return b
}

func (b *Builder) FrequencyPenalty(p float64) *Builder {
	b.req.FrequencyPenalty = &p
	return b
}

func (b *Builder) BestOf(n int) *Builder {
	b.req.BestOf = &n
	return b
}

func (b *Builder) LogitBias(bias map[string]int) *Builder {
	b.req.LogitBias = maps.Clone(bias)
	return b
}

func (b *Builder) User(user string) *Builder {
	b.req.User = &user
	return b
}

// Build checks the model is set and returns an independent Request.
func (b *Builder) Build() (*Request, error) {
	err := openai.Require(openai.Field{Name: "model", Set: !b.req.Model.IsZero()})
	if err != nil {
		return nil, err
	}

	out := b.req
	out.Prompt = slices.Clone(b.req.Prompt)
	out.Suffix = openai.Clone(b.req.Suffix)
	out.MaxTokens = openai.Clone(b.req.MaxTokens)
	out.Temperature = openai.Clone(b.req.Temperature)
	out.TopP = openai.Clone(b.req.TopP)
	out.N = openai.Clone(b.req.N)
	out.LogProbs = openai.Clone(b.req.LogProbs)
	out.Echo = openai.Clone(b.req.Echo)
	out.Stop = slices.Clone(b.req.Stop)
	out.PresencePenalty = openai.Clone(b.req.PresencePenalty)
	out.FrequencyPenalty = openai.Clone(b.req.FrequencyPenalty)
	out.BestOf = openai.Clone(b.req.BestOf)
	out.LogitBias = maps.Clone(b.req.LogitBias)
	out.User = openai.Clone(b.req.User)

	return &out, nil
}
