package app

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/gopenai/internal/batch"
	"github.com/maxbolgarin/gopenai/openai/answers"
	"github.com/maxbolgarin/gopenai/openai/classifications"
	"github.com/maxbolgarin/gopenai/openai/completions"
	"github.com/maxbolgarin/gopenai/openai/files"
)

// ClassifyOptions are flags of the classify command
type ClassifyOptions struct {
	Model       string
	SearchModel string
	Query       string
	Labels      []string
	Examples    []string // "text:label"
	File        string
	Temperature *float64
	MaxExamples int
}

// CompleteOptions are flags of the complete command
type CompleteOptions struct {
	Model       string
	Prompt      []string
	MaxTokens   int
	Temperature *float64
	N           int
	Stop        []string
	Echo        bool
}

// AnswerOptions are flags of the answer command
type AnswerOptions struct {
	Model       string
	SearchModel string
	Question    string
	Examples    []string // "question:answer"
	Context     string
	Documents   []string
	File        string
	MaxTokens   int
}

// BatchOptions are flags of the batch command
type BatchOptions struct {
	Model       string
	SearchModel string
	Labels      []string
	Examples    []string
	File        string
	QueriesPath string
}

// BatchLine is one line of the batch command output
type BatchLine struct {
	Query string `json:"query"`
	Label string `json:"label,omitempty"`
	Error string `json:"error,omitempty"`
}

func (a *GoOpenAI) Classify(ctx context.Context, opts ClassifyOptions) error {
	req, err := a.classificationBuilder(opts.Model, opts.SearchModel, opts.Labels, opts.Examples, opts.File)
	if err != nil {
		return err
	}
	if opts.Query != "" {
		req.Query(opts.Query)
	}
	if opts.Temperature != nil {
		req.Temperature(*opts.Temperature)
	}
	if opts.MaxExamples > 0 {
		req.MaxExamples(opts.MaxExamples)
	}

	built, err := req.Build()
	if err != nil {
		return errm.Wrap(err, "invalid classification")
	}
	client, err := a.getClient()
	if err != nil {
		return err
	}

	resp, err := classifications.Create(ctx, client, built)
	if err != nil {
		return errm.Wrap(err, "failed to classify")
	}
	return a.print(resp)
}

func (a *GoOpenAI) Complete(ctx context.Context, opts CompleteOptions) error {
	model, err := a.model(opts.Model, a.cfg.Model())
	if err != nil {
		return err
	}

	b := completions.New(model).Prompt(opts.Prompt...)
	if opts.MaxTokens > 0 {
		b.MaxTokens(opts.MaxTokens)
	}
	if opts.Temperature != nil {
		b.Temperature(*opts.Temperature)
	} else if a.cfg.Defaults.Temperature > 0 {
		b.Temperature(a.cfg.Defaults.Temperature)
	}
	if opts.N > 0 {
		b.N(opts.N)
	}
	if len(opts.Stop) > 0 {
		b.Stop(opts.Stop...)
	}
	if opts.Echo {
		b.Echo(true)
	}

	req, err := b.Build()
	if err != nil {
		return errm.Wrap(err, "invalid completion")
	}
	client, err := a.getClient()
	if err != nil {
		return err
	}

	resp, err := completions.Create(ctx, client, req)
	if err != nil {
		return errm.Wrap(err, "failed to complete")
	}
	return a.print(resp)
}

func (a *GoOpenAI) Answer(ctx context.Context, opts AnswerOptions) error {
	model, err := a.model(opts.Model, a.cfg.Model())
	if err != nil {
		return err
	}
	searchModel, err := a.model(opts.SearchModel, a.cfg.SearchModel())
	if err != nil {
		return err
	}
	examples, err := parsePairs(opts.Examples)
	if err != nil {
		return err
	}

	b := answers.New(model, opts.Question).
		Examples(examples...).
		ExamplesContext(opts.Context).
		SearchModel(searchModel)
	if len(opts.Documents) > 0 {
		b.Documents(opts.Documents...)
	}
	if opts.File != "" {
		b.File(opts.File)
	}
	if opts.MaxTokens > 0 {
		b.MaxTokens(opts.MaxTokens)
	}

	req, err := b.Build()
	if err != nil {
		return errm.Wrap(err, "invalid answer request")
	}
	client, err := a.getClient()
	if err != nil {
		return err
	}

	resp, err := answers.Create(ctx, client, req)
	if err != nil {
		return errm.Wrap(err, "failed to answer")
	}
	return a.print(resp)
}

func (a *GoOpenAI) ListFiles(ctx context.Context) error {
	client, err := a.getClient()
	if err != nil {
		return err
	}
	list, err := files.ListFiles(ctx, client)
	if err != nil {
		return errm.Wrap(err, "failed to list files")
	}
	return a.print(list)
}

func (a *GoOpenAI) GetFile(ctx context.Context, id string) error {
	client, err := a.getClient()
	if err != nil {
		return err
	}
	f, err := files.Retrieve(ctx, client, id)
	if err != nil {
		return errm.Wrap(err, "failed to retrieve file")
	}
	return a.print(f)
}

func (a *GoOpenAI) DeleteFile(ctx context.Context, id string) error {
	client, err := a.getClient()
	if err != nil {
		return err
	}
	resp, err := files.Delete(ctx, client, id)
	if err != nil {
		return errm.Wrap(err, "failed to delete file")
	}
	return a.print(resp)
}

func (a *GoOpenAI) FileContent(ctx context.Context, id string) error {
	client, err := a.getClient()
	if err != nil {
		return err
	}
	content, err := files.Content(ctx, client, id)
	if err != nil {
		return errm.Wrap(err, "failed to download file")
	}
	return a.printText(content)
}

// Batch classifies every non-empty line of the queries file.
// A failed line does not stop the others, its error is printed in place of the label.
func (a *GoOpenAI) Batch(ctx context.Context, opts BatchOptions) error {
	queries, err := readLines(opts.QueriesPath)
	if err != nil {
		return err
	}
	base, err := a.classificationBuilder(opts.Model, opts.SearchModel, opts.Labels, opts.Examples, opts.File)
	if err != nil {
		return err
	}
	// the query is set per line
	template, err := base.Query("").Build()
	if err != nil {
		return errm.Wrap(err, "invalid classification")
	}
	client, err := a.getClient()
	if err != nil {
		return err
	}

	runner, err := batch.New(a.cfg.Batch)
	if err != nil {
		return errm.Wrap(err, "failed to create batch runner")
	}
	defer runner.Close()

	results := batch.Run(ctx, runner, queries, func(ctx context.Context, q string) (classifications.Response, error) {
		req := *template
		req.Query = q
		return classifications.Create(ctx, client, &req)
	})

	lines := make([]BatchLine, len(queries))
	var failed int
	for i, res := range results {
		lines[i] = BatchLine{Query: queries[i], Label: res.Value.Label}
		if res.Err != nil {
			lines[i].Error = res.Err.Error()
			failed++
		}
	}
	a.log.Info("batch finished", "queries", len(queries), "failed", failed)

	return a.print(lines)
}

func (a *GoOpenAI) classificationBuilder(modelName, searchName string, labels, examples []string, file string) (*classifications.Builder, error) {
	model, err := a.model(modelName, a.cfg.Model())
	if err != nil {
		return nil, err
	}
	searchModel, err := a.model(searchName, a.cfg.SearchModel())
	if err != nil {
		return nil, err
	}
	pairs, err := parsePairs(examples)
	if err != nil {
		return nil, err
	}

	b := classifications.NewBuilder().Model(model).SearchModel(searchModel)
	if len(pairs) > 0 {
		b.Examples(pairs...)
	}
	if len(labels) > 0 {
		b.Labels(labels...)
	}
	if file != "" {
		b.File(file)
	}
	if a.cfg.Defaults.Temperature > 0 {
		b.Temperature(a.cfg.Defaults.Temperature)
	}
	return b, nil
}

// parsePairs splits "left:right" values on the last colon.
func parsePairs(values []string) ([][2]string, error) {
	out := make([][2]string, 0, len(values))
	for _, v := range values {
		i := strings.LastIndex(v, ":")
		if i <= 0 || i == len(v)-1 {
			return nil, errm.Errorf("invalid example %q, want text:label", v)
		}
		out = append(out, [2]string{strings.TrimSpace(v[:i]), strings.TrimSpace(v[i+1:])})
	}
	return out, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errm.Wrap(err, "failed to open queries file")
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			out = append(out, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errm.Wrap(err, "failed to read queries file")
	}
	if len(out) == 0 {
		return nil, errm.New("queries file is empty")
	}
	return out, nil
}
