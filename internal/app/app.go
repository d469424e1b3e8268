package app

import (
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/maxbolgarin/contem"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/gopenai/internal/config"
	"github.com/maxbolgarin/gopenai/internal/stub"
	"github.com/maxbolgarin/gopenai/openai"
	"github.com/maxbolgarin/logze/v2"
)

// GoOpenAI runs CLI commands against the API
type GoOpenAI struct {
	cfg config.Config
	out io.Writer
	log logze.Logger

	client *openai.Client
}

// New creates the application. The API client is created on first use,
// so commands that do not call the API work without a key.
func New(cfg config.Config, out io.Writer) *GoOpenAI {
	return &GoOpenAI{
		cfg: cfg,
		out: out,
		log: logze.With("component", "app"),
	}
}

func (a *GoOpenAI) getClient() (*openai.Client, error) {
	if a.client != nil {
		return a.client, nil
	}
	client, err := openai.New(a.cfg.Client, openai.WithLogger(logze.With("component", "openai")))
	if err != nil {
		return nil, errm.Wrap(err, "failed to create API client")
	}
	a.client = client
	return client, nil
}

// RunStub serves the stub API until ctx is done.
func (a *GoOpenAI) RunStub(ctx contem.Context) error {
	server, err := stub.New(a.cfg.Stub)
	if err != nil {
		return errm.Wrap(err, "failed to create stub server")
	}
	ctx.Add(server.Stop)

	if err := server.Start(ctx); err != nil {
		return errm.Wrap(err, "failed to start stub server")
	}
	a.log.Info("point the client to the stub", "OPENAI_BASE_URL", server.BaseURL())

	<-ctx.Done()
	return nil
}

func (a *GoOpenAI) print(v any) error {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(v, "", "  ")
	if err != nil {
		return errm.Wrap(err, "failed to marshal output")
	}
	data = append(data, '\n')
	if _, err := a.out.Write(data); err != nil {
		return errm.Wrap(err, "failed to write output")
	}
	return nil
}

func (a *GoOpenAI) model(name string, fallback openai.Model) (openai.Model, error) {
	if name == "" {
		return fallback, nil
	}
	return openai.ParseModel(name)
}

func (a *GoOpenAI) printText(s string) error {
	if _, err := io.WriteString(a.out, s); err != nil {
		return errm.Wrap(err, "failed to write output")
	}
	return nil
}
