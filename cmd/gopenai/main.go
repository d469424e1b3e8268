package main

import (
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/maxbolgarin/contem"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/gopenai/internal/app"
	"github.com/maxbolgarin/gopenai/internal/config"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
)

var (
	Version, Branch, Commit, BuildDate string
)

var (
	configPath = kingpin.Flag("config", "path to config file").Short('c').String()
	debug      = kingpin.Flag("debug", "enable debug logs").Bool()

	classifyCmd     = kingpin.Command("classify", "classify a query using labeled examples or an uploaded file")
	classifyOpts    app.ClassifyOptions
	classifyTemp    float64
	classifyTempSet bool
	classifyQuery   = classifyCmd.Arg("query", "query to classify").Required().String()

	completeCmd     = kingpin.Command("complete", "create a completion for the prompt")
	completeOpts    app.CompleteOptions
	completeTemp    float64
	completeTempSet bool
	completePrompt  = completeCmd.Arg("prompt", "prompt text").Strings()

	answerCmd  = kingpin.Command("answer", "answer a question using documents or an uploaded file")
	answerOpts app.AnswerOptions

	filesCmd        = kingpin.Command("files", "manage uploaded files")
	filesListCmd    = filesCmd.Command("list", "list files")
	filesGetCmd     = filesCmd.Command("get", "show file metadata")
	filesGetID      = filesGetCmd.Arg("id", "file id").Required().String()
	filesDeleteCmd  = filesCmd.Command("delete", "delete a file")
	filesDeleteID   = filesDeleteCmd.Arg("id", "file id").Required().String()
	filesContentCmd = filesCmd.Command("content", "print file content")
	filesContentID  = filesContentCmd.Arg("id", "file id").Required().String()

	batchCmd  = kingpin.Command("batch", "classify every line of a file")
	batchOpts app.BatchOptions

	stubCmd     = kingpin.Command("stub", "serve a local stub of the API")
	stubAddress = stubCmd.Flag("address", "address to listen on").String()
)

func init() {
	classifyCmd.Flag("temperature", "sampling temperature").IsSetByUser(&classifyTempSet).Float64Var(&classifyTemp)
	classifyCmd.Flag("model", "model name").Short('m').StringVar(&classifyOpts.Model)
	classifyCmd.Flag("search-model", "model used for example search").StringVar(&classifyOpts.SearchModel)
	classifyCmd.Flag("label", "allowed label, repeatable").Short('l').StringsVar(&classifyOpts.Labels)
	classifyCmd.Flag("example", "labeled example as text:label, repeatable").Short('e').StringsVar(&classifyOpts.Examples)
	classifyCmd.Flag("file", "id of an uploaded file with examples").Short('f').StringVar(&classifyOpts.File)
	classifyCmd.Flag("max-examples", "maximum number of examples to rank").IntVar(&classifyOpts.MaxExamples)

	completeCmd.Flag("temperature", "sampling temperature").IsSetByUser(&completeTempSet).Float64Var(&completeTemp)
	completeCmd.Flag("model", "model name").Short('m').StringVar(&completeOpts.Model)
	completeCmd.Flag("max-tokens", "maximum number of tokens to generate").IntVar(&completeOpts.MaxTokens)
	completeCmd.Flag("n", "number of completions").IntVar(&completeOpts.N)
	completeCmd.Flag("stop", "stop sequence, repeatable").StringsVar(&completeOpts.Stop)
	completeCmd.Flag("echo", "echo the prompt").BoolVar(&completeOpts.Echo)

	answerCmd.Flag("model", "model name").Short('m').StringVar(&answerOpts.Model)
	answerCmd.Flag("search-model", "model used for document search").StringVar(&answerOpts.SearchModel)
	answerCmd.Flag("example", "example as question:answer, repeatable").Short('e').Required().StringsVar(&answerOpts.Examples)
	answerCmd.Flag("context", "context of the examples").Required().StringVar(&answerOpts.Context)
	answerCmd.Flag("document", "document to search, repeatable").Short('d').StringsVar(&answerOpts.Documents)
	answerCmd.Flag("file", "id of an uploaded file with documents").Short('f').StringVar(&answerOpts.File)
	answerCmd.Flag("max-tokens", "maximum number of tokens in the answer").IntVar(&answerOpts.MaxTokens)
	answerCmd.Arg("question", "question to answer").Required().StringVar(&answerOpts.Question)

	batchCmd.Flag("model", "model name").Short('m').StringVar(&batchOpts.Model)
	batchCmd.Flag("search-model", "model used for example search").StringVar(&batchOpts.SearchModel)
	batchCmd.Flag("label", "allowed label, repeatable").Short('l').StringsVar(&batchOpts.Labels)
	batchCmd.Flag("example", "labeled example as text:label, repeatable").Short('e').StringsVar(&batchOpts.Examples)
	batchCmd.Flag("file", "id of an uploaded file with examples").Short('f').StringVar(&batchOpts.File)
	batchCmd.Arg("queries", "file with one query per line").Required().ExistingFileVar(&batchOpts.QueriesPath)
}

func main() {
	kingpin.Version(lang.Check(Version, "dev"))
	command := kingpin.Parse()

	var err error
	ctx := contem.New(contem.WithLogger(logze.DefaultPtr()), contem.Exit(&err))
	defer ctx.Shutdown()
	err = run(ctx, command)
	if err != nil {
		logze.DefaultPtr().Error("cannot run", "command", command, "error", err)
	}
}

func run(ctx contem.Context, command string) error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return erro.Wrap(err, "load config")
	}
	level := lang.If(*debug || cfg.Debug, logze.LevelDebug, logze.LevelInfo)
	logze.Init(logze.C().WithConsole().WithLevel(level))

	cfg.Stub.Address = lang.Check(*stubAddress, cfg.Stub.Address)

	gopenai := app.New(cfg, os.Stdout)

	switch command {
	case classifyCmd.FullCommand():
		classifyOpts.Query = *classifyQuery
		classifyOpts.Temperature = flagValue(classifyTemp, classifyTempSet)
		err = gopenai.Classify(ctx, classifyOpts)

	case completeCmd.FullCommand():
		completeOpts.Prompt = *completePrompt
		completeOpts.Temperature = flagValue(completeTemp, completeTempSet)
		err = gopenai.Complete(ctx, completeOpts)

	case answerCmd.FullCommand():
		err = gopenai.Answer(ctx, answerOpts)

	case filesListCmd.FullCommand():
		err = gopenai.ListFiles(ctx)
	case filesGetCmd.FullCommand():
		err = gopenai.GetFile(ctx, *filesGetID)
	case filesDeleteCmd.FullCommand():
		err = gopenai.DeleteFile(ctx, *filesDeleteID)
	case filesContentCmd.FullCommand():
		err = gopenai.FileContent(ctx, *filesContentID)

	case batchCmd.FullCommand():
		err = gopenai.Batch(ctx, batchOpts)

	case stubCmd.FullCommand():
		err = gopenai.RunStub(ctx)
	}
	if err != nil {
		return erro.Wrap(err, command)
	}

	return nil
}

// flagValue returns nil for a flag the user did not pass, so zero stays a valid value.
func flagValue[T any](v T, set bool) *T {
	if !set {
		return nil
	}
	return &v
}
