package stub

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/maxbolgarin/gopenai/openai"
	"github.com/maxbolgarin/gopenai/openai/answers"
	"github.com/maxbolgarin/gopenai/openai/classifications"
	"github.com/maxbolgarin/gopenai/openai/completions"
	"github.com/maxbolgarin/gopenai/openai/files"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/servex/v2"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	seedFileID      = "file-stub-sentiment"
	seedFileContent = `{"text": "A happy moment", "label": "Positive"}
{"text": "I am sad.", "label": "Negative"}
{"text": "I am feeling awesome", "label": "Positive"}
`
)

// handlers answers API calls with deterministic replies derived from the request.
type handlers struct {
	prefix string
	log    logze.Logger
	seq    atomic.Int64

	mu      sync.Mutex
	files   map[string]files.File
	content map[string]string
}

func newHandlers(prefix string, log logze.Logger) *handlers {
	h := &handlers{
		prefix:  strings.TrimSuffix(prefix, "/"),
		log:     log,
		files:   make(map[string]files.File),
		content: make(map[string]string),
	}
	h.files[seedFileID] = files.File{
		ID:        seedFileID,
		Object:    "file",
		Bytes:     int64(len(seedFileContent)),
		CreatedAt: time.Now().Unix(),
		Filename:  "sentiment.jsonl",
		Purpose:   "classifications",
	}
	h.content[seedFileID] = seedFileContent
	return h
}

// register binds the API routes to their methods under the prefix. All routes share one
// subrouter, so a known path with a wrong method gets 405 instead of 404.
func (h *handlers) register(server *servex.Server) {
	r := server.Router(h.prefix)
	r.HandleFunc("/classifications", h.classify).Methods(http.MethodPost)
	r.HandleFunc("/answers", h.answer).Methods(http.MethodPost)
	r.HandleFunc("/engines/{engine}/completions", h.complete).Methods(http.MethodPost)
	r.HandleFunc("/files", h.listFiles).Methods(http.MethodGet)
	r.HandleFunc("/files/{id}", h.getFile).Methods(http.MethodGet)
	r.HandleFunc("/files/{id}", h.deleteFile).Methods(http.MethodDelete)
	r.HandleFunc("/files/{id}/content", h.fileContent).Methods(http.MethodGet)
}

func (h *handlers) classify(w http.ResponseWriter, r *http.Request) {
	ctx := servex.C(w, r)

	var req classifications.Request
	if !h.readRequest(ctx, &req) {
		return
	}
	if req.Query == "" {
		writeError(ctx, http.StatusBadRequest, "query is required")
		return
	}

	examples := req.Examples
	if req.File != nil {
		var ok bool
		if examples, ok = h.fileExamples(*req.File); !ok {
			writeError(ctx, http.StatusNotFound, fmt.Sprintf("no such file: %s", *req.File))
			return
		}
	}

	ranked := rank(req.Query, examples, req.MaxExamples)
	label := "Neutral"
	switch {
	case len(ranked) > 0:
		label = examples[ranked[0]][1]
	case len(req.Labels) > 0:
		label = req.Labels[0]
	}
	if len(req.Labels) > 0 && !containsFold(req.Labels, label) {
		label = req.Labels[0]
	}

	resp := classifications.Response{
		Completion:  h.nextID("cmpl"),
		Label:       capitalize(label),
		Model:       req.Model.String(),
		Object:      "classification",
		SearchModel: searchModel(req.SearchModel),
	}
	for _, i := range ranked {
		resp.SelectedExamples = append(resp.SelectedExamples, classifications.SelectedExample{
			Document: i,
			Label:    capitalize(examples[i][1]),
			Text:     examples[i][0],
		})
	}
	if req.ReturnPrompt != nil && *req.ReturnPrompt {
		resp.Prompt = fmt.Sprintf("Query: %s\nLabel:", req.Query)
	}

	ctx.Response(http.StatusOK, resp)
}

func (h *handlers) answer(w http.ResponseWriter, r *http.Request) {
	ctx := servex.C(w, r)

	var req answers.Request
	if !h.readRequest(ctx, &req) {
		return
	}
	if req.Question == "" || len(req.Examples) == 0 {
		writeError(ctx, http.StatusBadRequest, "question and examples are required")
		return
	}

	docs := make([][2]string, 0, len(req.Documents))
	for _, d := range req.Documents {
		docs = append(docs, [2]string{d, ""})
	}
	ranked := rank(req.Question, docs, req.MaxRerank)

	resp := answers.Response{
		Completion:  h.nextID("cmpl"),
		Model:       req.Model.String(),
		Object:      "answer",
		SearchModel: searchModel(req.SearchModel),
	}
	if len(ranked) > 0 {
		resp.Answers = []string{firstSentence(req.Documents[ranked[0]])}
	} else {
		resp.Answers = []string{req.Examples[0][1]}
	}
	for _, i := range ranked {
		resp.SelectedDocuments = append(resp.SelectedDocuments, answers.SelectedDocument{Document: i, Text: req.Documents[i]})
	}

	ctx.Response(http.StatusOK, resp)
}

func (h *handlers) complete(w http.ResponseWriter, r *http.Request) {
	ctx := servex.C(w, r)

	engine := ctx.Path("engine")
	model, ok := modelByEngine(engine)
	if !ok {
		writeError(ctx, http.StatusNotFound, fmt.Sprintf("no such engine: %s", engine))
		return
	}

	var req completions.Request
	if !h.readRequest(ctx, &req) {
		return
	}

	prompts := req.Prompt
	if len(prompts) == 0 {
		prompts = []string{""}
	}
	n := 1
	if req.N != nil && *req.N > 0 {
		n = *req.N
	}
	maxTokens := 16
	if req.MaxTokens != nil {
		maxTokens = *req.MaxTokens
	}

	resp := completions.Response{
		ID:      h.nextID("cmpl"),
		Object:  "text_completion",
		Created: time.Now().Unix(),
		Model:   model.Engine(),
	}
	for _, p := range prompts {
		text, finish := generate(p, maxTokens, req.Stop)
		if req.Echo != nil && *req.Echo {
			text = p + text
		}
		for range n {
			resp.Choices = append(resp.Choices, completions.Choice{Text: text, Index: len(resp.Choices), FinishReason: finish})
		}
		resp.Usage.PromptTokens += len(strings.Fields(p))
		resp.Usage.CompletionTokens += n * len(strings.Fields(text))
	}
	resp.Usage.TotalTokens = resp.Usage.PromptTokens + resp.Usage.CompletionTokens

	ctx.Response(http.StatusOK, resp)
}

func (h *handlers) listFiles(w http.ResponseWriter, r *http.Request) {
	ctx := servex.C(w, r)
	if !authorize(ctx) {
		return
	}

	h.mu.Lock()
	list := files.List{Object: "list", Data: make([]files.File, 0, len(h.files))}
	for _, f := range h.files {
		list.Data = append(list.Data, f)
	}
	h.mu.Unlock()

	sort.Slice(list.Data, func(i, j int) bool { return list.Data[i].ID < list.Data[j].ID })
	ctx.Response(http.StatusOK, list)
}

func (h *handlers) getFile(w http.ResponseWriter, r *http.Request) {
	ctx := servex.C(w, r)
	if !authorize(ctx) {
		return
	}
	id := ctx.Path("id")

	h.mu.Lock()
	f, ok := h.files[id]
	h.mu.Unlock()

	if !ok {
		writeError(ctx, http.StatusNotFound, fmt.Sprintf("no such file: %s", id))
		return
	}
	ctx.Response(http.StatusOK, f)
}

func (h *handlers) deleteFile(w http.ResponseWriter, r *http.Request) {
	ctx := servex.C(w, r)
	if !authorize(ctx) {
		return
	}
	id := ctx.Path("id")

	h.mu.Lock()
	_, ok := h.files[id]
	delete(h.files, id)
	delete(h.content, id)
	h.mu.Unlock()

	if !ok {
		writeError(ctx, http.StatusNotFound, fmt.Sprintf("no such file: %s", id))
		return
	}
	ctx.Response(http.StatusOK, files.DeleteResponse{ID: id, Object: "file", Deleted: true})
}

func (h *handlers) fileContent(w http.ResponseWriter, r *http.Request) {
	ctx := servex.C(w, r)
	if !authorize(ctx) {
		return
	}
	id := ctx.Path("id")

	h.mu.Lock()
	content, ok := h.content[id]
	h.mu.Unlock()

	if !ok {
		writeError(ctx, http.StatusNotFound, fmt.Sprintf("no such file: %s", id))
		return
	}
	ctx.Response(http.StatusOK, []byte(content))
}

func (h *handlers) fileExamples(id string) ([][2]string, bool) {
	h.mu.Lock()
	content, ok := h.content[id]
	h.mu.Unlock()
	if !ok {
		return nil, false
	}

	var out [][2]string
	for _, line := range strings.Split(content, "\n") {
		var ex struct {
			Text  string `json:"text"`
			Label string `json:"label"`
		}
		if json.Unmarshal([]byte(line), &ex) == nil && ex.Text != "" {
			out = append(out, [2]string{ex.Text, ex.Label})
		}
	}
	return out, true
}

func (h *handlers) readRequest(ctx *servex.Context, dst any) bool {
	if !authorize(ctx) {
		return false
	}
	if err := ctx.ReadJSON(dst); err != nil {
		h.log.Debug("bad request body", "request_id", ctx.RequestID(), "error", err)
		writeError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid body: %s", err))
		return false
	}
	return true
}

func (h *handlers) nextID(prefix string) string {
	return fmt.Sprintf("%s-stub-%06d", prefix, h.seq.Add(1))
}

// authorize requires a non-empty bearer token, the value itself is not checked.
func authorize(ctx *servex.Context) bool {
	token, ok := strings.CutPrefix(ctx.Header("Authorization"), "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		writeError(ctx, http.StatusUnauthorized, "you didn't provide an API key")
		return false
	}
	return true
}

// writeError replies with the error envelope the API uses.
func writeError(ctx *servex.Context, code int, msg string) {
	ctx.Response(code, map[string]openai.APIError{
		"error": {Message: msg, Type: "invalid_request_error"},
	})
}
