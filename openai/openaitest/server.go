// Package openaitest provides a stub API server for tests.
package openaitest

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/maxbolgarin/gopenai/openai"
)

// APIKey is the key clients created by NewClient authenticate with.
const APIKey = "test-key"

// Reply is a canned response.
type Reply struct {
	Status      int
	Body        string
	ContentType string
}

// Recorded is a request received by the Server.
type Recorded struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	Body          []byte
}

// Server is an httptest.Server replying with canned bodies and recording every request.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]Reply
	requests []Recorded
}

// NewServer starts a Server that is closed when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{routes: make(map[string]Reply)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Handle sets the reply for method and path.
func (s *Server) Handle(method, path string, reply Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[method+" "+path] = reply
}

// JSON replies with 200 and v encoded as JSON.
func (s *Server) JSON(t testing.TB, method, path string, v any) {
	t.Helper()
	data, err := jsoniter.Marshal(v)
	if err != nil {
		t.Fatalf("marshal reply: %v", err)
	}
	s.Handle(method, path, Reply{Status: http.StatusOK, Body: string(data)})
}

// Requests returns all requests received so far.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Recorded(nil), s.requests...)
}

// Last returns the last received request, it fails the test if there is none.
func (s *Server) Last(t testing.TB) Recorded {
	t.Helper()
	reqs := s.Requests()
	if len(reqs) == 0 {
		t.Fatal("no requests received")
	}
	return reqs[len(reqs)-1]
}

// BodyMap decodes the last request body into a map of top-level keys.
func (s *Server) BodyMap(t testing.TB) map[string]any {
	t.Helper()
	var out map[string]any
	if err := jsoniter.Unmarshal(s.Last(t).Body, &out); err != nil {
		t.Fatalf("request body is not a JSON object: %v", err)
	}
	return out
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, Recorded{
		Method:        r.Method,
		Path:          r.URL.EscapedPath(),
		Authorization: r.Header.Get("Authorization"),
		ContentType:   r.Header.Get("Content-Type"),
		Body:          body,
	})
	reply, ok := s.routes[r.Method+" "+r.URL.EscapedPath()]
	s.mu.Unlock()

	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintf(w, `{"error":{"message":"no route for %s %s","type":"invalid_request_error"}}`, r.Method, r.URL.Path)
		return
	}

	if reply.ContentType == "" {
		reply.ContentType = "application/json"
	}
	if reply.Status == 0 {
		reply.Status = http.StatusOK
	}
	w.Header().Set("Content-Type", reply.ContentType)
	w.WriteHeader(reply.Status)
	io.WriteString(w, reply.Body)
}

// NewClient returns a client pointed at the server.
func NewClient(t testing.TB, s *Server) *openai.Client {
	t.Helper()
	return NewClientWithURL(t, s.URL)
}

// NewClientWithURL returns a client pointed at baseURL.
func NewClientWithURL(t testing.TB, baseURL string) *openai.Client {
	t.Helper()
	c, err := openai.New(openai.Config{APIKey: APIKey, BaseURL: baseURL})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	return c
}

// ClosedURL returns the address of a server that is no longer listening.
func ClosedURL(t testing.TB) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()
	return addr
}
