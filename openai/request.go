package openai

import (
	"bytes"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/maxbolgarin/errm"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Request is implemented by every payload the Client can execute.
// T is the typed response the payload is answered with.
type Request[T any] interface {
	// Method returns the HTTP method: GET for reads, POST or DELETE otherwise.
	Method() string
	// URL returns the absolute operation URL under baseURL.
	URL(baseURL string) string
	// Payload returns the value to send as a JSON body, nil for no body.
	Payload() any
	// Decode builds the typed response from a successful reply body.
	Decode(body []byte) (T, error)
}

// Result is a response or an error delivered by ExecuteAsync.
type Result[T any] struct {
	Response T
	Err      error
}

// DecodeJSON decodes a JSON object body into T.
// Anything other than a single JSON object is rejected.
func DecodeJSON[T any](body []byte) (T, error) {
	var out T
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return out, errm.New("expected JSON object")
	}
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return out, errm.Wrap(err, "failed to unmarshal response")
	}
	return out, nil
}

// DecodeText treats the whole body as a single string value.
func DecodeText(body []byte) (string, error) {
	return string(body), nil
}

// EncodeJSON encodes a payload the same way the Client does before sending it.
func EncodeJSON(payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errm.Wrap(err, "failed to marshal payload")
	}
	return data, nil
}

func hasBody(method string) bool {
	return method != http.MethodGet && method != http.MethodHead
}
