// Package files lists, inspects, deletes and downloads uploaded files.
package files

import (
	"context"
	"net/http"
	"net/url"

	"github.com/maxbolgarin/gopenai/openai"
)

var (
	_ openai.Request[List]            = ListRequest{}
	_ openai.Request[File]            = RetrieveRequest{}
	_ openai.Request[DeleteResponse]  = DeleteRequest{}
	_ openai.Request[ContentResponse] = ContentRequest{}
)

// File describes an uploaded file.
type File struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	Bytes     int64  `json:"bytes"`
	CreatedAt int64  `json:"created_at"`
	Filename  string `json:"filename"`
	Purpose   string `json:"purpose"`
}

// List is the reply to ListRequest.
type List struct {
	Data   []File `json:"data"`
	Object string `json:"object"`
}

// DeleteResponse is the reply to DeleteRequest.
type DeleteResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

// ContentResponse holds the raw file content. The reply is not a JSON object,
// the whole body is the content.
type ContentResponse struct {
	Content string
}

// ListRequest lists files of the organization.
type ListRequest struct{}

func (ListRequest) Method() string            { return http.MethodGet }
func (ListRequest) URL(baseURL string) string { return baseURL + "/files" }
func (ListRequest) Payload() any              { return nil }

func (ListRequest) Decode(body []byte) (List, error) {
	return openai.DecodeJSON[List](body)
}

// RetrieveRequest returns information about one file.
type RetrieveRequest struct {
	ID string
}

// NewRetrieve returns a request for the file with the ID.
func NewRetrieve(id string) (*RetrieveRequest, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return &RetrieveRequest{ID: id}, nil
}

func (RetrieveRequest) Method() string              { return http.MethodGet }
func (r RetrieveRequest) URL(baseURL string) string { return fileURL(baseURL, r.ID, "") }
func (RetrieveRequest) Payload() any                { return nil }

func (RetrieveRequest) Decode(body []byte) (File, error) {
	return openai.DecodeJSON[File](body)
}

// DeleteRequest deletes a file.
type DeleteRequest struct {
	ID string
}

// NewDelete returns a request deleting the file with the ID.
func NewDelete(id string) (*DeleteRequest, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return &DeleteRequest{ID: id}, nil
}

func (DeleteRequest) Method() string              { return http.MethodDelete }
func (r DeleteRequest) URL(baseURL string) string { return fileURL(baseURL, r.ID, "") }
func (DeleteRequest) Payload() any                { return nil }

func (DeleteRequest) Decode(body []byte) (DeleteResponse, error) {
	return openai.DecodeJSON[DeleteResponse](body)
}

// ContentRequest downloads the content of a file.
type ContentRequest struct {
	ID string
}

// NewContent returns a request for the content of the file with the ID.
func NewContent(id string) (*ContentRequest, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return &ContentRequest{ID: id}, nil
}

func (ContentRequest) Method() string              { return http.MethodGet }
func (r ContentRequest) URL(baseURL string) string { return fileURL(baseURL, r.ID, "content") }
func (ContentRequest) Payload() any                { return nil }

func (ContentRequest) Decode(body []byte) (ContentResponse, error) {
	content, err := openai.DecodeText(body)
	return ContentResponse{Content: content}, err
}

// ListFiles lists files.
func ListFiles(ctx context.Context, c *openai.Client) (List, error) {
	return openai.Execute[List](ctx, c, ListRequest{})
}

// Retrieve returns information about a file.
func Retrieve(ctx context.Context, c *openai.Client, id string) (File, error) {
	req, err := NewRetrieve(id)
	if err != nil {
		return File{}, err
	}
	return openai.Execute[File](ctx, c, *req)
}

// Delete deletes a file.
func Delete(ctx context.Context, c *openai.Client, id string) (DeleteResponse, error) {
	req, err := NewDelete(id)
	if err != nil {
		return DeleteResponse{}, err
	}
	return openai.Execute[DeleteResponse](ctx, c, *req)
}

// Content downloads the content of a file.
func Content(ctx context.Context, c *openai.Client, id string) (string, error) {
	req, err := NewContent(id)
	if err != nil {
		return "", err
	}
	resp, err := openai.Execute[ContentResponse](ctx, c, *req)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

func requireID(id string) error {
	return openai.Require(openai.Field{Name: "id", Set: id != ""})
}

func fileURL(baseURL, id, action string) string {
	out := baseURL + "/files/" + url.PathEscape(id)
	if action != "" {
		out += "/" + action
	}
	return out
}
