package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// maxReplyBytes caps how much of a reply body is read.
const maxReplyBytes = 16 << 20

const replySchemaURL = "mem://qaeval/reply.schema.json"

// replySchema describes the JSON reply accepted from an HTTP answering
// service. section_url and page_content are accepted as aliases.
const replySchema = `{
  "type": "object",
  "required": ["answer"],
  "properties": {
    "answer": {"type": "string"},
    "references": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "properties": {
          "locator": {"type": "string"},
          "section_url": {"type": "string"},
          "url": {"type": "string"},
          "title": {"type": "string"},
          "content": {"type": "string"},
          "page_content": {"type": "string"}
        },
        "anyOf": [
          {"required": ["locator"]},
          {"required": ["section_url"]},
          {"required": ["url"]}
        ]
      }
    }
  }
}`

// ErrInvalidReply marks a reply body that does not match the reply schema.
var ErrInvalidReply = errors.New("invalid reply")

// HTTPOptions configures an HTTPClient.
type HTTPOptions struct {
	Endpoint string
	Headers  map[string]string
	Client   *http.Client
}

// HTTPClient asks questions of a JSON-over-HTTP answering service.
type HTTPClient struct {
	endpoint string
	headers  map[string]string
	client   *http.Client
	schema   *jsonschema.Schema
}

// NewHTTPClient validates options and compiles the reply schema.
func NewHTTPClient(opts HTTPOptions) (*HTTPClient, error) {
	endpoint := strings.TrimSpace(opts.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("service endpoint is required")
	}
	schema, err := jsonschema.CompileString(replySchemaURL, replySchema)
	if err != nil {
		return nil, fmt.Errorf("compile reply schema: %w", err)
	}
	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}
	headers := make(map[string]string, len(opts.Headers))
	for key, value := range opts.Headers {
		headers[key] = value
	}
	return &HTTPClient{endpoint: endpoint, headers: headers, client: client, schema: schema}, nil
}

type httpRequest struct {
	Question string `json:"question"`
}

type wireReference struct {
	Locator     string `json:"locator"`
	SectionURL  string `json:"section_url"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	PageContent string `json:"page_content"`
}

type wireReply struct {
	Answer     string          `json:"answer"`
	References []wireReference `json:"references"`
}

// Answer posts the question and normalizes the JSON reply.
func (c *HTTPClient) Answer(ctx context.Context, question string) (Reply, error) {
	payload, err := json.Marshal(httpRequest{Question: question})
	if err != nil {
		return Reply{}, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Reply{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Reply{}, fmt.Errorf("post question: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return Reply{}, fmt.Errorf("read reply: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Reply{}, fmt.Errorf("service returned %s: %s", resp.Status, snippet(body))
	}
	return c.decode(body)
}

func (c *HTTPClient) decode(body []byte) (Reply, error) {
	var generic interface{}
	if err := json.Unmarshal(body, &generic); err != nil {
		return Reply{}, fmt.Errorf("%w: %v", ErrInvalidReply, err)
	}
	if err := c.schema.Validate(generic); err != nil {
		return Reply{}, fmt.Errorf("%w: %v", ErrInvalidReply, err)
	}
	var wire wireReply
	if err := json.Unmarshal(body, &wire); err != nil {
		return Reply{}, fmt.Errorf("%w: %v", ErrInvalidReply, err)
	}
	reply := Reply{Answer: wire.Answer, References: make([]Reference, 0, len(wire.References))}
	for _, ref := range wire.References {
		reply.References = append(reply.References, Reference{
			Locator: firstNonEmpty(ref.Locator, ref.SectionURL, ref.URL),
			Title:   ref.Title,
			Content: firstNonEmpty(ref.Content, ref.PageContent),
		})
	}
	return reply, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

func snippet(body []byte) string {
	const limit = 200
	text := strings.TrimSpace(string(body))
	if len(text) > limit {
		return text[:limit] + "..."
	}
	return text
}
