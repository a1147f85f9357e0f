package entrez

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"id-reconciler/core/resolve"

	"github.com/tidwall/gjson"
)

// DefaultBaseURL is the public E-utilities endpoint.
const DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// maxErrorBody bounds how much of an error response is kept.
const maxErrorBody = 512

// Client queries the E-utilities.
type Client struct {
	baseURL    string
	apiKey     string
	email      string
	tool       string
	httpClient *http.Client
}

var _ resolve.Lookup = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-call timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithAPIKey sets the NCBI API key sent with every request.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = strings.TrimSpace(key)
	}
}

// WithContact sets the tool name and contact email NCBI asks clients to send.
func WithContact(tool, email string) Option {
	return func(c *Client) {
		c.tool = strings.TrimSpace(tool)
		c.email = strings.TrimSpace(email)
	}
}

// New creates an E-utilities client. An empty baseURL selects DefaultBaseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("failed to parse entrez base url: %w", err)
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Search runs esearch and returns the UIDs of the matching records.
func (c *Client) Search(ctx context.Context, req resolve.SearchRequest) ([]string, error) {
	term := strings.TrimSpace(req.Term)
	if term == "" {
		return nil, resolve.NewStatusError("search", http.StatusBadRequest, errors.New("term must not be empty"))
	}
	if req.Field != "" {
		term = fmt.Sprintf("%s[%s]", term, req.Field)
	}

	params := c.params(req.Database)
	params.Set("term", term)
	params.Set("retmax", "1")

	body, err := c.get(ctx, "search", "esearch.fcgi", params)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, resolve.NewMalformedError("search", errors.New("esearch returned invalid json"))
	}
	doc := gjson.ParseBytes(body)
	result := doc.Get("esearchresult")
	if !result.Exists() {
		return nil, resolve.NewMalformedError("search", errors.New("esearch response has no esearchresult"))
	}
	if msg := result.Get("ERROR"); msg.Exists() {
		return nil, resolve.NewMalformedError("search", fmt.Errorf("esearch error: %s", msg.String()))
	}

	var ids []string
	for _, id := range result.Get("idlist").Array() {
		if s := strings.TrimSpace(id.String()); s != "" {
			ids = append(ids, s)
		}
	}
	return ids, nil
}

// Summary runs esummary for one UID.
func (c *Client) Summary(ctx context.Context, req resolve.SummaryRequest) (resolve.Summary, error) {
	handle := strings.TrimSpace(req.Handle)
	if handle == "" {
		return resolve.Summary{}, resolve.NewStatusError("summary", http.StatusBadRequest, errors.New("handle must not be empty"))
	}

	params := c.params(req.Database)
	params.Set("id", handle)

	body, err := c.get(ctx, "summary", "esummary.fcgi", params)
	if err != nil {
		return resolve.Summary{}, err
	}

	if !gjson.ValidBytes(body) {
		return resolve.Summary{}, resolve.NewMalformedError("summary", errors.New("esummary returned invalid json"))
	}
	doc := gjson.ParseBytes(body)
	if msg := doc.Get("error"); msg.Exists() {
		return resolve.Summary{}, resolve.NewMalformedError("summary", fmt.Errorf("esummary error: %s", msg.String()))
	}

	record := doc.Get("result").Get(handle)
	if !record.Exists() {
		return resolve.Summary{}, resolve.NewMalformedError("summary", fmt.Errorf("esummary response has no record %s", handle))
	}
	if msg := record.Get("error"); msg.Exists() {
		return resolve.Summary{}, resolve.NewMalformedError("summary", fmt.Errorf("esummary error for %s: %s", handle, msg.String()))
	}

	return resolve.Summary{
		AccessionVersion: strings.TrimSpace(record.Get("accessionversion").String()),
		SourceNamespace:  strings.TrimSpace(record.Get("sourcedb").String()),
		Annotation:       strings.TrimSpace(record.Get("extra").String()),
	}, nil
}

func (c *Client) params(database string) url.Values {
	params := url.Values{}
	if database == "" {
		database = "protein"
	}
	params.Set("db", database)
	params.Set("retmode", "json")
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}
	if c.tool != "" {
		params.Set("tool", c.tool)
	}
	if c.email != "" {
		params.Set("email", c.email)
	}
	return params
}

func (c *Client) get(ctx context.Context, op, endpoint string, params url.Values) ([]byte, error) {
	u := c.baseURL + "/" + endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, resolve.NewStatusError(op, http.StatusBadRequest, fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, resolve.NewTransportError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, resolve.NewStatusError(op, resp.StatusCode, fmt.Errorf("entrez %s returned %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(snippet))))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resolve.NewTransportError(op, fmt.Errorf("failed to read %s response: %w", endpoint, err))
	}
	return body, nil
}
