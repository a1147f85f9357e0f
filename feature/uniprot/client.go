package uniprot

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

// DefaultBaseURL is the public UniProt REST endpoint.
const DefaultBaseURL = "https://rest.uniprot.org"

const maxErrorBody = 512

// Client queries the UniProt REST API.
type Client struct {
	baseURL    string
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

// New creates a UniProt client. An empty baseURL selects DefaultBaseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("failed to parse uniprot base url: %w", err)
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

// Search returns the primary accessions of the entries matching the term.
// The database of the request is ignored: UniProtKB is the only one served.
func (c *Client) Search(ctx context.Context, req resolve.SearchRequest) ([]string, error) {
	term := strings.TrimSpace(req.Term)
	if term == "" {
		return nil, resolve.NewStatusError("search", http.StatusBadRequest, errors.New("term must not be empty"))
	}

	query := term
	if req.Field == resolve.FieldAccession {
		query = "accession:" + term
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("fields", "accession")
	params.Set("format", "json")
	params.Set("size", "1")

	body, err := c.get(ctx, "search", "/uniprotkb/search?"+params.Encode())
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, resolve.NewMalformedError("search", errors.New("uniprot search returned invalid json"))
	}
	results := gjson.GetBytes(body, "results")
	if !results.Exists() {
		return nil, resolve.NewMalformedError("search", errors.New("uniprot search response has no results"))
	}

	var ids []string
	results.ForEach(func(_, entry gjson.Result) bool {
		if acc := strings.TrimSpace(entry.Get("primaryAccession").String()); acc != "" {
			ids = append(ids, acc)
		}
		return true
	})
	return ids, nil
}

// Summary fetches one entry.
func (c *Client) Summary(ctx context.Context, req resolve.SummaryRequest) (resolve.Summary, error) {
	handle := strings.TrimSpace(req.Handle)
	if handle == "" {
		return resolve.Summary{}, resolve.NewStatusError("summary", http.StatusBadRequest, errors.New("handle must not be empty"))
	}

	body, err := c.get(ctx, "summary", "/uniprotkb/"+url.PathEscape(handle)+".json")
	if err != nil {
		return resolve.Summary{}, err
	}

	if !gjson.ValidBytes(body) {
		return resolve.Summary{}, resolve.NewMalformedError("summary", errors.New("uniprot entry is not valid json"))
	}
	entry := gjson.ParseBytes(body)
	acc := strings.TrimSpace(entry.Get("primaryAccession").String())
	if acc == "" {
		return resolve.Summary{}, resolve.NewMalformedError("summary", fmt.Errorf("uniprot entry %s has no primaryAccession", handle))
	}

	var refs []resolve.CrossRef
	for _, xref := range entry.Get("uniProtKBCrossReferences").Array() {
		db := strings.TrimSpace(xref.Get("database").String())
		id := strings.TrimSpace(xref.Get("id").String())
		if db != "" && id != "" {
			refs = append(refs, resolve.CrossRef{Namespace: db, ID: id})
		}
	}

	var orfNames []string
	for _, name := range entry.Get("genes.#.orfNames.#.value").Array() {
		for _, v := range name.Array() {
			orfNames = append(orfNames, "ORF:"+v.String())
		}
	}

	return resolve.Summary{
		AccessionVersion: acc,
		SourceNamespace:  strings.TrimSpace(entry.Get("entryType").String()),
		Annotation:       strings.Join(orfNames, ";"),
		CrossRefs:        refs,
	}, nil
}

func (c *Client) get(ctx context.Context, op, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
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
		return nil, resolve.NewStatusError(op, resp.StatusCode, fmt.Errorf("uniprot returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resolve.NewTransportError(op, fmt.Errorf("failed to read uniprot response: %w", err))
	}
	return body, nil
}
