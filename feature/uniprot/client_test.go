package uniprot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"id-reconciler/core/resolve"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := New(srv.URL)
	require.NoError(t, err)
	return client
}

func TestSearch_Accession(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/uniprotkb/search", r.URL.Path)
		assert.Equal(t, "accession:P12345", r.URL.Query().Get("query"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		_, _ = w.Write([]byte(`{"results":[{"primaryAccession":"P12345"}]}`))
	})

	ids, err := client.Search(context.Background(), resolve.SearchRequest{Term: "P12345", Field: resolve.FieldAccession})
	require.NoError(t, err)
	assert.Equal(t, []string{"P12345"}, ids)
}

func TestSearch_FreeText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "SCO5087", r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(`{"results":[]}`))
	})

	ids, err := client.Search(context.Background(), resolve.SearchRequest{Term: "SCO5087", Field: resolve.FieldAll})
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSearch_Errors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		transient bool
	}{
		{"GatewayTimeout", http.StatusGatewayTimeout, "", true},
		{"BadRequest", http.StatusBadRequest, `{"messages":["query is invalid"]}`, false},
		{"NoResults", http.StatusOK, `{"facets":[]}`, false},
		{"InvalidJSON", http.StatusOK, `not json`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Search(context.Background(), resolve.SearchRequest{Term: "X"})
			require.Error(t, err)
			assert.Equal(t, tt.transient, resolve.IsTransient(err))
		})
	}
}

func TestSummary(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/uniprotkb/Q9X2V9.json", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"entryType": "UniProtKB unreviewed (TrEMBL)",
			"primaryAccession": "Q9X2V9",
			"genes": [{"orfNames": [{"value": "SCO5087"}]}],
			"uniProtKBCrossReferences": [
				{"database": "EMBL", "id": "AL939122", "properties": [{"key": "ProteinId", "value": "CAB45543.1"}]},
				{"database": "RefSeq", "id": "NP_629237.1"},
				{"database": "EMBL", "id": "AL645882"}
			]
		}`))
	})

	s, err := client.Summary(context.Background(), resolve.SummaryRequest{Handle: "Q9X2V9"})
	require.NoError(t, err)
	assert.Equal(t, "Q9X2V9", s.AccessionVersion)
	assert.Equal(t, "UniProtKB unreviewed (TrEMBL)", s.SourceNamespace)
	assert.Equal(t, "ORF:SCO5087", s.Annotation)
	assert.Equal(t, []resolve.CrossRef{
		{Namespace: "EMBL", ID: "AL939122"},
		{Namespace: "RefSeq", ID: "NP_629237.1"},
		{Namespace: "EMBL", ID: "AL645882"},
	}, s.CrossRefs)
}

func TestSummary_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Summary(context.Background(), resolve.SummaryRequest{Handle: "X0"})
	require.Error(t, err)

	var svcErr *resolve.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
	assert.False(t, svcErr.Transient)
}

func TestSummary_MissingAccession(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"entryType":"Inactive"}`))
	})

	_, err := client.Summary(context.Background(), resolve.SummaryRequest{Handle: "X0"})
	require.Error(t, err)
	assert.False(t, resolve.IsTransient(err))
}
