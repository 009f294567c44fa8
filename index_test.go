package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	meilisearch "github.com/meilisearch/meilisearch-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMeiliIndexer_Document(t *testing.T) {
	ix := &meiliIndexer{dosage: NewDosageNormalizer()}

	var berberine Supplement
	for _, s := range seedSupplements() {
		if s.ID == "berberine-hcl" {
			berberine = s
		}
	}
	require.NotEmpty(t, berberine.ID)

	doc := ix.document(berberine)
	assert.Equal(t, "berberine-hcl", doc["id"])
	assert.Equal(t, "berberina hcl", doc["normalizedName"])
	assert.Equal(t, "metabolismo", doc["category"])
	assert.Equal(t, SourceLocal, doc["source"])
	assert.Equal(t, 1500.0, doc["idealDoseHigh"])
	assert.Equal(t, "mg", doc["doseUnit"])
	assert.Equal(t, "high-mg", doc["doseTier"])
}

func TestMeiliIndexer_DocumentWithoutDose(t *testing.T) {
	ix := &meiliIndexer{dosage: NewDosageNormalizer()}
	doc := ix.document(Supplement{ID: "ai-1", Name: "Fisetina", IdealDose: notSpecified, Source: SourceAI})

	assert.Equal(t, "any", doc["doseTier"])
	assert.NotContains(t, doc, "idealDoseHigh")
	assert.NotContains(t, doc, "doseUnit")
}

func TestNewMeiliIndexer_Disabled(t *testing.T) {
	assert.Nil(t, newMeiliIndexer(MeiliConfig{Index: "supplements"}, nil))
}

// newMeiliTestIndexer points an indexer at a stub Meilisearch that accepts
// document additions and counts the requests it receives.
func newMeiliTestIndexer(t *testing.T, docs *[]map[string]interface{}) (*meiliIndexer, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.Method != http.MethodPost || r.URL.Path != "/indexes/supplements/documents" {
			http.NotFound(w, r)
			return
		}
		if docs != nil {
			_ = json.NewDecoder(r.Body).Decode(docs)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"taskUid":1,"indexUid":"supplements","status":"enqueued","type":"documentAdditionOrUpdate","enqueuedAt":"2026-01-01T00:00:00Z"}`))
	}))
	t.Cleanup(srv.Close)

	return &meiliIndexer{
		client:    meilisearch.New(srv.URL, meilisearch.WithCustomClient(srv.Client())),
		indexName: "supplements",
		dosage:    NewDosageNormalizer(),
		log:       zap.NewNop(),
	}, &hits
}

func TestMeiliIndexer_IndexSupplements(t *testing.T) {
	var docs []map[string]interface{}
	ix, hits := newMeiliTestIndexer(t, &docs)

	err := ix.IndexSupplements(context.Background(), []Supplement{{ID: "ai-1", Name: "Fisetina", Source: SourceAI}})
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
	require.Len(t, docs, 1)
	assert.Equal(t, "Fisetina", docs[0]["name"])
	assert.Equal(t, "fisetina", docs[0]["normalizedName"])
}

func TestMeiliIndexer_IndexSupplementsHonoursContext(t *testing.T) {
	ix, hits := newMeiliTestIndexer(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := ix.IndexSupplements(ctx, []Supplement{{ID: "ai-1", Name: "Fisetina"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), context.Canceled.Error())
	assert.Zero(t, atomic.LoadInt32(hits))
}

func TestMeiliIndexer_IndexSupplementsEmpty(t *testing.T) {
	ix, hits := newMeiliTestIndexer(t, nil)
	require.NoError(t, ix.IndexSupplements(context.Background(), nil))
	assert.Zero(t, atomic.LoadInt32(hits))
}
