package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/typesense/typesense-go/v2/typesense"
	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	tsclient "github.com/zatekoja/unitycure/backend/internal/infrastructure/clients/typesense"
)

func TestProviderDocument(t *testing.T) {
	p := &entities.Provider{
		ID:           "p1",
		Name:         "Quick Labs",
		ProviderType: "lab",
		Location:     entities.NewPoint(-74.0, 40.7),
		CreatedAt:    time.Unix(1700000000, 0),
	}

	doc := providerDocument(p)

	assert.Equal(t, []float64{40.7, -74.0}, doc["location"])
	assert.Equal(t, []string{}, doc["services"])
	assert.Equal(t, int64(1700000000), doc["created_at"])
}

func TestSearchReturnsHitIDs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasPrefix(r.URL.Path, "/collections/providers/documents/search"))
		assert.Equal(t, "blood", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"found":2,"hits":[{"document":{"id":"p2"}},{"document":{"id":"p1"}}]}`))
	}))
	defer server.Close()

	adapter := NewTypesenseAdapter(tsclient.Wrap(typesense.NewClient(
		typesense.WithServer(server.URL),
		typesense.WithAPIKey("test"),
	)))

	ids, err := adapter.Search(context.Background(), "blood", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p1"}, ids)
}
