package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/typesense/typesense-go/v2/typesense"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	"github.com/zatekoja/unitycure/backend/internal/domain/repositories"
	tsclient "github.com/zatekoja/unitycure/backend/internal/infrastructure/clients/typesense"
)

const collectionName = "providers"

// TypesenseAdapter implements provider search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements ProviderSearchRepository
var _ repositories.ProviderSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	if _, err := a.client.Client().Collection(collectionName).Retrieve(ctx); err == nil {
		return nil
	}

	schema := &api.CollectionSchema{
		Name: collectionName,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "provider_type", Type: "string", Facet: pointer.True()},
			{Name: "specialty", Type: "string", Optional: pointer.True()},
			{Name: "services", Type: "string[]", Optional: pointer.True()},
			{Name: "location", Type: "geopoint"},
			{Name: "verified", Type: "bool"},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}

	if _, err := a.client.Client().Collections().Create(ctx, schema); err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}
	return nil
}

func providerDocument(p *entities.Provider) map[string]interface{} {
	services := p.Services
	if services == nil {
		services = []string{}
	}
	return map[string]interface{}{
		"id":            p.ID,
		"name":          p.Name,
		"provider_type": p.ProviderType,
		"specialty":     p.Specialty,
		"services":      services,
		"location":      []float64{p.Location.Latitude(), p.Location.Longitude()},
		"verified":      p.Verified,
		"created_at":    p.CreatedAt.Unix(),
	}
}

// Index adds or replaces a provider document
func (a *TypesenseAdapter) Index(ctx context.Context, provider *entities.Provider) error {
	if _, err := a.client.Client().Collection(collectionName).Documents().Upsert(ctx, providerDocument(provider)); err != nil {
		return fmt.Errorf("failed to index provider %s: %w", provider.ID, err)
	}
	return nil
}

// Search returns the IDs of matching providers, best match first
func (a *TypesenseAdapter) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		query = "*"
	}
	if limit <= 0 {
		limit = 20
	}
	params := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("name,specialty,services"),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(collectionName).Documents().Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to search providers: %w", err)
	}

	ids := []string{}
	if result.Hits == nil {
		return ids, nil
	}
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		if id, ok := (*hit.Document)["id"].(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// DropSchema deletes the collection so the next InitSchema starts clean. A
// missing collection is not an error.
func (a *TypesenseAdapter) DropSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(collectionName).Delete(ctx)
	var httpErr *typesense.HTTPError
	if err != nil && !(errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound) {
		return fmt.Errorf("failed to drop typesense collection: %w", err)
	}
	return nil
}
