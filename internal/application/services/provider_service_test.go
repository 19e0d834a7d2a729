package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/unitycure/backend/internal/application/services"
	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	apperrors "github.com/zatekoja/unitycure/backend/pkg/errors"
)

type MockProviderSearch struct {
	mock.Mock
}

func (m *MockProviderSearch) InitSchema(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockProviderSearch) Index(ctx context.Context, provider *entities.Provider) error {
	return m.Called(ctx, provider).Error(0)
}

func (m *MockProviderSearch) Search(ctx context.Context, query string, limit int) ([]string, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func TestProviderService_RegisterIndexes(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(newStore(t))
	search := new(MockProviderSearch)
	search.On("Index", mock.Anything, mock.AnythingOfType("*entities.Provider")).Return(errors.New("index down"))

	svc := services.NewProviderService(repos.Providers, search, nopLogger())
	provider := testProvider("Lab One", "lab", -74, 40.7, "Blood work")
	require.NoError(t, svc.Register(ctx, provider))
	assert.NotEmpty(t, provider.ID)
	search.AssertExpectations(t)

	invalid := testProvider("", "lab", -74, 40.7)
	err := svc.Register(ctx, invalid)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestProviderService_SearchWithoutIndex(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(newStore(t))
	svc := services.NewProviderService(repos.Providers, nil, nopLogger())
	require.NoError(t, svc.Register(ctx, testProvider("Lab One", "lab", -74, 40.7, "Blood work")))
	require.NoError(t, svc.Register(ctx, testProvider("Corner Pharmacy", "pharmacy", -74, 40.7, "Vaccination")))

	found, err := svc.Search(ctx, services.ProviderQuery{Text: "blood"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Lab One", found[0].Name)

	all, err := svc.Search(ctx, services.ProviderQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestProviderService_SearchUsesIndexOrder(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(newStore(t))
	a := testProvider("Alpha", "lab", -74, 40.7)
	b := testProvider("Beta", "lab", -74, 40.7)
	require.NoError(t, repos.Providers.Create(ctx, a))
	require.NoError(t, repos.Providers.Create(ctx, b))

	search := new(MockProviderSearch)
	search.On("Search", mock.Anything, "alp", 50).Return([]string{b.ID, a.ID}, nil)

	found, err := services.NewProviderService(repos.Providers, search, nopLogger()).
		Search(ctx, services.ProviderQuery{Text: "alp"})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Beta", found[0].Name)
	assert.Equal(t, "Alpha", found[1].Name)
}

func TestProviderService_SearchFallsBackWhenIndexFails(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(newStore(t))
	require.NoError(t, repos.Providers.Create(ctx, testProvider("Alpha Lab", "lab", -74, 40.7)))

	search := new(MockProviderSearch)
	search.On("Search", mock.Anything, "alpha", 50).Return(nil, errors.New("unreachable"))

	found, err := services.NewProviderService(repos.Providers, search, nopLogger()).
		Search(ctx, services.ProviderQuery{Text: "alpha"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Alpha Lab", found[0].Name)
}

func TestProviderService_SearchNearby(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(newStore(t))
	require.NoError(t, repos.Providers.Create(ctx, testProvider("Near Lab", "lab", -74.001, 40.701)))
	require.NoError(t, repos.Providers.Create(ctx, testProvider("Near Pharmacy", "pharmacy", -74.002, 40.702)))
	require.NoError(t, repos.Providers.Create(ctx, testProvider("Far Lab", "lab", -80, 35)))

	near := entities.NewPoint(-74, 40.7)
	found, err := services.NewProviderService(repos.Providers, nil, nopLogger()).
		Search(ctx, services.ProviderQuery{Type: "LAB", Near: &near})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Near Lab", found[0].Name)
}

func TestProviderService_Reindex(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(newStore(t))
	require.NoError(t, repos.Providers.Create(ctx, testProvider("A", "lab", -74, 40.7)))
	require.NoError(t, repos.Providers.Create(ctx, testProvider("B", "lab", -74, 40.7)))

	search := new(MockProviderSearch)
	search.On("InitSchema", mock.Anything).Return(nil)
	search.On("Index", mock.Anything, mock.Anything).Return(nil)

	n, err := services.NewProviderService(repos.Providers, search, nopLogger()).Reindex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	search.AssertNumberOfCalls(t, "Index", 2)

	n, err = services.NewProviderService(repos.Providers, nil, nopLogger()).Reindex(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
