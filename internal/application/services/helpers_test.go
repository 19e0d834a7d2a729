package services_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/unitycure/backend/internal/adapters/database"
	"github.com/zatekoja/unitycure/backend/internal/application/services"
	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/store"
)

func newStore(t *testing.T) store.Store {
	t.Helper()
	ctx := context.Background()
	s, err := store.OpenSQLite(ctx, filepath.Join(t.TempDir(), "live.db"))
	require.NoError(t, err)
	require.NoError(t, s.EnsureSchema(ctx))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newRepos(s store.Store) services.Repositories {
	return services.Repositories{
		Users:           database.NewUserAdapter(s),
		Hospitals:       database.NewHospitalAdapter(s),
		Appointments:    database.NewAppointmentAdapter(s),
		SosReports:      database.NewSosReportAdapter(s),
		Feedback:        database.NewFeedbackAdapter(s),
		Providers:       database.NewProviderAdapter(s),
		ContactMessages: database.NewContactMessageAdapter(s),
		ChatbotMessages: database.NewChatbotMessageAdapter(s),
	}
}

func nopLogger() zerolog.Logger {
	return zerolog.Nop()
}

func testHospital(name string, lng, lat float64) *entities.Hospital {
	return &entities.Hospital{
		Name:     name,
		Address:  "1 Main St",
		Location: entities.NewPoint(lng, lat),
		Contact:  "+1-555-0100",
		Services: []string{"Emergency"},
	}
}

func testProvider(name, providerType string, lng, lat float64, services ...string) *entities.Provider {
	return &entities.Provider{
		ProviderType: providerType,
		Name:         name,
		Address:      "2 Side St",
		Location:     entities.NewPoint(lng, lat),
		Contact:      "+1-555-0200",
		Services:     services,
		Admin:        entities.ProviderAdmin{Name: "Ada", Email: "ada@example.com"},
	}
}
