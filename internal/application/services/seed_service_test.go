package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/unitycure/backend/internal/application/services"
	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
)

func TestSeedService_SeedTwiceKeepsOneSet(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(newStore(t))
	svc := services.NewSeedService(repos.Users, repos.Hospitals, nopLogger())

	first, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, first.Users)
	assert.Equal(t, 3, first.Hospitals)

	second, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, second.Users)
	assert.Zero(t, second.Hospitals)

	users, err := repos.Users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(services.SeedUsers())), users)

	hospitals, err := repos.Hospitals.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), hospitals)
}

func TestSeedService_OnlySeedsEmptyCollections(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(newStore(t))
	require.NoError(t, repos.Users.Create(ctx, &entities.User{
		Identifier: "someone@example.com",
		Password:   "secret1",
		Role:       entities.RoleCitizen,
		Redirect:   entities.DefaultRedirect,
	}))

	report, err := services.NewSeedService(repos.Users, repos.Hospitals, nopLogger()).Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, report.Users)
	assert.Equal(t, 3, report.Hospitals)

	users, err := repos.Users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), users)
}

func TestSeedService_SeedData(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(newStore(t))
	_, err := services.NewSeedService(repos.Users, repos.Hospitals, nopLogger()).Seed(ctx)
	require.NoError(t, err)

	doctor, err := repos.Users.GetByIdentifier(ctx, "DOCTOR@uc.com")
	require.NoError(t, err)
	assert.Equal(t, entities.RoleDoctor, doctor.Role)
	assert.Equal(t, "/doctor_schedule.html", doctor.Redirect)

	unity, err := repos.Hospitals.GetByName(ctx, "Unity General Hospital")
	require.NoError(t, err)
	assert.Equal(t, -74.0060, unity.Location.Longitude())
	assert.Equal(t, 40.7128, unity.Location.Latitude())
	assert.Equal(t, []string{"Emergency", "Cardiology", "Pediatrics"}, unity.Services)
	assert.True(t, unity.EmergencyServices)
}
