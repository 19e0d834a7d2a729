package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/unitycure/backend/internal/application/services"
	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	apperrors "github.com/zatekoja/unitycure/backend/pkg/errors"
)

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	svc := services.NewUserService(newRepos(newStore(t)).Users, nopLogger())

	user, err := svc.Register(ctx, services.RegisterInput{
		Identifier: "  New@Example.com ",
		Password:   "secret1",
		Role:       "Doctor",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "New@Example.com", user.Identifier)
	assert.Equal(t, entities.RoleDoctor, user.Role)
	assert.Equal(t, entities.DefaultRedirect, user.Redirect)

	_, err = svc.Register(ctx, services.RegisterInput{Identifier: "new@example.COM", Password: "secret2", Role: "Citizen"})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Contains(t, err.Error(), "user already exists")
}

func TestUserService_RegisterValidation(t *testing.T) {
	svc := services.NewUserService(newRepos(newStore(t)).Users, nopLogger())

	cases := map[string]services.RegisterInput{
		"missing identifier": {Password: "secret1", Role: "Citizen"},
		"missing password":   {Identifier: "a@example.com", Role: "Citizen"},
		"missing role":       {Identifier: "a@example.com", Password: "secret1"},
		"short password":     {Identifier: "a@example.com", Password: "12345", Role: "Citizen"},
		"unknown role":       {Identifier: "a@example.com", Password: "secret1", Role: "Wizard"},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), input)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		})
	}
}

func TestUserService_ConcurrentDuplicateRegistration(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(newStore(t))
	svc := services.NewUserService(repos.Users, nopLogger())

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(ctx, services.RegisterInput{
				Identifier: "race@example.com",
				Password:   "secret1",
				Role:       "Citizen",
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, apperrors.IsConflict(err), err.Error())
	}
	assert.Equal(t, 1, succeeded)

	count, err := repos.Users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(newStore(t))
	_, err := services.NewSeedService(repos.Users, repos.Hospitals, nopLogger()).Seed(ctx)
	require.NoError(t, err)
	svc := services.NewUserService(repos.Users, nopLogger())

	user, err := svc.Login(ctx, "Dispatcher@UC.com", "Disp@123")
	require.NoError(t, err)
	assert.Equal(t, entities.RoleDispatcher, user.Role)
	assert.Equal(t, "/dispatcher_dashboard.html", user.Redirect)

	_, err = svc.Login(ctx, "dispatcher@uc.com", "wrong")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))

	_, err = svc.Login(ctx, "nobody@uc.com", "Disp@123")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))

	_, err = svc.Login(ctx, "", "")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}
