package database

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	"github.com/zatekoja/unitycure/backend/internal/domain/repositories"
	"github.com/zatekoja/unitycure/backend/internal/domain/schema"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/store"
	apperrors "github.com/zatekoja/unitycure/backend/pkg/errors"
)

var userColumns = []any{"id", "identifier", "password", "role", "redirect", "created_at", "updated_at"}

// UserAdapter implements the UserRepository interface
type UserAdapter struct {
	base
}

// NewUserAdapter creates a new user adapter
func NewUserAdapter(s store.Store) repositories.UserRepository {
	return &UserAdapter{base: newBase(s, schema.Users)}
}

func userRecord(u *entities.User) goqu.Record {
	return goqu.Record{
		"id":             u.ID,
		"identifier":     u.Identifier,
		"identifier_key": u.IdentifierKey(),
		"password":       u.Password,
		"role":           string(u.Role),
		"redirect":       u.Redirect,
		"created_at":     toMillis(u.CreatedAt),
		"updated_at":     toMillis(u.UpdatedAt),
	}
}

func scanUser(s scanner) (*entities.User, error) {
	var (
		u                entities.User
		role             string
		created, updated int64
	)
	if err := s.Scan(&u.ID, &u.Identifier, &u.Password, &role, &u.Redirect, &created, &updated); err != nil {
		return nil, err
	}
	u.Role = entities.Role(role)
	u.CreatedAt = fromMillis(created)
	u.UpdatedAt = fromMillis(updated)
	return &u, nil
}

// Create inserts a user
func (a *UserAdapter) Create(ctx context.Context, user *entities.User) error {
	prepare(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	_, err := a.exec(ctx, a.db.Insert(a.table).Rows(userRecord(user)), "create user")
	return err
}

// InsertMany inserts users in a single statement
func (a *UserAdapter) InsertMany(ctx context.Context, users []*entities.User) error {
	if len(users) == 0 {
		return nil
	}
	rows := make([]any, 0, len(users))
	for _, u := range users {
		prepare(&u.ID, &u.CreatedAt, &u.UpdatedAt)
		rows = append(rows, userRecord(u))
	}
	_, err := a.exec(ctx, a.db.Insert(a.table).Rows(rows...), "insert users")
	return err
}

// Upsert inserts the user, or updates the existing user with the same
// identifier and loads its id and creation time into user.
func (a *UserAdapter) Upsert(ctx context.Context, user *entities.User) error {
	fresh := *user
	err := a.Create(ctx, &fresh)
	if err == nil {
		*user = fresh
		return nil
	}
	if !apperrors.IsConflict(err) {
		return err
	}

	updated := user.UpdatedAt
	if updated.IsZero() {
		updated = time.Now().UTC()
	}
	update := a.db.Update(a.table).
		Set(goqu.Record{
			"identifier": user.Identifier,
			"password":   user.Password,
			"role":       string(user.Role),
			"redirect":   user.Redirect,
			"updated_at": toMillis(updated),
		}).
		Where(goqu.C("identifier_key").Eq(user.IdentifierKey()))
	if _, err := a.exec(ctx, update, "update user"); err != nil {
		return err
	}

	existing, err := a.GetByIdentifier(ctx, user.Identifier)
	if err != nil {
		return err
	}
	*user = *existing
	return nil
}

// GetByID retrieves a user by ID
func (a *UserAdapter) GetByID(ctx context.Context, id string) (*entities.User, error) {
	ds := a.selectFrom(userColumns).Where(goqu.C("id").Eq(id))
	return queryOne(ctx, a.base, ds, scanUser, "user with id "+id)
}

// GetByIdentifier retrieves a user by identifier, ignoring case and padding
func (a *UserAdapter) GetByIdentifier(ctx context.Context, identifier string) (*entities.User, error) {
	key := entities.NormalizeIdentifier(identifier)
	ds := a.selectFrom(userColumns).Where(goqu.C("identifier_key").Eq(key))
	return queryOne(ctx, a.base, ds, scanUser, "user "+key)
}

// List retrieves users
func (a *UserAdapter) List(ctx context.Context, opts repositories.ListOptions) ([]*entities.User, error) {
	return queryAll(ctx, a.base, paginate(a.selectFrom(userColumns), opts), scanUser)
}

// Count returns the number of users
func (a *UserAdapter) Count(ctx context.Context) (int64, error) {
	return a.count(ctx)
}
