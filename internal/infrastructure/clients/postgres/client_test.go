package postgres

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDatabase_CreatesWhenMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)`)).
		WithArgs("unitycure").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE DATABASE "unitycure"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, EnsureDatabase(context.Background(), db, "unitycure"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureDatabase_NoopWhenPresent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("unitycure").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	require.NoError(t, EnsureDatabase(context.Background(), db, "unitycure"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureDatabase_ToleratesConcurrentCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("unitycure").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`CREATE DATABASE`).
		WillReturnError(&pq.Error{Code: codeDuplicateDatabase})

	assert.NoError(t, EnsureDatabase(context.Background(), db, "unitycure"))
}

func TestEnsureDatabase_QuotesName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(`odd"name`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE DATABASE "odd""name"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, EnsureDatabase(context.Background(), db, `odd"name`))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestErrorClassification(t *testing.T) {
	unique := fmt.Errorf("insert user: %w", &pq.Error{Code: "23505"})
	missing := &pq.Error{Code: "42P01"}
	noDB := fmt.Errorf("ping: %w", &pq.Error{Code: "3D000"})

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(missing))
	assert.True(t, IsUndefinedTable(missing))
	assert.True(t, IsMissingDatabase(noDB))
	assert.False(t, IsMissingDatabase(errors.New("dial tcp: connection refused")))
}
