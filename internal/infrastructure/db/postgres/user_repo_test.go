package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/balekai/taskboard/internal/domain"
)

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	t.Run("success_mapping", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "email", "name", "password_hash"}).
			AddRow("u1", "alice@example.com", "Alice", "bcrypt-hash")

		mock.ExpectQuery("SELECT (.+) FROM users WHERE email =").
			WithArgs("alice@example.com").
			WillReturnRows(rows)

		u, err := repo.GetByEmail(context.Background(), "  Alice@Example.COM ")
		assert.NoError(t, err)
		assert.Equal(t, "u1", u.ID)
		assert.Equal(t, "alice@example.com", u.Email)
		assert.True(t, u.HasPassword())
	})

	t.Run("null_password_maps_to_empty", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "email", "name", "password_hash"}).
			AddRow("fed-1", "bob@example.com", "Bob", nil)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE email =").
			WithArgs("bob@example.com").
			WillReturnRows(rows)

		u, err := repo.GetByEmail(context.Background(), "bob@example.com")
		assert.NoError(t, err)
		assert.False(t, u.HasPassword())
	})

	t.Run("not_found_mapping", func(t *testing.T) {
		mock.ExpectQuery("SELECT").WithArgs("none@example.com").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByEmail(context.Background(), "none@example.com")
		assert.True(t, domain.Is(err, "user_not_found"))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	t.Run("success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "email", "name", "password_hash"}).
			AddRow("u1", "alice@example.com", "Alice", "hash")

		mock.ExpectQuery("SELECT (.+) FROM users WHERE id =").
			WithArgs("u1").
			WillReturnRows(rows)

		u, err := repo.GetByID(context.Background(), "u1")
		assert.NoError(t, err)
		assert.Equal(t, "alice@example.com", u.Email)
	})

	t.Run("db_error_mapping", func(t *testing.T) {
		mock.ExpectQuery("SELECT").WithArgs("u2").WillReturnError(errors.New("conn reset"))

		_, err := repo.GetByID(context.Background(), "u2")
		assert.True(t, domain.Is(err, "db_unavailable"))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	t.Run("success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "email", "name", "password_hash"}).
			AddRow("u1", "alice@example.com", "Alice", "hash")

		mock.ExpectQuery("INSERT INTO users").
			WithArgs("u1", "alice@example.com", "Alice", sqlmock.AnyArg()).
			WillReturnRows(rows)

		u, err := repo.Create(context.Background(), domain.User{
			ID: "u1", Email: "Alice@Example.com", Name: "Alice", PasswordHash: "hash",
		})
		assert.NoError(t, err)
		assert.Equal(t, "u1", u.ID)
	})

	t.Run("duplicate_email_maps_to_conflict", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

		_, err := repo.Create(context.Background(), domain.User{
			ID: "u2", Email: "alice@example.com", PasswordHash: "hash",
		})
		assert.True(t, domain.Is(err, "email_already_exists"))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_UpdateProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs("u1", "New Name").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateProfile(context.Background(), "u1", "New Name"))
	})

	t.Run("zero_rows_is_not_found", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs("missing", "x").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateProfile(context.Background(), "missing", "x")
		assert.True(t, domain.Is(err, "user_not_found"))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
