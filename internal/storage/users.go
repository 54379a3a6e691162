// Package storage provides pgx-backed persistence for users and appointments.
package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repositories need. pgxmock satisfies
// it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepository persists registered patients.
type UserRepository struct {
	db DB
}

// NewUserRepository creates a user repository.
func NewUserRepository(db DB) *UserRepository {
	if db == nil {
		panic("storage: db required")
	}
	return &UserRepository{db: db}
}

// Upsert creates or overwrites the user keyed by phone. A later registration
// attempt may overwrite name and age.
func (r *UserRepository) Upsert(ctx context.Context, phone, name string, age int) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (phone, name, age)
		VALUES ($1, $2, $3)
		ON CONFLICT (phone) DO UPDATE SET
			name = EXCLUDED.name,
			age = EXCLUDED.age`,
		phone, name, age)
	if err != nil {
		return fmt.Errorf("storage: upsert user: %w", err)
	}
	return nil
}

// All returns every registered user, used to hydrate the in-memory
// registration cache at startup.
func (r *UserRepository) All(ctx context.Context) ([]User, error) {
	rows, err := r.db.Query(ctx, `SELECT phone, name, age FROM users`)
	if err != nil {
		return nil, fmt.Errorf("storage: list users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.Phone, &u.Name, &u.Age); err != nil {
			return nil, fmt.Errorf("storage: scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: iterate users: %w", err)
	}
	return users, nil
}
