package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/poofware/buyer-leads-service/internal/models"
)

type UserRepository interface {
	// Create inserts u unless a user with the same name already exists.
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByName(ctx context.Context, name string) (*models.User, error)
}

type userRepo struct {
	db DB
}

func NewUserRepository(db DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO users (id, name, created_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (name) DO NOTHING
    `, u.ID, u.Name)
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT id, name, created_at FROM users WHERE id=$1`, id))
}

func (r *userRepo) GetByName(ctx context.Context, name string) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT id, name, created_at FROM users WHERE name=$1`, name))
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Name, &u.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
