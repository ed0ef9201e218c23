package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/avadra/storefront-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, u *model.User) error {
	query := `
        INSERT INTO users (id, name, email, password_hash, role, phone, address, city, state, pincode, country, profile_image, created_at, updated_at)
        VALUES (:id, :name, :email, :password_hash, :role, :phone, :address, :city, :state, :pincode, :country, :profile_image, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, u)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	query := `SELECT * FROM users WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &u, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	query := `SELECT * FROM users WHERE lower(email) = lower($1) LIMIT 1`
	err := r.DB.GetContext(ctx, &u, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *PGRepository) FindByRole(ctx context.Context, role string) ([]model.User, error) {
	var users []model.User
	query := `SELECT * FROM users WHERE role = $1 ORDER BY created_at DESC`
	err := r.DB.SelectContext(ctx, &users, query, role)
	return users, err
}

func (r *PGRepository) Update(ctx context.Context, u *model.User) error {
	query := `
        UPDATE users
        SET name = :name,
            phone = :phone,
            address = :address,
            city = :city,
            state = :state,
            pincode = :pincode,
            country = :country,
            profile_image = :profile_image,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, u)
	return err
}

func (r *PGRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count, `SELECT count(*) FROM users`)
	return count, err
}
