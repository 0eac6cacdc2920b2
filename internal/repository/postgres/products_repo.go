package postgres

import (
	"context"
	"errors"

	"auction-backend/internal/apperrors"
	"auction-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type productsRepo struct{ pool *pgxpool.Pool }

const productCols = `id, name, description, price, quantity, seller_id, image_path, created_at`

func (r *productsRepo) Create(ctx context.Context, p models.Product) (models.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO products(id, name, description, price, quantity, seller_id, image_path)
		 VALUES($1,$2,$3,$4,$5,$6,$7)
		 RETURNING `+productCols,
		p.ID, p.Name, p.Description, p.Price, p.Quantity, p.SellerID, p.ImagePath,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.SellerID, &p.ImagePath, &p.CreatedAt)
	return p, err
}

func (r *productsRepo) GetByID(ctx context.Context, id string) (models.Product, error) {
	var p models.Product
	err := r.pool.QueryRow(ctx,
		`SELECT `+productCols+` FROM products WHERE id=$1`, id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.SellerID, &p.ImagePath, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Product{}, apperrors.ErrProductNotFound
	}
	return p, err
}

func (r *productsRepo) List(ctx context.Context) ([]models.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+productCols+` FROM products ORDER BY created_at DESC LIMIT 100`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.SellerID, &p.ImagePath, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *productsRepo) Update(ctx context.Context, p models.Product) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET name=$2, description=$3, price=$4, quantity=$5, image_path=$6 WHERE id=$1`,
		p.ID, p.Name, p.Description, p.Price, p.Quantity, p.ImagePath,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProductNotFound
	}
	return nil
}

func (r *productsRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProductNotFound
	}
	return nil
}
