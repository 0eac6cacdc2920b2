package models

import (
	"fmt"
	"strings"
	"time"

	"auction-backend/internal/apperrors"
)

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	SellerID    string    `json:"seller_id"`
	ImagePath   *string   `json:"image_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name required", apperrors.ErrInvalidInput)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", apperrors.ErrInvalidInput)
	}
	if p.Quantity < 0 {
		return fmt.Errorf("%w: quantity must be non-negative", apperrors.ErrInvalidInput)
	}
	if p.SellerID == "" {
		return fmt.Errorf("%w: seller required", apperrors.ErrInvalidInput)
	}
	return nil
}
