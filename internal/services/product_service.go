package services

import (
	"context"
	"fmt"

	"auction-backend/internal/apperrors"
	"auction-backend/internal/authz"
	"auction-backend/internal/models"
	repo "auction-backend/internal/repository"
)

type ProductService struct {
	products repo.Products
}

func NewProductService(r repo.Products) *ProductService {
	return &ProductService{products: r}
}

type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
	ImagePath   *string
}

func (s *ProductService) Create(ctx context.Context, actor authz.Actor, in ProductInput) (models.Product, error) {
	if !authz.Can(actor, authz.ProductCreate, authz.Resource{OwnerID: actor.ID}) {
		return models.Product{}, fmt.Errorf("%w: only sellers can add products", apperrors.ErrForbidden)
	}
	p := models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		SellerID:    actor.ID,
		ImagePath:   in.ImagePath,
	}
	if err := p.Validate(); err != nil {
		return models.Product{}, err
	}
	return s.products.Create(ctx, p)
}

func (s *ProductService) Get(ctx context.Context, id string) (models.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.products.List(ctx)
}

type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Quantity    *int
	ImagePath   *string
}

func (s *ProductService) Update(ctx context.Context, actor authz.Actor, id string, upd ProductUpdate) (models.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	if !authz.Can(actor, authz.ProductUpdate, authz.Resource{OwnerID: p.SellerID}) {
		return models.Product{}, fmt.Errorf("%w: not your product", apperrors.ErrForbidden)
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.Quantity != nil {
		p.Quantity = *upd.Quantity
	}
	if upd.ImagePath != nil {
		p.ImagePath = upd.ImagePath
	}
	if err := p.Validate(); err != nil {
		return models.Product{}, err
	}
	if err := s.products.Update(ctx, p); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, actor authz.Actor, id string) error {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !authz.Can(actor, authz.ProductDelete, authz.Resource{OwnerID: p.SellerID}) {
		return fmt.Errorf("%w: not your product", apperrors.ErrForbidden)
	}
	return s.products.Delete(ctx, id)
}
