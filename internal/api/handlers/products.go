package handlers

import (
	"encoding/json"
	"net/http"

	"auction-backend/internal/api/httpx"
	"auction-backend/internal/api/validate"
	"auction-backend/internal/middleware"
	"auction-backend/internal/services"

	"github.com/go-chi/chi/v5"
)

type ProductsHandler struct {
	products *services.ProductService
}

func NewProductsHandler(ps *services.ProductService) *ProductsHandler {
	return &ProductsHandler{products: ps}
}

func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, products)
}

func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

type productCreateReq struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	ImagePath   *string `json:"image_path"`
}

func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())
	var req productCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", "invalid request payload", nil)
		return
	}
	if err := validate.Collect(
		validate.Required("name", req.Name),
		validate.MinFloat("price", req.Price, 0),
		validate.MinInt("quantity", int64(req.Quantity), 0),
	); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", err.Error(), err)
		return
	}
	p, err := h.products.Create(r.Context(), actor, services.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		ImagePath:   req.ImagePath,
	})
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, p)
}

type productUpdateReq struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	ImagePath   *string  `json:"image_path"`
}

func (h *ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())
	var req productUpdateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", "invalid request payload", nil)
		return
	}
	p, err := h.products.Update(r.Context(), actor, chi.URLParam(r, "id"), services.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		ImagePath:   req.ImagePath,
	})
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())
	if err := h.products.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}
