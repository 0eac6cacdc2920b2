package handlers

import (
	"net/http"

	"auction-backend/internal/api/httpx"
)

type marketItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Market serves the fixed produce price board shown on the landing page.
func Market(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, []marketItem{
		{Name: "Tomatoes", Price: 2.5, Quantity: 100},
		{Name: "Potatoes", Price: 1.8, Quantity: 200},
		{Name: "Carrots", Price: 1.2, Quantity: 150},
	})
}
