package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"auction-backend/internal/auth"
	"auction-backend/internal/middleware"
	"auction-backend/internal/models"
	"auction-backend/internal/repository/memory"
	"auction-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T) (*chi.Mux, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	tm := auth.NewTokenManager("test-secret", "auction-backend-test", time.Hour)
	userSvc := services.NewUserService(store.Users(), tm)
	productSvc := services.NewProductService(store.Products())

	ah := NewAuthHandler(userSvc)
	ph := NewProductsHandler(productSvc)
	mw := middleware.NewAuthMiddleware(tm)

	r := chi.NewRouter()
	r.Post("/api/v1/auth/signup", ah.Signup)
	r.Post("/api/v1/auth/login", ah.Login)
	r.Group(func(r chi.Router) {
		r.Use(mw.Auth)
		r.Post("/api/v1/products", ph.Create)
	})
	return r, store
}

func doJSON(t *testing.T, r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignupEndpoint(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/signup",
		`{"username":"alice","email":"alice@farm.test","password":"s3cret"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var u models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u))
	require.NotEmpty(t, u.ID)
	require.Equal(t, models.RoleBuyer, u.Role)
	require.NotContains(t, w.Body.String(), "s3cret")

	// duplicate username
	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/signup",
		`{"username":"alice","email":"other@farm.test","password":"pw"}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "username_taken")

	// missing fields
	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/signup",
		`{"username":"bob"}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "validation_error")
}

func TestLoginEndpoint(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/signup",
		`{"username":"alice","email":"alice@farm.test","password":"s3cret"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login",
		`{"email":"alice@farm.test","password":"s3cret"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["access_token"])

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login",
		`{"email":"alice@farm.test","password":"wrong"}`, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "invalid_credentials")
}

func TestProtectedEndpoint(t *testing.T) {
	r, _ := newAuthRouter(t)

	// no token
	w := doJSON(t, r, http.MethodPost, "/api/v1/products", `{"name":"Leeks","price":2}`, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// garbage token
	w = doJSON(t, r, http.MethodPost, "/api/v1/products", `{"name":"Leeks","price":2}`, "not-a-token")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// seller token works end to end
	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/signup",
		`{"username":"seller","email":"seller@farm.test","password":"pw","role":"seller"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login",
		`{"email":"seller@farm.test","password":"pw"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	w = doJSON(t, r, http.MethodPost, "/api/v1/products",
		`{"name":"Leeks","price":2,"quantity":5}`, resp["access_token"])
	require.Equal(t, http.StatusCreated, w.Code)
	var p models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	require.Equal(t, "Leeks", p.Name)
	require.NotEmpty(t, p.SellerID)

	// buyers may not create products
	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/signup",
		`{"username":"buyer","email":"buyer@farm.test","password":"pw"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login",
		`{"email":"buyer@farm.test","password":"pw"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	w = doJSON(t, r, http.MethodPost, "/api/v1/products",
		`{"name":"Leeks","price":2}`, resp["access_token"])
	require.Equal(t, http.StatusForbidden, w.Code)
}
