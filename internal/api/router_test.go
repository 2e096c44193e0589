package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/api"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/models"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/services/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupRouter(t *testing.T) (*http.ServeMux, *mocks.CatalogService, *mocks.CartService, *mocks.CheckoutService) {
	catalog := mocks.NewCatalogService(t)
	cart := mocks.NewCartService(t)
	checkout := mocks.NewCheckoutService(t)

	sessions := middleware.NewSessionMiddleware([]byte("router-test-secret-0123456789abcd"), time.Hour, false)

	mux := api.NewRouter(api.Handlers{
		Catalog:  handlers.NewCatalogHandler(catalog),
		Cart:     handlers.NewCartHandler(cart),
		Checkout: handlers.NewCheckoutHandler(checkout),
	}, sessions)

	return mux, catalog, cart, checkout
}

func TestRouter(t *testing.T) {

	t.Run("Catalog is public", func(t *testing.T) {
		// Arrange
		mux, catalog, _, _ := setupRouter(t)
		catalog.On("GetMachine", mock.Anything, 7).Return(&models.Machine{ID: 7}, nil).Once()

		rr := httptest.NewRecorder()

		// Act
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/machines/7", nil))

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, rr.Header().Get(middleware.SessionHeader))
	})

	t.Run("Cart issues a session", func(t *testing.T) {
		// Arrange
		mux, _, cart, _ := setupRouter(t)
		cart.On("SetVisibility", mock.Anything, mock.AnythingOfType("string"), models.CartToggle).
			Return(&models.CartView{IsOpen: true}, nil).Once()

		rr := httptest.NewRecorder()

		// Act
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/cart/toggle", nil))

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotEmpty(t, rr.Header().Get(middleware.SessionHeader))
		assert.Len(t, rr.Result().Cookies(), 1)
	})

	t.Run("Add item is not taken for a visibility action", func(t *testing.T) {
		// Arrange
		mux, _, cart, _ := setupRouter(t)

		rr := httptest.NewRecorder()

		// Act
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", nil))

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		cart.AssertNotCalled(t, "SetVisibility")
	})

	t.Run("Wrong method", func(t *testing.T) {
		// Arrange
		mux, _, _, _ := setupRouter(t)

		rr := httptest.NewRecorder()

		// Act
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/api/v1/checkout/submit", nil))

		// Assert
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	})
}
