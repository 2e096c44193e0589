package api

import (
	"net/http"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/api/middleware"
)

const BasePath = "/api/v1"

type Handlers struct {
	Catalog  *handlers.CatalogHandler
	Cart     *handlers.CartHandler
	Checkout *handlers.CheckoutHandler
}

// NewRouter registers the storefront API under BasePath. Catalog routes are
// public; cart and checkout routes run behind the session middleware.
func NewRouter(h Handlers, sessions *middleware.SessionMiddleware) *http.ServeMux {

	routerMux := http.NewServeMux()

	route := func(method, path string, handler http.HandlerFunc) {
		routerMux.HandleFunc(method+" "+BasePath+path, handler)
	}

	route(http.MethodGet, "/machines", h.Catalog.ListMachines())
	route(http.MethodGet, "/machines/{id}", h.Catalog.GetMachine())
	route(http.MethodGet, "/categories", h.Catalog.ListCategories())
	route(http.MethodGet, "/part-categories", h.Catalog.ListPartCategories())

	route(http.MethodGet, "/cart", sessions.Session(h.Cart.GetCart()))
	route(http.MethodDelete, "/cart", sessions.Session(h.Cart.ClearCart()))
	route(http.MethodPost, "/cart/items", sessions.Session(h.Cart.AddItem()))
	route(http.MethodPatch, "/cart/items/{id}", sessions.Session(h.Cart.UpdateItem()))
	route(http.MethodDelete, "/cart/items/{id}", sessions.Session(h.Cart.RemoveItem()))
	route(http.MethodPost, "/cart/{action}", sessions.Session(h.Cart.SetVisibility()))

	route(http.MethodGet, "/checkout", sessions.Session(h.Checkout.GetCheckout()))
	route(http.MethodPost, "/checkout/continue", sessions.Session(h.Checkout.Continue()))
	route(http.MethodPost, "/checkout/contact", sessions.Session(h.Checkout.SubmitContact()))
	route(http.MethodPost, "/checkout/back", sessions.Session(h.Checkout.Back()))
	route(http.MethodPost, "/checkout/submit", sessions.Session(h.Checkout.Submit()))
	route(http.MethodGet, "/checkout/requests/{id}", sessions.Session(h.Checkout.GetPartsRequest()))

	return routerMux
}
