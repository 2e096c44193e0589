package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/models"
	service "github.com/aaravmahajanofficial/industrial-parts-storefront/internal/services"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/utils"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   utils.NewValidator(),
	}
}

// GetCart godoc
//	@Summary		Get the session cart
//	@Description	Returns the parts requests in the visitor's cart with derived counts. A new session starts with an empty cart.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartView			"Cart"
//	@Failure		401	{object}	response.ErrorResponse	"Cart session required"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, logger, ok := sessionLogger(w, r)
		if !ok {
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), sessionID)
		if err != nil {
			logger.Error("Failed to get cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// AddItem godoc
//	@Summary		Add a parts request
//	@Description	Adds a parts request for a catalog machine. Several requests for the same machine may coexist.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddItemRequest	true	"Parts request"
//	@Success		201		{object}	models.CartItem			"Added request"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error or unknown part category"
//	@Failure		404		{object}	response.ErrorResponse	"Machine not found"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Router			/cart/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, logger, ok := sessionLogger(w, r)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add item input")
			return
		}

		item, err := h.cartService.AddItem(r.Context(), sessionID, &req)
		if err != nil {
			logger.Warn("Failed to add parts request", slog.Int("machineID", req.MachineID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Parts request added", slog.String("itemID", item.ID), slog.Int("machineID", item.MachineID))
		response.Success(w, http.StatusCreated, item)
	}
}

// UpdateItem godoc
//	@Summary		Update a parts request
//	@Description	Changes the urgency, description, part categories or machine details of a request. Omitted fields are unchanged.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Cart item ID"
//	@Param			item	body		models.UpdateItemRequest	true	"Fields to change"
//	@Success		200		{object}	models.CartView				"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error"
//	@Failure		404		{object}	response.ErrorResponse		"Item not found"
//	@Failure		500		{object}	response.ErrorResponse		"Internal server error"
//	@Router			/cart/items/{id} [patch]
func (h *CartHandler) UpdateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, logger, ok := sessionLogger(w, r)
		if !ok {
			return
		}

		itemID := r.PathValue("id")
		logger = logger.With(slog.String("itemID", itemID))

		var req models.UpdateItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update item input")
			return
		}

		cart, err := h.cartService.UpdateItem(r.Context(), sessionID, itemID, &req)
		if err != nil {
			logger.Warn("Failed to update parts request", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// RemoveItem godoc
//	@Summary		Remove a parts request
//	@Description	Removing an id that is not in the cart leaves the cart unchanged.
//	@Tags			Cart
//	@Produce		json
//	@Param			id	path		string					true	"Cart item ID"
//	@Success		200	{object}	models.CartView			"Updated cart"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, logger, ok := sessionLogger(w, r)
		if !ok {
			return
		}

		itemID := r.PathValue("id")

		cart, err := h.cartService.RemoveItem(r.Context(), sessionID, itemID)
		if err != nil {
			logger.Error("Failed to remove parts request", slog.String("itemID", itemID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// ClearCart godoc
//	@Summary		Clear the cart
//	@Description	Removes every request and the saved contact data.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartView			"Empty cart"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/cart [delete]
func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, logger, ok := sessionLogger(w, r)
		if !ok {
			return
		}

		cart, err := h.cartService.ClearCart(r.Context(), sessionID)
		if err != nil {
			logger.Error("Failed to clear cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart cleared")
		response.Success(w, http.StatusOK, cart)
	}
}

// SetVisibility godoc
//	@Summary		Open, close or toggle the cart panel
//	@Tags			Cart
//	@Produce		json
//	@Param			action	path		string					true	"Visibility action"	Enums(toggle, open, close)
//	@Success		200		{object}	models.CartView			"Cart"
//	@Failure		400		{object}	response.ErrorResponse	"Unknown action"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Router			/cart/{action} [post]
func (h *CartHandler) SetVisibility() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, logger, ok := sessionLogger(w, r)
		if !ok {
			return
		}

		action := models.CartVisibilityAction(r.PathValue("action"))

		cart, err := h.cartService.SetVisibility(r.Context(), sessionID, action)
		if err != nil {
			logger.Warn("Failed to change cart visibility", slog.String("action", string(action)), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}
