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

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		validator:       utils.NewValidator(),
	}
}

// GetCheckout godoc
//	@Summary		Current checkout step
//	@Description	Resumes the checkout where the session left it. Confirmation without contact data falls back to Contact.
//	@Tags			Checkout
//	@Produce		json
//	@Success		200	{object}	models.CheckoutView		"Checkout state"
//	@Failure		422	{object}	response.ErrorResponse	"Cart is empty"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/checkout [get]
func (h *CheckoutHandler) GetCheckout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, logger, ok := sessionLogger(w, r)
		if !ok {
			return
		}

		view, err := h.checkoutService.GetCheckout(r.Context(), sessionID)
		if err != nil {
			logger.Warn("Failed to load checkout", slog.Any("error", err))
			writeServiceError(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// Continue godoc
//	@Summary		Leave the review step
//	@Tags			Checkout
//	@Produce		json
//	@Success		200	{object}	models.CheckoutView		"Contact step"
//	@Failure		422	{object}	response.ErrorResponse	"Cart is empty"
//	@Failure		409	{object}	response.ErrorResponse	"Not on the review step"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/checkout/continue [post]
func (h *CheckoutHandler) Continue() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, logger, ok := sessionLogger(w, r)
		if !ok {
			return
		}

		view, err := h.checkoutService.Continue(r.Context(), sessionID)
		if err != nil {
			logger.Warn("Failed to continue checkout", slog.Any("error", err))
			writeServiceError(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// SubmitContact godoc
//	@Summary		Save contact data
//	@Description	Validates and stores the contact form, then moves to the confirmation step.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			contact	body		models.ContactData		true	"Contact data"
//	@Success		200		{object}	models.CheckoutView		"Confirmation step"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		422		{object}	response.ErrorResponse	"Cart is empty"
//	@Failure		409		{object}	response.ErrorResponse	"Not on the contact step"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Router			/checkout/contact [post]
func (h *CheckoutHandler) SubmitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, logger, ok := sessionLogger(w, r)
		if !ok {
			return
		}

		var req models.ContactData
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid contact input")
			return
		}

		view, err := h.checkoutService.SubmitContact(r.Context(), sessionID, &req)
		if err != nil {
			logger.Warn("Failed to save contact data", slog.Any("error", err))
			writeServiceError(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// Back godoc
//	@Summary		Go one step back
//	@Description	No-op on the review step and while a submission is in flight.
//	@Tags			Checkout
//	@Produce		json
//	@Success		200	{object}	models.CheckoutView		"Checkout state"
//	@Failure		422	{object}	response.ErrorResponse	"Cart is empty"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/checkout/back [post]
func (h *CheckoutHandler) Back() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, logger, ok := sessionLogger(w, r)
		if !ok {
			return
		}

		view, err := h.checkoutService.Back(r.Context(), sessionID)
		if err != nil {
			logger.Warn("Failed to go back", slog.Any("error", err))
			writeServiceError(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// Submit godoc
//	@Summary		Send the parts request
//	@Description	E-mails the cart and contact data to the sales team. On success the cart is cleared.
//	@Tags			Checkout
//	@Produce		json
//	@Success		201	{object}	models.SubmissionResult	"Request sent"
//	@Failure		422	{object}	response.ErrorResponse	"Cart is empty"
//	@Failure		409	{object}	response.ErrorResponse	"Not on the confirmation step or already submitting"
//	@Failure		429	{object}	response.ErrorResponse	"Too many submissions"
//	@Failure		502	{object}	response.ErrorResponse	"E-mail provider failure"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/checkout/submit [post]
func (h *CheckoutHandler) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, logger, ok := sessionLogger(w, r)
		if !ok {
			return
		}

		result, err := h.checkoutService.Submit(r.Context(), sessionID)
		if err != nil {
			logger.Error("Failed to submit parts request", slog.Any("error", err))
			writeServiceError(w, err)
			return
		}

		logger.Info("Parts request submitted",
			slog.String("requestID", result.RequestID.String()),
			slog.Int("items", result.ItemCount))
		response.Success(w, http.StatusCreated, result)
	}
}

// GetPartsRequest godoc
//	@Summary		Get a submitted parts request
//	@Description	Only requests submitted from the same session are visible.
//	@Tags			Checkout
//	@Produce		json
//	@Param			id	path		string					true	"Parts request ID"	Format(uuid)
//	@Success		200	{object}	models.PartsRequest		"Parts request"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid ID"
//	@Failure		404	{object}	response.ErrorResponse	"Not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/checkout/requests/{id} [get]
func (h *CheckoutHandler) GetPartsRequest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, logger, ok := sessionLogger(w, r)
		if !ok {
			return
		}

		id, err := utils.ParseUUID(r, "id")
		if err != nil {
			logger.Warn("Invalid parts request id", slog.String("id", r.PathValue("id")))
			response.Error(w, err)
			return
		}

		request, err := h.checkoutService.GetPartsRequest(r.Context(), sessionID, id)
		if err != nil {
			logger.Warn("Failed to get parts request", slog.String("requestID", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, request)
	}
}
