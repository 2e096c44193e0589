package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/cache"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/cart"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/checkout"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/errors"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/industrial-parts-storefront/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type CheckoutService interface {
	GetCheckout(ctx context.Context, sessionID string) (*models.CheckoutView, error)
	Continue(ctx context.Context, sessionID string) (*models.CheckoutView, error)
	SubmitContact(ctx context.Context, sessionID string, data *models.ContactData) (*models.CheckoutView, error)
	Back(ctx context.Context, sessionID string) (*models.CheckoutView, error)
	Submit(ctx context.Context, sessionID string) (*models.SubmissionResult, error)
	GetPartsRequest(ctx context.Context, sessionID string, id uuid.UUID) (*models.PartsRequest, error)
}

type checkoutService struct {
	storage     cache.Cache
	submitter   checkout.Submitter
	rateLimiter repository.RateLimitRepository
	requests    repository.PartsRequestRepository
	validate    checkout.Validator
	ttl         time.Duration
	opts        []cart.Option

	// sessions with a submission in flight
	inFlight sync.Map
}

// NewCheckoutService keeps the current step of every session next to its
// cart. A nil rateLimiter disables the submission limit.
func NewCheckoutService(
	storage cache.Cache,
	submitter checkout.Submitter,
	rateLimiter repository.RateLimitRepository,
	requests repository.PartsRequestRepository,
	validate checkout.Validator,
	ttl time.Duration,
	opts ...cart.Option,
) CheckoutService {
	return &checkoutService{
		storage:     storage,
		submitter:   submitter,
		rateLimiter: rateLimiter,
		requests:    requests,
		validate:    validate,
		ttl:         ttl,
		opts:        opts,
	}
}

func progressKey(sessionID string) string {
	return cache.Key(cache.CheckoutKeyPrefix, sessionID)
}

func (s *checkoutService) resume(ctx context.Context, sessionID string) (*checkout.Flow, error) {

	logger := middleware.LoggerFromContext(ctx)

	opts := append([]cart.Option{cart.WithTTL(s.ttl), cart.WithLogger(logger)}, s.opts...)
	store, err := cart.Load(ctx, s.storage, sessionID, opts...)
	if err != nil {
		return nil, errors.CacheError("Failed to load cart").WithError(err)
	}

	progress := models.CheckoutProgress{Step: models.StepReview}
	if _, err := s.storage.Get(ctx, progressKey(sessionID), &progress); err != nil {
		if !stderrors.Is(err, cache.ErrMalformed) {
			return nil, errors.CacheError("Failed to load checkout progress").WithError(err)
		}

		logger.Warn("Checkout progress malformed, restarting at review", slog.Any("error", err))
		progress.Step = models.StepReview
	}

	flow, err := checkout.Resume(store, progress.Step, s.submitter, s.validate, checkout.WithLogger(logger))
	if err != nil {
		return nil, checkoutError(err)
	}

	return flow, nil
}

func (s *checkoutService) saveProgress(ctx context.Context, sessionID string, step models.CheckoutStep) error {
	if err := s.storage.Set(ctx, progressKey(sessionID), models.CheckoutProgress{Step: step}, s.ttl); err != nil {
		return errors.CacheError("Failed to save checkout progress").WithError(err)
	}

	return nil
}

func (s *checkoutService) GetCheckout(ctx context.Context, sessionID string) (*models.CheckoutView, error) {

	flow, err := s.resume(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return flow.View(), nil
}

func (s *checkoutService) Continue(ctx context.Context, sessionID string) (*models.CheckoutView, error) {

	flow, err := s.resume(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := flow.Continue(); err != nil {
		return nil, checkoutError(err)
	}

	if err := s.saveProgress(ctx, sessionID, flow.Step()); err != nil {
		return nil, err
	}

	return flow.View(), nil
}

// SubmitContact returns validator.ValidationErrors untouched so the caller
// can list every failing field.
func (s *checkoutService) SubmitContact(ctx context.Context, sessionID string, data *models.ContactData) (*models.CheckoutView, error) {

	flow, err := s.resume(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := flow.SubmitContact(ctx, *data); err != nil {
		return nil, checkoutError(err)
	}

	if err := s.saveProgress(ctx, sessionID, flow.Step()); err != nil {
		return nil, err
	}

	return flow.View(), nil
}

// Back leaves the step alone while the session has a submission in flight.
func (s *checkoutService) Back(ctx context.Context, sessionID string) (*models.CheckoutView, error) {

	flow, err := s.resume(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if _, busy := s.inFlight.Load(sessionID); busy {
		return flow.View(), nil
	}

	before := flow.Step()
	flow.Back()

	if flow.Step() != before {
		if err := s.saveProgress(ctx, sessionID, flow.Step()); err != nil {
			return nil, err
		}
	}

	return flow.View(), nil
}

func (s *checkoutService) Submit(ctx context.Context, sessionID string) (*models.SubmissionResult, error) {

	logger := middleware.LoggerFromContext(ctx)

	if _, busy := s.inFlight.LoadOrStore(sessionID, struct{}{}); busy {
		return nil, errors.ConflictError("A submission for this cart is already in progress")
	}
	defer s.inFlight.Delete(sessionID)

	flow, err := s.resume(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if flow.Step() != models.StepConfirmation {
		return nil, checkoutError(checkout.ErrInvalidStep)
	}

	if err := s.checkSubmissionLimit(ctx, flow.View().Cart.ContactData); err != nil {
		return nil, err
	}

	result, err := flow.Submit(ctx)
	if err != nil {
		return nil, checkoutError(err)
	}

	if err := s.saveProgress(ctx, sessionID, flow.Step()); err != nil {
		logger.Error("Parts request sent but checkout progress was not reset", slog.Any("error", err))
	}

	return result, nil
}

// checkSubmissionLimit counts the attempt against the contact e-mail and the
// client IP. The session id is not a key: a new one is issued whenever the
// cookie is dropped.
func (s *checkoutService) checkSubmissionLimit(ctx context.Context, contact *models.ContactData) error {

	if s.rateLimiter == nil {
		return nil
	}

	for _, identifier := range submitterKeys(ctx, contact) {
		allowed, _, retryAfter, err := s.rateLimiter.CheckSubmissionRateLimit(ctx, identifier)
		if err != nil {
			return errors.ThirdPartyError("Rate limit check failed").WithError(err)
		}

		if !allowed {
			return errors.TooManyRequestsError("Too many parts requests. Please try again later.").
				WithDetail(fmt.Sprintf("Retry after %d seconds", retryAfter)).
				WithRetryAfter(retryAfter)
		}
	}

	return nil
}

func submitterKeys(ctx context.Context, contact *models.ContactData) []string {

	var keys []string

	if contact != nil {
		if email := strings.ToLower(strings.TrimSpace(contact.Email)); email != "" {
			keys = append(keys, "email:"+email)
		}
	}

	if ip := middleware.ClientIPFromContext(ctx); ip != "" {
		keys = append(keys, "ip:"+ip)
	}

	return keys
}

func (s *checkoutService) GetPartsRequest(ctx context.Context, sessionID string, id uuid.UUID) (*models.PartsRequest, error) {

	request, err := s.requests.GetPartsRequestForSession(ctx, id, sessionID)
	if err != nil {
		if stderrors.Is(err, repository.ErrPartsRequestNotFound) {
			return nil, errors.NotFoundError("Parts request not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to fetch parts request").WithError(err)
	}

	return request, nil
}

func checkoutError(err error) error {

	switch {
	case stderrors.Is(err, checkout.ErrEmptyCart):
		return errors.EmptyCartError("Cart is empty").WithError(err)
	case stderrors.Is(err, checkout.ErrInvalidStep):
		return errors.InvalidStepError("Action not allowed at the current checkout step").WithError(err)
	case stderrors.Is(err, checkout.ErrSubmissionInProgress):
		return errors.ConflictError("A submission for this cart is already in progress").WithError(err)
	}

	if _, ok := errors.IsAppError(err); ok {
		return err
	}

	var validationErrs validator.ValidationErrors
	if stderrors.As(err, &validationErrs) {
		return validationErrs
	}

	return errors.CacheError("Failed to save checkout").WithError(err)
}
