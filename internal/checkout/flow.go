// Package checkout drives the Review, Contact and Confirmation steps on top of
// a cart.Store.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/cart"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/models"
)

var (
	ErrEmptyCart            = errors.New("checkout: cart is empty")
	ErrInvalidStep          = errors.New("checkout: action not allowed at current step")
	ErrSubmissionInProgress = errors.New("checkout: submission already in progress")
)

// Submission is what leaves the storefront when the visitor confirms.
type Submission struct {
	SessionID string
	Cart      *models.CartView
	Contact   models.ContactData
}

type Submitter interface {
	SubmitPartsRequest(ctx context.Context, submission Submission) (*models.SubmissionResult, error)
}

// Validator is satisfied by *validator.Validate.
type Validator interface {
	Struct(s any) error
}

type Flow struct {
	mu         sync.Mutex
	store      *cart.Store
	submitter  Submitter
	validate   Validator
	logger     *slog.Logger
	step       models.CheckoutStep
	submitting bool
	completed  bool
}

type Option func(*Flow)

func WithLogger(logger *slog.Logger) Option {
	return func(f *Flow) { f.logger = logger }
}

// Start opens checkout at Review.
func Start(store *cart.Store, submitter Submitter, validate Validator, opts ...Option) (*Flow, error) {
	return Resume(store, models.StepReview, submitter, validate, opts...)
}

// Resume restores a flow at a previously saved step. A step the cart no
// longer supports is lowered: Confirmation without contact data resumes at
// Contact. An empty cart blocks checkout at every step.
func Resume(store *cart.Store, step models.CheckoutStep, submitter Submitter, validate Validator, opts ...Option) (*Flow, error) {

	if store.ItemCount() == 0 {
		return nil, ErrEmptyCart
	}

	if !step.Valid() {
		step = models.StepReview
	}

	if step == models.StepConfirmation && store.ContactData() == nil {
		step = models.StepContact
	}

	f := &Flow{
		store:     store,
		submitter: submitter,
		validate:  validate,
		logger:    slog.Default(),
		step:      step,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Flow) Step() models.CheckoutStep {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.step
}

func (f *Flow) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.submitting
}

// Completed reports whether a submission succeeded on this flow.
func (f *Flow) Completed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.completed
}

func (f *Flow) View() *models.CheckoutView {
	f.mu.Lock()
	defer f.mu.Unlock()

	return &models.CheckoutView{
		Step:       f.step,
		StepName:   f.step.String(),
		Submitting: f.submitting,
		Cart:       f.store.View(),
	}
}

// Continue moves Review to Contact.
func (f *Flow) Continue() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != models.StepReview {
		return ErrInvalidStep
	}

	if f.store.ItemCount() == 0 {
		return ErrEmptyCart
	}

	f.step = models.StepContact

	return nil
}

// SubmitContact validates and stores the contact record, then moves to
// Confirmation. Invalid data is returned untouched by the store.
func (f *Flow) SubmitContact(ctx context.Context, data models.ContactData) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != models.StepContact {
		return ErrInvalidStep
	}

	if err := f.validate.Struct(data); err != nil {
		return err
	}

	if err := f.store.SetContactData(ctx, data); err != nil {
		return err
	}

	f.step = models.StepConfirmation

	return nil
}

// Back is never validated. Review stays at Review.
func (f *Flow) Back() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.submitting {
		return
	}

	if f.step > models.StepReview {
		f.step--
	}
}

// Submit sends the cart through the Submitter. The cart is cleared and the
// flow returns to Review only when the submitter succeeds.
func (f *Flow) Submit(ctx context.Context) (*models.SubmissionResult, error) {

	f.mu.Lock()

	if f.submitting {
		f.mu.Unlock()
		return nil, ErrSubmissionInProgress
	}

	if f.step != models.StepConfirmation {
		f.mu.Unlock()
		return nil, ErrInvalidStep
	}

	view := f.store.View()
	if view.ItemCount == 0 {
		f.mu.Unlock()
		return nil, ErrEmptyCart
	}

	if view.ContactData == nil {
		f.mu.Unlock()
		return nil, ErrInvalidStep
	}

	f.submitting = true
	f.mu.Unlock()

	result, err := f.submitter.SubmitPartsRequest(ctx, Submission{
		SessionID: f.store.SessionID(),
		Cart:      view,
		Contact:   *view.ContactData,
	})

	f.mu.Lock()
	defer f.mu.Unlock()

	f.submitting = false

	if err != nil {
		return nil, fmt.Errorf("submitting parts request: %w", err)
	}

	result.CartCleared = true

	if err := f.store.ClearCart(ctx); err != nil {
		result.CartCleared = false
		f.logger.Error("Parts request sent but cart could not be cleared",
			slog.String("sessionID", f.store.SessionID()),
			slog.Any("error", err),
		)
	}

	f.step = models.StepReview
	f.completed = true

	return result, nil
}
