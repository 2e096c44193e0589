// Package cart owns the parts-request cart of one visitor session.
//
// A Store is the single writer of its CartState. Every mutation that
// changes the state is followed by an explicit save of the whole state
// under one storage key, and Load rehydrates that key, discarding
// anything that does not decode and failing on anything it cannot read.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/cache"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/models"
	"github.com/google/uuid"
)

const DefaultTTL = 7 * 24 * time.Hour

type Store struct {
	state     models.CartState
	storage   cache.Cache
	sessionID string
	key       string
	ttl       time.Duration
	now       func() time.Time
	newID     func(machineID int, at time.Time) string
	logger    *slog.Logger
}

type Option func(*Store)

func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(gen func(machineID int, at time.Time) string) Option {
	return func(s *Store) { s.newID = gen }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New returns an empty store bound to the session's storage key. Nothing is
// written until the first mutation.
func New(storage cache.Cache, sessionID string, opts ...Option) *Store {

	s := &Store{
		state:     emptyState(),
		storage:   storage,
		sessionID: sessionID,
		key:       StorageKey(sessionID),
		ttl:       DefaultTTL,
		now:       time.Now,
		newID:     NewItemID,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load returns a store rehydrated from the session's storage key. Missing or
// malformed data leaves the store empty and malformed data is logged. A
// storage failure is returned so the saved cart is not overwritten by an
// empty one.
func Load(ctx context.Context, storage cache.Cache, sessionID string, opts ...Option) (*Store, error) {

	s := New(storage, sessionID, opts...)

	var saved models.CartState

	found, err := storage.Get(ctx, s.key, &saved)
	if err != nil {
		if errors.Is(err, cache.ErrMalformed) {
			s.logger.Warn("Discarding malformed saved cart", slog.String("key", s.key), slog.Any("error", err))
			return s, nil
		}

		return nil, fmt.Errorf("failed to load cart %s: %w", s.key, err)
	}

	if !found {
		return s, nil
	}

	s.state = normalize(saved)

	return s, nil
}

func StorageKey(sessionID string) string {
	return cache.Key(cache.CartKeyPrefix, sessionID)
}

// NewItemID builds "<machineId>-<unix millis>-<9 random chars>".
func NewItemID(machineID int, at time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%d-%d-%s", machineID, at.UnixMilli(), suffix)
}

func (s *Store) AddItem(ctx context.Context, data models.NewCartItem) (models.CartItem, error) {

	at := s.now()

	urgency := data.Urgency
	if urgency == "" {
		urgency = models.UrgencyMedium
	}

	item := models.CartItem{
		ID:                 s.newID(data.MachineID, at),
		MachineID:          data.MachineID,
		MachineName:        data.MachineName,
		MachineBrand:       data.MachineBrand,
		MachineModel:       data.MachineModel,
		MachineImage:       data.MachineImage,
		PartCategories:     slices.Clone(data.PartCategories),
		ProblemDescription: data.ProblemDescription,
		Urgency:            urgency,
		SerialNumber:       data.SerialNumber,
		ManufacturingYear:  data.ManufacturingYear,
		OperatingHours:     data.OperatingHours,
		AddedAt:            at,
	}

	s.state.Items = append(s.state.Items, item)

	return cloneItem(item), s.save(ctx)
}

// RemoveItem is a no-op for unknown ids.
func (s *Store) RemoveItem(ctx context.Context, id string) error {

	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}

	s.state.Items = slices.Delete(s.state.Items, idx, idx+1)

	return s.save(ctx)
}

// UpdateItem applies the updates in order to the matching item. Unknown ids
// are a no-op.
func (s *Store) UpdateItem(ctx context.Context, id string, updates ...ItemUpdate) error {

	idx := s.indexOf(id)
	if idx < 0 || len(updates) == 0 {
		return nil
	}

	item := cloneItem(s.state.Items[idx])
	for _, u := range updates {
		u.apply(&item)
	}
	s.state.Items[idx] = item

	return s.save(ctx)
}

// ClearCart drops every item and the contact record. Visibility is kept.
func (s *Store) ClearCart(ctx context.Context) error {

	s.state.Items = []models.CartItem{}
	s.state.ContactData = nil

	return s.save(ctx)
}

func (s *Store) SetContactData(ctx context.Context, data models.ContactData) error {

	contact := data
	s.state.ContactData = &contact

	return s.save(ctx)
}

func (s *Store) ToggleCart(ctx context.Context) error {
	s.state.IsOpen = !s.state.IsOpen

	return s.save(ctx)
}

func (s *Store) OpenCart(ctx context.Context) error {
	if s.state.IsOpen {
		return nil
	}
	s.state.IsOpen = true

	return s.save(ctx)
}

func (s *Store) CloseCart(ctx context.Context) error {
	if !s.state.IsOpen {
		return nil
	}
	s.state.IsOpen = false

	return s.save(ctx)
}

func (s *Store) SessionID() string {
	return s.sessionID
}

// ItemCount counts requests, not machines.
func (s *Store) ItemCount() int {
	return len(s.state.Items)
}

func (s *Store) TotalMachines() int {
	machines := make(map[int]struct{}, len(s.state.Items))
	for _, item := range s.state.Items {
		machines[item.MachineID] = struct{}{}
	}

	return len(machines)
}

func (s *Store) CriticalCount() int {
	var n int
	for _, item := range s.state.Items {
		if item.Urgency == models.UrgencyCritical {
			n++
		}
	}

	return n
}

func (s *Store) ExpectedResponseTime() string {
	return ExpectedResponseTime(s.CriticalCount())
}

func (s *Store) Items() []models.CartItem {
	items := make([]models.CartItem, len(s.state.Items))
	for i, item := range s.state.Items {
		items[i] = cloneItem(item)
	}

	return items
}

func (s *Store) ContactData() *models.ContactData {
	if s.state.ContactData == nil {
		return nil
	}
	contact := *s.state.ContactData

	return &contact
}

func (s *Store) IsOpen() bool {
	return s.state.IsOpen
}

// State returns a copy that the caller may modify freely.
func (s *Store) State() models.CartState {
	return models.CartState{
		Items:       s.Items(),
		ContactData: s.ContactData(),
		IsOpen:      s.state.IsOpen,
	}
}

func (s *Store) View() *models.CartView {
	return &models.CartView{
		Items:                s.Items(),
		ContactData:          s.ContactData(),
		IsOpen:               s.state.IsOpen,
		ItemCount:            s.ItemCount(),
		TotalMachines:        s.TotalMachines(),
		CriticalCount:        s.CriticalCount(),
		ExpectedResponseTime: s.ExpectedResponseTime(),
	}
}

// ExpectedResponseTime is the cart-level promise shown at checkout.
func ExpectedResponseTime(criticalCount int) string {
	if criticalCount > 0 {
		return models.UrgencyCritical.ResponseTime()
	}

	return models.UrgencyMedium.ResponseTime()
}

func (s *Store) save(ctx context.Context) error {
	if err := s.storage.Set(ctx, s.key, s.state, s.ttl); err != nil {
		s.logger.Error("Failed to save cart", slog.String("key", s.key), slog.Any("error", err))
		return fmt.Errorf("saving cart: %w", err)
	}

	return nil
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.state.Items, func(item models.CartItem) bool {
		return item.ID == id
	})
}

func emptyState() models.CartState {
	return models.CartState{Items: []models.CartItem{}}
}

func normalize(state models.CartState) models.CartState {
	if state.Items == nil {
		state.Items = []models.CartItem{}
	}

	return state
}

func cloneItem(item models.CartItem) models.CartItem {
	item.PartCategories = slices.Clone(item.PartCategories)
	return item
}
