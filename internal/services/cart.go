package service

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/cache"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/cart"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/errors"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/metrics"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/models"
)

type CartService interface {
	GetCart(ctx context.Context, sessionID string) (*models.CartView, error)
	AddItem(ctx context.Context, sessionID string, req *models.AddItemRequest) (*models.CartItem, error)
	UpdateItem(ctx context.Context, sessionID, itemID string, req *models.UpdateItemRequest) (*models.CartView, error)
	RemoveItem(ctx context.Context, sessionID, itemID string) (*models.CartView, error)
	ClearCart(ctx context.Context, sessionID string) (*models.CartView, error)
	SetVisibility(ctx context.Context, sessionID string, action models.CartVisibilityAction) (*models.CartView, error)
}

type cartService struct {
	storage cache.Cache
	catalog CatalogService
	ttl     time.Duration
	opts    []cart.Option
}

// NewCartService keeps one cart per session in storage. Extra options are
// passed to every cart.Store it opens.
func NewCartService(storage cache.Cache, catalog CatalogService, ttl time.Duration, opts ...cart.Option) CartService {
	return &cartService{storage: storage, catalog: catalog, ttl: ttl, opts: opts}
}

func (s *cartService) open(ctx context.Context, sessionID string) (*cart.Store, error) {
	opts := append([]cart.Option{
		cart.WithTTL(s.ttl),
		cart.WithLogger(middleware.LoggerFromContext(ctx)),
	}, s.opts...)

	store, err := cart.Load(ctx, s.storage, sessionID, opts...)
	if err != nil {
		return nil, errors.CacheError("Failed to load cart").WithError(err)
	}

	return store, nil
}

func (s *cartService) GetCart(ctx context.Context, sessionID string) (*models.CartView, error) {

	store, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return store.View(), nil
}

// AddItem snapshots the machine from the catalog so the cart never depends
// on the catalog again.
func (s *cartService) AddItem(ctx context.Context, sessionID string, req *models.AddItemRequest) (*models.CartItem, error) {

	if err := checkPartCategories(req.PartCategories); err != nil {
		return nil, err
	}

	machine, err := s.catalog.GetMachine(ctx, req.MachineID)
	if err != nil {
		return nil, err
	}

	store, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	item, err := store.AddItem(ctx, models.NewCartItem{
		MachineID:          machine.ID,
		MachineName:        machine.Name,
		MachineBrand:       machine.Brand,
		MachineModel:       machine.Model,
		MachineImage:       machine.Image,
		PartCategories:     req.PartCategories,
		ProblemDescription: req.ProblemDescription,
		Urgency:            req.Urgency,
		SerialNumber:       req.SerialNumber,
		ManufacturingYear:  req.ManufacturingYear,
		OperatingHours:     req.OperatingHours,
	})
	if err != nil {
		return nil, errors.CacheError("Failed to save cart").WithError(err)
	}

	metrics.RecordCartMutation("add_item")
	middleware.LoggerFromContext(ctx).Info("Parts request added to cart",
		slog.String("itemID", item.ID),
		slog.Int("machineID", item.MachineID),
		slog.String("urgency", string(item.Urgency)),
	)

	return &item, nil
}

func (s *cartService) UpdateItem(ctx context.Context, sessionID, itemID string, req *models.UpdateItemRequest) (*models.CartView, error) {

	if req.PartCategories != nil {
		if err := checkPartCategories(req.PartCategories); err != nil {
			return nil, err
		}
	}

	store, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !slices.ContainsFunc(store.Items(), func(i models.CartItem) bool { return i.ID == itemID }) {
		return nil, errors.NotFoundError("Cart item not found")
	}

	updates := cart.UpdatesFromRequest(*req)
	if err := store.UpdateItem(ctx, itemID, updates...); err != nil {
		return nil, errors.CacheError("Failed to save cart").WithError(err)
	}

	if len(updates) > 0 {
		metrics.RecordCartMutation("update_item")
	}

	return store.View(), nil
}

// RemoveItem succeeds for ids that are not in the cart.
func (s *cartService) RemoveItem(ctx context.Context, sessionID, itemID string) (*models.CartView, error) {

	store, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	before := store.ItemCount()

	if err := store.RemoveItem(ctx, itemID); err != nil {
		return nil, errors.CacheError("Failed to save cart").WithError(err)
	}

	if store.ItemCount() < before {
		metrics.RecordCartMutation("remove_item")
	}

	return store.View(), nil
}

func (s *cartService) ClearCart(ctx context.Context, sessionID string) (*models.CartView, error) {

	store, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := store.ClearCart(ctx); err != nil {
		return nil, errors.CacheError("Failed to save cart").WithError(err)
	}

	metrics.RecordCartMutation("clear_cart")

	return store.View(), nil
}

func (s *cartService) SetVisibility(ctx context.Context, sessionID string, action models.CartVisibilityAction) (*models.CartView, error) {

	store, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch action {
	case models.CartToggle:
		err = store.ToggleCart(ctx)
	case models.CartOpen:
		err = store.OpenCart(ctx)
	case models.CartClose:
		err = store.CloseCart(ctx)
	default:
		return nil, errors.BadRequestError("Unknown cart action")
	}

	if err != nil {
		return nil, errors.CacheError("Failed to save cart").WithError(err)
	}

	return store.View(), nil
}

func checkPartCategories(categories []string) error {
	for _, c := range categories {
		if !slices.Contains(models.PartCategories, c) {
			return errors.AddValidationError("part_categories", "unknown part category "+c)
		}
	}

	return nil
}
