package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/cache"
	appErrors "github.com/aaravmahajanofficial/industrial-parts-storefront/internal/errors"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/industrial-parts-storefront/internal/repositories"
)

type CatalogService interface {
	GetMachine(ctx context.Context, id int) (*models.Machine, error)
	ListMachines(ctx context.Context, filter models.MachineFilter) (*models.PaginatedResponse, error)
	ListCategories(ctx context.Context) ([]models.CategoryCount, error)
	ListPartCategories() []string
}

type catalogService struct {
	repo  repository.MachineRepository
	cache cache.Cache
	ttl   time.Duration
}

// NewCatalogService reads machines through the cache. A nil cache disables
// caching.
func NewCatalogService(repo repository.MachineRepository, c cache.Cache, ttl time.Duration) CatalogService {
	return &catalogService{repo: repo, cache: c, ttl: ttl}
}

func (s *catalogService) GetMachine(ctx context.Context, id int) (*models.Machine, error) {

	logger := middleware.LoggerFromContext(ctx)
	key := cache.Key(cache.MachineKeyPrefix, strconv.Itoa(id))

	if s.cache != nil {
		var cached models.Machine
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Warn("Machine cache read failed", slog.String("key", key), slog.Any("error", err))
		} else if found {
			return &cached, nil
		}
	}

	machine, err := s.repo.GetMachineByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMachineNotFound) {
			return nil, appErrors.NotFoundError("Machine not found").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to fetch machine").WithError(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, machine, s.ttl); err != nil {
			logger.Warn("Machine cache write failed", slog.String("key", key), slog.Any("error", err))
		}
	}

	return machine, nil
}

func (s *catalogService) ListMachines(ctx context.Context, filter models.MachineFilter) (*models.PaginatedResponse, error) {

	filter = filter.Normalized()

	if filter.YearFrom > 0 && filter.YearTo > 0 && filter.YearFrom > filter.YearTo {
		return nil, appErrors.AddValidationError("yearFrom", "must not be after yearTo")
	}

	machines, total, err := s.repo.ListMachines(ctx, filter)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch machines").WithError(err)
	}

	if machines == nil {
		machines = []*models.Machine{}
	}

	return &models.PaginatedResponse{
		Data:     machines,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]models.CategoryCount, error) {

	logger := middleware.LoggerFromContext(ctx)
	key := cache.Key(cache.CategoriesKeyPrefix, "all")

	if s.cache != nil {
		var cached []models.CategoryCount
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Warn("Category cache read failed", slog.Any("error", err))
		} else if found {
			return cached, nil
		}
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch categories").WithError(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, categories, s.ttl); err != nil {
			logger.Warn("Category cache write failed", slog.Any("error", err))
		}
	}

	return categories, nil
}

func (s *catalogService) ListPartCategories() []string {
	return slices.Clone(models.PartCategories)
}
