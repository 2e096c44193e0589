package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/cache"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/config"
	appErrors "github.com/aaravmahajanofficial/industrial-parts-storefront/internal/errors"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/industrial-parts-storefront/internal/repositories"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/industrial-parts-storefront/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMemoryCache(t *testing.T) cache.Cache {
	t.Helper()

	c := cache.NewMemoryCache(&config.CacheConfig{DefaultTTL: time.Hour, CleanupInterval: time.Hour})
	t.Cleanup(func() { _ = c.Close() })

	return c
}

func setupCatalogServiceTest(t *testing.T) (service.CatalogService, *mocks.MachineRepository) {
	t.Helper()

	repo := mocks.NewMachineRepository(t)
	return service.NewCatalogService(repo, newMemoryCache(t), time.Minute), repo
}

func TestCatalogService_GetMachine(t *testing.T) {
	ctx := context.Background()
	machine := &models.Machine{ID: 1, Name: "Moinho de Bolas MB-2000", Brand: "TechMill", Model: "MB-2000"}

	t.Run("Success - Second lookup served from cache", func(t *testing.T) {
		// Arrange
		catalog, repo := setupCatalogServiceTest(t)
		repo.On("GetMachineByID", mock.Anything, 1).Return(machine, nil).Once()

		// Act
		first, err := catalog.GetMachine(ctx, 1)
		require.NoError(t, err)
		second, err := catalog.GetMachine(ctx, 1)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, machine, first)
		assert.Equal(t, machine, second)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		catalog, repo := setupCatalogServiceTest(t)
		repo.On("GetMachineByID", mock.Anything, 404).Return(nil, repository.ErrMachineNotFound).Once()

		result, err := catalog.GetMachine(ctx, 404)

		assert.Nil(t, result)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		catalog, repo := setupCatalogServiceTest(t)
		dbErr := errors.New("connection refused")
		repo.On("GetMachineByID", mock.Anything, 1).Return(nil, dbErr).Once()

		_, err := catalog.GetMachine(ctx, 1)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("Success - Without cache", func(t *testing.T) {
		repo := mocks.NewMachineRepository(t)
		catalog := service.NewCatalogService(repo, nil, time.Minute)
		repo.On("GetMachineByID", mock.Anything, 1).Return(machine, nil).Twice()

		_, err := catalog.GetMachine(ctx, 1)
		require.NoError(t, err)
		_, err = catalog.GetMachine(ctx, 1)
		require.NoError(t, err)
	})
}

func TestCatalogService_ListMachines(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Defaults applied", func(t *testing.T) {
		catalog, repo := setupCatalogServiceTest(t)
		expectedFilter := models.MachineFilter{Search: "moinho", Page: 1, PageSize: models.DefaultPageSize}
		machines := []*models.Machine{{ID: 1}, {ID: 15}}

		repo.On("ListMachines", mock.Anything, expectedFilter).Return(machines, 2, nil).Once()

		page, err := catalog.ListMachines(ctx, models.MachineFilter{Search: "moinho"})

		require.NoError(t, err)
		assert.Equal(t, 2, page.Total)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, models.DefaultPageSize, page.PageSize)
		assert.Equal(t, machines, page.Data)
	})

	t.Run("Success - Empty page is an empty list", func(t *testing.T) {
		catalog, repo := setupCatalogServiceTest(t)
		repo.On("ListMachines", mock.Anything, mock.Anything).Return(nil, 0, nil).Once()

		page, err := catalog.ListMachines(ctx, models.MachineFilter{Page: 5})

		require.NoError(t, err)
		assert.Equal(t, []*models.Machine{}, page.Data)
	})

	t.Run("Failure - Inverted year range", func(t *testing.T) {
		catalog, repo := setupCatalogServiceTest(t)

		_, err := catalog.ListMachines(ctx, models.MachineFilter{YearFrom: 2023, YearTo: 2020})

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		repo.AssertNotCalled(t, "ListMachines", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		catalog, repo := setupCatalogServiceTest(t)
		repo.On("ListMachines", mock.Anything, mock.Anything).Return(nil, 0, errors.New("boom")).Once()

		page, err := catalog.ListMachines(ctx, models.MachineFilter{})

		assert.Nil(t, page)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
	})
}

func TestCatalogService_ListCategories(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Cached after first call", func(t *testing.T) {
		catalog, repo := setupCatalogServiceTest(t)
		categories := []models.CategoryCount{{Name: "Moagem", Count: 2}}
		repo.On("ListCategories", mock.Anything).Return(categories, nil).Once()

		_, err := catalog.ListCategories(ctx)
		require.NoError(t, err)
		result, err := catalog.ListCategories(ctx)

		require.NoError(t, err)
		assert.Equal(t, categories, result)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		catalog, repo := setupCatalogServiceTest(t)
		repo.On("ListCategories", mock.Anything).Return(nil, errors.New("boom")).Once()

		result, err := catalog.ListCategories(ctx)

		assert.Nil(t, result)
		assert.Error(t, err)
	})
}

func TestCatalogService_ListPartCategories(t *testing.T) {
	catalog := service.NewCatalogService(repository.NewStaticMachineRepo(nil), nil, 0)

	categories := catalog.ListPartCategories()
	categories[0] = "changed"

	assert.Equal(t, models.PartCategories[0], catalog.ListPartCategories()[0])
	assert.Len(t, catalog.ListPartCategories(), len(models.PartCategories))
}
