package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/errors"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/models"
	service "github.com/aaravmahajanofficial/industrial-parts-storefront/internal/services"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/utils"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/utils/response"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListMachines godoc
//	@Summary		List catalog machines
//	@Description	Lists machines with optional name search, category and year filters. Categories may be repeated or comma separated.
//	@Tags			Catalog
//	@Produce		json
//	@Param			q			query		string												false	"Case-insensitive name search"
//	@Param			category	query		[]string											false	"Machine categories"	collectionFormat(multi)
//	@Param			yearFrom	query		int													false	"Oldest manufacturing year"
//	@Param			yearTo		query		int													false	"Newest manufacturing year"
//	@Param			page		query		int													false	"Page number (default: 1)"				minimum(1)
//	@Param			pageSize	query		int													false	"Items per page (default: 12, max: 100)"	minimum(1)	maximum(100)
//	@Success		200			{object}	models.PaginatedResponse{Data=[]models.Machine}	"Machines matching the filter"
//	@Failure		400			{object}	response.ErrorResponse								"Invalid filter"
//	@Failure		500			{object}	response.ErrorResponse								"Internal server error"
//	@Router			/machines [get]
func (h *CatalogHandler) ListMachines() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		filter, err := parseMachineFilter(r.URL.Query())
		if err != nil {
			logger.Warn("Invalid machine filter", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		page, err := h.catalogService.ListMachines(r.Context(), filter)
		if err != nil {
			logger.Error("Failed to list machines", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, page)
	}
}

// GetMachine godoc
//	@Summary		Get a machine
//	@Tags			Catalog
//	@Produce		json
//	@Param			id	path		int						true	"Machine ID"
//	@Success		200	{object}	models.Machine			"Machine"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid machine ID"
//	@Failure		404	{object}	response.ErrorResponse	"Machine not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/machines/{id} [get]
func (h *CatalogHandler) GetMachine() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseIntID(r, "id")
		if err != nil {
			logger.Warn("Invalid machine id", slog.String("id", r.PathValue("id")))
			response.Error(w, err)
			return
		}

		machine, err := h.catalogService.GetMachine(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to get machine", slog.Int("machineID", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, machine)
	}
}

// ListCategories godoc
//	@Summary		List machine categories
//	@Description	Every main category with its machine count, including empty ones.
//	@Tags			Catalog
//	@Produce		json
//	@Success		200	{array}		models.CategoryCount	"Categories"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/categories [get]
func (h *CatalogHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		categories, err := h.catalogService.ListCategories(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list categories", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}

// ListPartCategories godoc
//	@Summary		List part categories
//	@Description	The kinds of parts a visitor can request.
//	@Tags			Catalog
//	@Produce		json
//	@Success		200	{array}	string	"Part categories"
//	@Router			/part-categories [get]
func (h *CatalogHandler) ListPartCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.catalogService.ListPartCategories())
	}
}

func parseMachineFilter(query url.Values) (models.MachineFilter, error) {

	filter := models.MachineFilter{Search: strings.TrimSpace(query.Get("q"))}

	for _, value := range query["category"] {
		for _, c := range strings.Split(value, ",") {
			if c = strings.TrimSpace(c); c != "" {
				filter.Categories = append(filter.Categories, c)
			}
		}
	}

	ints := []struct {
		name string
		dest *int
	}{
		{"yearFrom", &filter.YearFrom},
		{"yearTo", &filter.YearTo},
		{"page", &filter.Page},
		{"pageSize", &filter.PageSize},
	}

	for _, p := range ints {
		raw := query.Get(p.name)
		if raw == "" {
			continue
		}

		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return filter, errors.AddValidationError(p.name, "must be a non-negative integer")
		}
		*p.dest = n
	}

	return filter, nil
}
