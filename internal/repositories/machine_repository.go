package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/models"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/utils"
	"github.com/lib/pq"
)

var ErrMachineNotFound = errors.New("machine not found")

type MachineRepository interface {
	GetMachineByID(ctx context.Context, id int) (*models.Machine, error)
	ListMachines(ctx context.Context, filter models.MachineFilter) ([]*models.Machine, int, error)
	ListCategories(ctx context.Context) ([]models.CategoryCount, error)
}

type machineRepository struct {
	DB *sql.DB
}

func NewMachineRepo(db *sql.DB) MachineRepository {
	return &machineRepository{DB: db}
}

const machineColumns = `id, name, category, brand, model, year, power, image, description, specifications, tags`

func (r *machineRepository) GetMachineByID(ctx context.Context, id int) (*models.Machine, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + machineColumns + ` FROM machines WHERE id = $1`

	machine, err := scanMachine(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMachineNotFound
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return machine, nil
}

func (r *machineRepository) ListMachines(ctx context.Context, filter models.MachineFilter) ([]*models.Machine, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	filter = filter.Normalized()
	where, args := machineWhere(filter)

	var total int

	countQuery := `SELECT COUNT(*) FROM machines` + where

	if err := r.DB.QueryRowContext(dbCtx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count machines: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM machines%s ORDER BY id LIMIT $%d OFFSET $%d`,
		machineColumns, where, len(args)+1, len(args)+2)

	rows, err := r.DB.QueryContext(dbCtx, query, append(args, filter.PageSize, filter.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query machines: %w", err)
	}

	defer rows.Close()

	machines := []*models.Machine{}

	for rows.Next() {
		machine, err := scanMachine(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan machine: %w", err)
		}

		machines = append(machines, machine)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return machines, total, nil
}

func (r *machineRepository) ListCategories(ctx context.Context) ([]models.CategoryCount, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT category, COUNT(*) FROM machines GROUP BY category`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}

	defer rows.Close()

	counts := map[string]int{}

	for rows.Next() {
		var (
			name  string
			count int
		)

		if err := rows.Scan(&name, &count); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}

		counts[name] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return categoryCounts(counts), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMachine(row rowScanner) (*models.Machine, error) {
	machine := &models.Machine{}

	err := row.Scan(&machine.ID, &machine.Name, &machine.Category, &machine.Brand, &machine.Model, &machine.Year,
		&machine.Power, &machine.Image, &machine.Description, pq.Array(&machine.Specifications), pq.Array(&machine.Tags))
	if err != nil {
		return nil, err
	}

	return machine, nil
}

func machineWhere(filter models.MachineFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)

	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, search)
		conditions = append(conditions, fmt.Sprintf("name ILIKE '%%' || $%d || '%%'", len(args)))
	}

	if len(filter.Categories) > 0 {
		args = append(args, pq.Array(filter.Categories))
		conditions = append(conditions, fmt.Sprintf("category = ANY($%d)", len(args)))
	}

	if filter.YearFrom > 0 {
		args = append(args, filter.YearFrom)
		conditions = append(conditions, fmt.Sprintf("year >= $%d", len(args)))
	}

	if filter.YearTo > 0 {
		args = append(args, filter.YearTo)
		conditions = append(conditions, fmt.Sprintf("year <= $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

// categoryCounts lists every main category, including empty ones, followed
// by any category the catalog holds that is not a main one.
func categoryCounts(counts map[string]int) []models.CategoryCount {
	result := make([]models.CategoryCount, 0, len(models.MachineCategories))
	seen := make(map[string]bool, len(models.MachineCategories))

	for _, name := range models.MachineCategories {
		result = append(result, models.CategoryCount{Name: name, Count: counts[name]})
		seen[name] = true
	}

	var extra []string
	for name := range counts {
		if !seen[name] {
			extra = append(extra, name)
		}
	}

	slices.Sort(extra)

	for _, name := range extra {
		result = append(result, models.CategoryCount{Name: name, Count: counts[name]})
	}

	return result
}
