package fertilizer

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/palmledger/palmledger/internal/shared"
)

// Repository defines persistence operations for fertilizer records.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Record, int, error)
	Get(ctx context.Context, id int64) (Record, error)
	Create(ctx context.Context, rec Record) (Record, error)
	Update(ctx context.Context, id int64, rec Record) error
	Delete(ctx context.Context, id int64) error
	TotalCost(ctx context.Context, from, to shared.Date) (float64, int, error)
	LastApplication(ctx context.Context) (Record, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const recordColumns = `id, created_by, date, fertilizer_type, amount_bags, cost_per_bag,
	labor_cost, total_cost, supplier, notes, created_at, updated_at`

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	err := row.Scan(&rec.ID, &rec.CreatedBy, &rec.Date.Time, &rec.FertilizerType, &rec.AmountBags,
		&rec.CostPerBag, &rec.LaborCost, &rec.TotalCost, &rec.Supplier, &rec.Notes,
		&rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, shared.ErrNotFound
	}
	return rec, err
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Record, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if filter.From != nil {
		args = append(args, filter.From.Time)
		where += ` AND date >= $` + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, filter.To.Time)
		where += ` AND date <= $` + strconv.Itoa(len(args))
	}
	if filter.Type != "" {
		args = append(args, "%"+filter.Type+"%")
		where += ` AND fertilizer_type ILIKE $` + strconv.Itoa(len(args))
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM fertilizer_records`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + recordColumns + ` FROM fertilizer_records` + where + ` ORDER BY date DESC, id DESC`
	if filter.PerPage > 0 {
		args = append(args, filter.PerPage)
		query += ` LIMIT $` + strconv.Itoa(len(args))
		offset := (filter.Page - 1) * filter.PerPage
		if offset < 0 {
			offset = 0
		}
		args = append(args, offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	return records, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Record, error) {
	row := r.db.QueryRow(ctx, `SELECT `+recordColumns+` FROM fertilizer_records WHERE id = $1`, id)
	return scanRecord(row)
}

func (r *repository) Create(ctx context.Context, rec Record) (Record, error) {
	now := time.Now().UTC()
	row := r.db.QueryRow(ctx,
		`INSERT INTO fertilizer_records (created_by, date, fertilizer_type, amount_bags,
			cost_per_bag, labor_cost, total_cost, supplier, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		 RETURNING `+recordColumns,
		rec.CreatedBy, rec.Date.Time, rec.FertilizerType, rec.AmountBags,
		rec.CostPerBag, rec.LaborCost, rec.TotalCost, rec.Supplier, rec.Notes, now)
	return scanRecord(row)
}

func (r *repository) Update(ctx context.Context, id int64, rec Record) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE fertilizer_records SET date = $1, fertilizer_type = $2, amount_bags = $3,
			cost_per_bag = $4, labor_cost = $5, total_cost = $6, supplier = $7,
			notes = $8, updated_at = $9
		 WHERE id = $10`,
		rec.Date.Time, rec.FertilizerType, rec.AmountBags, rec.CostPerBag, rec.LaborCost,
		rec.TotalCost, rec.Supplier, rec.Notes, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM fertilizer_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) TotalCost(ctx context.Context, from, to shared.Date) (float64, int, error) {
	var total float64
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_cost), 0), COUNT(*)
		 FROM fertilizer_records WHERE date BETWEEN $1 AND $2`,
		from.Time, to.Time).Scan(&total, &count)
	return total, count, err
}

func (r *repository) LastApplication(ctx context.Context) (Record, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+recordColumns+` FROM fertilizer_records ORDER BY date DESC, id DESC LIMIT 1`)
	return scanRecord(row)
}
