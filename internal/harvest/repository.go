package harvest

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/palmledger/palmledger/internal/shared"
)

// Repository defines persistence operations for harvest records.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Record, int, error)
	Get(ctx context.Context, id int64) (Record, error)
	Create(ctx context.Context, rec Record) (Record, error)
	Update(ctx context.Context, id int64, rec Record) error
	Delete(ctx context.Context, id int64) error
	Summarize(ctx context.Context, from, to shared.Date) (Summary, error)
	LatestDate(ctx context.Context) (shared.Date, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const recordColumns = `id, created_by, date, total_weight_kg, price_per_kg, fallen_weight_kg,
	fallen_price_per_kg, total_revenue, harvesting_cost, net_profit, created_at, updated_at`

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	err := row.Scan(&rec.ID, &rec.CreatedBy, &rec.Date.Time, &rec.TotalWeightKg, &rec.PricePerKg,
		&rec.FallenWeightKg, &rec.FallenPricePerKg, &rec.TotalRevenue, &rec.HarvestingCost,
		&rec.NetProfit, &rec.CreatedAt, &rec.UpdatedAt)
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

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM harvest_records`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + recordColumns + ` FROM harvest_records` + where + ` ORDER BY date DESC, id DESC`
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
	row := r.db.QueryRow(ctx, `SELECT `+recordColumns+` FROM harvest_records WHERE id = $1`, id)
	return scanRecord(row)
}

func (r *repository) Create(ctx context.Context, rec Record) (Record, error) {
	now := time.Now().UTC()
	row := r.db.QueryRow(ctx,
		`INSERT INTO harvest_records (created_by, date, total_weight_kg, price_per_kg,
			fallen_weight_kg, fallen_price_per_kg, total_revenue, harvesting_cost,
			net_profit, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		 RETURNING `+recordColumns,
		rec.CreatedBy, rec.Date.Time, rec.TotalWeightKg, rec.PricePerKg,
		rec.FallenWeightKg, rec.FallenPricePerKg, rec.TotalRevenue, rec.HarvestingCost,
		rec.NetProfit, now)
	return scanRecord(row)
}

func (r *repository) Update(ctx context.Context, id int64, rec Record) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE harvest_records SET date = $1, total_weight_kg = $2, price_per_kg = $3,
			fallen_weight_kg = $4, fallen_price_per_kg = $5, total_revenue = $6,
			harvesting_cost = $7, net_profit = $8, updated_at = $9
		 WHERE id = $10`,
		rec.Date.Time, rec.TotalWeightKg, rec.PricePerKg, rec.FallenWeightKg,
		rec.FallenPricePerKg, rec.TotalRevenue, rec.HarvestingCost, rec.NetProfit,
		time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM harvest_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Summarize(ctx context.Context, from, to shared.Date) (Summary, error) {
	var s Summary
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*),
			COALESCE(SUM(total_weight_kg + fallen_weight_kg), 0),
			COALESCE(SUM(total_revenue), 0),
			COALESCE(SUM(harvesting_cost), 0),
			COALESCE(SUM(net_profit), 0),
			COALESCE(AVG(price_per_kg), 0)
		 FROM harvest_records WHERE date BETWEEN $1 AND $2`,
		from.Time, to.Time).
		Scan(&s.Records, &s.TotalWeightKg, &s.TotalRevenue, &s.TotalCost, &s.NetProfit, &s.AvgPricePerKg)
	return s, err
}

func (r *repository) LatestDate(ctx context.Context) (shared.Date, error) {
	var d shared.Date
	err := r.db.QueryRow(ctx, `SELECT date FROM harvest_records ORDER BY date DESC, id DESC LIMIT 1`).
		Scan(&d.Time)
	if errors.Is(err, pgx.ErrNoRows) {
		return shared.Date{}, shared.ErrNotFound
	}
	return d, err
}
