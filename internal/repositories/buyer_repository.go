package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/poofware/buyer-leads-service/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type BuyerRepository interface {
	Create(ctx context.Context, b *models.Buyer) error
	// CreateMany inserts every buyer in one transaction; none are kept on error.
	CreateMany(ctx context.Context, buyers []*models.Buyer) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Buyer, error)
	Search(ctx context.Context, f models.BuyerFilter, limit, offset int) ([]*models.Buyer, int, error)
	ListAll(ctx context.Context, f models.BuyerFilter) ([]*models.Buyer, error)

	// UpdateIfUnmodified writes b only when updated_at still equals expected.
	// RowsAffected()==0 means the token is stale (or the row is gone).
	UpdateIfUnmodified(ctx context.Context, b *models.Buyer, expected time.Time) (pgconn.CommandTag, error)

	// Delete removes the buyer and its history. pgx.ErrNoRows when absent.
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type buyerRepo struct {
	db DB
}

func NewBuyerRepository(db DB) BuyerRepository {
	return &buyerRepo{db: db}
}

const insertBuyerSQL = `
    INSERT INTO buyers (
        id, owner_id, full_name, email, phone, city, property_type, bhk,
        purpose, budget_min, budget_max, timeline, source, status, notes, tags,
        created_at, updated_at
    ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16, NOW(), NOW())
    RETURNING created_at, updated_at
`

func insertArgs(b *models.Buyer) []any {
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}
	return []any{
		b.ID, b.OwnerID, b.FullName, b.Email, b.Phone, b.City, b.PropertyType, b.BHK,
		b.Purpose, b.BudgetMin, b.BudgetMax, b.Timeline, b.Source, b.Status, b.Notes, tags,
	}
}

func (r *buyerRepo) Create(ctx context.Context, b *models.Buyer) error {
	return r.db.QueryRow(ctx, insertBuyerSQL, insertArgs(b)...).Scan(&b.CreatedAt, &b.UpdatedAt)
}

func (r *buyerRepo) CreateMany(ctx context.Context, buyers []*models.Buyer) error {
	return r.db.BeginFunc(ctx, func(tx pgx.Tx) error {
		for _, b := range buyers {
			if err := tx.QueryRow(ctx, insertBuyerSQL, insertArgs(b)...).Scan(&b.CreatedAt, &b.UpdatedAt); err != nil {
				return fmt.Errorf("insert buyer %s: %w", b.ID, err)
			}
		}
		return nil
	})
}

func (r *buyerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Buyer, error) {
	row := r.db.QueryRow(ctx, baseSelectBuyer()+" WHERE id=$1", id)
	return scanBuyer(row)
}

func (r *buyerRepo) Search(ctx context.Context, f models.BuyerFilter, limit, offset int) ([]*models.Buyer, int, error) {
	where, args := buyerWhere(f)

	var total int
	if err := r.db.QueryRow(ctx, "SELECT count(*) FROM buyers"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	idx := len(args) + 1
	q := baseSelectBuyer() + where +
		fmt.Sprintf(" ORDER BY updated_at DESC, id LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, limit, offset)

	out, err := r.queryBuyers(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *buyerRepo) ListAll(ctx context.Context, f models.BuyerFilter) ([]*models.Buyer, error) {
	where, args := buyerWhere(f)
	return r.queryBuyers(ctx, baseSelectBuyer()+where+" ORDER BY updated_at DESC, id", args...)
}

func (r *buyerRepo) UpdateIfUnmodified(ctx context.Context, b *models.Buyer, expected time.Time) (pgconn.CommandTag, error) {
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}
	// The token must move even if two writes land in the same microsecond.
	sql := `
        UPDATE buyers SET
            full_name=$1, email=$2, phone=$3, city=$4, property_type=$5, bhk=$6,
            purpose=$7, budget_min=$8, budget_max=$9, timeline=$10, source=$11,
            status=$12, notes=$13, tags=$14,
            updated_at=GREATEST(NOW(), updated_at + interval '1 microsecond')
        WHERE id=$15 AND updated_at=$16
    `
	return r.db.Exec(ctx, sql,
		b.FullName, b.Email, b.Phone, b.City, b.PropertyType, b.BHK,
		b.Purpose, b.BudgetMin, b.BudgetMax, b.Timeline, b.Source,
		b.Status, b.Notes, tags,
		b.ID, expected,
	)
}

func (r *buyerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.BeginFunc(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM buyer_history WHERE buyer_id=$1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM buyers WHERE id=$1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
}

func (r *buyerRepo) queryBuyers(ctx context.Context, sql string, args ...any) ([]*models.Buyer, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.Buyer{}
	for rows.Next() {
		b, err := scanBuyer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// buyerWhere builds the shared list/export filter. Exact match on the enum
// columns, case-insensitive substring match for the free-text query.
func buyerWhere(f models.BuyerFilter) (string, []any) {
	var conds []string
	var args []any

	exact := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conds = append(conds, fmt.Sprintf("%s=$%d", column, len(args)))
	}
	exact("city", f.City)
	exact("property_type", f.PropertyType)
	exact("status", f.Status)
	exact("timeline", f.Timeline)

	if q := strings.TrimSpace(f.Query); q != "" {
		args = append(args, "%"+escapeLike(q)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(full_name ILIKE $%d OR phone ILIKE $%d OR COALESCE(email,'') ILIKE $%d)", n, n, n,
		))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

func baseSelectBuyer() string {
	return `
        SELECT
            id, owner_id, full_name, email, phone, city, property_type, bhk,
            purpose, budget_min, budget_max, timeline, source, status, notes, tags,
            created_at, updated_at
        FROM buyers
    `
}

func scanBuyer(row pgx.Row) (*models.Buyer, error) {
	var b models.Buyer
	err := row.Scan(
		&b.ID,
		&b.OwnerID,
		&b.FullName,
		&b.Email,
		&b.Phone,
		&b.City,
		&b.PropertyType,
		&b.BHK,
		&b.Purpose,
		&b.BudgetMin,
		&b.BudgetMax,
		&b.Timeline,
		&b.Source,
		&b.Status,
		&b.Notes,
		&b.Tags,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if b.Tags == nil {
		b.Tags = []string{}
	}
	return &b, nil
}
