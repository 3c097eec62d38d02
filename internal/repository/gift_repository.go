package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/wedding-invitation/internal/model"
)

// GiftRepo provides persistence for registry gifts.  The quotas_sold
// counter is the one piece of shared mutable state in the system, so
// every mutation of it is expressed as a single conditional UPDATE;
// the repository never reads a counter, does arithmetic in Go and
// writes the result back.
type GiftRepo struct {
	db *sql.DB
}

// NewGiftRepo returns a GiftRepo bound to the given database.
func NewGiftRepo(db *sql.DB) *GiftRepo { return &GiftRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that span gifts and reservations.
func (r *GiftRepo) DB() *sql.DB { return r.db }

const giftColumns = `id, name, description, total_value_cents, has_quotas,
	total_quotas, quotas_sold, image_url, store_url, active, created_at, updated_at`

func scanGift(row interface{ Scan(...interface{}) error }) (model.Gift, error) {
	var (
		g        model.Gift
		imageURL sql.NullString
		storeURL sql.NullString
	)
	err := row.Scan(&g.ID, &g.Name, &g.Description, &g.TotalValueCents, &g.HasQuotas,
		&g.TotalQuotas, &g.QuotasSold, &imageURL, &storeURL, &g.Active, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return model.Gift{}, err
	}
	if imageURL.Valid {
		v := imageURL.String
		g.ImageURL = &v
	}
	if storeURL.Valid {
		v := storeURL.String
		g.StoreURL = &v
	}
	return g, nil
}

// Create validates and inserts a new gift.  New gifts always start
// with quotas_sold = 0 regardless of what the caller set, and the
// generated id plus DB timestamps are read back onto the struct.
func (r *GiftRepo) Create(ctx context.Context, g *model.Gift) error {
	g.Normalize()
	g.QuotasSold = 0
	if err := g.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO gifts (name, description, total_value_cents, has_quotas, total_quotas, quotas_sold, image_url, store_url, active)
		 VALUES (?, ?, ?, ?, ?, 0, ?, ?, ?)`,
		g.Name, g.Description, g.TotalValueCents, g.HasQuotas, g.TotalQuotas, g.ImageURL, g.StoreURL, g.Active)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	stored, err := r.GetByID(ctx, g.ID)
	if err != nil {
		return err
	}
	*g = stored
	return nil
}

// Update rewrites a gift's editable fields.  quotas_sold is not
// touched here; it belongs to the reservation flow and to the explicit
// SetQuotasSold override.  The UPDATE carries a quotas_sold <= new
// total guard so shrinking total_quotas below the sold count is
// rejected without a read-then-write window.
func (r *GiftRepo) Update(ctx context.Context, g *model.Gift) error {
	g.Normalize()
	tmp := *g
	tmp.QuotasSold = 0 // the sold count is checked against the guard below, not here
	if err := tmp.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE gifts SET name = ?, description = ?, total_value_cents = ?, has_quotas = ?,
		        total_quotas = ?, image_url = ?, store_url = ?, active = ?
		 WHERE id = ? AND quotas_sold <= ?`,
		g.Name, g.Description, g.TotalValueCents, g.HasQuotas,
		g.TotalQuotas, g.ImageURL, g.StoreURL, g.Active,
		g.ID, g.TotalQuotas)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either the gift is gone or the new quota count is below the
		// sold count; look once to tell the two apart.
		var sold uint32
		err := r.db.QueryRowContext(ctx, `SELECT quotas_sold FROM gifts WHERE id = ?`, g.ID).Scan(&sold)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrGiftNotFound
		}
		if err != nil {
			return err
		}
		if sold > g.TotalQuotas {
			return fmt.Errorf("%w: total quotas cannot drop below %d already sold", ErrValidation, sold)
		}
		// Same values written twice; nothing changed.
	}
	stored, err := r.GetByID(ctx, g.ID)
	if err != nil {
		return err
	}
	*g = stored
	return nil
}

// SetQuotasSold is the trusted manual correction path.  It bypasses
// the reservation-sum invariant on purpose and only rejects values
// above the gift's total quota count.
func (r *GiftRepo) SetQuotasSold(ctx context.Context, id uint64, sold uint32) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE gifts SET quotas_sold = ? WHERE id = ? AND ? <= total_quotas`,
		sold, id, sold)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var total uint32
		err := r.db.QueryRowContext(ctx, `SELECT total_quotas FROM gifts WHERE id = ?`, id).Scan(&total)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrGiftNotFound
		}
		if err != nil {
			return err
		}
		if sold > total {
			return fmt.Errorf("%w: quotas sold cannot exceed %d total quotas", ErrValidation, total)
		}
	}
	return nil
}

// GetByID returns a single gift or ErrGiftNotFound.
func (r *GiftRepo) GetByID(ctx context.Context, id uint64) (model.Gift, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+giftColumns+` FROM gifts WHERE id = ?`, id)
	g, err := scanGift(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Gift{}, ErrGiftNotFound
	}
	return g, err
}

// ListActive returns the publicly visible gifts in insertion order.
func (r *GiftRepo) ListActive(ctx context.Context) ([]model.Gift, error) {
	return r.list(ctx, `SELECT `+giftColumns+` FROM gifts WHERE active = 1 ORDER BY id`)
}

// ListAll returns every gift, visible or not, in insertion order.
func (r *GiftRepo) ListAll(ctx context.Context) ([]model.Gift, error) {
	return r.list(ctx, `SELECT `+giftColumns+` FROM gifts ORDER BY id`)
}

func (r *GiftRepo) list(ctx context.Context, query string) ([]model.Gift, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	gifts := make([]model.Gift, 0)
	for rows.Next() {
		g, err := scanGift(rows)
		if err != nil {
			return nil, err
		}
		gifts = append(gifts, g)
	}
	return gifts, rows.Err()
}

// SellQuotasTx performs the atomic check-and-increment at the heart of
// the purchase flow.  The guard "quotas_sold + qty <= total_quotas"
// lives inside the UPDATE itself, so two racing purchases for the last
// quota are serialized by the row lock and exactly one of them sees a
// rows-affected of zero.  When the guard rejects, a follow-up read in
// the same transaction disambiguates a missing or inactive gift from a
// genuine shortfall.  On success the refreshed gift row is returned
// for snapshotting the quota price and for immediate UI feedback.
func (r *GiftRepo) SellQuotasTx(ctx context.Context, tx *sql.Tx, giftID uint64, qty uint32) (model.Gift, error) {
	res, err := tx.ExecContext(ctx,
		`UPDATE gifts SET quotas_sold = quotas_sold + ?
		 WHERE id = ? AND active = 1 AND quotas_sold + ? <= total_quotas`,
		qty, giftID, qty)
	if err != nil {
		return model.Gift{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Gift{}, err
	}
	if n == 0 {
		var active bool
		err := tx.QueryRowContext(ctx, `SELECT active FROM gifts WHERE id = ?`, giftID).Scan(&active)
		if errors.Is(err, sql.ErrNoRows) || (err == nil && !active) {
			return model.Gift{}, ErrGiftNotFound
		}
		if err != nil {
			return model.Gift{}, err
		}
		return model.Gift{}, ErrInsufficientQuota
	}
	row := tx.QueryRowContext(ctx, `SELECT `+giftColumns+` FROM gifts WHERE id = ?`, giftID)
	return scanGift(row)
}

// ReleaseQuotasTx returns quotas to a gift when a reservation is
// cancelled.  The quotas_sold >= qty guard keeps the counter from
// going negative if the stored state was manually corrected in the
// meantime; in that case the counter is clamped to zero instead.
func (r *GiftRepo) ReleaseQuotasTx(ctx context.Context, tx *sql.Tx, giftID uint64, qty uint32) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE gifts SET quotas_sold = quotas_sold - ? WHERE id = ? AND quotas_sold >= ?`,
		qty, giftID, qty)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		_, err = tx.ExecContext(ctx, `UPDATE gifts SET quotas_sold = 0 WHERE id = ?`, giftID)
	}
	return err
}

// DeleteTx removes a gift row.  It refuses with ErrConflict while any
// reservation still references the gift; cascading callers delete the
// reservations first inside the same transaction, which also keeps the
// guard safe against purchases racing the delete.
func (r *GiftRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	var refs int64
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM reservations WHERE gift_id = ?`, id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("%w: gift has %d reservations", ErrConflict, refs)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM gifts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrGiftNotFound
	}
	return nil
}
