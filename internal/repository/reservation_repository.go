package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/wedding-invitation/internal/model"
)

// ReservationRepo provides persistence for quota purchases.
// Reservations are append/delete-only; there is no update path, so the
// only locking they need is the transaction they share with their
// gift's quotas_sold adjustment.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, gift_id, guest_id, contributor_name, quantity, amount_paid_cents, message, created_at`

func scanReservation(row interface{ Scan(...interface{}) error }) (model.Reservation, error) {
	var (
		res     model.Reservation
		guestID sql.NullInt64
		message sql.NullString
	)
	err := row.Scan(&res.ID, &res.GiftID, &guestID, &res.ContributorName,
		&res.Quantity, &res.AmountPaidCents, &message, &res.CreatedAt)
	if err != nil {
		return model.Reservation{}, err
	}
	if guestID.Valid {
		v := uint64(guestID.Int64)
		res.GuestID = &v
	}
	if message.Valid {
		v := message.String
		res.Message = &v
	}
	return res, nil
}

// CreateTx inserts a reservation within the purchase transaction and
// reads the row back to populate the generated id and timestamp.  The
// caller has already snapshotted AmountPaidCents from the gift state
// inside the same transaction.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	result, err := tx.ExecContext(ctx,
		`INSERT INTO reservations (gift_id, guest_id, contributor_name, quantity, amount_paid_cents, message)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		res.GiftID, res.GuestID, res.ContributorName, res.Quantity, res.AmountPaidCents, res.Message)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	row := tx.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, res.ID)
	stored, err := scanReservation(row)
	if err != nil {
		return err
	}
	*res = stored
	return nil
}

// GetForCancelTx loads a reservation and locks its row for the rest of
// the cancellation transaction.  The lock serializes concurrent
// cancellations of the same id: the loser blocks here, then sees no
// row and gets ErrReservationNotFound, so the gift's counter is
// decremented exactly once.
func (r *ReservationRepo) GetForCancelTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Reservation, error) {
	row := tx.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = ? FOR UPDATE`, id)
	res, err := scanReservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Reservation{}, ErrReservationNotFound
	}
	return res, err
}

// DeleteTx removes a reservation row, returning
// ErrReservationNotFound when it was already gone.
func (r *ReservationRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// DeleteByGiftTx removes every reservation of a gift as part of an
// explicit cascade deletion.
func (r *ReservationRepo) DeleteByGiftTx(ctx context.Context, tx *sql.Tx, giftID uint64) (int64, error) {
	res, err := tx.ExecContext(ctx, `DELETE FROM reservations WHERE gift_id = ?`, giftID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListByGift returns a gift's reservations newest first, for the admin
// "who gave this" view.
func (r *ReservationRepo) ListByGift(ctx context.Context, giftID uint64) ([]model.Reservation, error) {
	return r.list(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE gift_id = ? ORDER BY created_at DESC, id DESC`, giftID)
}

// ListByGuest returns a guest's contributions newest first, for the
// invite page's "my gifts" view.
func (r *ReservationRepo) ListByGuest(ctx context.Context, guestID uint64) ([]model.Reservation, error) {
	return r.list(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE guest_id = ? ORDER BY created_at DESC, id DESC`, guestID)
}

// ListAll returns every reservation, used by the dashboard fold.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]model.Reservation, error) {
	return r.list(ctx, `SELECT `+reservationColumns+` FROM reservations ORDER BY created_at DESC, id DESC`)
}

func (r *ReservationRepo) list(ctx context.Context, query string, args ...interface{}) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
