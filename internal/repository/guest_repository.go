package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/wedding-invitation/internal/model"
)

// GuestRepo provides CRUD and aggregate statistics for the guest
// directory.  Guests are plain records keyed by id for the back office
// and by invite token for the public invite page.
type GuestRepo struct {
	db *sql.DB
}

// NewGuestRepo returns a GuestRepo bound to the given database.
func NewGuestRepo(db *sql.DB) *GuestRepo { return &GuestRepo{db: db} }

const guestColumns = `id, name, email, phone, invite_token, group_name, notes,
	max_companions, companion_count, confirmed, confirmed_at, message,
	invite_sent, invite_sent_at, viewed_at, view_count, created_at, updated_at`

func scanGuest(row interface{ Scan(...interface{}) error }) (model.Guest, error) {
	var (
		g           model.Guest
		notes       sql.NullString
		confirmedAt sql.NullTime
		message     sql.NullString
		sentAt      sql.NullTime
		viewedAt    sql.NullTime
	)
	err := row.Scan(&g.ID, &g.Name, &g.Email, &g.Phone, &g.InviteToken, &g.GroupName, &notes,
		&g.MaxCompanions, &g.CompanionCount, &g.Confirmed, &confirmedAt, &message,
		&g.InviteSent, &sentAt, &viewedAt, &g.ViewCount, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return model.Guest{}, err
	}
	if notes.Valid {
		v := notes.String
		g.Notes = &v
	}
	if confirmedAt.Valid {
		t := confirmedAt.Time
		g.ConfirmedAt = &t
	}
	if message.Valid {
		v := message.String
		g.Message = &v
	}
	if sentAt.Valid {
		t := sentAt.Time
		g.InviteSentAt = &t
	}
	if viewedAt.Valid {
		t := viewedAt.Time
		g.ViewedAt = &t
	}
	return g, nil
}

func validateGuest(g *model.Guest) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Email = strings.ToLower(strings.TrimSpace(g.Email))
	g.Phone = strings.TrimSpace(g.Phone)
	g.GroupName = strings.TrimSpace(g.GroupName)
	if g.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	return nil
}

// Create inserts a guest, generating a fresh invite token when none
// was supplied, and reads the stored row back onto the struct.
func (r *GuestRepo) Create(ctx context.Context, g *model.Guest) error {
	if err := validateGuest(g); err != nil {
		return err
	}
	if g.InviteToken == "" {
		g.InviteToken = uuid.NewString()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO guests (name, email, phone, invite_token, group_name, notes, max_companions)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.Name, g.Email, g.Phone, g.InviteToken, g.GroupName, g.Notes, g.MaxCompanions)
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

// Update rewrites a guest's administrative fields.  RSVP state is only
// written through ConfirmByToken; the invite-sent flags only through
// MarkInviteSent.
func (r *GuestRepo) Update(ctx context.Context, g *model.Guest) error {
	if err := validateGuest(g); err != nil {
		return err
	}
	// MySQL reports zero rows affected both for a missing id and for an
	// unchanged row, so existence is checked by the read-back instead.
	_, err := r.db.ExecContext(ctx,
		`UPDATE guests SET name = ?, email = ?, phone = ?, group_name = ?, notes = ?, max_companions = ?
		 WHERE id = ?`,
		g.Name, g.Email, g.Phone, g.GroupName, g.Notes, g.MaxCompanions, g.ID)
	if err != nil {
		return err
	}
	stored, err := r.GetByID(ctx, g.ID)
	if err != nil {
		return err
	}
	*g = stored
	return nil
}

// Delete removes a guest record.  Reservations keep their denormalized
// contributor name, so they survive the guest's removal.
func (r *GuestRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM guests WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrGuestNotFound
	}
	return nil
}

// GetByID returns a single guest or ErrGuestNotFound.
func (r *GuestRepo) GetByID(ctx context.Context, id uint64) (model.Guest, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+guestColumns+` FROM guests WHERE id = ?`, id)
	g, err := scanGuest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Guest{}, ErrGuestNotFound
	}
	return g, err
}

// GetByToken resolves an invite token to its guest.
func (r *GuestRepo) GetByToken(ctx context.Context, token string) (model.Guest, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+guestColumns+` FROM guests WHERE invite_token = ?`, token)
	g, err := scanGuest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Guest{}, ErrGuestNotFound
	}
	return g, err
}

// TouchView records one more opening of the guest's invite page.
func (r *GuestRepo) TouchView(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE guests SET viewed_at = NOW(), view_count = view_count + 1 WHERE id = ?`, id)
	return err
}

// ConfirmByToken stores the guest's RSVP.  The companion guard lives
// in the UPDATE so the max_companions limit cannot be raced past;
// zero rows affected is then split into unknown token vs too many
// companions.
func (r *GuestRepo) ConfirmByToken(ctx context.Context, token string, attending bool, companions uint32, message *string) (model.Guest, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE guests SET confirmed = ?, companion_count = ?, confirmed_at = NOW(), message = ?
		 WHERE invite_token = ? AND max_companions >= ?`,
		attending, companions, message, token, companions)
	if err != nil {
		return model.Guest{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Guest{}, err
	}
	if n == 0 {
		var max uint32
		err := r.db.QueryRowContext(ctx, `SELECT max_companions FROM guests WHERE invite_token = ?`, token).Scan(&max)
		if errors.Is(err, sql.ErrNoRows) {
			return model.Guest{}, ErrGuestNotFound
		}
		if err != nil {
			return model.Guest{}, err
		}
		if companions > max {
			return model.Guest{}, fmt.Errorf("%w: at most %d companions allowed", ErrValidation, max)
		}
		// Same RSVP submitted twice; fall through and return the row.
	}
	return r.GetByToken(ctx, token)
}

// MarkInviteSent flags a guest as invited after a successful dispatch.
func (r *GuestRepo) MarkInviteSent(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE guests SET invite_sent = 1, invite_sent_at = NOW() WHERE id = ?`, id)
	return err
}

// List returns guests filtered by group and/or confirmation state.
// Empty group and nil confirmed mean no filter.  Ordered by name for
// the admin table.
func (r *GuestRepo) List(ctx context.Context, group string, confirmed *bool) ([]model.Guest, error) {
	query := `SELECT ` + guestColumns + ` FROM guests`
	conds := make([]string, 0, 2)
	args := make([]interface{}, 0, 2)
	if group != "" {
		conds = append(conds, "group_name = ?")
		args = append(args, group)
	}
	if confirmed != nil {
		conds = append(conds, "confirmed = ?")
		args = append(args, *confirmed)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY name"
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	guests := make([]model.Guest, 0)
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, err
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}

// Statistics aggregates RSVP state across the whole directory plus a
// per-group breakdown, computed in SQL so the numbers come from one
// consistent snapshot.
func (r *GuestRepo) Statistics(ctx context.Context) (model.GuestStatistics, error) {
	var s model.GuestStatistics
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(confirmed), 0),
		        COALESCE(SUM(CASE WHEN confirmed THEN 1 + companion_count ELSE 0 END), 0),
		        COALESCE(SUM(invite_sent), 0)
		 FROM guests`).
		Scan(&s.Total, &s.Confirmed, &s.TotalPeople, &s.InvitesSent)
	if err != nil {
		return model.GuestStatistics{}, err
	}
	if s.Total > 0 {
		s.ConfirmationRate = float64(s.Confirmed) / float64(s.Total) * 100
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT group_name, COUNT(*),
		        COALESCE(SUM(confirmed), 0),
		        COALESCE(SUM(CASE WHEN confirmed THEN 1 + companion_count ELSE 0 END), 0)
		 FROM guests GROUP BY group_name ORDER BY group_name`)
	if err != nil {
		return model.GuestStatistics{}, err
	}
	defer rows.Close()
	s.ByGroup = make([]model.GroupStatistics, 0)
	for rows.Next() {
		var gs model.GroupStatistics
		if err := rows.Scan(&gs.GroupName, &gs.Total, &gs.Confirmed, &gs.TotalPeople); err != nil {
			return model.GuestStatistics{}, err
		}
		s.ByGroup = append(s.ByGroup, gs)
	}
	return s, rows.Err()
}
