package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/karting-reservation/internal/model"
)

// ReservationRepo persists reservations in the `reservas` table and their
// many-to-many associations in `reserva_clientes` and `reserva_karts`.
// The position column keeps customers and karts in request order.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, numero_vueltas, fecha_reserva, hora_reserva,
	precio_base, precio_final, duracion_total,
	descuento_por_personas, descuento_por_visitas, descuento_por_cumpleanos,
	descuento_total, numero_personas`

// Create inserts the reservation and its associations in one transaction
// and returns the stored copy with its generated ID.
func (r *ReservationRepo) Create(ctx context.Context, res model.Reservation) (model.Reservation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Reservation{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const q = `INSERT INTO reservas (numero_vueltas, fecha_reserva, hora_reserva,
	               precio_base, precio_final, duracion_total,
	               descuento_por_personas, descuento_por_visitas, descuento_por_cumpleanos,
	               descuento_total, numero_personas)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q,
		res.Laps, nullDate(res.Date), nullTimeOfDay(res.StartTime),
		res.BasePrice, res.FinalPrice, res.Duration,
		res.GroupDiscount, res.VisitDiscount, res.BirthdayDiscount,
		res.TotalDiscount, res.Persons,
	)
	if err != nil {
		return model.Reservation{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return model.Reservation{}, err
	}

	if err := insertLinksTx(ctx, tx, "reserva_clientes", "cliente_id", uint64(id), res.CustomerIDs()); err != nil {
		return model.Reservation{}, err
	}
	if err := insertLinksTx(ctx, tx, "reserva_karts", "kart_id", uint64(id), res.KartIDs()); err != nil {
		return model.Reservation{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Reservation{}, err
	}
	committed = true

	out := res.Clone()
	out.ID = uint64(id)
	return out, nil
}

// insertLinksTx writes one association row per id in a single statement.
// Passing no ids has no effect.
func insertLinksTx(ctx context.Context, tx *sql.Tx, table, column string, reservationID uint64, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	query := "INSERT INTO " + table + " (reserva_id, " + column + ", posicion) VALUES "
	args := make([]any, 0, len(ids)*3)
	for i, id := range ids {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, reservationID, id, i)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// GetByID loads one reservation with its customers and karts.  It returns
// ErrReservationNotFound when no row matches.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	out, err := r.query(ctx, "SELECT "+reservationColumns+" FROM reservas WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrReservationNotFound
	}
	return &out[0], nil
}

// ListAll returns every reservation ordered by id.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]model.Reservation, error) {
	return r.query(ctx, "SELECT "+reservationColumns+" FROM reservas ORDER BY id")
}

// ListByDateRange returns reservations whose date lies within [from, to].
func (r *ReservationRepo) ListByDateRange(ctx context.Context, from, to model.Date) ([]model.Reservation, error) {
	return r.query(ctx,
		"SELECT "+reservationColumns+" FROM reservas WHERE fecha_reserva BETWEEN ? AND ? ORDER BY id",
		from.String(), to.String())
}

// query scans reservation rows and then loads their associations with one
// query per association table.
func (r *ReservationRepo) query(ctx context.Context, q string, args ...any) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Reservation{}
	for rows.Next() {
		var res model.Reservation
		var date sql.NullTime
		var start sql.NullString
		if err := rows.Scan(
			&res.ID, &res.Laps, &date, &start,
			&res.BasePrice, &res.FinalPrice, &res.Duration,
			&res.GroupDiscount, &res.VisitDiscount, &res.BirthdayDiscount,
			&res.TotalDiscount, &res.Persons,
		); err != nil {
			return nil, err
		}
		res.Date = dateFromNull(date)
		if start.Valid && strings.TrimSpace(start.String) != "" {
			t, err := model.ParseTimeOfDay(start.String)
			if err != nil {
				return nil, err
			}
			res.StartTime = &t
		}
		res.Customers = []model.Customer{}
		res.Karts = []model.Kart{}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}
	if err := r.loadAssociations(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ReservationRepo) loadAssociations(ctx context.Context, list []model.Reservation) error {
	index := make(map[uint64]int, len(list))
	placeholders := make([]string, 0, len(list))
	args := make([]any, 0, len(list))
	for i, res := range list {
		index[res.ID] = i
		placeholders = append(placeholders, "?")
		args = append(args, res.ID)
	}
	in := strings.Join(placeholders, ",")

	customerRows, err := r.db.QueryContext(ctx,
		`SELECT rc.reserva_id, c.id, c.nombre, c.numero_visitas, c.fecha_nacimiento, c.email
		 FROM reserva_clientes rc
		 JOIN clientes c ON c.id = rc.cliente_id
		 WHERE rc.reserva_id IN (`+in+`)
		 ORDER BY rc.reserva_id, rc.posicion`, args...)
	if err != nil {
		return err
	}
	defer customerRows.Close()
	for customerRows.Next() {
		var resID uint64
		var c model.Customer
		var birth sql.NullTime
		if err := customerRows.Scan(&resID, &c.ID, &c.Name, &c.Visits, &birth, &c.Email); err != nil {
			return err
		}
		c.BirthDate = dateFromNull(birth)
		if i, ok := index[resID]; ok {
			list[i].Customers = append(list[i].Customers, c)
		}
	}
	if err := customerRows.Err(); err != nil {
		return err
	}

	kartRows, err := r.db.QueryContext(ctx,
		`SELECT rk.reserva_id, k.id, k.codigo, k.estado
		 FROM reserva_karts rk
		 JOIN karts k ON k.id = rk.kart_id
		 WHERE rk.reserva_id IN (`+in+`)
		 ORDER BY rk.reserva_id, rk.posicion`, args...)
	if err != nil {
		return err
	}
	defer kartRows.Close()
	for kartRows.Next() {
		var resID uint64
		var k model.Kart
		if err := kartRows.Scan(&resID, &k.ID, &k.Code, &k.Status); err != nil {
			return err
		}
		if i, ok := index[resID]; ok {
			list[i].Karts = append(list[i].Karts, k)
		}
	}
	return kartRows.Err()
}

func nullTimeOfDay(t *model.TimeOfDay) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.String(), Valid: true}
}
