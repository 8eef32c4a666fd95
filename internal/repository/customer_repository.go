package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/karting-reservation/internal/model"
)

// CustomerRepo stores customers in the `clientes` table.
type CustomerRepo struct {
	db *sql.DB // db is the underlying connection pool
}

// NewCustomerRepo constructs a CustomerRepo with the provided DB handle.
func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{db: db} }

const customerColumns = "id, nombre, numero_visitas, fecha_nacimiento, email"

// Create inserts c and populates its generated ID.
func (r *CustomerRepo) Create(ctx context.Context, c *model.Customer) error {
	const q = "INSERT INTO clientes (nombre, numero_visitas, fecha_nacimiento, email) VALUES (?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, q, c.Name, c.Visits, nullDate(c.BirthDate), c.Email)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// Update overwrites every column of the row identified by c.ID.  MySQL
// reports zero affected rows when nothing changed, so existence is not
// inferred from the result; callers look the customer up first.
func (r *CustomerRepo) Update(ctx context.Context, c *model.Customer) error {
	const q = `UPDATE clientes
	           SET nombre = ?, numero_visitas = ?, fecha_nacimiento = ?, email = ?
	           WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, c.Name, c.Visits, nullDate(c.BirthDate), c.Email, c.ID)
	return err
}

// GetByID returns ErrCustomerNotFound when no row matches.
func (r *CustomerRepo) GetByID(ctx context.Context, id uint64) (*model.Customer, error) {
	q := "SELECT " + customerColumns + " FROM clientes WHERE id = ?"
	c, err := scanCustomer(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return c, nil
}

// ListAll returns all customers ordered by id.
func (r *CustomerRepo) ListAll(ctx context.Context) ([]model.Customer, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+customerColumns+" FROM clientes ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(s rowScanner) (*model.Customer, error) {
	var c model.Customer
	var birth sql.NullTime
	if err := s.Scan(&c.ID, &c.Name, &c.Visits, &birth, &c.Email); err != nil {
		return nil, err
	}
	c.BirthDate = dateFromNull(birth)
	return &c, nil
}

func nullDate(d *model.Date) sql.NullTime {
	if d == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: d.Time, Valid: true}
}

func dateFromNull(t sql.NullTime) *model.Date {
	if !t.Valid {
		return nil
	}
	d := model.DateOf(t.Time)
	return &d
}
