package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/karting-reservation/internal/model"
)

// KartRepo stores karts in the `karts` table.
type KartRepo struct {
	db *sql.DB
}

func NewKartRepo(db *sql.DB) *KartRepo { return &KartRepo{db: db} }

// Create inserts k and populates its generated ID.
func (r *KartRepo) Create(ctx context.Context, k *model.Kart) error {
	res, err := r.db.ExecContext(ctx, "INSERT INTO karts (codigo, estado) VALUES (?, ?)", k.Code, k.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	k.ID = uint64(id)
	return nil
}

// GetByID returns ErrKartNotFound when no row matches.
func (r *KartRepo) GetByID(ctx context.Context, id uint64) (*model.Kart, error) {
	var k model.Kart
	err := r.db.QueryRowContext(ctx, "SELECT id, codigo, estado FROM karts WHERE id = ?", id).
		Scan(&k.ID, &k.Code, &k.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKartNotFound
		}
		return nil, err
	}
	return &k, nil
}

func (r *KartRepo) ListAll(ctx context.Context) ([]model.Kart, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, codigo, estado FROM karts ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Kart{}
	for rows.Next() {
		var k model.Kart
		if err := rows.Scan(&k.ID, &k.Code, &k.Status); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
