package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/balekai/taskboard/internal/domain"
)

type BoardRepo struct {
	db *sql.DB
}

func NewBoardRepo(db *sql.DB) *BoardRepo {
	return &BoardRepo{db: db}
}

func (r *BoardRepo) Create(ctx context.Context, b domain.Board) (domain.Board, error) {
	const q = `
INSERT INTO boards (name, owner_id, private)
VALUES ($1,$2,$3)
RETURNING id;
`
	if err := r.db.QueryRowContext(ctx, q, b.Name, b.OwnerID, b.Private).Scan(&b.ID); err != nil {
		return domain.Board{}, domain.ErrDBUnavailable(err)
	}
	return b, nil
}

func (r *BoardRepo) GetByID(ctx context.Context, id int64) (domain.Board, error) {
	const q = `
SELECT id, name, owner_id, private
FROM boards
WHERE id = $1
LIMIT 1;
`
	var b domain.Board
	err := r.db.QueryRowContext(ctx, q, id).Scan(&b.ID, &b.Name, &b.OwnerID, &b.Private)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Board{}, domain.ErrBoardNotFound()
		}
		return domain.Board{}, domain.ErrDBUnavailable(err)
	}
	return b, nil
}

func (r *BoardRepo) ListVisible(ctx context.Context, userID string) ([]domain.Board, error) {
	const q = `
SELECT id, name, owner_id, private
FROM boards
WHERE private = FALSE OR owner_id = $1
ORDER BY id;
`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	var out []domain.Board
	for rows.Next() {
		var b domain.Board
		if err := rows.Scan(&b.ID, &b.Name, &b.OwnerID, &b.Private); err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *BoardRepo) Update(ctx context.Context, b domain.Board) error {
	const q = `
UPDATE boards
SET name = $2, private = $3
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q, b.ID, b.Name, b.Private)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrBoardNotFound()
	}
	return nil
}

func (r *BoardRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM boards WHERE id = $1;`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrBoardNotFound()
	}
	return nil
}
