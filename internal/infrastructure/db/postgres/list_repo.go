package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/balekai/taskboard/internal/domain"
)

type ListRepo struct {
	db *sql.DB
}

func NewListRepo(db *sql.DB) *ListRepo {
	return &ListRepo{db: db}
}

func (r *ListRepo) Create(ctx context.Context, l domain.List) (domain.List, error) {
	const q = `
INSERT INTO lists (board_id, name, position)
VALUES ($1,$2,$3)
RETURNING id;
`
	if err := r.db.QueryRowContext(ctx, q, l.BoardID, l.Name, l.Position).Scan(&l.ID); err != nil {
		return domain.List{}, domain.ErrDBUnavailable(err)
	}
	return l, nil
}

func (r *ListRepo) GetByID(ctx context.Context, id int64) (domain.List, error) {
	const q = `
SELECT id, board_id, name, position
FROM lists
WHERE id = $1
LIMIT 1;
`
	var l domain.List
	err := r.db.QueryRowContext(ctx, q, id).Scan(&l.ID, &l.BoardID, &l.Name, &l.Position)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.List{}, domain.ErrListNotFound()
		}
		return domain.List{}, domain.ErrDBUnavailable(err)
	}
	return l, nil
}

func (r *ListRepo) ListByBoard(ctx context.Context, boardID int64) ([]domain.List, error) {
	const q = `
SELECT id, board_id, name, position
FROM lists
WHERE board_id = $1
ORDER BY position, id;
`
	rows, err := r.db.QueryContext(ctx, q, boardID)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	var out []domain.List
	for rows.Next() {
		var l domain.List
		if err := rows.Scan(&l.ID, &l.BoardID, &l.Name, &l.Position); err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *ListRepo) Update(ctx context.Context, l domain.List) error {
	const q = `
UPDATE lists
SET name = $2, position = $3
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q, l.ID, l.Name, l.Position)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrListNotFound()
	}
	return nil
}

func (r *ListRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM lists WHERE id = $1;`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrListNotFound()
	}
	return nil
}
