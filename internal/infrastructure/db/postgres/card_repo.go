package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/balekai/taskboard/internal/domain"
)

type CardRepo struct {
	db *sql.DB
}

func NewCardRepo(db *sql.DB) *CardRepo {
	return &CardRepo{db: db}
}

type cardRow struct {
	ID             int64
	ListID         int64
	Title          string
	Description    sql.NullString
	AssignedUserID sql.NullString
	Position       int
}

func toDomainCard(cr cardRow) domain.Card {
	return domain.Card{
		ID:             cr.ID,
		ListID:         cr.ListID,
		Title:          cr.Title,
		Description:    cr.Description.String,
		AssignedUserID: cr.AssignedUserID.String,
		Position:       cr.Position,
	}
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func (r *CardRepo) Create(ctx context.Context, c domain.Card) (domain.Card, error) {
	const q = `
INSERT INTO cards (list_id, title, description, assigned_user_id, position)
VALUES ($1,$2,$3,$4,$5)
RETURNING id;
`
	err := r.db.QueryRowContext(ctx, q,
		c.ListID, c.Title, nullable(c.Description), nullable(c.AssignedUserID), c.Position,
	).Scan(&c.ID)
	if err != nil {
		return domain.Card{}, domain.ErrDBUnavailable(err)
	}
	return c, nil
}

func (r *CardRepo) GetByID(ctx context.Context, id int64) (domain.Card, error) {
	const q = `
SELECT id, list_id, title, description, assigned_user_id, position
FROM cards
WHERE id = $1
LIMIT 1;
`
	var cr cardRow
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&cr.ID, &cr.ListID, &cr.Title, &cr.Description, &cr.AssignedUserID, &cr.Position)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Card{}, domain.ErrCardNotFound()
		}
		return domain.Card{}, domain.ErrDBUnavailable(err)
	}
	return toDomainCard(cr), nil
}

func (r *CardRepo) ListByList(ctx context.Context, listID int64) ([]domain.Card, error) {
	const q = `
SELECT id, list_id, title, description, assigned_user_id, position
FROM cards
WHERE list_id = $1
ORDER BY position, id;
`
	rows, err := r.db.QueryContext(ctx, q, listID)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	var out []domain.Card
	for rows.Next() {
		var cr cardRow
		if err := rows.Scan(&cr.ID, &cr.ListID, &cr.Title, &cr.Description, &cr.AssignedUserID, &cr.Position); err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, toDomainCard(cr))
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *CardRepo) Update(ctx context.Context, c domain.Card) error {
	const q = `
UPDATE cards
SET title = $2, description = $3, assigned_user_id = $4, position = $5
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q,
		c.ID, c.Title, nullable(c.Description), nullable(c.AssignedUserID), c.Position,
	)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrCardNotFound()
	}
	return nil
}

func (r *CardRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM cards WHERE id = $1;`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrCardNotFound()
	}
	return nil
}
