package board

import (
	"context"

	"github.com/balekai/taskboard/internal/domain"
)

// BoardRepo is the persistence port for boards.
type BoardRepo interface {
	Create(ctx context.Context, b domain.Board) (domain.Board, error)
	GetByID(ctx context.Context, id int64) (domain.Board, error)
	// ListVisible returns public boards plus the caller's private boards.
	ListVisible(ctx context.Context, userID string) ([]domain.Board, error)
	Update(ctx context.Context, b domain.Board) error
	Delete(ctx context.Context, id int64) error
}

type ListRepo interface {
	Create(ctx context.Context, l domain.List) (domain.List, error)
	GetByID(ctx context.Context, id int64) (domain.List, error)
	ListByBoard(ctx context.Context, boardID int64) ([]domain.List, error)
	Update(ctx context.Context, l domain.List) error
	Delete(ctx context.Context, id int64) error
}

type CardRepo interface {
	Create(ctx context.Context, c domain.Card) (domain.Card, error)
	GetByID(ctx context.Context, id int64) (domain.Card, error)
	ListByList(ctx context.Context, listID int64) ([]domain.Card, error)
	Update(ctx context.Context, c domain.Card) error
	Delete(ctx context.Context, id int64) error
}

// UserGetter is the slice of the user store this service needs: assignees
// must reference an existing account.
type UserGetter interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
}
