package board

import (
	"context"

	"github.com/balekai/taskboard/internal/domain"
)

// Service holds the board/list/card flows. Every operation receives the
// authenticated caller's id and applies the visibility/ownership policy
// before touching anything.
type Service struct {
	boards BoardRepo
	lists  ListRepo
	cards  CardRepo
	users  UserGetter
}

func NewService(boards BoardRepo, lists ListRepo, cards CardRepo, users UserGetter) *Service {
	return &Service{boards: boards, lists: lists, cards: cards, users: users}
}

// ---- boards ----

func (s *Service) CreateBoard(ctx context.Context, callerID, name string, private bool) (domain.Board, error) {
	if name == "" {
		return domain.Board{}, domain.ErrMissingField("name")
	}
	b := domain.NewStandardBoard(name, callerID)
	if private {
		b = domain.NewPrivateBoard(name, callerID)
	}
	return s.boards.Create(ctx, b)
}

func (s *Service) GetBoard(ctx context.Context, callerID string, id int64) (domain.Board, error) {
	b, err := s.boards.GetByID(ctx, id)
	if err != nil {
		return domain.Board{}, err
	}
	// Hidden boards read as absent; a 403 would confirm they exist.
	if !b.VisibleTo(callerID) {
		return domain.Board{}, domain.ErrBoardNotFound()
	}
	return b, nil
}

func (s *Service) ListBoards(ctx context.Context, callerID string) ([]domain.Board, error) {
	return s.boards.ListVisible(ctx, callerID)
}

func (s *Service) UpdateBoard(ctx context.Context, callerID string, id int64, name string, private bool) (domain.Board, error) {
	b, err := s.GetBoard(ctx, callerID, id)
	if err != nil {
		return domain.Board{}, err
	}
	if !b.EditableBy(callerID) {
		return domain.Board{}, domain.ErrNotBoardOwner()
	}
	if name != "" {
		b.Name = name
	}
	b.Private = private
	if err := s.boards.Update(ctx, b); err != nil {
		return domain.Board{}, err
	}
	return b, nil
}

func (s *Service) DeleteBoard(ctx context.Context, callerID string, id int64) error {
	b, err := s.GetBoard(ctx, callerID, id)
	if err != nil {
		return err
	}
	if !b.EditableBy(callerID) {
		return domain.ErrNotBoardOwner()
	}
	return s.boards.Delete(ctx, id)
}

// ---- lists ----

func (s *Service) CreateList(ctx context.Context, callerID string, boardID int64, name string, position int) (domain.List, error) {
	if name == "" {
		return domain.List{}, domain.ErrMissingField("name")
	}
	b, err := s.GetBoard(ctx, callerID, boardID)
	if err != nil {
		return domain.List{}, err
	}
	if !b.EditableBy(callerID) {
		return domain.List{}, domain.ErrNotBoardOwner()
	}
	return s.lists.Create(ctx, domain.List{BoardID: boardID, Name: name, Position: position})
}

func (s *Service) ListsForBoard(ctx context.Context, callerID string, boardID int64) ([]domain.List, error) {
	if _, err := s.GetBoard(ctx, callerID, boardID); err != nil {
		return nil, err
	}
	return s.lists.ListByBoard(ctx, boardID)
}

func (s *Service) UpdateList(ctx context.Context, callerID string, listID int64, name string, position int) (domain.List, error) {
	l, err := s.lists.GetByID(ctx, listID)
	if err != nil {
		return domain.List{}, err
	}
	b, err := s.GetBoard(ctx, callerID, l.BoardID)
	if err != nil {
		return domain.List{}, err
	}
	if !b.EditableBy(callerID) {
		return domain.List{}, domain.ErrNotBoardOwner()
	}
	if name != "" {
		l.Name = name
	}
	l.Position = position
	if err := s.lists.Update(ctx, l); err != nil {
		return domain.List{}, err
	}
	return l, nil
}

func (s *Service) DeleteList(ctx context.Context, callerID string, listID int64) error {
	l, err := s.lists.GetByID(ctx, listID)
	if err != nil {
		return err
	}
	b, err := s.GetBoard(ctx, callerID, l.BoardID)
	if err != nil {
		return err
	}
	if !b.EditableBy(callerID) {
		return domain.ErrNotBoardOwner()
	}
	return s.lists.Delete(ctx, listID)
}

// ---- cards ----

func (s *Service) CreateCard(ctx context.Context, callerID string, listID int64, title, description, assigneeID string) (domain.Card, error) {
	if title == "" {
		return domain.Card{}, domain.ErrMissingField("title")
	}
	l, err := s.lists.GetByID(ctx, listID)
	if err != nil {
		return domain.Card{}, err
	}
	b, err := s.GetBoard(ctx, callerID, l.BoardID)
	if err != nil {
		return domain.Card{}, err
	}
	if !b.EditableBy(callerID) {
		return domain.Card{}, domain.ErrNotBoardOwner()
	}
	if assigneeID != "" {
		if _, err := s.users.GetByID(ctx, assigneeID); err != nil {
			return domain.Card{}, err
		}
	}
	return s.cards.Create(ctx, domain.Card{
		ListID:         listID,
		Title:          title,
		Description:    description,
		AssignedUserID: assigneeID,
	})
}

func (s *Service) CardsForList(ctx context.Context, callerID string, listID int64) ([]domain.Card, error) {
	l, err := s.lists.GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetBoard(ctx, callerID, l.BoardID); err != nil {
		return nil, err
	}
	return s.cards.ListByList(ctx, listID)
}

func (s *Service) UpdateCard(ctx context.Context, callerID string, cardID int64, title, description string, position int) (domain.Card, error) {
	c, b, err := s.cardWithBoard(ctx, callerID, cardID)
	if err != nil {
		return domain.Card{}, err
	}
	if !b.EditableBy(callerID) {
		return domain.Card{}, domain.ErrNotBoardOwner()
	}
	if title != "" {
		c.Title = title
	}
	c.Description = description
	c.Position = position
	if err := s.cards.Update(ctx, c); err != nil {
		return domain.Card{}, err
	}
	return c, nil
}

func (s *Service) AssignCard(ctx context.Context, callerID string, cardID int64, assigneeID string) (domain.Card, error) {
	c, b, err := s.cardWithBoard(ctx, callerID, cardID)
	if err != nil {
		return domain.Card{}, err
	}
	if !b.EditableBy(callerID) {
		return domain.Card{}, domain.ErrNotBoardOwner()
	}
	if assigneeID != "" {
		if _, err := s.users.GetByID(ctx, assigneeID); err != nil {
			return domain.Card{}, err
		}
	}
	c.AssignedUserID = assigneeID
	if err := s.cards.Update(ctx, c); err != nil {
		return domain.Card{}, err
	}
	return c, nil
}

func (s *Service) DeleteCard(ctx context.Context, callerID string, cardID int64) error {
	_, b, err := s.cardWithBoard(ctx, callerID, cardID)
	if err != nil {
		return err
	}
	if !b.EditableBy(callerID) {
		return domain.ErrNotBoardOwner()
	}
	return s.cards.Delete(ctx, cardID)
}

func (s *Service) cardWithBoard(ctx context.Context, callerID string, cardID int64) (domain.Card, domain.Board, error) {
	c, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return domain.Card{}, domain.Board{}, err
	}
	l, err := s.lists.GetByID(ctx, c.ListID)
	if err != nil {
		return domain.Card{}, domain.Board{}, err
	}
	b, err := s.GetBoard(ctx, callerID, l.BoardID)
	if err != nil {
		return domain.Card{}, domain.Board{}, err
	}
	return c, b, nil
}
