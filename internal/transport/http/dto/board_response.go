package dto

import "github.com/balekai/taskboard/internal/domain"

type BoardView struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID string `json:"owner_id"`
	Private bool   `json:"private"`
}

func NewBoardView(b domain.Board) BoardView {
	return BoardView{ID: b.ID, Name: b.Name, OwnerID: b.OwnerID, Private: b.Private}
}

func NewBoardViews(bs []domain.Board) []BoardView {
	out := make([]BoardView, 0, len(bs))
	for _, b := range bs {
		out = append(out, NewBoardView(b))
	}
	return out
}

type ListView struct {
	ID       int64  `json:"id"`
	BoardID  int64  `json:"board_id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

func NewListView(l domain.List) ListView {
	return ListView{ID: l.ID, BoardID: l.BoardID, Name: l.Name, Position: l.Position}
}

func NewListViews(ls []domain.List) []ListView {
	out := make([]ListView, 0, len(ls))
	for _, l := range ls {
		out = append(out, NewListView(l))
	}
	return out
}

type CardView struct {
	ID             int64  `json:"id"`
	ListID         int64  `json:"list_id"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	AssignedUserID string `json:"assigned_user_id,omitempty"`
	Position       int    `json:"position"`
}

func NewCardView(c domain.Card) CardView {
	return CardView{
		ID:             c.ID,
		ListID:         c.ListID,
		Title:          c.Title,
		Description:    c.Description,
		AssignedUserID: c.AssignedUserID,
		Position:       c.Position,
	}
}

func NewCardViews(cs []domain.Card) []CardView {
	out := make([]CardView, 0, len(cs))
	for _, c := range cs {
		out = append(out, NewCardView(c))
	}
	return out
}
