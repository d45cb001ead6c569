package domain

// List is a named column on a board.
type List struct {
	ID       int64
	BoardID  int64
	Name     string
	Position int
}
