package domain

// Board is a top-level container of lists. OwnerID references User.ID and is
// repointed by the account linker when an identity migrates; after a link no
// board may reference an id that no longer exists.
type Board struct {
	ID      int64
	Name    string
	OwnerID string
	Private bool
}

// NewStandardBoard creates a board visible to every authenticated user.
func NewStandardBoard(name, ownerID string) Board {
	return Board{Name: name, OwnerID: ownerID, Private: false}
}

// NewPrivateBoard creates a board visible only to its owner.
func NewPrivateBoard(name, ownerID string) Board {
	return Board{Name: name, OwnerID: ownerID, Private: true}
}

// VisibleTo is the access policy for reads: private boards are gated to
// their owner, public boards are open to any authenticated user.
func (b Board) VisibleTo(userID string) bool {
	if !b.Private {
		return true
	}
	return b.OwnerID == userID
}

// EditableBy is the access policy for writes: only the owner mutates a board
// or anything inside it.
func (b Board) EditableBy(userID string) bool {
	return b.OwnerID == userID
}
