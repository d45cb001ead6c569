package domain

// Card lives on a list. AssignedUserID references User.ID (empty when
// unassigned) and is repointed by the account linker on identity migration.
type Card struct {
	ID             int64
	ListID         int64
	Title          string
	Description    string
	AssignedUserID string
	Position       int
}
