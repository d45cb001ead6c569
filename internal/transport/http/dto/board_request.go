package dto

// -------- Boards --------

type CreateBoardRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Private bool   `json:"private"`
}

type UpdateBoardRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Private bool   `json:"private"`
}

// -------- Lists --------

type CreateListRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Position int    `json:"position" validate:"min=0"`
}

type UpdateListRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Position int    `json:"position" validate:"min=0"`
}

// -------- Cards --------

type CreateCardRequest struct {
	Title          string `json:"title" validate:"required,max=500"`
	Description    string `json:"description"`
	AssignedUserID string `json:"assigned_user_id"`
	Position       int    `json:"position" validate:"min=0"`
}

type UpdateCardRequest struct {
	Title       string `json:"title" validate:"required,max=500"`
	Description string `json:"description"`
	Position    int    `json:"position" validate:"min=0"`
}

type AssignCardRequest struct {
	AssignedUserID string `json:"assigned_user_id"`
}
