package http_handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/balekai/taskboard/internal/application/board"
	"github.com/balekai/taskboard/internal/domain"
	"github.com/balekai/taskboard/internal/transport/http/dto"
	"github.com/balekai/taskboard/internal/transport/http/middleware"
	"github.com/balekai/taskboard/internal/transport/http/response"
)

type BoardHandler struct {
	svc *board.Service
}

func NewBoardHandler(svc *board.Service) *BoardHandler {
	return &BoardHandler{svc: svc}
}

func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return "", false
	}
	return uid, true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		response.WriteError(w, r, domain.ErrInvalidField(name, "must be an integer"))
		return 0, false
	}
	return id, true
}

// ---- boards ----

func (h *BoardHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}

	var req dto.CreateBoardRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := dto.Validate(&req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	b, err := h.svc.CreateBoard(r.Context(), uid, req.Name, req.Private)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.Created(w, dto.NewBoardView(b))
}

func (h *BoardHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}

	boards, err := h.svc.ListBoards(r.Context(), uid)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewBoardViews(boards))
}

func (h *BoardHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "boardID")
	if !ok {
		return
	}

	b, err := h.svc.GetBoard(r.Context(), uid, id)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewBoardView(b))
}

func (h *BoardHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "boardID")
	if !ok {
		return
	}

	var req dto.UpdateBoardRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := dto.Validate(&req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	b, err := h.svc.UpdateBoard(r.Context(), uid, id, req.Name, req.Private)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewBoardView(b))
}

func (h *BoardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "boardID")
	if !ok {
		return
	}

	if err := h.svc.DeleteBoard(r.Context(), uid, id); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.NoContent(w)
}

// ---- lists ----

func (h *BoardHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	boardID, ok := pathID(w, r, "boardID")
	if !ok {
		return
	}

	var req dto.CreateListRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := dto.Validate(&req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	l, err := h.svc.CreateList(r.Context(), uid, boardID, req.Name, req.Position)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.Created(w, dto.NewListView(l))
}

func (h *BoardHandler) Lists(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	boardID, ok := pathID(w, r, "boardID")
	if !ok {
		return
	}

	lists, err := h.svc.ListsForBoard(r.Context(), uid, boardID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewListViews(lists))
}

func (h *BoardHandler) UpdateList(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	listID, ok := pathID(w, r, "listID")
	if !ok {
		return
	}

	var req dto.UpdateListRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := dto.Validate(&req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	l, err := h.svc.UpdateList(r.Context(), uid, listID, req.Name, req.Position)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewListView(l))
}

func (h *BoardHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	listID, ok := pathID(w, r, "listID")
	if !ok {
		return
	}

	if err := h.svc.DeleteList(r.Context(), uid, listID); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.NoContent(w)
}

// ---- cards ----

func (h *BoardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	listID, ok := pathID(w, r, "listID")
	if !ok {
		return
	}

	var req dto.CreateCardRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := dto.Validate(&req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	c, err := h.svc.CreateCard(r.Context(), uid, listID, req.Title, req.Description, req.AssignedUserID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.Created(w, dto.NewCardView(c))
}

func (h *BoardHandler) Cards(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	listID, ok := pathID(w, r, "listID")
	if !ok {
		return
	}

	cards, err := h.svc.CardsForList(r.Context(), uid, listID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewCardViews(cards))
}

func (h *BoardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	cardID, ok := pathID(w, r, "cardID")
	if !ok {
		return
	}

	var req dto.UpdateCardRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := dto.Validate(&req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	c, err := h.svc.UpdateCard(r.Context(), uid, cardID, req.Title, req.Description, req.Position)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewCardView(c))
}

func (h *BoardHandler) AssignCard(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	cardID, ok := pathID(w, r, "cardID")
	if !ok {
		return
	}

	var req dto.AssignCardRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	c, err := h.svc.AssignCard(r.Context(), uid, cardID, req.AssignedUserID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewCardView(c))
}

func (h *BoardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	cardID, ok := pathID(w, r, "cardID")
	if !ok {
		return
	}

	if err := h.svc.DeleteCard(r.Context(), uid, cardID); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.NoContent(w)
}
