package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/habitly/backend/api/transport"
	"github.com/habitly/backend/domain"
	"github.com/habitly/backend/pkg/httpcontext"
	habitUC "github.com/habitly/backend/usecase/habit"
)

type HabitHandler struct {
	baseHandler
	uc *habitUC.UseCase
}

func NewHabitHandler(uc *habitUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *HabitHandler {
	return &HabitHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Latest public habits
// @Tags habits
// @Router /habits/featured [get]
func (h *HabitHandler) Featured(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	habits, err := h.uc.Featured(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, habits)
}

// @Summary Browse public habits
// @Tags habits
// @Router /habits/public [get]
func (h *HabitHandler) Public(ctx *fasthttp.RequestCtx) {
	search := string(ctx.QueryArgs().Peek("search"))
	category := string(ctx.QueryArgs().Peek("category"))
	limit := parseInt(string(ctx.QueryArgs().Peek("limit")), 0)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	habits, err := h.uc.Public(stdCtx, search, category, limit)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, habits)
}

// @Summary List the caller's habits
// @Tags habits
// @Router /habits/my [get]
func (h *HabitHandler) Mine(ctx *fasthttp.RequestCtx) {
	ident := h.identity(ctx)
	if ident == nil {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	habits, err := h.uc.Mine(stdCtx, ident.UserID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, habits)
}

// @Summary Get a habit by id
// @Tags habits
// @Router /habits/{id} [get]
func (h *HabitHandler) Get(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	habit, err := h.uc.Get(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, habit)
}

// @Summary Create a habit
// @Tags habits
// @Router /habits [post]
func (h *HabitHandler) Create(ctx *fasthttp.RequestCtx) {
	ident := h.identity(ctx)
	if ident == nil {
		return
	}

	var req transport.HabitCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	habit := &domain.Habit{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		ReminderTime: req.ReminderTime,
		Image:        req.Image,
		OwnerName:    req.OwnerName,
		OwnerEmail:   req.OwnerEmail,
		Public:       true,
	}
	if req.Public != nil {
		habit.Public = *req.Public
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, ident, habit)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update a habit's descriptive fields
// @Tags habits
// @Router /habits/{id} [patch]
func (h *HabitHandler) Update(ctx *fasthttp.RequestCtx) {
	ident := h.identity(ctx)
	if ident == nil {
		return
	}

	id, _ := ctx.UserValue("id").(string)

	var req transport.HabitUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	patch := domain.HabitPatch{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		ReminderTime: req.ReminderTime,
		Image:        req.Image,
		Public:       req.Public,
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Update(stdCtx, id, ident.UserID, patch); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// @Summary Delete a habit
// @Tags habits
// @Router /habits/{id} [delete]
func (h *HabitHandler) Delete(ctx *fasthttp.RequestCtx) {
	ident := h.identity(ctx)
	if ident == nil {
		return
	}

	id, _ := ctx.UserValue("id").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, id, ident.UserID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// @Summary Record today's completion
// @Tags habits
// @Router /habits/{id}/complete [patch]
func (h *HabitHandler) Complete(ctx *fasthttp.RequestCtx) {
	ident := h.identity(ctx)
	if ident == nil {
		return
	}

	id, _ := ctx.UserValue("id").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	history, streak, err := h.uc.Complete(stdCtx, id, ident.UserID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.CompletionResponse{
		CompletionHistory: history,
		Streak:            streak,
	})
}
