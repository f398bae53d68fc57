package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelfside/boardgame-tracker/internal/form"
	"github.com/shelfside/boardgame-tracker/internal/store"
	"github.com/shelfside/boardgame-tracker/pkg/response"
)

// FormHandler exposes the two submission forms and the two-phase play
// deletion. Validation failures answer with the field details and never
// reach the backend.
type FormHandler struct {
	addGame    *form.AddGame
	recordPlay *form.RecordPlay
	plays      *store.Plays
}

func NewFormHandler(addGame *form.AddGame, recordPlay *form.RecordPlay, plays *store.Plays) *FormHandler {
	return &FormHandler{addGame: addGame, recordPlay: recordPlay, plays: plays}
}

func (h *FormHandler) Register(r *gin.RouterGroup) {
	forms := r.Group("/forms")
	{
		forms.POST("/add-game", h.submitAddGame)
		forms.POST("/record-play", h.submitRecordPlay)
		forms.POST("/delete-play/:id", h.requestDeletePlay)
		forms.POST("/delete-play/:id/confirm", h.confirmDeletePlay)
		forms.POST("/delete-play/:id/cancel", h.cancelDeletePlay)
	}
}

func (h *FormHandler) submitAddGame(c *gin.Context) {
	var draft form.AddGameDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.WriteError(c, form.ErrInvalidInput)
		return
	}
	h.addGame.SetDraft(draft)
	if err := h.addGame.Submit(c.Request.Context()); err != nil {
		if fields := form.FieldErrors(err); fields != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, response.Envelope{
				Success: false,
				Data:    gin.H{"fieldErrors": fields},
				Error:   err.Error(),
				Status:  http.StatusBadRequest,
			})
			return
		}
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, gin.H{"status": "created"})
}

func (h *FormHandler) submitRecordPlay(c *gin.Context) {
	var draft form.RecordPlayDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.WriteError(c, form.ErrInvalidInput)
		return
	}
	h.recordPlay.SetDraft(draft)
	if err := h.recordPlay.Submit(c.Request.Context()); err != nil {
		if fields := form.FieldErrors(err); fields != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, response.Envelope{
				Success: false,
				Data:    gin.H{"fieldErrors": fields},
				Error:   err.Error(),
				Status:  http.StatusBadRequest,
			})
			return
		}
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, gin.H{"status": "created"})
}

func (h *FormHandler) requestDeletePlay(c *gin.Context) {
	h.plays.RequestDelete(c.Param("id"))
	response.WriteData(c, http.StatusOK, gin.H{"status": "confirmation required"})
}

func (h *FormHandler) confirmDeletePlay(c *gin.Context) {
	pending, ok := h.plays.PendingDelete()
	if !ok || pending != c.Param("id") {
		response.WriteError(c, store.ErrNoPendingDelete)
		return
	}
	if err := h.plays.ConfirmDelete(c.Request.Context()); err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, gin.H{"status": "deleted"})
}

func (h *FormHandler) cancelDeletePlay(c *gin.Context) {
	h.plays.CancelDelete()
	response.WriteData(c, http.StatusOK, gin.H{"status": "cancelled"})
}
