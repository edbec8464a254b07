package handlers

import (
	"errors"
	"net/http"

	"helpdesk/internal/middleware"
	"helpdesk/internal/models"
	"helpdesk/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/guregu/null/v5"
)

type TicketHandler struct {
	store *storage.Store
}

func NewTicketHandler(store *storage.Store) *TicketHandler {
	return &TicketHandler{store: store}
}

type createTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// null.String distinguishes an absent field from an empty one, so a PUT
// only overwrites what the caller actually sent.
type updateTicketRequest struct {
	Title       null.String `json:"title"`
	Description null.String `json:"description"`
	Status      null.String `json:"status"`
}

func (h *TicketHandler) Create(c *gin.Context) {
	var req createTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" || req.Description == "" {
		errorJSON(c, http.StatusBadRequest, "title and description are required")
		return
	}

	p := middleware.Principal(c)
	ticket := models.Ticket{
		Title:       req.Title,
		Description: req.Description,
		UserID:      p.ID,
		Status:      models.StatusOpen,
	}
	if err := h.store.CreateTicket(c.Request.Context(), &ticket); err != nil {
		errorJSON(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Ticket created", "id": ticket.ID})
}

// List returns every ticket for admins and only owned tickets for
// everyone else, in insertion order.
func (h *TicketHandler) List(c *gin.Context) {
	p := middleware.Principal(c)

	var (
		tickets []models.Ticket
		err     error
	)
	if p.IsAdmin() {
		tickets, err = h.store.ListTickets(c.Request.Context())
	} else {
		tickets, err = h.store.ListTicketsByOwner(c.Request.Context(), p.ID)
	}
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, tickets)
}

// Get hides foreign tickets behind the same 404 as missing ones, so
// callers cannot probe which ids exist.
func (h *TicketHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		errorJSON(c, http.StatusNotFound, "Ticket not found or access denied")
		return
	}

	p := middleware.Principal(c)
	ticket, err := h.store.TicketByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			errorJSON(c, http.StatusNotFound, "Ticket not found or access denied")
			return
		}
		errorJSON(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !p.IsAdmin() && ticket.UserID != p.ID {
		errorJSON(c, http.StatusNotFound, "Ticket not found or access denied")
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// Update overwrites only the supplied fields. Status values are stored
// as-is, without validation.
func (h *TicketHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		errorJSON(c, http.StatusNotFound, "Ticket not found")
		return
	}

	ticket, err := h.store.TicketByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			errorJSON(c, http.StatusNotFound, "Ticket not found")
			return
		}
		errorJSON(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	p := middleware.Principal(c)
	if !p.IsAdmin() && ticket.UserID != p.ID {
		errorJSON(c, http.StatusForbidden, "Access denied")
		return
	}

	var req updateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Title.Valid {
		ticket.Title = req.Title.String
	}
	if req.Description.Valid {
		ticket.Description = req.Description.String
	}
	if req.Status.Valid {
		ticket.Status = req.Status.String
	}

	if err := h.store.SaveTicket(c.Request.Context(), ticket); err != nil {
		errorJSON(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ticket updated"})
}

func (h *TicketHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		errorJSON(c, http.StatusNotFound, "Ticket not found")
		return
	}

	ticket, err := h.store.TicketByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			errorJSON(c, http.StatusNotFound, "Ticket not found")
			return
		}
		errorJSON(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	p := middleware.Principal(c)
	if !p.IsAdmin() && ticket.UserID != p.ID {
		errorJSON(c, http.StatusForbidden, "Access denied")
		return
	}

	if err := h.store.DeleteTicket(c.Request.Context(), id); err != nil {
		errorJSON(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ticket deleted"})
}
