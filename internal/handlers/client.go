package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brokermate/brokermate-backend/internal/apierr"
	"github.com/brokermate/brokermate-backend/internal/services"
)

type ClientHandler struct {
	clientService services.ClientService
}

func NewClientHandler(clientService services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

func monthParam(c *gin.Context) (time.Month, bool) {
	m, err := strconv.Atoi(c.Param("month"))
	if err != nil || m < 1 || m > 12 {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, apierr.InvalidArgument("month must be 1-12"))
		return 0, false
	}
	return time.Month(m), true
}

func yearQuery(c *gin.Context) int {
	y, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		return time.Now().Year()
	}
	return y
}

// GET /api/clients/monthly/:month?year=2026
func (ch *ClientHandler) ListMonthly(c *gin.Context) {
	month, ok := monthParam(c)
	if !ok {
		return
	}
	clients, err := ch.clientService.FetchMonthlyClients(c.Request.Context(), month, yearQuery(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"clients": clients})
}

// POST /api/clients/monthly/:month?year=2026
func (ch *ClientHandler) AddMonthly(c *gin.Context) {
	month, ok := monthParam(c)
	if !ok {
		return
	}
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, err)
		return
	}
	client, err := ch.clientService.AddMonthlyClient(c.Request.Context(), month, yearQuery(c), payload)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"client": client})
}

// PATCH /api/clients/monthly/:month/:id?year=2026
func (ch *ClientHandler) UpdateMonthly(c *gin.Context) {
	month, ok := monthParam(c)
	if !ok {
		return
	}
	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, err)
		return
	}
	client, err := ch.clientService.UpdateMonthlyClient(c.Request.Context(), month, yearQuery(c), c.Param("id"), updates)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"client": client})
}

// DELETE /api/clients/monthly/:month/:id?year=2026
func (ch *ClientHandler) DeleteMonthly(c *gin.Context) {
	month, ok := monthParam(c)
	if !ok {
		return
	}
	ok, err := ch.clientService.DeleteMonthlyClient(c.Request.Context(), month, yearQuery(c), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": ok})
}

// GET /api/clients
func (ch *ClientHandler) ListAll(c *gin.Context) {
	clients, err := ch.clientService.FetchAllClients(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"clients": clients})
}

// DELETE /api/clients?name=Jane%20Doe
func (ch *ClientHandler) DeleteClient(c *gin.Context) {
	ok, err := ch.clientService.DeleteClient(c.Request.Context(), c.Query("name"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": ok})
}
