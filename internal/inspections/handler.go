package inspections

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"inspection-backend/internal/forensics"
	"inspection-backend/internal/shared/server/middleware"
	"inspection-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the inspections service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches inspection routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/inspections", h.createInspection)
	rg.GET("/inspections", h.listInspections)
	rg.GET("/inspections/:id", h.getInspection)
	rg.DELETE("/inspections/:id", h.deleteInspection)
	rg.GET("/inspections/:id/report", h.getReport)
	rg.POST("/inspections/:id/simulate", h.simulateRepairs)
	rg.GET("/inspections/:id/quotes", h.getQuotes)
}

type createInspectionRequest struct {
	Label  string                     `json:"label"`
	Record forensics.InspectionRecord `json:"record"`
}

func (h *Handler) createInspection(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	insp, err := h.Svc.Create(c.Request.Context(), userID, req.Label, req.Record)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	respond.JSON(c, http.StatusCreated, insp)
}

func (h *Handler) getInspection(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	inspectionID := c.Param("id")
	if inspectionID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "inspection id is required", nil)
		return
	}

	insp, err := h.Svc.Get(c.Request.Context(), userID, inspectionID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "inspection not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch inspection", nil)
		}
		return
	}

	respond.OK(c, insp)
}

func (h *Handler) listInspections(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	list, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list inspections", nil)
		return
	}

	respond.OK(c, list)
}

func (h *Handler) deleteInspection(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	inspectionID := c.Param("id")
	if inspectionID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "inspection id is required", nil)
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), userID, inspectionID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "inspection not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete inspection", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) getReport(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	inspectionID := c.Param("id")
	if inspectionID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "inspection id is required", nil)
		return
	}

	report, err := h.Svc.Report(c.Request.Context(), userID, inspectionID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "inspection not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute report", nil)
		}
		return
	}

	respond.OK(c, report)
}

type simulateRequest struct {
	RepairIDs []forensics.RepairID `json:"repairIds"`
}

func (h *Handler) simulateRepairs(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	inspectionID := c.Param("id")
	if inspectionID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "inspection id is required", nil)
		return
	}

	var req simulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	result, err := h.Svc.Simulate(c.Request.Context(), userID, inspectionID, req.RepairIDs)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "inspection not found", nil)
		case errors.Is(err, ErrRepairNotEligible):
			respond.Error(c, http.StatusUnprocessableEntity, "repair_not_eligible", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to simulate repairs", nil)
		}
		return
	}

	respond.OK(c, result)
}

func (h *Handler) getQuotes(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	inspectionID := c.Param("id")
	if inspectionID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "inspection id is required", nil)
		return
	}

	sheet, err := h.Svc.Quotes(c.Request.Context(), userID, inspectionID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "inspection not found", nil)
		case errors.Is(err, ErrNoQuoteProvider):
			respond.Error(c, http.StatusServiceUnavailable, "quotes_unavailable", "no quote provider configured", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to bundle quotes", nil)
		}
		return
	}

	respond.OK(c, sheet)
}
