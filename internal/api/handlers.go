package api

import (
	"enrollment/internal/models"
	"net/http"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	mu   sync.RWMutex
	data *models.Report
}

// NewHandler accepts a nil report; endpoints answer 503 until SetData is called.
func NewHandler(data *models.Report) *Handler {
	return &Handler{data: data}
}

func (h *Handler) SetData(data *models.Report) {
	h.mu.Lock()
	h.data = data
	h.mu.Unlock()
}

func (h *Handler) report() *models.Report {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.data
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/enrollment", h.GetEnrollment)
	api.GET("/enrollment/:code", h.GetProgram)
	api.GET("/summary", h.GetSummary)
}

// --- HANDLERS ---
func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func notReady() error {
	return echo.NewHTTPError(http.StatusServiceUnavailable, "report is still loading")
}

// GetEnrollment returns programs ranked by enrollment, paginated.
func (h *Handler) GetEnrollment(c echo.Context) error {
	r := h.report()
	if r == nil {
		return notReady()
	}
	rows := r.Programs
	total := len(rows)
	limit, offset := getPaginationParams(c, total)

	if offset >= total {
		rows = []models.ProgramRow{}
	} else {
		end := offset + limit
		if end > total {
			end = total
		}
		rows = rows[offset:end]
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":   rows,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) GetProgram(c echo.Context) error {
	r := h.report()
	if r == nil {
		return notReady()
	}
	code := c.Param("code")
	for _, row := range r.Programs {
		if row.Code == code {
			return c.JSON(http.StatusOK, row)
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "no students enrolled in "+code)
}

func (h *Handler) GetSummary(c echo.Context) error {
	r := h.report()
	if r == nil {
		return notReady()
	}
	return c.JSON(http.StatusOK, r.Summary)
}
