package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
	"github.com/KasumiMercury/primind-event-reminder/internal/service/reminder"
)

const RunIDHeader = "X-Run-ID"

type ReminderHandler struct {
	reminderService *reminder.Service
	directory       domain.ChannelDirectory
}

func NewReminderHandler(reminderService *reminder.Service, directory domain.ChannelDirectory) *ReminderHandler {
	return &ReminderHandler{
		reminderService: reminderService,
		directory:       directory,
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type previewRequest struct {
	Summary     string     `json:"summary" binding:"required"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	Start       time.Time  `json:"start" binding:"required"`
	Now         *time.Time `json:"now"`
	Verdict     string     `json:"verdict" binding:"omitempty,oneof=soon advance skip"`
}

type refreshResponse struct {
	ChannelCount        int `json:"channel_count"`
	DefaultChannelCount int `json:"default_channel_count"`
}

// HandleCheck runs one reminder check. The optional "now" query parameter
// replays a run at another instant.
func (h *ReminderHandler) HandleCheck(c *gin.Context) {
	ctx := c.Request.Context()

	now := time.Now()
	if nowStr := c.Query("now"); nowStr != "" {
		parsed, err := time.Parse(time.RFC3339, nowStr)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "invalid now time format, expected RFC3339")
			return
		}
		now = parsed
		slog.InfoContext(ctx, "using virtual time",
			slog.Time("virtual_now", now),
		)
	}

	runID := c.GetHeader(RunIDHeader)
	if runID == "" {
		runID = uuid.New().String()
	}

	resp, err := h.reminderService.CheckEvents(ctx, now, runID)
	if err != nil {
		slog.ErrorContext(ctx, "reminder check failed",
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusBadGateway, "processing_error", err.Error())
		return
	}

	c.JSON(http.StatusOK, resp)
}

// HandlePreview renders the reminder for a draft event without sending it.
func (h *ReminderHandler) HandlePreview(c *gin.Context) {
	ctx := c.Request.Context()

	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "preview request validation failed",
			slog.String("error", err.Error()),
			slog.String("path", c.Request.URL.Path),
		)
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	now := time.Now()
	if req.Now != nil {
		now = *req.Now
	}

	event := domain.Event{
		ID:          "preview",
		Summary:     req.Summary,
		Description: req.Description,
		Location:    req.Location,
		Start:       req.Start,
	}

	result, err := h.reminderService.Preview(ctx, event, now, domain.Verdict(req.Verdict))
	if err != nil {
		slog.ErrorContext(ctx, "preview failed",
			slog.String("summary", req.Summary),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusBadGateway, "processing_error", err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

// HandleRefreshChannels rebuilds the channel directory from the workspace.
func (h *ReminderHandler) HandleRefreshChannels(c *gin.Context) {
	ctx := c.Request.Context()

	lookup, err := h.directory.Refresh(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "channel refresh failed",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusBadGateway, "processing_error", err.Error())
		return
	}

	resp := refreshResponse{
		DefaultChannelCount: len(lookup.DefaultChannelIDs()),
	}
	if sized, ok := lookup.(interface{ Len() int }); ok {
		resp.ChannelCount = sized.Len()
	}

	slog.InfoContext(ctx, "channel directory refreshed",
		slog.Int("channel_count", resp.ChannelCount),
	)

	c.JSON(http.StatusOK, resp)
}

func respondError(c *gin.Context, status int, errType, message string) {
	c.JSON(status, errorResponse{
		Error:   errType,
		Message: message,
	})
}
