package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/BerylCAtieno/social-content-agent/internal/generator"
	"github.com/BerylCAtieno/social-content-agent/internal/logging"
	"github.com/BerylCAtieno/social-content-agent/internal/models"
	"github.com/BerylCAtieno/social-content-agent/internal/publish"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

//go:embed templates/*.html
var templatesFS embed.FS

const sessionCookie = "sid"

// ContentGenerator runs one generation cycle for an idea and tone.
type ContentGenerator interface {
	Generate(ctx context.Context, idea string, tone models.Tone) (models.AppState, error)
}

type Handler struct {
	generator ContentGenerator
	store     *sessionStore
	logger    logging.Logger
	metrics   *Metrics
	timeout   time.Duration
}

func NewHandler(gen ContentGenerator, logger logging.Logger, metrics *Metrics, timeout time.Duration) *Handler {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Handler{
		generator: gen,
		store:     newStore(),
		logger:    logger,
		metrics:   metrics,
		timeout:   timeout,
	}
}

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
}

// Register mounts the page, the JSON API and the per-card export endpoints.
func (h *Handler) Register(router *gin.Engine) {
	router.SetHTMLTemplate(Templates())

	router.GET("/", h.ServeIndex)
	router.POST("/generate", h.HandleGenerateForm)

	api := router.Group("/api")
	api.POST("/generate", h.HandleGenerateJSON)
	api.GET("/posts", h.HandleListPosts)
	api.GET("/posts/:platform/text", h.HandlePostText)
	api.GET("/posts/:platform/image", h.HandlePostImage)
}

// RequestLoggingMiddleware logs method, path, status and latency of every request.
func RequestLoggingMiddleware(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithFields(logging.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
		}).Info("Request handled")
	}
}

func (h *Handler) ServeIndex(c *gin.Context) {
	sid := h.sessionID(c)
	h.renderPage(c, http.StatusOK, pageData{
		Tone:  string(models.DefaultTone),
		Cards: cardViews(h.store.get(sid)),
	})
}

func (h *Handler) HandleGenerateForm(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderPage(c, http.StatusBadRequest, pageData{
			Error: MsgEmptyIdea,
			Tone:  string(models.DefaultTone),
			Cards: cardViews(h.store.get(h.sessionID(c))),
		})
		return
	}

	state, status, msg := h.generate(c, req)
	// Rejected input never starts a cycle, so the previous cards stay on screen.
	if status == http.StatusBadRequest {
		state = h.store.get(h.sessionID(c))
	}
	page := pageData{Idea: req.Idea, Tone: req.Tone, Error: msg, Cards: cardViews(state)}
	if page.Tone == "" {
		page.Tone = string(models.DefaultTone)
	}
	h.renderPage(c, status, page)
}

func (h *Handler) HandleGenerateJSON(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Warn("Invalid generate request body")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	state, status, msg := h.generate(c, req)
	if msg != "" {
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}
	c.JSON(http.StatusOK, GenerateResponse{Cards: cardResponses(state)})
}

func (h *Handler) HandleListPosts(c *gin.Context) {
	state := h.store.get(h.sessionID(c))
	c.JSON(http.StatusOK, GenerateResponse{Cards: cardResponses(state)})
}

// HandlePostText returns the clipboard text of one card.
func (h *Handler) HandlePostText(c *gin.Context) {
	card, ok := h.lookupCard(c)
	if !ok {
		return
	}
	h.metrics.IncPrepared(card.Platform.Key, "text")
	c.String(http.StatusOK, publish.FormattedText(card))
}

// HandlePostImage serves the card image as a download named after the platform.
func (h *Handler) HandlePostImage(c *gin.Context) {
	card, ok := h.lookupCard(c)
	if !ok {
		return
	}
	data, mime, err := publish.DecodeDataURL(card.ImageURL)
	if err != nil {
		h.logger.WithError(err).WithField("platform", card.Platform.Key).Error("Stored image is not a valid data URL")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: MsgPrepareFailed})
		return
	}
	h.metrics.IncPrepared(card.Platform.Key, "image")
	c.Header("Content-Disposition", `attachment; filename="`+publish.DownloadFilename(card.Platform)+`"`)
	c.Data(http.StatusOK, mime, data)
}

// generate resets the session, runs one cycle and stores the result. It
// returns the new state, an HTTP status and a user-facing message ("" on success).
func (h *Handler) generate(c *gin.Context, req GenerateRequest) (models.AppState, int, string) {
	if strings.TrimSpace(req.Idea) == "" {
		h.metrics.IncGeneration("empty_idea")
		return models.AppState{}, http.StatusBadRequest, MsgEmptyIdea
	}
	tone, ok := models.ParseTone(req.Tone)
	if !ok {
		h.metrics.IncGeneration("invalid_tone")
		return models.AppState{}, http.StatusBadRequest, MsgInvalidTone
	}

	sid := h.sessionID(c)
	cycle := h.store.reset(sid)

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	start := time.Now()
	state, err := h.generator.Generate(ctx, req.Idea, tone)
	h.metrics.ObserveDuration(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, generator.ErrEmptyIdea) {
			h.metrics.IncGeneration("empty_idea")
			return models.AppState{}, http.StatusBadRequest, MsgEmptyIdea
		}
		h.metrics.IncGeneration("failed")
		h.logger.WithError(err).WithField("session", sid).Error("Failed to generate content")
		return models.AppState{}, http.StatusBadGateway, MsgGenerationFailed
	}

	if !h.store.set(sid, cycle, state) {
		h.logger.WithField("session", sid).Warn("Discarding result of a superseded generation cycle")
	}
	h.metrics.IncGeneration("succeeded")
	return state, http.StatusOK, ""
}

func (h *Handler) lookupCard(c *gin.Context) (publish.Card, bool) {
	platform, ok := models.PlatformByKey(c.Param("platform"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown platform"})
		return publish.Card{}, false
	}
	card, ok := publish.CardFor(h.store.get(h.sessionID(c)), platform)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no content generated for " + platform.Name})
		return publish.Card{}, false
	}
	return card, true
}

// sessionID returns the browser's session id, issuing a cookie on first visit.
func (h *Handler) sessionID(c *gin.Context) string {
	if id := c.GetString(sessionCookie); id != "" {
		return id
	}
	id, err := c.Cookie(sessionCookie)
	if err != nil || uuid.Validate(id) != nil {
		id = uuid.New().String()
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
	}
	c.Set(sessionCookie, id)
	return id
}

func (h *Handler) renderPage(c *gin.Context, status int, data pageData) {
	data.Tones = models.Tones
	data.PreparedLabel = MsgPrepared
	data.PrepareError = MsgPrepareFailed
	c.HTML(status, "index.html", data)
}
