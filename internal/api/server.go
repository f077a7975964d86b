package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"edgegate/app"
	"edgegate/domain/core"
	"edgegate/domain/sample"
	"edgegate/domain/verdict"
	"edgegate/internal"
	"edgegate/internal/errors"
	"edgegate/internal/report"
)

// Server is the JSON gating surface. It is a thin shell over the app
// services: every request is stateless and the engine holds no state
// between calls, so the handlers need no locking.
type Server struct {
	router    *gin.Engine
	validator *app.ValidationService
	sweeper   *app.SweepService
	logger    *internal.Logger
}

// NewServer wires the validation and sweep services into an HTTP router
func NewServer(validator *app.ValidationService, sweeper *app.SweepService, logger *internal.Logger) *Server {
	s := &Server{
		router:    gin.Default(),
		validator: validator,
		sweeper:   sweeper,
		logger:    logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)
	s.router.POST("/v1/validate", s.handleValidate)
	s.router.POST("/v1/report", s.handleReport)
	s.router.POST("/v1/sweep", s.handleSweep)
}

// Start runs the server on the given address, blocking until shutdown
func (s *Server) Start(addr string) error {
	s.logger.Info("gating API listening on %s", addr)
	return s.router.Run(addr)
}

// Router exposes the underlying engine for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// validateRequest carries one signal history inline. Points are optional;
// when absent the predictive-power and conditional metrics run over an
// empty set and fail with an insufficient-data code.
type validateRequest struct {
	SignalName        string         `json:"signal_name" binding:"required"`
	Wins              int            `json:"wins"`
	Total             int            `json:"total" binding:"required"`
	Points            []pointPayload `json:"points"`
	StrengthThreshold float64        `json:"strength_threshold"`
}

type pointPayload struct {
	SignalValue float64 `json:"signal_value"`
	IsWin       bool    `json:"is_win"`
	Magnitude   float64 `json:"magnitude"`
}

func (s *Server) handleValidate(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": errors.CodeInvalidSample})
		return
	}

	bin, err := sample.NewBinarySample(req.Wins, req.Total)
	if err != nil {
		s.respondError(c, err)
		return
	}

	record, err := s.validator.Validate(app.ValidationRequest{
		Sample:            bin,
		Points:            toPoints(req.Points),
		StrengthThreshold: req.StrengthThreshold,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"signal_name": req.SignalName,
		"record":      record,
		"decision":    s.validator.Thresholds().Recommend(record),
	})
}

// handleReport validates an inline history and returns the rendered report
// instead of the raw record. The format query parameter selects text, html
// or markdown; text is the default.
func (s *Server) handleReport(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": errors.CodeInvalidSample})
		return
	}

	bin, err := sample.NewBinarySample(req.Wins, req.Total)
	if err != nil {
		s.respondError(c, err)
		return
	}

	record, err := s.validator.Validate(app.ValidationRequest{
		Sample:            bin,
		Points:            toPoints(req.Points),
		StrengthThreshold: req.StrengthThreshold,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	artifact := &verdict.RunArtifact{
		ID:         core.RunID(core.NewID()),
		SignalName: req.SignalName,
		Record:     record,
		Decision:   s.validator.Thresholds().Recommend(record),
		CreatedAt:  core.Now(),
	}

	switch c.DefaultQuery("format", "text") {
	case "text":
		c.String(http.StatusOK, report.RenderText(artifact))
	case "markdown":
		c.String(http.StatusOK, report.RenderMarkdown(artifact))
	case "html":
		c.Data(http.StatusOK, "text/html; charset=utf-8", report.RenderHTML(artifact))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown format", "code": errors.CodeInvalidSample})
	}
}

type sweepRequest struct {
	SignalName string         `json:"signal_name" binding:"required"`
	Wins       int            `json:"wins"`
	Total      int            `json:"total" binding:"required"`
	Points     []pointPayload `json:"points"`
	Thresholds []float64      `json:"thresholds" binding:"required"`
}

func (s *Server) handleSweep(c *gin.Context) {
	var req sweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": errors.CodeInvalidSample})
		return
	}

	bin, err := sample.NewBinarySample(req.Wins, req.Total)
	if err != nil {
		s.respondError(c, err)
		return
	}

	result, err := s.sweeper.Run(c.Request.Context(), app.SweepRequest{
		SignalName: req.SignalName,
		Sample:     bin,
		Points:     toPoints(req.Points),
		Thresholds: req.Thresholds,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// respondError maps domain failures onto HTTP statuses. Degenerate inputs
// are the caller's problem (422); everything else is an internal fault.
func (s *Server) respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeInvalidSample, errors.CodeInsufficientData,
		errors.CodeZeroDenominator, errors.CodeUndefinedCorrelation,
		errors.CodeConfigInvalid:
		status = http.StatusUnprocessableEntity
	}
	s.logger.Warn("request failed: %v", err)
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}

func toPoints(payload []pointPayload) []sample.SignalOutcomePoint {
	points := make([]sample.SignalOutcomePoint, len(payload))
	for i, p := range payload {
		points[i] = sample.SignalOutcomePoint{
			SignalValue:  p.SignalValue,
			OutcomeIsWin: p.IsWin,
			Magnitude:    p.Magnitude,
		}
	}
	return points
}
