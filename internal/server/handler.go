package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/tickcalc/internal/metrics"
	"github.com/rustyeddy/tickcalc/pkg/id"
	"github.com/rustyeddy/tickcalc/risk"
)

const (
	instrumentsBasePath  = "/api/v1/instruments"
	calculationsBasePath = "/api/v1/calculations"

	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

var errMissingInstrument = errors.New("instrument is required")

type Handler struct {
	router  *gin.Engine
	calc    *risk.Calculator
	log     logrus.FieldLogger
	metrics *metrics.Metrics
	ids     *id.Generator
}

// calculationPayload uses pointers so a missing amount is distinguishable
// from an explicit zero.
type calculationPayload struct {
	Instrument    string   `json:"instrument"`
	OpeningProfit *float64 `json:"opening_profit"`
	RiskAmount    *float64 `json:"risk_amount"`
}

func (p calculationPayload) toRequest() (risk.Request, error) {
	if p.Instrument == "" {
		return risk.Request{}, errMissingInstrument
	}
	if p.OpeningProfit == nil || p.RiskAmount == nil {
		return risk.Request{}, errors.New("opening_profit and risk_amount are required")
	}
	return risk.Request{
		Instrument:    p.Instrument,
		OpeningProfit: *p.OpeningProfit,
		RiskAmount:    *p.RiskAmount,
	}, nil
}

type instrumentsResponse struct {
	TargetFraction float64        `json:"target_fraction"`
	Instruments    []risk.Details `json:"instruments"`
}

func NewHandler(calc *risk.Calculator, log logrus.FieldLogger, m *metrics.Metrics) *Handler {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	// "Euro/USD (6E)" arrives as Euro%2FUSD%20%286E%29 and must stay one segment.
	router.UseRawPath = true
	router.UnescapePathValues = true

	if m == nil {
		m = metrics.New()
	}
	h := &Handler{
		router:  router,
		calc:    calc,
		log:     log,
		metrics: m,
		ids:     id.NewGenerator(nil),
	}
	router.Use(h.requestID(), h.accessLog(), gin.Recovery())
	h.registerRoutes()
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	h.router.GET("/metrics", gin.WrapH(h.metrics.Handler()))

	inst := h.router.Group(instrumentsBasePath)
	{
		inst.GET("", h.listInstruments)
		inst.GET("/:name", h.getInstrument)
	}

	calc := h.router.Group(calculationsBasePath)
	{
		calc.POST("", h.createCalculation)
	}
}

func (h *Handler) listInstruments(c *gin.Context) {
	c.JSON(http.StatusOK, instrumentsResponse{
		TargetFraction: h.calc.TargetFraction(),
		Instruments:    h.calc.AllDetails(),
	})
}

func (h *Handler) getInstrument(c *gin.Context) {
	d, err := h.calc.Details(c.Param("name"))
	if err != nil {
		writeError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) createCalculation(c *gin.Context) {
	var payload calculationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	req, err := payload.toRequest()
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}

	res, err := h.calc.ComputeRequest(req)
	h.metrics.ObserveCalculation(res.Instrument.Symbol, err)
	if err != nil {
		h.log.WithFields(logrus.Fields{
			requestIDKey: c.GetString(requestIDKey),
			"instrument": req.Instrument,
		}).WithError(err).Warn("calculation refused")
		writeError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, risk.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, risk.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, status int, err error) {
	if err == nil {
		status = http.StatusInternalServerError
		err = errors.New("unknown error")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// requestID propagates the caller's X-Request-ID or assigns a new ULID.
func (h *Handler) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" {
			rid = h.ids.New()
		}
		c.Set(requestIDKey, rid)
		c.Header(requestIDHeader, rid)
		c.Next()
	}
}

func (h *Handler) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		elapsed := time.Since(start)
		status := c.Writer.Status()
		h.metrics.ObserveRequest(c.FullPath(), status, elapsed)

		entry := h.log.WithFields(logrus.Fields{
			requestIDKey: c.GetString(requestIDKey),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"latency":    elapsed.String(),
		})
		if status >= http.StatusInternalServerError {
			entry.Error("request failed")
			return
		}
		entry.Debug("request served")
	}
}
