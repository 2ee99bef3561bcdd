package dashboard

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	forecaster "github.com/abhinavsaxena123/Customer-Complaints-Forecasting"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
)

//go:embed templates/*.html
var templateFS embed.FS

const formErrorKey = "form"

type modelOption struct {
	Value    string
	Name     string
	Selected bool
}

type pageData struct {
	Start    string
	End      string
	Models   []modelOption
	Errors   map[string]string
	ChartURL string
	Label    string
	Days     int
	Summary  *forecaster.Summary
}

type forecastResponse struct {
	Model     string              `json:"model"`
	Label     string              `json:"label"`
	StartDate string              `json:"start_date,omitempty"`
	EndDate   string              `json:"end_date,omitempty"`
	Horizon   int                 `json:"horizon"`
	Summary   *forecaster.Summary `json:"summary,omitempty"`
	Points    []forecaster.Point  `json:"points"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// NewRouter wires the dashboard routes. The metrics handler is mounted at /metrics when non nil.
func NewRouter(s *Service, tp trace.TracerProvider, metricsHandler http.Handler) (*gin.Engine, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if tp != nil {
		router.Use(otelgin.Middleware(s.opt.ServiceName, otelgin.WithTracerProvider(tp)))
	}
	router.Use(requestLogger(s.logger))
	router.SetHTMLTemplate(tmpl)

	router.GET("/", s.handleIndex)
	router.GET("/chart", s.handleChart)
	router.GET("/api/forecast", s.handleAPIForecast)
	router.GET("/healthz", s.handleHealth)
	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}
	return router, nil
}

func requestLogger(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Debug("handled request")
	}
}

// parseTrigger interprets the trigger query parameter, falling back to def when absent
func parseTrigger(value string, def bool) bool {
	switch strings.ToLower(value) {
	case "":
		return def
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func (s *Service) handleIndex(c *gin.Context) {
	defStart, defEnd := s.DefaultDates()
	data := pageData{
		Start:  c.DefaultQuery("start", defStart),
		End:    c.DefaultQuery("end", defEnd),
		Errors: map[string]string{},
	}
	model := c.DefaultQuery("model", forecaster.SeasonalSmoothing.String())
	for _, id := range forecaster.ModelIDs {
		data.Models = append(data.Models, modelOption{
			Value:    id.String(),
			Name:     id.DisplayName(),
			Selected: id.String() == model,
		})
	}

	trigger := parseTrigger(c.Query("trigger"), false)
	res, err := s.Forecast(c.Request.Context(), trigger, data.Start, data.End, model)
	if err != nil {
		if fe, ok := forecaster.AsForecastError(err); ok && fe.UserCorrectable() {
			data.Errors[fe.Field] = fe.UserMessage()
		} else {
			data.Errors[formErrorKey] = "Forecast unavailable"
		}
		c.HTML(http.StatusOK, "index.html", data)
		return
	}

	if !res.Empty() {
		q := url.Values{}
		q.Set("start", data.Start)
		q.Set("end", data.End)
		q.Set("model", model)
		q.Set("trigger", "1")
		data.ChartURL = "/chart?" + q.Encode()
		data.Label = res.Label
		data.Days = res.Horizon()
		data.Summary = res.Summary()
	}
	c.HTML(http.StatusOK, "index.html", data)
}

func (s *Service) handleChart(c *gin.Context) {
	trigger := parseTrigger(c.Query("trigger"), true)
	res, err := s.Forecast(c.Request.Context(), trigger, c.Query("start"), c.Query("end"), c.Query("model"))
	if err != nil {
		status, body := errorBody(err)
		c.String(status, body.Message)
		return
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := forecaster.RenderChart(c.Writer, res); err != nil {
		s.logger.WithError(err).Error("unable to render chart")
	}
}

func (s *Service) handleAPIForecast(c *gin.Context) {
	trigger := parseTrigger(c.Query("trigger"), true)
	res, err := s.Forecast(c.Request.Context(), trigger, c.Query("start"), c.Query("end"), c.Query("model"))
	if err != nil {
		status, body := errorBody(err)
		c.JSON(status, body)
		return
	}

	resp := forecastResponse{
		Model:   res.Model.String(),
		Label:   res.Label,
		Horizon: res.Horizon(),
		Summary: res.Summary(),
		Points:  res.Points,
	}
	if !res.Empty() {
		resp.StartDate = res.Start().Format(forecaster.DateLayout)
		resp.EndDate = res.End().Format(forecaster.DateLayout)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Service) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"cache":  s.CacheStats(),
	})
}

func errorBody(err error) (int, errorResponse) {
	fe, ok := forecaster.AsForecastError(err)
	if !ok {
		return http.StatusInternalServerError, errorResponse{
			Error:   "internal",
			Message: "Forecast unavailable",
		}
	}
	status := http.StatusInternalServerError
	if fe.UserCorrectable() {
		status = http.StatusBadRequest
	}
	return status, errorResponse{
		Error:   fe.KindName(),
		Field:   fe.Field,
		Message: fe.UserMessage(),
	}
}
