package server

import (
	"bytes"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tartampluch/go-yearprogress/internal/chart"
	"github.com/tartampluch/go-yearprogress/internal/config"
	"github.com/tartampluch/go-yearprogress/internal/dashboard"
	"github.com/tartampluch/go-yearprogress/internal/engine"
)

// Response represents the JSON envelope of the API routes.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo contains error details.
type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ProgressData is the JSON view of one date.
type ProgressData struct {
	Date           string  `json:"date"`
	DayOfYear      int     `json:"day_of_year"`
	TotalDays      int     `json:"total_days"`
	PercentPassed  float64 `json:"percent_passed"`
	DegreesPassed  float64 `json:"degrees_passed"`
	IsLeapYear     bool    `json:"is_leap_year"`
	DaysRemaining  int     `json:"days_remaining"`
	PercentElapsed float64 `json:"percent_elapsed"`
}

type widgetPage struct {
	Title     string
	Date      string
	Result    []string
	Countdown string
	ChartURL  string
	BarWidth  string
	TextColor string
	Valid     bool
}

var widgetTemplate = template.Must(template.New("widget").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 0; background: transparent; }
.container { max-width: 420px; margin: 0 auto; padding: 16px; text-align: center; }
.chart { width: 100%; max-width: 240px; aspect-ratio: 1; }
.bar { background: #ddd; border-radius: 4px; height: 12px; overflow: hidden; }
.bar div { background: #4CAF50; height: 100%; }
</style>
</head>
<body>
<div class="container" style="color: {{.TextColor}}">
<form method="get"><input type="date" name="date" value="{{.Date}}" onchange="this.form.submit()"></form>
<p id="result">{{range $i, $l := .Result}}{{if $i}}<br>{{end}}{{$l}}{{end}}</p>
{{if .Valid}}<img class="chart" src="{{.ChartURL}}" alt="">{{end}}
<p id="countdown">{{.Countdown}}</p>
<div class="bar"><div style="width: {{.BarWidth}}%"></div></div>
</div>
</body>
</html>
`))

// queryDate returns the requested date or today's.
func (s *WidgetServer) queryDate(r *http.Request) string {
	if d := r.URL.Query().Get(config.QueryDate); d != "" {
		return d
	}
	return engine.Today(s.Clock).String()
}

// isEmbedded reports whether the page is being loaded inside a frame.
func isEmbedded(r *http.Request) bool {
	if r.Header.Get(config.HeaderSecFetchDest) == config.SecFetchDestIframe {
		return true
	}
	v := r.URL.Query().Get(config.QueryEmbed)
	return v == config.EnvOneStr || v == config.EnvTrueStr
}

func (s *WidgetServer) handleWidget(w http.ResponseWriter, r *http.Request) {
	date := s.queryDate(r)
	d := dashboard.Snapshot(s.Messages, date, r.URL.Query().Get(config.QueryBG), isEmbedded(r), s.Location)

	chartURL := config.RouteChart + "?" + url.Values{config.QueryDate: {date}}.Encode()
	page := widgetPage{
		Title:     s.Messages.Get(config.TKeyWinTitle),
		Date:      date,
		Result:    d.Result,
		Countdown: d.Countdown,
		ChartURL:  chartURL,
		BarWidth:  strconv.FormatFloat(d.Width, 'f', 2, 64),
		TextColor: string(d.TextColor),
		Valid:     d.Valid(),
	}

	var buf bytes.Buffer
	if err := widgetTemplate.Execute(&buf, page); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err)
		http.Error(w, config.HTTPMsgInternalErr, http.StatusInternalServerError)
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeHTML)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err)
	}
}

func (s *WidgetServer) handleChart(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	size := config.ChartDefaultSize
	if raw := q.Get(config.QuerySize); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < config.ChartMinRenderSize || n > config.ChartMaxRenderSize {
			writeError(w, http.StatusBadRequest, config.ErrChartSize, config.ErrCodeBadRequest)
			return
		}
		size = n
	}

	date := s.queryDate(r)
	if size == config.ChartDefaultSize && date == engine.Today(s.Clock).String() {
		item := s.cache.Load()
		if item == nil || item.date != date {
			if err := s.Refresh(); err != nil {
				slog.Error(config.ErrSnapshot,
					config.LogKeyComponent, config.CompServer,
					config.LogKeyError, err)
				writeError(w, http.StatusInternalServerError, config.HTTPMsgInternalErr, config.ErrCodeInternal)
				return
			}
			item = s.cache.Load()
		}
		serveCached(w, r, item)
		return
	}

	p, err := engine.ComputeYearProgress(date)
	if err != nil {
		writeError(w, http.StatusBadRequest, s.Messages.Get(config.TKeyInvalidDate), config.ErrCodeBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := chart.RenderPNG(&buf, size, p.PercentPassed); err != nil {
		slog.Error(config.ErrChartRender,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err)
		writeError(w, http.StatusInternalServerError, config.HTTPMsgInternalErr, config.ErrCodeInternal)
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimePNG)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err)
	}
}

func (s *WidgetServer) handleProgress(w http.ResponseWriter, r *http.Request) {
	date := s.queryDate(r)

	p, err := engine.ComputeYearProgress(date)
	if err != nil {
		writeError(w, http.StatusBadRequest, s.Messages.Get(config.TKeyInvalidDate), config.ErrCodeBadRequest)
		return
	}
	c := engine.CountdownOf(p.Date, s.Location)

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: ProgressData{
			Date:           p.Date.String(),
			DayOfYear:      p.DayOfYear,
			TotalDays:      p.TotalDays,
			PercentPassed:  p.PercentPassed,
			DegreesPassed:  p.DegreesPassed,
			IsLeapYear:     p.IsLeapYear,
			DaysRemaining:  c.DaysRemaining,
			PercentElapsed: c.PercentOfYearElapsed,
		},
	})
}

func (s *WidgetServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": config.HealthStatusOK})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err)
	}
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, Response{
		Success: false,
		Error:   &ErrorInfo{Message: message, Code: code},
	})
}
