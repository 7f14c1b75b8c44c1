package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tartampluch/go-yearprogress/internal/chart"
	"github.com/tartampluch/go-yearprogress/internal/config"
	"github.com/tartampluch/go-yearprogress/internal/dashboard"
	"github.com/tartampluch/go-yearprogress/internal/engine"
)

// snapshot stores today's rendered chart and its metadata for HTTP caching.
type snapshot struct {
	date         string
	data         []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// WidgetServer serves the year progress widget, its chart and a JSON view
// of the same numbers on localhost.
type WidgetServer struct {
	// cache holds today's chart. It is replaced on every refresh and read on
	// every default chart request.
	cache atomic.Pointer[snapshot]

	Port     string
	Clock    engine.Clock
	Messages *dashboard.Messages
	Location *time.Location
}

// NewWidgetServer creates a new instance of the server.
func NewWidgetServer(port string, msgs *dashboard.Messages) *WidgetServer {
	return &WidgetServer{
		Port:     port,
		Clock:    engine.RealClock{},
		Messages: msgs,
		Location: time.Local,
	}
}

// Router builds the chi routes. It is exported so tests and embedders can
// mount the widget without listening.
func (s *WidgetServer) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)
	r.Use(requestLogger)
	r.Use(commonHeaders)

	r.Get(config.RouteRoot, s.handleWidget)
	r.Get(config.RouteChart, s.handleChart)
	r.Get(config.RouteProgress, s.handleProgress)
	r.Get(config.RouteHealth, s.handleHealth)

	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
	})
	return r
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *WidgetServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Router(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Refresh renders today's chart at the default size and atomically
// replaces the cached snapshot.
func (s *WidgetServer) Refresh() error {
	today := engine.Today(s.Clock)
	p := engine.ProgressOf(today)

	var buf bytes.Buffer
	if err := chart.RenderPNG(&buf, config.ChartDefaultSize, p.PercentPassed); err != nil {
		return fmt.Errorf("%s: %w", config.ErrSnapshot, err)
	}
	s.Update(today.String(), buf.Bytes())
	return nil
}

// Update atomically replaces the cached chart for date.
func (s *WidgetServer) Update(date string, data []byte) {
	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	item := &snapshot{
		date:         date,
		data:         data,
		etag:         etag,
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	}

	// Readers see either the old or the new complete item, never a partial one.
	s.cache.Store(item)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyDate, date,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
}

// serveCached writes a snapshot with conditional request support.
func serveCached(w http.ResponseWriter, r *http.Request, item *snapshot) {
	w.Header().Set(config.HeaderContentType, config.MimePNG)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	// If-Modified-Since is ignored when If-None-Match is present.
	if match := r.Header.Get(config.HeaderIfNoneMatch); match != "" {
		if match == item.etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	} else if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

// requestLogger logs each request at debug level.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.Debug(config.MsgHTTPRequest,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyMethod, r.Method,
			config.LogKeyPath, r.URL.Path,
			config.LogKeyStatus, ww.Status(),
			config.LogKeyDuration, time.Since(start).Milliseconds(),
			config.LogKeyRequestID, middleware.GetReqID(r.Context()),
		)
	})
}

func commonHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
		w.Header().Set(config.HeaderServer, config.ServerHeader)
		next.ServeHTTP(w, r)
	})
}
