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

	"github.com/gorilla/mux"
	"github.com/tartampluch/go-softclock/internal/config"
)

// Snapshot is one published view of the clock.
type Snapshot struct {
	Calendar []byte // iCalendar document
	Text     string // status line
}

// payload is a rendered body with its validator.
type payload struct {
	data        []byte
	etag        string
	contentType string
}

// cacheItem stores the rendered snapshot and its metadata for HTTP caching.
type cacheItem struct {
	calendar     payload
	text         payload
	lastModified string // RFC1123 format required by HTTP headers
}

// StatusServer serves the latest clock snapshot over HTTP on the loopback interface.
type StatusServer struct {
	// cache uses atomic.Pointer: the runner publishes every simulated second
	// while readers never block it.
	cache atomic.Pointer[cacheItem]
	Port  string
}

// NewStatusServer creates a new instance of the server.
func NewStatusServer(port string) *StatusServer {
	return &StatusServer{
		Port: port,
	}
}

// Handler returns the routing table of the server. Unknown paths get a 404.
func (s *StatusServer) Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc(config.RouteCalendar, s.handleCalendarRequest)
	router.HandleFunc(config.RouteRoot, s.handleStatusRequest)
	return router
}

// Start runs the HTTP server and blocks until the context is cancelled.
func (s *StatusServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// Update atomically replaces the served snapshot.
func (s *StatusServer) Update(snap Snapshot) {
	item := &cacheItem{
		calendar:     newPayload(snap.Calendar, config.MimeTextCalendar),
		text:         newPayload([]byte(snap.Text), config.MimeTextPlain),
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	}
	s.cache.Store(item)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(snap.Calendar),
		config.LogKeyETag, item.calendar.etag,
	)
}

func newPayload(data []byte, contentType string) payload {
	hash := sha256.Sum256(data)
	return payload{
		data:        data,
		etag:        fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
		contentType: contentType,
	}
}

func (s *StatusServer) handleCalendarRequest(w http.ResponseWriter, r *http.Request) {
	s.serve(w, r, func(item *cacheItem) payload { return item.calendar })
}

func (s *StatusServer) handleStatusRequest(w http.ResponseWriter, r *http.Request) {
	s.serve(w, r, func(item *cacheItem) payload { return item.text })
}

// serve writes the payload selected by pick with HTTP caching support.
func (s *StatusServer) serve(w http.ResponseWriter, r *http.Request, pick func(*cacheItem) payload) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	item := s.cache.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}
	p := pick(item)

	w.Header().Set(config.HeaderContentType, p.contentType)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, p.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == p.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
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
		if _, err := io.Copy(w, bytes.NewReader(p.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}
