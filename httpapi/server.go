package httpapi

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 10 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultRequestsPerSec  = 100
	defaultRequestsBurst   = 200
	defaultShutdownTimeout = 10 * time.Second
)

// ServerConfig tunes the HTTP server. Zero values fall back to the defaults.
type ServerConfig struct {
	Addr           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestsPerSec float64
	RequestsBurst  int
}

// ShutdownTimeout returns the grace period for draining in-flight requests.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return defaultShutdownTimeout
}

// NewServer builds an http.Server serving the API with rate limiting and
// request logging applied.
func NewServer(api *API, cfg ServerConfig) *http.Server {
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = defaultReadTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = defaultIdleTimeout
	}
	if cfg.RequestsPerSec == 0 {
		cfg.RequestsPerSec = defaultRequestsPerSec
	}
	if cfg.RequestsBurst == 0 {
		cfg.RequestsBurst = defaultRequestsBurst
	}

	limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), cfg.RequestsBurst)

	var handler http.Handler = api.Routes()
	handler = RateLimitMiddleware(limiter, handler)
	handler = LoggingMiddleware(api.deps.Logger, handler)

	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}
