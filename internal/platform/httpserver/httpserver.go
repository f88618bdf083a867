package httpserver

import (
	"log/slog"
	"net/http"
	"time"
)

// Limits bounds how long a ledger request may occupy a connection.
type Limits struct {
	ReadHeader time.Duration
	Read       time.Duration
	Write      time.Duration
	Idle       time.Duration
	HeaderSize int
}

// DefaultLimits suits small JSON bodies such as royalty lists and mint requests.
var DefaultLimits = Limits{
	ReadHeader: 5 * time.Second,
	Read:       15 * time.Second,
	Write:      30 * time.Second,
	Idle:       2 * time.Minute,
	HeaderSize: 64 << 10,
}

// New builds the ledger API server. Connection-level errors from net/http are
// routed into logger at warn level.
func New(addr string, handler http.Handler, logger *slog.Logger) *http.Server {
	return NewWithLimits(addr, handler, logger, DefaultLimits)
}

// NewWithLimits is New with explicit timeouts.
func NewWithLimits(addr string, handler http.Handler, logger *slog.Logger, l Limits) *http.Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: l.ReadHeader,
		ReadTimeout:       l.Read,
		WriteTimeout:      l.Write,
		IdleTimeout:       l.Idle,
		MaxHeaderBytes:    l.HeaderSize,
		ErrorLog:          slog.NewLogLogger(logger.With("component", "http_server").Handler(), slog.LevelWarn),
	}
}
