package server

import (
	"net/http"
	"time"

	"github.com/AlibekovAA/tasktracker/internal/common/config"
	"github.com/AlibekovAA/tasktracker/internal/common/constants"
)

const maxHeaderBytes = 64 << 10

type ServerConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
}

func DefaultServerConfig(port string) ServerConfig {
	return ServerConfig{
		Addr:              ":" + port,
		ReadHeaderTimeout: constants.ServerReadHeaderTimeout,
		ReadTimeout:       constants.ServerReadTimeout,
		WriteTimeout:      constants.ServerWriteTimeout,
		IdleTimeout:       constants.ServerIdleTimeout,
	}
}

// FromConfig keeps the write timeout above the per-request timeout so that
// handlers can still answer after their context expires.
func FromConfig(cfg config.Config) ServerConfig {
	sc := DefaultServerConfig(cfg.HTTPPort)
	if floor := cfg.RequestTimeout + time.Second; sc.WriteTimeout < floor {
		sc.WriteTimeout = floor
	}
	return sc
}

func NewServer(cfg ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    maxHeaderBytes,
	}
}
