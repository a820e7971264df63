package observability

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riskibarqy/goalserve-heatmap/internal/config"
	"github.com/riskibarqy/goalserve-heatmap/internal/platform/logging"
)

// PprofServer is the debug listener. A nil *PprofServer is a disabled one.
type PprofServer struct {
	srv    *http.Server
	logger *logging.Logger
}

// StartPprofServer binds PPROF_ADDR and serves /debug/pprof and /debug/vars.
// Binding happens before it returns so a taken port fails startup.
func StartPprofServer(cfg config.Config, logger *logging.Logger) (*PprofServer, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if !cfg.PprofEnabled {
		logger.Info("pprof disabled", "reason", "PPROF_ENABLED=false")
		return nil, nil
	}

	ln, err := net.Listen("tcp", cfg.PprofAddr)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Mount("/debug", middleware.Profiler())

	p := &PprofServer{
		srv: &http.Server{
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger.Named("pprof"),
	}

	go func() {
		p.logger.Info("pprof server listening", "addr", ln.Addr().String())
		if err := p.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			p.logger.Error("pprof server failed", "error", err)
		}
	}()

	return p, nil
}

// Stop shuts the listener down within timeout.
func (p *PprofServer) Stop(timeout time.Duration) error {
	if p == nil {
		return nil
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := p.srv.Shutdown(ctx); err != nil {
		return err
	}
	p.logger.Info("pprof server stopped")
	return nil
}
