package providers

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/listenupapp/librarian-server/internal/api"
	"github.com/listenupapp/librarian-server/internal/config"
	"github.com/listenupapp/librarian-server/internal/logger"
	"github.com/listenupapp/librarian-server/internal/service"
)

// shutdownTimeout bounds graceful shutdown of in-flight requests.
const shutdownTimeout = 30 * time.Second

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	api      *api.Server
	listener net.Listener
}

// ListenAddr returns the address the server is bound to.
func (h *HTTPServerHandle) ListenAddr() string {
	return h.listener.Addr().String()
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	defer h.api.Close()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server and starts listening.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Auth:        do.MustInvoke[*service.AuthService](i),
		Catalog:     do.MustInvoke[*service.CatalogService](i),
		Membership:  do.MustInvoke[*service.MembershipService](i),
		Circulation: do.MustInvoke[*service.CirculationService](i),
		Dashboard:   do.MustInvoke[*service.DashboardService](i),
	}

	handler := api.NewServer(services, api.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AuthRateLimit:  cfg.Auth.RateLimit,
		AuthRateBurst:  cfg.Auth.RateBurst,
	}, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Bind before returning so a taken port fails the bootstrap.
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		handler.Close()
		return nil, err
	}

	go func() {
		log.Info("HTTP server starting", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv, api: handler, listener: ln}, nil
}
