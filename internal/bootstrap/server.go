package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Domenick1991/airbooking/config"
	"github.com/Domenick1991/airbooking/internal/logger"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/protobuf/encoding/protojson"
)

const (
	schemaFile     = "airport.swagger.json"
	healthInterval = 5 * time.Second
)

// HealthCheck checks one backing dependency. Any error marks the service NOT_SERVING.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type Servers struct {
	grpcServer *grpc.Server
	httpServer *http.Server
	health     *health.Server
	checks     []HealthCheck
	log        *logger.Logger
}

// Run starts the gRPC health server and the HTTP server (API, docs, /healthz) and blocks until ctx is canceled or a server fails.
func Run(ctx context.Context, cfg *config.Config, log *logger.Logger, api http.Handler, checks ...HealthCheck) error {
	s, err := newServers(cfg, log, api, checks)
	if err != nil {
		return err
	}

	errCh := make(chan error, 2)

	lis, err := net.Listen("tcp", cfg.GRPC.Address)
	if err != nil {
		return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
	}
	go func() { errCh <- s.grpcServer.Serve(lis) }()

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	log.Infof("BOOTSTRAP", "http listening on %s, grpc on %s", cfg.HTTP.Address, cfg.GRPC.Address)

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	go s.watch(watchCtx)

	select {
	case err := <-errCh:
		s.health.Shutdown()
		return err
	case <-ctx.Done():
		s.health.Shutdown()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.grpcServer.GracefulStop()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		log.Info("BOOTSTRAP", "servers stopped")
		return nil
	}
}

func newServers(cfg *config.Config, log *logger.Logger, api http.Handler, checks []HealthCheck) (*Servers, error) {
	grpcSrv := grpc.NewServer()
	healthSrv := health.NewServer()
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)
	reflection.Register(grpcSrv)

	gateway := runtime.NewServeMux()
	if err := gateway.HandlePath(http.MethodGet, "/healthz", healthHandler(healthSrv)); err != nil {
		return nil, fmt.Errorf("register health gateway: %w", err)
	}

	handler := http.NewServeMux()
	handler.Handle("/healthz", gateway)
	handler.Handle("/", api)

	if cfg.HTTP.SwaggerDir != "" {
		schema := filepath.Join(cfg.HTTP.SwaggerDir, schemaFile)
		handler.HandleFunc("/api/schema/", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			http.ServeFile(w, r, schema)
		})
		handler.Handle("/api/doc/swagger/", httpSwagger.Handler(httpSwagger.URL("/api/schema/")))
	}

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Servers{
		grpcServer: grpcSrv,
		httpServer: httpSrv,
		health:     healthSrv,
		checks:     checks,
		log:        log,
	}, nil
}

func healthHandler(hs *health.Server) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		resp, err := hs.Check(r.Context(), &healthpb.HealthCheckRequest{})
		if err != nil {
			resp = &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}
		}
		body, err := protojson.Marshal(resp)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_, _ = w.Write(body)
	}
}

func (s *Servers) watch(ctx context.Context) {
	s.checkHealth(ctx)

	ticker := time.NewTicker(healthInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.checkHealth(ctx)
		}
	}
}

func (s *Servers) checkHealth(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING
	for _, p := range s.checks {
		checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := p.Check(checkCtx)
		cancel()
		if err != nil {
			s.log.Warnf("HEALTH", "%s health check failed: %v", p.Name, err)
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	s.health.SetServingStatus("", status)
}
