package grpc

import (
	"fmt"
	"log/slog"
	"net"
	"os"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/Valentinus295/econsentinel/internal/infrastructure/config"
	"github.com/Valentinus295/econsentinel/pkg/auth"
	"github.com/Valentinus295/econsentinel/pkg/tlsutil"
)

// Server wraps a gRPC server with health checks and the Sentinel handler.
type Server struct {
	grpcServer *grpc.Server
	handler    *Handler
	logger     *slog.Logger
	port       int
}

// NewServer creates a new gRPC Server with health checking enabled. When
// jwtService is nil the API runs open, which is only acceptable for local
// development.
func NewServer(handler *Handler, logger *slog.Logger, port int, jwtService *auth.JWTService, tlsCfg config.TLSConfig) *Server {
	var serverOpts []grpc.ServerOption

	if jwtService != nil {
		// Auth interceptor, skipping health check methods.
		authInterceptor := auth.UnaryAuthInterceptor(jwtService, []string{
			"/grpc.health.v1.Health/Check",
			"/grpc.health.v1.Health/Watch",
		})
		serverOpts = append(serverOpts, grpc.UnaryInterceptor(authInterceptor))
	} else {
		logger.Warn("JWT validation not configured, gRPC API is unauthenticated")
	}

	if tlsCfg.CertFile != "" && tlsCfg.KeyFile != "" {
		creds, err := tlsutil.ServerTLSConfig(tlsCfg.CertFile, tlsCfg.KeyFile)
		if err != nil {
			logger.Error("failed to load TLS credentials, starting without TLS", "error", err)
		} else {
			serverOpts = append(serverOpts, grpc.Creds(creds))
			logger.Info("gRPC TLS enabled", "cert", tlsCfg.CertFile, "key", tlsCfg.KeyFile)
		}
	} else {
		logger.Info("gRPC TLS not configured, running without TLS")
	}

	grpcServer := grpc.NewServer(serverOpts...)

	// Register health service.
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus("econsentinel", healthpb.HealthCheckResponse_SERVING)

	RegisterSentinelServiceServer(grpcServer, handler)

	// Only enable reflection when GRPC_REFLECTION=true.
	if os.Getenv("GRPC_REFLECTION") == "true" {
		reflection.Register(grpcServer)
	}

	return &Server{
		grpcServer: grpcServer,
		handler:    handler,
		logger:     logger,
		port:       port,
	}
}

// Start begins listening for gRPC connections.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("grpc listen on %s: %w", addr, err)
	}

	s.logger.Info("gRPC server starting", "addr", addr)
	if err := s.grpcServer.Serve(lis); err != nil {
		return fmt.Errorf("grpc serve: %w", err)
	}
	return nil
}

// Stop gracefully stops the gRPC server.
func (s *Server) Stop() {
	s.logger.Info("gRPC server stopping")
	s.grpcServer.GracefulStop()
}

// Handler returns the registered Sentinel handler.
func (s *Server) Handler() *Handler {
	return s.handler
}
