package server

import (
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/alassaneba1/JangQuranAkSunna/internal/service"
	"github.com/alassaneba1/JangQuranAkSunna/pkg/auth"
	"github.com/alassaneba1/JangQuranAkSunna/pkg/logger"
	"github.com/alassaneba1/JangQuranAkSunna/pkg/metrics"
)

// Services groups everything the RPC handlers work with.
type Services struct {
	Themes     service.ThemeService
	Contents   service.ContentService
	Engagement service.EngagementService
	Moderation service.ModerationService
	Donations  service.DonationService
}

// Server is the gRPC front of the catalog service.
type Server struct {
	grpcServer *grpc.Server
	health     *health.Server
	services   Services
	log        *logger.Logger
}

// New builds the gRPC server with logging and metrics interceptors. When
// validator is non-nil, bearer-token authentication is enforced on every
// non-health method.
func New(services Services, m *metrics.Metrics, validator auth.TokenValidator, log *logger.Logger) *Server {
	unary := []grpc.UnaryServerInterceptor{
		logger.UnaryServerInterceptor(log),
		metrics.UnaryServerInterceptor(m),
	}
	stream := []grpc.StreamServerInterceptor{
		logger.StreamServerInterceptor(log),
		metrics.StreamServerInterceptor(m),
	}
	if validator != nil {
		unary = append(unary, auth.UnaryServerInterceptor(validator))
		stream = append(stream, auth.StreamServerInterceptor(validator))
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(unary...),
		grpc.ChainStreamInterceptor(stream...),
	)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	return &Server{
		grpcServer: grpcServer,
		health:     healthServer,
		services:   services,
		log:        log,
	}
}

// Serve blocks serving on the listener.
func (s *Server) Serve(lis net.Listener) error {
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	return s.grpcServer.Serve(lis)
}

// GracefulStop drains in-flight requests and stops the server.
func (s *Server) GracefulStop() {
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	s.grpcServer.GracefulStop()
}
