// Package grpc hosts the gRPC transport handler.
//
// The gRPC surface is currently limited to the standard health service,
// which load balancers and orchestrators probe to decide whether the
// instance may receive traffic.
package grpc

import (
	"github.com/lanaseq/lanaseq/internal/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Handler is the root gRPC transport handler. A handler instance is created
// once at startup and shared by the gRPC server.
type Handler struct {
	// health reports the serving status probed by grpc_health_v1 clients.
	health *health.Server

	// logger is used for diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler] and returns the initialized instance.
func NewHandler(logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		health: health.NewServer(),
		logger: logger,
	}
}

// Register attaches all gRPC services exposed by this handler to the given
// server. Must be called before the server starts serving.
func (h *Handler) Register(server *grpc.Server) {
	healthpb.RegisterHealthServer(server, h.health)
	h.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
}

// Shutdown flips the health status to NOT_SERVING so probes drain traffic
// away before the server stops accepting connections.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}
