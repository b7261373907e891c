package server

import (
	"net"

	"google.golang.org/grpc"

	"github.com/MKhiriev/black-swan-sentinel/internal/config"
	"github.com/MKhiriev/black-swan-sentinel/internal/logger"
)

type grpcServer struct {
	server  *grpc.Server
	address string

	logger *logger.Logger
}

func newGRPCServer(server *grpc.Server, cfg config.Server, logger *logger.Logger) *grpcServer {
	return &grpcServer{
		server:  server,
		address: cfg.GRPCAddress,
		logger:  logger,
	}
}

func (g *grpcServer) RunServer() {
	listener, err := net.Listen("tcp", g.address)
	if err != nil {
		g.logger.Error().Err(err).Str("address", g.address).Msg("gRPC server Listen")
		return
	}

	g.logger.Info().Str("address", g.address).Msg("gRPC server listening")
	if err := g.server.Serve(listener); err != nil {
		g.logger.Error().Err(err).Msg("gRPC server Serve")
	}
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("gRPC server Shutdown")
	g.server.GracefulStop()
}
