package grpc

// proto.go defines the gRPC server interface derived from
// econsentinel/v1/sentinel.proto. This file serves as a stand-in for
// buf-generated code. Once `buf generate` is run, replace this file with
// the import from github.com/Valentinus295/econsentinel/api/gen/go/econsentinel/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// SentinelServiceServer is the server API for SentinelService.
type SentinelServiceServer interface {
	SimulateScenario(context.Context, *SimulateScenarioRequest) (*SimulateScenarioResponse, error)
	GetMarketSnapshot(context.Context, *GetMarketSnapshotRequest) (*GetMarketSnapshotResponse, error)
	GetLagTrend(context.Context, *GetLagTrendRequest) (*GetLagTrendResponse, error)
	mustEmbedUnimplementedSentinelServiceServer()
}

// UnimplementedSentinelServiceServer provides forward-compatible default implementations.
type UnimplementedSentinelServiceServer struct{}

func (UnimplementedSentinelServiceServer) SimulateScenario(context.Context, *SimulateScenarioRequest) (*SimulateScenarioResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SimulateScenario not implemented")
}
func (UnimplementedSentinelServiceServer) GetMarketSnapshot(context.Context, *GetMarketSnapshotRequest) (*GetMarketSnapshotResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetMarketSnapshot not implemented")
}
func (UnimplementedSentinelServiceServer) GetLagTrend(context.Context, *GetLagTrendRequest) (*GetLagTrendResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetLagTrend not implemented")
}
func (UnimplementedSentinelServiceServer) mustEmbedUnimplementedSentinelServiceServer() {}

// RegisterSentinelServiceServer registers the SentinelServiceServer with the gRPC server.
func RegisterSentinelServiceServer(s *grpclib.Server, srv SentinelServiceServer) {
	s.RegisterService(&_SentinelService_serviceDesc, srv)
}

var _SentinelService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "econsentinel.v1.SentinelService",
	HandlerType: (*SentinelServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "SimulateScenario", Handler: _SentinelService_SimulateScenario_Handler},
		{MethodName: "GetMarketSnapshot", Handler: _SentinelService_GetMarketSnapshot_Handler},
		{MethodName: "GetLagTrend", Handler: _SentinelService_GetLagTrend_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

func _SentinelService_SimulateScenario_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(SimulateScenarioRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(SentinelServiceServer).SimulateScenario(ctx, req)
}

func _SentinelService_GetMarketSnapshot_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetMarketSnapshotRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(SentinelServiceServer).GetMarketSnapshot(ctx, req)
}

func _SentinelService_GetLagTrend_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetLagTrendRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(SentinelServiceServer).GetLagTrend(ctx, req)
}
