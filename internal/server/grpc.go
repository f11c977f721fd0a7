package server

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/kevinkasson/boardsim/internal/config"
)

// gRPC surface. Messages are google.protobuf.Struct:
//
//	request:  {players, rounds, seed, replications}   all optional numbers;
//	          seed may also be a decimal string for values above 2^53
//	response: {id, players, rounds, trials, rolls, total, landings: [41 numbers],
//	           share: [41 {mean, stddev, p50, p90, p99}] with replications > 1}
const (
	SimulatorServiceName = "boardsim.v1.Simulator"
	SimulateMethod       = "/" + SimulatorServiceName + "/Simulate"
)

// SimulatorServer is the server API for the Simulator service.
type SimulatorServer interface {
	Simulate(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func RegisterSimulatorServer(s grpc.ServiceRegistrar, srv SimulatorServer) {
	s.RegisterService(&simulatorServiceDesc, srv)
}

var simulatorServiceDesc = grpc.ServiceDesc{
	ServiceName: SimulatorServiceName,
	HandlerType: (*SimulatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Simulate", Handler: simulateHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "boardsim/v1/simulator.proto",
}

func simulateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SimulatorServer).Simulate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SimulateMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SimulatorServer).Simulate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// SimulatorClient calls the Simulator service.
type SimulatorClient struct {
	cc grpc.ClientConnInterface
}

func NewSimulatorClient(cc grpc.ClientConnInterface) *SimulatorClient {
	return &SimulatorClient{cc: cc}
}

func (c *SimulatorClient) Simulate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, SimulateMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// GRPC adapts a Server to SimulatorServer.
func (s *Server) GRPC() SimulatorServer { return grpcSimulator{s: s} }

type grpcSimulator struct {
	s *Server
}

func (g grpcSimulator) Simulate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	o, err := structOverrides(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	out, err := g.s.Simulate(ctx, o)
	if err != nil {
		code := codes.Internal
		switch {
		case errors.Is(err, ErrInvalidRequest):
			code = codes.InvalidArgument
		case errors.Is(err, context.Canceled):
			code = codes.Canceled
		}
		return nil, status.Error(code, err.Error())
	}

	landings := make([]any, len(out.Result.Landings))
	for i, n := range out.Result.Landings {
		landings[i] = n
	}
	fields := map[string]any{
		"id":       out.ID,
		"players":  out.Result.Players,
		"rounds":   out.Result.Rounds,
		"trials":   out.Trials,
		"rolls":    out.Result.Rolls,
		"total":    out.Result.Total(),
		"landings": landings,
	}
	if len(out.Share) > 0 {
		share := make([]any, len(out.Share))
		for i, st := range out.Share {
			share[i] = map[string]any{
				"mean":   st.Mean,
				"stddev": st.StdDev,
				"p50":    st.P50,
				"p90":    st.P90,
				"p99":    st.P99,
			}
		}
		fields["share"] = share
	}
	resp, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return resp, nil
}

// maxExactInt is the largest integer a Struct number carries exactly.
const maxExactInt = 1 << 53

// structOverrides reads whole, non-negative numbers out of the request struct.
// Numbers above maxExactInt are rejected rather than rounded.
func structOverrides(in *structpb.Struct) (config.Overrides, error) {
	var o config.Overrides
	fields := in.GetFields()
	num := func(key string) (float64, bool, error) {
		v, ok := fields[key]
		if !ok {
			return 0, false, nil
		}
		f, ok := v.GetKind().(*structpb.Value_NumberValue)
		if !ok || f.NumberValue < 0 || f.NumberValue != math.Trunc(f.NumberValue) {
			return 0, false, fmt.Errorf("%s must be a non-negative integer", key)
		}
		if f.NumberValue > maxExactInt {
			return 0, false, fmt.Errorf("%s must be at most %d", key, int64(maxExactInt))
		}
		return f.NumberValue, true, nil
	}
	intField := func(key string) (*int, error) {
		f, ok, err := num(key)
		if err != nil || !ok {
			return nil, err
		}
		v := int(f)
		return &v, nil
	}

	var err error
	if o.Players, err = intField("players"); err != nil {
		return o, err
	}
	if o.Rounds, err = intField("rounds"); err != nil {
		return o, err
	}
	if o.Replications, err = intField("replications"); err != nil {
		return o, err
	}
	if o.Seed, err = seedField(fields["seed"]); err != nil {
		return o, err
	}
	if o.Players != nil && o.Rounds == nil && *o.Players > 0 {
		rounds := config.DefaultTurns / *o.Players
		o.Rounds = &rounds
	}
	return o, nil
}

// seedField accepts a whole number up to maxExactInt or a decimal string
// covering the full uint64 range.
func seedField(v *structpb.Value) (*uint64, error) {
	if v == nil {
		return nil, nil
	}
	var seed uint64
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		s, err := strconv.ParseUint(k.StringValue, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("seed must be a decimal uint64: %w", err)
		}
		seed = s
	case *structpb.Value_NumberValue:
		f := k.NumberValue
		if f < 0 || f != math.Trunc(f) || f > maxExactInt {
			return nil, fmt.Errorf("seed must be an integer in [0,%d]; pass larger seeds as a string", int64(maxExactInt))
		}
		seed = uint64(f)
	default:
		return nil, errors.New("seed must be a number or a string")
	}
	return &seed, nil
}
