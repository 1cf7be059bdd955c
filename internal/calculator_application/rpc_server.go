package calculator_application

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/ERRORIK404/Scientific_Calculator/internal/session"
	rpc "github.com/ERRORIK404/Scientific_Calculator/pkg/calculator_rpc"
	locerr "github.com/ERRORIK404/Scientific_Calculator/pkg/local_errors"
	"github.com/ERRORIK404/Scientific_Calculator/pkg/tokenezation"
)

type loginKey struct{}

// authInterceptor достаёт владельца сессии из метаданных authorization
func (a *Application) authInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	md, _ := metadata.FromIncomingContext(ctx)
	values := md.Get(rpc.AuthorizationKey)
	if len(values) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing authorization metadata")
	}
	token := strings.TrimPrefix(values[0], "Bearer ")
	login, err := tokenezation.CheckToken(token, a.config.JWT_SECRET)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}
	return handler(context.WithValue(ctx, loginKey{}, login), req)
}

func loginFrom(ctx context.Context) string {
	login, _ := ctx.Value(loginKey{}).(string)
	return login
}

type rpcServer struct {
	app *Application
}

var _ rpc.CalculatorServiceServer = (*rpcServer)(nil)

func (s *rpcServer) state(ctx context.Context, action func(*session.Session) error) (*structpb.Struct, error) {
	var fields map[string]any
	err := s.app.withSession(loginFrom(ctx), func(sess *session.Session) error {
		if err := action(sess); err != nil {
			return err
		}
		fields = map[string]any{"buffer": sess.Buffer(), "precision": sess.Precision()}
		return nil
	})
	if err != nil {
		return nil, s.app.rpcError(ctx, err)
	}
	return structpb.NewStruct(fields)
}

func (s *rpcServer) Append(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	return s.state(ctx, func(sess *session.Session) error {
		sess.Append(in.GetValue())
		return nil
	})
}

func (s *rpcServer) Clear(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return s.state(ctx, func(sess *session.Session) error {
		sess.Clear()
		return nil
	})
}

func (s *rpcServer) ToggleSign(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return s.state(ctx, func(sess *session.Session) error {
		sess.ToggleSign()
		return nil
	})
}

func (s *rpcServer) Evaluate(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	var result string
	err := s.app.withSession(loginFrom(ctx), func(sess *session.Session) error {
		var err error
		result, err = sess.Evaluate()
		return err
	})
	if err != nil {
		return nil, s.app.rpcError(ctx, err)
	}
	return wrapperspb.String(result), nil
}

func (s *rpcServer) SetPrecision(ctx context.Context, in *wrapperspb.Int32Value) (*structpb.Struct, error) {
	return s.state(ctx, func(sess *session.Session) error {
		return sess.SetPrecision(int(in.GetValue()))
	})
}

func (s *rpcServer) History(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	var entries []any
	err := s.app.withSession(loginFrom(ctx), func(sess *session.Session) error {
		for _, e := range sess.History() {
			entries = append(entries, map[string]any{
				"timestamp":  e.Timestamp,
				"expression": e.Expression,
				"result":     e.Result,
			})
		}
		return nil
	})
	if err != nil {
		return nil, s.app.rpcError(ctx, err)
	}
	return structpb.NewStruct(map[string]any{"entries": entries})
}

func (s *rpcServer) ClearHistory(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	err := s.app.withSession(loginFrom(ctx), func(sess *session.Session) error {
		sess.ClearHistory()
		return nil
	})
	if err != nil {
		return nil, s.app.rpcError(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

func (s *rpcServer) ExportHistory(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	export, err := s.app.export(loginFrom(ctx))
	if err != nil {
		return nil, s.app.rpcError(ctx, err)
	}
	return wrapperspb.String(export.Content), nil
}

// rpcError переводит ошибку предметной области в gRPC статус
func (a *Application) rpcError(ctx context.Context, err error) error {
	var evalErr *locerr.EvalError
	switch {
	case errors.As(err, &evalErr):
		a.log.Info("session.evaluate.failed", "login", loginFrom(ctx), "kind", evalErr.Kind, "error", evalErr.Msg)
		return status.Error(codes.InvalidArgument, evalErr.Error())
	case errors.Is(err, locerr.ErrPrecisionOutOfRange):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, locerr.ErrNothingToExport):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, locerr.ErrNoSessionOwner):
		return status.Error(codes.Unauthenticated, err.Error())
	}
	a.log.Error("rpc.failed", "login", loginFrom(ctx), "error", err)
	return status.Error(codes.Internal, "internal error")
}
