// Package calculator_application поднимает HTTP и gRPC API поверх сессий калькулятора.
package calculator_application

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	db "github.com/ERRORIK404/Scientific_Calculator/database"
	"github.com/ERRORIK404/Scientific_Calculator/internal/session"
	rpc "github.com/ERRORIK404/Scientific_Calculator/pkg/calculator_rpc"
	conf "github.com/ERRORIK404/Scientific_Calculator/pkg/config"
	models "github.com/ERRORIK404/Scientific_Calculator/pkg/db_models"
	locerr "github.com/ERRORIK404/Scientific_Calculator/pkg/local_errors"
	"github.com/ERRORIK404/Scientific_Calculator/pkg/logger"
	structs "github.com/ERRORIK404/Scientific_Calculator/pkg/structs"
)

const shutdownTimeout = 5 * time.Second

type Application struct {
	config   *conf.Config
	db       *db.DB
	sessions *structs.SafeSessionMap[*session.Session]
	now      func() time.Time
	log      *slog.Logger
}

type Option func(*Application)

// WithClock подменяет часы для сессий и имён выгрузок
func WithClock(now func() time.Time) Option {
	return func(a *Application) { a.now = now }
}

func New(config *conf.Config, database *db.DB, opts ...Option) *Application {
	a := &Application{
		config: config,
		db:     database,
		now:    time.Now,
		log:    logger.L(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.sessions = structs.NewSafeSessionMap(func() *session.Session {
		return session.New(session.WithPrecision(a.config.DEFAULT_PRECISION), session.WithClock(a.now))
	})
	return a
}

// withSession выполняет fn под блокировкой сессии пользователя
func (a *Application) withSession(login string, fn func(*session.Session) error) error {
	if login == "" {
		return locerr.ErrNoSessionOwner
	}
	return a.sessions.With(login, fn)
}

// export собирает историю пользователя и архивирует её в базе
func (a *Application) export(login string) (*models.Export, error) {
	var content string
	err := a.withSession(login, func(s *session.Session) error {
		var err error
		content, err = s.ExportHistory()
		return err
	})
	if err != nil {
		return nil, err
	}

	now := a.now()
	export := &models.Export{
		UserLogin: login,
		FileName:  session.ExportFileName(now),
		Content:   content,
		CreatedAt: now.UTC().Truncate(time.Second),
	}
	export.ID, err = a.db.AddExport(login, export.FileName, content, now)
	if err != nil {
		return nil, err
	}
	a.log.Info("history.exported", "login", login, "id", export.ID)
	return export, nil
}

func (a *Application) NewGRPCServer() *grpc.Server {
	server := grpc.NewServer(grpc.UnaryInterceptor(a.authInterceptor))
	rpc.RegisterCalculatorServiceServer(server, &rpcServer{app: a})
	return server
}

// Run обслуживает HTTP и gRPC, пока не отменён ctx или не упал один из серверов
func (a *Application) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", a.config.GRPC_ADDR)
	if err != nil {
		return err
	}
	grpcServer := a.NewGRPCServer()
	httpServer := &http.Server{
		Addr:              a.config.HTTP_ADDR,
		Handler:           a.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Info("grpc.listening", "addr", a.config.GRPC_ADDR)
		return grpcServer.Serve(lis)
	})
	g.Go(func() error {
		a.log.Info("http.listening", "addr", a.config.HTTP_ADDR)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		grpcServer.GracefulStop()
		return httpServer.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	a.log.Info("server.stopped", "error", err)
	return err
}
