package remote_application

import (
	"context"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	db "github.com/ERRORIK404/Scientific_Calculator/database"
	app "github.com/ERRORIK404/Scientific_Calculator/internal/calculator_application"
	conf "github.com/ERRORIK404/Scientific_Calculator/pkg/config"
	hashing "github.com/ERRORIK404/Scientific_Calculator/pkg/hashing"
	"github.com/ERRORIK404/Scientific_Calculator/pkg/tokenezation"
)

const secret = "test-secret"

func newApplication(t *testing.T) *app.Application {
	t.Helper()
	database, err := db.InitDB(":memory:")
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	hash, err := hashing.HashPassword("pa55word")
	if err != nil {
		t.Fatal(err)
	}
	if err := database.CreateUser("alice", hash); err != nil {
		t.Fatal(err)
	}

	cfg := &conf.Config{JWT_SECRET: secret, TOKEN_TTL: time.Minute, DEFAULT_PRECISION: 10}
	return app.New(cfg, database)
}

// dialBuffered поднимает gRPC сервер в памяти и возвращает клиента с токеном
func dialBuffered(t *testing.T, a *app.Application, token string) *Client {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	server := a.NewGRPCServer()
	go server.Serve(lis)
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return NewClient(conn, token)
}

func TestRemoteEvaluate(t *testing.T) {
	token, err := tokenezation.GenerateToken("alice", secret, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	client := dialBuffered(t, newApplication(t), token)
	ctx := context.Background()

	got, err := client.Evaluate(ctx, "2**10")
	if err != nil || got != "1024" {
		t.Fatalf("expected 1024, got %q (%v)", got, err)
	}

	if err := client.SetPrecision(ctx, 4); err != nil {
		t.Fatalf("set precision: %v", err)
	}
	got, err = client.Evaluate(ctx, "2/3")
	if err != nil || got != "0.6667" {
		t.Fatalf("expected 0.6667, got %q (%v)", got, err)
	}

	_, err = client.Evaluate(ctx, "sqrt(-1)")
	if status.Code(err) != codes.InvalidArgument || !strings.Contains(err.Error(), "DomainError") {
		t.Fatalf("expected InvalidArgument DomainError, got %v", err)
	}
	if err := client.SetPrecision(ctx, 1); status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument for precision 1, got %v", err)
	}

	history, err := client.History(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 2 || history[0].Expression != "2/3" || history[1].Result != "1024" {
		t.Fatalf("unexpected history %+v", history)
	}

	doc, err := client.ExportHistory(ctx)
	if err != nil || !strings.Contains(doc, "2**10 = 1024") {
		t.Fatalf("unexpected export %q (%v)", doc, err)
	}

	if err := client.ClearHistory(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := client.ExportHistory(ctx); status.Code(err) != codes.NotFound {
		t.Fatalf("expected NotFound for empty history, got %v", err)
	}
}

func TestRemoteRequiresToken(t *testing.T) {
	client := dialBuffered(t, newApplication(t), "not-a-token")
	if _, err := client.Evaluate(context.Background(), "1+1"); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(newApplication(t).Routes())
	defer srv.Close()

	token, err := Login(context.Background(), srv.Client(), srv.URL, "alice", "pa55word")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login, err := tokenezation.CheckToken(token, secret); err != nil || login != "alice" {
		t.Fatalf("unexpected token owner %q (%v)", login, err)
	}

	if _, err := Login(context.Background(), srv.Client(), srv.URL, "alice", "wrong"); err == nil {
		t.Fatalf("expected login failure")
	}
}
