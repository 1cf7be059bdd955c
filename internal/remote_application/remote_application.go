// Package remote_application работает с калькулятором на сервере: вход по HTTP и вычисления по gRPC.
package remote_application

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	rpc "github.com/ERRORIK404/Scientific_Calculator/pkg/calculator_rpc"
	structs "github.com/ERRORIK404/Scientific_Calculator/pkg/structs"
)

type Client struct {
	conn  *grpc.ClientConn
	rpc   rpc.CalculatorServiceClient
	token string
}

// Dial подключается к gRPC API по адресу addr
func Dial(addr, token string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, err
	}
	c := NewClient(conn, token)
	c.conn = conn
	return c, nil
}

func NewClient(cc grpc.ClientConnInterface, token string) *Client {
	return &Client{rpc: rpc.NewCalculatorServiceClient(cc), token: token}
}

func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *Client) authorized(ctx context.Context) context.Context {
	return metadata.AppendToOutgoingContext(ctx, rpc.AuthorizationKey, "Bearer "+c.token)
}

// Evaluate заменяет строку ввода на expression и вычисляет её
func (c *Client) Evaluate(ctx context.Context, expression string) (string, error) {
	ctx = c.authorized(ctx)
	if _, err := c.rpc.Clear(ctx, &emptypb.Empty{}); err != nil {
		return "", err
	}
	if _, err := c.rpc.Append(ctx, wrapperspb.String(expression)); err != nil {
		return "", err
	}
	res, err := c.rpc.Evaluate(ctx, &emptypb.Empty{})
	if err != nil {
		return "", err
	}
	return res.GetValue(), nil
}

func (c *Client) SetPrecision(ctx context.Context, precision int) error {
	_, err := c.rpc.SetPrecision(c.authorized(ctx), wrapperspb.Int32(int32(precision)))
	return err
}

func (c *Client) History(ctx context.Context) ([]structs.HistoryEntry, error) {
	res, err := c.rpc.History(c.authorized(ctx), &emptypb.Empty{})
	if err != nil {
		return nil, err
	}
	var entries []structs.HistoryEntry
	for _, v := range res.GetFields()["entries"].GetListValue().GetValues() {
		fields := v.GetStructValue().GetFields()
		entries = append(entries, structs.HistoryEntry{
			Timestamp:  fields["timestamp"].GetStringValue(),
			Expression: fields["expression"].GetStringValue(),
			Result:     fields["result"].GetStringValue(),
		})
	}
	return entries, nil
}

func (c *Client) ClearHistory(ctx context.Context) error {
	_, err := c.rpc.ClearHistory(c.authorized(ctx), &emptypb.Empty{})
	return err
}

func (c *Client) ExportHistory(ctx context.Context) (string, error) {
	res, err := c.rpc.ExportHistory(c.authorized(ctx), &emptypb.Empty{})
	if err != nil {
		return "", err
	}
	return res.GetValue(), nil
}

// Login получает JWT через HTTP API. baseURL вида http://localhost:8080
func Login(ctx context.Context, client *http.Client, baseURL, login, password string) (string, error) {
	body, err := json.Marshal(map[string]string{"login": login, "password": password})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(baseURL, "/")+"/api/v1/login", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out struct {
		Token string `json:"token"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login failed: %s (%d)", out.Error, resp.StatusCode)
	}
	return out.Token, nil
}
