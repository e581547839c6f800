package daemon

import (
	"context"
	"net"

	"github.com/sourcegraph/jsonrpc2"

	"src.tled.dev/pkg/store/storedefs"
)

// Client is a client of the daemon service.
type Client struct {
	conn *jsonrpc2.Conn
}

// Dial connects to the daemon listening on the given unix socket.
func Dial(ctx context.Context, sockpath string) (*Client, error) {
	conn, err := net.Dial("unix", sockpath)
	if err != nil {
		return nil, err
	}
	rpcConn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(conn, jsonrpc2.PlainObjectCodec{}),
		noopHandler{})
	return &Client{rpcConn}, nil
}

// Close closes the connection.
func (c *Client) Close() error { return c.conn.Close() }

// Execute evaluates T-Lisp source in the daemon's interpreter and returns
// the textual representation of the value of the last form.
func (c *Client) Execute(ctx context.Context, src string) (string, error) {
	var resp ExecuteResponse
	err := c.conn.Call(ctx, "execute", ExecuteRequest{Source: src}, &resp)
	return resp.Value, err
}

// Loc returns the saved cursor location of a file.
func (c *Client) Loc(ctx context.Context, path string) (storedefs.Loc, bool, error) {
	var resp LocResponse
	err := c.conn.Call(ctx, "loc/get", LocRequest{Path: path}, &resp)
	return storedefs.Loc{Line: resp.Line, Col: resp.Col}, resp.Found, err
}

// SetLoc saves the cursor location of a file.
func (c *Client) SetLoc(ctx context.Context, path string, loc storedefs.Loc) error {
	return c.conn.Call(ctx, "loc/set",
		LocRequest{Path: path, Line: loc.Line, Col: loc.Col}, nil)
}

// AddCmd adds an entry to the M-x command history.
func (c *Client) AddCmd(ctx context.Context, text string) (int, error) {
	var resp CmdAddResponse
	err := c.conn.Call(ctx, "cmd/add", CmdAddRequest{Text: text}, &resp)
	return resp.Seq, err
}

// Cmds lists M-x command history entries with sequence numbers in
// [from, upto).
func (c *Client) Cmds(ctx context.Context, from, upto int) ([]storedefs.Cmd, error) {
	var resp CmdListResponse
	err := c.conn.Call(ctx, "cmd/list", CmdListRequest{From: from, Upto: upto}, &resp)
	return resp.Cmds, err
}

// noopHandler ignores requests from the server; the daemon never sends any.
type noopHandler struct{}

func (noopHandler) Handle(context.Context, *jsonrpc2.Conn, *jsonrpc2.Request) {}
