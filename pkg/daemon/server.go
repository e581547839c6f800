package daemon

import (
	"context"
	"encoding/json"
	"net"
	"sync"

	"github.com/sourcegraph/jsonrpc2"

	"src.tled.dev/pkg/store"
	"src.tled.dev/pkg/store/storedefs"
	"src.tled.dev/pkg/tlisp"
	"src.tled.dev/pkg/tlisp/vals"
)

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

// Wire types shared by the server and the client.
type (
	// ExecuteRequest is the parameter of the execute RPC.
	ExecuteRequest struct {
		Source string `json:"source"`
	}
	// ExecuteResponse carries the textual representation of the value of the
	// last form.
	ExecuteResponse struct {
		Value string `json:"value"`
	}
	// LocRequest is the parameter of the loc/get and loc/set RPCs.
	LocRequest struct {
		Path string `json:"path"`
		Line int    `json:"line,omitempty"`
		Col  int    `json:"col,omitempty"`
	}
	// LocResponse is the result of the loc/get RPC.
	LocResponse struct {
		Line  int  `json:"line"`
		Col   int  `json:"col"`
		Found bool `json:"found"`
	}
	// CmdAddRequest is the parameter of the cmd/add RPC.
	CmdAddRequest struct {
		Text string `json:"text"`
	}
	// CmdAddResponse is the result of the cmd/add RPC.
	CmdAddResponse struct {
		Seq int `json:"seq"`
	}
	// CmdListRequest is the parameter of the cmd/list RPC.
	CmdListRequest struct {
		From int `json:"from"`
		Upto int `json:"upto"`
	}
	// CmdListResponse is the result of the cmd/list RPC.
	CmdListResponse struct {
		Cmds []storedefs.Cmd `json:"cmds"`
	}
)

// service holds the state shared by all connections: the session store and
// one daemon-owned interpreter for the execute RPC. The interpreter is not
// safe for concurrent use, so execute requests are serialized.
type service struct {
	st     store.DBStore
	interp *tlisp.Interp
	mu     sync.Mutex
}

// serve starts the accept loop and returns a function that stops it and
// closes the store.
func serve(sockpath, dbpath string, ready chan<- struct{}) (func(), error) {
	listener, err := net.Listen("unix", sockpath)
	if err != nil {
		return nil, err
	}
	st, err := store.NewStore(dbpath)
	if err != nil {
		listener.Close()
		return nil, err
	}

	svc := &service{st: st, interp: tlisp.New()}
	handler := svc.handler()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				// Closed by the stop function.
				return
			}
			logger.Println("accepted new connection")
			jsonrpc2.NewConn(ctx,
				jsonrpc2.NewBufferedStream(conn, jsonrpc2.PlainObjectCodec{}),
				handler)
		}
	}()
	if ready != nil {
		close(ready)
	}
	return func() {
		cancel()
		listener.Close()
		st.Close()
	}, nil
}

type method func(context.Context, json.RawMessage) (any, error)

func (s *service) handler() jsonrpc2.Handler {
	methods := map[string]method{
		"execute":  s.execute,
		"loc/get":  s.locGet,
		"loc/set":  s.locSet,
		"cmd/add":  s.cmdAdd,
		"cmd/list": s.cmdList,
	}
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			return nil, errMethodNotFound
		}
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		return fn(ctx, params)
	})
}

func (s *service) execute(_ context.Context, rawParams json.RawMessage) (any, error) {
	var params ExecuteRequest
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.interp.Execute("[rpc]", params.Source)
	if err != nil {
		return nil, err
	}
	return ExecuteResponse{Value: vals.Repr(v)}, nil
}

func (s *service) locGet(_ context.Context, rawParams json.RawMessage) (any, error) {
	var params LocRequest
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	loc, err := s.st.Loc(params.Path)
	if err == storedefs.ErrNoLoc {
		return LocResponse{}, nil
	}
	if err != nil {
		return nil, err
	}
	return LocResponse{Line: loc.Line, Col: loc.Col, Found: true}, nil
}

func (s *service) locSet(_ context.Context, rawParams json.RawMessage) (any, error) {
	var params LocRequest
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	err := s.st.SetLoc(params.Path, storedefs.Loc{Line: params.Line, Col: params.Col})
	return nil, err
}

func (s *service) cmdAdd(_ context.Context, rawParams json.RawMessage) (any, error) {
	var params CmdAddRequest
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	seq, err := s.st.AddCmd(params.Text)
	if err != nil {
		return nil, err
	}
	return CmdAddResponse{Seq: seq}, nil
}

func (s *service) cmdList(_ context.Context, rawParams json.RawMessage) (any, error) {
	var params CmdListRequest
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	cmds, err := s.st.CmdsWithSeq(params.From, params.Upto)
	if err != nil {
		return nil, err
	}
	return CmdListResponse{Cmds: cmds}, nil
}
