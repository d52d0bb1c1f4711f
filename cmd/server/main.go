// Command server exposes the interpreters over HTTP and gRPC. The gRPC
// service uses a JSON codec with hand-written descriptors, so no protobuf
// toolchain is involved. A cron-backed scheduler re-runs registered queries
// and keeps their latest results available.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"

	"github.com/SimonWaldherr/tinyInterp/internal/expr"
	"github.com/SimonWaldherr/tinyInterp/internal/fixture"
	"github.com/SimonWaldherr/tinyInterp/internal/query"
	"github.com/SimonWaldherr/tinyInterp/internal/rematch"
	"github.com/SimonWaldherr/tinyInterp/internal/schedule"
	"github.com/SimonWaldherr/tinyInterp/internal/tables"
)

var (
	flagHTTP    = flag.String("http", ":8080", "HTTP listen address (empty to disable)")
	flagGRPC    = flag.String("grpc", ":9090", "gRPC listen address (empty to disable)")
	flagFixture = flag.String("fixture", "", "YAML fixture seeding variables and tables")
)

// Request/response types shared by HTTP and gRPC.
type evalRequest struct {
	Expr string             `json:"expr"`
	Vars map[string]float64 `json:"vars,omitempty"`
}
type evalResponse struct {
	Result   float64 `json:"result"`
	Error    string  `json:"error,omitempty"`
	Duration string  `json:"duration"`
}

type queryRequest struct {
	SQL string `json:"sql"`
}
type queryResponse struct {
	Rows     []map[string]any `json:"rows"`
	Count    int              `json:"count"`
	Error    string           `json:"error,omitempty"`
	Duration string           `json:"duration"`
}

type matchRequest struct {
	Pattern string `json:"pattern"`
	Input   string `json:"input"`
}
type matchResponse struct {
	Match bool `json:"match"`
}

type scheduleRequest struct {
	Name string `json:"name"`
	SQL  string `json:"sql"`
	Cron string `json:"cron"`
}

// gRPC JSON codec
type jsonCodec struct{}

func (jsonCodec) Name() string                       { return "json" }
func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// gRPC service interface and descriptors (manual, no protobuf)
type InterpServer interface {
	Eval(context.Context, *evalRequest) (*evalResponse, error)
	Query(context.Context, *queryRequest) (*queryResponse, error)
	Match(context.Context, *matchRequest) (*matchResponse, error)
}

func registerInterpServer(s *grpc.Server, srv InterpServer) {
	s.RegisterService(&grpc.ServiceDesc{
		ServiceName: "tinyinterp.Interp",
		HandlerType: (*InterpServer)(nil),
		Methods: []grpc.MethodDesc{
			{MethodName: "Eval", Handler: _Interp_Eval_Handler},
			{MethodName: "Query", Handler: _Interp_Query_Handler},
			{MethodName: "Match", Handler: _Interp_Match_Handler},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "tinyinterp",
	}, srv)
}

func _Interp_Eval_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(evalRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InterpServer).Eval(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/tinyinterp.Interp/Eval"}
	handler := func(ctx context.Context, req any) (any, error) { return srv.(InterpServer).Eval(ctx, req.(*evalRequest)) }
	return interceptor(ctx, in, info, handler)
}

func _Interp_Query_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(queryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InterpServer).Query(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/tinyinterp.Interp/Query"}
	handler := func(ctx context.Context, req any) (any, error) { return srv.(InterpServer).Query(ctx, req.(*queryRequest)) }
	return interceptor(ctx, in, info, handler)
}

func _Interp_Match_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(matchRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InterpServer).Match(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/tinyinterp.Interp/Match"}
	handler := func(ctx context.Context, req any) (any, error) { return srv.(InterpServer).Match(ctx, req.(*matchRequest)) }
	return interceptor(ctx, in, info, handler)
}

// server state
type server struct {
	store *tables.Store
	vars  map[string]float64
	sched *schedule.Scheduler

	mu     sync.RWMutex
	latest map[string]schedule.Result // last delivery per scheduled job
}

func newServer(store *tables.Store, vars map[string]float64) *server {
	s := &server{
		store:  store,
		vars:   vars,
		latest: make(map[string]schedule.Result),
	}
	s.sched = schedule.New(store, func(r schedule.Result) {
		s.mu.Lock()
		s.latest[r.Name] = r
		s.mu.Unlock()
	})
	return s
}

// Eval builds a fresh context per request: the shared seed variables first,
// then the request's own bindings. No request sees another's context.
func (s *server) Eval(_ context.Context, req *evalRequest) (*evalResponse, error) {
	start := time.Now()
	ctx := expr.NewContext()
	for name, val := range s.vars {
		ctx.SetVariable(name, val)
	}
	for name, val := range req.Vars {
		ctx.SetVariable(name, val)
	}
	v, err := expr.Evaluate(req.Expr, ctx)
	resp := &evalResponse{Result: v, Duration: time.Since(start).String()}
	if err != nil {
		resp.Error = err.Error()
		resp.Result = 0
	}
	return resp, nil
}

func (s *server) Query(_ context.Context, req *queryRequest) (*queryResponse, error) {
	start := time.Now()
	rows, err := query.Execute(s.store, req.SQL)
	resp := &queryResponse{Duration: time.Since(start).String()}
	if err != nil {
		resp.Error = err.Error()
		return resp, nil
	}
	resp.Rows = make([]map[string]any, len(rows))
	for i, r := range rows {
		resp.Rows[i] = r
	}
	resp.Count = len(rows)
	return resp, nil
}

func (s *server) Match(_ context.Context, req *matchRequest) (*matchResponse, error) {
	return &matchResponse{Match: rematch.Test(req.Pattern, req.Input)}, nil
}

// HTTP handlers

func (s *server) handleEval(w http.ResponseWriter, r *http.Request) {
	var req evalRequest
	if !decodeBody(w, r, &req) {
		return
	}
	resp, _ := s.Eval(r.Context(), &req)
	writeJSON(w, resp)
}

func (s *server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	resp, _ := s.Query(r.Context(), &req)
	writeJSON(w, resp)
}

func (s *server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	resp, _ := s.Match(r.Context(), &req)
	writeJSON(w, resp)
}

func (s *server) handleTables(w http.ResponseWriter, _ *http.Request) {
	type tableInfo struct {
		Name string `json:"name"`
		Rows int    `json:"rows"`
	}
	out := []tableInfo{}
	for _, name := range s.store.Names() {
		out = append(out, tableInfo{Name: name, Rows: len(s.store.Table(name))})
	}
	writeJSON(w, out)
}

func (s *server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req scheduleRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if err := s.sched.Add(req.Name, req.SQL, req.Cron); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, map[string]any{"registered": req.Name})
	case http.MethodGet:
		writeJSON(w, s.sched.Jobs())
	case http.MethodDelete:
		name := r.URL.Query().Get("name")
		s.sched.Remove(name)
		s.mu.Lock()
		delete(s.latest, name)
		s.mu.Unlock()
		writeJSON(w, map[string]any{"removed": name})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *server) handleScheduleResult(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	s.mu.RLock()
	res, ok := s.latest[name]
	s.mu.RUnlock()
	if !ok {
		http.Error(w, "no result for "+strconv.Quote(name), http.StatusNotFound)
		return
	}
	out := map[string]any{"name": res.Name, "rows": res.Rows, "at": res.At}
	if res.Err != nil {
		out["error"] = res.Err.Error()
	}
	writeJSON(w, out)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, fmt.Sprintf("bad request: %v", err), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func main() {
	flag.Parse()

	store := tables.NewStore()
	vars := map[string]float64{}
	if *flagFixture != "" {
		f, err := fixture.LoadFile(*flagFixture)
		if err != nil {
			log.Fatalf("fixture: %v", err)
		}
		vars = f.Variables
		fs := f.Store()
		for _, name := range fs.Names() {
			store.AddTable(name, fs.Table(name))
		}
	}

	srv := newServer(store, vars)
	srv.sched.Start()
	defer srv.sched.Stop()

	encoding.RegisterCodec(jsonCodec{})

	if *flagGRPC != "" {
		go func() {
			lis, err := net.Listen("tcp", *flagGRPC)
			if err != nil {
				log.Printf("gRPC listen error: %v", err)
				return
			}
			gs := grpc.NewServer()
			registerInterpServer(gs, srv)
			log.Printf("gRPC listening on %s", *flagGRPC)
			if err := gs.Serve(lis); err != nil {
				log.Printf("gRPC serve error: %v", err)
			}
		}()
	}

	if *flagHTTP != "" {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/eval", srv.handleEval)
		mux.HandleFunc("/api/query", srv.handleQuery)
		mux.HandleFunc("/api/match", srv.handleMatch)
		mux.HandleFunc("/api/tables", srv.handleTables)
		mux.HandleFunc("/api/schedule", srv.handleSchedule)
		mux.HandleFunc("/api/schedule/result", srv.handleScheduleResult)
		log.Printf("HTTP listening on %s", *flagHTTP)
		if err := http.ListenAndServe(*flagHTTP, mux); err != nil {
			log.Fatalf("HTTP serve error: %v", err)
		}
	} else {
		select {}
	}
}
