package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/structpb"
)

const catalogServiceName = "suplementos.v1.CatalogAPI"

const (
	healthProcedure          = "/" + catalogServiceName + "/Health"
	categoriesProcedure      = "/" + catalogServiceName + "/Categories"
	catalogProcedure         = "/" + catalogServiceName + "/Catalog"
	selectProcedure          = "/" + catalogServiceName + "/Select"
	resetFiltersProcedure    = "/" + catalogServiceName + "/ResetFilters"
	resetProcedure           = "/" + catalogServiceName + "/Reset"
	searchProcedure          = "/" + catalogServiceName + "/Search"
	generateStackProcedure   = "/" + catalogServiceName + "/GenerateStack"
	popularSearchesProcedure = "/" + catalogServiceName + "/PopularSearches"
)

type server struct {
	app *App
	log *zap.Logger
}

type unaryFunc func(context.Context, *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error)

// newCatalogHandler mounts every procedure of the catalog service and
// returns the path prefix to route to it.
func newCatalogHandler(app *App, log *zap.Logger, opts ...connect.HandlerOption) (string, http.Handler) {
	s := &server{app: app, log: log}
	routes := map[string]unaryFunc{
		healthProcedure:          s.Health,
		categoriesProcedure:      s.Categories,
		catalogProcedure:         s.Catalog,
		selectProcedure:          s.Select,
		resetFiltersProcedure:    s.ResetFilters,
		resetProcedure:           s.Reset,
		searchProcedure:          s.Search,
		generateStackProcedure:   s.GenerateStack,
		popularSearchesProcedure: s.PopularSearches,
	}
	mux := http.NewServeMux()
	for procedure, fn := range routes {
		mux.Handle(procedure, connect.NewUnaryHandler(procedure, fn, opts...))
	}
	return "/" + catalogServiceName + "/", mux
}

func (s *server) Health(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	return respond(map[string]interface{}{"status": "healthy"})
}

func (s *server) Categories(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	return respond(map[string]interface{}{"categories": Categories()})
}

func (s *server) Catalog(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	return respond(s.app.View())
}

func (s *server) Select(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	in := requestMap(req)
	sel := Selection{
		Goal:   getString(in, "goal"),
		Effect: getString(in, "effect"),
		Query:  getString(in, "query"),
	}
	if raw := strings.TrimSpace(getString(in, "category")); raw != "" {
		id, ok := ParseCategory(raw)
		if !ok {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown category %q", raw))
		}
		sel.Category = id
	}
	return respond(s.app.Select(sel))
}

func (s *server) ResetFilters(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	return respond(s.app.ResetFilters())
}

func (s *server) Reset(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	return respond(s.app.Reset())
}

func (s *server) Search(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	added, err := s.app.Search(ctx, getString(requestMap(req), "query"))
	if err != nil {
		return nil, connectError(err)
	}
	if added == nil {
		added = []Supplement{}
	}
	return respond(map[string]interface{}{
		"added": added,
		"view":  s.app.View(),
	})
}

func (s *server) GenerateStack(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	stack, err := s.app.GenerateStack(ctx, getString(requestMap(req), "goal"))
	if err != nil {
		return nil, connectError(err)
	}
	data := map[string]interface{}{"stack": nil}
	if stack != nil {
		data["stack"] = stack
	}
	return respond(data)
}

func (s *server) PopularSearches(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	limit := int(getFloat(requestMap(req), "limit"))
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	searches, err := s.app.PopularSearches(ctx, limit)
	if err != nil {
		s.log.Error("popular searches query failed", zap.Error(err))
		return nil, connect.NewError(connect.CodeInternal, errors.New("search log unavailable"))
	}
	if searches == nil {
		searches = []PopularSearch{}
	}
	return respond(map[string]interface{}{"searches": searches, "limit": limit})
}

// connectError maps application errors onto Connect codes. Stack failures
// carry only their user-facing message.
func connectError(err error) error {
	var genErr *GenerationError
	switch {
	case errors.As(err, &genErr):
		return connect.NewError(connect.CodeUnavailable, errors.New(genErr.Message))
	case errors.Is(err, ErrSearchPending), errors.Is(err, ErrStackPending):
		return connect.NewError(connect.CodeAborted, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func requestMap(req *connect.Request[structpb.Struct]) map[string]interface{} {
	if req == nil || req.Msg == nil {
		return map[string]interface{}{}
	}
	return req.Msg.AsMap()
}

func respond(v interface{}) (*connect.Response[structpb.Struct], error) {
	st, err := toStructPB(v)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(st), nil
}

func toStructPB(v interface{}) (*structpb.Struct, error) {
	// typed values go through JSON so structpb only sees plain maps and slices
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}

func getFloat(m map[string]interface{}, key string) float64 {
	if v, ok := m[key]; ok {
		switch t := v.(type) {
		case float64:
			return t
		case int:
			return float64(t)
		case int64:
			return float64(t)
		}
	}
	return 0
}
