package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/structpb"
)

func newTestServer(t *testing.T, app *App) *httptest.Server {
	t.Helper()
	path, handler := newCatalogHandler(app, zap.NewNop())
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, procedure string, in map[string]interface{}) (map[string]interface{}, error) {
	t.Helper()
	client := connect.NewClient[structpb.Struct, structpb.Struct](srv.Client(), srv.URL+procedure)
	msg, err := structpb.NewStruct(in)
	require.NoError(t, err)
	resp, err := client.CallUnary(context.Background(), connect.NewRequest(msg))
	if err != nil {
		return nil, err
	}
	return resp.Msg.AsMap(), nil
}

func visibleNames(t *testing.T, view map[string]interface{}) []string {
	t.Helper()
	raw, ok := view["supplements"].([]interface{})
	require.True(t, ok, "view has no supplements list")
	var out []string
	for _, r := range raw {
		out = append(out, r.(map[string]interface{})["name"].(string))
	}
	return out
}

func TestAPI_Health(t *testing.T) {
	srv := newTestServer(t, newTestApp(&fakeSearcher{}, &fakeStacker{}))
	out, err := call(t, srv, healthProcedure, nil)
	require.NoError(t, err)
	assert.Equal(t, "healthy", out["status"])
}

func TestAPI_Categories(t *testing.T) {
	srv := newTestServer(t, newTestApp(&fakeSearcher{}, &fakeStacker{}))
	out, err := call(t, srv, categoriesProcedure, nil)
	require.NoError(t, err)
	assert.Len(t, out["categories"], 8)
}

func TestAPI_Select(t *testing.T) {
	srv := newTestServer(t, newTestApp(&fakeSearcher{}, &fakeStacker{}))

	out, err := call(t, srv, selectProcedure, map[string]interface{}{"category": "Metabolismo"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Berberina HCl"}, visibleNames(t, out))

	out, err = call(t, srv, catalogProcedure, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Berberina HCl"}, visibleNames(t, out))

	out, err = call(t, srv, resetFiltersProcedure, nil)
	require.NoError(t, err)
	assert.Len(t, visibleNames(t, out), 6)
}

func TestAPI_SelectUnknownCategory(t *testing.T) {
	srv := newTestServer(t, newTestApp(&fakeSearcher{}, &fakeStacker{}))
	_, err := call(t, srv, selectProcedure, map[string]interface{}{"category": "cardio"})
	require.Error(t, err)
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}

func TestAPI_Search(t *testing.T) {
	s := &fakeSearcher{result: SearchResult{
		Supplements: []Supplement{{ID: "ai-1", Name: "Glicina", Category: CategoryNootropics, Source: SourceAI}},
		Sources:     []Source{{Title: "Examine", URI: "https://examine.example/glycine"}},
	}}
	srv := newTestServer(t, newTestApp(s, &fakeStacker{}))

	out, err := call(t, srv, searchProcedure, map[string]interface{}{"query": "sueño profundo"})
	require.NoError(t, err)
	assert.Equal(t, []string{"sueño profundo"}, s.queries)

	added := out["added"].([]interface{})
	require.Len(t, added, 1)
	assert.Equal(t, "Glicina", added[0].(map[string]interface{})["name"])

	view := out["view"].(map[string]interface{})
	assert.Equal(t, float64(7), view["total"])
	assert.Len(t, view["sources"], 1)
}

func TestAPI_GenerateStackFailure(t *testing.T) {
	g := &fakeStacker{err: &GenerationError{Message: stackFailureMessage, Err: errors.New("upstream 503")}}
	srv := newTestServer(t, newTestApp(&fakeSearcher{}, g))

	_, err := call(t, srv, generateStackProcedure, map[string]interface{}{"goal": "energía"})
	require.Error(t, err)
	assert.Equal(t, connect.CodeUnavailable, connect.CodeOf(err))
	var connectErr *connect.Error
	require.ErrorAs(t, err, &connectErr)
	assert.Equal(t, stackFailureMessage, connectErr.Message())
}

func TestAPI_GenerateStack(t *testing.T) {
	g := &fakeStacker{stack: &GeneratedStack{Title: "Stack Sueño", Items: []StackItem{{Supplement: "Magnesio"}}, Precautions: defaultPrecautions}}
	srv := newTestServer(t, newTestApp(&fakeSearcher{}, g))

	out, err := call(t, srv, generateStackProcedure, map[string]interface{}{"goal": "sueño"})
	require.NoError(t, err)
	stack := out["stack"].(map[string]interface{})
	assert.Equal(t, "Stack Sueño", stack["title"])

	out, err = call(t, srv, generateStackProcedure, map[string]interface{}{"goal": " "})
	require.NoError(t, err)
	assert.Nil(t, out["stack"])
}

func TestAPI_PopularSearchesWithoutLog(t *testing.T) {
	srv := newTestServer(t, newTestApp(&fakeSearcher{}, &fakeStacker{}))
	out, err := call(t, srv, popularSearchesProcedure, map[string]interface{}{"limit": 500})
	require.NoError(t, err)
	assert.Equal(t, float64(100), out["limit"])
	assert.Empty(t, out["searches"])
}

func TestAPI_PendingOperationsAreAborted(t *testing.T) {
	s := &fakeSearcher{started: make(chan struct{}), release: make(chan struct{})}
	g := &fakeStacker{stack: &GeneratedStack{Title: "S"}, started: make(chan struct{}), release: make(chan struct{})}
	app := newTestApp(s, g)
	srv := newTestServer(t, app)

	searchDone := make(chan error, 1)
	go func() {
		_, err := app.Search(context.Background(), "primero")
		searchDone <- err
	}()
	stackDone := make(chan error, 1)
	go func() {
		_, err := app.GenerateStack(context.Background(), "energía")
		stackDone <- err
	}()
	<-s.started
	<-g.started

	_, err := call(t, srv, searchProcedure, map[string]interface{}{"query": "segundo"})
	require.Error(t, err)
	assert.Equal(t, connect.CodeAborted, connect.CodeOf(err))

	_, err = call(t, srv, generateStackProcedure, map[string]interface{}{"goal": "sueño"})
	require.Error(t, err)
	assert.Equal(t, connect.CodeAborted, connect.CodeOf(err))

	close(s.release)
	close(g.release)
	require.NoError(t, <-searchDone)
	require.NoError(t, <-stackDone)
	assert.Equal(t, []string{"primero"}, s.queries)
	assert.Equal(t, []string{"energía"}, g.goals)
}
