package main

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gramseva/census-atlas/internal/engine"
	"github.com/gramseva/census-atlas/internal/metrics"
	"github.com/gramseva/census-atlas/internal/model"
)

func readyEngine() *engine.Engine {
	key := model.DefaultSelection().Key()
	repo := metrics.NewTable("test", 1, map[string]map[model.DemographicKey]model.MetricVector{
		"d1": {key: {Literacy: 65, Income: 25_000, Population: 40_000}},
		"d2": {key: {Literacy: 82, Income: 55_000, Population: 90_000}},
		"d3": {key: {Literacy: 91, Income: 85_000, Population: 15_000}},
	})

	eng := engine.New()
	eng.SetSnapshot(&engine.Snapshot{
		Areas: []model.Area{
			{ID: "d1", DisplayName: "Adilabad"},
			{ID: "d2", DisplayName: "Nizamabad"},
			{ID: "d3", DisplayName: "Karimnagar"},
		},
		Repo: repo,
	})
	return eng
}

func get(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	rec := get(t, newRouter(engine.New()), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestViewEndpointLoading(t *testing.T) {
	router := newRouter(engine.New())

	for _, target := range []string{"/api/view?metric=literacy", "/api/areas"} {
		rec := get(t, router, target)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code, target)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "loading", body["status"], target)
	}
}

// A dead startup load answers "failed", never an indefinite "loading".
func TestViewEndpointLoadFailure(t *testing.T) {
	eng := engine.New()
	eng.SetLoadError(eris.New("catalog: read boundaries.geojson"))
	router := newRouter(eng)

	for _, target := range []string{"/api/view?metric=literacy", "/api/areas"} {
		rec := get(t, router, target)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code, target)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "failed", body["status"], target)
		assert.Contains(t, body["error"], "boundaries.geojson")
	}
}

func TestViewEndpoint(t *testing.T) {
	router := newRouter(readyEngine())

	rec := get(t, router, "/api/view?metric=literacy")
	require.Equal(t, http.StatusOK, rec.Code)

	var view engine.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))

	assert.Equal(t, model.MetricLiteracy, view.Metric)
	assert.Equal(t, 79.33, view.KPI.Average)
	assert.Equal(t, "79.33%", view.KPIDisplay.Average)
	require.Len(t, view.Ranking, 3)
	assert.Equal(t, "Karimnagar", view.Ranking[0].DisplayName)
	assert.Len(t, view.Fills, 3)
}

func TestViewEndpointDefaultsToUnsegmented(t *testing.T) {
	router := newRouter(readyEngine())

	rec := get(t, router, "/api/view")
	require.Equal(t, http.StatusOK, rec.Code)

	var view engine.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, model.DemographicKey("g:all|a:all|c:all|e:all"), view.Key)
}

func TestViewEndpointBadRequest(t *testing.T) {
	router := newRouter(readyEngine())

	rec := get(t, router, "/api/view?metric=density")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(t, router, "/api/view?metric=literacy&gender=unknown")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAreasEndpoint(t *testing.T) {
	router := newRouter(readyEngine())

	rec := get(t, router, "/api/areas")
	require.Equal(t, http.StatusOK, rec.Code)

	var out []model.Area
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 3)
	assert.Equal(t, "d1", out[0].ID)
}

// Shutdown drains on a fresh timeout context, so a request in flight when
// the stop signal arrives still completes.
func TestGracefulShutdownDrainsInflight(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})
	srv := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			close(started)
			<-release
			w.WriteHeader(http.StatusOK)
		}),
	}

	serveDone := make(chan error, 1)
	go func() { serveDone <- srv.Serve(ln) }()

	ctx, cancel := context.WithCancel(context.Background())
	shutdownDone := make(chan struct{})
	go func() {
		gracefulShutdown(ctx, srv, 5*time.Second)
		close(shutdownDone)
	}()

	type result struct {
		resp *http.Response
		err  error
	}
	resCh := make(chan result, 1)
	go func() {
		resp, err := http.Get("http://" + ln.Addr().String())
		resCh <- result{resp, err}
	}()

	<-started
	cancel()

	// The listener closes as soon as the drain begins, while the
	// in-flight request is still being handled.
	require.ErrorIs(t, <-serveDone, http.ErrServerClosed)

	close(release)
	select {
	case res := <-resCh:
		require.NoError(t, res.err)
		assert.Equal(t, http.StatusOK, res.resp.StatusCode)
		res.resp.Body.Close()
	case <-time.After(5 * time.Second):
		t.Fatal("in-flight request never completed")
	}

	select {
	case <-shutdownDone:
	case <-time.After(5 * time.Second):
		t.Fatal("drain did not finish")
	}
}

func TestParseSelection(t *testing.T) {
	sel, err := parseSelection("female", "19_35", "sc", "bpl")
	require.NoError(t, err)
	assert.Equal(t, model.DemographicKey("g:female|a:19_35|c:sc|e:bpl"), sel.Key())

	_, err = parseSelection("female", "19-35", "sc", "bpl")
	assert.Error(t, err)
}
