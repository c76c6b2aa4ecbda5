package inspector

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/vango-dev/vtree/pkg/archive"
	"github.com/vango-dev/vtree/pkg/component"
	"github.com/vango-dev/vtree/pkg/metrics"
	"github.com/vango-dev/vtree/pkg/view"
	"github.com/vango-dev/vtree/pkg/vtree"
)

func newHost(t *testing.T, items *[]string, obs ...component.Observer) *component.Host {
	t.Helper()
	var opts []component.Option
	for _, o := range obs {
		opts = append(opts, component.WithObserver(o))
	}
	return component.NewHost(view.NewStack(), func(ctx context.Context) *vtree.Node {
		var rows []*vtree.Node
		for _, item := range *items {
			text := item
			rows = append(rows, vtree.New(view.NewLabel, func(l *view.Label) { l.Text = text }, vtree.Key(item)))
		}
		return vtree.New(view.NewStack, nil, vtree.Children(rows...))
	}, opts...)
}

func getJSON(t *testing.T, url string, want int, out any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s error: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("GET %s status = %d, want %d (%s)", url, resp.StatusCode, want, body)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
}

func TestTreeAndPasses(t *testing.T) {
	insp := New(WithHistory(2))
	srv := httptest.NewServer(insp.Handler())
	defer srv.Close()

	getJSON(t, srv.URL+"/tree", http.StatusNotFound, nil)

	items := []string{"a", "b"}
	h := newHost(t, &items, insp)
	h.Mount(context.Background())
	items = []string{"b"}
	h.Render(context.Background())
	items = []string{"b", "c"}
	last := h.Render(context.Background())

	var tree Tree
	getJSON(t, srv.URL+"/tree", http.StatusOK, &tree)
	if tree.PassID != last.ID {
		t.Errorf("tree pass id = %q, want %q", tree.PassID, last.ID)
	}
	if got := tree.Snapshot.Count(); got != 3 {
		t.Errorf("snapshot count = %d, want 3", got)
	}

	var passes []Summary
	getJSON(t, srv.URL+"/passes", http.StatusOK, &passes)
	if len(passes) != 2 {
		t.Fatalf("passes = %d, want 2 (history limit)", len(passes))
	}
	if passes[0].Seq != 2 || passes[1].Seq != 3 {
		t.Errorf("seqs = %d,%d, want 2,3", passes[0].Seq, passes[1].Seq)
	}
	if passes[1].Stats.Created != 1 || passes[1].Kind != component.KindRender {
		t.Errorf("last summary = %+v", passes[1])
	}

	getJSON(t, srv.URL+"/passes?limit=1", http.StatusOK, &passes)
	if len(passes) != 1 || passes[0].Seq != 3 {
		t.Errorf("limited passes = %+v", passes)
	}
	getJSON(t, srv.URL+"/passes?limit=x", http.StatusBadRequest, nil)
}

func TestSnapshotsEndpoints(t *testing.T) {
	store, err := archive.NewDirStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirStore() error: %v", err)
	}
	insp := New(WithStore(store))
	srv := httptest.NewServer(insp.Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/snapshots", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("POST before render status = %d, want 404", resp.StatusCode)
	}

	items := []string{"a"}
	newHost(t, &items, insp).Mount(context.Background())

	resp, err = http.Post(srv.URL+"/snapshots", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	var created map[string]string
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated || created["name"] == "" {
		t.Fatalf("POST status = %d, body = %v", resp.StatusCode, created)
	}

	var names []string
	getJSON(t, srv.URL+"/snapshots", http.StatusOK, &names)
	if len(names) != 1 || names[0] != created["name"] {
		t.Errorf("names = %v, want [%s]", names, created["name"])
	}

	var env archive.Envelope
	getJSON(t, srv.URL+"/snapshots/"+created["name"], http.StatusOK, &env)
	if env.Snapshot.Count() != 2 {
		t.Errorf("archived snapshot count = %d, want 2", env.Snapshot.Count())
	}

	var e map[string]string
	getJSON(t, srv.URL+"/snapshots/missing.json", http.StatusNotFound, &e)
	if e["code"] != "E161" {
		t.Errorf("error code = %q, want E161", e["code"])
	}
}

func TestSnapshotsWithoutStore(t *testing.T) {
	srv := httptest.NewServer(New().Handler())
	defer srv.Close()

	var e map[string]string
	getJSON(t, srv.URL+"/snapshots", http.StatusNotImplemented, &e)
	if e["code"] != "E160" {
		t.Errorf("error code = %q, want E160", e["code"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(metrics.WithRegistry(reg))
	insp := New(WithGatherer(reg))
	srv := httptest.NewServer(insp.Handler())
	defer srv.Close()

	items := []string{"a"}
	h := newHost(t, &items, insp, component.ObserverFunc(func(r *component.Report) {
		m.ObservePass(r.Kind, r.Duration, r.Pass.Stats)
	}))
	h.Mount(context.Background())

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !bytes.Contains(body, []byte(`vtree_passes_total{kind="mount"} 1`)) {
		t.Errorf("metrics body missing passes_total:\n%s", body)
	}
}

func TestMetricsDisabledWithoutGatherer(t *testing.T) {
	srv := httptest.NewServer(New().Handler())
	defer srv.Close()
	getJSON(t, srv.URL+"/metrics", http.StatusNotFound, nil)
}

func TestLiveStream(t *testing.T) {
	insp := New()
	srv := httptest.NewServer(insp.Handler())
	defer srv.Close()
	defer insp.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/live"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial error: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var ev Event
	if err := conn.ReadJSON(&ev); err != nil || ev.Type != EventHello {
		t.Fatalf("first event = %+v, err = %v, want hello", ev, err)
	}

	// The client is registered right after the hello is written.
	deadline := time.Now().Add(2 * time.Second)
	for insp.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if insp.ClientCount() != 1 {
		t.Fatalf("ClientCount() = %d, want 1", insp.ClientCount())
	}

	items := []string{"a", "b"}
	r := newHost(t, &items, insp).Mount(context.Background())

	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("ReadJSON error: %v", err)
	}
	if ev.Type != EventPass || ev.Pass == nil || ev.Pass.ID != r.ID {
		t.Errorf("event = %+v, want pass %s", ev, r.ID)
	}
	if ev.Pass.Stats.Created != 3 {
		t.Errorf("event created = %d, want 3", ev.Pass.Stats.Created)
	}
}

func TestServeShutsDown(t *testing.T) {
	insp := New()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- insp.Serve(ctx, "127.0.0.1:0") }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
}
