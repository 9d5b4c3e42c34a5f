package server

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mkoster/codeatlas/internal/atlas"
	"github.com/mkoster/codeatlas/internal/config"
	"github.com/mkoster/codeatlas/internal/graph"
	"github.com/mkoster/codeatlas/internal/layout"
	"github.com/mkoster/codeatlas/internal/store"
)

func testSession(t *testing.T) *atlas.Session {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	s, err := atlas.Open(cfg, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func dial(t *testing.T, s *atlas.Session) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(New(s).Handler())
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/graph"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) outbound {
	t.Helper()
	var out outbound
	if err := conn.ReadJSON(&out); err != nil {
		t.Fatal(err)
	}
	return out
}

func saveChain(t *testing.T, s *atlas.Session, n int) {
	t.Helper()
	g := graph.New()
	for i := 0; i < n; i++ {
		g.AddNode(&graph.Node{ID: fmt.Sprintf("f%03d.py", i), Kind: graph.KindFile})
	}
	for i := 1; i < n; i++ {
		g.AddEdge(&graph.Edge{
			From: fmt.Sprintf("f%03d.py", i-1),
			To:   fmt.Sprintf("f%03d.py", i),
			Kind: graph.EdgeInclude,
		})
	}
	if err := s.Store.Save(store.Dependency, store.Full, &store.Snapshot{Graph: g}); err != nil {
		t.Fatal(err)
	}
}

func TestLoadSmallGraph(t *testing.T) {
	s := testSession(t)
	saveChain(t, s, 5)
	conn := dial(t, s)

	if err := conn.WriteJSON(inbound{Type: "load", Graph: "dependency", Tier: "full"}); err != nil {
		t.Fatal(err)
	}
	out := readMessage(t, conn)
	if out.Type != "graph" || len(out.Nodes) != 5 || len(out.Edges) != 4 {
		t.Fatalf("got %s with %d nodes / %d edges", out.Type, len(out.Nodes), len(out.Edges))
	}
	if done := readMessage(t, conn); done.Type != "complete" {
		t.Fatalf("got %s, want complete", done.Type)
	}
}

func TestLoadUnknownGraphKind(t *testing.T) {
	s := testSession(t)
	conn := dial(t, s)

	if err := conn.WriteJSON(inbound{Type: "load", Graph: "nonsense"}); err != nil {
		t.Fatal(err)
	}
	out := readMessage(t, conn)
	if out.Type != "error" {
		t.Fatalf("got %s, want error", out.Type)
	}
}

func TestProgressiveDeliveryOverSocket(t *testing.T) {
	s := testSession(t)
	s.Cfg.InitialLoadSize = 10
	s.Cfg.ChunkSize = 8
	saveChain(t, s, 30)
	conn := dial(t, s)

	if err := conn.WriteJSON(inbound{Type: "load", Graph: "dependency", Tier: "full"}); err != nil {
		t.Fatal(err)
	}
	first := readMessage(t, conn)
	if first.Type != "graph" || len(first.Nodes) != 10 {
		t.Fatalf("initial paint: %s with %d nodes", first.Type, len(first.Nodes))
	}

	// No chunk may arrive before the page-ready ack.
	if err := conn.WriteJSON(inbound{Type: "page_ready"}); err != nil {
		t.Fatal(err)
	}

	seen := map[string]bool{}
	for _, n := range first.Nodes {
		seen[n.ID] = true
	}
	appends := 0
	for {
		out := readMessage(t, conn)
		if out.Type == "complete" {
			break
		}
		if out.Type != "append" {
			t.Fatalf("unexpected message %s", out.Type)
		}
		appends++
		for _, n := range out.Nodes {
			if seen[n.ID] {
				t.Errorf("node %s delivered twice", n.ID)
			}
			seen[n.ID] = true
		}
	}
	if appends != 3 { // 20 remaining / 8 per chunk
		t.Errorf("got %d append chunks, want 3", appends)
	}
	if len(seen) != 30 {
		t.Errorf("delivered %d nodes, want 30", len(seen))
	}
}

func TestLoadResponseBlocksOnBackpressure(t *testing.T) {
	s := testSession(t)
	saveChain(t, s, 5)
	srv := New(s)

	writeCh := make(chan outbound, 1)
	writerDone := make(chan struct{})
	send := func(out outbound) bool {
		select {
		case writeCh <- out:
			return true
		case <-writerDone:
			return false
		}
	}

	// A slow client has the writer backed up.
	writeCh <- outbound{Type: "append"}

	done := make(chan struct{})
	go func() {
		defer close(done)
		srv.sendPlan(send, store.Dependency, store.Full, 1)
	}()

	select {
	case <-done:
		t.Fatal("sendPlan returned while the writer was backed up")
	case <-time.After(50 * time.Millisecond):
	}

	// Draining the backlog must release the queued load response intact.
	if out := <-writeCh; out.Type != "append" {
		t.Fatalf("backlog message = %s", out.Type)
	}
	if out := <-writeCh; out.Type != "graph" || len(out.Nodes) != 5 {
		t.Fatalf("load response = %s with %d nodes", out.Type, len(out.Nodes))
	}
	if out := <-writeCh; out.Type != "complete" {
		t.Fatalf("got %s, want complete", out.Type)
	}
	<-done

	// A dead writer releases the sender instead of wedging it.
	writeCh <- outbound{Type: "append"}
	close(writerDone)
	redo := make(chan struct{})
	go func() {
		defer close(redo)
		srv.sendPlan(send, store.Dependency, store.Full, 2)
	}()
	select {
	case <-redo:
	case <-time.After(time.Second):
		t.Fatal("sendPlan wedged after the writer exited")
	}
}

func TestNodeRecordsCarryPositions(t *testing.T) {
	nodes := []*graph.Node{{ID: "a", Label: "a"}, {ID: "b", Label: "b"}}
	pos := layout.Positions{"a": {X: 0.25, Y: 0.75}}

	records := nodeRecords(nodes, pos)
	if !records[0].HasPos || records[0].X != 0.25 || records[0].Y != 0.75 {
		t.Errorf("positioned record = %+v", records[0])
	}
	if records[1].HasPos {
		t.Errorf("unpositioned record = %+v", records[1])
	}
}
