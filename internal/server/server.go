// Package server exposes the graph viewer over a websocket endpoint. One
// connection drives one session: the client requests a graph, receives
// either a static-image pointer or an initial interactive payload, and
// acknowledges page readiness before any progressive chunks are sent.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mkoster/codeatlas/internal/atlas"
	"github.com/mkoster/codeatlas/internal/graph"
	"github.com/mkoster/codeatlas/internal/layout"
	"github.com/mkoster/codeatlas/internal/render"
	"github.com/mkoster/codeatlas/internal/store"
)

const (
	wsWriteWait = 10 * time.Second
	wsPongWait  = 60 * time.Second
	wsPingEvery = (wsPongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type inbound struct {
	Type  string `json:"type"`
	Graph string `json:"graph,omitempty"`
	Tier  string `json:"tier,omitempty"`
}

// NodeRecord is the interactive front-end's node shape.
type NodeRecord struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Group  string  `json:"group,omitempty"`
	Size   float64 `json:"size,omitempty"`
	Title  string  `json:"title,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	HasPos bool    `json:"hasPos,omitempty"`
}

// EdgeRecord is the interactive front-end's edge shape.
type EdgeRecord struct {
	From  string  `json:"from"`
	To    string  `json:"to"`
	Kind  string  `json:"kind"`
	Style string  `json:"style,omitempty"`
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
}

type outbound struct {
	Type       string       `json:"type"`
	Nodes      []NodeRecord `json:"nodes,omitempty"`
	Edges      []EdgeRecord `json:"edges,omitempty"`
	Image      string       `json:"image,omitempty"`
	Current    int          `json:"current,omitempty"`
	Total      int          `json:"total,omitempty"`
	Message    string       `json:"message,omitempty"`
	Generation uint64       `json:"generation,omitempty"`
}

// Server serves the graph websocket for one open session.
type Server struct {
	Session *atlas.Session
}

func New(session *atlas.Session) *Server {
	return &Server{Session: session}
}

// Handler returns the HTTP mux for the viewer endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/graph", s.handleGraphWS)
	return mux
}

func graphKind(name string) (store.Kind, bool) {
	switch name {
	case "structural":
		return store.Structural, true
	case "dependency":
		return store.Dependency, true
	case "scope":
		return store.Scope, true
	}
	return "", false
}

func graphTier(name string) store.Tier {
	if name == "simple" {
		return store.Simple
	}
	return store.Full
}

func (s *Server) handleGraphWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	if err := conn.SetReadDeadline(time.Now().Add(wsPongWait)); err != nil {
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	writeCh := make(chan outbound, 32)
	writerDone := make(chan struct{})
	stop := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(wsPingEvery)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()
	defer func() {
		close(stop)
		<-writerDone
	}()

	// Every outbound message blocks until the writer drains it. The
	// writerDone case releases senders when the connection is gone, so a
	// backed-up client stalls its own requests rather than losing
	// responses.
	send := func(out outbound) bool {
		select {
		case writeCh <- out:
			return true
		case <-writerDone:
			return false
		}
	}

	// The pending stream waits for the client's page-ready ack before any
	// chunk is dispatched.
	var pending *render.Stream
	var pendingGen uint64

	for {
		var in inbound
		if err := conn.ReadJSON(&in); err != nil {
			return
		}

		switch in.Type {
		case "ping":
			send(outbound{Type: "pong"})

		case "load":
			kind, ok := graphKind(in.Graph)
			if !ok {
				send(outbound{Type: "error", Message: "unknown graph kind: " + in.Graph})
				continue
			}
			tier := graphTier(in.Tier)
			gen := s.Session.Gens.Next()
			pending, pendingGen = s.sendPlan(send, kind, tier, gen)

		case "page_ready":
			if pending == nil {
				continue
			}
			go s.streamChunks(send, pending, pendingGen)
			pending = nil

		default:
			send(outbound{Type: "error", Message: "unknown message type: " + in.Type})
		}
	}
}

// sendFunc delivers one outbound message, reporting false once the
// connection's writer has exited.
type sendFunc func(outbound) bool

// sendPlan evaluates the render strategy for one load request and emits
// the first payload. It returns a non-nil stream when the remainder is to
// be delivered progressively after the page-ready ack.
func (s *Server) sendPlan(send sendFunc, kind store.Kind, tier store.Tier, gen uint64) (*render.Stream, uint64) {
	snap, _ := s.Session.Load(kind, tier)
	plan := render.Select(snap, tier, tier == store.Full, s.Session.Cfg)

	if plan.Mode == render.Static {
		send(outbound{Type: "static", Image: plan.StaticImage, Generation: gen})
		return nil, 0
	}

	if !send(outbound{
		Type:       "graph",
		Nodes:      nodeRecords(plan.Nodes, snap.Positions),
		Edges:      edgeRecords(plan.Edges),
		Generation: gen,
	}) {
		return nil, 0
	}
	if plan.Stream == nil {
		send(outbound{Type: "complete", Generation: gen})
		return nil, 0
	}
	return plan.Stream, gen
}

// streamChunks drains a progressive stream chunk by chunk. Chunks for a
// superseded generation are dropped rather than sent over a newer graph.
func (s *Server) streamChunks(send sendFunc, stream *render.Stream, gen uint64) {
	for {
		if !s.Session.Gens.Current(gen) {
			slog.Debug("server.stream_stale", "generation", gen)
			return
		}
		chunk, ok := stream.Next()
		if !ok {
			send(outbound{Type: "complete", Generation: gen})
			return
		}
		if !send(outbound{
			Type:       "append",
			Nodes:      nodeRecords(chunk.Nodes, nil),
			Edges:      edgeRecords(chunk.Edges),
			Current:    chunk.Current,
			Total:      chunk.Total,
			Generation: gen,
		}) {
			return
		}
	}
}

func nodeRecords(nodes []*graph.Node, pos layout.Positions) []NodeRecord {
	records := make([]NodeRecord, 0, len(nodes))
	for _, n := range nodes {
		rec := NodeRecord{
			ID:    n.ID,
			Label: n.Label,
			Group: n.Group,
			Size:  n.Size,
			Title: n.Title,
		}
		if p, ok := pos[n.ID]; ok {
			rec.X, rec.Y, rec.HasPos = p.X, p.Y, true
		}
		records = append(records, rec)
	}
	return records
}

func edgeRecords(edges []*graph.Edge) []EdgeRecord {
	records := make([]EdgeRecord, 0, len(edges))
	for _, e := range edges {
		records = append(records, EdgeRecord{
			From:  e.From,
			To:    e.To,
			Kind:  e.Kind,
			Style: e.Style,
			Color: e.Color,
			Width: e.Width,
		})
	}
	return records
}

