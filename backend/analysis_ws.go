package main

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/Ardou0/Teeko-IA41/engine"
	"github.com/gorilla/websocket"
)

type analysisPayload struct {
	MatchID    string                           `json:"match_id"`
	Moves      int                              `json:"moves"`
	Sufficient bool                             `json:"sufficient"`
	Profiles   map[string]engine.StyleProfile   `json:"profiles"`
	Zones      map[string]engine.ZonePreference `json:"zones"`
	UpdatedAt  int64                            `json:"updated_at_ms"`
}

func buildAnalysis(matchID string, history MoveHistory) analysisPayload {
	entries := history.LogEntries()
	report := engine.AnalyzeStyles(entries)
	payload := analysisPayload{
		MatchID:    matchID,
		Moves:      len(entries),
		Sufficient: report.Sufficient,
		Profiles:   make(map[string]engine.StyleProfile, 2),
		Zones:      make(map[string]engine.ZonePreference, 2),
		UpdatedAt:  time.Now().UnixMilli(),
	}
	for _, player := range []engine.PlayerColor{engine.PlayerBlack, engine.PlayerRed} {
		payload.Profiles[player.String()] = report.Profile(player)
		payload.Zones[player.String()] = engine.AnalyzeZones(entries, player)
	}
	return payload
}

type AnalysisClient struct {
	send chan []byte
}

type AnalysisHub struct {
	mu        sync.Mutex
	clients   map[*AnalysisClient]struct{}
	broadcast chan analysisPayload
	latest    func() analysisPayload
}

// NewAnalysisHub takes the snapshot source used to greet new clients.
func NewAnalysisHub(latest func() analysisPayload) *AnalysisHub {
	return &AnalysisHub{
		clients:   make(map[*AnalysisClient]struct{}),
		broadcast: make(chan analysisPayload, 64),
		latest:    latest,
	}
}

func (h *AnalysisHub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case payload := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				client.sendJSON(wsMessage{Type: "analysis", Payload: mustMarshal(payload)})
			}
			h.mu.Unlock()
		}
	}
}

func (h *AnalysisHub) Publish(payload analysisPayload) {
	select {
	case h.broadcast <- payload:
	default:
	}
}

func (h *AnalysisHub) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

func (h *AnalysisHub) Register(c *AnalysisClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *AnalysisHub) Unregister(c *AnalysisClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (c *AnalysisClient) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func serveAnalysisWS(hub *AnalysisHub, done <-chan struct{}, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &AnalysisClient{send: make(chan []byte, 16)}
	hub.Register(client)

	if hub.latest != nil {
		client.sendJSON(wsMessage{Type: "analysis", Payload: mustMarshal(hub.latest())})
	}

	go func() {
		defer conn.Close()
		_ = writeWSWithHeartbeat(conn, client.send, done)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			hub.Unregister(client)
			return
		}
	}
}
