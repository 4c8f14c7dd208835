package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Ardou0/Teeko-IA41/engine"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

type server struct {
	controller *GameController
	hub        *Hub
	analysis   *AnalysisHub
	logger     zerolog.Logger
	done       <-chan struct{}
}

func newServer(controller *GameController, logger zerolog.Logger, done <-chan struct{}) *server {
	s := &server{
		controller: controller,
		hub:        NewHub(),
		logger:     logger,
		done:       done,
	}
	s.analysis = NewAnalysisHub(s.currentAnalysis)
	return s
}

func (s *server) currentAnalysis() analysisPayload {
	return buildAnalysis(s.controller.MatchID().String(), s.controller.History())
}

// runTicker drives AI turns until ctx is cancelled.
func (s *server) runTicker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.controller.Tick() {
				s.publishMove()
			}
		}
	}
}

func (s *server) publishMove() {
	if entry, ok := s.controller.LatestHistoryEntry(); ok {
		s.hub.PublishHistory(historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}})
	}
	s.hub.PublishStatus(controllerStatus(s.controller))
	if s.analysis.HasClients() {
		s.analysis.Publish(s.currentAnalysis())
	}
}

func (s *server) publishSettings() {
	s.hub.PublishSettings(settingsPayload{
		Settings: settingsToDTO(s.controller.Settings()),
		Config:   engine.GetConfig(),
	})
}

func newRouter(s *server) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controllerStatus(s.controller))
	})

	r.Post("/api/start", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings GameSettingsDTO `json:"settings"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		settings, err := settingsFromDTO(payload.Settings, DefaultGameSettings())
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		s.controller.StartGame(settings)
		status := controllerStatus(s.controller)
		s.hub.PublishReset(status)
		writeJSON(w, http.StatusOK, status)
	})

	r.Post("/api/stop", func(w http.ResponseWriter, r *http.Request) {
		s.controller.Reset(s.controller.Settings())
		status := controllerStatus(s.controller)
		s.hub.PublishReset(status)
		writeJSON(w, http.StatusOK, status)
	})

	r.Post("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		var payload GameSettingsDTO
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		settings, err := settingsFromDTO(payload, s.controller.Settings())
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		s.controller.UpdateSettings(settings, false)
		s.publishSettings()
		writeJSON(w, http.StatusOK, controllerStatus(s.controller))
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		var payload moveDTO
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		move, err := moveFromDTO(payload)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		if err := s.controller.ApplyHumanMove(move); err != nil {
			status := http.StatusConflict
			if !errors.Is(err, errIllegalMove) && !errors.Is(err, errNotHumanTurn) && !errors.Is(err, errNoMatch) {
				status = http.StatusInternalServerError
			}
			writeJSON(w, status, map[string]string{"error": err.Error()})
			return
		}
		s.publishMove()
		writeJSON(w, http.StatusOK, controllerStatus(s.controller))
	})

	r.Get("/api/hint", func(w http.ResponseWriter, r *http.Request) {
		decision, err := s.controller.Hint()
		if err != nil {
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, decisionToHint(decision))
	})

	r.Get("/api/analysis", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.currentAnalysis())
	})

	r.Get("/api/config", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, engine.GetConfig())
	})

	r.Post("/api/config", func(w http.ResponseWriter, r *http.Request) {
		cfg := engine.GetConfig()
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		engine.SetConfig(cfg)
		s.controller.ResetForConfigChange()
		s.publishSettings()
		writeJSON(w, http.StatusOK, engine.GetConfig())
	})

	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		serveWS(s.hub, s.controller, s.done, w, r)
	})
	r.Get("/ws/analysis", func(w http.ResponseWriter, r *http.Request) {
		serveAnalysisWS(s.analysis, s.done, w, r)
	})

	return r
}

func serveWS(hub *Hub, controller *GameController, done <-chan struct{}, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{send: make(chan []byte, 16)}
	hub.Register(client)

	client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controllerStatus(controller))})

	go func() {
		defer conn.Close()
		_ = writeWSWithHeartbeat(conn, client.send, done)
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_status":
			client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controllerStatus(controller))})
		}
	}
}
