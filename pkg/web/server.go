// Package web provides the control surface for a guidance session: a
// websocket feed for detection frames coming in, live announcement and
// status streams going out, and endpoints for session reset and manual
// scene description.
package web

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/waypath/go-waypath/internal/log"
	"github.com/waypath/go-waypath/pkg/detect"
	"github.com/waypath/go-waypath/pkg/guide"
	"github.com/waypath/go-waypath/pkg/hub"
	"github.com/waypath/go-waypath/pkg/journal"
	"github.com/waypath/go-waypath/pkg/speech"
	"github.com/waypath/go-waypath/pkg/vision"
)

// SessionState is the dashboard's view of the running session.
type SessionState struct {
	SessionID       string `json:"session_id"`
	Mode            string `json:"mode"`
	FramesProcessed int64  `json:"frames_processed"`
	PathClear       bool   `json:"path_clear"`
	LastDecision    string `json:"last_decision"`
	LastSpoken      string `json:"last_spoken"`
	LastSpokenTier  string `json:"last_spoken_tier"`
}

// AnnouncementEvent is broadcast to dashboard clients for every utterance.
type AnnouncementEvent struct {
	Time time.Time `json:"time"`
	Tier string    `json:"tier"`
	Text string    `json:"text"`
}

// Server is the guidance control server.
type Server struct {
	app  *fiber.App
	port string

	session   *guide.Guide
	describer vision.Describer
	frames    vision.FrameSource

	state   SessionState
	stateMu sync.RWMutex

	announceHub *hub.Hub
	statusHub   *hub.Hub

	// Journal, when set, is the transcript behind the export endpoint.
	Journal *journal.Journal

	// Docs, when set, enables transcript export to Google Docs.
	Docs *journal.DocsClient

	// OnReset, when set, is called after the session state is cleared.
	OnReset func()

	// OnFrame, when set, observes every normalized detection batch after
	// the pipeline ran (the narrator hooks in here).
	OnFrame func(dets []detect.Detection)
}

// NewServer creates the control server for one guidance session.
// describer and frames may be nil; the describe endpoint then reports
// that scene description is unavailable.
func NewServer(port string, session *guide.Guide, describer vision.Describer, frames vision.FrameSource) *Server {
	s := &Server{
		port:        port,
		session:     session,
		describer:   describer,
		frames:      frames,
		announceHub: hub.New("announcements"),
		statusHub:   hub.New("status"),
	}
	s.state.SessionID = session.ID()
	s.state.Mode = session.Mode().String()

	app := fiber.New(fiber.Config{
		AppName:               "Waypath Guidance",
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Post("/reset", s.handleReset)
	api.Post("/describe", s.handleDescribe)
	api.Post("/export", s.handleExport)
	app.Get("/auth/callback", s.handleAuthCallback)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/frames", websocket.New(s.handleFramesWS))
	app.Get("/ws/announcements", websocket.New(s.handleAnnouncementsWS))
	app.Get("/ws/status", websocket.New(s.handleStatusWS))

	s.app = app
	return s
}

// Start starts the server. Blocks until shutdown.
func (s *Server) Start() error {
	go s.announceHub.Run()
	go s.statusHub.Run()

	log.Info("control server listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// StartAsync starts the server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("control server failed", "error", err)
		}
	}()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// RecordAnnouncement broadcasts a spoken announcement to dashboard
// clients and updates the session state. Intended as a
// guide.OnAnnouncement hook.
func (s *Server) RecordAnnouncement(text string, tier speech.Tier) {
	s.stateMu.Lock()
	s.state.LastSpoken = text
	s.state.LastSpokenTier = tier.String()
	s.stateMu.Unlock()

	s.announceHub.BroadcastJSON(AnnouncementEvent{
		Time: time.Now(),
		Tier: tier.String(),
		Text: text,
	})
}

// updateState applies a mutation and broadcasts the new state.
func (s *Server) updateState(mutate func(*SessionState)) {
	s.stateMu.Lock()
	mutate(&s.state)
	state := s.state
	s.stateMu.Unlock()

	s.statusHub.BroadcastJSON(state)
}
