package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/waypath/go-waypath/internal/log"
	"github.com/waypath/go-waypath/pkg/detect"
	"github.com/waypath/go-waypath/pkg/hub"
	"github.com/waypath/go-waypath/pkg/journal"
	"github.com/waypath/go-waypath/pkg/speech"
)

// frameMessage is one detection batch from the detector collaborator.
type frameMessage struct {
	Detections []detectionMessage `json:"detections"`
}

// detectionMessage mirrors detect.Detection on the wire.
type detectionMessage struct {
	Label      string   `json:"label"`
	Confidence float64  `json:"confidence"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	W          float64  `json:"w"`
	H          float64  `json:"h"`
	Distance   *float64 `json:"distance_meters,omitempty"`
}

func (m frameMessage) toDetections() []detect.Detection {
	dets := make([]detect.Detection, len(m.Detections))
	for i, d := range m.Detections {
		dets[i] = detect.Detection{
			Label:      d.Label,
			Confidence: d.Confidence,
			X:          d.X,
			Y:          d.Y,
			W:          d.W,
			H:          d.H,
			Distance:   d.Distance,
		}
	}
	return dets
}

// handleStatus returns the current session state.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return c.JSON(s.state)
}

// handleReset clears all session state (new navigation session, or the
// surrounding app resumed guidance).
func (s *Server) handleReset(c *fiber.Ctx) error {
	s.session.Reset()
	s.updateState(func(st *SessionState) {
		st.FramesProcessed = 0
		st.PathClear = false
		st.LastDecision = ""
		st.LastSpoken = ""
		st.LastSpokenTier = ""
	})
	if s.OnReset != nil {
		s.OnReset()
	}
	return c.JSON(fiber.Map{"reset": true})
}

// handleDescribe runs a manual scene analysis: describe the frame and
// speak the description with interrupt so it plays now. The frame is the
// request body when one is attached, otherwise the configured camera's
// current frame.
func (s *Server) handleDescribe(c *fiber.Ctx) error {
	if s.describer == nil {
		return c.Status(503).JSON(fiber.Map{"error": "scene description not configured"})
	}

	jpeg := c.Body()
	if len(jpeg) == 0 {
		if s.frames == nil {
			return c.Status(400).JSON(fiber.Map{"error": "no frame attached and no camera configured"})
		}
		var err error
		jpeg, err = s.frames.CaptureFrame()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
	}

	text, err := s.describer.Describe(jpeg)
	if err != nil {
		return c.Status(502).JSON(fiber.Map{"error": err.Error()})
	}

	spoken := s.session.Arbiter().Request(speech.Request{
		Text:      text,
		Tier:      speech.TierInformation,
		Interrupt: true,
	})
	if spoken {
		s.RecordAnnouncement(text, speech.TierInformation)
	}
	return c.JSON(fiber.Map{"description": text, "spoken": spoken})
}

// handleExport writes the session transcript to a new Google Doc. When the
// exporter has no token yet the response carries the consent URL; the user
// opens it and the OAuth callback completes the flow.
func (s *Server) handleExport(c *fiber.Ctx) error {
	if s.Docs == nil || s.Journal == nil {
		return c.Status(503).JSON(fiber.Map{"error": "transcript export not configured"})
	}
	if s.Journal.Len() == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "no announcements recorded yet"})
	}
	if !s.Docs.Authenticated() {
		return c.Status(401).JSON(fiber.Map{
			"error":    "authorization required",
			"auth_url": s.Docs.AuthURL(),
		})
	}

	docID, err := s.Journal.Export(s.Docs)
	if err != nil {
		return c.Status(502).JSON(fiber.Map{"error": err.Error()})
	}
	log.Info("transcript exported", "doc", docID)
	return c.JSON(fiber.Map{"doc_id": docID, "url": journal.DocURL(docID)})
}

// handleAuthCallback completes the Google OAuth flow for transcript export.
func (s *Server) handleAuthCallback(c *fiber.Ctx) error {
	if s.Docs == nil {
		return c.Status(503).JSON(fiber.Map{"error": "transcript export not configured"})
	}
	code := c.Query("code")
	if code == "" {
		return c.Status(400).JSON(fiber.Map{"error": "missing code parameter"})
	}
	if err := s.Docs.HandleCallback(code); err != nil {
		return c.Status(502).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendString("Authorization complete. You can close this tab and export again.")
}

// handleFramesWS ingests detection batches from the detector collaborator
// and runs the pipeline on each.
func (s *Server) handleFramesWS(c *websocket.Conn) {
	defer c.Close()
	log.Info("detector connected")

	for {
		var frame frameMessage
		if err := c.ReadJSON(&frame); err != nil {
			log.Info("detector disconnected", "error", err)
			return
		}

		dets := frame.toDetections()
		result := s.session.ProcessFrame(dets)
		if s.OnFrame != nil {
			s.OnFrame(dets)
		}
		s.updateState(func(st *SessionState) {
			st.FramesProcessed++
			st.PathClear = result.PathClear
			if result.Decision != nil {
				st.LastDecision = result.Decision.Decision.String()
			}
		})
	}
}

// handleAnnouncementsWS streams spoken announcements to a dashboard client.
func (s *Server) handleAnnouncementsWS(c *websocket.Conn) {
	hub.NewClient(s.announceHub, c).Run()
}

// handleStatusWS streams state updates to a dashboard client.
func (s *Server) handleStatusWS(c *websocket.Conn) {
	s.stateMu.RLock()
	c.WriteJSON(s.state)
	s.stateMu.RUnlock()

	hub.NewClient(s.statusHub, c).Run()
}
