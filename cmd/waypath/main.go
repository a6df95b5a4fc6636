// Waypath guidance service. Receives detection frames over a websocket,
// runs the navigation pipeline, and speaks instructions through a
// text-to-speech engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/waypath/go-waypath/internal/config"
	"github.com/waypath/go-waypath/internal/log"
	"github.com/waypath/go-waypath/pkg/announce"
	"github.com/waypath/go-waypath/pkg/detect"
	"github.com/waypath/go-waypath/pkg/guide"
	"github.com/waypath/go-waypath/pkg/journal"
	"github.com/waypath/go-waypath/pkg/narrator"
	"github.com/waypath/go-waypath/pkg/speech"
	"github.com/waypath/go-waypath/pkg/vision"
	"github.com/waypath/go-waypath/pkg/web"
)

type options struct {
	port       string
	mode       string
	frameWidth float64
	speechURL  string
	logLevel   string
	narrate    bool
}

func main() {
	opts := parseFlags()
	log.Init(opts.logLevel)

	cfg := guide.DefaultConfig()
	mode, err := guide.ParseMode(opts.mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.Mode = mode
	if opts.frameWidth > 0 {
		cfg.FrameWidth = opts.frameWidth
	}

	sink := buildSink(opts.speechURL)
	defer sink.Close()

	arbiter := speech.NewArbiter(sink)
	session := guide.New(cfg, arbiter, announce.SystemClock{})
	jrnl := journal.New(session.ID(), nil)

	var describer vision.Describer
	if key := config.GoogleAPIKey(); key != "" {
		describer = vision.NewGemini(key)
	} else {
		log.Warn("GOOGLE_API_KEY not set, scene description disabled")
	}

	server := web.NewServer(opts.port, session, describer, nil)
	session.OnAnnouncement = func(text string, tier speech.Tier) {
		jrnl.Record(text, tier)
		server.RecordAnnouncement(text, tier)
	}
	server.OnReset = jrnl.Reset
	server.Journal = jrnl

	if clientID, clientSecret := config.GoogleOAuth(); clientID != "" {
		docsClient, err := journal.NewDocsClient(journal.DocsConfig{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  "http://localhost:" + opts.port + "/auth/callback",
		})
		if err != nil {
			log.Warn("transcript export disabled", "error", err)
		} else {
			server.Docs = docsClient
		}
	} else {
		log.Warn("GOOGLE_CLIENT_ID not set, transcript export disabled")
	}

	if opts.narrate {
		narr := narrator.New(arbiter)
		server.OnFrame = func(dets []detect.Detection) { narr.Observe(dets) }
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	server.StartAsync()
	log.Info("waypath running", "session", session.ID(), "mode", cfg.Mode.String(), "port", opts.port)

	<-ctx.Done()
	log.Info("shutting down")
	if err := server.Shutdown(); err != nil {
		log.Error("server shutdown", "error", err)
	}
	if jrnl.Len() > 0 {
		fmt.Println(jrnl.Transcript())
	}
}

// parseFlags parses command line flags and returns run options.
func parseFlags() options {
	var opts options
	flag.StringVar(&opts.port, "port", config.Port("8090"), "Control server port")
	flag.StringVar(&opts.mode, "mode", "partition", "Decision mode: partition or legacy")
	flag.Float64Var(&opts.frameWidth, "frame-width", 0, "Frame width in detector units (default 1000)")
	flag.StringVar(&opts.speechURL, "speech-url", "", "Websocket URL of the speech engine (log output when empty)")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.BoolVar(&opts.narrate, "narrate", false, "Enable ambient closest-object narration")
	flag.Parse()

	if opts.speechURL == "" {
		opts.speechURL = config.SpeechEngineURL()
	}
	return opts
}

func buildSink(url string) speech.Sink {
	if url == "" {
		log.Warn("no speech engine configured, announcements go to the log")
		return speech.LogSink{}
	}
	sink, err := speech.NewWSSink(url)
	if err != nil {
		log.Error("speech engine unavailable, falling back to log output", "error", err)
		return speech.LogSink{}
	}
	return sink
}
