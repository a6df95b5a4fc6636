// Replay runs the guidance pipeline over a recorded detection log and
// prints the announcement timeline. The log is JSONL, one frame per line:
//
//	{"t_ms": 1200, "detections": [{"label": "person", "confidence": 0.9,
//	  "x": 0.4, "y": 0.5, "w": 0.2, "h": 0.4, "distance_meters": 1.8}]}
//
// Frames are replayed against a manual clock, so a run over the same log
// always produces the same timeline.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/waypath/go-waypath/internal/log"
	"github.com/waypath/go-waypath/pkg/announce"
	"github.com/waypath/go-waypath/pkg/detect"
	"github.com/waypath/go-waypath/pkg/guide"
	"github.com/waypath/go-waypath/pkg/speech"
)

type frameRecord struct {
	TimeMS     int64             `json:"t_ms"`
	Detections []detectionRecord `json:"detections"`
}

type detectionRecord struct {
	Label      string   `json:"label"`
	Confidence float64  `json:"confidence"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	W          float64  `json:"w"`
	H          float64  `json:"h"`
	Distance   *float64 `json:"distance_meters,omitempty"`
}

func main() {
	mode := flag.String("mode", "partition", "Decision mode: partition or legacy")
	frameWidth := flag.Float64("frame-width", 0, "Frame width in detector units (default 1000)")
	flag.Parse()
	log.Init("warn")

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: replay [flags] <detections.jsonl>")
		os.Exit(2)
	}

	cfg := guide.DefaultConfig()
	m, err := guide.ParseMode(*mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.Mode = m
	if *frameWidth > 0 {
		cfg.FrameWidth = *frameWidth
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer f.Close()

	clock := announce.NewManual(time.Unix(0, 0))
	arbiter := speech.NewArbiter(&speech.MockSink{}, speech.WithClock(clock))
	session := guide.New(cfg, arbiter, clock)

	var offset time.Duration
	session.OnAnnouncement = func(text string, tier speech.Tier) {
		fmt.Printf("[%8s] %-11s %s\n", offset, tier, text)
	}

	frames, announced := 0, 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec frameRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			fmt.Fprintf(os.Stderr, "line %d: %v\n", frames+1, err)
			os.Exit(1)
		}

		offset = time.Duration(rec.TimeMS) * time.Millisecond
		clock.Set(time.Unix(0, 0).Add(offset))

		dets := make([]detect.Detection, len(rec.Detections))
		for i, d := range rec.Detections {
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

		result := session.ProcessFrame(dets)
		frames++
		if result.Announced {
			announced++
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("\n%d frames, %d announcements\n", frames, announced)
}
