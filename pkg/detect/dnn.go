package detect

import (
	"bufio"
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"
)

// Config holds DNN detector configuration.
type Config struct {
	ModelPath        string  // Path to ONNX model
	LabelsPath       string  // Path to class names file, one label per line
	ConfidenceThresh float64 // Minimum confidence (default 0.5)
	InputWidth       int     // Model input width
	InputHeight      int     // Model input height
}

// DefaultConfig returns production defaults for the SSD object detector.
func DefaultConfig() Config {
	return Config{
		ModelPath:        "models/object_detection_ssd.onnx",
		LabelsPath:       "models/object_labels.txt",
		ConfidenceThresh: 0.5,
		InputWidth:       300,
		InputHeight:      300,
	}
}

// DNNDetector runs an SSD-style object detection network through OpenCV's
// DNN module. It is the reference implementation of the external detection
// collaborator; the guidance core only sees the Detector interface.
type DNNDetector struct {
	net    gocv.Net
	labels []string
	config Config
	mu     sync.Mutex // Protects inference
}

// NewDNN creates an object detector from an ONNX model file.
func NewDNN(cfg Config) (*DNNDetector, error) {
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", cfg.ModelPath)
	}

	labels, err := loadLabels(cfg.LabelsPath)
	if err != nil {
		return nil, fmt.Errorf("load labels: %w", err)
	}

	net := gocv.ReadNet(cfg.ModelPath, "")
	if net.Empty() {
		return nil, fmt.Errorf("failed to load model: %s", cfg.ModelPath)
	}
	net.SetPreferableBackend(gocv.NetBackendDefault)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	return &DNNDetector{
		net:    net,
		labels: labels,
		config: cfg,
	}, nil
}

// Detect finds objects in the JPEG image.
func (d *DNNDetector) Detect(jpeg []byte) ([]Detection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	img, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	defer img.Close()

	if img.Empty() {
		return nil, fmt.Errorf("empty image")
	}

	blob := gocv.BlobFromImage(img,
		1.0/127.5,
		image.Pt(d.config.InputWidth, d.config.InputHeight),
		gocv.NewScalar(127.5, 127.5, 127.5, 0),
		true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")
	out := d.net.Forward("")
	defer out.Close()

	// SSD output rows: [batchId, classId, confidence, left, top, right, bottom]
	// with box coordinates already normalized to 0-1.
	var detections []Detection
	rows := out.Total() / 7
	flat := out.Reshape(1, rows)
	defer flat.Close()

	for r := 0; r < rows; r++ {
		score := float64(flat.GetFloatAt(r, 2))
		if score < d.config.ConfidenceThresh {
			continue
		}

		classID := int(flat.GetFloatAt(r, 1))
		left := float64(flat.GetFloatAt(r, 3))
		top := float64(flat.GetFloatAt(r, 4))
		right := float64(flat.GetFloatAt(r, 5))
		bottom := float64(flat.GetFloatAt(r, 6))

		detections = append(detections, Normalize(Detection{
			Label:      d.labelFor(classID),
			Confidence: score,
			X:          (left + right) / 2,
			Y:          (top + bottom) / 2,
			W:          right - left,
			H:          bottom - top,
		}))
	}

	return detections, nil
}

// Close releases the network resources.
func (d *DNNDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.net.Close()
}

func (d *DNNDetector) labelFor(classID int) string {
	if classID >= 0 && classID < len(d.labels) {
		return d.labels[classID]
	}
	return fmt.Sprintf("object-%d", classID)
}

func loadLabels(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var labels []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		labels = append(labels, scanner.Text())
	}
	return labels, scanner.Err()
}
