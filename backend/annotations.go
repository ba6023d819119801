package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// SeriesAnnotation is one entry of a trace's annotation sidecar, naming the
// series it belongs to. The y position is not stored; the chart resolves it
// from the series data when the annotation attaches.
type SeriesAnnotation struct {
	Series      string  `json:"series"`
	X           float64 `json:"x"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
}

// annotationFileFor returns the sidecar path for a trace file: the trace path
// with its extension replaced by "-annotations.json".
func annotationFileFor(tracePath string) string {
	base := strings.TrimSuffix(tracePath, filepath.Ext(tracePath))
	return base + "-annotations.json"
}

// loadAnnotations reads a trace's annotation sidecar. A missing sidecar is
// normal and yields no annotations and no error.
func loadAnnotations(tracePath string) ([]SeriesAnnotation, error) {
	data, err := os.ReadFile(annotationFileFor(tracePath))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed reading annotation sidecar: %w", err)
	}
	var notes []SeriesAnnotation
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("failed parsing annotation sidecar: %w", err)
	}
	return notes, nil
}
