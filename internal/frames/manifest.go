package frames

import (
	"encoding/json"
	"fmt"
	"os"

	"smplx-poser/internal/camera"
	"smplx-poser/internal/interp"
	"smplx-poser/internal/sequencer"
)

// Manifest indexes the frames of one run.
type Manifest struct {
	Frames        int             `json:"frames"`
	Interpolation string          `json:"interpolation"`
	ShapeStart    float64         `json:"shape_start"`
	ShapeEnd      float64         `json:"shape_end"`
	View          camera.View     `json:"view"`
	Tracks        []ManifestTrack `json:"tracks"`
	Entries       []ManifestEntry `json:"entries"`
}

type ManifestTrack struct {
	Joint    string  `json:"joint"`
	StartDeg float64 `json:"start_deg"`
	EndDeg   float64 `json:"end_deg"`
}

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Index int     `json:"index"`
	T     float64 `json:"t"`
	Image string  `json:"image"`
}

// BuildManifest describes anim as rendered in format from view.
func BuildManifest(anim sequencer.Animation, format Format, view camera.View) Manifest {
	if format == "" {
		format = PNG
	}
	m := Manifest{
		Frames:        anim.Frames,
		Interpolation: anim.Mode.String(),
		ShapeStart:    anim.ShapeStart,
		ShapeEnd:      anim.ShapeEnd,
		View:          view,
		Tracks:        make([]ManifestTrack, len(anim.Tracks)),
		Entries:       make([]ManifestEntry, 0, anim.Frames),
	}
	for i, tr := range anim.Tracks {
		m.Tracks[i] = ManifestTrack{Joint: tr.Joint.String(), StartDeg: tr.StartDeg, EndDeg: tr.EndDeg}
	}
	for i := 0; i < anim.Frames; i++ {
		m.Entries = append(m.Entries, ManifestEntry{
			Index: i,
			T:     interp.FrameT(i, anim.Frames),
			Image: sequencer.FrameFile(i, string(format)),
		})
	}
	return m
}

// WriteManifest writes the manifest of anim as indented JSON to path.
func WriteManifest(path string, anim sequencer.Animation, format Format, view camera.View) error {
	data, err := json.MarshalIndent(BuildManifest(anim, format, view), "", "  ")
	if err != nil {
		return fmt.Errorf("frames: manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("frames: manifest: %w", err)
	}
	return nil
}
