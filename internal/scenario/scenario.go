package scenario

import (
	"fmt"

	"smplx-poser/internal/camera"
	"smplx-poser/internal/interp"
	"smplx-poser/internal/joints"
	"smplx-poser/internal/sequencer"
)

const Version = "1"

// Scenario is the file form of an animation request.
type Scenario struct {
	Version       string       `yaml:"version"`
	Frames        int          `yaml:"frames"`
	Interpolation interp.Mode  `yaml:"interpolation"`
	Shape         Range        `yaml:"shape"`
	Tracks        []Track      `yaml:"tracks"`
	View          *camera.View `yaml:"view,omitempty"`
}

// Range is a start/end pair.
type Range struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

// Track animates one joint, named or by numeric id, in degrees.
type Track struct {
	Joint string  `yaml:"joint"`
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

// Animation resolves joint names and validates the request.
func (s *Scenario) Animation() (sequencer.Animation, error) {
	anim := sequencer.Animation{
		Frames:     s.Frames,
		Mode:       s.Interpolation,
		ShapeStart: s.Shape.Start,
		ShapeEnd:   s.Shape.End,
		Tracks:     make([]sequencer.Track, 0, len(s.Tracks)),
	}
	for i, tr := range s.Tracks {
		id, err := joints.Parse(tr.Joint)
		if err != nil {
			return sequencer.Animation{}, fmt.Errorf("scenario: track %d: %w", i, err)
		}
		anim.Tracks = append(anim.Tracks, sequencer.Track{Joint: id, StartDeg: tr.Start, EndDeg: tr.End})
	}
	if err := anim.Validate(); err != nil {
		return sequencer.Animation{}, fmt.Errorf("scenario: %w", err)
	}
	return anim, nil
}

// ViewOr returns the scenario's view, or def when it has none.
func (s *Scenario) ViewOr(def camera.View) camera.View {
	if s.View == nil {
		return def
	}
	return s.View.Normalize()
}

// FromAnimation is the inverse of Animation. A nil view is omitted.
func FromAnimation(anim sequencer.Animation, view *camera.View) *Scenario {
	s := &Scenario{
		Version:       Version,
		Frames:        anim.Frames,
		Interpolation: anim.Mode,
		Shape:         Range{Start: anim.ShapeStart, End: anim.ShapeEnd},
		Tracks:        make([]Track, len(anim.Tracks)),
		View:          view,
	}
	for i, tr := range anim.Tracks {
		s.Tracks[i] = Track{Joint: tr.Joint.String(), Start: tr.StartDeg, End: tr.EndDeg}
	}
	return s
}

// Template is an example scenario: a body turning while it raises its arms.
func Template() *Scenario {
	view := camera.Default()
	return &Scenario{
		Version:       Version,
		Frames:        30,
		Interpolation: interp.Smooth,
		Shape:         Range{Start: 0, End: 2},
		Tracks: []Track{
			{Joint: joints.GlobalName, Start: 0, End: 90},
			{Joint: "left_shoulder", Start: 0, End: -60},
			{Joint: "right_shoulder", Start: 0, End: -60},
			{Joint: "left_knee", Start: 0, End: 30},
		},
		View: &view,
	}
}
