package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"smplx-poser/internal/backdrop"
	"smplx-poser/internal/bodymodel"
	"smplx-poser/internal/camera"
	"smplx-poser/internal/frames"
	"smplx-poser/internal/joints"
	"smplx-poser/internal/mathutil"
	"smplx-poser/internal/pose"
	"smplx-poser/internal/raster"
	"smplx-poser/internal/sequencer"
)

var log = logrus.WithFields(logrus.Fields{"pkg": "session"})

var (
	// ErrRunActive is returned when an animation is started while another runs.
	ErrRunActive = errors.New("an animation is already running")
	// ErrUnknownView is returned for a saved view name that does not exist.
	ErrUnknownView = errors.New("no saved view with that name")
)

// PlaceholderMessage is shown by Preview when no model is loaded.
const PlaceholderMessage = "SMPL-X model not loaded"

// NamedView is a saved camera position.
type NamedView struct {
	Name string
	View camera.View
}

// Snapshot is a copy of the interactive state.
type Snapshot struct {
	Shape  pose.Shape
	Pose   pose.Vector
	Angles map[joints.ID]float64 // last value set per joint, degrees
	View   camera.View
}

// Session is the state behind an interactive posing surface: the current
// shape and pose, the camera, saved views, the loaded model and the guard
// that allows one animation at a time. It is safe for concurrent use.
type Session struct {
	mu     sync.Mutex
	shape  pose.Shape
	vec    pose.Vector
	angles map[joints.ID]float64
	view   camera.View
	saved  []NamedView

	model      bodymodel.Model
	background string
	bgCache    *backdrop.Cache

	running bool
}

// New returns a session in the rest pose with the default view. A nil model
// is allowed: previews show a placeholder and renders fail.
func New(model bodymodel.Model) *Session {
	return &Session{
		angles:  make(map[joints.ID]float64),
		view:    camera.Default(),
		model:   model,
		bgCache: backdrop.NewCache(),
	}
}

// Model returns the loaded model, or nil.
func (s *Session) Model() bodymodel.Model {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model
}

// SetModel replaces the loaded model.
func (s *Session) SetModel(m bodymodel.Model) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model = m
}

// SetBackground sets the image file drawn behind previews. Empty clears it.
func (s *Session) SetBackground(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = path
}

// SetShape sets the first shape coefficient.
func (s *Session) SetShape(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shape.WriteShape(v)
}

// SetJoint rotates joint id to deg degrees about its canonical axis,
// replacing any previous rotation of that joint.
func (s *Session) SetJoint(id joints.ID, deg float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.vec.WriteJoint(id, mathutil.Deg2Rad(deg)); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	s.angles[id] = deg
	return nil
}

// Reset returns the body to the rest pose and shape. The view is kept.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shape.Reset()
	s.vec.Reset()
	s.angles = make(map[joints.ID]float64)
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	angles := make(map[joints.ID]float64, len(s.angles))
	for id, a := range s.angles {
		angles[id] = a
	}
	return Snapshot{Shape: s.shape, Pose: s.vec, Angles: angles, View: s.view}
}

func (s *Session) View() camera.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// SetView normalizes and applies v.
func (s *Session) SetView(v camera.View) camera.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = v.Normalize()
	return s.view
}

// ApplyPreset switches to a named standard view.
func (s *Session) ApplyPreset(name string) (camera.View, error) {
	v, err := camera.Preset(name)
	if err != nil {
		return camera.View{}, fmt.Errorf("session: %w", err)
	}
	return s.SetView(v), nil
}

// SaveView stores the current view under name. Saving over an existing
// name updates it in place.
func (s *Session) SaveView(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("session: view name is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.saved {
		if s.saved[i].Name == name {
			s.saved[i].View = s.view
			return nil
		}
	}
	s.saved = append(s.saved, NamedView{Name: name, View: s.view})
	return nil
}

// LoadView makes a saved view current.
func (s *Session) LoadView(name string) (camera.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.find(name)
	if i < 0 {
		return camera.View{}, fmt.Errorf("session: %q: %w", name, ErrUnknownView)
	}
	s.view = s.saved[i].View
	return s.view, nil
}

func (s *Session) DeleteView(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.find(name)
	if i < 0 {
		return fmt.Errorf("session: %q: %w", name, ErrUnknownView)
	}
	s.saved = append(s.saved[:i], s.saved[i+1:]...)
	return nil
}

func (s *Session) ClearViews() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = nil
}

// SavedViews lists saved views in the order they were first saved.
func (s *Session) SavedViews() []NamedView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]NamedView(nil), s.saved...)
}

func (s *Session) find(name string) int {
	name = strings.TrimSpace(name)
	for i, nv := range s.saved {
		if nv.Name == name {
			return i
		}
	}
	return -1
}

// Writer returns a frame writer for the current model, view and background.
func (s *Session) Writer(dir string, format frames.Format, opt raster.Options) *frames.Writer {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := &frames.Writer{
		Dir:     dir,
		Format:  format,
		Model:   s.model,
		View:    s.view,
		Options: opt,
	}
	size := opt.Size
	if size <= 0 {
		size = raster.DefaultOptions().Size
	}
	if bg, err := s.bgCache.Get(s.background, size); err == nil && bg != nil {
		w.Background = bg
	}
	return w
}

// Preview renders the current pose. Without a model it returns a
// placeholder image together with ErrModelUnavailable.
func (s *Session) Preview(opt raster.Options) (*image.NRGBA, error) {
	snap := s.Snapshot()
	w := s.Writer("", frames.PNG, opt)
	if w.Model == nil {
		size := opt.Size
		if size <= 0 {
			size = raster.DefaultOptions().Size
		}
		return raster.Placeholder(size, PlaceholderMessage), bodymodel.ErrModelUnavailable
	}
	return w.Image(0, snap.Shape, snap.Pose)
}

// Running reports whether an animation is in progress.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Animate starts anim in the background, writing frames with w. Only one
// animation may run at a time; the guard is released before the job's
// terminal event is sent.
func (s *Session) Animate(ctx context.Context, seq *sequencer.Sequencer, anim sequencer.Animation, w *frames.Writer) (*sequencer.Job, error) {
	return s.animateWith(ctx, seq, anim, w.Render)
}

func (s *Session) animateWith(ctx context.Context, seq *sequencer.Sequencer, anim sequencer.Animation, render sequencer.RenderFunc) (*sequencer.Job, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, ErrRunActive
	}
	s.running = true
	s.mu.Unlock()

	log.WithField("frames", anim.Frames).Info("animation started")
	job := seq.Start(ctx, anim, render, sequencer.OnEnd(func(err error) {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		if err != nil {
			log.WithError(err).Warn("animation failed")
			return
		}
		log.Info("animation finished")
	}))
	return job, nil
}
