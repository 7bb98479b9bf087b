package frames

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/sirupsen/logrus"

	"smplx-poser/internal/bodymodel"
	"smplx-poser/internal/camera"
	"smplx-poser/internal/postprocess"
	"smplx-poser/internal/pose"
	"smplx-poser/internal/raster"
	"smplx-poser/internal/sequencer"
)

var log = logrus.WithFields(logrus.Fields{"pkg": "frames"})

// Format is the image encoding of written frames.
type Format string

const (
	PNG  Format = "png"
	WebP Format = "webp"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return PNG, nil
	case PNG, WebP:
		return f, nil
	}
	return "", fmt.Errorf("frames: unknown format %q", s)
}

// DefaultFill is the backdrop color when no background image is set.
var DefaultFill = color.NRGBA{236, 238, 242, 255}

// Writer renders sequencer frames to image files in Dir.
type Writer struct {
	Dir        string
	Format     Format
	Model      bodymodel.Model
	View       camera.View
	Options    raster.Options
	Background image.Image // optional, drawn behind the body
	Fill       color.Color // used when Background is nil; nil means DefaultFill
	// Transparent skips compositing and keeps the alpha channel.
	Transparent bool
	// LabelFrames stamps "Frame N" (1-based) into each image.
	LabelFrames bool
}

// Render produces the image for one frame and writes it to
// Dir/frame_NNNN.<format>. It has the sequencer.RenderFunc signature.
func (w *Writer) Render(index int, shape pose.Shape, v pose.Vector) error {
	img, err := w.Image(index, shape, v)
	if err != nil {
		return err
	}

	format := w.Format
	if format == "" {
		format = PNG
	}
	path := filepath.Join(w.Dir, sequencer.FrameFile(index, string(format)))
	if err := WriteImage(path, img, format); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{"frame": index, "path": path}).Debug("frame written")
	return nil
}

// Image renders one frame without writing it.
func (w *Writer) Image(index int, shape pose.Shape, v pose.Vector) (*image.NRGBA, error) {
	if w.Model == nil {
		return nil, bodymodel.ErrModelUnavailable
	}
	out, err := w.Model.Forward(bodymodel.InputFrom(shape, v))
	if err != nil {
		return nil, fmt.Errorf("frames: model forward for frame %d: %w", index, err)
	}

	opt := w.Options
	if w.LabelFrames {
		opt.Label = fmt.Sprintf("Frame %d", index+1)
	}
	img := raster.Render(out, w.View, opt)

	if w.Transparent {
		return img, nil
	}
	fill := w.Fill
	if fill == nil {
		fill = DefaultFill
	}
	return postprocess.Composite(img, w.Background, fill), nil
}

// WriteImage encodes img to path as format.
func WriteImage(path string, img image.Image, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("frames: %w", err)
	}

	switch format {
	case WebP:
		err = nativewebp.Encode(f, img, nil)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("frames: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("frames: %w", err)
	}
	return nil
}
