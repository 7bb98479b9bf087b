package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"smplx-poser/internal/backdrop"
	"smplx-poser/internal/bodymodel"
	"smplx-poser/internal/camera"
	"smplx-poser/internal/config"
	"smplx-poser/internal/frames"
	"smplx-poser/internal/interp"
	"smplx-poser/internal/scenario"
	"smplx-poser/internal/sequencer"
)

// trackList collects repeated -track joint=start:end flags.
type trackList []scenario.Track

func (l *trackList) String() string {
	parts := make([]string, len(*l))
	for i, tr := range *l {
		parts[i] = fmt.Sprintf("%s=%g:%g", tr.Joint, tr.Start, tr.End)
	}
	return strings.Join(parts, ",")
}

func (l *trackList) Set(v string) error {
	name, rng, ok := strings.Cut(v, "=")
	if !ok {
		return fmt.Errorf("want joint=start:end, got %q", v)
	}
	from, to, ok := strings.Cut(rng, ":")
	if !ok {
		return fmt.Errorf("want joint=start:end, got %q", v)
	}
	start, err := strconv.ParseFloat(strings.TrimSpace(from), 64)
	if err != nil {
		return fmt.Errorf("track %s start: %w", name, err)
	}
	end, err := strconv.ParseFloat(strings.TrimSpace(to), 64)
	if err != nil {
		return fmt.Errorf("track %s end: %w", name, err)
	}
	*l = append(*l, scenario.Track{Joint: strings.TrimSpace(name), Start: start, End: end})
	return nil
}

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config JSON (default: "+config.FileName+" if present)")
	scenarioFile := flag.String("scenario", "", "Animation scenario YAML")
	templateOut := flag.String("template", "", "Write an example scenario to this path and exit")
	frameCount := flag.Int("frames", 0, "Number of frames (overrides scenario)")
	mode := flag.String("interp", "", "Interpolation: linear or smooth (overrides scenario)")
	shapeStart := flag.Float64("shape-start", 0, "Start value of shape coefficient 0")
	shapeEnd := flag.Float64("shape-end", 0, "End value of shape coefficient 0")
	var tracks trackList
	flag.Var(&tracks, "track", "Joint track joint=start:end in degrees (repeatable)")
	preset := flag.String("view", "", "View preset: "+strings.Join(camera.PresetNames(), ", "))
	label := flag.Bool("label", false, "Stamp the frame number into each image")
	outputDir := flag.String("output", "", "Output directory (default: ./output_frames)")
	workers := flag.Int("workers", 0, "Frames rendered concurrently (default: 1)")
	format := flag.String("format", "", "Image format: png or webp")
	model := flag.String("model", "", "Body model: stickman or none")
	background := flag.String("background", "", "Background image (png, jpeg, tga)")
	size := flag.Int("size", 0, "Output size in pixels (default: 600)")
	logLevel := flag.String("log-level", "", "Log level (default: info)")

	flag.Parse()

	if *templateOut != "" {
		if err := scenario.Write(*templateOut, scenario.Template()); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing template: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Template: %s\n", *templateOut)
		return
	}

	cfg, err := config.LoadOrDefault(*configFile, config.Flags{
		OutputDir:  *outputDir,
		Background: *background,
		RenderSize: *size,
		Workers:    *workers,
		Format:     *format,
		Model:      *model,
		LogLevel:   *logLevel,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ApplyLogLevel(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Scenario file first, flags on top
	sc := &scenario.Scenario{Version: scenario.Version, Frames: 30}
	if *scenarioFile != "" {
		if sc, err = scenario.Read(*scenarioFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *frameCount != 0 {
		sc.Frames = *frameCount
	}
	if *mode != "" {
		if sc.Interpolation, err = interp.ParseMode(*mode); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "shape-start":
			sc.Shape.Start = *shapeStart
		case "shape-end":
			sc.Shape.End = *shapeEnd
		}
	})
	sc.Tracks = append(sc.Tracks, tracks...)

	anim, err := sc.Animation()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	view := sc.ViewOr(cfg.View)
	if *preset != "" {
		if view, err = camera.Preset(*preset); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	fmtOut, err := frames.ParseFormat(cfg.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	m, err := bodymodel.New(cfg.Model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if m == nil {
		fmt.Fprintln(os.Stderr, "Warning: no body model loaded, every frame will fail")
	}

	writer := &frames.Writer{
		Dir:         cfg.OutputDir,
		Format:      fmtOut,
		Model:       m,
		View:        view,
		Options:     cfg.RenderOptions(),
		LabelFrames: *label,
	}
	if cfg.Background != "" {
		bg, err := backdrop.Load(cfg.Background, writer.Options.Size)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: background: %v\n", err)
		} else {
			writer.Background = bg
		}
	}

	fmt.Printf("SMPL-X pose animation -> %s\n", strings.ToUpper(string(fmtOut)))
	fmt.Printf("Frames: %d (%v), Tracks: %d, Workers: %d\n", anim.Frames, anim.Mode, len(anim.Tracks), cfg.Workers)
	fmt.Printf("View: %v\n", view)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	seq := &sequencer.Sequencer{OutputDir: cfg.OutputDir, Workers: cfg.Workers}
	job := seq.Start(ctx, anim, writer.Render)

	lastPrinted := -1
	var outDir string
	for ev := range job.Events() {
		switch ev.Kind {
		case sequencer.EventProgress:
			logrus.WithField("percent", ev.Percent).Debug(ev.Message)
			if ev.Percent/10 != lastPrinted/10 {
				fmt.Printf("  [%3d%%] %s\n", ev.Percent, ev.Message)
				lastPrinted = ev.Percent
			}
		case sequencer.EventFinished:
			outDir = ev.OutputDir
		case sequencer.EventFailed:
			fmt.Println("------------------------------------------------------------")
			fmt.Fprintf(os.Stderr, "Failed: %v\n", ev.Err)
		}
	}
	if err := job.Wait(); err != nil {
		os.Exit(1)
	}

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())

	manifestPath := filepath.Join(outDir, "manifest.json")
	if err := frames.WriteManifest(manifestPath, anim, fmtOut, view); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}
}
