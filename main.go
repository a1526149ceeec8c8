package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/display"
	"github.com/df07/go-raytracer/pkg/loaders"
	"github.com/df07/go-raytracer/pkg/renderer"
	"github.com/df07/go-raytracer/pkg/scene"
)

const (
	defaultScript = "scene.lua"
	builtinPrefix = "builtin:"
	windowTitle   = "Raytrace"
)

// cliFlags holds the command line overrides applied on top of the scene's render options
type cliFlags struct {
	output   string
	threads  int
	headless bool
	verbose  bool
	list     bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var cli cliFlags
	fs.StringVar(&cli.output, "output", "", "Output image path, .bmp or .png (overrides the script)")
	fs.IntVar(&cli.threads, "threads", 0, "Worker goroutines (0 = use the script or hardware threads)")
	fs.BoolVar(&cli.headless, "headless", false, "Render without opening a window")
	fs.BoolVar(&cli.verbose, "verbose", false, "Log debug output")
	fs.BoolVar(&cli.list, "list", false, "List builtin scenes and exit")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: raytracer [options] [scene.lua | builtin:<name>]")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if cli.list {
		listBuiltins(stdout)
		return 0
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return 2
	}

	target := defaultScript
	if fs.NArg() == 1 {
		target = fs.Arg(0)
	}

	level := slog.LevelInfo
	if cli.verbose {
		level = slog.LevelDebug
	}
	logger := core.NewSlogLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	s, opts, err := loadScene(target)
	if err == nil {
		err = applyFlags(opts, cli)
	}
	if err != nil {
		logger.Printf("Error: %v", err)
		return 1
	}
	logger.Printf("Loaded %s: %dx%d, %d primitives, %d lights", target, s.Width, s.Height, s.GetPrimitiveCount(), len(s.Lights))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if !opts.Display {
		return renderAndSave(ctx, s, opts, logger, nil)
	}
	return renderWithViewer(ctx, s, opts, logger)
}

// loadScene resolves target to a builtin scene or a Lua script and returns it preprocessed
func loadScene(target string) (*scene.Scene, *loaders.Options, error) {
	if name, ok := strings.CutPrefix(target, builtinPrefix); ok {
		s, err := scene.NewBuiltin(name)
		if err != nil {
			return nil, nil, err
		}
		if err := s.Preprocess(); err != nil {
			return nil, nil, fmt.Errorf("builtin scene %s: %w", name, err)
		}
		opts := loaders.DefaultOptions()
		return s, &opts, nil
	}
	return loaders.LoadScript(target)
}

// applyFlags overrides script options with explicit command line values
func applyFlags(opts *loaders.Options, cli cliFlags) error {
	if cli.output != "" {
		opts.Output = cli.output
	}
	if cli.threads != 0 {
		opts.Threads = cli.threads
	}
	if cli.headless {
		opts.Display = false
	}
	return opts.Validate()
}

// renderAndSave renders the scene and writes the output image.
// A cancelled render is not an error and saves nothing.
func renderAndSave(ctx context.Context, s *scene.Scene, opts *loaders.Options, logger core.Logger, viewer *display.Viewer) int {
	config := opts.RenderConfig()
	if viewer != nil {
		config.OnProgress = func(renderer.ProgressUpdate) { viewer.Invalidate() }
	}
	r := renderer.NewRenderer(s, config, logger)
	if viewer != nil {
		viewer.SetSource(func() display.Frame {
			if fb := r.Framebuffer(); fb != nil {
				return fb
			}
			return nil
		})
	}

	fb, stats, err := r.Render(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Printf("Render aborted, nothing saved")
			return 0
		}
		logger.Printf("Error: %v", err)
		return 1
	}

	if err := loaders.SaveImage(opts.Output, fb.Image()); err != nil {
		logger.Printf("Error: %v", err)
		return 1
	}
	logger.Printf("Saved %s (%d workers, %d bands, average luminance %.3f)", opts.Output, stats.Workers, stats.Bands, stats.AverageLuminance)

	if viewer != nil {
		viewer.Finish(stats.Duration)
	}
	return 0
}

// renderWithViewer renders on a background goroutine while the window runs on this one.
// Escape or closing the window before the render finishes cancels it.
func renderWithViewer(ctx context.Context, s *scene.Scene, opts *loaders.Options, logger core.Logger) int {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	viewer := display.NewViewer(windowTitle, s.Width, s.Height, nil)
	result := make(chan int, 1)
	go func() {
		result <- renderAndSave(ctx, s, opts, logger, viewer)
	}()
	go func() {
		select {
		case <-viewer.Aborted():
			cancel()
		case <-ctx.Done():
			viewer.Close()
		}
	}()

	if err := viewer.Run(); err != nil {
		// No window available; finish the render headless
		logger.Printf("Display unavailable: %v", err)
		return <-result
	}

	select {
	case <-viewer.Aborted():
		cancel()
		<-result
		return 0
	default:
	}
	return <-result
}

func listBuiltins(w io.Writer) {
	fmt.Fprintln(w, "Builtin scenes (use builtin:<name>):")
	for _, info := range scene.Builtins() {
		fmt.Fprintf(w, "  %-14s %s\n", info.Name, info.Description)
	}
}
