package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/chalkgo/chalk/internal/engine"
	"github.com/chalkgo/chalk/internal/export"
	"github.com/chalkgo/chalk/internal/gallery"
	"github.com/chalkgo/chalk/internal/render"
)

type renderFlags struct {
	format  string
	out     string
	outDir  string
	all     bool
	height  int
	width   int
	padding float64
	jobs    int
}

func newRenderCmd(a *app) *cobra.Command {
	f := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [NAME...]",
		Short: "Render gallery diagrams to svg, png or json",
		Long: `Render one gallery diagram to --out (or stdout), or several diagrams
into --out-dir as NAME.FORMAT. --all renders the whole gallery.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRender(cmd, args, f)
		},
	}

	cmd.Flags().StringVarP(&f.format, "format", "f", "svg", "output format: svg, png or json")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "output file for a single diagram (default stdout)")
	cmd.Flags().StringVar(&f.outDir, "out-dir", "", "output directory when rendering several diagrams")
	cmd.Flags().BoolVar(&f.all, "all", false, "render every gallery diagram")
	cmd.Flags().IntVar(&f.height, "height", 0, "canvas height in pixels (default from config)")
	cmd.Flags().IntVar(&f.width, "width", 0, "canvas width in pixels (default from aspect ratio)")
	cmd.Flags().Float64Var(&f.padding, "padding", -1, "padding as a fraction of the diagram size (default from config)")
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", 0, "number of diagrams rendered concurrently (default GOMAXPROCS)")
	return cmd
}

func (f *renderFlags) options(cfg []render.Option) []render.Option {
	opts := append([]render.Option(nil), cfg...)
	if f.height > 0 {
		opts = append(opts, render.WithHeight(f.height))
	}
	if f.width > 0 {
		opts = append(opts, render.WithWidth(f.width))
	}
	if f.padding >= 0 {
		opts = append(opts, render.WithPadding(f.padding))
	}
	return opts
}

func (a *app) runRender(cmd *cobra.Command, args []string, f *renderFlags) error {
	names := args
	if f.all {
		if len(args) > 0 {
			return errors.New("--all takes no diagram names")
		}
		names = gallery.Names()
	}
	if len(names) == 0 {
		return errors.New("no diagrams to render: pass NAME or --all")
	}
	for _, name := range names {
		if _, ok := gallery.Lookup(name); !ok {
			return fmt.Errorf("%w: %q", engine.ErrUnknownDiagram, name)
		}
	}

	opts := f.options(a.cfg.RenderOptions())

	if len(names) == 1 && f.outDir == "" {
		return renderOne(cmd.OutOrStdout(), f.out, names[0], f.format, opts)
	}
	if f.outDir == "" {
		return fmt.Errorf("rendering %d diagrams needs --out-dir", len(names))
	}
	if f.out != "" {
		return errors.New("--out applies to a single diagram; use --out-dir")
	}
	if err := os.MkdirAll(f.outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return renderAll(cmd.Context(), f.outDir, names, f.format, f.jobs, opts)
}

func renderOne(stdout io.Writer, out, name, format string, opts []render.Option) error {
	d, _ := gallery.Lookup(name)
	data, err := export.Encode(format, name, d, opts...)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if out == "" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	slog.Info("rendered", "diagram", name, "file", out, "size", len(data))
	return nil
}

func renderAll(ctx context.Context, dir string, names []string, format string, jobs int, opts []render.Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(names)))

	for _, name := range names {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			path := filepath.Join(dir, name+"."+format)
			return renderOne(nil, path, name, format, opts)
		})
	}
	return g.Wait()
}
