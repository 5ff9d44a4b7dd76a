package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/chalkgo/chalk/internal/config"
	"github.com/chalkgo/chalk/internal/render"
	"github.com/chalkgo/chalk/internal/shape"
)

// app holds state shared by every subcommand once the root has loaded the
// configuration.
type app struct {
	configPath string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "chalk",
		Short: "Render and inspect diagrams from the built-in gallery",
		Long: `chalk renders the gallery diagrams to SVG, PNG or draw-command JSON
and answers bounding box queries against them. Configuration is read from
--config (or CHALK_CONFIG) and CHALK_* environment variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a TOML config file")

	rootCmd.AddCommand(
		newListCmd(a),
		newRenderCmd(a),
		newBoundsCmd(a),
		newTokenCmd(a),
	)
	return rootCmd
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	render.SetLogger(logger.With("component", "render"))

	font, err := cfg.Font()
	if err != nil {
		return err
	}
	if font != nil {
		shape.SetFont(font)
	}
	return nil
}
