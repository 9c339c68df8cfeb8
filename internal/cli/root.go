// Package cli wires the command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/treescopelabs/treescope/internal/config"
	"github.com/treescopelabs/treescope/internal/dataset"
	"github.com/treescopelabs/treescope/internal/dataset/fstree"
	"github.com/treescopelabs/treescope/internal/dataset/papers"
	"github.com/treescopelabs/treescope/internal/logging"
	"github.com/treescopelabs/treescope/internal/stats"
	"github.com/treescopelabs/treescope/internal/ui"
)

var (
	flagPapers       string
	flagByYear       bool
	flagDetectTypes  bool
	flagConfig       string
	flagExportWidth  int
	flagExportHeight int
)

var rootCmd = &cobra.Command{
	Use:   "treescope [path]",
	Short: "Interactive treemap visualizer for weighted trees",
	Long: `Treescope renders a weighted tree as an interactive treemap.

With a path argument (default ".") it scans the filesystem and maps
directory sizes. With --papers it loads a CSV of research papers and maps
citation counts across the category hierarchy.`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,

	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVar(&flagPapers, "papers", "", "load a papers CSV instead of scanning the filesystem")
	rootCmd.Flags().BoolVar(&flagByYear, "by-year", true, "group papers by publication year")
	rootCmd.Flags().BoolVar(&flagDetectTypes, "detect-types", false, "sniff MIME types while scanning")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "config file (default "+config.DefaultPath()+")")
	rootCmd.Flags().IntVar(&flagExportWidth, "export-width", 0, "SVG snapshot width in px")
	rootCmd.Flags().IntVar(&flagExportHeight, "export-height", 0, "SVG snapshot height in px")
}

func run(cmd *cobra.Command, args []string) error {
	cfgPath := flagConfig
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	// Flags set on the command line win over the config file.
	if cmd.Flags().Changed("by-year") {
		cfg.ByYear = flagByYear
	}
	if cmd.Flags().Changed("detect-types") {
		cfg.DetectTypes = flagDetectTypes
	}
	if flagExportWidth > 0 {
		cfg.Export.Width = flagExportWidth
	}
	if flagExportHeight > 0 {
		cfg.Export.Height = flagExportHeight
	}

	var (
		loader dataset.Loader
		title  string
		bytes  bool
		volume fstree.Volume
		hasVol bool
	)

	// A .csv path argument is treated as a papers dataset.
	papersPath := flagPapers
	if papersPath == "" && len(args) > 0 && filepath.Ext(args[0]) == ".csv" {
		papersPath = args[0]
	}

	if papersPath != "" {
		loader = &papers.Loader{
			Path:   papersPath,
			Name:   filepath.Base(papersPath),
			ByYear: cfg.ByYear,
		}
		title = filepath.Base(papersPath)
	} else {
		root := "."
		if len(args) > 0 {
			root = args[0]
		}
		abs, err := filepath.Abs(root)
		if err != nil {
			return fmt.Errorf("resolve path %s: %w", root, err)
		}
		loader = &fstree.Loader{Root: abs, DetectTypes: cfg.DetectTypes}
		title = abs
		bytes = true
		volume, hasVol = fstree.VolumeInfo(abs)
	}

	statsMgr := stats.NewManager()
	if err := statsMgr.Load(); err != nil {
		logging.Debug.Warn("could not load stats", "err", err)
	}
	defer statsMgr.Close()

	app := ui.NewApp(title, loader, cfg, statsMgr, bytes)
	if hasVol {
		app.SetVolume(volume.TotalBytes, volume.FreeBytes)
	}

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
