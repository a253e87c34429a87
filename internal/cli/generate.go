package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ArvindGuruRK/construction-3d-plan/internal/engine"
	"github.com/ArvindGuruRK/construction-3d-plan/internal/export"
	"github.com/ArvindGuruRK/construction-3d-plan/internal/model"
	"github.com/ArvindGuruRK/construction-3d-plan/internal/project"
)

const (
	formatPDF    = "pdf"
	formatLabels = "labels"
	formatDXF    = "dxf"
	formatXLSX   = "xlsx"
	formatJSON   = "json"
)

var allFormats = []string{formatPDF, formatLabels, formatDXF, formatXLSX, formatJSON}

type generateOpts struct {
	request requestFlags
	output  string
	formats []string
	waste   float64
	save    string
	check   bool
}

func newGenerateCmd(root *rootOpts) *cobra.Command {
	opts := &generateOpts{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Lay out a room program and export the plan",
		Long: `Generate allocates areas for each requested room, packs them into a
rectangular envelope, places doors and windows, and builds the wall and floor
geometry. The layout is written as JSON and, when any room was placed, as
PDF plan sheets, room labels, DXF drawing and an XLSX schedule.`,
		Example: `  planforge generate --area 120 --rooms bedroom=2,bathroom=1,kitchen=1,living=1
  planforge generate --template "Family Home" --format pdf,json -o family
  planforge generate --program rooms.csv --settings tight.toml --save house.planforge`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, root, opts)
		},
	}

	opts.request.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "floorplan", "output path without extension")
	cmd.Flags().StringSliceVarP(&opts.formats, "format", "f", allFormats, "output formats: "+strings.Join(allFormats, ", "))
	cmd.Flags().Float64Var(&opts.waste, "waste", 10, "material waste allowance in percent for the takeoff")
	cmd.Flags().StringVar(&opts.save, "save", "", "also save the request, settings and layout as a project file")
	cmd.Flags().BoolVar(&opts.check, "check", false, "check the layout for overlaps, stray doors and misplaced windows")

	return cmd
}

func runGenerate(cmd *cobra.Command, root *rootOpts, opts *generateOpts) error {
	logger := loggerFromContext(cmd.Context())
	out := cmd.OutOrStdout()

	for _, f := range opts.formats {
		if !isKnownFormat(f) {
			return fmt.Errorf("unknown format %q (want one of %s)", f, strings.Join(allFormats, ", "))
		}
	}

	req, settings, err := opts.request.resolve(cmd, root)
	if err != nil {
		return err
	}
	logger.Debug("resolved request", "area", req.TotalArea, "unit", settings.InputUnit, "rooms", req.RequestedRooms())

	prog := newProgress(logger)
	res, err := engine.New(settings, engine.WithLogger(logger)).Generate(req)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated layout: %d of %d rooms placed", res.PlacedCount(), res.Requested))

	printResult(out, res)

	if opts.check {
		issues := engine.CheckLayout(res, settings)
		for _, line := range engine.FormatIssues(issues) {
			printWarning(out, "%s", line)
		}
		if len(issues) == 0 {
			printSuccess(out, "Layout checks passed")
		}
	}

	if dir := filepath.Dir(opts.output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	for _, f := range opts.formats {
		if f != formatJSON && !res.HasLayout() {
			logger.Warn("no rooms placed, skipping export", "format", f)
			continue
		}
		path, err := writeFormat(f, opts.output, res, settings, opts.waste)
		if err != nil {
			return err
		}
		printFile(out, path)
	}

	if opts.save != "" {
		path, err := saveGenerated(root, opts.save, req, settings, res)
		if err != nil {
			return err
		}
		printFile(out, path)
	}

	if len(res.Unplaced) > 0 {
		printWarning(out, "%d room(s) did not fit", len(res.Unplaced))
	}
	return nil
}

func isKnownFormat(f string) bool {
	for _, known := range allFormats {
		if f == known {
			return true
		}
	}
	return false
}

func writeFormat(format, base string, res model.Result, settings model.Settings, waste float64) (string, error) {
	switch format {
	case formatPDF:
		path := base + ".pdf"
		return path, export.ExportPDF(path, res, settings)
	case formatLabels:
		path := base + "-labels.pdf"
		return path, export.ExportLabels(path, res, settings)
	case formatDXF:
		path := base + ".dxf"
		return path, export.ExportDXF(path, res, settings)
	case formatXLSX:
		path := base + ".xlsx"
		return path, export.ExportSchedule(path, res, waste)
	case formatJSON:
		path := base + ".json"
		f, err := os.Create(path)
		if err != nil {
			return path, fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := export.ExportJSON(f, res); err != nil {
			f.Close()
			return path, err
		}
		return path, f.Close()
	}
	return "", fmt.Errorf("unknown format %q", format)
}

// saveGenerated writes a project file and records it in the recent list.
func saveGenerated(root *rootOpts, path string, req model.RoomRequest, settings model.Settings, res model.Result) (string, error) {
	if filepath.Ext(path) == "" {
		path += project.ProjectExt
	}
	p := model.NewProject()
	p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	p.Request = req
	p.Settings = settings
	p.Result = &res
	if err := project.SaveProject(path, p); err != nil {
		return path, fmt.Errorf("failed to save project: %w", err)
	}

	cfg, err := project.LoadAppConfig(root.configPath)
	if err != nil {
		return path, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.AddRecent(path)
	if err := project.SaveAppConfig(root.configPath, cfg); err != nil {
		return path, fmt.Errorf("failed to save config: %w", err)
	}
	return path, nil
}
