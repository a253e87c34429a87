package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ArvindGuruRK/construction-3d-plan/internal/importer"
	"github.com/ArvindGuruRK/construction-3d-plan/internal/model"
	"github.com/ArvindGuruRK/construction-3d-plan/internal/project"
)

// requestFlags describe a room program and the settings to lay it out with.
// Sources are applied in order: app config, template, program file,
// settings file, then individual flags.
type requestFlags struct {
	area         float64
	unit         string
	rooms        map[string]int
	sizes        map[string]string
	program      string
	template     string
	settingsPath string
	seed         int64
	jitter       bool
	grid         float64
}

func (f *requestFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.Float64VarP(&f.area, "area", "a", 0, "total floor area")
	fl.StringVarP(&f.unit, "unit", "u", "", "area unit: sqm or sqft")
	fl.StringToIntVarP(&f.rooms, "rooms", "r", nil, "room counts, e.g. bedroom=2,bathroom=1")
	fl.StringToStringVar(&f.sizes, "size", nil, "per-room size hints, e.g. bedroom=14")
	fl.StringVarP(&f.program, "program", "p", "", "room program file (.csv or .xlsx)")
	fl.StringVarP(&f.template, "template", "t", "", "start from a saved or built-in template (name or ID)")
	fl.StringVarP(&f.settingsPath, "settings", "s", "", "settings file (.json, .toml, .yaml)")
	fl.Int64Var(&f.seed, "seed", 0, "random seed for aspect jitter")
	fl.BoolVar(&f.jitter, "jitter", false, "randomize aspect ratio trials")
	fl.Float64Var(&f.grid, "grid", 0, "snapping grid in metres")
}

// resolve builds the request and settings from every configured source.
func (f *requestFlags) resolve(cmd *cobra.Command, root *rootOpts) (model.RoomRequest, model.Settings, error) {
	logger := loggerFromContext(cmd.Context())

	cfg, err := project.LoadAppConfig(root.configPath)
	if err != nil {
		return model.RoomRequest{}, model.Settings{}, fmt.Errorf("failed to load config: %w", err)
	}
	settings := model.DefaultSettings()
	cfg.ApplyToSettings(&settings)
	req := model.RoomRequest{RoomCounts: map[model.RoomType]int{}}

	if f.template != "" {
		store, err := project.LoadTemplatesWithBuiltins(root.templatesPath)
		if err != nil {
			return req, settings, fmt.Errorf("failed to load templates: %w", err)
		}
		tmpl := findTemplate(&store, f.template)
		if tmpl == nil {
			return req, settings, fmt.Errorf("template %q not found", f.template)
		}
		req = tmpl.ToProject(tmpl.Name).Request
		settings = tmpl.Settings
		logger.Debug("using template", "name", tmpl.Name, "id", tmpl.ID)
	}

	if f.program != "" {
		res := importer.ImportFile(f.program)
		for _, w := range res.Warnings {
			logger.Warn(w, "file", f.program)
		}
		if len(res.Errors) > 0 {
			return req, settings, fmt.Errorf("failed to import %s: %s", f.program, strings.Join(res.Errors, "; "))
		}
		req.RoomCounts = res.Request.RoomCounts
		req.RoomSizeHints = res.Request.RoomSizeHints
		if res.Request.TotalArea > 0 {
			req.TotalArea = res.Request.TotalArea
		}
	}

	if f.settingsPath != "" {
		settings, err = project.LoadSettings(f.settingsPath)
		if err != nil {
			return req, settings, err
		}
	}

	if err := f.applyFlags(cmd, &req, &settings); err != nil {
		return req, settings, err
	}
	if req.TotalArea <= 0 {
		return req, settings, fmt.Errorf("total area is required: pass --area, a program file with a total row, or --template")
	}
	return req, settings, nil
}

func (f *requestFlags) applyFlags(cmd *cobra.Command, req *model.RoomRequest, settings *model.Settings) error {
	fl := cmd.Flags()
	if fl.Changed("area") {
		req.TotalArea = f.area
	}
	if fl.Changed("unit") {
		settings.InputUnit = model.Unit(strings.ToLower(f.unit))
	}
	if fl.Changed("seed") {
		settings.Seed = f.seed
	}
	if fl.Changed("jitter") {
		settings.AspectJitter = f.jitter
	}
	if fl.Changed("grid") {
		settings.GridSize = f.grid
		settings.MinSplitSize = f.grid
	}

	for _, name := range sortedKeys(f.rooms) {
		rt, ok := model.ParseRoomType(name)
		if !ok {
			return fmt.Errorf("unknown room type %q", name)
		}
		req.RoomCounts[rt] = f.rooms[name]
	}
	for _, name := range sortedKeys(f.sizes) {
		rt, ok := model.ParseRoomType(name)
		if !ok {
			return fmt.Errorf("unknown room type %q in --size", name)
		}
		size, err := strconv.ParseFloat(f.sizes[name], 64)
		if err != nil {
			return fmt.Errorf("invalid size %q for %s", f.sizes[name], rt)
		}
		if req.RoomSizeHints == nil {
			req.RoomSizeHints = map[model.RoomType]float64{}
		}
		req.RoomSizeHints[rt] = size
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
