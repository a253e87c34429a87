package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new projects
	DefaultUnit           Unit    `json:"default_unit"`
	DefaultGridSize       float64 `json:"default_grid_size"`
	DefaultCirculation    float64 `json:"default_circulation"`
	DefaultEnvelopeAspect float64 `json:"default_envelope_aspect"`
	DefaultWallHeight     float64 `json:"default_wall_height"`
	DefaultWallThickness  float64 `json:"default_wall_thickness"`
	DefaultSeed           int64   `json:"default_seed"`
	DefaultOutputDir      string  `json:"default_output_dir"`

	// Application preferences
	RecentProjects []string `json:"recent_projects"`
	MaxRecent      int      `json:"max_recent"`
	Verbose        bool     `json:"verbose"`
}

// DefaultAppConfig returns an AppConfig populated with the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultUnit:           defaults.InputUnit,
		DefaultGridSize:       defaults.GridSize,
		DefaultCirculation:    defaults.CirculationFactor,
		DefaultEnvelopeAspect: defaults.EnvelopeAspect,
		DefaultWallHeight:     defaults.WallHeight,
		DefaultWallThickness:  defaults.WallThickness,
		DefaultSeed:           defaults.Seed,
		DefaultOutputDir:      ".",
		RecentProjects:        []string{},
		MaxRecent:             10,
	}
}

// ApplyToSettings copies the default values from AppConfig into a Settings struct.
// Zero values are skipped so a partially written config file keeps the built-in defaults.
func (c AppConfig) ApplyToSettings(s *Settings) {
	if c.DefaultUnit != "" {
		s.InputUnit = c.DefaultUnit
	}
	if c.DefaultGridSize > 0 {
		s.GridSize = c.DefaultGridSize
		s.MinSplitSize = c.DefaultGridSize
	}
	if c.DefaultCirculation > 0 {
		s.CirculationFactor = c.DefaultCirculation
	}
	if c.DefaultEnvelopeAspect > 0 {
		s.EnvelopeAspect = c.DefaultEnvelopeAspect
	}
	if c.DefaultWallHeight > 0 {
		s.WallHeight = c.DefaultWallHeight
	}
	if c.DefaultWallThickness > 0 {
		s.WallThickness = c.DefaultWallThickness
	}
	if c.DefaultSeed != 0 {
		s.Seed = c.DefaultSeed
	}
}

// AddRecent moves path to the front of the recent project list, trimming it to MaxRecent.
func (c *AppConfig) AddRecent(path string) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	limit := c.MaxRecent
	if limit <= 0 {
		limit = 10
	}
	if len(recent) > limit {
		recent = recent[:limit]
	}
	c.RecentProjects = recent
}
