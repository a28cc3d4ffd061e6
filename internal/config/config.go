// Package config provides YAML-based view configuration loading for girder.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mfurukawa/girder/internal/layout"
)

// Config is the top-level girder configuration, loaded from girder.yaml.
type Config struct {
	View   ViewConfig   `yaml:"view"`
	Colors ColorConfig  `yaml:"colors"`
	SVG    SVGConfig    `yaml:"svg"`
	Import ImportConfig `yaml:"import"`
}

// ViewConfig controls the timeline grid.
type ViewConfig struct {
	Zoom      string `yaml:"zoom"`
	WeekStart string `yaml:"week_start"`
	// Cell widths in pixels per timeline item, one per zoom level.
	CellWidthDay   float64 `yaml:"cell_width_day"`
	CellWidthWeek  float64 `yaml:"cell_width_week"`
	CellWidthMonth float64 `yaml:"cell_width_month"`
	// Base width of the fixed task label column.
	LabelWidth float64 `yaml:"label_width"`
	// Optional sidebar columns to show.
	Columns []string `yaml:"columns"`
}

// ColorConfig holds render colors. Values are hex strings or terminal color
// names, passed through to the renderer untouched.
type ColorConfig struct {
	PlanBar      string `yaml:"plan_bar"`
	ActualBar    string `yaml:"actual_bar"`
	GroupBar     string `yaml:"group_bar"`
	ScurvePlan   string `yaml:"scurve_plan"`
	ScurveActual string `yaml:"scurve_actual"`
	Today        string `yaml:"today"`
}

// SVGConfig sizes the SVG export.
type SVGConfig struct {
	RowHeight    float64 `yaml:"row_height"`
	HeaderHeight float64 `yaml:"header_height"`
	ScurveHeight float64 `yaml:"scurve_height"`
}

// ImportConfig tunes CSV import behavior.
type ImportConfig struct {
	// DefaultDate overrides "today" as the fallback for unparseable dates,
	// useful for reproducible imports. Format YYYY-MM-DD.
	DefaultDate string `yaml:"default_date"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Load reads a YAML config file from path and returns a validated Config.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Parse(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse: %w", err)
		}
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.View.Zoom == "" {
		c.View.Zoom = "day"
	}
	if c.View.WeekStart == "" {
		c.View.WeekStart = "monday"
	}
	if c.View.CellWidthDay == 0 {
		c.View.CellWidthDay = 24
	}
	if c.View.CellWidthWeek == 0 {
		c.View.CellWidthWeek = 56
	}
	if c.View.CellWidthMonth == 0 {
		c.View.CellWidthMonth = 96
	}
	if c.View.LabelWidth == 0 {
		c.View.LabelWidth = 200
	}
	if c.View.Columns == nil {
		c.View.Columns = []string{"period", "progress"}
	}
	if c.Colors.PlanBar == "" {
		c.Colors.PlanBar = "#83a598"
	}
	if c.Colors.ActualBar == "" {
		c.Colors.ActualBar = "#b8bb26"
	}
	if c.Colors.GroupBar == "" {
		c.Colors.GroupBar = "#928374"
	}
	if c.Colors.ScurvePlan == "" {
		c.Colors.ScurvePlan = "#458588"
	}
	if c.Colors.ScurveActual == "" {
		c.Colors.ScurveActual = "#d79921"
	}
	if c.Colors.Today == "" {
		c.Colors.Today = "#fb4934"
	}
	if c.SVG.RowHeight == 0 {
		c.SVG.RowHeight = 28
	}
	if c.SVG.HeaderHeight == 0 {
		c.SVG.HeaderHeight = 48
	}
	if c.SVG.ScurveHeight == 0 {
		c.SVG.ScurveHeight = 160
	}
}

// validate checks that all fields parse to usable values.
func (c *Config) validate() error {
	var errs []string
	switch c.View.Zoom {
	case "day", "week", "month":
	default:
		errs = append(errs, fmt.Sprintf("view.zoom: unknown zoom %q", c.View.Zoom))
	}
	if _, ok := weekdayNames[strings.ToLower(c.View.WeekStart)]; !ok {
		errs = append(errs, fmt.Sprintf("view.week_start: unknown weekday %q", c.View.WeekStart))
	}
	for i, name := range c.View.Columns {
		if !validColumn(name) {
			errs = append(errs, fmt.Sprintf("view.columns[%d]: unknown column %q", i, name))
		}
	}
	if c.Import.DefaultDate != "" {
		if _, err := time.Parse("2006-01-02", c.Import.DefaultDate); err != nil {
			errs = append(errs, fmt.Sprintf("import.default_date: invalid date %q", c.Import.DefaultDate))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validColumn(name string) bool {
	for _, col := range layout.AllColumns {
		if string(col) == name {
			return true
		}
	}
	return false
}

// WeekStart returns the configured first day of the week.
func (c *Config) WeekStart() time.Weekday {
	return weekdayNames[strings.ToLower(c.View.WeekStart)]
}

// CellWidth returns the configured cell width for a zoom level name.
func (c *Config) CellWidth(zoom string) float64 {
	switch zoom {
	case "week":
		return c.View.CellWidthWeek
	case "month":
		return c.View.CellWidthMonth
	default:
		return c.View.CellWidthDay
	}
}

// VisibleColumns converts the configured column names to a layout set.
func (c *Config) VisibleColumns() layout.ColumnSet {
	cols := make([]layout.Column, 0, len(c.View.Columns))
	for _, name := range c.View.Columns {
		cols = append(cols, layout.Column(name))
	}
	return layout.NewColumnSet(cols...)
}
