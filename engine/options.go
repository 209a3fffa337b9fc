package engine

// ============================================================================
// ENGINE OPTIONS — Functional options for the view pipelines
// ============================================================================

// Option configures a pipeline run via the functional options pattern.
type Option func(*config)

type config struct {
	Title       string
	SortBy      []string // display sort, overrides the view default
	ColorDomain []float64
	ColorRange  []string
}

// WithTitle sets the title carried on the Result, table, and charts.
func WithTitle(title string) Option {
	return func(c *config) { c.Title = title }
}

// WithSortBy overrides the view's default display sort fields.
func WithSortBy(fields ...string) Option {
	return func(c *config) { c.SortBy = fields }
}

// WithColorScale overrides the accuracy color ramp used by chart configs.
func WithColorScale(domain []float64, colors []string) Option {
	return func(c *config) {
		c.ColorDomain = domain
		c.ColorRange = colors
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		ColorDomain: AccuracyColorDomain,
		ColorRange:  AccuracyColorRange,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
