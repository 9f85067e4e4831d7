package engine

// ============================================================================
// CHART BUILDER — Produces ChartConfig from a ChartSpec
// ============================================================================
// Proportion specs become one "pie" series of labelled values.
// Scatter specs become one series per booster category, coloured in order.
// ============================================================================

// DefaultColors is the palette assigned to series and slices in order.
var DefaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// ColorAt returns the palette colour for position i.
func ColorAt(i int) string {
	return DefaultColors[i%len(DefaultColors)]
}

// BuildChart produces a ChartConfig from a spec.
// Error-state specs produce a config with no series.
func BuildChart(spec ChartSpec) *ChartConfig {
	config := &ChartConfig{
		Title:      spec.Title,
		ShowLegend: true,
		Series:     []ChartSeries{},
	}

	switch spec.Kind {
	case KindProportion:
		config.ChartType = "pie"
		if spec.Err == "" {
			config.Series = buildSliceSeries(spec)
			config.Colors = assignColors(len(spec.Slices))
		}

	case KindScatter:
		config.ChartType = "scatter"
		config.ShowGrid = true
		config.XAxis = LabelForDimension(MeasurePayload)
		config.YAxis = "class"
		if spec.Err == "" {
			config.Series = buildGroupSeries(spec.Points)
			config.Colors = assignColors(len(config.Series))
		}
	}
	return config
}

func buildSliceSeries(spec ChartSpec) []ChartSeries {
	points := make([]ChartPoint, 0, len(spec.Slices))
	for _, s := range spec.Slices {
		points = append(points, ChartPoint{Label: s.Label, Value: RoundTo2(s.Value)})
	}
	return []ChartSeries{{Name: spec.Title, Data: points}}
}

// buildGroupSeries splits points by Group, keeping first-appearance order of
// groups and dataset order within each group.
func buildGroupSeries(points []ScatterPoint) []ChartSeries {
	index := make(map[string]int)
	series := make([]ChartSeries, 0)
	for _, p := range points {
		i, ok := index[p.Group]
		if !ok {
			i = len(series)
			index[p.Group] = i
			series = append(series, ChartSeries{Name: p.Group, Color: ColorAt(i)})
		}
		series[i].Points = append(series[i].Points, p)
	}
	return series
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = ColorAt(i)
	}
	return colors
}
