// Package cropsight is the computation core of a forecast-accuracy and
// wages-variance reporting dashboard for a food-processing operation.
//
// Usage:
//
//	import "github.com/cropsight-org/cropsight/engine"
//
//	result, err := engine.RunAccuracyOverview(actuals, forecast, filters,
//	    engine.WithTitle("Forecast Volume Accuracy – One Week Out"),
//	)
//
// The engine takes normalized tabular extracts (dimension/measure records)
// and returns render-ready output: metric tables, heatmap and facet chart
// configurations, and KPI summaries.
//
// Spreadsheet ingestion lives in the extract package, column normalization
// in schema. The engine never reads files or calls any external service —
// all computation is local and pure.
package cropsight
