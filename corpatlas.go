// Package corpatlas provides a standalone query layer for the Top-2000
// global companies dataset.
//
// Usage:
//
//	import (
//	    "github.com/corpatlas-org/corpatlas/dataset"
//	    "github.com/corpatlas-org/corpatlas/engine"
//	)
//
//	ds, err := dataset.NewLoader("companies.csv").Load()
//	result, err := engine.Execute(engine.Params{
//	    Continent: "Asia",
//	    Metric:    engine.MetricProfits,
//	    TopN:      10,
//	}, ds)
//
// The engine takes query parameters and an immutable Dataset, and returns
// render-ready output (ranked rows, bar chart data, table data, map points,
// scalar statistics). Presentation is the consumer's job: the engine never
// draws anything and never performs I/O. Loading is confined to the dataset
// package, and each consumer interaction maps to exactly one Execute call.
package corpatlas
