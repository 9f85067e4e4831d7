// Package launchdash is a reactive dashboard over launch records.
//
// Usage:
//
//	ds, err := dataset.Load("spacex_launch_dash.csv", schema.Default())
//	charts := render.NewLatest()
//	ctrl, err := engine.NewController(ds.View(), charts,
//	    engine.WithSites(dataset.KnownSites(schema.Default())),
//	)
//	ctrl.OnSiteChanged("KSC LC-39A")
//	ctrl.OnRangeChanged(engine.PayloadRange{Min: 2000, Max: 8000})
//	spec, _ := charts.Get(engine.KindScatter)
//
// The controller owns the only mutable state, a site and a payload range.
// Each change filters the read-only dataset and emits render-ready chart
// specs to a Renderer. The server and cmd/launchdash packages put an HTTP
// dashboard and a CLI in front of it.
package launchdash
