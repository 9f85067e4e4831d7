package engine

// ============================================================================
// RECORD VIEW — Read-only access to launch rows
// ============================================================================
// The engine never owns the dataset. Filters and groups are SubViews: index
// lists into the dataset view, so row order always follows the file.
//
//   SliceView      wraps []Record, used by tests and ad-hoc data
//   DomainView[T]  reads typed structs through accessor functions
//   SubView        a filtered subset; nesting is flattened onto the root
// ============================================================================

// RecordView provides indexed access to launch rows by dimension and measure key.
// Dimension and Measure are called once per row per pass; keep them cheap.
type RecordView interface {
	Len() int
	Dimension(index int, key string) string
	Measure(index int, key string) float64
}

// ============================================================================
// SLICE VIEW
// ============================================================================

// SliceView serves []Record as a RecordView.
type SliceView struct {
	records []Record
}

// NewSliceView creates a RecordView over records without copying them.
func NewSliceView(records []Record) RecordView {
	return &SliceView{records: records}
}

func (v *SliceView) Len() int { return len(v.records) }

func (v *SliceView) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.records) {
		return ""
	}
	return v.records[i].Dimensions[key]
}

func (v *SliceView) Measure(i int, key string) float64 {
	if i < 0 || i >= len(v.records) {
		return 0
	}
	return v.records[i].Measures[key]
}

// ============================================================================
// SUB VIEW
// ============================================================================

// SubView is an ordered subset of a root view.
type SubView struct {
	root    RecordView
	indices []int
}

// newSubView selects positions of parent. When parent is itself a SubView the
// positions are translated so the result points straight at the root view.
func newSubView(parent RecordView, positions []int) RecordView {
	sv, ok := parent.(*SubView)
	if !ok {
		return &SubView{root: parent, indices: positions}
	}
	indices := make([]int, len(positions))
	for i, p := range positions {
		indices[i] = sv.indices[p]
	}
	return &SubView{root: sv.root, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.indices) {
		return ""
	}
	return v.root.Dimension(v.indices[i], key)
}

func (v *SubView) Measure(i int, key string) float64 {
	if i < 0 || i >= len(v.indices) {
		return 0
	}
	return v.root.Measure(v.indices[i], key)
}

// ============================================================================
// DOMAIN ADAPTER
// ============================================================================
//
//	adapter := engine.NewDomainAdapter[dataset.Launch]().
//	    Dimension(engine.DimSite, func(l dataset.Launch) string { return l.Site }).
//	    Measure(engine.MeasurePayload, func(l dataset.Launch) float64 { return l.PayloadMass })
//
//	view := adapter.Bind(launches)
//
// ============================================================================

// DomainAdapter maps a struct type onto dimension and measure keys.
// Declare it once and bind it to each slice.
type DomainAdapter[T any] struct {
	dims map[string]func(T) string
	meas map[string]func(T) float64
}

// NewDomainAdapter creates an empty adapter for T.
func NewDomainAdapter[T any]() *DomainAdapter[T] {
	return &DomainAdapter[T]{
		dims: make(map[string]func(T) string),
		meas: make(map[string]func(T) float64),
	}
}

// Dimension registers fn under key, replacing any earlier accessor.
func (a *DomainAdapter[T]) Dimension(key string, fn func(T) string) *DomainAdapter[T] {
	a.dims[key] = fn
	return a
}

// Measure registers fn under key, replacing any earlier accessor.
func (a *DomainAdapter[T]) Measure(key string, fn func(T) float64) *DomainAdapter[T] {
	a.meas[key] = fn
	return a
}

// Bind returns a view over data. The slice is referenced, not copied.
func (a *DomainAdapter[T]) Bind(data []T) RecordView {
	return &DomainView[T]{data: data, dims: a.dims, meas: a.meas}
}

// DomainView reads typed struct fields through registered accessors.
// Unregistered keys read as "" and 0.
type DomainView[T any] struct {
	data []T
	dims map[string]func(T) string
	meas map[string]func(T) float64
}

func (v *DomainView[T]) Len() int { return len(v.data) }

func (v *DomainView[T]) Dimension(i int, key string) string {
	fn, ok := v.dims[key]
	if !ok || i < 0 || i >= len(v.data) {
		return ""
	}
	return fn(v.data[i])
}

func (v *DomainView[T]) Measure(i int, key string) float64 {
	fn, ok := v.meas[key]
	if !ok || i < 0 || i >= len(v.data) {
		return 0
	}
	return fn(v.data[i])
}
