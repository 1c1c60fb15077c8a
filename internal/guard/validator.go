package guard

import (
	"context"
	"fmt"

	"guardc/internal/ast"
	"guardc/internal/diag"
	"guardc/internal/trace"
)

// Options configures a Validator.
type Options struct {
	// Reporter additionally receives every diagnostic; may be nil.
	Reporter diag.Reporter
	// Tracer overrides the tracer found in the context.
	Tracer trace.Tracer
}

// Validator runs guard analysis over one compilation unit at a time.
// A Validator must not be shared between goroutines; give every
// concurrently checked unit its own instance.
type Validator struct {
	opts      Options
	collector *Collector
	groups    []*FunctionGroup
	results   []*GroupAnalysis
	bag       *diag.Bag
}

func NewValidator(opts Options) *Validator {
	return &Validator{
		opts:      opts,
		collector: NewCollector(),
		bag:       diag.NewBag(0),
	}
}

// Validate collects the overload groups of file and checks each of them in
// discovery order. State from a previous call is discarded.
func (v *Validator) Validate(ctx context.Context, b *ast.Builder, file ast.FileID) []diag.Diagnostic {
	v.reset()
	tracer := v.opts.Tracer
	if tracer == nil {
		tracer = trace.FromContext(ctx)
	}
	parent := trace.CurrentSpan(ctx)

	collectSpan := trace.Begin(tracer, trace.ScopePass, "guard.collect", parent)
	v.groups = v.collector.Collect(b, file)
	collectSpan.End(fmt.Sprintf("%d groups", len(v.groups)))

	validateSpan := trace.Begin(tracer, trace.ScopePass, "guard.validate", parent)
	emitter := NewEmitter(diag.BagReporter{Bag: v.bag})
	for _, g := range v.groups {
		res := Analyze(b, g)
		v.results = append(v.results, res)
		emitter.Emit(res)
		if tracer.Enabled() {
			trace.Point(tracer, trace.ScopeGroup, "group", groupDetail(res), validateSpan.ID())
		}
	}
	validateSpan.WithExtra("diagnostics", fmt.Sprint(v.bag.Len())).End("")

	out := v.bag.Items()
	if v.opts.Reporter != nil {
		for _, d := range out {
			v.opts.Reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Overloads)
		}
	}
	return out
}

// Groups returns the groups collected by the last Validate call.
func (v *Validator) Groups() []*FunctionGroup { return v.groups }

// Results returns the per-group analyses of the last Validate call.
func (v *Validator) Results() []*GroupAnalysis { return v.results }

func (v *Validator) reset() {
	v.collector.Reset()
	v.groups = nil
	v.results = nil
	v.bag = diag.NewBag(0)
}

func groupDetail(res *GroupAnalysis) string {
	detail := fmt.Sprintf("%s: %d overloads, %d findings", res.Group.Key, res.Group.Len(), len(res.Findings))
	if res.Skipped {
		detail += ", skipped"
	}
	return detail
}
