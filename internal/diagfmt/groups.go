package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"guardc/internal/guard"
	"guardc/internal/source"
)

// OverloadOutput describes one classified overload for `guardc parse`.
type OverloadOutput struct {
	Index     int      `json:"index"`
	Location  string   `json:"location"`
	Predicate string   `json:"predicate"`
	Atoms     []string `json:"atoms,omitempty"`
	Interval  string   `json:"interval,omitempty"`
	Param     string   `json:"param,omitempty"`
}

// GroupOutput describes one overload group for `guardc parse`.
type GroupOutput struct {
	Group       string           `json:"group"`
	Skipped     bool             `json:"skipped,omitempty"`
	ValidBase   bool             `json:"valid_base"`
	Unreachable []int            `json:"unreachable,omitempty"`
	Overloads   []OverloadOutput `json:"overloads"`
}

// BuildGroupsOutput переводит результаты анализа в форму для вывода.
func BuildGroupsOutput(results []*guard.GroupAnalysis, fs *source.FileSet, mode PathMode) []GroupOutput {
	out := make([]GroupOutput, 0, len(results))
	for _, res := range results {
		g := GroupOutput{
			Group:       res.Group.Key.String(),
			Skipped:     res.Skipped,
			ValidBase:   res.ValidBase,
			Unreachable: res.Unreachable(),
			Overloads:   make([]OverloadOutput, 0, len(res.Overloads)),
		}
		for i := range res.Overloads {
			ov := &res.Overloads[i]
			o := OverloadOutput{
				Index:     ov.Ordinal(),
				Location:  location(ov.Span, fs, mode),
				Predicate: ov.Pred.Type.String(),
			}
			for _, a := range ov.Pred.Atoms {
				o.Atoms = append(o.Atoms, a.String())
			}
			if ov.HasInterval {
				o.Interval = ov.Interval.String()
				if ov.Param >= 0 && ov.Param < len(ov.Params) {
					o.Param = ov.Params[ov.Param].Name
				}
			}
			g.Overloads = append(g.Overloads, o)
		}
		out = append(out, g)
	}
	return out
}

// FormatGroupsPretty печатает группы перегрузок деревом:
//
//	group f/1
//	├─ #1 analyzable  x > 0           x ∈ (0, +inf)
//	└─ #2 base        always
func FormatGroupsPretty(w io.Writer, results []*guard.GroupAnalysis, fs *source.FileSet, mode PathMode) error {
	for gi, g := range BuildGroupsOutput(results, fs, mode) {
		if gi > 0 {
			fmt.Fprintln(w)
		}
		header := "group " + g.Group
		if g.Skipped {
			header += " (not analyzed)"
		}
		if _, err := fmt.Fprintln(w, header); err != nil {
			return err
		}
		unreachable := make(map[int]bool, len(g.Unreachable))
		for _, idx := range g.Unreachable {
			unreachable[idx] = true
		}
		for i, o := range g.Overloads {
			branch := "├─"
			if i == len(g.Overloads)-1 {
				branch = "└─"
			}
			desc := "opaque"
			switch o.Predicate {
			case guard.PredicateBase.String():
				desc = "always"
			case guard.PredicateAnalyzable.String():
				desc = strings.Join(o.Atoms, " && ")
			}
			line := fmt.Sprintf("%s #%d %-10s %s", branch, o.Index, o.Predicate, desc)
			if o.Interval != "" {
				line += fmt.Sprintf("  %s ∈ %s", o.Param, o.Interval)
			}
			if unreachable[o.Index] {
				line += "  [unreachable]"
			}
			fmt.Fprintf(w, "%s  (%s)\n", line, o.Location)
		}
	}
	return nil
}

// FormatGroupsJSON выводит группы в JSON.
func FormatGroupsJSON(w io.Writer, results []*guard.GroupAnalysis, fs *source.FileSet, mode PathMode) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildGroupsOutput(results, fs, mode))
}
