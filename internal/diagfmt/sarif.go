package diagfmt

import (
	"encoding/json"
	"io"

	"guardc/internal/diag"
	"guardc/internal/source"
)

const (
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
	sarifVersion = "2.1.0"
)

// SarifLog is the top-level SARIF document.
type SarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID           string          `json:"ruleId"`
	Level            string          `json:"level"`
	Message          sarifMessage    `json:"message"`
	Locations        []sarifLocation `json:"locations"`
	RelatedLocations []sarifLocation `json:"relatedLocations,omitempty"`
}

type sarifLocation struct {
	ID               int                   `json:"id,omitempty"`
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
	Message          *sarifMessage         `json:"message,omitempty"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           sarifRegion   `json:"region"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
	ByteOffset  uint32 `json:"byteOffset"`
	ByteLength  uint32 `json:"byteLength"`
}

func sarifLevel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}

func makeSarifLocation(span source.Span, fs *source.FileSet) sarifLocation {
	loc := sarifLocation{
		PhysicalLocation: sarifPhysicalLocation{
			Region: sarifRegion{ByteOffset: span.Start, ByteLength: span.Len()},
		},
	}
	if f := fs.Get(span.File); f != nil {
		loc.PhysicalLocation.ArtifactLocation.URI = formatPath(f, fs, PathModeRelative)
		start, end := fs.Resolve(span)
		loc.PhysicalLocation.Region.StartLine = start.Line
		loc.PhysicalLocation.Region.StartColumn = start.Col
		loc.PhysicalLocation.Region.EndLine = end.Line
		loc.PhysicalLocation.Region.EndColumn = end.Col
	}
	return loc
}

// BuildSarif собирает SARIF-лог (v2.1.0). Заметки становятся relatedLocations.
func BuildSarif(bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) SarifLog {
	name := meta.ToolName
	if name == "" {
		name = "guardc"
	}
	run := sarifRun{
		Tool:    sarifTool{Driver: sarifDriver{Name: name, Version: meta.ToolVersion}},
		Results: make([]sarifResult, 0, bag.Len()),
	}

	seen := make(map[diag.Code]bool)
	for _, e := range attachNotes(bag.Items()) {
		if !seen[e.Code] {
			seen[e.Code] = true
			run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sarifRule{
				ID:               e.Code.ID(),
				Name:             e.Code.Name(),
				ShortDescription: sarifMessage{Text: e.Code.Title()},
			})
		}
		res := sarifResult{
			RuleID:    e.Code.ID(),
			Level:     sarifLevel(e.Severity),
			Message:   sarifMessage{Text: e.Message},
			Locations: []sarifLocation{makeSarifLocation(e.Primary, fs)},
		}
		for i, n := range e.notes {
			rel := makeSarifLocation(n.Primary, fs)
			rel.ID = i + 1
			rel.Message = &sarifMessage{Text: n.Message}
			res.RelatedLocations = append(res.RelatedLocations, rel)
		}
		run.Results = append(run.Results, res)
	}

	if len(meta.InvocationArgs) > 0 {
		run.Invocations = []sarifInvocation{{
			Arguments:           meta.InvocationArgs,
			ExecutionSuccessful: !bag.HasErrors(),
		}}
	}

	return SarifLog{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs:    []sarifRun{run},
	}
}

// Sarif форматирует диагностики в SARIF формат (v2.1.0)
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildSarif(bag, fs, meta))
}
