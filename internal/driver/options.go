package driver

import (
	"guardc/internal/observ"
)

// DiagnoseStage определяет, до какой фазы доводить проверку
type DiagnoseStage string

const (
	DiagnoseStageTokenize DiagnoseStage = "tokenize"
	DiagnoseStageSyntax   DiagnoseStage = "syntax"
	DiagnoseStageGuard    DiagnoseStage = "guard"
)

// DiagnoseOptions содержит опции для проверки файла или каталога
type DiagnoseOptions struct {
	Stage            DiagnoseStage // пусто - DiagnoseStageGuard
	MaxDiagnostics   int           // лимит на файл, 0 - без лимита
	IgnoreWarnings   bool
	WarningsAsErrors bool
	// Jobs limits concurrent workers in DiagnoseDir; 0 means GOMAXPROCS.
	Jobs int
	// Exclude reports whether a path relative to the checked directory is skipped.
	Exclude func(rel string) bool

	Cache    *DiskCache
	Timer    *observ.Timer
	Progress ProgressSink
}

func (o *DiagnoseOptions) stage() DiagnoseStage {
	if o.Stage == "" {
		return DiagnoseStageGuard
	}
	return o.Stage
}
