package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet owns every file loaded during one run. Re-adding a path creates a
// new version with a fresh FileID; older spans stay valid.
type FileSet struct {
	files   []File
	latest  map[string]FileID
	baseDir string // пусто - рабочий каталог
}

func NewFileSet() *FileSet { return NewFileSetWithBase("") }

// NewFileSetWithBase creates a FileSet whose relative paths are computed against baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{latest: make(map[string]FileID), baseDir: baseDir}
}

func (s *FileSet) SetBaseDir(dir string) { s.baseDir = dir }

// BaseDir returns the base directory, falling back to the working directory.
func (s *FileSet) BaseDir() string {
	if s.baseDir != "" {
		return s.baseDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// Len counts every stored version.
func (s *FileSet) Len() int { return len(s.files) }

// Add stores already normalized content under path and returns its new id.
func (s *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(s.files))
	if err != nil {
		panic(fmt.Errorf("too many files in set: %w", err))
	}
	id := FileID(n)
	clean := normalizePath(path)
	s.files = append(s.files, File{
		ID:      id,
		Path:    clean,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	s.latest[clean] = id
	return id
}

// Load reads path from disk. A UTF-8 BOM is stripped and CRLF becomes LF;
// both are recorded in the file flags.
func (s *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- путь задаёт пользователь
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var flags FileFlags
	raw, bom := removeBOM(raw)
	if bom {
		flags |= FileHadBOM
	}
	raw, crlf := normalizeCRLF(raw)
	if crlf {
		flags |= FileNormalizedCRLF
	}
	return s.Add(path, raw, flags), nil
}

// AddVirtual adds an in-memory file (tests, stdin, unreadable paths).
func (s *FileSet) AddVirtual(name string, content []byte) FileID {
	return s.Add(name, content, FileVirtual)
}

// Get returns nil for unknown ids.
func (s *FileSet) Get(id FileID) *File {
	if int(id) < len(s.files) {
		return &s.files[id]
	}
	return nil
}

// GetLatest returns the newest version registered for path.
func (s *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := s.latest[normalizePath(path)]
	return id, ok
}

// Resolve converts both ends of span into line/column positions.
func (s *FileSet) Resolve(span Span) (start, end LineCol) {
	if f := s.Get(span.File); f != nil {
		start = toLineCol(f.LineIdx, span.Start)
		end = toLineCol(f.LineIdx, span.End)
	}
	return start, end
}

// GetLine returns the 1-based line lineNum without its trailing newline, or
// "" when the file has no such line.
func (f *File) GetLine(lineNum uint32) string {
	n := int(lineNum)
	if n == 0 || n > len(f.LineIdx)+1 {
		return ""
	}
	from := 0
	if n > 1 {
		from = int(f.LineIdx[n-2]) + 1
	}
	to := len(f.Content)
	if n <= len(f.LineIdx) {
		to = int(f.LineIdx[n-1])
	}
	if from >= len(f.Content) || from > to {
		return ""
	}
	return string(f.Content[from:to])
}

// FormatPath renders the path for output. mode is one of absolute, relative,
// basename or auto; anything else returns the stored path.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		abs, err := AbsolutePath(f.Path)
		return pathOr(abs, err, f.Path)
	case "relative":
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		rel, err := RelativePath(f.Path, baseDir)
		return pathOr(rel, err, f.Path)
	case "basename":
		return BaseName(f.Path)
	case "auto":
		if baseDir != "" {
			if rel, err := RelativePath(f.Path, baseDir); err == nil && !filepath.IsAbs(rel) {
				return rel
			}
		}
		// длинные абсолютные пути сокращаем до имени файла
		if filepath.IsAbs(f.Path) && len(f.Path) >= 40 {
			return BaseName(f.Path)
		}
		return f.Path
	}
	return f.Path
}

func pathOr(p string, err error, fallback string) string {
	if err != nil {
		return fallback
	}
	return p
}
