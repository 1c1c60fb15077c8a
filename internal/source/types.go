package source

// FileID indexes a File inside its FileSet.
type FileID uint32

// FileFlags records how a file entered the set.
type FileFlags uint8

const (
	FileVirtual        FileFlags = 1 << iota // из памяти, не с диска
	FileHadBOM                               // BOM удалён при загрузке
	FileNormalizedCRLF                       // \r\n заменены на \n
)

// Has reports whether every bit of flag is set.
func (f FileFlags) Has(flag FileFlags) bool { return f&flag == flag }

// File is one loaded version of a source file.
type File struct {
	ID      FileID
	Path    string   // slash-normalized
	Content []byte   // после нормализации BOM/CRLF
	LineIdx []uint32 // offsets of every '\n'
	Hash    [32]byte // sha256 of Content
	Flags   FileFlags
}

// LineCol is a 1-based line and byte column.
type LineCol struct {
	Line uint32
	Col  uint32
}
