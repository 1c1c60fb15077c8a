package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10 // 64 KiB - ограничение для корпуса и входов фаззера

var inlineSeeds = []string{
	"",
	"fn f(x) {}\n",
	"fn f(x when x > 0) {}\nfn f(x) {}\n",
	"fn f(x when x > 0 && x < 10 || x == -1) {}\nfn f(x) {}\n",
	"fn f(b when b == true) {}\nfn f(b when !b) {}\n",
	"class C { fn m(x when x >= 1) {} fn m(x); }\n",
	"fn f(x when x > 99999999999999999999) {}\n",
	"fn f(x when (x > 0) {}\n",
	"fn f(x when x >",
	"class C { fn m(",
	"/* unterminated",
	"fn f(x when g(x, y) > -(-3)) {}\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.gd файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".gd" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clamp(src))
		return nil
	})
}

func clamp(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
