// Package testkit holds shared checks for parser tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"guardc/internal/ast"
	"guardc/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Span is non-empty and within file content bounds
// 2) every item span is non-empty and fully contained in file.Span
// 3) class members lie inside their class, params inside their fn,
// guards inside their param
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	if f.Span.End <= f.Span.Start {
		return fmt.Errorf("file span is empty: %v", f.Span)
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, lenContent)
	}

	for _, it := range f.Items {
		item := b.Items.Get(it)
		if item == nil {
			return fmt.Errorf("nil item for id=%d", it)
		}
		if err := within(item.Span, f.Span, sf.ID, "item"); err != nil {
			return err
		}
		switch item.Kind {
		case ast.ItemFn:
			fn, _ := b.Items.Fn(it)
			if err := checkFn(b, fn, item.Span, sf.ID); err != nil {
				return err
			}
		case ast.ItemClass:
			cls, _ := b.Items.Class(it)
			if cls == nil {
				return fmt.Errorf("class payload missing for id=%d", it)
			}
			for _, m := range cls.Members {
				fn, ok := b.Items.Fn(m)
				if !ok {
					return fmt.Errorf("class member %d is not a fn", m)
				}
				if err := within(fn.Span, cls.Span, sf.ID, "member"); err != nil {
					return err
				}
				if err := checkFn(b, fn, fn.Span, sf.ID); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func checkFn(b *ast.Builder, fn *ast.FnItem, outer source.Span, file source.FileID) error {
	if fn == nil {
		return fmt.Errorf("fn payload missing")
	}
	if err := within(fn.NameSpan, outer, file, "fn name"); err != nil {
		return err
	}
	for _, pid := range fn.Params {
		param := b.Items.FnParam(pid)
		if param == nil {
			return fmt.Errorf("nil param id=%d", pid)
		}
		if err := within(param.Span, outer, file, "param"); err != nil {
			return err
		}
		if !param.Guard.IsValid() {
			continue
		}
		guard := b.Exprs.Get(param.Guard)
		if guard == nil {
			return fmt.Errorf("nil guard expr id=%d", param.Guard)
		}
		if err := within(guard.Span, param.Span, file, "guard"); err != nil {
			return err
		}
	}
	return nil
}

func within(sp, outer source.Span, file source.FileID, what string) error {
	if sp.End <= sp.Start {
		return fmt.Errorf("empty %s span: %v", what, sp)
	}
	if sp.File != file {
		return fmt.Errorf("%s span file mismatch: got=%d want=%d", what, sp.File, file)
	}
	if sp.Start < outer.Start || sp.End > outer.End {
		return fmt.Errorf("%s span %v is outside %v", what, sp, outer)
	}
	return nil
}
