package java

import "sort"

type importKind uint8

const (
	// importForeign bindings produce import lines.
	importForeign importKind = iota
	// importJavaLang types are implicitly imported; listed only when the
	// configuration asks for explicit implicit-package imports.
	importJavaLang
	// importSamePackage types never need an import line.
	importSamePackage
)

type binding struct {
	canonical string
	kind      importKind
}

// ImportTable maps simple names to the canonical top-level types they are
// bound to. It is mutable during the collect pass, may be supplemented
// with explicit caller imports in between, and is sealed (read-only) for
// the render pass.
type ImportTable struct {
	bindings map[string]binding
	statics  map[string]struct{}
	sealed   bool
}

// NewImportTable returns an empty table.
func NewImportTable() *ImportTable {
	return &ImportTable{
		bindings: make(map[string]binding),
		statics:  make(map[string]struct{}),
	}
}

// claim binds simple to canonical unless another canonical type already
// holds the name. It reports whether the reference may render unqualified.
func (t *ImportTable) claim(simple, canonical string, kind importKind) bool {
	if t.sealed {
		return t.resolves(simple, canonical)
	}
	b, ok := t.bindings[simple]
	if !ok {
		t.bindings[simple] = binding{canonical: canonical, kind: kind}
		return true
	}
	return b.canonical == canonical
}

// resolves reports whether simple is bound to canonical.
func (t *ImportTable) resolves(simple, canonical string) bool {
	b, ok := t.bindings[simple]
	return ok && b.canonical == canonical
}

// Add records an explicit import request, overriding any suggested binding
// for the same simple name. It must run before the table is sealed.
func (t *ImportTable) Add(canonical string) error {
	if t.sealed {
		return buildErrorf("import table is sealed; cannot add %q", canonical)
	}
	simple := simpleOf(canonical)
	if simple == "" {
		return buildErrorf("cannot derive a simple name from import %q", canonical)
	}
	t.bindings[simple] = binding{canonical: canonical, kind: importForeign}
	return nil
}

// AddStatic records a static import line such as
// "java.util.Collections.emptyList" or "java.lang.Math.*".
func (t *ImportTable) AddStatic(canonical string) error {
	if t.sealed {
		return buildErrorf("import table is sealed; cannot add static %q", canonical)
	}
	if canonical == "" {
		return buildErrorf("empty static import")
	}
	t.statics[canonical] = struct{}{}
	return nil
}

// seal freezes the table for the render pass.
func (t *ImportTable) seal() {
	t.sealed = true
}

// ImportLines returns the sorted canonical names that need import lines.
// Same-package bindings are never listed; java.lang bindings only when
// showImplicit is set.
func (t *ImportTable) ImportLines(showImplicit bool) []string {
	var lines []string
	for _, b := range t.bindings {
		switch b.kind {
		case importForeign:
			lines = append(lines, b.canonical)
		case importJavaLang:
			if showImplicit {
				lines = append(lines, b.canonical)
			}
		}
	}
	sort.Strings(lines)
	return lines
}

// StaticLines returns the sorted static imports.
func (t *ImportTable) StaticLines() []string {
	lines := make([]string, 0, len(t.statics))
	for s := range t.statics {
		lines = append(lines, s)
	}
	sort.Strings(lines)
	return lines
}

func simpleOf(canonical string) string {
	for i := len(canonical) - 1; i >= 0; i-- {
		if canonical[i] == '.' {
			return canonical[i+1:]
		}
	}
	return canonical
}
