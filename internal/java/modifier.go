package java

import "sort"

// Modifier is a Java declaration modifier. Emission follows the canonical
// JLS ordering regardless of the order modifiers were added in.
type Modifier uint8

const (
	Public Modifier = iota
	Protected
	Private
	Abstract
	DefaultMod
	Static
	Final
	Transient
	Volatile
	Synchronized
	Native
	Strictfp
)

var modifierNames = [...]string{
	Public:       "public",
	Protected:    "protected",
	Private:      "private",
	Abstract:     "abstract",
	DefaultMod:   "default",
	Static:       "static",
	Final:        "final",
	Transient:    "transient",
	Volatile:     "volatile",
	Synchronized: "synchronized",
	Native:       "native",
	Strictfp:     "strictfp",
}

func (m Modifier) String() string {
	if int(m) < len(modifierNames) {
		return modifierNames[m]
	}
	return "modifier?"
}

// normalizeModifiers sorts into canonical order and drops duplicates.
func normalizeModifiers(mods []Modifier) []Modifier {
	out := append([]Modifier(nil), mods...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	n := 0
	for i, m := range out {
		if i == 0 || m != out[i-1] {
			out[n] = m
			n++
		}
	}
	return out[:n]
}

func hasModifier(mods []Modifier, m Modifier) bool {
	for _, x := range mods {
		if x == m {
			return true
		}
	}
	return false
}

// checkVisibility rejects more than one of public, protected, private.
func checkVisibility(what string, mods []Modifier) error {
	count := 0
	for _, m := range mods {
		if m == Public || m == Protected || m == Private {
			count++
		}
	}
	if count > 1 {
		return buildErrorf("%s declares conflicting visibility modifiers", what)
	}
	return nil
}

func emitModifiers(w *Writer, mods []Modifier) error {
	for _, m := range mods {
		if err := w.writeText(m.String() + " "); err != nil {
			return err
		}
	}
	return nil
}
