package layout

import "testing"

func TestParseStyle(t *testing.T) {
	cases := []struct {
		name    string
		want    Style
		wantErr bool
	}{
		{"", StyleCompact, false},
		{"compact", StyleCompact, false},
		{"expanded", StyleExpanded, false},
		{"fancy", StyleCompact, true},
	}
	for _, tc := range cases {
		got, err := ParseStyle(tc.name)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseStyle(%q): expected error", tc.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseStyle(%q): %v", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseStyle(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestPolicyTables(t *testing.T) {
	compact := For(StyleCompact)
	if compact.MemberSeparator != ", " {
		t.Errorf("compact separator = %q", compact.MemberSeparator)
	}
	if compact.SingleValueGap != "" {
		t.Errorf("compact single-value gap = %q", compact.SingleValueGap)
	}
	if compact.EOFMarker != "" {
		t.Errorf("compact EOF marker = %q", compact.EOFMarker)
	}

	expanded := For(StyleExpanded)
	if expanded.MemberSeparator != ",\n" {
		t.Errorf("expanded separator = %q", expanded.MemberSeparator)
	}
	if expanded.SingleValueGap != " " {
		t.Errorf("expanded single-value gap = %q", expanded.SingleValueGap)
	}
	if expanded.EOFMarker == "" {
		t.Error("expanded style should append an EOF marker")
	}
}

func TestForOutOfRange(t *testing.T) {
	if For(Style(99)) != For(StyleCompact) {
		t.Error("out-of-range style should fall back to compact")
	}
}

func TestStyleString(t *testing.T) {
	if StyleCompact.String() != "compact" || StyleExpanded.String() != "expanded" {
		t.Errorf("Style.String: got %q, %q", StyleCompact, StyleExpanded)
	}
}
