package version

import (
	"errors"
	"testing"
)

func TestParseFragments(t *testing.T) {
	tests := []struct {
		in   string
		want Fragment
	}{
		{"1.4", Fragment{Major: 1, Minor: 4}},
		{"1.4.2", Fragment{Major: 1, Minor: 4, Patch: 2, HasPatch: true}},
		{"0.0", Fragment{}},
		{"12.0.7", Fragment{Major: 12, Patch: 7, HasPatch: true}},
		{" 1.4 ", Fragment{Major: 1, Minor: 4}},
		{"1.4.2_debug", Fragment{Major: 1, Minor: 4, Patch: 2, HasPatch: true}},
		{"2.0.0_release", Fragment{Major: 2, Patch: 0, HasPatch: true}},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q) error = %v, want nil", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "1", "1.", "1.x", "a.b", "1.2.3.4", "1.-2", "v1.2"} {
		if _, err := Parse(in); !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidFormat", in, err)
		}
	}
}

func TestParseVersionRequiresPatch(t *testing.T) {
	if _, err := ParseVersion("1.4"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("ParseVersion(\"1.4\") error = %v, want ErrInvalidFormat", err)
	}

	v, err := ParseVersion("1.4.2")
	if err != nil {
		t.Fatalf("ParseVersion(\"1.4.2\") error = %v", err)
	}
	if v != (Version{Major: 1, Minor: 4, Patch: 2}) {
		t.Errorf("ParseVersion(\"1.4.2\") = %+v", v)
	}
}

func TestStringParseRoundTrip(t *testing.T) {
	versions := []Version{
		{0, 0, 0},
		{1, 4, 2},
		{10, 20, 30},
		{2, 0, 15},
	}
	for _, v := range versions {
		got, err := ParseVersion(v.String())
		if err != nil {
			t.Errorf("ParseVersion(%q) error = %v", v.String(), err)
			continue
		}
		if got != v {
			t.Errorf("round trip %v -> %q -> %v", v, v.String(), got)
		}
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b Version
		want int
	}{
		{Version{1, 2, 3}, Version{1, 2, 3}, 0},
		{Version{1, 2, 3}, Version{1, 2, 4}, -1},
		{Version{1, 3, 0}, Version{1, 2, 9}, 1},
		{Version{2, 0, 0}, Version{1, 9, 9}, 1},
		{Version{0, 9, 0}, Version{1, 0, 0}, -1},
	}
	for _, tt := range tests {
		if got := Compare(tt.a, tt.b); got != tt.want {
			t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestFolderAndTagNaming(t *testing.T) {
	debug := AppVersion{Version: Version{1, 4, 3}, Build: Debug}
	release := AppVersion{Version: Version{1, 4, 3}, Build: Release}

	if got := debug.Folder(); got != "1.4.3_debug" {
		t.Errorf("debug Folder() = %q, want 1.4.3_debug", got)
	}
	if got := release.Folder(); got != "1.4.3_release" {
		t.Errorf("release Folder() = %q, want 1.4.3_release", got)
	}
	if got := debug.Tag(); got != "v1.4.3-dev" {
		t.Errorf("debug Tag() = %q, want v1.4.3-dev", got)
	}
	if got := release.Tag(); got != "v1.4.3" {
		t.Errorf("release Tag() = %q, want v1.4.3", got)
	}
}

func TestParseFolder(t *testing.T) {
	av, err := ParseFolder("1.2.0_debug")
	if err != nil {
		t.Fatalf("ParseFolder error = %v", err)
	}
	if av.Build != Debug || av.Version != (Version{1, 2, 0}) {
		t.Errorf("ParseFolder(\"1.2.0_debug\") = %+v", av)
	}

	av, err = ParseFolder("3.1.7_release")
	if err != nil {
		t.Fatalf("ParseFolder error = %v", err)
	}
	if av.Build != Release || av.Version != (Version{3, 1, 7}) {
		t.Errorf("ParseFolder(\"3.1.7_release\") = %+v", av)
	}

	for _, name := range []string{"1.2.0", "1.2_debug", "notes", ".DS_Store"} {
		if _, err := ParseFolder(name); err == nil {
			t.Errorf("ParseFolder(%q) should fail", name)
		}
	}
}

func TestParseBuild(t *testing.T) {
	if b, err := ParseBuild("Debug"); err != nil || b != Debug {
		t.Errorf("ParseBuild(Debug) = %v, %v", b, err)
	}
	if b, err := ParseBuild("release"); err != nil || b != Release {
		t.Errorf("ParseBuild(release) = %v, %v", b, err)
	}
	if _, err := ParseBuild("nightly"); err == nil {
		t.Error("ParseBuild(nightly) should fail")
	}
}
