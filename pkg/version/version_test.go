package version

import (
	"testing"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  APIVersion
	}{
		{"1.3.0", APIVersion{1, 3, 0}},
		{"1.4.2", APIVersion{1, 4, 2}},
		{"0.0.1", APIVersion{0, 0, 1}},
		{"10.23.99", APIVersion{10, 23, 99}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if v != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, v, tt.want)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		"",
		"1",
		"1.3",
		"abc",
		"1.3.0.0",
		"1.x.0",
		"-1.0.0",
		"1..0",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if err == nil {
				t.Errorf("Parse(%q) should return error", input)
			}
		})
	}
}

func TestAPIVersion_String(t *testing.T) {
	v := APIVersion{Major: 1, Minor: 3, Patch: 7}
	if v.String() != "1.3.7" {
		t.Errorf("String() = %q, want %q", v.String(), "1.3.7")
	}
}

func TestRequirement_Required(t *testing.T) {
	req := MustParseRequirement(Required)
	if req.String() != "^1.3.0" {
		t.Errorf("String() = %q, want ^1.3.0", req.String())
	}
	if req.Floor() != (APIVersion{1, 3, 0}) {
		t.Errorf("Floor() = %v, want 1.3.0", req.Floor())
	}
}

func TestRequirement_Matches(t *testing.T) {
	req := MustParseRequirement("^1.3.0")

	tests := []struct {
		version APIVersion
		want    bool
	}{
		{APIVersion{1, 3, 0}, true},
		{APIVersion{1, 3, 5}, true},
		{APIVersion{1, 4, 0}, true},
		{APIVersion{1, 99, 0}, true},
		{APIVersion{1, 2, 9}, false},
		{APIVersion{1, 0, 0}, false},
		{APIVersion{0, 3, 0}, false},
		{APIVersion{2, 0, 0}, false},
		{APIVersion{2, 3, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.version.String(), func(t *testing.T) {
			if got := req.Matches(tt.version); got != tt.want {
				t.Errorf("^1.3.0 Matches(%s) = %v, want %v", tt.version, got, tt.want)
			}
		})
	}
}

func TestRequirement_PatchFloor(t *testing.T) {
	req := MustParseRequirement("^1.3.2")

	if req.Matches(APIVersion{1, 3, 1}) {
		t.Error("1.3.1 should not satisfy ^1.3.2")
	}
	if !req.Matches(APIVersion{1, 3, 2}) {
		t.Error("1.3.2 should satisfy ^1.3.2")
	}
	if !req.Matches(APIVersion{1, 4, 0}) {
		t.Error("1.4.0 should satisfy ^1.3.2")
	}
}

func TestRequirement_ZeroMajor(t *testing.T) {
	req := MustParseRequirement("^0.2.1")

	if !req.Matches(APIVersion{0, 2, 5}) {
		t.Error("0.2.5 should satisfy ^0.2.1")
	}
	if req.Matches(APIVersion{0, 3, 0}) {
		t.Error("0.3.0 should not satisfy ^0.2.1")
	}
	if req.Matches(APIVersion{0, 2, 0}) {
		t.Error("0.2.0 should not satisfy ^0.2.1")
	}

	exact := MustParseRequirement("^0.0.3")
	if !exact.Matches(APIVersion{0, 0, 3}) {
		t.Error("0.0.3 should satisfy ^0.0.3")
	}
	if exact.Matches(APIVersion{0, 0, 4}) {
		t.Error("0.0.4 should not satisfy ^0.0.3")
	}
}

func TestParseRequirement_Invalid(t *testing.T) {
	for _, input := range []string{"", "^", "^1.3", "~1.3.0", ">=1.3.0"} {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseRequirement(input); err == nil {
				t.Errorf("ParseRequirement(%q) should return error", input)
			}
		})
	}
}

func TestRequirement_WithoutCaret(t *testing.T) {
	req, err := ParseRequirement("1.3.0")
	if err != nil {
		t.Fatalf("ParseRequirement failed: %v", err)
	}
	if !req.Matches(APIVersion{1, 5, 0}) {
		t.Error("1.5.0 should satisfy 1.3.0 (caret implied)")
	}
}
