package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseValidate,
				Kind:   KindShape,
				Table:  "TRI_TABLE",
				Path:   []string{"row", "17"},
				Detail: "row 17 has 18 entries, max 16",
			},
			contains: []string{"[validate]", "shape", "TRI_TABLE", "row.17", "18 entries"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhasePack,
				Kind:  KindInvalidInput,
			},
			contains: []string{"[pack]", "invalid_input"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseWrite,
				Kind:   KindIO,
				Detail: "write assets/cube.gltf",
				Cause:  errors.New("permission denied"),
			},
			contains: []string{"[write]", "io", "assets/cube.gltf", "caused by", "permission denied"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseRead,
		Kind:  KindIO,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseValidate,
		Kind:  KindShape,
		Table: "EDGE_TABLE",
	}

	if !err.Is(&Error{Phase: PhaseValidate, Kind: KindShape}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseScan, Kind: KindShape}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhaseValidate, Kind: KindOutOfRange}) {
		t.Error("Is should not match different kind")
	}

	wrapped := fmt.Errorf("tables: %w", err)
	if !errors.Is(wrapped, &Error{Phase: PhaseValidate, Kind: KindShape}) {
		t.Error("errors.Is should match through wrapping")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseValidate, KindOutOfRange).
		Table("EDGE_TABLE").
		Path("entry", "3").
		Value(70000).
		Cause(cause).
		Detail("value %d overflows %s", 70000, "u16").
		Build()

	if err.Phase != PhaseValidate {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseValidate)
	}
	if err.Kind != KindOutOfRange {
		t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfRange)
	}
	if err.Table != "EDGE_TABLE" {
		t.Errorf("Table = %v, want EDGE_TABLE", err.Table)
	}
	if len(err.Path) != 2 || err.Path[0] != "entry" || err.Path[1] != "3" {
		t.Errorf("Path = %v, want [entry 3]", err.Path)
	}
	if err.Value != 70000 {
		t.Errorf("Value = %v, want 70000", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "value 70000 overflows u16" {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("Validation", func(t *testing.T) {
		err := Validation("EDGE_TABLE", "expected %d entries, got %d", 256, 255)
		if err.Kind != KindShape || err.Phase != PhaseValidate {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
		if !strings.Contains(err.Error(), "got 255") {
			t.Errorf("message %q should carry the count", err.Error())
		}
	})

	t.Run("RowTooLong", func(t *testing.T) {
		err := RowTooLong("TRI_TABLE", 42, 17, 16)
		msg := err.Error()
		for _, s := range []string{"TRI_TABLE", "row 42", "17 entries"} {
			if !strings.Contains(msg, s) {
				t.Errorf("message %q should contain %q", msg, s)
			}
		}
	})

	t.Run("CountMismatch", func(t *testing.T) {
		err := CountMismatch("TRI_TABLE", "rows", 256, 10)
		if err.Value != 10 {
			t.Errorf("Value = %v, want 10", err.Value)
		}
	})

	t.Run("OutOfRange", func(t *testing.T) {
		err := OutOfRange("TRI_TABLE", []string{"row", "1"}, 300, "i8")
		if err.Kind != KindOutOfRange {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfRange)
		}
	})

	t.Run("InvalidToken", func(t *testing.T) {
		err := InvalidToken("EDGE_TABLE", 3, "foo")
		if err.Phase != PhaseScan {
			t.Errorf("Phase = %v, want %v", err.Phase, PhaseScan)
		}
	})

	t.Run("IO", func(t *testing.T) {
		tests := []struct {
			op    string
			phase Phase
		}{
			{"read", PhaseRead},
			{"write", PhaseWrite},
			{"fetch", PhaseFetch},
		}
		for _, tt := range tests {
			err := IO(tt.op, "/tmp/x", errors.New("boom"))
			if err.Phase != tt.phase {
				t.Errorf("IO(%q).Phase = %v, want %v", tt.op, err.Phase, tt.phase)
			}
		}
	})
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		validation bool
		io         bool
	}{
		{"shape", Validation("EDGE_TABLE", "bad"), true, false},
		{"token", InvalidToken("EDGE_TABLE", 1, "x"), true, false},
		{"io", IO("read", "src/surface.js", errors.New("missing")), false, true},
		{"wrapped io", fmt.Errorf("tables: %w", IO("write", "out", nil)), false, true},
		{"plain", errors.New("plain"), false, false},
		{"pack", InvalidInput(PhasePack, "empty"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidation(tt.err); got != tt.validation {
				t.Errorf("IsValidation = %v, want %v", got, tt.validation)
			}
			if got := IsIO(tt.err); got != tt.io {
				t.Errorf("IsIO = %v, want %v", got, tt.io)
			}
		})
	}
}
