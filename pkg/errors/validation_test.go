package errors

import (
	"strings"
	"testing"
)

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		height  int
		wantErr bool
	}{
		{"standard", 10, 20, false},
		{"single cell", 1, 1, false},
		{"wide", 40, 4, false},

		{"zero width", 0, 20, true},
		{"zero height", 10, 0, true},
		{"negative width", -1, 20, true},
		{"negative height", 10, -5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimensions(tt.width, tt.height)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimensions(%d, %d) error = %v, wantErr %v", tt.width, tt.height, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidConfig) {
				t.Errorf("expected INVALID_CONFIG, got %v", GetCode(err))
			}
		})
	}
}

func TestValidateShape(t *testing.T) {
	tests := []struct {
		name    string
		shape   [][]bool
		wantErr bool
	}{
		{"square 2x2", [][]bool{{true, true}, {true, true}}, false},
		{"single", [][]bool{{true}}, false},
		{"sparse 3x3", [][]bool{{false, true, false}, {false, false, false}, {false, false, false}}, false},

		{"empty", nil, true},
		{"not square", [][]bool{{true, true, true}, {true, true, true}}, true},
		{"ragged", [][]bool{{true, true}, {true}}, true},
		{"all empty", [][]bool{{false, false}, {false, false}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateShape("X", tt.shape)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateShape() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidCatalog) {
				t.Errorf("expected INVALID_CATALOG, got %v", GetCode(err))
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"#00f0f0", false},
		{"#FFF", false},
		{"#a000F0", false},

		{"", true},
		{"00f0f0", true},
		{"#12345", true},
		{"#gggggg", true},
		{"red", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateColor("X", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSaveName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "checkpoint", false},
		{"with spaces", "before the tetris", false},
		{"unicode", "セーブ", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", strings.Repeat("a", 65), true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"newline", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSaveName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSaveName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSaveID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"uuid", "3f2504e0-4f89-41d3-9a0c-0305e82c3301", false},

		{"empty", "", true},
		{"uppercase", "3F2504E0-4F89-41D3-9A0C-0305E82C3301", true},
		{"traversal", "../../etc/passwd", true},
		{"short", "3f2504e0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSaveID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSaveID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "scripts/opening.txt", false},
		{"absolute", "/tmp/game.toml", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 501), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
