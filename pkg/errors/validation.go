package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateDimensions checks that a board size is usable.
// Both dimensions must be positive; anything else breaks the board invariants.
func ValidateDimensions(width, height int) error {
	if width <= 0 {
		return New(ErrCodeInvalidConfig, "board width must be positive, got %d", width)
	}
	if height <= 0 {
		return New(ErrCodeInvalidConfig, "board height must be positive, got %d", height)
	}
	return nil
}

// ValidateShape validates a piece bitmap: square, non-empty, and with at least
// one occupied cell.
func ValidateShape(name string, shape [][]bool) error {
	n := len(shape)
	if n == 0 {
		return New(ErrCodeInvalidCatalog, "piece %q: shape is empty", name)
	}
	filled := false
	for i, row := range shape {
		if len(row) != n {
			return New(ErrCodeInvalidCatalog, "piece %q: row %d has %d cells, want %d (shape must be square)", name, i, len(row), n)
		}
		for _, c := range row {
			filled = filled || c
		}
	}
	if !filled {
		return New(ErrCodeInvalidCatalog, "piece %q: shape has no occupied cells", name)
	}
	return nil
}

// hexColorRegex matches #rgb and #rrggbb color literals.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor validates a display color literal.
// Colors are passed through to the renderer untouched, so only the hex
// forms every renderer understands are accepted.
func ValidateColor(name, color string) error {
	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidCatalog, "piece %q: invalid color %q (want #rgb or #rrggbb)", name, color)
	}
	return nil
}

// ValidateSaveName validates a human-readable save slot name.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - Maximum length of 64 characters
//   - No control characters
//   - No path separators
func ValidateSaveName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "save name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "save name too long (max 64 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "save name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidInput, "save name cannot contain path separators")
	}

	return nil
}

// saveIDRegex matches the UUID form used for save slot identifiers.
var saveIDRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// ValidateSaveID validates a save slot identifier. IDs become file names
// and database keys, so anything but a canonical lowercase UUID is rejected.
func ValidateSaveID(id string) error {
	if !saveIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid save id %q", id)
	}
	return nil
}

// ValidatePath validates a user-supplied file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
