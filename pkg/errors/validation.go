package errors

import (
	"path/filepath"
	"slices"
	"strings"
	"unicode"
)

// Strategies accepted by ValidateStrategy.
var validStrategies = []string{"branch", "none"}

// Formats accepted by ValidateFormat.
var validFormats = []string{"json", "toml"}

// ValidateStrategy checks that s names a known cycle strategy.
// The empty string is accepted and means "use the default".
func ValidateStrategy(s string) error {
	if s == "" || slices.Contains(validStrategies, s) {
		return nil
	}
	return New(ErrCodeInvalidStrategy, "unknown cycle strategy %q (want one of %s)", s, strings.Join(validStrategies, ", "))
}

// ValidateFormat checks that f names a supported graph document format.
// The empty string is accepted and means "detect from the file extension".
func ValidateFormat(f string) error {
	if f == "" || slices.Contains(validFormats, strings.ToLower(f)) {
		return nil
	}
	return New(ErrCodeInvalidFormat, "unsupported graph format %q (want one of %s)", f, strings.Join(validFormats, ", "))
}

// ValidateBranchBudget rejects negative budgets. Zero means "use the default".
func ValidateBranchBudget(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "branch budget must not be negative, got %d", n)
	}
	return nil
}

// ValidateParallelism rejects negative worker counts. Zero means sequential.
func ValidateParallelism(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "parallelism must not be negative, got %d", n)
	}
	return nil
}

// ValidatePath validates a user-supplied file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, string(filepath.Separator)) || strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory")
	}

	return nil
}
