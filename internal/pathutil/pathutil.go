package pathutil

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/Paintersrp/sidenotes/internal/constants"
)

// ErrOutsideRoot is returned when a path does not live beneath the notes root.
var ErrOutsideRoot = errors.New("path is outside the notes root")

// NormalizePath converts Windows-style separators to the current platform's separator
// and cleans the resulting path.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}

	// Replace Windows separators and collapse redundant separators/segments.
	replaced := strings.ReplaceAll(p, "\\", "/")
	return filepath.Clean(filepath.FromSlash(replaced))
}

// RootRelative returns the path to target relative to the notes root.
// The returned path always uses forward slashes. A target equal to the root
// yields ".".
func RootRelative(root, target string) (string, error) {
	base := NormalizePath(root)
	cleanedTarget := NormalizePath(target)

	rel, err := filepath.Rel(base, cleanedTarget)
	if err != nil {
		return "", err
	}

	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", ErrOutsideRoot
	}

	return rel, nil
}

// Segments splits target into its path components below root. The root
// itself has no segments.
func Segments(root, target string) ([]string, error) {
	rel, err := RootRelative(root, target)
	if err != nil {
		return nil, err
	}

	if rel == "." || rel == "" {
		return nil, nil
	}

	return strings.Split(rel, "/"), nil
}

// Prefixes returns the absolute path of every ancestor of target below root,
// followed by target itself, shallowest first.
func Prefixes(root, target string) ([]string, error) {
	segments, err := Segments(root, target)
	if err != nil {
		return nil, err
	}

	current := NormalizePath(root)
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		current = filepath.Join(current, segment)
		out = append(out, current)
	}
	return out, nil
}

// Within reports whether target is root or lives beneath it.
func Within(root, target string) bool {
	_, err := RootRelative(root, target)
	return err == nil
}

// IsHidden reports whether a base name is treated as hidden.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, constants.HiddenPrefix)
}

// HasExt reports whether name carries ext, compared case-insensitively.
func HasExt(name, ext string) bool {
	return ext != "" && strings.EqualFold(filepath.Ext(name), ext)
}

// StripExt removes the trailing extension from a file name when it matches ext.
func StripExt(name, ext string) string {
	if !HasExt(name, ext) {
		return name
	}
	return name[:len(name)-len(filepath.Ext(name))]
}
