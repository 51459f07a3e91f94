package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/sidenotes/internal/constants"
	"github.com/Paintersrp/sidenotes/internal/entry"
	"github.com/Paintersrp/sidenotes/internal/fserr"
	"github.com/Paintersrp/sidenotes/internal/pathutil"
	"github.com/Paintersrp/sidenotes/internal/state"
)

// ResolveNotePath turns a command argument into an absolute path inside the
// notes root. Relative paths are taken from the root.
func ResolveNotePath(cmd *cobra.Command, s *state.State, arg string) (string, error) {
	if s == nil || s.Store == nil {
		return "", fmt.Errorf("state is not initialized")
	}
	root := s.Root
	if arg == "" {
		return "", fmt.Errorf("a path argument is required")
	}

	var resolved string
	if filepath.IsAbs(arg) {
		resolved = pathutil.NormalizePath(arg)
	} else {
		resolved = resolveRelative(cmd, root, arg)
	}

	if !pathutil.Within(root, resolved) {
		return "", fmt.Errorf("path %q is outside the notes root %q", resolved, root)
	}

	return resolved, nil
}

func resolveRelative(cmd *cobra.Command, root, arg string) string {
	relPath := filepath.Clean(filepath.FromSlash(arg))
	if relPath == "." {
		relPath = ""
	}

	targetDir := inferTargetDir(cmd)
	if targetDir == "" {
		if relPath == "" {
			return root
		}
		return filepath.Join(root, relPath)
	}

	firstSegment := relPath
	if idx := strings.Index(relPath, string(filepath.Separator)); idx != -1 {
		firstSegment = relPath[:idx]
	}

	if firstSegment == targetDir {
		return filepath.Join(root, relPath)
	}

	return filepath.Join(root, targetDir, relPath)
}

func inferTargetDir(cmd *cobra.Command) string {
	if cmd == nil {
		return ""
	}

	switch cmd.Name() {
	case "untrash":
		return constants.TrashDir
	default:
		return ""
	}
}

// ResolveEntry resolves arg like ResolveNotePath and builds the entry for the
// item on disk. A note path may omit the note extension.
func ResolveEntry(cmd *cobra.Command, s *state.State, arg string) (entry.Entry, error) {
	path, err := ResolveNotePath(cmd, s, arg)
	if err != nil {
		return entry.Entry{}, err
	}
	if path == s.Root {
		return entry.Entry{}, &fserr.ValidationError{Field: "path", Message: "the notes root itself cannot be used here"}
	}

	ext := s.Store.NoteExt()
	info, err := os.Stat(path)
	if err != nil && !pathutil.HasExt(path, ext) {
		if withExt, statErr := os.Stat(path + ext); statErr == nil {
			path, info, err = path+ext, withExt, nil
		}
	}
	if err != nil {
		return entry.Entry{}, fserr.Classify("stat", path, err)
	}

	if info.IsDir() {
		return entry.NewFolder(path), nil
	}
	if !pathutil.HasExt(path, ext) {
		return entry.Entry{}, &fserr.ValidationError{Field: "path", Message: fmt.Sprintf("%s is not a %s note", filepath.Base(path), ext)}
	}
	return entry.NewNote(path, ext), nil
}
