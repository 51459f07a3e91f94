// Package entry defines the two kinds of node that make up a notes tree.
package entry

import (
	"fmt"
	"path/filepath"

	"github.com/Paintersrp/sidenotes/internal/pathutil"
)

type Kind uint8

const (
	KindInvalid Kind = iota
	KindFolder
	KindNote
)

func (k Kind) String() string {
	switch k {
	case KindFolder:
		return "folder"
	case KindNote:
		return "note"
	default:
		return "invalid"
	}
}

// Entry is an immutable node in the notes tree. The zero value represents
// "no entry" and is used for the root and for an empty selection.
type Entry struct {
	kind Kind
	name string
	path string
}

// NewFolder builds a folder entry for an absolute directory path.
func NewFolder(path string) Entry {
	normalized := pathutil.NormalizePath(path)
	return Entry{
		kind: KindFolder,
		name: filepath.Base(normalized),
		path: normalized,
	}
}

// NewNote builds a note entry for an absolute file path. The display name is
// the file name with ext stripped.
func NewNote(path, ext string) Entry {
	normalized := pathutil.NormalizePath(path)
	return Entry{
		kind: KindNote,
		name: pathutil.StripExt(filepath.Base(normalized), ext),
		path: normalized,
	}
}

func (e Entry) Kind() Kind     { return e.kind }
func (e Entry) Name() string   { return e.name }
func (e Entry) Path() string   { return e.path }
func (e Entry) IsZero() bool   { return e.kind == KindInvalid }
func (e Entry) IsFolder() bool { return e.kind == KindFolder }
func (e Entry) IsNote() bool   { return e.kind == KindNote }

// Equal reports whether both entries have the same kind and absolute path.
func (e Entry) Equal(other Entry) bool {
	return e.kind == other.kind && e.path == other.path
}

// Dir returns the folder new items should be created in when e is selected.
func (e Entry) Dir() string {
	switch e.kind {
	case KindFolder:
		return e.path
	case KindNote:
		return filepath.Dir(e.path)
	default:
		return ""
	}
}

func (e Entry) String() string {
	if e.IsZero() {
		return "<none>"
	}
	return fmt.Sprintf("%s %s", e.kind, e.path)
}
