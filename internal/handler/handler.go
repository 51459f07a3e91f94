package handler

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Paintersrp/sidenotes/internal/constants"
	"github.com/Paintersrp/sidenotes/internal/entry"
	"github.com/Paintersrp/sidenotes/internal/fserr"
	"github.com/Paintersrp/sidenotes/internal/pathutil"
	"github.com/Paintersrp/sidenotes/internal/tree"
)

// FileHandler performs the create, rename and trash operations on items of
// the notes tree and keeps the store in step with the result.
type FileHandler struct {
	store *tree.Store
	log   *logrus.Entry
}

func NewFileHandler(store *tree.Store, logger *logrus.Entry) *FileHandler {
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}
	return &FileHandler{
		store: store,
		log:   logger.WithField("component", "handler"),
	}
}

// TrashDir returns the absolute path of the trash folder below the root.
func (h *FileHandler) TrashDir() string {
	return filepath.Join(h.store.Root(), constants.TrashDir)
}

// TargetFolder returns the folder new items are created in: the selected
// folder, the parent of the selected note, or the root.
func (h *FileHandler) TargetFolder() string {
	if selected, ok := h.store.Selected(); ok {
		if dir := selected.Dir(); dir != "" && pathutil.Within(h.store.Root(), dir) {
			return dir
		}
	}
	return h.store.Root()
}

// CreateNote creates an empty note in the target folder. The note extension
// is appended when name does not already carry it.
func (h *FileHandler) CreateNote(name string) (entry.Entry, error) {
	name = strings.TrimSpace(name)
	if err := ValidateName("note name", name, false); err != nil {
		return entry.Entry{}, err
	}

	ext := h.store.NoteExt()
	if !pathutil.HasExt(name, ext) {
		name += ext
	}
	path := filepath.Join(h.TargetFolder(), name)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return entry.Entry{}, h.exists("note name", path)
		}
		return entry.Entry{}, fmt.Errorf("failed to create note %q: %w", name, fserr.Classify("create", path, err))
	}
	if err := file.Close(); err != nil {
		return entry.Entry{}, fmt.Errorf("failed to create note %q: %w", name, err)
	}

	created := entry.NewNote(path, ext)
	h.log.WithField("path", path).Info("created note")
	h.store.Refresh()
	h.store.SetSelected(created)
	return created, nil
}

// CreateFolder creates a folder in the target folder.
func (h *FileHandler) CreateFolder(name string) (entry.Entry, error) {
	name = strings.TrimSpace(name)
	if err := ValidateName("folder name", name, true); err != nil {
		return entry.Entry{}, err
	}

	path := filepath.Join(h.TargetFolder(), name)
	if err := os.Mkdir(path, 0o755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return entry.Entry{}, h.exists("folder name", path)
		}
		return entry.Entry{}, fmt.Errorf("failed to create folder %q: %w", name, fserr.Classify("create", path, err))
	}

	created := entry.NewFolder(path)
	h.log.WithField("path", path).Info("created folder")
	h.store.Refresh()
	h.store.SetSelected(created)
	return created, nil
}

// Rename gives e a new name in the same folder. For notes newName is the
// display name; the note extension is kept. Renaming to the current name is
// a no-op and an existing item is never overwritten. On failure e stays where
// it was and the selection is left alone.
func (h *FileHandler) Rename(e entry.Entry, newName string) (entry.Entry, error) {
	if e.IsZero() {
		return entry.Entry{}, &fserr.ValidationError{Field: "item", Message: "nothing selected"}
	}

	newName = strings.TrimSpace(newName)
	if err := ValidateName("new name", newName, e.IsFolder()); err != nil {
		return entry.Entry{}, err
	}

	base := newName
	if e.IsNote() {
		base = pathutil.StripExt(newName, h.store.NoteExt()) + filepath.Ext(e.Path())
	}
	if base == filepath.Base(e.Path()) {
		return e, nil
	}

	dest := filepath.Join(filepath.Dir(e.Path()), base)
	if taken, err := occupiedByOther(e.Path(), dest); err != nil {
		return entry.Entry{}, fmt.Errorf("failed to rename %q: %w", e.Name(), err)
	} else if taken {
		return entry.Entry{}, h.exists("new name", dest)
	}

	if err := os.Rename(e.Path(), dest); err != nil {
		return entry.Entry{}, fmt.Errorf("failed to rename %q: %w", e.Name(), fserr.Classify("rename", e.Path(), err))
	}

	renamed := entry.NewFolder(dest)
	if e.IsNote() {
		renamed = entry.NewNote(dest, h.store.NoteExt())
	}

	h.log.WithFields(logrus.Fields{"from": e.Path(), "to": dest}).Info("renamed item")
	h.store.Refresh()
	h.store.SetSelected(renamed)
	return renamed, nil
}

// Trash moves e into the trash folder, mirroring its directory below the
// root. It returns the path the item was moved to.
func (h *FileHandler) Trash(e entry.Entry) (string, error) {
	if e.IsZero() {
		return "", &fserr.ValidationError{Field: "item", Message: "nothing selected"}
	}

	root := h.store.Root()
	rel, err := pathutil.RootRelative(root, e.Path())
	if err != nil || rel == "." {
		return "", &fserr.ValidationError{Field: "item", Message: fmt.Sprintf("%s is not inside the notes root", e.Path())}
	}
	if pathutil.Within(h.TrashDir(), e.Path()) {
		return "", &fserr.ValidationError{Field: "item", Message: fmt.Sprintf("%s is already in the trash", rel)}
	}

	destDir := filepath.Join(h.TrashDir(), filepath.Dir(filepath.FromSlash(rel)))
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to trash %q: %w", e.Name(), fserr.Classify("mkdir", destDir, err))
	}

	dest, err := uniquePath(filepath.Join(destDir, filepath.Base(e.Path())), e.IsFolder())
	if err != nil {
		return "", fmt.Errorf("failed to trash %q: %w", e.Name(), err)
	}
	if err := os.Rename(e.Path(), dest); err != nil {
		return "", fmt.Errorf("failed to trash %q: %w", e.Name(), fserr.Classify("trash", e.Path(), err))
	}

	if selected, ok := h.store.Selected(); ok && pathutil.Within(e.Path(), selected.Path()) {
		h.store.ClearSelection()
	}

	h.log.WithFields(logrus.Fields{"from": e.Path(), "to": dest}).Info("trashed item")
	h.store.Refresh()
	return dest, nil
}

// Untrash moves an item out of the trash folder back to its original
// location. A suffix is added when that location is taken.
func (h *FileHandler) Untrash(path string) (entry.Entry, error) {
	path = pathutil.NormalizePath(path)
	rel, err := pathutil.RootRelative(h.TrashDir(), path)
	if err != nil || rel == "." {
		return entry.Entry{}, &fserr.ValidationError{Field: "path", Message: fmt.Sprintf("%s is not in the trash", path)}
	}

	info, err := os.Stat(path)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("failed to restore %q: %w", rel, fserr.Classify("stat", path, err))
	}

	original := filepath.Join(h.store.Root(), filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(original), 0o755); err != nil {
		return entry.Entry{}, fmt.Errorf("failed to restore %q: %w", rel, fserr.Classify("mkdir", filepath.Dir(original), err))
	}

	dest, err := uniquePath(original, info.IsDir())
	if err != nil {
		return entry.Entry{}, fmt.Errorf("failed to restore %q: %w", rel, err)
	}
	if err := os.Rename(path, dest); err != nil {
		return entry.Entry{}, fmt.Errorf("failed to restore %q: %w", rel, fserr.Classify("untrash", path, err))
	}

	restored := entry.NewFolder(dest)
	if !info.IsDir() {
		restored = entry.NewNote(dest, h.store.NoteExt())
	}

	h.log.WithFields(logrus.Fields{"from": path, "to": dest}).Info("restored item")
	h.store.Refresh()
	h.store.SetSelected(restored)
	return restored, nil
}

func (h *FileHandler) exists(field, path string) error {
	rel, err := pathutil.RootRelative(h.store.Root(), path)
	if err != nil {
		rel = path
	}
	return &fserr.ValidationError{Field: field, Message: fmt.Sprintf("%s already exists", rel)}
}

// ValidateName checks a user supplied item name before any filesystem call.
func ValidateName(field, name string, folder bool) error {
	switch {
	case strings.TrimSpace(name) == "":
		return &fserr.ValidationError{Field: field, Message: "must not be empty"}
	case strings.ContainsAny(name, `/\`):
		return &fserr.ValidationError{Field: field, Message: "must not contain path separators"}
	case name == "." || name == "..":
		return &fserr.ValidationError{Field: field, Message: fmt.Sprintf("%q is reserved", name)}
	case folder && strings.Contains(name, "."):
		return &fserr.ValidationError{Field: field, Message: "folder names must not contain '.'"}
	}
	return nil
}

// occupiedByOther reports whether dest exists and is not the same file as
// src. A case-only rename on a case-insensitive filesystem resolves dest to
// src itself.
func occupiedByOther(src, dest string) (bool, error) {
	destInfo, err := os.Lstat(dest)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fserr.Classify("stat", dest, err)
	}

	srcInfo, err := os.Lstat(src)
	if err != nil {
		return false, fserr.Classify("stat", src, err)
	}
	return !os.SameFile(srcInfo, destInfo), nil
}

func uniquePath(path string, dir bool) (string, error) {
	if _, err := os.Lstat(path); errors.Is(err, fs.ErrNotExist) {
		return path, nil
	} else if err != nil {
		return "", fserr.Classify("stat", path, err)
	}

	ext := ""
	if !dir {
		ext = filepath.Ext(path)
	}
	stem := strings.TrimSuffix(path, ext)

	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s (%d)%s", stem, i, ext)
		if _, err := os.Lstat(candidate); errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		} else if err != nil {
			return "", fserr.Classify("stat", candidate, err)
		}
	}
}
