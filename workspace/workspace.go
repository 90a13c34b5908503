// Package workspace tracks the storyboard files under a project root and
// keeps their parsed form cached for the CLI, the LSP server, and the
// preview UI.
package workspace

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/wpsteak/Natalie/storyboard"
)

var log = commonlog.GetLogger("natalie.workspace")

// Workspace caches parsed storyboards keyed by file path.
type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*FileInfo
}

// FileInfo is the cached state of one storyboard file. A file that fails to
// parse stays in the cache with ParseErr set, so editors keep getting
// diagnostics instead of the file silently disappearing.
type FileInfo struct {
	Path       string
	Storyboard *storyboard.Storyboard
	ParseErr   error
}

func New(rootDir string) *Workspace {
	return &Workspace{
		rootDir: rootDir,
		files:   make(map[string]*FileInfo),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// Discover returns the paths of all storyboard files under root, skipping
// hidden directories.
func Discover(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == ".storyboard" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// ScanAll discovers and parses every storyboard under the root.
func (w *Workspace) ScanAll() error {
	paths, err := Discover(w.rootDir)
	if err != nil {
		return err
	}
	for _, path := range paths {
		w.ScanFile(path)
	}
	log.Infof("scanned %d storyboards under %s", len(paths), w.rootDir)
	return nil
}

// ScanFile (re-)parses the file at path from disk.
func (w *Workspace) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return w.UpdateFile(path, content)
}

// UpdateFile (re-)parses the given content for path, for example from an
// editor buffer that is not saved yet.
func (w *Workspace) UpdateFile(path string, content []byte) error {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	sb, err := storyboard.Read(name, content)
	if err != nil {
		log.Errorf("parse %s: %s", path, err.Error())
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path] = &FileInfo{Path: path, Storyboard: sb, ParseErr: err}
	return err
}

// RemoveFile drops path from the cache.
func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
}

// Get returns the cached state for path, or nil.
func (w *Workspace) Get(path string) *FileInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Storyboards returns every successfully parsed storyboard, ordered by name
// so output built from them is stable.
func (w *Workspace) Storyboards() []*storyboard.Storyboard {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var sbs []*storyboard.Storyboard
	for _, info := range w.files {
		if info.ParseErr == nil && info.Storyboard != nil {
			sbs = append(sbs, info.Storyboard)
		}
	}
	sort.Slice(sbs, func(i, j int) bool { return sbs[i].Name < sbs[j].Name })
	return sbs
}

// StoryboardByName finds a parsed storyboard by its name.
func (w *Workspace) StoryboardByName(name string) *storyboard.Storyboard {
	for _, sb := range w.Storyboards() {
		if sb.Name == name {
			return sb
		}
	}
	return nil
}

// Identifier categories used for completion.
type IdentifierKind int

const (
	IdentifierStoryboard IdentifierKind = iota
	IdentifierSegue
	IdentifierReuse
)

// Identifier is one completable name somewhere in the workspace.
type Identifier struct {
	Kind       IdentifierKind
	Name       string
	Storyboard string
}

// Identifiers returns every storyboard, segue, and reuse identifier in the
// workspace, deduplicated within their category and in stable order.
func (w *Workspace) Identifiers() []Identifier {
	var ids []Identifier
	seen := map[string]bool{}
	add := func(kind IdentifierKind, name, sbName string) {
		key := string(rune('0'+kind)) + ":" + name
		if name == "" || seen[key] {
			return
		}
		seen[key] = true
		ids = append(ids, Identifier{Kind: kind, Name: name, Storyboard: sbName})
	}

	for _, sb := range w.Storyboards() {
		add(IdentifierStoryboard, sb.Name, sb.Name)
		for _, id := range sb.Identifiers() {
			add(IdentifierStoryboard, id, sb.Name)
		}
		for _, id := range sb.SegueIdentifiers() {
			add(IdentifierSegue, id, sb.Name)
		}
		for _, id := range sb.ReuseIdentifiers() {
			add(IdentifierReuse, id, sb.Name)
		}
	}
	return ids
}
