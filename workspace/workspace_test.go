package workspace

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const minimalStoryboard = `<?xml version="1.0" encoding="UTF-8"?>
<document type="com.apple.InterfaceBuilder3.CocoaTouch.Storyboard.XIB" version="3.0" targetRuntime="iOS.CocoaTouch" initialViewController="vc-1">
    <scenes>
        <scene sceneID="s1">
            <objects>
                <viewController storyboardIdentifier="Home" id="vc-1" customClass="HomeViewController" sceneMemberID="viewController">
                    <connections>
                        <segue destination="vc-1" kind="show" identifier="ShowHome" id="sg1"/>
                    </connections>
                </viewController>
            </objects>
        </scene>
    </scenes>
</document>`

func writeStoryboard(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeStoryboard(t, dir, "Main.storyboard", minimalStoryboard)
	writeStoryboard(t, dir, filepath.Join("Sub", "Detail.storyboard"), minimalStoryboard)
	writeStoryboard(t, dir, filepath.Join(".hidden", "Skipped.storyboard"), minimalStoryboard)
	writeStoryboard(t, dir, "notes.txt", "not a storyboard")

	paths, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("got %d paths, want 2: %v", len(paths), paths)
	}
	if filepath.Base(paths[0]) != "Main.storyboard" || filepath.Base(paths[1]) != "Detail.storyboard" {
		t.Errorf("unexpected order: %v", paths)
	}
}

func TestScanAll(t *testing.T) {
	dir := t.TempDir()
	writeStoryboard(t, dir, "Beta.storyboard", minimalStoryboard)
	writeStoryboard(t, dir, "Alpha.storyboard", minimalStoryboard)

	w := New(dir)
	if err := w.ScanAll(); err != nil {
		t.Fatalf("ScanAll: %v", err)
	}

	sbs := w.Storyboards()
	if len(sbs) != 2 {
		t.Fatalf("got %d storyboards, want 2", len(sbs))
	}
	if sbs[0].Name != "Alpha" || sbs[1].Name != "Beta" {
		t.Errorf("not sorted by name: %s, %s", sbs[0].Name, sbs[1].Name)
	}
	if w.StoryboardByName("Beta") == nil {
		t.Errorf("StoryboardByName(Beta) = nil")
	}
}

func TestUpdateFileKeepsParseError(t *testing.T) {
	w := New(t.TempDir())

	path := filepath.Join(w.RootDir(), "Broken.storyboard")
	if err := w.UpdateFile(path, []byte("<document><scenes>")); err == nil {
		t.Fatalf("UpdateFile accepted malformed XML")
	}

	info := w.Get(path)
	if info == nil || info.ParseErr == nil {
		t.Fatalf("broken file not cached with its error")
	}
	if len(w.Storyboards()) != 0 {
		t.Errorf("broken file leaked into Storyboards()")
	}

	// A later valid update clears the error.
	if err := w.UpdateFile(path, []byte(minimalStoryboard)); err != nil {
		t.Fatalf("UpdateFile: %v", err)
	}
	if info := w.Get(path); info.ParseErr != nil {
		t.Errorf("error not cleared: %v", info.ParseErr)
	}
}

func TestIdentifiers(t *testing.T) {
	w := New(t.TempDir())
	path := filepath.Join(w.RootDir(), "Main.storyboard")
	if err := w.UpdateFile(path, []byte(minimalStoryboard)); err != nil {
		t.Fatalf("UpdateFile: %v", err)
	}

	byKind := map[IdentifierKind][]string{}
	for _, id := range w.Identifiers() {
		byKind[id.Kind] = append(byKind[id.Kind], id.Name)
	}

	if got := byKind[IdentifierStoryboard]; len(got) != 2 {
		// The storyboard's own name plus the Home identifier.
		t.Errorf("storyboard identifiers = %v", got)
	}
	if got := byKind[IdentifierSegue]; len(got) != 1 || got[0] != "ShowHome" {
		t.Errorf("segue identifiers = %v", got)
	}
}

func TestWatcherScan(t *testing.T) {
	dir := t.TempDir()
	path := writeStoryboard(t, dir, "Main.storyboard", minimalStoryboard)

	w := New(dir)
	fw := NewFileWatcher(w)

	fw.scan()
	if w.Get(path) == nil {
		t.Fatalf("watcher did not pick up the file")
	}

	// Touch with a newer mod time and verify a rescan happens.
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	fw.scan()
	if w.Get(path) == nil {
		t.Fatalf("file lost after rescan")
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	fw.scan()
	if w.Get(path) != nil {
		t.Errorf("deleted file still cached")
	}
}
