// Package storyboard interprets Interface Builder storyboard documents. It
// consumes the xmlindex query surface and exposes the scenes, controllers,
// segues, and reuse identifiers that code generation cares about.
package storyboard

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wpsteak/Natalie/xmlindex"
)

// Storyboard is one parsed storyboard document.
type Storyboard struct {
	Name                    string
	OS                      OSType
	Version                 string
	InitialViewControllerID string
	Scenes                  []*Scene

	// Doc is the index over the full document tree, for callers that need
	// to go below the semantic model.
	Doc xmlindex.Index
}

// Scene is one scene of a storyboard. Scenes without a recognizable
// controller (for example, ones holding only placeholders) have a nil
// ViewController.
type Scene struct {
	ID             string
	ViewController *ViewController
}

// ViewController is a controller object inside a scene.
type ViewController struct {
	Kind                 string // element name, e.g. "navigationController"
	ID                   string
	StoryboardIdentifier string
	CustomClass          string
	CustomModule         string
	Segues               []*Segue
	Reusables            []*Reusable

	element *xmlindex.Element
}

// Segue is a transition wired from somewhere inside a controller's scene.
type Segue struct {
	ID          string
	Kind        string
	Identifier  string
	Destination string
}

// Reusable is a cell or supplementary view carrying a reuse identifier.
type Reusable struct {
	Kind            string
	ID              string
	ReuseIdentifier string
}

// ClassName returns the Swift class the controller instantiates as: the
// custom class when one is set, the platform class for its kind otherwise.
func (vc *ViewController) ClassName(os OSType) string {
	if vc.CustomClass != "" {
		return vc.CustomClass
	}
	if class, ok := os.ControllerType(vc.Kind); ok {
		return class
	}
	return ""
}

// Element returns the controller's backing tree node.
func (vc *ViewController) Element() *xmlindex.Element {
	return vc.element
}

// ReadFile parses the storyboard at path. The storyboard name is the file
// name without its extension, matching how UIStoryboard(name:) refers to it.
func ReadFile(path string) (*Storyboard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read storyboard: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Read(name, data)
}

// Read parses storyboard XML and builds the semantic model on top of the
// full document tree.
func Read(name string, data []byte) (*Storyboard, error) {
	idx, err := xmlindex.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse storyboard %s: %w", name, err)
	}

	doc := idx.ByName("document")
	root := doc.Element()
	if root == nil {
		return nil, fmt.Errorf("parse storyboard %s: no document element: %w", name, doc.Err())
	}

	sb := &Storyboard{
		Name:                    name,
		OS:                      osForTargetRuntime(root.Attributes["targetRuntime"]),
		Version:                 root.Attributes["version"],
		InitialViewControllerID: root.Attributes["initialViewController"],
		Doc:                     idx,
	}

	scenes := doc.ByName("scenes")
	if !scenes.Ok() {
		// A storyboard with no scenes element is unusual but well-formed.
		return sb, nil
	}
	for _, scene := range scenes.ByName("scene").All() {
		sb.Scenes = append(sb.Scenes, readScene(scene, sb.OS))
	}
	return sb, nil
}

func readScene(idx xmlindex.Index, os OSType) *Scene {
	scene := &Scene{ID: idx.Element().Attributes["sceneID"]}

	objects := idx.ByName("objects")
	for _, object := range objects.Children() {
		element := object.Element()
		if element == nil {
			continue
		}
		if _, ok := os.ControllerType(element.Name); !ok {
			continue
		}
		scene.ViewController = readViewController(element)
		break
	}
	return scene
}

func readViewController(element *xmlindex.Element) *ViewController {
	vc := &ViewController{
		Kind:                 element.Name,
		ID:                   element.Attributes["id"],
		StoryboardIdentifier: element.Attributes["storyboardIdentifier"],
		CustomClass:          element.Attributes["customClass"],
		CustomModule:         element.Attributes["customModule"],
		element:              element,
	}

	walk(element, func(e *xmlindex.Element) {
		switch {
		case e.Name == "segue":
			vc.Segues = append(vc.Segues, &Segue{
				ID:          e.Attributes["id"],
				Kind:        e.Attributes["kind"],
				Identifier:  e.Attributes["identifier"],
				Destination: e.Attributes["destination"],
			})
		case e.Attributes["reuseIdentifier"] != "":
			vc.Reusables = append(vc.Reusables, &Reusable{
				Kind:            e.Name,
				ID:              e.Attributes["id"],
				ReuseIdentifier: e.Attributes["reuseIdentifier"],
			})
		}
	})
	return vc
}

// walk visits every element of the subtree in document order, root included.
func walk(e *xmlindex.Element, visit func(*xmlindex.Element)) {
	visit(e)
	for _, child := range e.Children {
		walk(child, visit)
	}
}

// InitialViewController returns the controller the document's
// initialViewController attribute points at, or nil.
func (sb *Storyboard) InitialViewController() *ViewController {
	if sb.InitialViewControllerID == "" {
		return nil
	}
	return sb.ViewControllerByID(sb.InitialViewControllerID)
}

// ViewControllerByID finds a controller by its object id.
func (sb *Storyboard) ViewControllerByID(id string) *ViewController {
	for _, scene := range sb.Scenes {
		if scene.ViewController != nil && scene.ViewController.ID == id {
			return scene.ViewController
		}
	}
	return nil
}

// ViewControllers returns every controller in scene order.
func (sb *Storyboard) ViewControllers() []*ViewController {
	var vcs []*ViewController
	for _, scene := range sb.Scenes {
		if scene.ViewController != nil {
			vcs = append(vcs, scene.ViewController)
		}
	}
	return vcs
}

// Identifiers returns the storyboard identifiers of all controllers that
// declare one, in scene order.
func (sb *Storyboard) Identifiers() []string {
	var ids []string
	for _, vc := range sb.ViewControllers() {
		if vc.StoryboardIdentifier != "" {
			ids = append(ids, vc.StoryboardIdentifier)
		}
	}
	return ids
}

// SegueIdentifiers returns the identifiers of all named segues, in scene
// order.
func (sb *Storyboard) SegueIdentifiers() []string {
	var ids []string
	for _, vc := range sb.ViewControllers() {
		for _, segue := range vc.Segues {
			if segue.Identifier != "" {
				ids = append(ids, segue.Identifier)
			}
		}
	}
	return ids
}

// ReuseIdentifiers returns every reuse identifier in the storyboard, in
// scene order.
func (sb *Storyboard) ReuseIdentifiers() []string {
	var ids []string
	for _, vc := range sb.ViewControllers() {
		for _, r := range vc.Reusables {
			ids = append(ids, r.ReuseIdentifier)
		}
	}
	return ids
}
