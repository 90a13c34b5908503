package storyboard

import (
	"fmt"

	"github.com/wpsteak/Natalie/xmlindex"
)

// Info is the document-level summary Peek extracts.
type Info struct {
	Name                    string
	OS                      OSType
	Version                 string
	InitialViewControllerID string
	SceneCount              int
}

// Peek reads the document attributes and scene count of storyboard XML
// through the deferred query mode, without building the semantic model.
func Peek(name string, data []byte) (Info, error) {
	doc := xmlindex.Lazy(data).ByName("document").Element()
	if doc == nil {
		return Info{}, fmt.Errorf("peek storyboard %s: no document element", name)
	}

	info := Info{
		Name:                    name,
		OS:                      osForTargetRuntime(doc.Attributes["targetRuntime"]),
		Version:                 doc.Attributes["version"],
		InitialViewControllerID: doc.Attributes["initialViewController"],
	}
	info.SceneCount = len(xmlindex.Lazy(data).ByName("document").ByName("scenes").ByName("scene").All())
	return info, nil
}
