package storyboard

// OSType identifies the platform a storyboard targets. It decides which UI
// framework generated code imports and how controller elements map to
// platform classes.
type OSType string

const (
	OSiOS  OSType = "iOS"
	OSMac  OSType = "OSX"
	OStvOS OSType = "tvOS"
)

// osForTargetRuntime maps the document's targetRuntime attribute to a
// platform. Unknown runtimes fall back to iOS, which is what the vast
// majority of storyboards target.
func osForTargetRuntime(runtime string) OSType {
	switch runtime {
	case "MacOSX.Cocoa":
		return OSMac
	case "AppleTV":
		return OStvOS
	default:
		return OSiOS
	}
}

// Framework returns the UI framework module generated source imports.
func (os OSType) Framework() string {
	if os == OSMac {
		return "Cocoa"
	}
	return "UIKit"
}

// StoryboardType returns the platform's storyboard class.
func (os OSType) StoryboardType() string {
	if os == OSMac {
		return "NSStoryboard"
	}
	return "UIStoryboard"
}

var cocoaTouchControllers = map[string]string{
	"viewController":           "UIViewController",
	"navigationController":     "UINavigationController",
	"tableViewController":      "UITableViewController",
	"tabBarController":         "UITabBarController",
	"collectionViewController": "UICollectionViewController",
	"splitViewController":      "UISplitViewController",
	"pageViewController":       "UIPageViewController",
	"avPlayerViewController":   "AVPlayerViewController",
	"glkViewController":        "GLKViewController",
}

var cocoaControllers = map[string]string{
	"viewController":      "NSViewController",
	"windowController":    "NSWindowController",
	"pagecontroller":      "NSPageController",
	"tabViewController":   "NSTabViewController",
	"splitViewController": "NSSplitViewController",
}

// ControllerType maps a storyboard element name to the platform controller
// class it instantiates. The second result is false for elements that are
// not controllers (views, placeholders, exit points).
func (os OSType) ControllerType(elementName string) (string, bool) {
	if os == OSMac {
		class, ok := cocoaControllers[elementName]
		return class, ok
	}
	class, ok := cocoaTouchControllers[elementName]
	return class, ok
}
