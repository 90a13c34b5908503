package storyboard

import "testing"

const demoStoryboard = `<?xml version="1.0" encoding="UTF-8"?>
<document type="com.apple.InterfaceBuilder3.CocoaTouch.Storyboard.XIB" version="3.0" toolsVersion="9531" targetRuntime="iOS.CocoaTouch" initialViewController="nav-01">
    <scenes>
        <scene sceneID="scene-nav">
            <objects>
                <navigationController id="nav-01" sceneMemberID="viewController">
                    <connections>
                        <segue destination="main-01" kind="relationship" relationship="rootViewController" id="rel-01"/>
                    </connections>
                </navigationController>
                <placeholder placeholderIdentifier="IBFirstResponder" id="fr-01" sceneMemberID="firstResponder"/>
            </objects>
        </scene>
        <scene sceneID="scene-main">
            <objects>
                <viewController storyboardIdentifier="Main" id="main-01" customClass="MainViewController" customModule="Demo" sceneMemberID="viewController">
                    <view key="view" id="view-01">
                        <subviews>
                            <tableView id="table-01">
                                <prototypes>
                                    <tableViewCell reuseIdentifier="PersonCell" id="cell-01"/>
                                    <tableViewCell reuseIdentifier="GroupCell" id="cell-02"/>
                                </prototypes>
                            </tableView>
                        </subviews>
                    </view>
                    <connections>
                        <segue destination="detail-01" kind="show" identifier="ShowDetail" id="seg-01"/>
                        <segue destination="settings-01" kind="presentation" id="seg-02"/>
                    </connections>
                </viewController>
            </objects>
        </scene>
        <scene sceneID="scene-detail">
            <objects>
                <viewController id="detail-01" sceneMemberID="viewController"/>
            </objects>
        </scene>
    </scenes>
</document>`

func TestRead(t *testing.T) {
	sb, err := Read("Demo", []byte(demoStoryboard))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if sb.OS != OSiOS {
		t.Errorf("OS = %q, want %q", sb.OS, OSiOS)
	}
	if sb.InitialViewControllerID != "nav-01" {
		t.Errorf("initial controller id = %q, want %q", sb.InitialViewControllerID, "nav-01")
	}
	if len(sb.Scenes) != 3 {
		t.Fatalf("got %d scenes, want 3", len(sb.Scenes))
	}

	initial := sb.InitialViewController()
	if initial == nil {
		t.Fatalf("no initial view controller")
	}
	if got := initial.ClassName(sb.OS); got != "UINavigationController" {
		t.Errorf("initial class = %q, want UINavigationController", got)
	}

	main := sb.ViewControllerByID("main-01")
	if main == nil {
		t.Fatalf("main-01 not found")
	}
	if got := main.ClassName(sb.OS); got != "MainViewController" {
		t.Errorf("custom class = %q, want MainViewController", got)
	}
	if main.CustomModule != "Demo" {
		t.Errorf("custom module = %q, want Demo", main.CustomModule)
	}
}

func TestIdentifiers(t *testing.T) {
	sb, err := Read("Demo", []byte(demoStoryboard))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if got := sb.Identifiers(); len(got) != 1 || got[0] != "Main" {
		t.Errorf("Identifiers() = %v, want [Main]", got)
	}
	// Only named segues count; rel-01 and seg-02 have no identifier.
	if got := sb.SegueIdentifiers(); len(got) != 1 || got[0] != "ShowDetail" {
		t.Errorf("SegueIdentifiers() = %v, want [ShowDetail]", got)
	}
	if got := sb.ReuseIdentifiers(); len(got) != 2 || got[0] != "PersonCell" || got[1] != "GroupCell" {
		t.Errorf("ReuseIdentifiers() = %v, want [PersonCell GroupCell]", got)
	}
}

func TestReadRejectsNonStoryboard(t *testing.T) {
	if _, err := Read("x", []byte(`<html><body/></html>`)); err == nil {
		t.Errorf("expected error for a non-storyboard document")
	}
	if _, err := Read("x", []byte(`<document><scenes>`)); err == nil {
		t.Errorf("expected error for malformed XML")
	}
}

func TestPeek(t *testing.T) {
	info, err := Peek("Demo", []byte(demoStoryboard))
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	if info.OS != OSiOS || info.InitialViewControllerID != "nav-01" {
		t.Errorf("info = %+v", info)
	}
	if info.SceneCount != 3 {
		t.Errorf("SceneCount = %d, want 3", info.SceneCount)
	}

	full, err := Read("Demo", []byte(demoStoryboard))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if info.InitialViewControllerID != full.InitialViewControllerID || info.Version != full.Version {
		t.Errorf("peek disagrees with full parse: %+v vs %+v", info, full)
	}
}

func TestControllerType(t *testing.T) {
	tests := []struct {
		os       OSType
		element  string
		expected string
		ok       bool
	}{
		{OSiOS, "viewController", "UIViewController", true},
		{OSiOS, "tableViewController", "UITableViewController", true},
		{OSiOS, "placeholder", "", false},
		{OSMac, "viewController", "NSViewController", true},
		{OSMac, "windowController", "NSWindowController", true},
		{OSMac, "tabBarController", "", false},
		{OStvOS, "navigationController", "UINavigationController", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.os)+"/"+tt.element, func(t *testing.T) {
			got, ok := tt.os.ControllerType(tt.element)
			if got != tt.expected || ok != tt.ok {
				t.Errorf("ControllerType(%q) = %q, %v; want %q, %v", tt.element, got, ok, tt.expected, tt.ok)
			}
		})
	}
}
