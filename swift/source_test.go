package swift

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wpsteak/Natalie/storyboard"
)

const fixture = `<?xml version="1.0" encoding="UTF-8"?>
<document type="com.apple.InterfaceBuilder3.CocoaTouch.Storyboard.XIB" version="3.0" targetRuntime="iOS.CocoaTouch" initialViewController="nav-01">
    <scenes>
        <scene sceneID="s1">
            <objects>
                <navigationController id="nav-01" sceneMemberID="viewController"/>
            </objects>
        </scene>
        <scene sceneID="s2">
            <objects>
                <viewController storyboardIdentifier="Main" id="main-01" customClass="MainViewController" sceneMemberID="viewController">
                    <view key="view" id="v1">
                        <subviews>
                            <tableView id="t1">
                                <prototypes>
                                    <tableViewCell reuseIdentifier="PersonCell" id="c1"/>
                                </prototypes>
                            </tableView>
                        </subviews>
                    </view>
                    <connections>
                        <segue destination="nav-01" kind="show" identifier="ShowDetail" id="sg1"/>
                    </connections>
                </viewController>
            </objects>
        </scene>
    </scenes>
</document>`

func readFixture(t *testing.T) *storyboard.Storyboard {
	t.Helper()
	sb, err := storyboard.Read("Main", []byte(fixture))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return sb
}

func TestSourceEncoder(t *testing.T) {
	sb := readFixture(t)

	var buf bytes.Buffer
	enc := NewSourceEncoder(&buf, Options{Segues: true, ReuseIdentifiers: true})
	if err := enc.Encode([]*storyboard.Storyboard{sb}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	src := buf.String()

	for _, want := range []string{
		"import UIKit",
		"extension UIStoryboard {",
		`static let identifier = "Main"`,
		"static func instantiateInitialViewController() -> UINavigationController {",
		"static func instantiateMain() -> MainViewController {",
		`storyboard.instantiateViewController(withIdentifier: "Main") as! MainViewController`,
		"extension MainViewController {",
		`case showDetail = "ShowDetail"`,
		`case personCell = "PersonCell"`,
	} {
		if !strings.Contains(src, want) {
			t.Errorf("generated source is missing %q\n%s", want, src)
		}
	}
}

func TestSourceEncoderOptions(t *testing.T) {
	sb := readFixture(t)

	var buf bytes.Buffer
	opts := Options{
		Header:  "Project Demo",
		Imports: []string{"MapKit", "AVKit"},
	}
	if err := NewSourceEncoder(&buf, opts).Encode([]*storyboard.Storyboard{sb}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	src := buf.String()

	if !strings.Contains(src, "// Project Demo") {
		t.Errorf("header missing:\n%s", src)
	}
	// Extras come after the framework import, sorted.
	if !strings.Contains(src, "import UIKit\nimport AVKit\nimport MapKit") {
		t.Errorf("imports wrong:\n%s", src)
	}
	if strings.Contains(src, "enum Segue") || strings.Contains(src, "enum Reusable") {
		t.Errorf("disabled sections were generated:\n%s", src)
	}
}

func TestSourceEncoderDeterministic(t *testing.T) {
	sb := readFixture(t)

	render := func() string {
		var buf bytes.Buffer
		enc := NewSourceEncoder(&buf, Options{Segues: true, ReuseIdentifiers: true})
		if err := enc.Encode([]*storyboard.Storyboard{sb}); err != nil {
			t.Fatalf("Encode: %v", err)
		}
		return buf.String()
	}

	if render() != render() {
		t.Errorf("generation is not deterministic")
	}
}

func TestTextEncoder(t *testing.T) {
	sb := readFixture(t)

	var buf bytes.Buffer
	if err := NewTextEncoder(&buf).Encode([]*storyboard.Storyboard{sb}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "// Main.storyboard\n") {
		t.Errorf("missing banner:\n%s", out)
	}
	if !strings.Contains(out, `storyboardIdentifier="Main"`) {
		t.Errorf("tree rendering missing attributes:\n%s", out)
	}
}

func TestIdentifierSanitization(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Main", "Main"},
		{"show detail", "ShowDetail"},
		{"show-detail", "ShowDetail"},
		{"2ndScreen", "_2ndScreen"},
		{"", "_"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := identifier(tt.input); got != tt.expected {
				t.Errorf("identifier(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}

	if got := caseName("ShowDetail"); got != "showDetail" {
		t.Errorf("caseName = %q, want showDetail", got)
	}
}
