package swift

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/wpsteak/Natalie/storyboard"
)

// Options controls what SourceEncoder emits.
type Options struct {
	// Header is an extra comment block placed below the generated banner.
	Header string
	// Imports lists modules imported in addition to the platform framework.
	Imports []string
	// Segues enables the per-controller segue identifier enums.
	Segues bool
	// ReuseIdentifiers enables the per-controller reuse identifier enums.
	ReuseIdentifiers bool
}

// SourceEncoder emits the Swift support source for a set of storyboards:
// typed instantiation helpers, segue identifier enums, and reuse identifier
// enums. Output goes to the writer handed in at construction; the encoder
// never prints on its own.
type SourceEncoder struct {
	w           io.Writer
	opts        Options
	storyboards []*storyboard.Storyboard
}

func NewSourceEncoder(w io.Writer, opts Options) *SourceEncoder {
	return &SourceEncoder{w: w, opts: opts}
}

func (e *SourceEncoder) Encode(storyboards []*storyboard.Storyboard) error {
	e.storyboards = storyboards
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *SourceEncoder) MarshalText() ([]byte, error) {
	src := &sourceFile{}

	src.line("//")
	src.line("// Autogenerated by Natalie - Storyboard Generator")
	src.line("// DO NOT EDIT")
	src.line("//")
	if e.opts.Header != "" {
		for _, line := range strings.Split(strings.TrimRight(e.opts.Header, "\n"), "\n") {
			src.line("// " + line)
		}
	}
	src.blank()

	for _, module := range e.imports() {
		src.line("import " + module)
	}

	for _, sb := range e.storyboards {
		e.writeStoryboard(src, sb)
	}
	return src.bytes(), nil
}

// imports returns the platform frameworks of all storyboards plus the
// configured extras, deduplicated and in a stable order.
func (e *SourceEncoder) imports() []string {
	seen := map[string]bool{}
	var modules []string
	add := func(m string) {
		if !seen[m] {
			seen[m] = true
			modules = append(modules, m)
		}
	}
	for _, sb := range e.storyboards {
		add(sb.OS.Framework())
	}
	extras := append([]string(nil), e.opts.Imports...)
	sort.Strings(extras)
	for _, m := range extras {
		add(m)
	}
	return modules
}

func (e *SourceEncoder) writeStoryboard(src *sourceFile, sb *storyboard.Storyboard) {
	src.blank()
	src.linef("// MARK: - %s.storyboard", sb.Name)
	src.blank()
	src.linef("extension %s {", sb.OS.StoryboardType())
	src.indent()
	src.linef("struct %s {", identifier(sb.Name))
	src.indent()

	src.linef("static let identifier = %q", sb.Name)
	src.blank()
	src.linef("static var storyboard: %s {", sb.OS.StoryboardType())
	src.indent()
	if sb.OS == storyboard.OSMac {
		src.line("return NSStoryboard(name: identifier, bundle: nil)")
	} else {
		src.line("return UIStoryboard(name: identifier, bundle: nil)")
	}
	src.outdent()
	src.line("}")

	if initial := sb.InitialViewController(); initial != nil {
		if class := initial.ClassName(sb.OS); class != "" {
			src.blank()
			src.linef("static func instantiateInitialViewController() -> %s {", class)
			src.indent()
			if sb.OS == storyboard.OSMac {
				src.linef("return storyboard.instantiateInitialController() as! %s", class)
			} else {
				src.linef("return storyboard.instantiateInitialViewController() as! %s", class)
			}
			src.outdent()
			src.line("}")
		}
	}

	for _, vc := range sb.ViewControllers() {
		if vc.StoryboardIdentifier == "" {
			continue
		}
		class := vc.ClassName(sb.OS)
		if class == "" {
			continue
		}
		src.blank()
		src.linef("static func instantiate%s() -> %s {", identifier(vc.StoryboardIdentifier), class)
		src.indent()
		if sb.OS == storyboard.OSMac {
			src.linef("return storyboard.instantiateController(withIdentifier: %q) as! %s", vc.StoryboardIdentifier, class)
		} else {
			src.linef("return storyboard.instantiateViewController(withIdentifier: %q) as! %s", vc.StoryboardIdentifier, class)
		}
		src.outdent()
		src.line("}")
	}

	src.outdent()
	src.line("}")
	src.outdent()
	src.line("}")

	if e.opts.Segues {
		e.writeSegues(src, sb)
	}
	if e.opts.ReuseIdentifiers {
		e.writeReusables(src, sb)
	}
}

func (e *SourceEncoder) writeSegues(src *sourceFile, sb *storyboard.Storyboard) {
	for _, vc := range sb.ViewControllers() {
		var named []*storyboard.Segue
		for _, segue := range vc.Segues {
			if segue.Identifier != "" {
				named = append(named, segue)
			}
		}
		// Segue enums only make sense on classes the app owns.
		if len(named) == 0 || vc.CustomClass == "" {
			continue
		}
		src.blank()
		src.linef("extension %s {", vc.CustomClass)
		src.indent()
		src.line("enum Segue: String {")
		src.indent()
		for _, segue := range named {
			src.linef("case %s = %q", caseName(segue.Identifier), segue.Identifier)
		}
		src.outdent()
		src.line("}")
		src.outdent()
		src.line("}")
	}
}

func (e *SourceEncoder) writeReusables(src *sourceFile, sb *storyboard.Storyboard) {
	for _, vc := range sb.ViewControllers() {
		if len(vc.Reusables) == 0 || vc.CustomClass == "" {
			continue
		}
		src.blank()
		src.linef("extension %s {", vc.CustomClass)
		src.indent()
		src.line("enum Reusable: String {")
		src.indent()
		for _, r := range vc.Reusables {
			src.linef("case %s = %q", caseName(r.ReuseIdentifier), r.ReuseIdentifier)
		}
		src.outdent()
		src.line("}")
		src.outdent()
		src.line("}")
	}
}

// sourceFile accumulates indented source lines.
type sourceFile struct {
	sb    strings.Builder
	depth int
}

func (f *sourceFile) indent() { f.depth++ }

func (f *sourceFile) outdent() { f.depth-- }

func (f *sourceFile) line(s string) {
	for i := 0; i < f.depth; i++ {
		f.sb.WriteString("    ")
	}
	f.sb.WriteString(s)
	f.sb.WriteString("\n")
}

func (f *sourceFile) linef(format string, args ...any) {
	f.line(fmt.Sprintf(format, args...))
}

func (f *sourceFile) blank() {
	f.sb.WriteString("\n")
}

func (f *sourceFile) bytes() []byte {
	return []byte(f.sb.String())
}
