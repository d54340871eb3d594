package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
// comment
Name: Custom
Page: #102030
toolbarbackground = navy
ButtonText: "#FFFFFF80"
Unknown: #000000
`
	th, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if th.Name != "Custom" {
		t.Errorf("name %q", th.Name)
	}
	if th.Page != (color.RGBA{0x10, 0x20, 0x30, 0xFF}) {
		t.Errorf("page %v", th.Page)
	}
	if th.ToolbarBackground != (color.RGBA{0x1A, 0x23, 0x7E, 0xFF}) {
		t.Errorf("toolbar %v", th.ToolbarBackground)
	}
	if th.ButtonText != (color.RGBA{0xFF, 0xFF, 0xFF, 0x80}) {
		t.Errorf("button text %v", th.ButtonText)
	}
	if th.Foreground != Default().Foreground {
		t.Error("missing keys should keep defaults")
	}
}

func TestParseInvalidColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("Page: #12")); err == nil {
		t.Error("expected an error")
	}
}

func TestEmbeddedThemesLoad(t *testing.T) {
	l := &Loader{}
	names := l.Names()
	if len(names) < 3 {
		t.Fatalf("embedded themes %v", names)
	}
	for _, name := range names {
		th, err := l.Load(name)
		if err != nil {
			t.Errorf("Load(%q): %v", name, err)
			continue
		}
		if th.Name == "" {
			t.Errorf("theme %q without a name", name)
		}
	}
	dark, err := l.Load("Dark")
	if err != nil {
		t.Fatal(err)
	}
	if dark.Background == Default().Background {
		t.Error("dark theme kept the default background")
	}
}

func TestLoaderOrder(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mine.theme"), []byte("Name: Mine\nPage: #000000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := &Loader{ConfigDir: dir, Extra: map[string]*Theme{"inline": {Name: "Inline"}}}

	th, err := l.Load("mine")
	if err != nil || th.Name != "Mine" {
		t.Fatalf("config dir theme: %v %+v", err, th)
	}
	th, err = l.Load(filepath.Join(dir, "mine.theme"))
	if err != nil || th.Name != "Mine" {
		t.Fatalf("path theme: %v %+v", err, th)
	}
	th, err = l.Load("inline")
	if err != nil || th.Name != "Inline" {
		t.Fatalf("inline theme: %v %+v", err, th)
	}
	th.Name = "changed"
	if l.Extra["inline"].Name != "Inline" {
		t.Error("Load returned the stored theme instead of a copy")
	}
	if _, err := l.Load("missing"); err == nil {
		t.Error("expected an error for a missing theme")
	}
	if th, err := l.Load(""); err != nil || th.Name != "Default" {
		t.Errorf("empty name: %v %+v", err, th)
	}
}

func TestFields(t *testing.T) {
	fields := Fields(Default())
	if len(fields) == 0 || fields[0].Name != "Background" {
		t.Fatalf("fields %+v", fields)
	}
	for _, f := range fields {
		if f.Name == "Name" {
			t.Error("Name is not a colour field")
		}
	}
}
