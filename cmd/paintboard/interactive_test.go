package main

import (
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/paintboard/internal/paint"
	"github.com/example/paintboard/internal/palette"
)

func newTestInteractive(t *testing.T) *interactiveCmd {
	t.Helper()
	r, _, _ := newTestRoot(t)
	i := newInteractiveCmd(r.subcommand("interactive"))
	i.isTerminal = func() bool { return false }
	i.show = nil
	return i
}

func runLines(t *testing.T, i *interactiveCmd, script string) error {
	t.Helper()
	return i.runScript(strings.NewReader(script), false)
}

func TestInteractiveScriptDrawsAndUndoes(t *testing.T) {
	i := newTestInteractive(t)
	script := `
# a line, a rectangle and an erased stroke
down 10 10
move 50 50
up
mode rect
color blue
down 20 20
move 60 40
up
mode eraser
thickness 30
down 0 0
move 5 5
cancel
undo
`
	if err := runLines(t, i, script); err != nil {
		t.Fatal(err)
	}
	strokes := i.board.Strokes()
	if len(strokes) != 2 {
		t.Fatalf("got %d strokes", len(strokes))
	}
	if strokes[1].Paint.Style != paint.StyleFill || palette.NameOf(strokes[1].Paint.Color) != "Blue" {
		t.Errorf("rectangle %+v", strokes[1].Paint)
	}
	if !i.board.CanRedo() {
		t.Error("undo left nothing to redo")
	}
	if err := runLines(t, i, "redo\n"); err != nil {
		t.Fatal(err)
	}
	if got := i.board.Strokes(); len(got) != 3 || got[2].Paint.Blend != paint.BlendClear {
		t.Errorf("redo restored %+v", got)
	}
}

func TestInteractiveExitStopsScript(t *testing.T) {
	i := newTestInteractive(t)
	if err := runLines(t, i, "down 1 1\nmove 2 2\nup\nexit\nclear\n"); err != nil {
		t.Fatal(err)
	}
	if len(i.board.Strokes()) != 1 {
		t.Error("commands after exit were run")
	}
}

func TestInteractiveScriptErrorsReportLine(t *testing.T) {
	i := newTestInteractive(t)
	err := runLines(t, i, "down 1 1\nmove one 2\n")
	if err == nil || !strings.Contains(err.Error(), "line 2") || !strings.Contains(err.Error(), `invalid number "one"`) {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestInteractivePromptContinuesAfterErrors(t *testing.T) {
	i := newTestInteractive(t)
	i.isTerminal = func() bool { return true }
	i.stdin = strings.NewReader("bogus\nmode oval\n")
	if err := i.Run(); err != nil {
		t.Fatal(err)
	}
	if i.board.Mode() != paint.ModeOval {
		t.Error("command after an error was not run")
	}
	out := i.stdout.(interface{ String() string }).String()
	if !strings.Contains(out, "> ") {
		t.Errorf("no prompt in %q", out)
	}
	errOut := i.stderr.(interface{ String() string }).String()
	if !strings.Contains(errOut, `unknown command "bogus"`) {
		t.Errorf("stderr %q", errOut)
	}
}

func TestInteractiveNoPromptWithoutTerminal(t *testing.T) {
	i := newTestInteractive(t)
	i.stdin = strings.NewReader("undo\n")
	if err := i.Run(); err != nil {
		t.Fatal(err)
	}
	out := i.stdout.(interface{ String() string }).String()
	if out != "nothing to undo\n" {
		t.Errorf("stdout %q", out)
	}
}

func TestInteractiveExecFlags(t *testing.T) {
	r, _, _ := newTestRoot(t)
	i, err := parseInteractiveCmd([]string{"-e", "thickness 250", "-e", "color #112233", "-e", "exit", "-e", "thickness 3"}, r.subcommand("interactive"))
	if err != nil {
		t.Fatal(err)
	}
	if err := i.Run(); err != nil {
		t.Fatal(err)
	}
	br := i.board.Brush()
	if br.Thickness != palette.MaxThickness {
		t.Errorf("thickness %v", br.Thickness)
	}
	if palette.Hex(br.Color) != "#112233" {
		t.Errorf("color %s", palette.Hex(br.Color))
	}
}

func TestInteractiveScriptFile(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "board.txt")
	out := filepath.Join(dir, "board.png")
	body := "size 120 80\ndown 10 10\nmove 100 70\nup\nsave " + out + " 60\n"
	if err := os.WriteFile(script, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	r, stdout, _ := newTestRoot(t)
	i, err := parseInteractiveCmd([]string{"-script", script}, r.subcommand("interactive"))
	if err != nil {
		t.Fatal(err)
	}
	if err := i.Run(); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 60 || cfg.Height != 40 {
		t.Errorf("exported %dx%d", cfg.Width, cfg.Height)
	}
	if !strings.Contains(stdout.String(), "saved ") {
		t.Errorf("stdout %q", stdout.String())
	}
}

func TestInteractiveEraserKeepsDrawing(t *testing.T) {
	out := filepath.Join(t.TempDir(), "erased.png")
	i := newTestInteractive(t)
	script := `
size 100 100
color #ff0000
mode rect
down 0 0
move 100 100
up
mode eraser
thickness 4
down 90 90
move 95 95
up
save ` + out + "\n"
	if err := runLines(t, i, script); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	at := func(x, y int) color.RGBA { return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA) }
	if got := at(10, 10); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("pixel away from the eraser %+v", got)
	}
	if got := at(92, 92); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("erased pixel %+v, want the page colour", got)
	}
}

func TestInteractiveSizeBounds(t *testing.T) {
	i := newTestInteractive(t)
	for _, line := range []string{"size 1e12 1e12", "size 0 10", "size 10 -5", "size NaN 10", "size 20000 10", "size 10"} {
		if err := i.executeLine(line); err == nil {
			t.Errorf("%q succeeded", line)
		}
	}
	if i.width != 800 || i.height != 600 {
		t.Errorf("size changed to %dx%d", i.width, i.height)
	}
	if err := i.executeLine("size 16384 1"); err != nil {
		t.Errorf("largest size rejected: %v", err)
	}
}

func TestParseInteractiveSizeFlags(t *testing.T) {
	for _, args := range [][]string{{"-width", "0"}, {"-height", "-3"}, {"-width", "100000"}} {
		r, _, _ := newTestRoot(t)
		if _, err := parseInteractiveCmd(args, r.subcommand("interactive")); err == nil {
			t.Errorf("%v accepted", args)
		}
	}
}

func TestInteractiveSaveErrors(t *testing.T) {
	i := newTestInteractive(t)
	for _, line := range []string{"save", "save a.png wide", "save drawing.xyz"} {
		if err := i.executeLine(line); err == nil {
			t.Errorf("%q succeeded", line)
		}
	}
}

func TestInteractiveStrokesAndShow(t *testing.T) {
	i := newTestInteractive(t)
	if err := runLines(t, i, "down 0 0\nmove 10 0\nup\nstrokes\n"); err != nil {
		t.Fatal(err)
	}
	out := i.stdout.(interface{ String() string }).String()
	if !strings.Contains(out, "1 strokes") || !strings.Contains(out, "paint") || !strings.Contains(out, "Red 10px") {
		t.Errorf("strokes output %q", out)
	}
	if err := i.executeLine("show"); err == nil {
		t.Error("show without a window succeeded")
	}
	called := false
	i.show = func(c *interactiveCmd) error {
		called = c.board == i.board
		return nil
	}
	if err := i.executeLine("show"); err != nil || !called {
		t.Errorf("show hook not called with the board: %v", err)
	}
}

func TestCommandList(t *testing.T) {
	var c commandList
	_ = c.Set("up")
	_ = c.Set("undo")
	if c.String() != "up; undo" {
		t.Errorf("String = %q", c.String())
	}
	if !errors.Is(errExit, errExit) {
		t.Fatal("errExit")
	}
}
