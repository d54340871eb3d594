package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/example/paintboard/internal/appstate"
	"github.com/example/paintboard/internal/paint"
	"github.com/example/paintboard/internal/palette"
	"github.com/example/paintboard/internal/render"
)

// commandList collects repeated -e flags.
type commandList []string

func (c *commandList) String() string { return strings.Join(*c, "; ") }

func (c *commandList) Set(v string) error {
	*c = append(*c, v)
	return nil
}

// errExit stops the command loop.
var errExit = errors.New("exit")

type interactiveCmd struct {
	*root
	fs *flag.FlagSet

	execs  commandList
	script string

	board  *paint.Board
	width  int
	height int
	stdin  io.Reader
	// isTerminal reports whether prompts should be printed.
	isTerminal func() bool
	// show opens the window on the board.
	show func(*interactiveCmd) error
}

func (i *interactiveCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func newInteractiveCmd(r *root) *interactiveCmd {
	brush, mode := r.brush()
	return &interactiveCmd{
		root:   r,
		board:  paint.NewBoard(paint.WithBrush(brush), paint.WithMode(mode)),
		width:  appstate.DefaultSize.X,
		height: appstate.DefaultSize.Y,
		stdin:  os.Stdin,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
		show: showWindow,
	}
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	i := newInteractiveCmd(r)
	fs := flag.NewFlagSet("interactive", flag.ContinueOnError)
	i.fs = fs
	fs.Usage = usageFunc(i)
	fs.Var(&i.execs, "e", "execute a command (may be specified multiple times)")
	fs.StringVar(&i.script, "script", "", "read commands from a file")
	fs.IntVar(&i.width, "width", i.width, "page width for exports")
	fs.IntVar(&i.height, "height", i.height, "page height for exports")
	if err := parseFlags(fs, i, args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: i}
	}
	if err := render.CheckSize(i.width, i.height); err != nil {
		return nil, err
	}
	return i, nil
}

func (i *interactiveCmd) Run() error {
	if len(i.execs) > 0 || i.script != "" {
		for _, line := range i.execs {
			if err := i.executeLine(line); err != nil {
				if errors.Is(err, errExit) {
					return nil
				}
				return err
			}
		}
		if i.script == "" {
			return nil
		}
		f, err := os.Open(i.script)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		return i.runScript(f, false)
	}
	prompt := i.isTerminal != nil && i.isTerminal()
	if prompt {
		fmt.Fprintln(i.stdout, "Enter commands (type 'help' for a list, 'exit' to quit)")
	}
	return i.runScript(i.stdin, prompt)
}

// runScript executes the lines of r. Errors stop a script; with a prompt
// they are reported and reading continues.
func (i *interactiveCmd) runScript(r io.Reader, prompt bool) error {
	scanner := bufio.NewScanner(r)
	line := 0
	for {
		if prompt {
			fmt.Fprint(i.stdout, "> ")
		}
		if !scanner.Scan() {
			break
		}
		line++
		err := i.executeLine(scanner.Text())
		if errors.Is(err, errExit) {
			return nil
		}
		if err != nil {
			if !prompt {
				return fmt.Errorf("line %d: %w", line, err)
			}
			fmt.Fprintln(i.stderr, err)
		}
	}
	return scanner.Err()
}

// executeLine runs a single command. Blank lines and lines starting with
// '#' are ignored.
func (i *interactiveCmd) executeLine(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	args := strings.Fields(line)
	name, rest := strings.ToLower(args[0]), args[1:]
	b := i.board
	switch name {
	case "down", "move":
		x, y, err := parsePoint(rest)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if name == "down" {
			b.TouchDown(x, y)
		} else {
			b.TouchMove(x, y)
		}
	case "up":
		b.TouchUp()
	case "cancel":
		b.TouchCancel()
	case "mode":
		if len(rest) != 1 {
			return fmt.Errorf("mode requires a name")
		}
		m, err := paint.ParseMode(rest[0])
		if err != nil {
			return err
		}
		b.SetMode(m)
	case "color", "colour":
		if len(rest) != 1 {
			return fmt.Errorf("color requires a value")
		}
		col, err := palette.Lookup(rest[0])
		if err != nil {
			return err
		}
		b.SetColor(col)
	case "thickness", "width":
		if len(rest) != 1 {
			return fmt.Errorf("thickness requires a value")
		}
		t, err := strconv.ParseFloat(rest[0], 64)
		if err != nil {
			return fmt.Errorf("invalid thickness %q", rest[0])
		}
		b.SetThickness(t)
	case "undo":
		if !b.Undo() {
			fmt.Fprintln(i.stdout, "nothing to undo")
		}
	case "redo":
		if !b.Redo() {
			fmt.Fprintln(i.stdout, "nothing to redo")
		}
	case "clear":
		b.Clear()
	case "strokes":
		i.printStrokes()
	case "size":
		w, h, err := parsePoint(rest)
		if err != nil {
			return fmt.Errorf("size: %w", err)
		}
		if !(w >= 1 && w <= render.MaxDimension && h >= 1 && h <= render.MaxDimension) {
			return fmt.Errorf("size must be between 1 and %d, got %gx%g", render.MaxDimension, w, h)
		}
		i.width, i.height = int(w), int(h)
	case "save":
		return i.save(rest)
	case "show":
		if i.show == nil {
			return fmt.Errorf("show is not available")
		}
		return i.show(i)
	case "help":
		fmt.Fprint(i.stdout, (&UsageError{of: i}).Error())
	case "exit", "quit":
		return errExit
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}

func (i *interactiveCmd) save(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("save requires a file name and an optional width")
	}
	opts := render.ExportOptions{Width: i.width, Height: i.height}
	if i.activeTheme != nil {
		opts.Background = i.activeTheme.Page
	}
	if len(args) == 2 {
		w, err := strconv.Atoi(args[1])
		if err != nil || w <= 0 {
			return fmt.Errorf("invalid width %q", args[1])
		}
		opts.ScaleWidth = w
	}
	path := args[0]
	if err := render.Export(path, opts, i.board.Strokes()); err != nil {
		return err
	}
	saved := path
	if abs, err := filepath.Abs(path); err == nil {
		saved = abs
	}
	fmt.Fprintf(i.stdout, "saved %s\n", saved)
	i.notifier.Save(saved)
	return nil
}

func (i *interactiveCmd) printStrokes() {
	strokes := i.board.Strokes()
	fmt.Fprintf(i.stdout, "%d strokes\n", len(strokes))
	for n, s := range strokes {
		r, _ := s.Bounds()
		fmt.Fprintf(i.stdout, "%3d: %-6s %-7s %s %gpx (%g,%g)-(%g,%g)\n", n+1, strokeKind(s), s.Paint.Style,
			palette.NameOf(s.Paint.Color), s.Paint.Width, r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
	}
}

func strokeKind(s paint.Stroke) string {
	if s.Paint.Blend == paint.BlendClear {
		return "erase"
	}
	return "paint"
}

func parsePoint(args []string) (float64, float64, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("expected x and y")
	}
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number %q", args[0])
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number %q", args[1])
	}
	return x, y, nil
}

// showWindow opens the drawing window on the board and blocks until it is
// closed.
func showWindow(i *interactiveCmd) error {
	return appstate.New(
		appstate.WithBoard(i.board),
		appstate.WithSize(i.width, i.height),
		appstate.WithTheme(i.activeTheme),
		appstate.WithNotifier(i.notifier),
	).Run()
}
