package notify

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/paintboard/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
	iconExisted bool
	iconW       int
}

func recorder(out *[]sent) SendFunc {
	return func(title, body string, opts platform.Options) error {
		s := sent{title: title, body: body, opts: opts}
		if opts.IconPath != "" {
			if f, err := os.Open(opts.IconPath); err == nil {
				s.iconExisted = true
				if cfg, err := png.DecodeConfig(f); err == nil {
					s.iconW = cfg.Width
				}
				f.Close()
			}
		}
		*out = append(*out, s)
		return nil
	}
}

func TestDisabledEventsAreSilent(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences())
	n.SetSender(recorder(&got))
	n.Save("x.png")
	n.Copy("", nil)
	if len(got) != 0 {
		t.Errorf("sent %d notifications while disabled", len(got))
	}
	var nilNotifier *Notifier
	nilNotifier.Save("x.png")
	nilNotifier.Enable(EventSave, true)
}

func TestSaveNotification(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences())
	n.SetSender(recorder(&got))
	n.Enable(EventSave, true)

	path := filepath.Join(t.TempDir(), "drawing.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	n.Save(path)
	if len(got) != 1 {
		t.Fatalf("sent %d notifications", len(got))
	}
	if got[0].title != "Paintboard" || got[0].body != "Saved "+path {
		t.Errorf("unexpected notification %+v", got[0])
	}
	if got[0].opts.IconPath != path {
		t.Errorf("icon %q", got[0].opts.IconPath)
	}
}

func TestSavePDFUsesAppIcon(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences())
	n.SetSender(recorder(&got))
	n.Enable(EventSave, true)

	path := filepath.Join(t.TempDir(), "drawing.pdf")
	if err := os.WriteFile(path, []byte("%PDF"), 0o644); err != nil {
		t.Fatal(err)
	}
	n.Save(path)
	if len(got) != 1 {
		t.Fatalf("sent %d notifications", len(got))
	}
	if got[0].opts.IconPath == path || !got[0].iconExisted || got[0].iconW != previewSize {
		t.Errorf("expected the application icon, got %+v", got[0])
	}
	if _, err := os.Stat(got[0].opts.IconPath); !os.IsNotExist(err) {
		t.Error("icon file was not removed")
	}
}

func TestCopyNotificationPreview(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences())
	n.SetSender(recorder(&got))
	n.Enable(EventCopy, true)

	n.Copy("", image.NewRGBA(image.Rect(0, 0, 512, 256)))
	if len(got) != 1 {
		t.Fatalf("sent %d notifications", len(got))
	}
	if got[0].body != "Copied drawing to clipboard" {
		t.Errorf("body %q", got[0].body)
	}
	if !got[0].iconExisted || got[0].iconW != previewSize {
		t.Errorf("preview missing or wrong size: %+v", got[0])
	}
	if _, err := os.Stat(got[0].opts.IconPath); !os.IsNotExist(err) {
		t.Error("preview file was not removed")
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("PAINTBOARD_NOTIFY_TITLE", "Board")
	t.Setenv("PAINTBOARD_NOTIFY_SAVE_TEXT", "Wrote %s")
	prefs := LoadPreferences()
	if prefs.Title != "Board" {
		t.Errorf("title %q", prefs.Title)
	}
	if !strings.HasPrefix(prefs.Events[EventSave].Template, "Wrote") {
		t.Errorf("save template %q", prefs.Events[EventSave].Template)
	}
	if prefs.Events[EventCopy].Template != DefaultPreferences().Events[EventCopy].Template {
		t.Error("copy template changed")
	}
}
