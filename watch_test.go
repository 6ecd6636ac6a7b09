package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"mindflerm/internal/config"
	"mindflerm/internal/log"
)

func writeConfigFile(t *testing.T, path, body string) {
	t.Helper()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}
}

func TestWatchConfigReportsRewrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfigFile(t, path, "[ui]\npan_step = 4\n")

	got := make(chan tea.Msg, 1)
	go func() { got <- watchConfig(path)() }()

	// The watcher may not be registered yet when the first rewrite lands,
	// so keep replacing the file until it reports one.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case msg := <-got:
			changed, ok := msg.(configChangedMsg)
			if !ok {
				t.Fatalf("watcher returned %T %+v", msg, msg)
			}
			if changed.err != nil {
				t.Fatalf("reload error: %v", changed.err)
			}
			if changed.cfg.UI.PanStep != 9 {
				t.Errorf("pan step = %d, want 9", changed.cfg.UI.PanStep)
			}
			return
		case <-tick.C:
			writeConfigFile(t, path, "[ui]\npan_step = 9\n")
		case <-deadline:
			t.Fatal("no config change reported")
		}
	}
}

func TestWatchConfigIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	got := make(chan tea.Msg, 1)
	go func() { got <- watchConfig(path)() }()

	for i := 0; i < 5; i++ {
		writeConfigFile(t, filepath.Join(dir, "other.toml"), "[ui]\npan_step = 2\n")
		time.Sleep(20 * time.Millisecond)
	}
	select {
	case msg := <-got:
		t.Fatalf("unexpected message %+v", msg)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestConfigReloadKeepsFlags(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfigFile(t, path, "[log]\nlevel = \"info\"\n")

	opts := &rootOptions{configPath: path, debug: true, rootText: "Plans"}
	cfg, _, err := loadConfig(opts)
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard, log.ParseLevel(cfg.Log.Level))
	m := newModel(cfg, "", logger)
	m.flags = opts

	writeConfigFile(t, path, "[ui]\npan_step = 9\n[log]\nlevel = \"error\"\n")
	reloaded, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	m = apply(t, m, configChangedMsg{cfg: reloaded})

	if m.config.UI.PanStep != 9 {
		t.Errorf("pan step = %d, want 9", m.config.UI.PanStep)
	}
	if m.config.Log.Level != "debug" || m.config.Log.File != debugLogFile {
		t.Errorf("log config = %+v, want debug to %s", m.config.Log, debugLogFile)
	}
	if m.config.UI.RootText != "Plans" {
		t.Errorf("root text = %q", m.config.UI.RootText)
	}
	if logger.Level() != log.LevelDebug {
		t.Errorf("logger level = %v, want DEBUG", logger.Level())
	}
}
