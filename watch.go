package main

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"mindflerm/internal/config"
	"mindflerm/internal/log"
)

type configChangedMsg struct {
	cfg *config.Config
	err error
}

type watchStoppedMsg struct {
	err error
}

// watchConfig waits for the next write to the config file and reloads it.
// The directory is watched so editors that replace the file are seen too.
func watchConfig(path string) tea.Cmd {
	return func() tea.Msg {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			return watchStoppedMsg{err: err}
		}
		defer w.Close()

		if err := w.Add(filepath.Dir(path)); err != nil {
			return watchStoppedMsg{err: err}
		}
		target := filepath.Clean(path)
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return watchStoppedMsg{}
				}
				if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				cfg, err := config.Load(path)
				return configChangedMsg{cfg: cfg, err: err}
			case err, ok := <-w.Errors:
				if !ok {
					return watchStoppedMsg{}
				}
				return watchStoppedMsg{err: err}
			}
		}
	}
}

// applyConfig swaps in a reloaded config with the command line flags
// reapplied. The root label is only used when a map is created, so it does
// not touch the current map.
func (m *model) applyConfig(msg configChangedMsg) {
	if msg.err != nil {
		m.logger.Errorf("reload config: %v", msg.err)
		m.errorMessage = "ERROR: reload config: " + msg.err.Error()
		return
	}
	if m.flags != nil {
		m.flags.apply(msg.cfg)
	}
	m.config = msg.cfg
	m.logger.SetLevel(log.ParseLevel(msg.cfg.Log.Level))
	m.logger.Infof("config reloaded from %s", m.configPath)
	m.successMessage = "Config reloaded"
}
