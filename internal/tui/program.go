package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/driftbox/internal/config"
	"github.com/san-kum/driftbox/internal/sim"
	"go.uber.org/zap"
)

// Run drives the playground in the terminal until the user quits. When
// configPath is set the file is watched and edits are applied live.
func Run(s *sim.Simulation, opts Options, configPath string) error {
	m := newModel(s, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())

	if configPath != "" {
		w, err := config.NewWatcher(configPath)
		if err != nil {
			m.log.Warn("config watch disabled", zap.String("path", configPath), zap.Error(err))
		} else {
			defer w.Close()
			go forward(p, w)
		}
	}

	_, err := p.Run()
	s.Close()
	return err
}

func forward(p *tea.Program, w *config.Watcher) {
	for {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return
			}
			cfg, err := config.Load(path)
			p.Send(ConfigReloadedMsg{Config: cfg, Err: err})
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			p.Send(ConfigReloadedMsg{Err: err})
		}
	}
}
