package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// manifestPicker is the bubbletea model for interactive manifest
// selection, shown when `archigram build` is run without arguments.
type manifestPicker struct {
	manifests []string
	cursor    int
	selected  string
}

func newManifestPicker(manifests []string) manifestPicker {
	return manifestPicker{manifests: manifests}
}

func (m manifestPicker) Init() tea.Cmd {
	return nil
}

func (m manifestPicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.manifests)-1 {
				m.cursor++
			}
		case "enter":
			m.selected = m.manifests[m.cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m manifestPicker) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Select Manifest"))
	b.WriteString("\n")
	b.WriteString(styleDim.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, path := range m.manifests {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-30s  %s", cursor, filepath.Base(path), styleDim.Render(filepath.Dir(path)))
		if i == m.cursor {
			b.WriteString(styleSelected.Render(line))
		} else {
			b.WriteString(styleNormal.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleDim.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.manifests))))
	return b.String()
}

// pickManifest runs the interactive picker and returns the chosen
// manifest path, or "" if the user quit without selecting.
func pickManifest(manifests []string) (string, error) {
	final, err := tea.NewProgram(newManifestPicker(manifests)).Run()
	if err != nil {
		return "", err
	}
	picker, ok := final.(manifestPicker)
	if !ok {
		return "", nil
	}
	return picker.selected, nil
}
