package cli

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/coveyrise/steward/internal/playbook"
)

type playbookItem struct {
	pb playbook.Playbook
}

func (i playbookItem) Title() string { return i.pb.Label }

func (i playbookItem) Description() string {
	return fmt.Sprintf("%s · %d tasks, %d funding practices",
		i.pb.Key, len(i.pb.Tasks), len(i.pb.Practices))
}

func (i playbookItem) FilterValue() string { return i.pb.Key + " " + i.pb.Label }

type pickerModel struct {
	list   list.Model
	choice string
	quit   bool
}

func newPickerModel(playbooks []playbook.Playbook) pickerModel {
	items := make([]list.Item, 0, len(playbooks))
	for _, pb := range playbooks {
		items = append(items, playbookItem{pb: pb})
	}

	l := list.New(items, list.NewDefaultDelegate(), 64, 14)
	l.Title = "Choose a playbook"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	return pickerModel{list: l}
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(playbookItem); ok {
				m.choice = item.pb.Key
			}
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			m.quit = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string { return m.list.View() }

// runPlaybookPicker shows the playbook list and returns the selected key.
func runPlaybookPicker(playbooks []playbook.Playbook) (string, error) {
	final, err := tea.NewProgram(newPickerModel(playbooks)).Run()
	if err != nil {
		return "", fmt.Errorf("running playbook picker: %w", err)
	}
	m, ok := final.(pickerModel)
	if !ok || m.quit || m.choice == "" {
		return "", fmt.Errorf("no playbook selected")
	}
	return m.choice, nil
}
