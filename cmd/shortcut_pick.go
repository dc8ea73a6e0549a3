package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rafa/screenux-screenshot/pkg/hotkey"
	"github.com/rafa/screenux-screenshot/pkg/tui/theme"
)

func newShortcutPickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Pick the shortcut from the candidate chain interactively",
		Long: `Shows the candidate chain with what currently holds each combination and
applies the selected one. Needs an interactive terminal.`,
		Args: cobra.NoArgs,
		RunE: runShortcutPick,
	}
}

// pickKeyMap defines key bindings for the shortcut picker.
type pickKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Quit  key.Binding
}

var pickKeys = pickKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type pickItem struct {
	accel   string
	holders string // comma-joined holder labels, empty when free
}

// pickModel is the Bubble Tea model for the shortcut picker.
type pickModel struct {
	items    []pickItem
	cursor   int
	choice   string
	canceled bool
}

func (m pickModel) Init() tea.Cmd { return nil }

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, pickKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, pickKeys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, pickKeys.Enter):
		m.choice = m.items[m.cursor].accel
		return m, tea.Quit
	case key.Matches(keyMsg, pickKeys.Quit):
		m.canceled = true
		return m, tea.Quit
	}
	return m, nil
}

func (m pickModel) View() string {
	t := theme.DefaultTheme
	var b strings.Builder
	b.WriteString(t.Bold.Render("? Pick the global capture shortcut:"))
	b.WriteString("\n\n")

	for i, item := range m.items {
		if i == m.cursor {
			b.WriteString(t.Highlight.Render(fmt.Sprintf("  %s %s", theme.IconArrow, item.accel)))
		} else {
			b.WriteString("    " + item.accel)
		}
		if item.holders != "" {
			b.WriteString("  " + t.Muted.Render("in use: "+item.holders))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(t.Muted.Render("↑/↓ to navigate, enter to select, q to quit"))
	b.WriteString("\n")
	return b.String()
}

func runShortcutPick(cmd *cobra.Command, args []string) error {
	if !theme.IsTerminal() {
		return fmt.Errorf("shortcut pick needs an interactive terminal")
	}

	manager, err := newHotkeyManager()
	if err != nil {
		return err
	}
	status := manager.Status()

	preferred := status.Preference
	if preferred == "" {
		preferred = manager.DefaultPreference
	}
	normalized, err := hotkey.NormalizeAccel(preferred)
	if err != nil {
		normalized = hotkey.DefaultShortcut
	}
	candidates := hotkey.CandidateChain(normalized)
	for _, extra := range manager.ExtraFallbacks {
		accel, err := hotkey.NormalizeAccel(extra)
		if err != nil || slices.Contains(candidates, accel) {
			continue
		}
		candidates = append(candidates, accel)
	}

	items := make([]pickItem, 0, len(candidates))
	for _, accel := range candidates {
		labels := make([]string, 0, len(status.Taken[accel]))
		for _, holder := range status.Taken[accel] {
			labels = append(labels, holder.String())
		}
		items = append(items, pickItem{accel: accel, holders: strings.Join(labels, ", ")})
	}

	program := tea.NewProgram(pickModel{items: items})
	finalModel, err := program.Run()
	if err != nil {
		return fmt.Errorf("error running picker: %w", err)
	}
	model, ok := finalModel.(pickModel)
	if !ok {
		return fmt.Errorf("unexpected model type")
	}
	if model.canceled || model.choice == "" {
		fmt.Println("Cancelled.")
		return nil
	}

	result, err := manager.Apply(model.choice)
	if err != nil {
		return err
	}
	reportRegistration(result)
	return nil
}
