// internal/selector/tui.go
package selector

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// TUI prompts on the terminal with bubbletea programs.
type TUI struct {
	in         *os.File
	out        io.Writer
	isTerminal func(fd int) bool
}

// NewTUI returns a TUI reading keys from in and drawing to out.
func NewTUI(in *os.File, out io.Writer) *TUI {
	return &TUI{in: in, out: out, isTerminal: term.IsTerminal}
}

func (t *TUI) interactive() bool {
	return t.in != nil && t.isTerminal(int(t.in.Fd()))
}

// SelectModels shows a checkbox list over names and returns the checked
// entries in list order. Confirming with nothing checked returns an empty slice.
func (t *TUI) SelectModels(names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, ErrNoChoices
	}
	if !t.interactive() {
		return nil, ErrNotInteractive
	}
	final, err := tea.NewProgram(newPicker(names), tea.WithInput(t.in), tea.WithOutput(t.out)).Run()
	if err != nil {
		return nil, fmt.Errorf("model selection: %w", err)
	}
	p := final.(*picker)
	if p.aborted {
		return nil, ErrAborted
	}
	return p.chosen, nil
}

// Prompt reads a single line of free text.
func (t *TUI) Prompt() (string, error) {
	if !t.interactive() {
		return "", ErrNotInteractive
	}
	final, err := tea.NewProgram(newPromptInput(), tea.WithInput(t.in), tea.WithOutput(t.out)).Run()
	if err != nil {
		return "", fmt.Errorf("prompt input: %w", err)
	}
	p := final.(*promptInput)
	if p.aborted {
		return "", ErrAborted
	}
	return p.value, nil
}

type keyMap struct {
	Toggle  key.Binding
	Confirm key.Binding
	Abort   key.Binding
}

var keys = keyMap{
	Toggle:  key.NewBinding(key.WithKeys(" ", "space", "x"), key.WithHelp("space", "toggle")),
	Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	Abort:   key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "cancel")),
}

var (
	checkedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	titleStyle   = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

// choice is one model row in the picker.
type choice struct {
	name    string
	checked bool
}

// Title returns the model name with its checkbox.
func (c choice) Title() string {
	if c.checked {
		return checkedStyle.Render("[x] " + c.name)
	}
	return "[ ] " + c.name
}

// Description is empty; rows show only the model name.
func (c choice) Description() string { return "" }

// FilterValue returns the model name.
func (c choice) FilterValue() string { return c.name }

// picker is the bubbletea model for multi-selecting models.
type picker struct {
	list    list.Model
	chosen  []string
	aborted bool
}

func newPicker(names []string) *picker {
	items := make([]list.Item, len(names))
	for i, n := range names {
		items[i] = choice{name: n}
	}
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	l := list.New(items, delegate, 80, 20)
	l.Title = "Select models to benchmark"
	l.Styles.Title = titleStyle
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.DisableQuitKeybindings()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Confirm, keys.Abort}
	}
	return &picker{list: l}
}

// Init implements tea.Model.
func (p *picker) Init() tea.Cmd { return nil }

// Update toggles, confirms or aborts on key presses and forwards navigation to the list.
func (p *picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Abort):
			p.aborted = true
			return p, tea.Quit
		case key.Matches(msg, keys.Confirm):
			p.chosen = p.checked()
			return p, tea.Quit
		case key.Matches(msg, keys.Toggle):
			if c, ok := p.list.SelectedItem().(choice); ok {
				c.checked = !c.checked
				return p, p.list.SetItem(p.list.Index(), c)
			}
			return p, nil
		}
	case tea.WindowSizeMsg:
		p.list.SetSize(msg.Width-2, msg.Height-2)
		return p, nil
	}

	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

// View renders the list.
func (p *picker) View() string {
	return p.list.View()
}

func (p *picker) checked() []string {
	chosen := []string{}
	for _, it := range p.list.Items() {
		if c, ok := it.(choice); ok && c.checked {
			chosen = append(chosen, c.name)
		}
	}
	return chosen
}

// promptInput is the bubbletea model for the free-text prompt.
type promptInput struct {
	textArea textarea.Model
	value    string
	aborted  bool
}

func newPromptInput() *promptInput {
	ta := textarea.New()
	ta.Placeholder = "Type the benchmark prompt..."
	ta.Focus()
	ta.Prompt = "Prompt: "
	ta.ShowLineNumbers = false
	ta.CharLimit = -1
	ta.SetHeight(1)
	ta.SetWidth(80)
	ta.KeyMap.InsertNewline.SetEnabled(false)
	return &promptInput{textArea: ta}
}

// Init starts the cursor blink.
func (p *promptInput) Init() tea.Cmd { return textarea.Blink }

// Update confirms on enter and aborts on ctrl+c or esc.
func (p *promptInput) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Abort):
			p.aborted = true
			return p, tea.Quit
		case key.Matches(msg, keys.Confirm):
			p.value = p.textArea.Value()
			return p, tea.Quit
		}
	case tea.WindowSizeMsg:
		p.textArea.SetWidth(msg.Width - 3)
		return p, nil
	}

	var cmd tea.Cmd
	p.textArea, cmd = p.textArea.Update(msg)
	return p, cmd
}

// View renders the input with a key hint.
func (p *promptInput) View() string {
	var b strings.Builder
	b.WriteString(p.textArea.View())
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("enter: confirm • esc: cancel"))
	b.WriteString("\n")
	return b.String()
}
