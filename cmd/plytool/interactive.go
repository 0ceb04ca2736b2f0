package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/meshkit/goply/reader"
	"github.com/meshkit/goply/schema"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	elementStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const sampleInstances = 5

type modelState int

const (
	stateLoading modelState = iota
	stateBrowse
	stateSamples
)

type interactiveModel struct {
	err      error
	hdr      *schema.Header
	filename string
	samples  []string
	filter   textinput.Model
	selected int
	state    modelState
}

type loadedMsg struct {
	err error
	hdr *schema.Header
}

type samplesMsg struct {
	err   error
	lines []string
}

func newInteractiveModel(filename string) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "filter elements"
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 32
	return &interactiveModel{
		filename: filename,
		filter:   ti,
		state:    stateLoading,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadHeader
}

func (m *interactiveModel) loadHeader() tea.Msg {
	r, hdr, err := openAndParse(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	r.Close()
	return loadedMsg{hdr: hdr}
}

// visible returns the elements matching the filter text.
func (m *interactiveModel) visible() []schema.Element {
	if m.hdr == nil {
		return nil
	}
	needle := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if needle == "" {
		return m.hdr.Elements
	}
	var out []schema.Element
	for _, e := range m.hdr.Elements {
		if strings.Contains(strings.ToLower(e.Name), needle) {
			out = append(out, e)
		}
	}
	return out
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.err = msg.err
		m.hdr = msg.hdr
		m.state = stateBrowse
		return m, nil

	case samplesMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateBrowse
			return m, nil
		}
		m.samples = msg.lines
		m.state = stateSamples
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.state == stateSamples {
				m.state = stateBrowse
				return m, nil
			}
			return m, tea.Quit
		case "up":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down":
			if m.selected < len(m.visible())-1 {
				m.selected++
			}
			return m, nil
		case "enter":
			if m.state != stateBrowse {
				return m, nil
			}
			elems := m.visible()
			if m.selected >= len(elems) {
				return m, nil
			}
			name := elems[m.selected].Name
			return m, func() tea.Msg { return m.loadSamples(name) }
		}
	}

	if m.state == stateBrowse {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		if m.selected >= len(m.visible()) {
			m.selected = 0
		}
		return m, cmd
	}
	return m, nil
}

// errStopSampling aborts the read once enough instances were seen.
var errStopSampling = errors.New("enough samples")

// loadSamples decodes the first few instances of one element by re-reading
// the document and aborting the read from inside the callback.
func (m *interactiveModel) loadSamples(element string) tea.Msg {
	r, hdr, err := openAndParse(m.filename)
	if err != nil {
		return samplesMsg{err: err}
	}
	defer r.Close()

	e := hdr.Element(element)
	if e == nil {
		return samplesMsg{err: fmt.Errorf("element %q not found", element)}
	}
	rows := make([][]string, 0, sampleInstances)
	for _, p := range e.Properties {
		name := p.Name
		if _, err := r.OnValue(element, name, func(arg reader.Argument) error {
			if arg.Instance >= sampleInstances {
				return errStopSampling
			}
			for int64(len(rows)) <= arg.Instance {
				rows = append(rows, nil)
			}
			if arg.ValueIndex < 0 {
				// List length marker; the count is implied by the values.
				return nil
			}
			rows[arg.Instance] = append(rows[arg.Instance],
				name+"="+strconv.FormatFloat(arg.Value, 'g', -1, 64))
			return nil
		}); err != nil {
			return samplesMsg{err: err}
		}
	}

	if err := r.Read(); err != nil && !errors.Is(err, errStopSampling) {
		return samplesMsg{err: err}
	}

	lines := make([]string, 0, len(rows))
	for i, row := range rows {
		lines = append(lines, fmt.Sprintf("%d: %s", i, strings.Join(row, " ")))
	}
	return samplesMsg{lines: lines}
}

func (m *interactiveModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("plytool — "+m.filename) + "\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n\n")
	}

	switch m.state {
	case stateLoading:
		b.WriteString("Loading...\n")

	case stateSamples:
		elems := m.visible()
		if m.selected < len(elems) {
			b.WriteString(elementStyle.Render(elems[m.selected].Name) + " samples:\n\n")
		}
		for _, line := range m.samples {
			b.WriteString("  " + line + "\n")
		}
		b.WriteString("\n" + helpStyle.Render("esc: back"))

	case stateBrowse:
		if m.hdr == nil {
			break
		}
		b.WriteString(typeStyle.Render("format "+m.hdr.Format.String()+" "+m.hdr.Version) + "\n")
		b.WriteString(m.filter.View() + "\n\n")

		elems := m.visible()
		for i, e := range elems {
			line := fmt.Sprintf("%s (%d)", e.Name, e.Count)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> "+line) + "\n")
			} else {
				b.WriteString("  " + elementStyle.Render(line) + "\n")
			}
		}
		if len(elems) == 0 {
			b.WriteString(helpStyle.Render("  no matching elements") + "\n")
		}

		if m.selected < len(elems) {
			b.WriteString("\n")
			for _, p := range elems[m.selected].Properties {
				if p.IsList {
					b.WriteString("  " + p.Name + " " + typeStyle.Render("list "+p.LengthType.String()+" of "+p.Type.String()) + "\n")
				} else {
					b.WriteString("  " + p.Name + " " + typeStyle.Render(p.Type.String()) + "\n")
				}
			}
		}
		b.WriteString("\n" + helpStyle.Render("↑/↓: select • enter: samples • esc: quit"))
	}

	return b.String()
}

func runInteractive(filename string) error {
	p := tea.NewProgram(newInteractiveModel(filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
