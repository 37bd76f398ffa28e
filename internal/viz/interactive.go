package viz

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/numlab/internal/experiment"
)

// Runner runs a single section. *experiment.Experiment satisfies it.
type Runner interface {
	Run(ctx context.Context, name string) (*experiment.Result, error)
}

// Saver persists a result and returns its run id. *storage.Store
// satisfies it.
type Saver interface {
	Save(res *experiment.Result, verify bool) (string, error)
}

const (
	stateList = iota
	stateReport
)

type sectionDoneMsg struct {
	name string
	res  *experiment.Result
	err  error
}

type model struct {
	state, cursor int
	sections      []experiment.Section
	runner        Runner
	saver         Saver
	verify        bool
	results       map[string]*experiment.Result
	errs          map[string]error
	running       string
	status        string
	report        []string
	offset        int
	width, height int
}

// NewBrowser builds the section browser model. saver may be nil, in which
// case results cannot be saved from the browser.
func NewBrowser(runner Runner, sections []experiment.Section, saver Saver, verify bool) tea.Model {
	return model{
		sections: sections,
		runner:   runner,
		saver:    saver,
		verify:   verify,
		results:  make(map[string]*experiment.Result),
		errs:     make(map[string]error),
		width:    80,
		height:   24,
	}
}

// RunBrowser starts the browser on the alternate screen.
func RunBrowser(runner Runner, sections []experiment.Section, saver Saver, verify bool) error {
	_, err := tea.NewProgram(NewBrowser(runner, sections, saver, verify), tea.WithAltScreen()).Run()
	return err
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateReport {
			return m.reportKey(msg)
		}
		return m.listKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.state == stateReport {
			m.renderReport()
		}
	case sectionDoneMsg:
		m.running = ""
		if msg.err != nil {
			m.errs[msg.name] = msg.err
			delete(m.results, msg.name)
			m.status = msg.err.Error()
			return m, nil
		}
		delete(m.errs, msg.name)
		m.results[msg.name] = msg.res
		m.status = ""
		m.open(msg.name)
	}
	return m, nil
}

func (m model) listKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.sections)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.sections) == 0 {
			break
		}
		name := m.sections[m.cursor].Name
		if _, ok := m.results[name]; ok {
			m.open(name)
			break
		}
		cmd := m.run(name)
		return m, cmd
	case "r":
		if len(m.sections) > 0 {
			cmd := m.run(m.sections[m.cursor].Name)
			return m, cmd
		}
	}
	return m, nil
}

func (m model) reportKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		m.state, m.report, m.offset = stateList, nil, 0
	case "down", "j":
		if m.offset < len(m.report)-m.pageSize() {
			m.offset++
		}
	case "up", "k":
		if m.offset > 0 {
			m.offset--
		}
	case "g":
		m.offset = 0
	case "s":
		m.save()
	case "r":
		cmd := m.run(m.sections[m.cursor].Name)
		return m, cmd
	}
	return m, nil
}

func (m *model) run(name string) tea.Cmd {
	if m.running != "" {
		return nil
	}
	m.running = name
	m.status = "running " + name + "..."
	runner := m.runner
	return func() tea.Msg {
		res, err := runner.Run(context.Background(), name)
		return sectionDoneMsg{name: name, res: res, err: err}
	}
}

func (m *model) open(name string) {
	for i, s := range m.sections {
		if s.Name == name {
			m.cursor = i
		}
	}
	m.state, m.offset = stateReport, 0
	m.renderReport()
}

func (m *model) renderReport() {
	res, ok := m.results[m.sections[m.cursor].Name]
	if !ok {
		m.report = nil
		return
	}
	opts := DefaultReportOptions()
	opts.Width = max(m.width-12, 20)
	var b strings.Builder
	if err := RenderReport(&b, res, opts); err != nil {
		m.report = []string{err.Error()}
		return
	}
	m.report = strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
}

func (m *model) save() {
	res, ok := m.results[m.sections[m.cursor].Name]
	if !ok {
		return
	}
	if m.saver == nil {
		m.status = "no store configured"
		return
	}
	id, err := m.saver.Save(res, m.verify)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = "saved " + id
}

func (m model) pageSize() int {
	return max(m.height-3, 1)
}

func (m model) View() string {
	if m.state == stateReport {
		return m.viewReport()
	}
	return m.viewList()
}

func (m model) viewList() string {
	var b strings.Builder
	b.WriteString("\n\n    " + TitleStyle.Render("NUMLAB") + "\n    " + Subtle.Render("numerical methods coursework") + "\n    " + Subtle.Render("─────────────────────────") + "\n\n")
	for i, s := range m.sections {
		name := fmt.Sprintf("%-3s %-14s", s.ID, s.Name)
		line := fmt.Sprintf("%s  %s", m.sectionStatus(s.Name), s.Title)
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", Selected.Render("▸"), Selected.Render(name), line))
		} else {
			b.WriteString(fmt.Sprintf("      %s %s\n", Subtle.Render(name), line))
		}
	}
	if m.status != "" {
		b.WriteString("\n    " + Subtle.Render(m.status) + "\n")
	}
	b.WriteString("\n    " + KeyHelp("j/k", "navigate", "enter", "run/open", "r", "rerun", "q", "quit") + "\n")
	return b.String()
}

func (m model) sectionStatus(name string) string {
	switch {
	case m.running == name:
		return Subtle.Render("…")
	case m.errs[name] != nil:
		return FailStyle.Render("!")
	}
	res, ok := m.results[name]
	if !ok {
		return Subtle.Render("·")
	}
	return CheckMark(res.Passed())
}

func (m model) viewReport() string {
	end := min(m.offset+m.pageSize(), len(m.report))
	var b strings.Builder
	if m.offset < end {
		b.WriteString(strings.Join(m.report[m.offset:end], "\n"))
	}
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(Subtle.Render(m.status) + "  ")
	}
	b.WriteString(KeyHelp("j/k", "scroll", "s", "save", "r", "rerun", "esc", "back") + "\n")
	return b.String()
}
