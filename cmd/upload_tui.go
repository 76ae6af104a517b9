package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/kamal-hamza/storefront-cli/internal/core/domain"
	"github.com/kamal-hamza/storefront-cli/internal/core/services"
	"github.com/kamal-hamza/storefront-cli/pkg/ui"
)

type uploadKeyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Submit  key.Binding
	Preview key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func (k uploadKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Submit, k.Preview, k.Help, k.Quit}
}

func (k uploadKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev},
		{k.Submit, k.Preview},
		{k.Help, k.Quit},
	}
}

var uploadKeys = uploadKeyMap{
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next slot"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous slot"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "submit"),
	),
	Preview: key.NewBinding(
		key.WithKeys("ctrl+w"),
		key.WithHelp("ctrl+w", "write preview"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "q"),
		key.WithHelp("q", "quit"),
	),
}

// selectedMsg reports a finished selection for a slot
type selectedMsg struct {
	slot domain.Slot
	err  error
}

type uploadModel struct {
	ctx     context.Context
	form    *services.UploadForm
	slots   []domain.Slot
	focus   int
	pending map[domain.Slot]int // selections still being measured

	picker  filepicker.Model
	spinner spinner.Model
	help    help.Model
	keys    uploadKeyMap

	status  *domain.SubmitStatus
	page    *previewPage
	message string
}

func newUploadModel(ctx context.Context, form *services.UploadForm) uploadModel {
	fp := filepicker.New()
	// Advisory only: disabled files can still be chosen and are then rejected by validation
	fp.AllowedTypes = []string{".png"}
	fp.AutoHeight = false
	fp.Height = 12
	if wd, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = wd
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ui.ColorPrimary)

	return uploadModel{
		ctx:     ctx,
		form:    form,
		slots:   domain.Slots(),
		pending: make(map[domain.Slot]int),
		picker:  fp,
		spinner: sp,
		help:    help.New(),
		keys:    uploadKeys,
	}
}

func (m uploadModel) focused() domain.Slot {
	return m.slots[m.focus]
}

// selectCmd loads and validates path for slot off the UI goroutine
func (m uploadModel) selectCmd(slot domain.Slot, path string) tea.Cmd {
	ctx, form := m.ctx, m.form
	return func() tea.Msg {
		file, err := fileSource.Load(ctx, path)
		if err != nil {
			return selectedMsg{slot: slot, err: err}
		}
		_, err = form.SelectFile(ctx, slot, file)
		return selectedMsg{slot: slot, err: err}
	}
}

func (m uploadModel) Init() tea.Cmd {
	return tea.Batch(m.picker.Init(), m.spinner.Tick)
}

func (m uploadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.focus = (m.focus + 1) % len(m.slots)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.focus = (m.focus + len(m.slots) - 1) % len(m.slots)
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			status := m.form.Submit()
			m.status = &status
			if status.Succeeded() {
				return m, tea.Quit
			}
			return m, nil
		case key.Matches(msg, m.keys.Preview):
			page, ok, err := writePreviewPage(m.form)
			switch {
			case err != nil:
				m.message = ui.FormatError(err.Error())
			case !ok:
				m.message = ui.FormatWarning("Select a file for every slot first")
			default:
				m.page = &page
				m.message = ui.FormatSuccess("Preview written to " + page.Path)
			}
			return m, nil
		}

	case selectedMsg:
		m.pending[msg.slot]--
		if m.pending[msg.slot] <= 0 {
			delete(m.pending, msg.slot)
		}
		if msg.err != nil {
			m.message = ui.FormatError(fmt.Sprintf("%s: %v", msg.slot, msg.err))
			return m, nil
		}
		m.message = ""
		m.status = nil
		m.advance()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		return m.choose(path, cmd)
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		return m.choose(path, cmd)
	}

	return m, cmd
}

func (m uploadModel) choose(path string, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	slot := m.focused()
	m.pending[slot]++
	m.message = ui.FormatMuted(fmt.Sprintf("Measuring %s for %s...", path, slot))
	return m, tea.Batch(cmd, m.selectCmd(slot, path))
}

// advance moves focus to the next slot without an entry
func (m *uploadModel) advance() {
	for i := 1; i <= len(m.slots); i++ {
		next := (m.focus + i) % len(m.slots)
		if m.form.Entry(m.slots[next]) == nil {
			m.focus = next
			return
		}
	}
}

func (m uploadModel) View() string {
	var s strings.Builder

	s.WriteString(ui.FormatTitle(" " + ui.IconImage + " Banner Upload "))
	s.WriteString("\n\n")

	for i, slot := range m.slots {
		s.WriteString(m.slotLine(slot, i == m.focus))
		s.WriteString("\n")
	}
	s.WriteString("\n")

	slot := m.focused()
	s.WriteString(ui.StyleHeader.Render(fmt.Sprintf("Choose %s banner (%s PNG, < 150KB)", slot, slot.RequiredDimensions())))
	s.WriteString("\n")
	s.WriteString(ui.FormatMuted(m.picker.CurrentDirectory))
	s.WriteString("\n")
	s.WriteString(m.picker.View())
	s.WriteString("\n")

	if m.status != nil {
		if m.status.Succeeded() {
			s.WriteString(ui.FormatSuccess(m.status.Message))
		} else {
			s.WriteString(ui.FormatError(m.status.Message))
		}
		s.WriteString("\n")
	}
	if m.message != "" {
		s.WriteString(m.message)
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(m.help.View(m.keys))
	return s.String()
}

func (m uploadModel) slotLine(slot domain.Slot, focused bool) string {
	cursor := "  "
	if focused {
		cursor = ui.StylePrimary.Render("> ")
	}
	label := fmt.Sprintf("%-8s", slot)

	if m.pending[slot] > 0 {
		return cursor + label + m.spinner.View() + " measuring"
	}

	entry := m.form.Entry(slot)
	switch {
	case entry == nil:
		return cursor + label + ui.FormatPending("no file")
	case entry.Error != nil:
		return cursor + label + ui.FormatError(entry.File.Name+": "+entry.Error.Message)
	default:
		return cursor + label + ui.FormatSuccess(fmt.Sprintf("%s %s", entry.File.Name, entry.Dimensions))
	}
}

func runUploadInteractive(ctx context.Context, paths map[domain.Slot]string) error {
	form := newUploadForm()
	m := newUploadModel(ctx, form)

	var preload []tea.Cmd
	for _, slot := range m.slots {
		if path := paths[slot]; path != "" {
			m.pending[slot]++
			preload = append(preload, m.selectCmd(slot, path))
		}
	}

	p := tea.NewProgram(preloaded{m, tea.Batch(preload...)}, tea.WithContext(ctx))
	result, err := p.Run()
	if err != nil {
		form.Discard()
		return fmt.Errorf("error running upload form: %w", err)
	}

	final := unwrapUploadModel(result)
	fmt.Print(renderEntries(form))
	if final.page == nil {
		form.Discard()
	} else {
		reportPreviewPage(*final.page)
	}

	if final.status == nil {
		fmt.Println(ui.FormatMuted("Upload not submitted."))
		return nil
	}
	if !printStatus(*final.status) {
		return errUploadRejected
	}
	logger.Debug("interactive upload finished", zap.String("status", string(final.status.Kind)))
	return nil
}

// preloaded runs extra commands on start, for paths given as flags
type preloaded struct {
	uploadModel
	extra tea.Cmd
}

func (p preloaded) Init() tea.Cmd {
	return tea.Batch(p.uploadModel.Init(), p.extra)
}

func unwrapUploadModel(m tea.Model) uploadModel {
	switch v := m.(type) {
	case preloaded:
		return v.uploadModel
	case uploadModel:
		return v
	}
	return uploadModel{}
}
