// Package tui is the terminal screen of the employee directory: a searchable
// list, export shortcuts and an edit dialog, all gated by the current
// capabilities.
package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"employee-directory/internal/app"
	"employee-directory/internal/directory"
	"employee-directory/internal/domain"
	"employee-directory/internal/export"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"
)

const skeletonRows = 5

// StateMsg carries a store snapshot into the program loop.
type StateMsg directory.State

type loadedMsg struct{ err error }

type savedMsg struct{ err error }

type exportedMsg struct {
	locs map[export.Format]string
	err  error
}

type editOpenedMsg struct{ err error }

// draftFields are the dialog inputs in display order.
var draftFields = []struct {
	name  string
	label string
}{
	{domain.FieldUsername, "Username"},
	{domain.FieldEmail, "Email"},
	{domain.FieldPhoneNumber, "Phone Number"},
	{domain.FieldPassword, "Password"},
}

// Model never mutates the store from Update: store calls run in commands so
// that the subscriber can hand snapshots back through Program.Send.
type Model struct {
	ctx context.Context
	dir *app.Directory

	state   directory.State
	search  textinput.Model
	cursor  int
	spinner spinner.Model

	inputs     []textinput.Model
	fieldFocus int
	formErr    string
	// tag of the employee the dialog inputs were seeded for
	editingTag string

	status string
	err    error
	width  int
}

func New(ctx context.Context, dir *app.Directory) *Model {
	search := textinput.New()
	search.Placeholder = "Search by username, email or phone"
	search.Prompt = "/ "
	search.Focus()

	inputs := make([]textinput.Model, len(draftFields))
	for i, f := range draftFields {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 128
		in.Width = 40
		if f.name == domain.FieldPassword {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
			in.Placeholder = "Leave blank to keep current password"
		}
		inputs[i] = in
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	// Init always loads, so the first frame already shows the placeholders
	st := dir.Store().State()
	st.Loading = true

	return &Model{
		ctx:     ctx,
		dir:     dir,
		state:   st,
		search:  search,
		spinner: sp,
		inputs:  inputs,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.loadCmd())
}

func (m *Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: m.dir.Load(m.ctx)}
	}
}

func (m *Model) visible() []domain.Employee {
	return directory.Filter(m.state.Records, m.search.Value())
}

// dialogOpen reports whether the edit dialog is on screen. The capability
// is checked on every call.
func (m *Model) dialogOpen() bool {
	return m.state.Editing() && m.dir.Capabilities().Edit
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case StateMsg:
		m.applyState(directory.State(msg))
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
		}
		return m, nil

	case editOpenedMsg:
		if msg.err != nil {
			m.err = msg.err
		}
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = ""
		} else {
			m.err = nil
			m.status = "Employee updated"
		}
		return m, nil

	case exportedMsg:
		m.err = msg.err
		m.status = exportStatus(msg.locs)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.dialogOpen() {
			return m.updateDialog(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

// applyState takes a new snapshot and seeds the dialog inputs when an edit
// session opens for a different employee.
func (m *Model) applyState(st directory.State) {
	m.state = st
	if n := len(m.visible()); m.cursor >= n {
		m.cursor = max(0, n-1)
	}

	if !st.Editing() {
		m.editingTag = ""
		m.formErr = ""
		return
	}
	if st.Selected.EmployeeTag == m.editingTag {
		return
	}
	m.editingTag = st.Selected.EmployeeTag
	for i, f := range draftFields {
		v, _ := st.Draft.Get(f.name)
		m.inputs[i].SetValue(v)
	}
	m.focusField(0)
}

func (m *Model) focusField(i int) {
	m.fieldFocus = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	caps := m.dir.Capabilities()
	rows := m.visible()

	switch msg.String() {
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down":
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
		return m, nil
	case "esc":
		m.search.SetValue("")
		m.cursor = 0
		return m, nil
	case "ctrl+r":
		return m, m.loadCmd()
	case "enter":
		if !caps.Edit || len(rows) == 0 || m.state.Saving {
			return m, nil
		}
		e := rows[m.cursor]
		return m, func() tea.Msg {
			return editOpenedMsg{err: m.dir.Edit(e)}
		}
	case "ctrl+p":
		if !caps.ExportPDF {
			return m, nil
		}
		return m, m.exportCmd(export.FormatPDF)
	case "ctrl+s":
		if !caps.ExportSpreadsheet {
			return m, nil
		}
		return m, m.exportCmd(export.FormatSpreadsheet)
	case "ctrl+e":
		if !caps.CanExport() {
			return m, nil
		}
		return m, m.exportAllCmd()
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if n := len(m.visible()); m.cursor >= n {
		m.cursor = max(0, n-1)
	}
	return m, cmd
}

func (m *Model) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state.Saving {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		return m, func() tea.Msg {
			return editOpenedMsg{err: m.dir.Cancel()}
		}
	case "tab", "down":
		m.focusField((m.fieldFocus + 1) % len(m.inputs))
		return m, nil
	case "shift+tab", "up":
		m.focusField((m.fieldFocus + len(m.inputs) - 1) % len(m.inputs))
		return m, nil
	case "enter":
		return m, m.saveCmd()
	}

	var cmd tea.Cmd
	m.inputs[m.fieldFocus], cmd = m.inputs[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *Model) draft() domain.EditDraft {
	var d domain.EditDraft
	for i, f := range draftFields {
		_ = d.Set(f.name, m.inputs[i].Value())
	}
	return d
}

// saveCmd validates the dialog and, when valid, pushes the fields into the
// store draft and saves.
func (m *Model) saveCmd() tea.Cmd {
	d := m.draft()
	if err := domain.ValidateDraft(d); err != nil {
		m.formErr = formError(err)
		return nil
	}
	m.formErr = ""

	return func() tea.Msg {
		for _, f := range draftFields {
			v, _ := d.Get(f.name)
			if err := m.dir.SetField(f.name, v); err != nil {
				return savedMsg{err: err}
			}
		}
		return savedMsg{err: m.dir.Save(m.ctx)}
	}
}

func (m *Model) exportCmd(f export.Format) tea.Cmd {
	return func() tea.Msg {
		loc, err := m.dir.Export(m.ctx, f)
		var locs map[export.Format]string
		if loc != "" {
			locs = map[export.Format]string{f: loc}
		}
		return exportedMsg{locs: locs, err: err}
	}
}

func (m *Model) exportAllCmd() tea.Cmd {
	return func() tea.Msg {
		locs, err := m.dir.ExportAll(m.ctx)
		return exportedMsg{locs: locs, err: err}
	}
}

func exportStatus(locs map[export.Format]string) string {
	if len(locs) == 0 {
		return ""
	}
	out := make([]string, 0, len(locs))
	for _, loc := range locs {
		out = append(out, loc)
	}
	sort.Strings(out)
	return "Saved " + strings.Join(out, ", ")
}

var fieldLabels = map[string]string{
	"Username":    "Username",
	"Email":       "Email",
	"PhoneNumber": "Phone number",
}

func formError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	if fe.Tag() == "email" {
		return "Email is not a valid address"
	}
	return fmt.Sprintf("%s is required", fieldLabels[fe.Field()])
}
