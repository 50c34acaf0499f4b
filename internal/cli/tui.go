package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/dashforge/pkg/editor"
	"github.com/matzehuels/dashforge/pkg/errors"
	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/registry"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// summaryKeys are tried in order for the one-line component summary.
var summaryKeys = []string{"title", "text", "label", "content", "placeholder", "message"}

type editMode int

const (
	modeList editMode = iota
	modePicker
	modeProps
	modeInput
)

// =============================================================================
// EditModel - Interactive dashboard editing
// =============================================================================

// EditModel is the bubbletea model behind `dashforge edit`. It drives an
// [editor.Session]: the top-level component order, adding, duplicating and
// deleting components, and editing their properties.
type EditModel struct {
	Session *editor.Session
	Save    func(*ir.Dashboard) error

	Cursor int
	Height int
	Offset int
	Status string
	Dirty  bool

	mode       editMode
	types      []registry.Definition
	pick       int
	propCursor int
	input      string
}

// NewEditModel creates an edit model over s. save is called with the
// current dashboard when the user writes it out.
func NewEditModel(s *editor.Session, save func(*ir.Dashboard) error) EditModel {
	m := EditModel{
		Session: s,
		Save:    save,
		Height:  15,
		types:   s.Registry().Definitions(),
	}
	m.syncSelection()
	return m
}

func (m EditModel) Init() tea.Cmd {
	return nil
}

func (m EditModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modePicker:
			return m.updatePicker(msg)
		case modeProps:
			return m.updateProps(msg)
		case modeInput:
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		m.scroll()
	}
	return m, nil
}

func (m EditModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.Status = ""
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "K", "shift+up":
		m.reorder(-1)
	case "J", "shift+down":
		m.reorder(1)
	case "a":
		m.mode = modePicker
		m.pick = 0
	case "y":
		if id := m.currentID(); id != "" {
			n, err := m.Session.Duplicate(id)
			m.apply(err, "Duplicated "+id)
			if err == nil {
				m.Cursor = m.Session.Index(n.ID)
				m.syncSelection()
			}
		}
	case "d", "delete":
		if id := m.currentID(); id != "" {
			err := m.Session.Delete(id)
			m.apply(err, "Deleted "+id)
			m.Cursor = min(m.Cursor, max(m.Session.Len()-1, 0))
			m.syncSelection()
		}
	case "e", "enter":
		id := m.currentID()
		if id == "" {
			break
		}
		if props, ok := m.Session.Editable(id); !ok || len(props) == 0 {
			m.Status = "No editable properties for " + id
			break
		}
		m.mode = modeProps
		m.propCursor = 0
	case "w", "ctrl+s":
		m.save()
	}
	return m, nil
}

func (m EditModel) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q":
		m.mode = modeList
	case "up", "k":
		m.pick = max(m.pick-1, 0)
	case "down", "j":
		m.pick = min(m.pick+1, len(m.types)-1)
	case "enter":
		def := m.types[m.pick]
		n, err := m.Session.Add(def.Type)
		m.apply(err, "Added "+def.Name)
		if err == nil {
			m.Cursor = m.Session.Index(n.ID)
			m.syncSelection()
		}
		m.mode = modeList
	}
	return m, nil
}

func (m EditModel) updateProps(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.currentID()
	props, _ := m.Session.Editable(id)
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q":
		m.mode = modeList
	case "up", "k":
		m.propCursor = max(m.propCursor-1, 0)
	case "down", "j":
		m.propCursor = min(m.propCursor+1, len(props)-1)
	case "enter", " ":
		if len(props) == 0 {
			break
		}
		p := props[m.propCursor]
		cur, ok := m.Session.Selected()
		if !ok {
			m.mode = modeList
			break
		}
		switch p.Widget {
		case registry.WidgetSelect:
			next := nextOption(p.Options, cur.Props.String(p.Key, ""))
			m.apply(m.Session.SetProp(id, p.Key, next), p.Label+" = "+next)
		case registry.WidgetBoolean:
			v := !cur.Props.Bool(p.Key, false)
			m.apply(m.Session.SetProp(id, p.Key, v), fmt.Sprintf("%s = %t", p.Label, v))
		default:
			m.input = cur.Props.String(p.Key, "")
			m.mode = modeInput
		}
	}
	return m, nil
}

func (m EditModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.mode = modeProps
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	case tea.KeyEnter:
		props, _ := m.Session.Editable(m.currentID())
		p := props[m.propCursor]
		var value any = m.input
		if p.Widget == registry.WidgetNumber {
			f, err := strconv.ParseFloat(strings.TrimSpace(m.input), 64)
			if err != nil {
				m.Status = fmt.Sprintf("%s must be a number", p.Label)
				return m, nil
			}
			value = f
		}
		m.apply(m.Session.SetProp(m.currentID(), p.Key, value), p.Label+" updated")
		m.mode = modeProps
	}
	return m, nil
}

// apply records the outcome of a session mutation in the status line.
func (m *EditModel) apply(err error, ok string) {
	if err != nil {
		m.Status = errors.UserMessage(err)
		return
	}
	m.Status = ok
	m.Dirty = true
}

func (m *EditModel) save() {
	if m.Save == nil {
		m.Status = "Nowhere to save"
		return
	}
	if err := m.Save(m.Session.Dashboard()); err != nil {
		m.Status = "Save failed: " + errors.UserMessage(err)
		return
	}
	m.Status = "Saved"
	m.Dirty = false
}

func (m *EditModel) moveCursor(delta int) {
	if m.Session.Len() == 0 {
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), m.Session.Len()-1)
	m.syncSelection()
}

func (m *EditModel) reorder(delta int) {
	id := m.currentID()
	if id == "" {
		return
	}
	before := m.Session.Index(id)
	if err := m.Session.MoveByID(id, delta); err != nil {
		m.apply(err, "")
		return
	}
	m.Cursor = m.Session.Index(id)
	if m.Cursor == before {
		m.Status = "Already at the edge"
	} else {
		m.apply(nil, "Moved "+id)
	}
	m.syncSelection()
}

func (m *EditModel) syncSelection() {
	_ = m.Session.Select(m.currentID())
	m.scroll()
}

func (m *EditModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m EditModel) currentID() string {
	d := m.Session.Dashboard()
	if m.Cursor < 0 || m.Cursor >= len(d.Components) {
		return ""
	}
	return d.Components[m.Cursor].ID
}

func (m EditModel) View() string {
	switch m.mode {
	case modePicker:
		return m.viewPicker()
	case modeProps, modeInput:
		return m.viewProps()
	}
	return m.viewList()
}

func (m EditModel) viewList() string {
	var b strings.Builder
	d := m.Session.Dashboard()

	title := d.Title
	if m.Dirty {
		title += " *"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  J/K move  a add  y duplicate  d delete  ⏎ edit  w save  q quit"))
	b.WriteString("\n\n")

	if len(d.Components) == 0 {
		b.WriteString(listDimStyle.Render("  No components yet. Press a to add one."))
		b.WriteString("\n")
	} else {
		end := min(m.Offset+m.Height, len(d.Components))
		rows := [][]string{}
		for i := m.Offset; i < end; i++ {
			n := d.Components[i]
			cursor := "  "
			if i == m.Cursor {
				cursor = "▸ "
			}
			rows = append(rows, []string{cursor, strconv.Itoa(i + 1), n.ID, m.typeName(n), summary(n)})
		}

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(styleBorder).
			Headers("", "#", "ID", "Type", "Summary").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == -1 {
					return styleHeader
				}
				idx := m.Offset + row
				if idx == m.Cursor {
					return listSelectedStyle
				}
				if _, ok := m.Session.Registry().Lookup(d.Components[idx].Type); !ok {
					return listDimStyle
				}
				return listNormalStyle
			})
		b.WriteString(t.Render())
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] · %d nodes", m.Cursor+1, len(d.Components), ir.Count(d.Components))))
		b.WriteString("\n")
	}

	if m.Status != "" {
		b.WriteString("\n" + StyleSuccess.Render(m.Status) + "\n")
	}
	return b.String()
}

func (m EditModel) viewPicker() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Add Component"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ add  esc back"))
	b.WriteString("\n\n")

	for i, def := range m.types {
		cursor := "  "
		style := listNormalStyle
		if i == m.pick {
			cursor = "▸ "
			style = listSelectedStyle
		}
		line := fmt.Sprintf("%s%-12s %-8s %s", cursor, def.Name, def.Category, listDimStyle.Render(def.Description))
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (m EditModel) viewProps() string {
	var b strings.Builder
	n, ok := m.Session.Selected()
	if !ok {
		return ""
	}
	props, _ := m.Session.Editable(n.ID)

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Edit %s", n.ID)))
	b.WriteString("\n")
	if m.mode == modeInput {
		b.WriteString(listDimStyle.Render("type a value  ⏎ apply  esc cancel"))
	} else {
		b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ edit/cycle  esc back"))
	}
	b.WriteString("\n\n")

	for i, p := range props {
		cursor := "  "
		style := listNormalStyle
		if i == m.propCursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		value := formatValue(n.Props, p.Key)
		if i == m.propCursor && m.mode == modeInput {
			value = m.input + "█"
		}
		line := fmt.Sprintf("%s%-14s %s", cursor, p.Label, value)
		if p.Widget == registry.WidgetSelect {
			line += listDimStyle.Render("  (" + strings.Join(p.Options, " | ") + ")")
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if m.Status != "" {
		b.WriteString("\n" + StyleSuccess.Render(m.Status) + "\n")
	}
	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func (m EditModel) typeName(n *ir.Node) string {
	def, ok := m.Session.Registry().Lookup(n.Type)
	if !ok {
		return n.Type + " (unknown)"
	}
	if len(n.Children) > 0 {
		return fmt.Sprintf("%s (+%d)", def.Name, len(n.Children))
	}
	return def.Name
}

// summary returns the first human-readable property of n.
func summary(n *ir.Node) string {
	for _, k := range summaryKeys {
		if s := n.Props.String(k, ""); s != "" {
			if r := []rune(s); len(r) > 40 {
				return string(r[:39]) + "…"
			}
			return s
		}
	}
	return "—"
}

func formatValue(p ir.Props, key string) string {
	v, ok := p.Get(key)
	if !ok {
		return "—"
	}
	switch v.(type) {
	case string, float64, bool:
		return p.String(key, "")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// nextOption returns the option after cur, wrapping around.
func nextOption(options []string, cur string) string {
	if len(options) == 0 {
		return cur
	}
	for i, o := range options {
		if o == cur {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}
