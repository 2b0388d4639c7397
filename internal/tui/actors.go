package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/boomerbill/internal/store"
)

type actorsModel struct {
	store  *store.Store
	width  int
	height int

	actors     []store.Actor
	categories []store.Category

	cursor         int
	categoryCursor int
	viewingCats    bool // true = category list, false = actor list

	formActive bool
	form       *huh.Form
	formType   string // "actor", "category"

	// Form field pointer (survives value copies)
	formName *string
}

func newActorsModel(s *store.Store) actorsModel {
	name := ""
	return actorsModel{
		store:    s,
		formName: &name,
	}
}

func (m *actorsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type actorsDataMsg struct {
	actors     []store.Actor
	categories []store.Category
}

func (m actorsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return actorsDataMsg{
			actors:     m.store.Actors(),
			categories: m.store.Categories(),
		}
	}
}

func (m actorsModel) update(msg tea.Msg) (actorsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case actorsDataMsg:
		m.actors = msg.actors
		m.categories = msg.categories
		if m.cursor >= len(m.actors) {
			m.cursor = max(0, len(m.actors)-1)
		}
		if m.categoryCursor >= len(m.categories) {
			m.categoryCursor = max(0, len(m.categories)-1)
		}
		return m, nil

	case tea.KeyMsg:
		if m.viewingCats {
			return m.updateCategoryList(msg)
		}
		return m.updateActorList(msg)
	}
	return m, nil
}

func (m actorsModel) updateActorList(msg tea.KeyMsg) (actorsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.actors)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(m.actors) > 0 {
			a := m.actors[m.cursor]
			m.store.SelectActor(a.ID)
			return m, func() tea.Msg {
				return statusMsg{text: "Selected " + a.Name}
			}
		}
	case key.Matches(msg, keys.Right):
		m.viewingCats = true
		return m, nil
	case key.Matches(msg, keys.New):
		return m.showNameForm("actor")
	case key.Matches(msg, keys.Delete):
		if len(m.actors) > 0 {
			m.store.RemoveActor(m.actors[m.cursor].ID)
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m actorsModel) updateCategoryList(msg tea.KeyMsg) (actorsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Left):
		m.viewingCats = false
		return m, nil
	case key.Matches(msg, keys.Up):
		if m.categoryCursor > 0 {
			m.categoryCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.categoryCursor < len(m.categories)-1 {
			m.categoryCursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(m.categories) > 0 {
			c := m.categories[m.categoryCursor]
			m.store.SelectCategory(c.ID)
			return m, func() tea.Msg {
				return statusMsg{text: "Selected " + c.Name}
			}
		}
	case key.Matches(msg, keys.New):
		return m.showNameForm("category")
	case key.Matches(msg, keys.Delete):
		if len(m.categories) > 0 {
			c := m.categories[m.categoryCursor]
			if err := m.store.RemoveCategory(c.ID); err != nil {
				return m, func() tea.Msg {
					return statusMsg{text: "Default categories cannot be removed", isError: true}
				}
			}
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m actorsModel) showNameForm(formType string) (actorsModel, tea.Cmd) {
	*m.formName = ""
	m.formType = formType

	title := "Actor Name"
	if formType == "category" {
		title = "Category Name"
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title(title).Value(m.formName),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m actorsModel) updateForm(msg tea.Msg) (actorsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		switch m.formType {
		case "actor":
			m.store.AddActor(*m.formName)
		case "category":
			m.store.AddCategory(*m.formName)
		}
		return m, m.refresh()
	}

	return m, cmd
}

func (m actorsModel) view() string {
	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Actor")
		if m.formType == "category" {
			title = titleStyle.Render("New Category")
		}
		formView := m.form.View()
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", formView)
		return panelStyle.Width(m.width - 4).Render(content)
	}

	if m.viewingCats {
		return m.renderCategoryList()
	}
	return m.renderActorList()
}

func (m actorsModel) renderActorList() string {
	w := m.width - 4
	title := titleStyle.Render("Actors")

	if len(m.actors) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("Nobody yet. Press n to add the first time thief."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	selected := m.store.SelectedActorID()
	for i, a := range m.actors {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		mark := "  "
		if a.ID == selected {
			mark = successStyle.Render("✓ ")
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s", cursor, a.Name))+" "+mark)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  d: remove  enter: select  →: categories"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m actorsModel) renderCategoryList() string {
	w := m.width - 4
	title := titleStyle.Render("Categories")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	selected := m.store.SelectedCategoryID()
	for i, c := range m.categories {
		cursor := "  "
		style := normalItemStyle
		if i == m.categoryCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		mark := "  "
		if c.ID == selected {
			mark = successStyle.Render("✓ ")
		}
		label := c.Name
		if c.IsDefault {
			label += mutedStyle.Render(" (built-in)")
		}
		rows = append(rows, style.Render(cursor+label)+" "+mark)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  d: remove  enter: select  ←/esc: actors"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
