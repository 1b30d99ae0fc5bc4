// Package tui is the SwiftRide terminal portal: one binary serving the
// customer, driver, and employee dashboards over the REST backend.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"swiftride/internal/client"
	"swiftride/internal/domain"
	"swiftride/internal/geocode"
)

const requestTimeout = 15 * time.Second

type sessionState int

const (
	stateRoleSelect sessionState = iota
	stateLogin
	stateLoggingIn
	stateCustomer
	stateDriver
	stateEmployee
)

var roles = []domain.Role{domain.RoleCustomer, domain.RoleDriver, domain.RoleEmployee}

// Model is the root portal model. It owns the session (role selection and
// login) and hands off to one of the three dashboards after login.
type Model struct {
	api      *client.Client
	geocoder *geocode.Client

	state sessionState
	width int

	roleCursor int
	role       domain.Role

	emailInput    textinput.Model
	passwordInput textinput.Model
	loginFocus    int
	loginErr      string

	spinner spinner.Model

	customer *customerModel
	driver   *driverModel
	employee *employeeModel
}

// New creates the portal model.
func New(api *client.Client, geocoder *geocode.Client) Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 100
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 100
	password.EchoMode = textinput.EchoPassword

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("55"))

	return Model{
		api:           api,
		geocoder:      geocoder,
		state:         stateRoleSelect,
		emailInput:    email,
		passwordInput: password,
		spinner:       sp,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loginMsg:
		if msg.err != nil {
			m.state = stateLogin
			m.loginErr = client.Message(msg.err)
			return m, nil
		}
		return m.enterDashboard(msg.actor)
	}

	switch m.state {
	case stateRoleSelect:
		return m.updateRoleSelect(msg)
	case stateLogin, stateLoggingIn:
		return m.updateLogin(msg)
	case stateCustomer:
		return m.customer.update(msg, &m)
	case stateDriver:
		return m.driver.update(msg, &m)
	case stateEmployee:
		return m.employee.update(msg, &m)
	}
	return m, nil
}

func (m Model) updateRoleSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.roleCursor > 0 {
			m.roleCursor--
		}
	case "down", "j":
		if m.roleCursor < len(roles)-1 {
			m.roleCursor++
		}
	case "enter":
		m.role = roles[m.roleCursor]
		m.state = stateLogin
		m.loginErr = ""
		m.emailInput.SetValue("")
		m.passwordInput.SetValue("")
		m.loginFocus = 0
		m.emailInput.Focus()
		m.passwordInput.Blur()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.state == stateLoggingIn {
		return m, nil
	}

	switch key.String() {
	case "esc":
		m.state = stateRoleSelect
		return m, nil
	case "tab", "shift+tab", "up", "down":
		m.loginFocus = (m.loginFocus + 1) % 2
		if m.loginFocus == 0 {
			m.emailInput.Focus()
			m.passwordInput.Blur()
		} else {
			m.emailInput.Blur()
			m.passwordInput.Focus()
		}
		return m, nil
	case "enter":
		m.state = stateLoggingIn
		m.loginErr = ""
		return m, tea.Batch(m.loginCmd(), m.spinner.Tick)
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.emailInput, cmd = m.emailInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m Model) loginCmd() tea.Cmd {
	role := m.role
	creds := client.Credentials{
		Email:    strings.TrimSpace(m.emailInput.Value()),
		Password: m.passwordInput.Value(),
	}
	api := m.api

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		switch role {
		case domain.RoleCustomer:
			customer, err := api.CustomerLogin(ctx, creds)
			if err != nil {
				return loginMsg{err: err}
			}
			return loginMsg{actor: domain.Actor{ID: customer.ID, Role: role, Name: customer.FirstName + " " + customer.LastName}}
		case domain.RoleDriver:
			driver, err := api.DriverLogin(ctx, creds)
			if err != nil {
				return loginMsg{err: err}
			}
			return loginMsg{actor: domain.Actor{ID: driver.ID, Role: role, Name: driver.FirstName + " " + driver.LastName}}
		default:
			employee, err := api.EmployeeLogin(ctx, creds)
			if err != nil {
				return loginMsg{err: err}
			}
			return loginMsg{actor: domain.Actor{ID: employee.ID, Role: role, Name: employee.FirstName + " " + employee.LastName}}
		}
	}
}

func (m Model) enterDashboard(actor domain.Actor) (tea.Model, tea.Cmd) {
	switch actor.Role {
	case domain.RoleCustomer:
		m.customer = newCustomerModel(m.api, m.geocoder, actor)
		m.state = stateCustomer
		return m, m.customer.init()
	case domain.RoleDriver:
		m.driver = newDriverModel(m.api, actor)
		m.state = stateDriver
		return m, m.driver.init()
	default:
		m.employee = newEmployeeModel(m.api, actor)
		m.state = stateEmployee
		return m, m.employee.init()
	}
}

// logout drops the dashboard and returns to role selection.
func (m *Model) logout() {
	m.customer = nil
	m.driver = nil
	m.employee = nil
	m.state = stateRoleSelect
}

func (m Model) View() string {
	switch m.state {
	case stateRoleSelect:
		return m.viewRoleSelect()
	case stateLogin, stateLoggingIn:
		return m.viewLogin()
	case stateCustomer:
		return m.customer.view()
	case stateDriver:
		return m.driver.view()
	case stateEmployee:
		return m.employee.view()
	}
	return ""
}

func roleLabel(role domain.Role) string {
	switch role {
	case domain.RoleCustomer:
		return "Customer"
	case domain.RoleDriver:
		return "Driver"
	default:
		return "Employee"
	}
}

func (m Model) viewRoleSelect() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("SwiftRide"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Sign in as"))
	b.WriteString("\n\n")

	for i, role := range roles {
		line := "  " + roleLabel(role)
		if i == m.roleCursor {
			line = selectedStyle.Render("> " + roleLabel(role))
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("↑/↓ select · enter continue · q quit"))
	return b.String()
}

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("SwiftRide · %s login", roleLabel(m.role))))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Email") + "\n" + m.emailInput.View() + "\n\n")
	b.WriteString(labelStyle.Render("Password") + "\n" + m.passwordInput.View() + "\n")

	if m.state == stateLoggingIn {
		b.WriteString("\n" + m.spinner.View() + " signing in...\n")
	}
	if m.loginErr != "" {
		b.WriteString("\n" + errorStyle.Render(m.loginErr) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("tab switch field · enter sign in · esc back"))
	return b.String()
}
