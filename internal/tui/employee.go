package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"swiftride/internal/client"
	"swiftride/internal/dispatch"
	"swiftride/internal/domain"
	"swiftride/internal/triplist"
)

type employeeTab int

const (
	tabComplaints employeeTab = iota
	tabFleet
	tabNewDriver
	tabNewCar
)

type fleetSection int

const (
	sectionAllCars fleetSection = iota
	sectionAvailableCars
	sectionCarlessDrivers
)

// employeeModel is the back-office dashboard: complaint handling, the fleet
// view, and driver/car registration.
type employeeModel struct {
	api   *client.Client
	actor domain.Actor

	reconciler *triplist.Reconciler
	dispatcher *dispatch.Dispatcher
	recorder   *noticeRecorder

	tab employeeTab

	bucket       int // 0 NEW, 1 OPENED, 2 CLOSED
	bucketCursor map[int]int

	section       fleetSection
	sectionCursor map[fleetSection]int
	assigning     bool
	assignCarID   int64

	driverInputs []textinput.Model
	carInputs    []textinput.Model
	formFocus    int

	notice    string
	noticeErr bool
	busy      bool
}

func newEmployeeModel(api *client.Client, actor domain.Actor) *employeeModel {
	m := &employeeModel{
		api:           api,
		actor:         actor,
		reconciler:    triplist.New(api, api, api),
		recorder:      &noticeRecorder{},
		bucketCursor:  make(map[int]int),
		sectionCursor: make(map[fleetSection]int),
	}
	m.dispatcher = dispatch.New(api, m.recorder, nil, nil)

	driverPlaceholders := []string{"first name", "last name", "email", "password", "phone", "license number"}
	m.driverInputs = make([]textinput.Model, len(driverPlaceholders))
	for i, p := range driverPlaceholders {
		in := textinput.New()
		in.Placeholder = p
		in.CharLimit = 100
		if p == "password" {
			in.EchoMode = textinput.EchoPassword
		}
		m.driverInputs[i] = in
	}

	carPlaceholders := []string{"model", "license plate", "color"}
	m.carInputs = make([]textinput.Model, len(carPlaceholders))
	for i, p := range carPlaceholders {
		in := textinput.New()
		in.Placeholder = p
		in.CharLimit = 60
		m.carInputs[i] = in
	}

	return m
}

func (m *employeeModel) init() tea.Cmd {
	return tea.Batch(m.loadComplaintsCmd(), m.loadFleetCmd())
}

func (m *employeeModel) loadComplaintsCmd() tea.Cmd {
	r := m.reconciler
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		buckets, err := r.LoadComplaints(ctx)
		return complaintsMsg{buckets: buckets, err: err}
	}
}

func (m *employeeModel) loadFleetCmd() tea.Cmd {
	r := m.reconciler
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		view, err := r.LoadFleet(ctx)
		return fleetMsg{view: view, err: err}
	}
}

func (m *employeeModel) dispatchCmd(action dispatch.Action) tea.Cmd {
	d, rec := m.dispatcher, m.recorder
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		result, err := d.Dispatch(ctx, action)
		notice, isErr := rec.take()
		return actionMsg{notice: notice, isErr: isErr, result: result, err: err}
	}
}

func (m *employeeModel) registerDriverCmd() tea.Cmd {
	api := m.api
	req := client.RegisterDriverRequest{
		FirstName:     strings.TrimSpace(m.driverInputs[0].Value()),
		LastName:      strings.TrimSpace(m.driverInputs[1].Value()),
		Email:         strings.TrimSpace(m.driverInputs[2].Value()),
		Password:      m.driverInputs[3].Value(),
		Phone:         strings.TrimSpace(m.driverInputs[4].Value()),
		LicenseNumber: strings.TrimSpace(m.driverInputs[5].Value()),
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		driver, err := api.RegisterDriver(ctx, req)
		if err != nil {
			return registerMsg{err: err}
		}
		return registerMsg{notice: fmt.Sprintf("Driver %s %s registered", driver.FirstName, driver.LastName)}
	}
}

func (m *employeeModel) registerCarCmd() tea.Cmd {
	api := m.api
	req := client.RegisterCarRequest{
		Model:        strings.TrimSpace(m.carInputs[0].Value()),
		LicensePlate: strings.TrimSpace(m.carInputs[1].Value()),
		Color:        strings.TrimSpace(m.carInputs[2].Value()),
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		car, err := api.RegisterCar(ctx, req)
		if err != nil {
			return registerMsg{err: err}
		}
		return registerMsg{notice: fmt.Sprintf("Car %s registered", car.LicensePlate)}
	}
}

func (m *employeeModel) assignCarCmd(carID, driverID int64) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := api.AssignCar(ctx, carID, driverID); err != nil {
			return registerMsg{err: err}
		}
		return registerMsg{notice: "Car assigned"}
	}
}

func (m *employeeModel) deleteCarCmd(carID int64) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := api.DeleteCar(ctx, carID); err != nil {
			return registerMsg{err: err}
		}
		return registerMsg{notice: "Car deleted"}
	}
}

func (m *employeeModel) update(msg tea.Msg, root *Model) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case complaintsMsg, fleetMsg:
		if err := reconcileErr(msg); err != nil {
			m.notice, m.noticeErr = client.Message(err), true
		}
		return *root, nil

	case actionMsg:
		m.busy = false
		if msg.notice != "" {
			m.notice, m.noticeErr = msg.notice, msg.isErr
		}
		if msg.err == nil {
			return *root, m.loadComplaintsCmd()
		}
		return *root, nil

	case registerMsg:
		m.busy = false
		if msg.err != nil {
			m.notice, m.noticeErr = client.Message(msg.err), true
			return *root, nil
		}
		m.notice, m.noticeErr = msg.notice, false
		m.clearForms()
		return *root, m.loadFleetCmd()

	case tea.KeyMsg:
		return m.onKey(msg, root)
	}
	return *root, nil
}

func reconcileErr(msg tea.Msg) error {
	switch msg := msg.(type) {
	case complaintsMsg:
		return msg.err
	case fleetMsg:
		return msg.err
	}
	return nil
}

func (m *employeeModel) onKey(key tea.KeyMsg, root *Model) (tea.Model, tea.Cmd) {
	if m.busy {
		return *root, nil
	}

	switch key.String() {
	case "ctrl+l":
		root.logout()
		return *root, nil
	case "[":
		if m.tab > tabComplaints {
			m.tab--
			m.notice = ""
			m.formFocus = 0
			m.focusForm()
		}
		return *root, nil
	case "]":
		if m.tab < tabNewCar {
			m.tab++
			m.notice = ""
			m.formFocus = 0
			m.focusForm()
		}
		return *root, nil
	}

	switch m.tab {
	case tabComplaints:
		return m.onComplaintsKey(key, root)
	case tabFleet:
		return m.onFleetKey(key, root)
	default:
		return m.onFormKey(key, root)
	}
}

func (m *employeeModel) onComplaintsKey(key tea.KeyMsg, root *Model) (tea.Model, tea.Cmd) {
	items := m.bucketItems()
	cursor := m.bucketCursor[m.bucket]

	switch key.String() {
	case "left", "h":
		if m.bucket > 0 {
			m.bucket--
		}
	case "right", "l":
		if m.bucket < 2 {
			m.bucket++
		}
	case "up", "k":
		if cursor > 0 {
			m.bucketCursor[m.bucket] = cursor - 1
		}
	case "down", "j":
		if cursor < len(items)-1 {
			m.bucketCursor[m.bucket] = cursor + 1
		}
	case "r":
		return *root, m.loadComplaintsCmd()
	case "enter":
		if cursor >= len(items) {
			return *root, nil
		}
		complaint := items[cursor]
		var target domain.ComplaintStatus
		switch complaint.Status {
		case domain.ComplaintStatusNew:
			target = domain.ComplaintStatusOpened
		case domain.ComplaintStatusOpened:
			target = domain.ComplaintStatusClosed
		default:
			return *root, nil
		}
		m.busy = true
		return *root, m.dispatchCmd(dispatch.SetComplaintStatus{
			ComplaintID: complaint.ID,
			Current:     complaint.Status,
			Target:      target,
		})
	}
	return *root, nil
}

func (m *employeeModel) onFleetKey(key tea.KeyMsg, root *Model) (tea.Model, tea.Cmd) {
	view := m.reconciler.Fleet()
	cursor := m.sectionCursor[m.section]

	switch key.String() {
	case "left", "h":
		if m.section > sectionAllCars {
			m.section--
		}
	case "right", "l":
		if m.section < sectionCarlessDrivers {
			m.section++
		}
	case "up", "k":
		if cursor > 0 {
			m.sectionCursor[m.section] = cursor - 1
		}
	case "down", "j":
		if cursor < m.sectionLen(view)-1 {
			m.sectionCursor[m.section] = cursor + 1
		}
	case "r":
		return *root, m.loadFleetCmd()
	case "esc":
		m.assigning = false
	case "d":
		if m.section == sectionAllCars && cursor < len(view.AllCars) {
			m.busy = true
			return *root, m.deleteCarCmd(view.AllCars[cursor].ID)
		}
	case "a":
		if m.section == sectionAvailableCars && cursor < len(view.AvailableCars) {
			m.assigning = true
			m.assignCarID = view.AvailableCars[cursor].ID
			m.section = sectionCarlessDrivers
		}
	case "enter":
		if m.assigning && m.section == sectionCarlessDrivers && cursor < len(view.DriversWithoutCar) {
			m.assigning = false
			m.busy = true
			return *root, m.assignCarCmd(m.assignCarID, view.DriversWithoutCar[cursor].ID)
		}
	}
	return *root, nil
}

func (m *employeeModel) onFormKey(key tea.KeyMsg, root *Model) (tea.Model, tea.Cmd) {
	inputs := m.formInputs()

	switch key.String() {
	case "tab", "down":
		m.formFocus = (m.formFocus + 1) % len(inputs)
		m.focusForm()
		return *root, nil
	case "shift+tab", "up":
		m.formFocus = (m.formFocus + len(inputs) - 1) % len(inputs)
		m.focusForm()
		return *root, nil
	case "enter":
		if m.formFocus == len(inputs)-1 {
			m.busy = true
			if m.tab == tabNewDriver {
				return *root, m.registerDriverCmd()
			}
			return *root, m.registerCarCmd()
		}
		m.formFocus++
		m.focusForm()
		return *root, nil
	}

	var cmd tea.Cmd
	inputs[m.formFocus], cmd = inputs[m.formFocus].Update(key)
	return *root, cmd
}

func (m *employeeModel) formInputs() []textinput.Model {
	if m.tab == tabNewDriver {
		return m.driverInputs
	}
	return m.carInputs
}

func (m *employeeModel) focusForm() {
	inputs := m.formInputs()
	for i := range inputs {
		if i == m.formFocus {
			inputs[i].Focus()
		} else {
			inputs[i].Blur()
		}
	}
}

func (m *employeeModel) clearForms() {
	for i := range m.driverInputs {
		m.driverInputs[i].SetValue("")
	}
	for i := range m.carInputs {
		m.carInputs[i].SetValue("")
	}
	m.formFocus = 0
	m.focusForm()
}

func (m *employeeModel) bucketItems() []domain.Complaint {
	buckets := m.reconciler.Complaints()
	switch m.bucket {
	case 0:
		return buckets.New
	case 1:
		return buckets.Opened
	default:
		return buckets.Closed
	}
}

func (m *employeeModel) sectionLen(view triplist.FleetView) int {
	switch m.section {
	case sectionAllCars:
		return len(view.AllCars)
	case sectionAvailableCars:
		return len(view.AvailableCars)
	default:
		return len(view.DriversWithoutCar)
	}
}

func (m *employeeModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("SwiftRide · "+m.actor.Name) + "\n\n")

	tabs := []string{"Complaints", "Fleet", "New driver", "New car"}
	var rendered []string
	for i, t := range tabs {
		if employeeTab(i) == m.tab {
			rendered = append(rendered, activeTabStyle.Render(t))
		} else {
			rendered = append(rendered, tabStyle.Render(t))
		}
	}
	b.WriteString(strings.Join(rendered, " ") + "\n\n")

	switch m.tab {
	case tabComplaints:
		b.WriteString(m.viewComplaints())
	case tabFleet:
		b.WriteString(m.viewFleet())
	default:
		b.WriteString(m.viewForm())
	}

	if m.notice != "" {
		style := successStyle
		if m.noticeErr {
			style = errorStyle
		}
		b.WriteString("\n\n" + style.Render(m.notice))
	}
	return b.String()
}

func (m *employeeModel) viewComplaints() string {
	var b strings.Builder

	names := []string{"NEW", "OPENED", "CLOSED"}
	var headers []string
	for i, name := range names {
		if i == m.bucket {
			headers = append(headers, activeTabStyle.Render(name))
		} else {
			headers = append(headers, tabStyle.Render(name))
		}
	}
	b.WriteString(strings.Join(headers, " ") + "\n\n")

	items := m.bucketItems()
	if len(items) == 0 {
		b.WriteString(faintStyle.Render("No complaints in this state.") + "\n")
	} else {
		cursor := m.bucketCursor[m.bucket]
		for i, c := range items {
			line := fmt.Sprintf("#%d trip %d · %s", c.ID, c.TripID, c.Message)
			if i == cursor {
				line = selectedStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			b.WriteString(line + "\n")
		}
	}

	b.WriteString("\n" + helpStyle.Render("←/→ bucket · enter advance · r refresh · [ ] tabs · ctrl+l logout"))
	return b.String()
}

func (m *employeeModel) viewFleet() string {
	var b strings.Builder
	view := m.reconciler.Fleet()

	names := []string{"All cars", "Available", "Drivers w/o car"}
	var headers []string
	for i, name := range names {
		if fleetSection(i) == m.section {
			headers = append(headers, activeTabStyle.Render(name))
		} else {
			headers = append(headers, tabStyle.Render(name))
		}
	}
	b.WriteString(strings.Join(headers, " ") + "\n\n")

	cursor := m.sectionCursor[m.section]
	write := func(i int, line string) {
		if i == cursor {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	switch m.section {
	case sectionAllCars:
		for i, car := range view.AllCars {
			driver := "unassigned"
			if car.Driver != nil {
				driver = car.Driver.FirstName + " " + car.Driver.LastName
			}
			write(i, fmt.Sprintf("#%d %s · %s · %s · %s", car.ID, car.Model, car.LicensePlate, car.Color, driver))
		}
	case sectionAvailableCars:
		for i, car := range view.AvailableCars {
			write(i, fmt.Sprintf("#%d %s · %s · %s", car.ID, car.Model, car.LicensePlate, car.Color))
		}
	default:
		for i, d := range view.DriversWithoutCar {
			write(i, fmt.Sprintf("#%d %s %s · %s", d.ID, d.FirstName, d.LastName, d.Email))
		}
	}

	if m.sectionLen(view) == 0 {
		b.WriteString(faintStyle.Render("Empty.") + "\n")
	}

	help := "←/→ section · d delete car · a assign car · r refresh"
	if m.assigning {
		help = "enter assign to selected driver · esc abort"
	}
	b.WriteString("\n" + helpStyle.Render(help+" · [ ] tabs · ctrl+l logout"))
	return b.String()
}

func (m *employeeModel) viewForm() string {
	var b strings.Builder

	var labels []string
	if m.tab == tabNewDriver {
		labels = []string{"First name", "Last name", "Email", "Password", "Phone", "License number"}
	} else {
		labels = []string{"Model", "License plate", "Color"}
	}

	inputs := m.formInputs()
	for i := range inputs {
		b.WriteString(labelStyle.Render(labels[i]) + "\n" + inputs[i].View() + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("tab next field · enter on last field submits · [ ] tabs · ctrl+l logout"))
	return b.String()
}
