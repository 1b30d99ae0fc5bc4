package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"swiftride/internal/booking"
	"swiftride/internal/client"
	"swiftride/internal/dispatch"
	"swiftride/internal/domain"
	"swiftride/internal/geocode"
	"swiftride/internal/triplist"
)

type customerTab int

const (
	tabBook customerTab = iota
	tabActive
	tabHistory
)

type customerMode int

const (
	modeBrowse customerMode = iota
	modeGate
	modeConfirmCancel
	modeComplaint
)

// Booking form focus positions. The three text fields come first so their
// indices line up with formFields.
const (
	focusPickup = iota
	focusDestination
	focusDate
	focusPayment
	focusPremium
	focusChildSeat
	focusSubmit
	focusCount
)

var formFields = []booking.Field{booking.FieldPickup, booking.FieldDestination, booking.FieldDate}

var paymentMethods = []domain.PaymentMethod{
	domain.PaymentMethodCash,
	domain.PaymentMethodWallet,
	domain.PaymentMethodCreditCard,
}

// customerModel is the customer dashboard: the booking form, the payment
// gate, and the active/history trip tabs.
type customerModel struct {
	api   *client.Client
	actor domain.Actor

	builder    *booking.Builder
	reconciler *triplist.Reconciler
	dispatcher *dispatch.Dispatcher
	recorder   *noticeRecorder

	tab  customerTab
	mode customerMode

	inputs      [3]textinput.Model
	focus       int
	payCursor   int
	suggestions []geocode.Suggestion
	sugCursor   int
	formErr     string

	gateInputs []textinput.Model
	gateFields []booking.CredentialField
	gateFocus  int
	gateErr    string

	tripCursor map[customerTab]int
	cancelTrip int64

	complaintInput textinput.Model
	complaintTrip  int64
	complaintErr   string

	notice    string
	noticeErr bool
	busy      bool
}

func newCustomerModel(api *client.Client, geocoder *geocode.Client, actor domain.Actor) *customerModel {
	m := &customerModel{
		api:        api,
		actor:      actor,
		builder:    booking.NewBuilder(api, geocoder),
		reconciler: triplist.New(api, api, api),
		recorder:   &noticeRecorder{},
		tripCursor: make(map[customerTab]int),
		sugCursor:  -1,
	}
	m.dispatcher = dispatch.New(api, m.recorder, nil, nil)

	placeholders := [3]string{"pickup location", "destination", "2026-08-29T15:04"}
	for i := range m.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 120
		m.inputs[i] = in
	}
	m.inputs[0].Focus()

	m.complaintInput = textinput.New()
	m.complaintInput.Placeholder = "describe the problem"
	m.complaintInput.CharLimit = 500

	return m
}

func (m *customerModel) init() tea.Cmd {
	return tea.Batch(
		m.loadTripsCmd(triplist.ScopeCustomerActive),
		m.loadTripsCmd(triplist.ScopeCustomerHistory),
	)
}

func (m *customerModel) loadTripsCmd(scope triplist.Scope) tea.Cmd {
	r, id := m.reconciler, m.actor.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		trips, err := r.Load(ctx, scope, id)
		return tripsMsg{scope: scope, trips: trips, err: err}
	}
}

func (m *customerModel) suggestCmd(field booking.Field) tea.Cmd {
	b := m.builder
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return suggestionsMsg{field: field, items: b.Suggest(ctx, field)}
	}
}

func (m *customerModel) submitCmd() tea.Cmd {
	b, id := m.builder, m.actor.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		outcome, err := b.Submit(ctx, id)
		return bookingMsg{outcome: outcome, err: err}
	}
}

func (m *customerModel) confirmPaymentCmd() tea.Cmd {
	b := m.builder
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		outcome, err := b.ConfirmPayment(ctx)
		return bookingMsg{outcome: outcome, err: err}
	}
}

func (m *customerModel) dispatchCmd(action dispatch.Action) tea.Cmd {
	d, rec := m.dispatcher, m.recorder
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		result, err := d.Dispatch(ctx, action)
		notice, isErr := rec.take()
		return actionMsg{notice: notice, isErr: isErr, result: result, err: err}
	}
}

func (m *customerModel) update(msg tea.Msg, root *Model) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tripsMsg:
		if msg.err != nil {
			m.notice, m.noticeErr = client.Message(msg.err), true
		}
		return *root, nil

	case suggestionsMsg:
		// A slow lookup can resolve after focus moved on; only results for
		// the currently focused field are shown.
		if m.focus <= focusDestination && msg.field == formFields[m.focus] {
			m.suggestions = msg.items
			m.sugCursor = -1
		}
		return *root, nil

	case bookingMsg:
		m.busy = false
		return m.onBooking(msg, root)

	case actionMsg:
		m.busy = false
		if msg.notice != "" {
			m.notice, m.noticeErr = msg.notice, msg.isErr
		}
		if verr, ok := msg.err.(*domain.ValidationError); ok {
			m.complaintErr = verr.Reason
			return *root, nil
		}
		m.mode = modeBrowse
		if msg.err == nil {
			return *root, m.init()
		}
		return *root, nil

	case tea.KeyMsg:
		return m.onKey(msg, root)
	}
	return *root, nil
}

func (m *customerModel) onBooking(msg bookingMsg, root *Model) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if verr, ok := msg.err.(*domain.ValidationError); ok {
			m.formErr = verr.Reason
			return *root, nil
		}
		if m.mode == modeGate {
			m.gateErr = client.Message(msg.err)
		} else {
			m.notice, m.noticeErr = client.Message(msg.err), true
		}
		return *root, nil
	}

	if msg.outcome.GateOpened {
		m.openGateForm()
		return *root, nil
	}

	// Booked. The form reset already happened inside the builder.
	m.mode = modeBrowse
	m.formErr, m.gateErr = "", ""
	m.syncFormInputs()
	m.notice, m.noticeErr = fmt.Sprintf("Trip booked (#%d)", msg.outcome.Trip.ID), false
	m.tab = tabActive
	return *root, m.loadTripsCmd(triplist.ScopeCustomerActive)
}

func (m *customerModel) onKey(key tea.KeyMsg, root *Model) (tea.Model, tea.Cmd) {
	if m.busy {
		return *root, nil
	}

	switch m.mode {
	case modeGate:
		return m.onGateKey(key, root)
	case modeConfirmCancel:
		switch key.String() {
		case "y", "Y":
			m.mode = modeBrowse
			m.busy = true
			return *root, m.dispatchCmd(dispatch.CancelByCustomer{CustomerID: m.actor.ID, TripID: m.cancelTrip})
		case "n", "N", "esc":
			m.mode = modeBrowse
		}
		return *root, nil
	case modeComplaint:
		switch key.String() {
		case "esc":
			m.mode = modeBrowse
			m.complaintErr = ""
			return *root, nil
		case "enter":
			m.busy = true
			return *root, m.dispatchCmd(dispatch.FileComplaint{
				CustomerID: m.actor.ID,
				TripID:     m.complaintTrip,
				Message:    strings.TrimSpace(m.complaintInput.Value()),
			})
		}
		var cmd tea.Cmd
		m.complaintInput, cmd = m.complaintInput.Update(key)
		return *root, cmd
	}

	switch key.String() {
	case "ctrl+l":
		root.logout()
		return *root, nil
	case "[", "]":
		if key.String() == "[" && m.tab > tabBook {
			m.tab--
		}
		if key.String() == "]" && m.tab < tabHistory {
			m.tab++
		}
		m.notice = ""
		return *root, nil
	}

	if m.tab == tabBook {
		return m.onFormKey(key, root)
	}
	return m.onListKey(key, root)
}

func (m *customerModel) onFormKey(key tea.KeyMsg, root *Model) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "tab", "down":
		if m.sugCursor >= 0 && m.sugCursor < len(m.suggestions)-1 && m.focus <= focusDestination {
			m.sugCursor++
			return *root, nil
		}
		m.setFocus((m.focus + 1) % focusCount)
		return *root, nil
	case "shift+tab", "up":
		if m.sugCursor > 0 && m.focus <= focusDestination {
			m.sugCursor--
			return *root, nil
		}
		m.setFocus((m.focus + focusCount - 1) % focusCount)
		return *root, nil
	case "ctrl+n":
		if len(m.suggestions) > 0 && m.focus <= focusDestination {
			m.sugCursor = (m.sugCursor + 1) % len(m.suggestions)
		}
		return *root, nil
	case "left", "right":
		if m.focus == focusPayment {
			if key.String() == "left" {
				m.payCursor = (m.payCursor + len(paymentMethods) - 1) % len(paymentMethods)
			} else {
				m.payCursor = (m.payCursor + 1) % len(paymentMethods)
			}
			m.builder.SetPayment(paymentMethods[m.payCursor])
			return *root, nil
		}
	case " ":
		draft := m.builder.Draft()
		switch m.focus {
		case focusPremium:
			m.builder.SetAddOns(!draft.IsPremium, draft.HasChildSeat)
			return *root, nil
		case focusChildSeat:
			m.builder.SetAddOns(draft.IsPremium, !draft.HasChildSeat)
			return *root, nil
		}
	case "enter":
		if m.sugCursor >= 0 && m.sugCursor < len(m.suggestions) && m.focus <= focusDestination {
			m.builder.Select(formFields[m.focus], m.suggestions[m.sugCursor])
			m.suggestions = nil
			m.sugCursor = -1
			m.syncFormInputs()
			return *root, nil
		}
		if m.focus == focusSubmit {
			m.formErr = ""
			m.busy = true
			return *root, m.submitCmd()
		}
		m.setFocus((m.focus + 1) % focusCount)
		return *root, nil
	}

	if m.focus > focusDate {
		return *root, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(key)
	field := formFields[m.focus]
	m.builder.UpdateField(field, m.inputs[m.focus].Value())

	if field == booking.FieldPickup || field == booking.FieldDestination {
		return *root, tea.Batch(cmd, m.suggestCmd(field))
	}
	return *root, cmd
}

func (m *customerModel) onListKey(key tea.KeyMsg, root *Model) (tea.Model, tea.Cmd) {
	trips := m.tabTrips()
	cursor := m.tripCursor[m.tab]

	switch key.String() {
	case "up", "k":
		if cursor > 0 {
			m.tripCursor[m.tab] = cursor - 1
		}
		return *root, nil
	case "down", "j":
		if cursor < len(trips)-1 {
			m.tripCursor[m.tab] = cursor + 1
		}
		return *root, nil
	case "r":
		return *root, m.init()
	case "c":
		if m.tab == tabActive && cursor < len(trips) {
			m.cancelTrip = trips[cursor].ID
			m.mode = modeConfirmCancel
		}
		return *root, nil
	case "f":
		if cursor < len(trips) {
			m.complaintTrip = trips[cursor].ID
			m.complaintInput.SetValue("")
			m.complaintInput.Focus()
			m.complaintErr = ""
			m.mode = modeComplaint
		}
		return *root, nil
	case "1", "2", "3", "4", "5":
		if m.tab == tabHistory && cursor < len(trips) {
			trip := trips[cursor]
			if trip.Status == domain.TripStatusCompleted && !trip.Rated && trip.Driver != nil {
				stars := int(key.String()[0] - '0')
				m.busy = true
				return *root, m.dispatchCmd(dispatch.Rate{DriverID: trip.Driver.ID, TripID: trip.ID, Stars: stars})
			}
		}
		return *root, nil
	}
	return *root, nil
}

func (m *customerModel) onGateKey(key tea.KeyMsg, root *Model) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.builder.CancelPayment()
		m.mode = modeBrowse
		m.gateErr = ""
		return *root, nil
	case "tab", "down":
		m.setGateFocus((m.gateFocus + 1) % len(m.gateInputs))
		return *root, nil
	case "shift+tab", "up":
		m.setGateFocus((m.gateFocus + len(m.gateInputs) - 1) % len(m.gateInputs))
		return *root, nil
	case "enter":
		if m.gateFocus == len(m.gateInputs)-1 {
			m.gateErr = ""
			m.busy = true
			return *root, m.confirmPaymentCmd()
		}
		m.setGateFocus(m.gateFocus + 1)
		return *root, nil
	}

	var cmd tea.Cmd
	m.gateInputs[m.gateFocus], cmd = m.gateInputs[m.gateFocus].Update(key)

	// Route the raw value through the gate so the field formatter applies,
	// then reflect the formatted value back into the input.
	field := m.gateFields[m.gateFocus]
	m.builder.Gate().SetField(field, m.gateInputs[m.gateFocus].Value())
	m.gateInputs[m.gateFocus].SetValue(m.credentialValue(field))
	m.gateInputs[m.gateFocus].CursorEnd()
	return *root, cmd
}

func (m *customerModel) credentialValue(field booking.CredentialField) string {
	cred := m.builder.Gate().Credential()
	switch field {
	case booking.CredCardNumber:
		return cred.CardNumber
	case booking.CredExpiry:
		return cred.Expiry
	case booking.CredCVV:
		return cred.CVV
	case booking.CredName:
		return cred.Name
	case booking.CredWalletID:
		return cred.WalletID
	default:
		return cred.PIN
	}
}

func (m *customerModel) openGateForm() {
	m.mode = modeGate
	m.gateErr = ""

	var fields []booking.CredentialField
	var placeholders []string
	if m.builder.Gate().Method() == domain.PaymentMethodWallet {
		fields = []booking.CredentialField{booking.CredWalletID, booking.CredPIN}
		placeholders = []string{"wallet ID", "PIN"}
	} else {
		fields = []booking.CredentialField{booking.CredCardNumber, booking.CredExpiry, booking.CredCVV, booking.CredName}
		placeholders = []string{"card number", "MM/YY", "CVV", "name on card"}
	}

	m.gateFields = fields
	m.gateInputs = make([]textinput.Model, len(fields))
	for i := range fields {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 40
		m.gateInputs[i] = in
	}
	m.gateFocus = 0
	m.gateInputs[0].Focus()
}

func (m *customerModel) setFocus(focus int) {
	m.focus = focus
	m.sugCursor = -1
	if focus > focusDestination {
		m.suggestions = nil
	}
	for i := range m.inputs {
		if i == focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *customerModel) setGateFocus(focus int) {
	m.gateFocus = focus
	for i := range m.gateInputs {
		if i == focus {
			m.gateInputs[i].Focus()
		} else {
			m.gateInputs[i].Blur()
		}
	}
}

// syncFormInputs pushes the builder's draft back into the text inputs after
// a reset or suggestion selection.
func (m *customerModel) syncFormInputs() {
	draft := m.builder.Draft()
	m.inputs[0].SetValue(draft.Pickup)
	m.inputs[1].SetValue(draft.Destination)
	m.inputs[2].SetValue(draft.Date)
	for i := range m.inputs {
		m.inputs[i].CursorEnd()
	}
	for i, method := range paymentMethods {
		if method == draft.Payment {
			m.payCursor = i
		}
	}
}

func (m *customerModel) tabTrips() []domain.Trip {
	if m.tab == tabActive {
		return m.reconciler.Trips(triplist.ScopeCustomerActive)
	}
	return m.reconciler.Trips(triplist.ScopeCustomerHistory)
}

func (m *customerModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("SwiftRide · "+m.actor.Name) + "\n\n")

	tabs := []string{"Book", "Active", "History"}
	var rendered []string
	for i, t := range tabs {
		if customerTab(i) == m.tab {
			rendered = append(rendered, activeTabStyle.Render(t))
		} else {
			rendered = append(rendered, tabStyle.Render(t))
		}
	}
	b.WriteString(strings.Join(rendered, " ") + "\n\n")

	switch m.mode {
	case modeGate:
		b.WriteString(m.viewGate())
	case modeConfirmCancel:
		b.WriteString(errorStyle.Render("Are you sure you want to cancel this trip?") + "\n\n")
		b.WriteString(helpStyle.Render("y confirm · n keep trip"))
	case modeComplaint:
		b.WriteString(labelStyle.Render(fmt.Sprintf("Complaint about trip #%d", m.complaintTrip)) + "\n")
		b.WriteString(m.complaintInput.View() + "\n")
		if m.complaintErr != "" {
			b.WriteString(errorStyle.Render(m.complaintErr) + "\n")
		}
		b.WriteString("\n" + helpStyle.Render("enter submit · esc back"))
	default:
		if m.tab == tabBook {
			b.WriteString(m.viewForm())
		} else {
			b.WriteString(m.viewTrips())
		}
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

func (m *customerModel) viewForm() string {
	var b strings.Builder
	draft := m.builder.Draft()

	labels := [3]string{"Pickup", "Destination", "Date & time"}
	for i := range m.inputs {
		b.WriteString(labelStyle.Render(labels[i]) + "\n" + m.inputs[i].View() + "\n")
		if m.focus == i && len(m.suggestions) > 0 {
			for j, s := range m.suggestions {
				line := "    " + s.DisplayName
				if j == m.sugCursor {
					line = selectedStyle.Render("  > " + s.DisplayName)
				}
				b.WriteString(faintStyle.Render(line) + "\n")
			}
		}
	}

	b.WriteString("\n" + labelStyle.Render("Payment") + "  ")
	for i, method := range paymentMethods {
		label := string(method)
		if i == m.payCursor {
			label = selectedStyle.Render(" " + label + " ")
		}
		b.WriteString(label + "  ")
	}
	if m.focus == focusPayment {
		b.WriteString(faintStyle.Render("← →"))
	}
	b.WriteString("\n")

	check := func(on bool) string {
		if on {
			return "[x]"
		}
		return "[ ]"
	}
	premiumLine := fmt.Sprintf("%s Premium service", check(draft.IsPremium))
	childLine := fmt.Sprintf("%s Child seat", check(draft.HasChildSeat))
	if m.focus == focusPremium {
		premiumLine = selectedStyle.Render(premiumLine)
	}
	if m.focus == focusChildSeat {
		childLine = selectedStyle.Render(childLine)
	}
	b.WriteString(premiumLine + "\n" + childLine + "\n\n")

	submit := "[ Book trip ]"
	if m.focus == focusSubmit {
		submit = selectedStyle.Render(submit)
	}
	b.WriteString(submit + "\n")

	if m.formErr != "" {
		b.WriteString("\n" + errorStyle.Render(m.formErr) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("tab next · space toggle · enter select/submit · ctrl+n suggestions · [ ] tabs · ctrl+l logout"))
	return b.String()
}

func (m *customerModel) viewGate() string {
	var b strings.Builder
	method := m.builder.Gate().Method()
	b.WriteString(labelStyle.Render(fmt.Sprintf("Payment · %s", method)) + "\n\n")

	labels := map[booking.CredentialField]string{
		booking.CredCardNumber: "Card number",
		booking.CredExpiry:     "Expiry",
		booking.CredCVV:        "CVV",
		booking.CredName:       "Name",
		booking.CredWalletID:   "Wallet ID",
		booking.CredPIN:        "PIN",
	}
	for i, field := range m.gateFields {
		b.WriteString(labelStyle.Render(labels[field]) + "\n" + m.gateInputs[i].View() + "\n")
	}

	if m.gateErr != "" {
		b.WriteString("\n" + errorStyle.Render(m.gateErr) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("enter on last field confirms · esc cancel payment"))
	return b.String()
}

func (m *customerModel) viewTrips() string {
	trips := m.tabTrips()
	if len(trips) == 0 {
		return faintStyle.Render("No trips here yet.") + "\n\n" + helpStyle.Render("r refresh · [ ] tabs · ctrl+l logout")
	}

	var b strings.Builder
	cursor := m.tripCursor[m.tab]
	for i, t := range trips {
		line := formatTrip(t)
		if i == cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	help := "r refresh · c cancel · f complaint"
	if m.tab == tabHistory {
		help = "r refresh · 1-5 rate driver · f complaint"
	}
	b.WriteString("\n" + helpStyle.Render(help+" · [ ] tabs · ctrl+l logout"))
	return b.String()
}

func formatTrip(t domain.Trip) string {
	fare := ""
	if t.Fare != nil {
		fare = fmt.Sprintf(" · %.2f", *t.Fare)
	}
	driver := ""
	if t.Driver != nil {
		driver = " · " + t.Driver.FirstName + " " + t.Driver.LastName
	}
	extras := ""
	if t.IsPremium {
		extras += " ★"
	}
	if t.HasChildSeat {
		extras += " ⧉"
	}
	rated := ""
	if t.Rated {
		rated = " · rated"
	}
	return fmt.Sprintf("#%d %s → %s · %s · %s%s%s%s%s",
		t.ID, t.PickupLocation, t.Destination, t.TripDate, renderStatus(string(t.Status)), fare, driver, extras, rated)
}
