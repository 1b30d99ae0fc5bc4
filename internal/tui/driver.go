package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"swiftride/internal/client"
	"swiftride/internal/dispatch"
	"swiftride/internal/domain"
	"swiftride/internal/triplist"
)

type driverTab int

const (
	tabAvailable driverTab = iota
	tabMine
)

// driverModel is the driver dashboard: the systemwide available-trips tab
// and the driver's own active trips.
type driverModel struct {
	api   *client.Client
	actor domain.Actor

	reconciler *triplist.Reconciler
	dispatcher *dispatch.Dispatcher
	recorder   *noticeRecorder

	tab        driverTab
	cursor     map[driverTab]int
	confirming bool
	cancelTrip int64

	notice    string
	noticeErr bool
	busy      bool
}

func newDriverModel(api *client.Client, actor domain.Actor) *driverModel {
	m := &driverModel{
		api:        api,
		actor:      actor,
		reconciler: triplist.New(api, api, api),
		recorder:   &noticeRecorder{},
		cursor:     make(map[driverTab]int),
	}
	m.dispatcher = dispatch.New(api, m.recorder, nil, nil)
	return m
}

func (m *driverModel) init() tea.Cmd {
	return tea.Batch(
		m.loadCmd(triplist.ScopeDriverAvailable),
		m.loadCmd(triplist.ScopeDriverActive),
	)
}

func (m *driverModel) loadCmd(scope triplist.Scope) tea.Cmd {
	r, id := m.reconciler, m.actor.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		trips, err := r.Load(ctx, scope, id)
		return tripsMsg{scope: scope, trips: trips, err: err}
	}
}

func (m *driverModel) dispatchCmd(action dispatch.Action) tea.Cmd {
	d, rec := m.dispatcher, m.recorder
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		result, err := d.Dispatch(ctx, action)
		notice, isErr := rec.take()
		return actionMsg{notice: notice, isErr: isErr, result: result, err: err}
	}
}

func (m *driverModel) update(msg tea.Msg, root *Model) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tripsMsg:
		if msg.err != nil {
			m.notice, m.noticeErr = client.Message(msg.err), true
		}
		return *root, nil

	case actionMsg:
		m.busy = false
		if msg.notice != "" {
			m.notice, m.noticeErr = msg.notice, msg.isErr
		}
		if msg.result.SwitchToActive {
			m.tab = tabMine
		}
		if msg.err == nil {
			return *root, m.init()
		}
		return *root, nil

	case tea.KeyMsg:
		return m.onKey(msg, root)
	}
	return *root, nil
}

func (m *driverModel) onKey(key tea.KeyMsg, root *Model) (tea.Model, tea.Cmd) {
	if m.busy {
		return *root, nil
	}

	if m.confirming {
		switch key.String() {
		case "y", "Y":
			m.confirming = false
			m.busy = true
			return *root, m.dispatchCmd(dispatch.CancelByDriver{DriverID: m.actor.ID, TripID: m.cancelTrip})
		case "n", "N", "esc":
			m.confirming = false
		}
		return *root, nil
	}

	trips := m.tabTrips()
	cursor := m.cursor[m.tab]

	switch key.String() {
	case "ctrl+l":
		root.logout()
		return *root, nil
	case "[":
		m.tab = tabAvailable
		m.notice = ""
		return *root, nil
	case "]":
		m.tab = tabMine
		m.notice = ""
		return *root, nil
	case "up", "k":
		if cursor > 0 {
			m.cursor[m.tab] = cursor - 1
		}
		return *root, nil
	case "down", "j":
		if cursor < len(trips)-1 {
			m.cursor[m.tab] = cursor + 1
		}
		return *root, nil
	case "r":
		return *root, m.init()
	case "a":
		if m.tab == tabAvailable && cursor < len(trips) {
			m.busy = true
			return *root, m.dispatchCmd(dispatch.Accept{DriverID: m.actor.ID, TripID: trips[cursor].ID})
		}
		return *root, nil
	case "s":
		if m.tab == tabMine && cursor < len(trips) {
			m.busy = true
			return *root, m.dispatchCmd(dispatch.Start{DriverID: m.actor.ID, TripID: trips[cursor].ID})
		}
		return *root, nil
	case "e":
		if m.tab == tabMine && cursor < len(trips) {
			m.busy = true
			return *root, m.dispatchCmd(dispatch.End{DriverID: m.actor.ID, TripID: trips[cursor].ID})
		}
		return *root, nil
	case "c":
		if m.tab == tabMine && cursor < len(trips) {
			m.cancelTrip = trips[cursor].ID
			m.confirming = true
		}
		return *root, nil
	}
	return *root, nil
}

func (m *driverModel) tabTrips() []domain.Trip {
	if m.tab == tabAvailable {
		return m.reconciler.Trips(triplist.ScopeDriverAvailable)
	}
	return m.reconciler.Trips(triplist.ScopeDriverActive)
}

func (m *driverModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("SwiftRide · "+m.actor.Name) + "\n\n")

	tabs := []string{"Available", "My trips"}
	var rendered []string
	for i, t := range tabs {
		if driverTab(i) == m.tab {
			rendered = append(rendered, activeTabStyle.Render(t))
		} else {
			rendered = append(rendered, tabStyle.Render(t))
		}
	}
	b.WriteString(strings.Join(rendered, " ") + "\n\n")

	if m.confirming {
		b.WriteString(errorStyle.Render("Are you sure you want to cancel this trip?") + "\n\n")
		b.WriteString(helpStyle.Render("y confirm · n keep trip"))
		return b.String()
	}

	trips := m.tabTrips()
	if len(trips) == 0 {
		b.WriteString(faintStyle.Render("Nothing here right now.") + "\n")
	} else {
		cursor := m.cursor[m.tab]
		for i, t := range trips {
			line := formatTrip(t)
			if i == cursor {
				line = selectedStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			b.WriteString(line + "\n")
		}
	}

	help := "r refresh · a accept"
	if m.tab == tabMine {
		help = "r refresh · s start · e end · c cancel"
	}
	b.WriteString("\n" + helpStyle.Render(help+" · [ ] tabs · ctrl+l logout"))

	if m.notice != "" {
		style := successStyle
		if m.noticeErr {
			style = errorStyle
		}
		b.WriteString("\n\n" + style.Render(m.notice))
	}
	return b.String()
}
