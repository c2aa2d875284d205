package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/altinukshini/assetflow-tui/internal/api"
	"github.com/altinukshini/assetflow-tui/internal/auth"
	"github.com/altinukshini/assetflow-tui/internal/config"
	"github.com/altinukshini/assetflow-tui/internal/highlight"
	"github.com/altinukshini/assetflow-tui/internal/metrics"
	"github.com/altinukshini/assetflow-tui/internal/model"
	"github.com/altinukshini/assetflow-tui/internal/search"
	"github.com/altinukshini/assetflow-tui/internal/tui/confirm"
	"github.com/altinukshini/assetflow-tui/internal/tui/dashboard"
	"github.com/altinukshini/assetflow-tui/internal/tui/datatable"
	"github.com/altinukshini/assetflow-tui/internal/tui/details"
	"github.com/altinukshini/assetflow-tui/internal/tui/searchview"
	"github.com/altinukshini/assetflow-tui/internal/ui"
)

// Backend is the API surface the app needs. *api.Client implements it.
type Backend interface {
	search.Source
	LoadDashboard(ctx context.Context, recentLimit int) (*model.Dashboard, error)
	Me(ctx context.Context) (*model.User, error)
	PurgeCache()
	SetToken(token string)
}

type View int

const (
	ViewDashboard View = iota
	ViewAssets
	ViewMovements
	ViewVendors
	ViewCosting
)

var tabViews = []View{ViewDashboard, ViewAssets, ViewMovements, ViewVendors, ViewCosting}

func (v View) Label() string {
	switch v {
	case ViewDashboard:
		return "Dashboard"
	case ViewAssets:
		return "Assets"
	case ViewMovements:
		return "Movements"
	case ViewVendors:
		return "Vendors"
	case ViewCosting:
		return "Costing"
	}
	return ""
}

func (v View) Entity() (model.EntityType, bool) {
	switch v {
	case ViewAssets:
		return model.EntityAsset, true
	case ViewMovements:
		return model.EntityMovement, true
	case ViewVendors:
		return model.EntityVendor, true
	case ViewCosting:
		return model.EntityCosting, true
	}
	return "", false
}

func viewForEntity(t model.EntityType) View {
	switch t {
	case model.EntityAsset:
		return ViewAssets
	case model.EntityMovement:
		return ViewMovements
	case model.EntityVendor:
		return ViewVendors
	case model.EntityCosting:
		return ViewCosting
	}
	return ViewDashboard
}

type App struct {
	cfg      config.Config
	backend  Backend
	searcher *search.Searcher
	sessions *auth.Store
	log      logrus.FieldLogger
	metrics  *metrics.Metrics

	// Views
	dashboardView  dashboard.Model
	assetsTable    datatable.Model
	movementsTable datatable.Model
	vendorsTable   datatable.Model
	costingTable   datatable.Model
	searchView     searchview.Model
	detailsView    details.Model
	confirmDialog  confirm.Model

	// State
	currentView View
	loaded      map[View]bool
	user        *model.User
	startLink   string
	width       int
	height      int
	status      string
	showHelp    bool
}

type Option func(*App)

func WithSessionStore(s *auth.Store) Option {
	return func(a *App) { a.sessions = s }
}

func WithUser(u *model.User) Option {
	return func(a *App) { a.user = u }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(a *App) { a.log = log }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(a *App) { a.metrics = m }
}

// WithStartLink opens the app at a highlight link instead of the dashboard.
func WithStartLink(link string) Option {
	return func(a *App) { a.startLink = link }
}

func NewApp(cfg config.Config, backend Backend, opts ...Option) App {
	a := App{
		cfg:           cfg,
		backend:       backend,
		log:           logrus.StandardLogger(),
		dashboardView: dashboard.New(),
		detailsView:   details.New(),
		currentView:   ViewDashboard,
		loaded:        make(map[View]bool),
		status:        "Loading dashboard...",
	}
	for _, opt := range opts {
		opt(&a)
	}

	a.searcher = search.NewSearcher(backend, search.New(cfg.PageSize),
		search.WithTimeout(cfg.RequestTimeout),
		search.WithLogger(a.log),
		search.WithMetrics(a.metrics),
	)
	a.searchView = searchview.New(a.searcher.Search, cfg.Search.Debounce)

	tableOpts := []datatable.Option{
		datatable.WithPageSize(cfg.PageSize),
		datatable.WithHighlightOptions(cfg.HighlightOptions()),
		datatable.WithMetrics(a.metrics),
	}
	a.assetsTable = datatable.New(model.EntityAsset, columnsFor(model.EntityAsset), tableOpts...)
	a.movementsTable = datatable.New(model.EntityMovement, columnsFor(model.EntityMovement), tableOpts...)
	a.vendorsTable = datatable.New(model.EntityVendor, columnsFor(model.EntityVendor), tableOpts...)
	a.costingTable = datatable.New(model.EntityCosting, columnsFor(model.EntityCosting), tableOpts...)
	return a
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.fetchDashboard()}
	if a.user == nil {
		cmds = append(cmds, a.fetchUser())
	}
	if a.startLink != "" {
		link := a.startLink
		cmds = append(cmds, func() tea.Msg { return ui.NavigateMsg{Link: link} })
	}
	return tea.Batch(cmds...)
}

// table returns the data table shown by v, or nil for the dashboard.
func (a *App) table(v View) *datatable.Model {
	switch v {
	case ViewAssets:
		return &a.assetsTable
	case ViewMovements:
		return &a.movementsTable
	case ViewVendors:
		return &a.vendorsTable
	case ViewCosting:
		return &a.costingTable
	}
	return nil
}

// --- Data fetching commands ---

func (a App) requestContext() (context.Context, context.CancelFunc) {
	if a.cfg.RequestTimeout > 0 {
		return context.WithTimeout(context.Background(), a.cfg.RequestTimeout)
	}
	return context.WithCancel(context.Background())
}

func (a App) fetchDashboard() tea.Cmd {
	backend, limit := a.backend, a.cfg.Search.RecentLimit
	return func() tea.Msg {
		ctx, cancel := a.requestContext()
		defer cancel()
		d, err := backend.LoadDashboard(ctx, limit)
		return ui.DashboardLoadedMsg{Dashboard: d, Err: err}
	}
}

func (a App) fetchUser() tea.Cmd {
	backend := a.backend
	return func() tea.Msg {
		ctx, cancel := a.requestContext()
		defer cancel()
		u, err := backend.Me(ctx)
		return ui.UserLoadedMsg{User: u, Err: err}
	}
}

func (a App) fetchView(v View) tea.Cmd {
	backend := a.backend
	switch v {
	case ViewDashboard:
		return a.fetchDashboard()
	case ViewAssets:
		return func() tea.Msg {
			ctx, cancel := a.requestContext()
			defer cancel()
			assets, err := backend.ListAssets(ctx)
			return ui.AssetsLoadedMsg{Assets: assets, Err: err}
		}
	case ViewMovements:
		return func() tea.Msg {
			ctx, cancel := a.requestContext()
			defer cancel()
			movements, err := backend.ListMovements(ctx)
			return ui.MovementsLoadedMsg{Movements: movements, Err: err}
		}
	case ViewVendors:
		return func() tea.Msg {
			ctx, cancel := a.requestContext()
			defer cancel()
			vendors, err := backend.ListVendors(ctx)
			return ui.VendorsLoadedMsg{Vendors: vendors, Err: err}
		}
	case ViewCosting:
		return func() tea.Msg {
			ctx, cancel := a.requestContext()
			defer cancel()
			costings, err := backend.ListCostings(ctx)
			return ui.CostingsLoadedMsg{Costings: costings, Err: err}
		}
	}
	return nil
}

func (a App) doLogout() tea.Cmd {
	backend, sessions := a.backend, a.sessions
	return func() tea.Msg {
		backend.SetToken("")
		if sessions == nil {
			return ui.LogoutDoneMsg{}
		}
		return ui.LogoutDoneMsg{Err: sessions.Clear()}
	}
}

// --- Navigation ---

// switchTo shows v, loading its data on first visit.
func (a *App) switchTo(v View) tea.Cmd {
	a.showHelp = false
	a.detailsView.Close()
	a.currentView = v
	a.status = v.Label()
	if a.loaded[v] {
		return nil
	}
	a.loaded[v] = true
	a.status = fmt.Sprintf("Loading %s...", strings.ToLower(v.Label()))
	return a.fetchView(v)
}

// navigate opens the screen a link points at and hands its table the
// highlight target.
func (a *App) navigate(link string) tea.Cmd {
	route, err := highlight.ParseLink(link)
	if err != nil {
		a.status = fmt.Sprintf("Error: %v", err)
		return nil
	}
	if route.Path == "/" || route.Path == "/dashboard" {
		return a.switchTo(ViewDashboard)
	}
	entity, ok := model.EntityForRoute(route.Path)
	if !ok {
		a.status = fmt.Sprintf("Unknown screen %s", route.Path)
		return nil
	}
	v := viewForEntity(entity)
	fetch := a.switchTo(v)
	probe := a.table(v).SetTarget(route.Target)
	a.log.WithFields(logrus.Fields{
		"route":     route.Path,
		"highlight": route.Target.HighlightID,
		"page":      route.Target.Page,
	}).Debug("navigate")
	return tea.Batch(fetch, probe)
}

func (a *App) refresh() tea.Cmd {
	a.backend.PurgeCache()
	a.loaded[a.currentView] = true
	a.status = fmt.Sprintf("Refreshing %s...", strings.ToLower(a.currentView.Label()))
	if t := a.table(a.currentView); t != nil {
		t.SetLoading()
	} else {
		a.dashboardView.SetLoading()
	}
	return a.fetchView(a.currentView)
}

func (a *App) openDetails() {
	entity, ok := a.currentView.Entity()
	if !ok {
		return
	}
	t := a.table(a.currentView)
	row, ok := t.SelectedRow()
	if !ok {
		return
	}
	link := highlight.Link(entity.Route(), row.ID, t.PageOf(row.ID))
	a.detailsView.Show(entity, row.Title, link, row.Fields)
}

func (a *App) loadStatus(label string, n int, err error) {
	if err != nil {
		a.status = a.errStatus(err)
		return
	}
	a.status = fmt.Sprintf("%s: %d records", label, n)
}

func (a App) errStatus(err error) string {
	if errors.Is(err, api.ErrUnauthorized) {
		return "Not authorized, run 'assetflow login'"
	}
	return fmt.Sprintf("Error: %v", err)
}

// --- Update ---

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Handle confirm dialog result (arrives after the dialog deactivates)
	if result, ok := msg.(confirm.ResultMsg); ok {
		if result.Confirmed && result.Action == "logout" {
			a.status = "Logging out..."
			cmds = append(cmds, a.doLogout())
		}
		return &a, tea.Batch(cmds...)
	}

	if _, isKey := msg.(tea.KeyMsg); isKey && a.confirmDialog.IsActive() {
		var cmd tea.Cmd
		a.confirmDialog, cmd = a.confirmDialog.Update(msg)
		return &a, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.propagateSize()
		return &a, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		a.searchView, cmd = a.searchView.Update(msg)
		return &a, cmd

	case ui.SearchDebounceMsg, ui.SearchDoneMsg:
		var cmd tea.Cmd
		a.searchView, cmd = a.searchView.Update(msg)
		return &a, cmd

	case ui.NavigateMsg:
		return &a, a.navigate(msg.Link)

	case ui.HighlightProbeMsg:
		t := a.table(viewForEntity(msg.Entity))
		if t == nil {
			return &a, nil
		}
		before := t.Scroller().State()
		var cmd tea.Cmd
		*t, cmd = t.Update(msg)
		if before != highlight.StateExhausted && t.Scroller().State() == highlight.StateExhausted {
			a.log.WithFields(logrus.Fields{
				"entity":    msg.Entity,
				"highlight": t.Target().HighlightID,
				"attempts":  t.Scroller().Attempts(),
			}).Debug("highlight target never rendered")
		}
		return &a, cmd

	case ui.HighlightClearMsg:
		if t := a.table(viewForEntity(msg.Entity)); t != nil {
			*t, _ = t.Update(msg)
		}
		return &a, nil

	case ui.DashboardLoadedMsg:
		a.loaded[ViewDashboard] = true
		a.dashboardView.SetData(msg.Dashboard, msg.Err)
		if a.currentView == ViewDashboard {
			if msg.Err != nil {
				a.status = a.errStatus(msg.Err)
			} else {
				a.status = "Dashboard"
			}
		}
		return &a, nil

	case ui.AssetsLoadedMsg:
		a.assetsTable.SetRows(assetRows(msg.Assets), msg.Err)
		a.loadStatus("Assets", len(msg.Assets), msg.Err)
		return &a, nil

	case ui.MovementsLoadedMsg:
		a.movementsTable.SetRows(movementRows(msg.Movements), msg.Err)
		a.loadStatus("Movements", len(msg.Movements), msg.Err)
		return &a, nil

	case ui.VendorsLoadedMsg:
		a.vendorsTable.SetRows(vendorRows(msg.Vendors), msg.Err)
		a.loadStatus("Vendors", len(msg.Vendors), msg.Err)
		return &a, nil

	case ui.CostingsLoadedMsg:
		a.costingTable.SetRows(costingRows(msg.Costings), msg.Err)
		a.loadStatus("Costing", len(msg.Costings), msg.Err)
		return &a, nil

	case ui.UserLoadedMsg:
		if msg.Err != nil {
			a.log.WithError(msg.Err).Warn("could not load current user")
			if errors.Is(msg.Err, api.ErrUnauthorized) {
				a.status = a.errStatus(msg.Err)
			}
			return &a, nil
		}
		a.user = msg.User
		return &a, nil

	case ui.LogoutDoneMsg:
		if msg.Err != nil {
			a.status = fmt.Sprintf("Logout failed: %v", msg.Err)
			return &a, nil
		}
		a.user = nil
		a.status = "Logged out"
		return &a, tea.Quit

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return &a, tea.Batch(cmds...)
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global search owns the keyboard while focused.
	if a.searchView.IsActive() {
		var cmd tea.Cmd
		a.searchView, cmd = a.searchView.Update(msg)
		return &a, cmd
	}

	// Help overlay dismisses on any key
	if a.showHelp {
		a.showHelp = false
		return &a, nil
	}

	t := a.table(a.currentView)

	// Typing into a table filter skips app-level keys.
	if t != nil && t.IsFiltering() {
		var cmd tea.Cmd
		*t, cmd = t.Update(msg)
		return &a, cmd
	}

	if a.detailsView.IsActive() {
		switch {
		case key.Matches(msg, ui.Keys.Back):
			a.detailsView.Close()
			return &a, nil
		case key.Matches(msg, ui.Keys.Quit):
			return &a, tea.Quit
		}
		var cmd tea.Cmd
		a.detailsView, cmd = a.detailsView.Update(msg)
		return &a, cmd
	}

	switch {
	case key.Matches(msg, ui.Keys.Quit):
		return &a, tea.Quit

	case key.Matches(msg, ui.Keys.Help):
		a.showHelp = true
		return &a, nil

	case key.Matches(msg, ui.Keys.Search):
		return &a, a.searchView.Activate()

	case key.Matches(msg, ui.Keys.Refresh):
		return &a, a.refresh()

	case key.Matches(msg, ui.Keys.Logout):
		who := "this session"
		if a.user != nil && a.user.Email != "" {
			who = a.user.Email
		}
		a.confirmDialog = confirm.New("Log Out", fmt.Sprintf("End the session for %s?", who), "logout")
		return &a, nil
	}

	switch msg.String() {
	case "1", "2", "3", "4", "5":
		v := tabViews[msg.String()[0]-'1']
		if v == a.currentView {
			return &a, nil
		}
		return &a, a.switchTo(v)
	}

	var cmd tea.Cmd
	if t != nil {
		if key.Matches(msg, ui.Keys.Enter) {
			a.openDetails()
			return &a, nil
		}
		*t, cmd = t.Update(msg)
		return &a, cmd
	}
	a.dashboardView, cmd = a.dashboardView.Update(msg)
	return &a, cmd
}

func (a *App) propagateSize() {
	// header(1) + tabs(1) + status(1) = 3 lines of chrome
	// pane border top(1) + bottom(1) = 2 lines
	contentH := a.height - 5
	if contentH < 1 {
		contentH = 1
	}
	size := tea.WindowSizeMsg{Width: a.width - 4, Height: contentH}

	a.dashboardView, _ = a.dashboardView.Update(size)
	a.assetsTable, _ = a.assetsTable.Update(size)
	a.movementsTable, _ = a.movementsTable.Update(size)
	a.vendorsTable, _ = a.vendorsTable.Update(size)
	a.costingTable, _ = a.costingTable.Update(size)
	a.detailsView, _ = a.detailsView.Update(size)
	a.searchView, _ = a.searchView.Update(size)
	// Inside the pane border below the header and tabs.
	a.searchView.SetOrigin(1, 3)
}

// --- View ---

func (a App) View() string {
	header := RenderHeader(a.cfg.Host(), a.user, a.width)
	tabs := a.renderTabs()

	contentH := a.height - 5
	if contentH < 1 {
		contentH = 1
	}
	style := ui.StylePaneFocused.Width(a.width - 2).Height(contentH)

	var content string
	switch {
	case a.showHelp:
		content = a.renderHelp()
	case a.confirmDialog.IsActive():
		content = a.confirmDialog.View()
	case a.searchView.Visible():
		content = style.Render(a.searchView.View())
	case a.detailsView.IsActive():
		content = style.Render(a.detailsView.View())
	case a.currentView == ViewDashboard:
		content = style.Render(a.dashboardView.View())
	default:
		content = style.Render(a.table(a.currentView).View())
	}

	statusBar := RenderStatusBar(a.status, a.contextHints(), a.width)

	// Hard clamp: header(1) + tabs(1) + statusbar(1) = 3 lines of chrome.
	maxContentLines := a.height - 3
	if maxContentLines > 0 {
		lines := strings.Split(content, "\n")
		if len(lines) > maxContentLines {
			content = strings.Join(lines[:maxContentLines], "\n")
		}
	}

	return header + "\n" + tabs + "\n" + content + "\n" + statusBar
}

func (a App) renderTabs() string {
	tabStyle := lipgloss.NewStyle().Padding(0, 2)
	activeTab := tabStyle.Bold(true).Foreground(ui.ColorPrimary)
	inactiveTab := tabStyle.Foreground(ui.ColorMuted)

	parts := make([]string, len(tabViews))
	for i, v := range tabViews {
		label := fmt.Sprintf("[%d] %s", i+1, v.Label())
		if t := a.table(v); t != nil && t.FilterText() != "" {
			label += " (filtered)"
		}
		if v == a.currentView {
			parts[i] = activeTab.Render(label)
		} else {
			parts[i] = inactiveTab.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a App) contextHints() string {
	switch {
	case a.searchView.IsActive():
		return "up/down:select  enter:open  esc:close"
	case a.detailsView.IsActive():
		return "j/k:scroll  esc:back"
	case a.currentView == ViewDashboard:
		return "j/k:recent movements  enter:open  /:search  r:refresh  ?:help"
	}
	if t := a.table(a.currentView); t != nil && t.IsFiltering() {
		return "enter:apply  esc:clear"
	}
	return "h/l:page  enter:details  f:filter  /:search  r:refresh  ?:help"
}

func (a App) renderHelp() string {
	contentH := a.height - 5
	if contentH < 1 {
		contentH = 1
	}

	bold := lipgloss.NewStyle().Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(ui.ColorPrimary).Bold(true).Width(14)
	desc := lipgloss.NewStyle().Foreground(lipgloss.Color("#D1D5DB"))

	row := func(k, d string) string {
		return "  " + keyStyle.Render(k) + desc.Render(d) + "\n"
	}

	var b strings.Builder
	b.WriteString("\n" + bold.Render("  Navigation") + "\n\n")
	b.WriteString(row("1-5", "Switch tab: Dashboard, Assets, Movements, Vendors, Costing"))
	b.WriteString(row("j / k", "Move down / up"))
	b.WriteString(row("h / l", "Previous / next page"))
	b.WriteString(row("enter", "Show details"))
	b.WriteString(row("esc", "Back"))
	b.WriteString(row("r", "Refresh (drops cached data)"))
	b.WriteString(row("L", "Log out"))
	b.WriteString(row("q", "Quit"))

	b.WriteString("\n" + bold.Render("  Search & Filter") + "\n\n")
	b.WriteString(row("/", "Search assets, movements, vendors and costing"))
	b.WriteString(row("up / down", "Select result"))
	b.WriteString(row("enter", "Open result and highlight its row"))
	b.WriteString(row("f", "Filter the current table"))

	b.WriteString("\n" + bold.Render("  Dashboard") + "\n\n")
	b.WriteString(row("enter", "Open the selected recent movement"))

	b.WriteString("\n" + lipgloss.NewStyle().Foreground(ui.ColorMuted).Render("  Press any key to close") + "\n")

	style := ui.StylePaneFocused.Width(a.width - 2).Height(contentH)
	return style.Render(b.String())
}
