// Package tui is the terminal front end. Every screen reads its data
// from a controller; controllers report changes through messages sent
// to the running program.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/project-tktt/jobby/internal/auth"
	"github.com/project-tktt/jobby/internal/domain"
	"github.com/project-tktt/jobby/internal/jobdetail"
	"github.com/project-tktt/jobby/internal/joblist"
	"github.com/project-tktt/jobby/internal/jobsapi"
	"github.com/project-tktt/jobby/internal/profile"
	"github.com/project-tktt/jobby/internal/route"
)

// Deps are the controllers the model drives
type Deps struct {
	Gate    *route.Gate
	Auth    *auth.Service
	Jobs    *joblist.Controller
	Detail  *jobdetail.Controller
	Profile *profile.Controller
	Logger  *zap.Logger
}

type Model struct {
	ctx    context.Context
	deps   Deps
	logger *zap.Logger
	keys   keyMap
	styles styles

	help    help.Model
	spinner spinner.Model

	screen route.Target
	start  route.Target

	username  textinput.Model
	password  textinput.Model
	loggingIn bool
	loginErr  string

	search    textinput.Model
	mounted   bool
	cursor    int
	simCursor int
	notice    string

	width  int
	height int
}

// New creates the model. start is resolved through the gate on Init.
func New(ctx context.Context, deps Deps, start route.Target) *Model {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Model{
		ctx:    ctx,
		deps:   deps,
		logger: logger,
		keys:   newKeyMap(),
		styles: newStyles(),
		help:   help.New(),
		start:  start,
		screen: route.Target{Name: route.Login},
	}

	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.spinner.Style = m.styles.selected

	m.username = textinput.New()
	m.username.Prompt = "USERNAME  "
	m.username.Placeholder = "Username"
	m.username.CharLimit = 64

	m.password = textinput.New()
	m.password.Prompt = "PASSWORD  "
	m.password.Placeholder = "Password"
	m.password.EchoMode = textinput.EchoPassword
	m.password.CharLimit = 64

	m.search = textinput.New()
	m.search.Prompt = "🔍 "
	m.search.Placeholder = "Search"
	m.search.CharLimit = 128

	return m
}

// Subscribe forwards controller changes to send, normally Program.Send
func (m *Model) Subscribe(send func(tea.Msg)) {
	m.deps.Jobs.OnChange(func(joblist.State) { send(jobsChangedMsg{}) })
	m.deps.Detail.OnChange(func(jobdetail.State) { send(detailChangedMsg{}) })
	m.deps.Profile.OnChange(func(profile.State) { send(profileChangedMsg{}) })
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.navigate(m.start))
}

// Screen returns the target currently shown
func (m *Model) Screen() route.Target {
	return m.screen
}

func (m *Model) navigate(target route.Target) tea.Cmd {
	return func() tea.Msg {
		return routedMsg{target: m.deps.Gate.Resolve(m.ctx, target)}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case navigateMsg:
		return m, m.navigate(msg.target)

	case routedMsg:
		return m, m.enter(msg.target)

	case loginDoneMsg:
		m.loggingIn = false
		if !msg.state.Success() {
			m.loginErr = "*" + msg.state.Reason
			return m, nil
		}
		m.loginErr = ""
		m.username.SetValue("")
		m.password.SetValue("")
		return m, m.navigate(route.Target{Name: route.Home})

	case loggedOutMsg:
		if msg.err != nil {
			m.notice = msg.err.Error()
			return m, nil
		}
		m.mounted = false
		m.cursor, m.simCursor = 0, 0
		return m, m.navigate(route.Target{Name: route.Login})

	case jobsChangedMsg:
		m.cursor = clamp(m.cursor, len(m.deps.Jobs.State().Value))
		return m, nil

	case detailChangedMsg:
		m.simCursor = clamp(m.simCursor, len(m.deps.Detail.State().Value.Similar))
		return m, nil

	case profileChangedMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// enter switches to an already resolved target
func (m *Model) enter(target route.Target) tea.Cmd {
	m.screen = target
	m.notice = ""
	m.logger.Debug("screen", zap.String("path", target.Path()))

	switch target.Name {
	case route.Login:
		m.password.Blur()
		return m.username.Focus()
	case route.Jobs:
		if !m.mounted {
			m.mounted = true
			m.deps.Jobs.Mount(m.ctx)
			m.deps.Profile.Mount(m.ctx)
		}
	case route.JobDetail:
		m.simCursor = 0
		m.deps.Detail.Mount(m.ctx)
		m.deps.Detail.Navigate(target.JobID)
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.screen.Name {
	case route.Login:
		return m.loginKey(msg)
	case route.Home:
		return m.homeKey(msg)
	case route.Jobs:
		if m.search.Focused() {
			return m.searchKey(msg)
		}
		return m.jobsKey(msg)
	case route.JobDetail:
		return m.detailKey(msg)
	default:
		return m.notFoundKey(msg)
	}
}

func (m *Model) loginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.nextField):
		return m, m.switchLoginField()
	case msg.Type == tea.KeyEnter:
		if m.username.Focused() {
			return m, m.switchLoginField()
		}
		return m, m.submitLogin()
	case msg.Type == tea.KeyEsc:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	if m.username.Focused() {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *Model) switchLoginField() tea.Cmd {
	if m.username.Focused() {
		m.username.Blur()
		return m.password.Focus()
	}
	m.password.Blur()
	return m.username.Focus()
}

func (m *Model) submitLogin() tea.Cmd {
	if m.loggingIn {
		return nil
	}
	m.loggingIn = true
	creds := jobsapi.Credentials{Username: m.username.Value(), Password: m.password.Value()}
	return func() tea.Msg {
		return loginDoneMsg{state: m.deps.Auth.Login(m.ctx, creds)}
	}
}

func (m *Model) logout() tea.Cmd {
	return func() tea.Msg {
		return loggedOutMsg{err: m.deps.Auth.Logout(m.ctx)}
	}
}

func (m *Model) homeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.logout):
		return m, m.logout()
	case key.Matches(msg, m.keys.open):
		return m, m.navigate(route.Target{Name: route.Jobs})
	}
	return m, nil
}

func (m *Model) searchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	filters := m.deps.Jobs.Filters()
	switch msg.Type {
	case tea.KeyEnter:
		filters.SetSearchText(m.search.Value())
		filters.TriggerSearch()
		m.search.Blur()
		m.cursor = 0
		return m, nil
	case tea.KeyEsc:
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	filters.SetSearchText(m.search.Value())
	return m, cmd
}

func (m *Model) jobsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	filters := m.deps.Jobs.Filters()
	jobs := m.deps.Jobs.State()

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.focusSearch):
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.toggleType):
		i := int(msg.Runes[0] - '1')
		if i >= 0 && i < len(domain.EmploymentTypes) {
			if err := filters.ToggleEmploymentType(domain.EmploymentTypes[i].ID); err != nil {
				m.logger.Warn("toggle employment type", zap.Error(err))
			}
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.cycleSalary):
		if err := filters.SetSalaryRange(nextSalary(filters.Snapshot().SalaryRange)); err != nil {
			m.logger.Warn("set salary range", zap.Error(err))
		}
		m.cursor = 0
	case key.Matches(msg, m.keys.clearSalary):
		_ = filters.SetSalaryRange(domain.SalaryAny)
		m.cursor = 0
	case key.Matches(msg, m.keys.retry):
		m.deps.Jobs.Retry()
	case key.Matches(msg, m.keys.retryProf):
		m.deps.Profile.Retry()
	case key.Matches(msg, m.keys.up):
		m.cursor = clamp(m.cursor-1, len(jobs.Value))
	case key.Matches(msg, m.keys.down):
		m.cursor = clamp(m.cursor+1, len(jobs.Value))
	case key.Matches(msg, m.keys.open):
		if jobs.Success() && m.cursor < len(jobs.Value) {
			return m, m.navigate(route.Target{Name: route.JobDetail, JobID: jobs.Value[m.cursor].ID})
		}
	case key.Matches(msg, m.keys.back):
		return m, m.navigate(route.Target{Name: route.Home})
	case key.Matches(msg, m.keys.logout):
		return m, m.logout()
	}
	return m, nil
}

func (m *Model) detailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.deps.Detail.State()
	similar := st.Value.Similar

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.up):
		m.simCursor = clamp(m.simCursor-1, len(similar))
	case key.Matches(msg, m.keys.down):
		m.simCursor = clamp(m.simCursor+1, len(similar))
	case key.Matches(msg, m.keys.open):
		if st.Success() && m.simCursor < len(similar) {
			return m, m.navigate(route.Target{Name: route.JobDetail, JobID: similar[m.simCursor].ID})
		}
	case key.Matches(msg, m.keys.retry):
		m.deps.Detail.Retry()
	case key.Matches(msg, m.keys.back):
		return m, m.navigate(route.Target{Name: route.Jobs})
	case key.Matches(msg, m.keys.logout):
		return m, m.logout()
	}
	return m, nil
}

func (m *Model) notFoundKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.open), key.Matches(msg, m.keys.back):
		return m, m.navigate(route.Target{Name: route.Home})
	}
	return m, nil
}

// nextSalary cycles Any → 10 → 20 → 30 → 40 LPA → Any
func nextSalary(current domain.SalaryRange) domain.SalaryRange {
	if current == domain.SalaryAny {
		return domain.SalaryRanges[0].ID
	}
	for i, opt := range domain.SalaryRanges {
		if opt.ID == current && i+1 < len(domain.SalaryRanges) {
			return domain.SalaryRanges[i+1].ID
		}
	}
	return domain.SalaryAny
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
