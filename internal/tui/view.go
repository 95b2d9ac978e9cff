package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/project-tktt/jobby/internal/domain"
	"github.com/project-tktt/jobby/internal/fetch"
	"github.com/project-tktt/jobby/internal/route"
)

const (
	sidebarWidth = 34
	minMainWidth = 48
)

func (m *Model) View() string {
	var builder strings.Builder

	builder.WriteString(m.styles.topBar.Width(max(m.width, 20)).Render("Jobby"))
	builder.WriteRune('\n')

	var body string
	var keys help.KeyMap
	switch m.screen.Name {
	case route.Login:
		body, keys = m.loginView(), m.keys.loginHelp()
	case route.Home:
		body, keys = m.homeView(), m.keys.homeHelp()
	case route.Jobs:
		body = m.jobsView()
		if m.search.Focused() {
			keys = m.keys.searchHelp()
		} else {
			keys = m.keys.jobsHelp()
		}
	case route.JobDetail:
		body, keys = m.detailView(), m.keys.detailHelp()
	default:
		body, keys = m.notFoundView(), m.keys.notFoundHelp()
	}
	builder.WriteString(body)
	builder.WriteRune('\n')

	if m.notice != "" {
		builder.WriteString(m.styles.errText.Render(m.notice))
		builder.WriteRune('\n')
	}
	builder.WriteString(m.help.View(keys))
	return builder.String()
}

func (m *Model) loginView() string {
	lines := []string{
		m.styles.title.Render("Sign in"),
		"",
		m.username.View(),
		m.password.View(),
		"",
	}
	if m.loggingIn {
		lines = append(lines, m.spinner.View()+" Logging in...")
	} else {
		lines = append(lines, m.styles.subtle.Render("press enter to login"))
	}
	if m.loginErr != "" {
		lines = append(lines, m.styles.errText.Render(m.loginErr))
	}
	return m.styles.panel.Render(strings.Join(lines, "\n"))
}

func (m *Model) homeView() string {
	return m.styles.panel.Render(strings.Join([]string{
		m.styles.title.Render("Find The Job That Fits Your Life"),
		"",
		"Millions of people are searching for jobs, salary information,",
		"company reviews. Find the job that fits your abilities and potential.",
		"",
		m.styles.selected.Render("[ Find Jobs ]"),
	}, "\n"))
}

func (m *Model) notFoundView() string {
	return m.styles.panel.Render(strings.Join([]string{
		m.styles.title.Render("Page Not Found"),
		"",
		"We are sorry, the page you requested could not be found",
		m.styles.subtle.Render(m.screen.Path()),
	}, "\n"))
}

// ── Jobs ───────────────────────────────────────────────────────────────────

func (m *Model) jobsView() string {
	mainWidth := max(m.width-sidebarWidth-6, minMainWidth)
	sidebar := lipgloss.JoinVertical(lipgloss.Left,
		m.profileView(),
		"",
		m.filtersView(),
	)
	main := lipgloss.JoinVertical(lipgloss.Left,
		m.search.View(),
		"",
		m.jobListView(mainWidth),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(sidebarWidth).Render(sidebar),
		"  ",
		lipgloss.NewStyle().Width(mainWidth).Render(main),
	)
}

func (m *Model) profileView() string {
	st := m.deps.Profile.State()
	switch st.Status {
	case fetch.StatusSuccess:
		p := st.Value
		return m.styles.card.Width(sidebarWidth - 2).Render(p.Name + "\n" + p.ShortBio)
	case fetch.StatusFailure:
		return m.styles.errText.Render("Profile unavailable") + "\n" + m.styles.subtle.Render("press p to retry")
	}
	return m.spinner.View()
}

func (m *Model) filtersView() string {
	snap := m.deps.Jobs.Filters().Snapshot()

	var b strings.Builder
	b.WriteString(m.styles.heading.Render("Type of Employment"))
	b.WriteRune('\n')
	for i, opt := range domain.EmploymentTypes {
		mark := "[ ]"
		if snap.Has(opt.ID) {
			mark = "[x]"
		}
		fmt.Fprintf(&b, "%d %s %s\n", i+1, mark, opt.Label)
	}
	b.WriteRune('\n')
	b.WriteString(m.styles.heading.Render("Salary Range"))
	b.WriteRune('\n')
	for _, opt := range domain.SalaryRanges {
		mark := "( )"
		if snap.SalaryRange == opt.ID {
			mark = "(•)"
		}
		fmt.Fprintf(&b, "  %s %s\n", mark, opt.Label)
	}
	return b.String()
}

func (m *Model) jobListView(width int) string {
	st := m.deps.Jobs.State()
	switch st.Status {
	case fetch.StatusIdle, fetch.StatusLoading:
		return m.spinner.View() + " Loading jobs..."
	case fetch.StatusFailure:
		return m.failureView(st.Reason)
	}

	if m.deps.Jobs.Empty() {
		return m.styles.title.Render("No Jobs Found") + "\n" +
			m.styles.subtle.Render("We could not find any jobs. Try other filters.")
	}

	cards := make([]string, 0, len(st.Value))
	for i, job := range st.Value {
		cards = append(cards, m.jobCard(job, i == m.cursor, width))
	}
	return strings.Join(cards, "\n")
}

func (m *Model) jobCard(job domain.JobSummary, selected bool, width int) string {
	title := m.styles.title.Render(job.Title)
	prefix := "  "
	if selected {
		title = m.styles.selected.Render(job.Title)
		prefix = "> "
	}
	meta := fmt.Sprintf("%s  📍 %s  💼 %s  %s",
		m.styles.rating.Render(fmt.Sprintf("★ %.1f", job.Rating)),
		job.Location, job.EmploymentType, job.PackagePerAnnum)
	desc := m.styles.subtle.Render(truncate(job.JobDescription, width-4))
	return prefix + title + "\n  " + meta + "\n  " + desc
}

func (m *Model) failureView(reason string) string {
	return m.styles.errText.Render("Oops! Something Went Wrong") + "\n" +
		"We cannot seem to find the page you are looking for.\n" +
		m.styles.subtle.Render(reason) + "\n" +
		m.styles.selected.Render("press r to retry")
}

// ── Detail ─────────────────────────────────────────────────────────────────

func (m *Model) detailView() string {
	st := m.deps.Detail.State()
	switch st.Status {
	case fetch.StatusIdle, fetch.StatusLoading:
		return m.spinner.View() + " Loading job..."
	case fetch.StatusFailure:
		return m.failureView(st.Reason)
	}

	job := st.Value.Job
	width := max(m.width-4, minMainWidth)

	skills := make([]string, len(job.Skills))
	for i, s := range job.Skills {
		skills[i] = s.Name
	}

	sections := []string{
		m.styles.title.Render(job.Title),
		fmt.Sprintf("%s  📍 %s  💼 %s  %s",
			m.styles.rating.Render(fmt.Sprintf("★ %.1f", job.Rating)),
			job.Location, job.EmploymentType, job.PackagePerAnnum),
		m.styles.subtle.Render(job.CompanyWebsiteURL),
		"",
		m.styles.heading.Render("Description"),
		job.JobDescription,
		"",
		m.styles.heading.Render("Skills"),
		strings.Join(skills, " · "),
		"",
		m.styles.heading.Render("Life at Company"),
		job.LifeAtCompany.Description,
	}
	detail := m.styles.panel.Width(width).Render(strings.Join(sections, "\n"))

	similar := []string{m.styles.heading.Render("Similar Jobs")}
	for i, s := range st.Value.Similar {
		prefix, title := "  ", s.Title
		if i == m.simCursor {
			prefix, title = "> ", m.styles.selected.Render(s.Title)
		}
		similar = append(similar, fmt.Sprintf("%s%s  %s  📍 %s  💼 %s",
			prefix, title, m.styles.rating.Render(fmt.Sprintf("★ %.1f", s.Rating)), s.Location, s.EmploymentType))
	}
	return detail + "\n" + strings.Join(similar, "\n")
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
