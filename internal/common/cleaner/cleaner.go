package cleaner

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/project-tktt/jobby/internal/domain"
)

var blankLines = regexp.MustCompile(`\n{3,}`)

// Cleaner strips markup from text the API returns before it reaches the
// terminal. URLs are left alone.
type Cleaner struct {
	policy *bluemonday.Policy
}

// NewCleaner creates a cleaner that removes all HTML
func NewCleaner() *Cleaner {
	return &Cleaner{policy: bluemonday.StrictPolicy()}
}

// Text removes all HTML, decodes entities and collapses runs of blank
// lines
func (c *Cleaner) Text(s string) string {
	if s == "" {
		return ""
	}
	text := html.UnescapeString(c.policy.Sanitize(s))
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = blankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Summary cleans the free-text fields of a list entry in place
func (c *Cleaner) Summary(job *domain.JobSummary) {
	job.Title = c.Text(job.Title)
	job.Location = c.Text(job.Location)
	job.EmploymentType = c.Text(job.EmploymentType)
	job.PackagePerAnnum = c.Text(job.PackagePerAnnum)
	job.JobDescription = c.Text(job.JobDescription)
}

// Detail cleans a job detail in place
func (c *Cleaner) Detail(job *domain.JobDetail) {
	c.Summary(&job.JobSummary)
	job.LifeAtCompany.Description = c.Text(job.LifeAtCompany.Description)
	for i := range job.Skills {
		job.Skills[i].Name = c.Text(job.Skills[i].Name)
	}
}

// Similar cleans a similar-job record in place
func (c *Cleaner) Similar(job *domain.SimilarJob) {
	job.Title = c.Text(job.Title)
	job.Location = c.Text(job.Location)
	job.EmploymentType = c.Text(job.EmploymentType)
	job.JobDescription = c.Text(job.JobDescription)
}

// Profile cleans a profile card in place
func (c *Cleaner) Profile(p *domain.Profile) {
	p.Name = c.Text(p.Name)
	p.ShortBio = c.Text(p.ShortBio)
}
