// Package route decides which screen a navigation actually lands on.
package route

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/project-tktt/jobby/internal/session"
)

// Name identifies a screen
type Name string

const (
	Home      Name = "HOME"
	Login     Name = "LOGIN"
	Jobs      Name = "JOBS"
	JobDetail Name = "JOB_DETAIL"
	NotFound  Name = "NOT_FOUND"
)

// Target is a navigation destination. JobID is set only for JobDetail.
type Target struct {
	Name  Name
	JobID string
}

// Path renders the target back to its URL path
func (t Target) Path() string {
	switch t.Name {
	case Home:
		return "/"
	case Login:
		return "/login"
	case Jobs:
		return "/jobs"
	case JobDetail:
		return "/jobs/" + t.JobID
	}
	return "/not-found"
}

// Protected reports whether the target requires a session
func (t Target) Protected() bool {
	switch t.Name {
	case Home, Jobs, JobDetail:
		return true
	}
	return false
}

// Parse maps a path to a target; unknown paths map to NotFound
func Parse(path string) Target {
	path = strings.TrimSuffix(path, "/")
	switch path {
	case "":
		return Target{Name: Home}
	case "/login":
		return Target{Name: Login}
	case "/jobs":
		return Target{Name: Jobs}
	}
	if id, ok := strings.CutPrefix(path, "/jobs/"); ok && id != "" && !strings.Contains(id, "/") {
		return Target{Name: JobDetail, JobID: id}
	}
	return Target{Name: NotFound}
}

// CanEnter reports whether a protected screen may be shown
func CanEnter(s session.Session) bool {
	return s.Authenticated()
}

// Gate resolves navigation against the current session
type Gate struct {
	store  session.Store
	logger *zap.Logger
}

// NewGate creates a gate reading from store
func NewGate(store session.Store, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{store: store, logger: logger}
}

// Resolve returns where a navigation to target ends up: Login for a
// protected target without a session, Home for Login with one.
func (g *Gate) Resolve(ctx context.Context, target Target) Target {
	return Redirect(target, session.Current(ctx, g.store, g.logger))
}

// Redirect is the pure form of Resolve
func Redirect(target Target, s session.Session) Target {
	switch {
	case target.Protected() && !CanEnter(s):
		return Target{Name: Login}
	case target.Name == Login && CanEnter(s):
		return Target{Name: Home}
	}
	return target
}
