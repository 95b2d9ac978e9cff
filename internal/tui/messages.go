package tui

import (
	"github.com/project-tktt/jobby/internal/auth"
	"github.com/project-tktt/jobby/internal/route"
)

// Controller notifications, forwarded with Program.Send
type (
	jobsChangedMsg    struct{}
	detailChangedMsg  struct{}
	profileChangedMsg struct{}
)

type navigateMsg struct {
	target route.Target
}

// routedMsg carries a target after the gate has resolved it
type routedMsg struct {
	target route.Target
}

type loginDoneMsg struct {
	state auth.State
}

type loggedOutMsg struct {
	err error
}
