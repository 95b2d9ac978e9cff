// Package jobdetail loads one job posting with its similar jobs.
package jobdetail

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/project-tktt/jobby/internal/domain"
	"github.com/project-tktt/jobby/internal/fetch"
	"github.com/project-tktt/jobby/internal/jobsapi"
)

// ReasonMissingID is the failure reason for an empty job id
const ReasonMissingID = "missing job id"

// API builds the detail request for a job id
type API interface {
	JobRequest(id string) fetch.RequestFunc
}

// Detail is a job with its similar jobs
type Detail = domain.JobDetailPage

// State is the detail's request state
type State = fetch.State[Detail]

type Controller struct {
	api     API
	machine *fetch.Machine[Detail]
	logger  *zap.Logger

	mu  sync.Mutex
	ctx context.Context
	id  string
	wg  sync.WaitGroup
}

func New(api API, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		api:     api,
		machine: fetch.New[Detail](logger, fetch.WithAbortStale(), fetch.WithName("job_detail")),
		logger:  logger,
		ctx:     context.Background(),
	}
}

func (c *Controller) State() State {
	return c.machine.State()
}

func (c *Controller) OnChange(fn func(State)) {
	c.machine.OnChange(fn)
}

// ID returns the job id of the latest load
func (c *Controller) ID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id
}

// Load fetches id and blocks until it settles
func (c *Controller) Load(ctx context.Context, id string) State {
	id = strings.TrimSpace(id)
	c.setID(id)
	if id == "" {
		return c.machine.Reject(fetch.InvalidError(ReasonMissingID))
	}
	return c.machine.Run(ctx, c.api.JobRequest(id), jobsapi.DecodeJobDetail)
}

// Mount binds background loads to ctx
func (c *Controller) Mount(ctx context.Context) {
	c.mu.Lock()
	c.ctx = ctx
	c.mu.Unlock()
}

// Navigate loads id in the background unless it is already shown or
// loading. A failed id is loaded again.
func (c *Controller) Navigate(id string) {
	id = strings.TrimSpace(id)
	st := c.machine.State()
	if id != "" && id == c.ID() && !st.Idle() && !st.Failed() {
		return
	}
	c.issue(id)
}

// Retry reloads the current id
func (c *Controller) Retry() {
	c.issue(c.ID())
}

// Wait blocks until every background load has returned
func (c *Controller) Wait() {
	c.wg.Wait()
}

func (c *Controller) issue(id string) {
	c.setID(id)
	if id == "" {
		c.machine.Reject(fetch.InvalidError(ReasonMissingID))
		return
	}

	c.mu.Lock()
	ctx := c.ctx
	c.mu.Unlock()

	ticket := c.machine.Begin(ctx)
	c.logger.Debug("issuing job detail load",
		zap.Uint64("generation", ticket.Generation()),
		zap.String("job_id", id))

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.machine.Execute(ticket, c.api.JobRequest(id), jobsapi.DecodeJobDetail)
	}()
}

func (c *Controller) setID(id string) {
	c.mu.Lock()
	c.id = id
	c.mu.Unlock()
}
