// Package joblist drives the filtered job list. Filter mutations and
// explicit searches issue loads in the background; the most recently
// issued load is the one that settles the list.
package joblist

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/project-tktt/jobby/internal/domain"
	"github.com/project-tktt/jobby/internal/fetch"
	"github.com/project-tktt/jobby/internal/filter"
	"github.com/project-tktt/jobby/internal/jobsapi"
)

// API builds the list request for a filter snapshot
type API interface {
	JobsRequest(st filter.State) fetch.RequestFunc
}

// State is the list's request state
type State = fetch.State[[]domain.JobSummary]

type Controller struct {
	api     API
	filters *filter.Accumulator
	machine *fetch.Machine[[]domain.JobSummary]
	logger  *zap.Logger

	mu   sync.Mutex
	ctx  context.Context
	last filter.State
	wg   sync.WaitGroup
}

// New creates a controller whose filters trigger background loads
func New(api API, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{
		api:     api,
		machine: fetch.New[[]domain.JobSummary](logger, fetch.WithAbortStale(), fetch.WithName("jobs")),
		logger:  logger,
		ctx:     context.Background(),
	}
	c.filters = filter.NewAccumulator(c.issue)
	return c
}

// Filters returns the accumulator owned by this controller
func (c *Controller) Filters() *filter.Accumulator {
	return c.filters
}

func (c *Controller) State() State {
	return c.machine.State()
}

// OnChange registers fn for every list state transition
func (c *Controller) OnChange(fn func(State)) {
	c.machine.OnChange(fn)
}

// Mount binds background loads to ctx and issues the initial load with
// the current filters.
func (c *Controller) Mount(ctx context.Context) {
	c.mu.Lock()
	c.ctx = ctx
	c.mu.Unlock()
	c.issue(c.filters.Snapshot())
}

// Load fetches the list for st and blocks until it settles
func (c *Controller) Load(ctx context.Context, st filter.State) State {
	c.remember(st)
	return c.machine.Run(ctx, c.api.JobsRequest(st), jobsapi.DecodeJobList)
}

// Retry re-issues the last requested snapshot
func (c *Controller) Retry() {
	c.mu.Lock()
	st := c.last
	c.mu.Unlock()
	c.issue(st)
}

// Empty reports a successful load that returned no jobs
func (c *Controller) Empty() bool {
	st := c.machine.State()
	return st.Success() && len(st.Value) == 0
}

// Wait blocks until every background load has returned
func (c *Controller) Wait() {
	c.wg.Wait()
}

func (c *Controller) issue(st filter.State) {
	c.mu.Lock()
	c.last = st
	ctx := c.ctx
	c.mu.Unlock()

	ticket := c.machine.Begin(ctx)
	c.logger.Debug("issuing job list load",
		zap.Uint64("generation", ticket.Generation()),
		zap.String("search", st.SearchText),
		zap.Int("employment_types", len(st.EmploymentTypes)),
		zap.String("minimum_package", string(st.SalaryRange)))

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.machine.Execute(ticket, c.api.JobsRequest(st), jobsapi.DecodeJobList)
	}()
}

func (c *Controller) remember(st filter.State) {
	c.mu.Lock()
	c.last = st
	c.mu.Unlock()
}
