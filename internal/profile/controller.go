// Package profile loads the signed-in user's profile card.
package profile

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/project-tktt/jobby/internal/domain"
	"github.com/project-tktt/jobby/internal/fetch"
	"github.com/project-tktt/jobby/internal/jobsapi"
)

type API interface {
	ProfileRequest() fetch.RequestFunc
}

type State = fetch.State[domain.Profile]

type Controller struct {
	api     API
	machine *fetch.Machine[domain.Profile]

	mu  sync.Mutex
	ctx context.Context
	wg  sync.WaitGroup
}

func New(api API, logger *zap.Logger) *Controller {
	return &Controller{
		api:     api,
		machine: fetch.New[domain.Profile](logger, fetch.WithName("profile")),
		ctx:     context.Background(),
	}
}

func (c *Controller) State() State            { return c.machine.State() }
func (c *Controller) OnChange(fn func(State)) { c.machine.OnChange(fn) }
func (c *Controller) Load(ctx context.Context) State {
	return c.machine.Run(ctx, c.api.ProfileRequest(), jobsapi.DecodeProfile)
}

// Mount binds background loads to ctx and loads the profile
func (c *Controller) Mount(ctx context.Context) {
	c.mu.Lock()
	c.ctx = ctx
	c.mu.Unlock()
	c.Retry()
}

// Retry loads the profile in the background
func (c *Controller) Retry() {
	c.mu.Lock()
	ctx := c.ctx
	c.mu.Unlock()

	ticket := c.machine.Begin(ctx)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.machine.Execute(ticket, c.api.ProfileRequest(), jobsapi.DecodeProfile)
	}()
}

func (c *Controller) Wait() { c.wg.Wait() }
