// Package screen drives the lifecycle of a single commit screen: one fetch at a time,
// results delivered over channels, and late results dropped once the screen is closed.
package screen

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/just-nibble/commit-view/internal/core/domain/entities"
	"github.com/just-nibble/commit-view/internal/core/service"
	"github.com/just-nibble/commit-view/internal/logger"
	"github.com/just-nibble/commit-view/internal/usecases"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/sync/singleflight"
)

var ErrClosed = errors.New("screen closed")

// Result is what a Load delivers: a view, or the reason there is none
type Result struct {
	View *entities.CommitView
	Err  error
}

// Controller owns the state of one commit screen. All methods are safe for concurrent use.
type Controller struct {
	key     entities.CommitKey
	known   entities.KnownLogins
	fetcher usecases.CommitFetcher
	builder *service.CommitViewBuilder
	now     func() time.Time
	log     *logger.Logger

	group  singleflight.Group
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	payload []byte
	closed  bool
}

func NewController(key entities.CommitKey, known entities.KnownLogins, fetcher usecases.CommitFetcher, now func() time.Time, log *logger.Logger) *Controller {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		key:     key,
		known:   known,
		fetcher: fetcher,
		builder: service.NewCommitViewBuilder(),
		now:     now,
		log:     log.With("commit", key.String()),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Load returns a channel that receives exactly one Result, or is closed empty if the screen
// is closed first. When a payload is already held (fetched earlier or restored) no fetch is made.
// Calls made while a fetch is pending join that fetch instead of starting another.
func (c *Controller) Load() <-chan Result {
	out := make(chan Result, 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		close(out)
		return out
	}
	if c.payload != nil {
		payload := c.payload
		c.mu.Unlock()
		out <- c.build(payload)
		close(out)
		return out
	}
	c.mu.Unlock()

	pending := c.group.DoChan(c.key.String(), func() (interface{}, error) {
		c.log.Debug("fetching commit")
		payload, err := c.fetcher.GetCommit(c.ctx, c.key.Owner, c.key.Repo, c.key.SHA)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if !c.closed {
			c.payload = payload
		}
		c.mu.Unlock()
		return payload, nil
	})

	go func() {
		defer close(out)
		r := <-pending

		c.mu.Lock()
		closed := c.closed
		c.mu.Unlock()
		if closed {
			c.log.Debug("discarding result for closed screen")
			return
		}

		if r.Err != nil {
			out <- Result{Err: usecases.FetchError(c.key, r.Err)}
			return
		}
		out <- c.build(r.Val.([]byte))
	}()

	return out
}

func (c *Controller) build(payload []byte) Result {
	view, err := c.builder.Build(payload, c.known, c.now())
	if err != nil {
		return Result{Err: err}
	}
	return Result{View: view}
}

// SavedState returns the raw payload to persist across re-creation, or "" when nothing was loaded
func (c *Controller) SavedState() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return string(c.payload)
}

// Restore installs a previously saved payload; the next Load derives the view from it in full
func (c *Controller) Restore(state string) error {
	if !jsoniter.Valid([]byte(state)) {
		return fmt.Errorf("restore %s: %w", c.key, service.ErrInvalidPayload)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.payload = []byte(state)
	return nil
}

// Close cancels any pending fetch; results arriving afterwards are dropped
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancel()
}
