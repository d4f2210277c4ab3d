package gfxtest

import (
	"time"

	"github.com/kjkrol/glmin/internal/platform"
)

// Context is a platform.Context that only counts what happens to it.
type Context struct {
	Config platform.ContextConfig
	Swaps  int
	Delays []time.Duration
	Closed bool

	// Pending is returned, then cleared, by the next PollEvents.
	Pending []platform.Event
	Polls   int

	// OnSwap, when set, runs after every SwapBuffers.
	OnSwap func(swaps int)
}

func NewContext(conf platform.ContextConfig) *Context {
	return &Context{Config: conf}
}

func (c *Context) SwapBuffers() {
	c.Swaps++
	if c.OnSwap != nil {
		c.OnSwap(c.Swaps)
	}
}

func (c *Context) PollEvents() []platform.Event {
	c.Polls++
	events := c.Pending
	c.Pending = nil
	return events
}

func (c *Context) Delay(d time.Duration) { c.Delays = append(c.Delays, d) }

func (c *Context) Size() (int, int) { return c.Config.Width, c.Config.Height }

func (c *Context) Close() { c.Closed = true }

// Opener returns a platform.Opener handing out ctx, or failing with err
// when err is not nil. The requested config is stored on ctx.
func Opener(ctx *Context, err error) platform.Opener {
	return func(conf platform.ContextConfig) (platform.Context, error) {
		if err != nil {
			return nil, err
		}
		if verr := conf.Validate(); verr != nil {
			return nil, verr
		}
		ctx.Config = conf
		return ctx, nil
	}
}
