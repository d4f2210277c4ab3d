package gfx

import "runtime"

// Validation selects how often the driver error state is queried.
type Validation uint8

const (
	// SpotCheck trusts the driver to report problems through the compile
	// and link status flags only.
	SpotCheck Validation = iota
	// CheckEveryCall queries the error state after every driver call. Needed
	// on drivers that defer shader compilation until first use.
	CheckEveryCall
)

func (v Validation) String() string {
	if v == CheckEveryCall {
		return "every-call"
	}
	return "spot-check"
}

// Checker runs driver calls and attributes any reported error to the call
// site. Once an error is recorded it sticks and later calls are skipped.
type Checker struct {
	driver     Driver
	validation Validation
	err        error
}

func NewChecker(driver Driver, validation Validation) *Checker {
	return &Checker{driver: driver, validation: validation}
}

func (c *Checker) Validation() Validation { return c.validation }

// Call executes fn unless a previous call failed. With CheckEveryCall the
// driver error state is read right after fn returns.
func (c *Checker) Call(label string, fn func()) error {
	if c.err != nil {
		return c.err
	}
	fn()
	if c.validation != CheckEveryCall {
		return nil
	}
	if code := c.driver.Error(); code != 0 {
		_, file, line, _ := runtime.Caller(1)
		c.err = &RuntimeError{Call: label, File: file, Line: line, Code: code}
	}
	return c.err
}

// Fail records err as the sticky error unless one is already held.
func (c *Checker) Fail(err error) error {
	if c.err == nil {
		c.err = err
	}
	return c.err
}

func (c *Checker) Err() error { return c.err }
