package platform

// Event is a window system notification returned by Context.PollEvents.
type Event interface{}

// DestroyNotify is a request to close the window.
type DestroyNotify struct{}

// Expose means the window contents must be presented again.
type Expose struct{}
