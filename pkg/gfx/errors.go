package gfx

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	ErrCompile        = errors.New("shader compile failed")
	ErrLink           = errors.New("program link failed")
	ErrInvalidSource  = errors.New("invalid shader source")
	ErrInvalidBinding = errors.New("invalid attribute binding")
	ErrNotLinked      = errors.New("program is not linked")
)

// SetupError reports a pipeline that could not be built. It is never
// recoverable: the caller is expected to abort.
type SetupError struct {
	Op    string
	Stage Stage
	Log   string
	Err   error
}

func (e *SetupError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Op)
	if e.Stage != 0 {
		sb.WriteString(" ")
		sb.WriteString(e.Stage.String())
		sb.WriteString(" shader")
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	if log := strings.TrimRight(e.Log, "\x00\n "); log != "" {
		sb.WriteString(": ")
		sb.WriteString(log)
	}
	return sb.String()
}

func (e *SetupError) Unwrap() error { return e.Err }

// RuntimeError reports a graphics call after which the driver raised an
// error code.
type RuntimeError struct {
	Call string
	File string
	Line int
	Code uint32
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[%s:%d] %s returned %d", filepath.Base(e.File), e.Line, e.Call, e.Code)
}
