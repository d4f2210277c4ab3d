package gfx

import "fmt"

type ProgramState uint8

const (
	Uncompiled ProgramState = iota
	StagesCompiling
	StagesCompiled
	Linking
	Linked
	Failed
)

var programStateNames = [...]string{
	Uncompiled:      "uncompiled",
	StagesCompiling: "stages-compiling",
	StagesCompiled:  "stages-compiled",
	Linking:         "linking",
	Linked:          "linked",
	Failed:          "failed",
}

func (s ProgramState) String() string {
	if int(s) < len(programStateNames) {
		return programStateNames[s]
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

var programTransitions = map[ProgramState][]ProgramState{
	Uncompiled:      {StagesCompiling},
	StagesCompiling: {StagesCompiled, Failed},
	StagesCompiled:  {Linking},
	Linking:         {Linked, Failed},
}

// Program is a linked pipeline. It is usable only in the Linked state.
type Program struct {
	Handle   Handle
	Stages   []CompiledShader
	Bindings []AttributeBinding
	state    ProgramState
}

func (p *Program) State() ProgramState { return p.state }

func (p *Program) Usable() bool { return p != nil && p.Handle != 0 && p.state == Linked }

func (p *Program) advance(to ProgramState) {
	for _, next := range programTransitions[p.state] {
		if next == to {
			p.state = to
			return
		}
	}
	panic(fmt.Sprintf("gfx: program cannot move from %s to %s", p.state, to))
}

// Use binds the program for drawing.
func (p *Program) Use(driver Driver, check *Checker) error {
	if !p.Usable() {
		return check.Fail(&SetupError{Op: "use", Err: ErrNotLinked})
	}
	return check.Call("glUseProgram", func() { driver.UseProgram(p.Handle) })
}

func (p *Program) Release(driver Driver) {
	if p == nil || p.Handle == 0 {
		return
	}
	driver.DeleteProgram(p.Handle)
	p.Handle = 0
}
