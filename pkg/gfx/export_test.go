package gfx

// ProgramInState returns a program that skipped the build steps.
func ProgramInState(handle Handle, state ProgramState) *Program {
	return &Program{Handle: handle, state: state}
}
