package boids

import (
	"errors"
	"strings"
)

var (
	ErrNotReady       = errors.New("renderer not ready")
	ErrAlreadySetup   = errors.New("renderer already set up")
	ErrInvalidSurface = errors.New("surface must have positive width and height")
	ErrNoContext      = errors.New("no graphics context acquired")
	ErrReleased       = errors.New("renderer resources released")
)

// ShaderCompileError is returned when a shader stage fails to compile.
type ShaderCompileError struct {
	Kind    ShaderKind
	InfoLog string
}

func (e *ShaderCompileError) Error() string {
	return "compiling " + e.Kind.String() + " shader: " + trimLog(e.InfoLog)
}

// ProgramLinkError is returned when linking compiled stages into a program fails.
type ProgramLinkError struct {
	InfoLog string
}

func (e *ProgramLinkError) Error() string {
	return "linking shader program: " + trimLog(e.InfoLog)
}

func trimLog(log string) string {
	log = strings.TrimRight(log, "\x00 \t\r\n")
	if log == "" {
		return "no diagnostics"
	}
	return log
}
