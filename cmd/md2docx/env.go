package main

import (
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/go-rod/rod/lib/launcher"

	md2docx "github.com/alnah/go-md2docx"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now        func() time.Time
	Stdout     io.Writer
	Stderr     io.Writer
	Runner     md2docx.CommandRunner        // version checks in doctor
	LookPath   func(string) (string, error) // tool lookup in doctor
	FindChrome func() (string, bool)

	// Options are applied after the ones derived from config and flags,
	// so tests can swap the renderer, fetcher or assembler.
	Options []md2docx.Option
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:        time.Now,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Runner:     &md2docx.ExecRunner{},
		LookPath:   exec.LookPath,
		FindChrome: launcher.LookPath,
	}
}
