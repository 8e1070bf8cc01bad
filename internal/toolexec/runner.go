// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package toolexec runs external converter binaries with piped stdin and
// stdout. Converters that shell out (pandoc, the PDF renderer) take a
// Runner so tests can substitute a fake.
package toolexec

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
)

// Runner executes a named binary, piping stdin and stdout.
type Runner interface {
	// LookPath reports whether the binary exists on PATH.
	LookPath(file string) (string, error)

	// RunPiped executes the binary with the given arguments, feeding
	// stdin and capturing stdout.
	RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error
}

// OSRunner is the production Runner backed by os/exec.
type OSRunner struct{}

func (OSRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (OSRunner) RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return fmt.Errorf("%s: %w: %s", name, err, stderr.String())
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Pipe runs the binary over the input bytes and returns its output.
// Empty output is an error: every tool wired through this seam is
// expected to produce content.
func Pipe(r Runner, name string, args []string, input []byte) ([]byte, error) {
	if _, err := r.LookPath(name); err != nil {
		return nil, fmt.Errorf("%s not found on PATH: %w", name, err)
	}

	var out bytes.Buffer
	if err := r.RunPiped(name, args, bytes.NewReader(input), &out); err != nil {
		return nil, err
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("%s produced empty output", name)
	}
	return out.Bytes(), nil
}
