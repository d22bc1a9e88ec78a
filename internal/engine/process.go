package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const exitRejected = 1

// waitDelay bounds how long a killed engine may hold its stderr open.
const waitDelay = 2 * time.Second

// Process runs an external executable for every parse request.
type Process struct {
	// Path is the engine executable.
	Path string
	// Args are inserted before the protocol arguments, e.g. a script for
	// an interpreter given as Path.
	Args []string
	// Timeout bounds one invocation. Zero means no limit.
	Timeout time.Duration
}

var (
	_ QueryParser  = (*Process)(nil)
	_ UpdateParser = (*Process)(nil)
	_ RDFParser    = (*Process)(nil)
)

// ParseQuery implements QueryParser.
func (p *Process) ParseQuery(ctx context.Context, query, base string) error {
	return p.run(ctx, "query", base, []byte(query))
}

// ParseUpdate implements UpdateParser.
func (p *Process) ParseUpdate(ctx context.Context, update, base string) error {
	return p.run(ctx, "update", base, []byte(update))
}

// ParseRDF implements RDFParser.
func (p *Process) ParseRDF(ctx context.Context, data []byte, format Syntax, base string) error {
	return p.run(ctx, string(format), base, data)
}

func (p *Process) run(ctx context.Context, kind, base string, input []byte) error {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	args := append(append([]string{}, p.Args...), "parse", kind, "--base", base)
	cmd := exec.CommandContext(ctx, p.Path, args...)
	cmd.Stdin = bytes.NewReader(input)
	cmd.WaitDelay = waitDelay

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return &ProtocolError{Path: p.Path, Kind: kind, ExitCode: -1, Stderr: stderr.String(), Err: ctxErr}
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return &ProtocolError{Path: p.Path, Kind: kind, Err: fmt.Errorf("failed to start: %w", err)}
	}

	switch exitErr.ExitCode() {
	case exitRejected:
		return &RejectedError{Message: strings.TrimSpace(stderr.String())}
	default:
		return &ProtocolError{Path: p.Path, Kind: kind, ExitCode: exitErr.ExitCode(), Stderr: stderr.String()}
	}
}
