// Package dispatch turns a resolved resource path into an interactive aws CLI
// session and runs it in the foreground.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strings"

	"github.com/charmbracelet/log"

	"cloudhop/internal/domain"
)

const portForwardDocument = "AWS-StartPortForwardingSessionToRemoteHost"

// Request is everything needed to start a session
type Request struct {
	Kind   string
	Action domain.Action
	Path   domain.ResolvedPath
	Params map[string]string
}

// Options configure the aws CLI invocation
type Options struct {
	AWSCLI  string // binary, defaults to "aws"
	Region  string
	Profile string
}

// Runner starts a prepared command and waits for it
type Runner func(cmd *exec.Cmd) error

// Dispatcher builds and runs session commands
type Dispatcher struct {
	opts   Options
	logger *log.Logger
	run    Runner

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New creates a dispatcher that inherits the process stdio
func New(opts Options, logger *log.Logger) *Dispatcher {
	if opts.AWSCLI == "" {
		opts.AWSCLI = "aws"
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Dispatcher{
		opts:   opts,
		logger: logger,
		run:    runForeground,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// WithRunner replaces how commands are executed
func (d *Dispatcher) WithRunner(r Runner) *Dispatcher {
	d.run = r
	return d
}

// Args returns the aws CLI arguments for req, without the binary
func (d *Dispatcher) Args(req Request) ([]string, error) {
	params, err := Params(req.Kind, req.Action, Defaults{})
	if err != nil {
		return nil, err
	}

	var args []string
	switch req.Kind {
	case domain.KindEC2:
		args, err = ec2Args(req)
	case domain.KindECS:
		args, err = ecsArgs(req)
	}
	if err != nil {
		return nil, err
	}
	if err := validateParams(params, req.Params); err != nil {
		return nil, err
	}
	if d.opts.Region != "" {
		args = append(args, "--region", d.opts.Region)
	}
	if d.opts.Profile != "" {
		args = append(args, "--profile", d.opts.Profile)
	}
	return args, nil
}

func ec2Args(req Request) ([]string, error) {
	instance, ok := req.Path.At(0)
	if !ok || len(req.Path) != 1 {
		return nil, fmt.Errorf("%w: want an instance, got %d levels", domain.ErrInvalidDispatch, len(req.Path))
	}
	if req.Action == domain.ActionShell {
		return []string{"ssm", "start-session", "--target", instance.ID}, nil
	}
	return portForwardArgs(instance.ID, req.Params)
}

func ecsArgs(req Request) ([]string, error) {
	if len(req.Path) != 4 {
		return nil, fmt.Errorf("%w: want cluster/service/task/container, got %d levels", domain.ErrInvalidDispatch, len(req.Path))
	}
	cluster, task, container := req.Path[0], req.Path[2], req.Path[3]

	if req.Action == domain.ActionShell {
		return []string{
			"ecs", "execute-command",
			"--cluster", cluster.ID,
			"--task", task.ID,
			"--container", container.ID,
			"--command", req.Params[ParamCommand],
			"--interactive",
		}, nil
	}
	if container.Aux == "" {
		return nil, fmt.Errorf("%w: container %s has no runtime id", domain.ErrInvalidDispatch, container.Label())
	}
	return portForwardArgs(ECSTarget(cluster.ID, task.ID, container.Aux), req.Params)
}

// ECSTarget is the SSM target name of a running ECS container
func ECSTarget(cluster, task, runtimeID string) string {
	return fmt.Sprintf("ecs:%s_%s_%s", domain.ArnName(cluster), domain.ArnName(task), runtimeID)
}

func portForwardArgs(target string, params map[string]string) ([]string, error) {
	doc, err := json.Marshal(map[string][]string{
		"host":            {strings.TrimSpace(params[ParamHost])},
		"portNumber":      {strings.TrimSpace(params[ParamRemotePort])},
		"localPortNumber": {strings.TrimSpace(params[ParamLocalPort])},
	})
	if err != nil {
		return nil, err
	}
	return []string{
		"ssm", "start-session",
		"--target", target,
		"--document-name", portForwardDocument,
		"--parameters", string(doc),
	}, nil
}

// Dispatch runs the session in the foreground until it exits. A session that
// starts and later exits non-zero is not an error: the handoff happened.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) error {
	args, err := d.Args(req)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, d.opts.AWSCLI, args...)
	cmd.Stdin = d.Stdin
	cmd.Stdout = d.Stdout
	cmd.Stderr = d.Stderr

	d.logger.Info("starting session", "kind", req.Kind, "action", req.Action, "path", req.Path.String())
	fmt.Fprintf(d.Stderr, "$ %s %s\n", d.opts.AWSCLI, strings.Join(args, " "))

	err = d.run(cmd)
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		d.logger.Warn("session exited", "code", exitErr.ExitCode())
		return nil
	}
	if err != nil {
		return fmt.Errorf("start %s: %w", d.opts.AWSCLI, err)
	}
	d.logger.Info("session finished")
	return nil
}

// runForeground ignores interrupts in this process while the child owns
// the terminal, so Ctrl+C reaches the session only.
func runForeground(cmd *exec.Cmd) error {
	signal.Ignore(os.Interrupt)
	defer signal.Reset(os.Interrupt)
	return cmd.Run()
}
