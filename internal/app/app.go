// Package app wires configuration, logging, the resource directory, the
// interactive navigator and the session dispatcher together.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"cloudhop/internal/config"
	"cloudhop/internal/directory"
	"cloudhop/internal/directory/awsdir"
	"cloudhop/internal/directory/static"
	"cloudhop/internal/dispatch"
	"cloudhop/internal/logging"
	"cloudhop/internal/navigator"
	"cloudhop/internal/ui"
)

// AWSCLIEnv overrides the aws binary from the config file
const AWSCLIEnv = "CLOUDHOP_AWS_CLI"

// Options configure one run
type Options struct {
	Kind       string
	ConfigPath string // empty uses ~/.config/cloudhop/config.toml
	Region     string
	Profile    string
	Fixture    string // TOML resource tree used instead of AWS
}

// source builds the level definitions for a resource kind
type source interface {
	Hierarchy(kind string) (directory.Hierarchy, error)
}

// Session is a prepared run: config loaded, logger open, base level fetched
type Session struct {
	Config    *config.Config
	Logger    *log.Logger
	Kind      string
	Directory directory.Directory
	Navigator *navigator.Navigator

	closer     io.Closer
	dispatcher *dispatch.Dispatcher
}

// ErrNotATerminal is returned when stdin or stdout is not interactive
var ErrNotATerminal = errors.New("cloudhop needs an interactive terminal")

// Run prepares a session, runs the navigator and dispatches the chosen action
func Run(ctx context.Context, opts Options) error {
	if !interactive(os.Stdin, os.Stdout) {
		return ErrNotATerminal
	}
	s, err := Prepare(ctx, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	out, err := ui.Run(ctx, s.Navigator, s.uiOptions())
	if err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return s.Finish(ctx, out)
}

// Prepare loads configuration, opens the log and fetches the base level.
// A base level that cannot be listed ends the run before any UI is drawn.
func Prepare(ctx context.Context, opts Options) (*Session, error) {
	svc, err := config.NewConfigService(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	cfg, err := svc.Load()
	if err != nil {
		return nil, err
	}
	cfg.Override(opts.Region, opts.Profile)
	if bin := strings.TrimSpace(os.Getenv(AWSCLIEnv)); bin != "" {
		cfg.AWSCLI = bin
	}

	logger, closer, err := logging.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	s := &Session{Config: cfg, Logger: logger, Kind: opts.Kind, closer: closer}
	if err := s.load(ctx, opts); err != nil {
		s.Close()
		return nil, err
	}
	s.dispatcher = dispatch.New(dispatch.Options{
		AWSCLI:  cfg.AWSCLI,
		Region:  cfg.Region,
		Profile: cfg.Profile,
	}, logger.With("component", "dispatch"))
	return s, nil
}

func (s *Session) load(ctx context.Context, opts Options) error {
	src, err := s.source(ctx, opts)
	if err != nil {
		return err
	}
	h, err := src.Hierarchy(opts.Kind)
	if err != nil {
		return err
	}
	s.Directory = directory.Dedupe(h)
	s.Navigator = navigator.New(h.Titles(),
		navigator.WithRetryDelay(s.Config.RetryDelay.Std()),
		navigator.WithLogger(s.Logger.With("component", "navigator")),
	)

	s.Logger.Info("session start", "kind", opts.Kind, "region", s.Config.Region, "profile", s.Config.Profile, "fixture", opts.Fixture)
	if err := s.Navigator.LoadBase(ctx, s.Directory, s.Config.FetchTimeout.Std()); err != nil {
		s.Logger.Error("base level failed", "err", err)
		return err
	}
	return nil
}

func (s *Session) source(ctx context.Context, opts Options) (source, error) {
	if opts.Fixture != "" {
		return static.Load(opts.Fixture)
	}
	return awsdir.New(ctx, awsdir.Options{Region: s.Config.Region, Profile: s.Config.Profile})
}

func (s *Session) uiOptions() ui.Options {
	return ui.Options{
		Kind:         s.Kind,
		Directory:    s.Directory,
		FetchTimeout: s.Config.FetchTimeout.Std(),
		TickInterval: s.Config.TickInterval.Std(),
		Defaults: dispatch.Defaults{
			Host:       s.Config.DefaultHost,
			ECSCommand: s.Config.ECSCommand,
		},
		Logger: s.Logger,
	}
}

// Dispatcher returns the dispatcher used by Finish
func (s *Session) Dispatcher() *dispatch.Dispatcher {
	return s.dispatcher
}

// Finish hands the terminal to the chosen session, if any
func (s *Session) Finish(ctx context.Context, out ui.Outcome) error {
	if !out.Dispatch {
		s.Logger.Info("session end", "dispatch", false)
		return nil
	}
	return s.dispatcher.Dispatch(ctx, out.Request)
}

// Close flushes the log file
func (s *Session) Close() {
	if s.closer != nil {
		_ = s.closer.Close()
	}
}

func interactive(files ...*os.File) bool {
	for _, f := range files {
		fd := f.Fd()
		if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
			return false
		}
	}
	return true
}
