package dispatch

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"cloudhop/internal/domain"
)

// Parameter keys collected before a dispatch
const (
	ParamHost       = "host"
	ParamRemotePort = "remote_port"
	ParamLocalPort  = "local_port"
	ParamCommand    = "command"
)

// Param describes one value the user is asked for
type Param struct {
	Key      string
	Label    string
	Default  string
	Validate func(string) error
}

// Defaults seed the parameter prompts
type Defaults struct {
	Host       string
	ECSCommand string
}

// Params lists what must be collected before dispatching action on kind.
// An empty list means the action can start straight away.
func Params(kind string, action domain.Action, d Defaults) ([]Param, error) {
	switch action {
	case domain.ActionShell:
		switch kind {
		case domain.KindEC2:
			return nil, nil
		case domain.KindECS:
			return []Param{
				{Key: ParamCommand, Label: "Command", Default: d.ECSCommand, Validate: ValidateCommand},
			}, nil
		}
	case domain.ActionPortForward:
		if kind == domain.KindEC2 || kind == domain.KindECS {
			return []Param{
				{Key: ParamHost, Label: "Remote host", Default: d.Host, Validate: ValidateHost},
				{Key: ParamRemotePort, Label: "Remote port", Validate: ValidatePort},
				{Key: ParamLocalPort, Label: "Local port", Validate: ValidatePort},
			}, nil
		}
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedAction, action)
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
}

// ValidatePort accepts TCP ports 1-65535
func ValidatePort(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("port must be a number between 1 and 65535, got %q", s)
	}
	return nil
}

// ValidateHost rejects empty hosts and hosts with whitespace
func ValidateHost(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("host can't be empty")
	}
	if strings.ContainsAny(s, " \t") {
		return fmt.Errorf("host %q contains whitespace", s)
	}
	return nil
}

// ValidateCommand rejects empty commands and unbalanced quoting
func ValidateCommand(s string) error {
	words, err := shlex.Split(s)
	if err != nil {
		return fmt.Errorf("command %q: %w", s, err)
	}
	if len(words) == 0 {
		return errors.New("command can't be empty")
	}
	return nil
}

func validateParams(params []Param, values map[string]string) error {
	for _, p := range params {
		v, ok := values[p.Key]
		if !ok {
			return fmt.Errorf("missing %s", strings.ToLower(p.Label))
		}
		if p.Validate != nil {
			if err := p.Validate(v); err != nil {
				return fmt.Errorf("%s: %w", strings.ToLower(p.Label), err)
			}
		}
	}
	return nil
}
