package dispatch

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudhop/internal/domain"
)

var ecsPath = domain.ResolvedPath{
	{Name: "prod", ID: "arn:aws:ecs:eu-west-1:123:cluster/prod"},
	{Name: "api", ID: "arn:aws:ecs:eu-west-1:123:service/prod/api"},
	{Name: "abc123", ID: "arn:aws:ecs:eu-west-1:123:task/prod/abc123"},
	{Name: "app", ID: "app", Aux: "abc123-4567"},
}

var ec2Path = domain.ResolvedPath{{Name: "web (i-0abc)", ID: "i-0abc"}}

var forwardParams = map[string]string{
	ParamHost:       "db.internal",
	ParamRemotePort: "5432",
	ParamLocalPort:  "15432",
}

const forwardJSON = `{"host":["db.internal"],"localPortNumber":["15432"],"portNumber":["5432"]}`

func TestArgsPerKindAndAction(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		req  Request
		want []string
	}{
		{
			name: "ec2 shell",
			req:  Request{Kind: domain.KindEC2, Action: domain.ActionShell, Path: ec2Path},
			want: []string{"ssm", "start-session", "--target", "i-0abc"},
		},
		{
			name: "ec2 port forward",
			req:  Request{Kind: domain.KindEC2, Action: domain.ActionPortForward, Path: ec2Path, Params: forwardParams},
			want: []string{
				"ssm", "start-session", "--target", "i-0abc",
				"--document-name", "AWS-StartPortForwardingSessionToRemoteHost",
				"--parameters", forwardJSON,
			},
		},
		{
			name: "ecs shell",
			req: Request{Kind: domain.KindECS, Action: domain.ActionShell, Path: ecsPath,
				Params: map[string]string{ParamCommand: "/bin/bash"}},
			want: []string{
				"ecs", "execute-command",
				"--cluster", "arn:aws:ecs:eu-west-1:123:cluster/prod",
				"--task", "arn:aws:ecs:eu-west-1:123:task/prod/abc123",
				"--container", "app",
				"--command", "/bin/bash",
				"--interactive",
			},
		},
		{
			name: "ecs port forward",
			req:  Request{Kind: domain.KindECS, Action: domain.ActionPortForward, Path: ecsPath, Params: forwardParams},
			want: []string{
				"ssm", "start-session", "--target", "ecs:prod_abc123_abc123-4567",
				"--document-name", "AWS-StartPortForwardingSessionToRemoteHost",
				"--parameters", forwardJSON,
			},
		},
		{
			name: "region and profile",
			opts: Options{Region: "eu-west-1", Profile: "ops"},
			req:  Request{Kind: domain.KindEC2, Action: domain.ActionShell, Path: ec2Path},
			want: []string{"ssm", "start-session", "--target", "i-0abc", "--region", "eu-west-1", "--profile", "ops"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := New(tt.opts, nil).Args(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, args)
		})
	}
}

func TestArgsRejectsBadRequests(t *testing.T) {
	d := New(Options{}, nil)
	tests := []struct {
		name   string
		req    Request
		target error
		msg    string
	}{
		{
			name:   "unknown kind",
			req:    Request{Kind: "lambda", Action: domain.ActionShell},
			target: domain.ErrUnknownKind,
		},
		{
			name:   "unknown action",
			req:    Request{Kind: domain.KindEC2, Action: "reboot", Path: ec2Path},
			target: domain.ErrUnsupportedAction,
		},
		{
			name:   "partial ecs path",
			req:    Request{Kind: domain.KindECS, Action: domain.ActionShell, Path: ecsPath[:2], Params: map[string]string{ParamCommand: "sh"}},
			target: domain.ErrInvalidDispatch,
		},
		{
			name:   "empty ec2 path",
			req:    Request{Kind: domain.KindEC2, Action: domain.ActionShell},
			target: domain.ErrInvalidDispatch,
		},
		{
			name: "missing port",
			req:  Request{Kind: domain.KindEC2, Action: domain.ActionPortForward, Path: ec2Path, Params: map[string]string{ParamHost: "localhost", ParamRemotePort: "80"}},
			msg:  "missing local port",
		},
		{
			name: "port out of range",
			req: Request{Kind: domain.KindEC2, Action: domain.ActionPortForward, Path: ec2Path,
				Params: map[string]string{ParamHost: "localhost", ParamRemotePort: "70000", ParamLocalPort: "80"}},
			msg: "remote port",
		},
		{
			name: "container without runtime id",
			req: Request{Kind: domain.KindECS, Action: domain.ActionPortForward, Path: append(ecsPath[:3].Clone(), domain.Resource{ID: "app"}),
				Params: forwardParams},
			target: domain.ErrInvalidDispatch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Args(tt.req)
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
			if tt.msg != "" {
				assert.ErrorContains(t, err, tt.msg)
			}
		})
	}
}

func TestParams(t *testing.T) {
	defaults := Defaults{Host: "localhost", ECSCommand: "/bin/sh"}

	params, err := Params(domain.KindEC2, domain.ActionShell, defaults)
	require.NoError(t, err)
	assert.Empty(t, params)

	params, err = Params(domain.KindECS, domain.ActionShell, defaults)
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, "/bin/sh", params[0].Default)

	params, err = Params(domain.KindECS, domain.ActionPortForward, defaults)
	require.NoError(t, err)
	keys := make([]string, len(params))
	for i, p := range params {
		keys[i] = p.Key
	}
	assert.Equal(t, []string{ParamHost, ParamRemotePort, ParamLocalPort}, keys)
	assert.Equal(t, "localhost", params[0].Default)
}

func TestValidators(t *testing.T) {
	for _, ok := range []string{"1", "80", "65535", " 8080 "} {
		assert.NoError(t, ValidatePort(ok), ok)
	}
	for _, bad := range []string{"", "0", "65536", "-1", "http", "80.5"} {
		assert.Error(t, ValidatePort(bad), bad)
	}
	assert.NoError(t, ValidateHost("10.0.0.1"))
	assert.Error(t, ValidateHost("  "))
	assert.Error(t, ValidateHost("two words"))
	assert.NoError(t, ValidateCommand("/bin/bash"))
	assert.NoError(t, ValidateCommand(`sh -c "tail -f /var/log/app.log"`))
	assert.Error(t, ValidateCommand(""))
	assert.Error(t, ValidateCommand("   "))
	assert.Error(t, ValidateCommand(`sh -c "echo`))
}

func TestDispatchRunsCommandWithInheritedIO(t *testing.T) {
	var got *exec.Cmd
	var stderr bytes.Buffer
	d := New(Options{AWSCLI: "/usr/local/bin/aws"}, nil).WithRunner(func(cmd *exec.Cmd) error {
		got = cmd
		return nil
	})
	d.Stderr = &stderr

	err := d.Dispatch(context.Background(), Request{Kind: domain.KindEC2, Action: domain.ActionShell, Path: ec2Path})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"/usr/local/bin/aws", "ssm", "start-session", "--target", "i-0abc"}, got.Args)
	assert.Same(t, d.Stdin, got.Stdin)
	assert.Contains(t, stderr.String(), "ssm start-session --target i-0abc")
}

func TestDispatchStartFailureIsAnError(t *testing.T) {
	d := New(Options{}, nil).WithRunner(func(cmd *exec.Cmd) error {
		return exec.ErrNotFound
	})
	d.Stderr = &bytes.Buffer{}

	err := d.Dispatch(context.Background(), Request{Kind: domain.KindEC2, Action: domain.ActionShell, Path: ec2Path})
	assert.True(t, errors.Is(err, exec.ErrNotFound))
}

func TestDispatchInvalidRequestRunsNothing(t *testing.T) {
	ran := false
	d := New(Options{}, nil).WithRunner(func(cmd *exec.Cmd) error {
		ran = true
		return nil
	})

	err := d.Dispatch(context.Background(), Request{Kind: domain.KindECS, Action: domain.ActionShell})
	assert.ErrorIs(t, err, domain.ErrInvalidDispatch)
	assert.False(t, ran)
}
