package cli_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"chaintask/internal/cli"
	"chaintask/internal/commands"
	"chaintask/internal/config"
	"chaintask/internal/exitcode"
	"chaintask/internal/gateway"
	"chaintask/internal/testutil"
)

// testFactory creates a backend factory that returns the given fake connection.
func testFactory(conn *testutil.FakeConnection) cli.BackendFactory {
	return func(ctx context.Context, cfg *config.Config) (commands.Backend, error) {
		return conn, nil
	}
}

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvNetwork, config.DefaultNetwork)
	t.Setenv(config.EnvContract, config.DefaultContractID)
	t.Setenv(config.EnvGatewayURL, "")
}

func run(t *testing.T, d *cli.Dispatcher, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	code = d.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeConnection()))

	_, stderr, code := run(t, dispatcher, "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeConnection()))

	_, stderr, code := run(t, dispatcher, "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	isolateEnv(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeConnection()))

	stdout, stderr, code := run(t, dispatcher, "help", "--config", t.TempDir())

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	isolateEnv(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeConnection()))

	stdout, stderr, code := run(t, dispatcher, "version", "--config", t.TempDir())

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "chaintask 0.1.0\n" {
		t.Errorf("expected 'chaintask 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeConnection()))

	_, stderr, code := run(t, dispatcher, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_MissingFlagValue(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeConnection()))

	_, stderr, code := run(t, dispatcher, "connect", "--account")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.HasPrefix(stderr, "error: flag needs an argument") {
		t.Errorf("expected missing value error, got %q", stderr)
	}
}

func TestDispatcher_ListTasks(t *testing.T) {
	isolateEnv(t)
	dir := testutil.ConfigDir(t)

	conn := testutil.NewFakeConnection(testutil.FakeTask{Description: "buy milk"})
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(conn))

	stdout, stderr, code := run(t, dispatcher, "list", "--config", dir)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "   1  [ ] buy milk\n" {
		t.Errorf("unexpected output %q", stdout)
	}
	if conn.QueryCalls() != 1 {
		t.Errorf("expected one query, got %d", conn.QueryCalls())
	}
}

func TestDispatcher_AddThenDone(t *testing.T) {
	isolateEnv(t)
	dir := testutil.ConfigDir(t)
	testutil.WriteSession(t, dir, "5Alice", "polkadot-js")

	conn := testutil.NewFakeConnection()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(conn))

	stdout, stderr, code := run(t, dispatcher, "add", "--config", dir, "--quiet", "call", "mom")
	if code != exitcode.Success {
		t.Fatalf("add: expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "   1  [ ] call mom\n" {
		t.Errorf("add: unexpected output %q", stdout)
	}

	stdout, stderr, code = run(t, dispatcher, "done", "--config", dir, "--quiet", "1")
	if code != exitcode.Success {
		t.Fatalf("done: expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "   1  [x] call mom\n" {
		t.Errorf("done: unexpected output %q", stdout)
	}
}

func TestDispatcher_AddWithoutWallet(t *testing.T) {
	isolateEnv(t)
	dir := testutil.ConfigDir(t)

	conn := testutil.NewFakeConnection()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(conn))

	_, stderr, code := run(t, dispatcher, "add", "--config", dir, "call mom")

	if code != exitcode.WalletError {
		t.Errorf("expected exit code %d, got %d", exitcode.WalletError, code)
	}
	if !strings.Contains(stderr, "error: Wallet not connected. Try again...\n") {
		t.Errorf("expected wallet message, got %q", stderr)
	}
	if conn.TransactCalls() != 0 {
		t.Errorf("expected no transaction, got %d", conn.TransactCalls())
	}
}

func TestDispatcher_FactoryErrors(t *testing.T) {
	isolateEnv(t)
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"config", fmt.Errorf("%w: set %s", gateway.ErrConfig, config.EnvGatewayURL), exitcode.UserError},
		{"backend", errors.New("dial tcp: connection refused"), exitcode.BackendError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := func(ctx context.Context, cfg *config.Config) (commands.Backend, error) {
				return nil, tt.err
			}
			dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

			_, stderr, code := run(t, dispatcher, "list", "--config", t.TempDir())
			if code != tt.code {
				t.Errorf("expected exit code %d, got %d", tt.code, code)
			}
			if !strings.Contains(stderr, tt.err.Error()) {
				t.Errorf("expected %q in stderr, got %q", tt.err.Error(), stderr)
			}
		})
	}
}

func TestDispatcher_NoFactoryWithoutGateway(t *testing.T) {
	isolateEnv(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	_, stderr, code := run(t, dispatcher, "list", "--config", t.TempDir())

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: gateway not configured: set CHAINTASK_GATEWAY_URL\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_DebugLogsToStderr(t *testing.T) {
	isolateEnv(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeConnection()))

	stdout, stderr, code := run(t, dispatcher, "version", "--config", t.TempDir(), "--debug")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "chaintask 0.1.0\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if !strings.Contains(stderr, "dispatch") || !strings.Contains(stderr, "version") {
		t.Errorf("expected debug log line, got %q", stderr)
	}
}
