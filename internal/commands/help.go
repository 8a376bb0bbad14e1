package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"chaintask/internal/config"
	"chaintask/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string          { return "help" }
func (c *HelpCmd) Aliases() []string     { return nil }
func (c *HelpCmd) Synopsis() string      { return "Print usage" }
func (c *HelpCmd) Usage() string         { return "chaintask help" }
func (c *HelpCmd) NeedsConnection() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  chaintask                                   List all tasks
  chaintask list [common flags] [--header]    List all tasks
  chaintask add [common flags] <description...>
  chaintask create [common flags] <description...>
  chaintask done [common flags] <n>
  chaintask status [common flags]
  chaintask connect [common flags] --account <address> [--signer <source>]
  chaintask disconnect [common flags]
  chaintask ui [common flags]
  chaintask help
  chaintask version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Environment:
  CHAINTASK_GATEWAY_URL    Contract gateway base URL (required)
  CHAINTASK_NETWORK        Deployment network (default: development)
  CHAINTASK_CONTRACT       Contract id in deployments.yaml (default: taskManagement)
  CHAINTASK_TOKEN          Static bearer token for the gateway
  CHAINTASK_CLIENT_ID      OAuth2 client id (client-credentials flow)
  CHAINTASK_CLIENT_SECRET  OAuth2 client secret
  CHAINTASK_TOKEN_URL      OAuth2 token endpoint
  CHAINTASK_TIMEOUT        Per-request timeout (default: 30s)
`
