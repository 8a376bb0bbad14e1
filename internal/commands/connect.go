package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"chaintask/internal/config"
	"chaintask/internal/exitcode"
	"chaintask/internal/session"
)

func init() {
	Register(&ConnectCmd{})
}

// ConnectCmd implements the connect command.
type ConnectCmd struct {
	account string
	signer  string
}

// SetAccount sets the account and signer (for testing).
func (c *ConnectCmd) SetAccount(account, signer string) {
	c.account = account
	c.signer = signer
}

func (c *ConnectCmd) Name() string          { return "connect" }
func (c *ConnectCmd) Aliases() []string     { return []string{"login"} }
func (c *ConnectCmd) Synopsis() string      { return "Store the wallet account used to sign" }
func (c *ConnectCmd) NeedsConnection() bool { return false }

func (c *ConnectCmd) Usage() string {
	return "chaintask connect --account <address> [--signer <source>]"
}

func (c *ConnectCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.account, "account", "", "")
	fs.StringVar(&c.account, "a", "", "")
	fs.StringVar(&c.signer, "signer", session.DefaultSigner, "")
	fs.StringVar(&c.signer, "s", session.DefaultSigner, "")
}

func (c *ConnectCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	account := strings.TrimSpace(c.account)
	if account == "" && len(args) > 0 {
		account = strings.TrimSpace(args[0])
	}
	if account == "" {
		fmt.Fprintln(errOut, "error: account required")
		return exitcode.UserError
	}

	signer := strings.TrimSpace(c.signer)
	if signer == "" {
		signer = session.DefaultSigner
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.WalletError
	}

	store := session.NewFileStore(cfg.SessionPath())
	if err := store.Save(session.Record{Account: account, Signer: signer}); err != nil {
		fmt.Fprintf(errOut, "error: failed to save session: %v\n", err)
		return exitcode.WalletError
	}

	deps.logger().Debug("session saved")

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
