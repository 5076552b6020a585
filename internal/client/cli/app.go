package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/taskio/internal/client/client"
	"github.com/dmitrijs2005/taskio/internal/client/config"
	"github.com/dmitrijs2005/taskio/internal/client/session"
	"github.com/spf13/cobra"
)

// ClientFactory opens a connection to the server. Rotated tokens are handed
// to sink.
type ClientFactory func(addr string, sink client.TokenSink) (client.Client, error)

func defaultClientFactory(addr string, sink client.TokenSink) (client.Client, error) {
	return client.NewGRPCClient(addr, sink)
}

type App struct {
	config    *config.Config
	newClient ClientFactory
	store     *session.Store
	client    client.Client
	session   *session.Session
	in        *bufio.Reader
	out       io.Writer
	now       func() time.Time
}

func NewApp(c *config.Config) *App {
	return &App{
		config:    c,
		newClient: defaultClientFactory,
		in:        bufio.NewReader(os.Stdin),
		out:       os.Stdout,
		now:       time.Now,
	}
}

// connect opens the client and loads any cached session.
func (a *App) connect() error {
	if a.client != nil {
		return nil
	}
	a.store = session.NewStore(a.config.SessionFile)

	c, err := a.newClient(a.config.ServerEndpointAddr, func(access, refresh string) {
		if err := a.store.UpdateTokens(access, refresh); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not save session: %v\n", err)
		}
	})
	if err != nil {
		return fmt.Errorf("connect to %s: %w", a.config.ServerEndpointAddr, err)
	}
	a.client = c

	sess, err := a.store.Load()
	switch {
	case err == nil:
		a.session = sess
		c.SetTokens(sess.AccessToken, sess.RefreshToken)
	case errors.Is(err, session.ErrNoSession):
	default:
		return err
	}
	return nil
}

func (a *App) close() {
	if a.client != nil {
		_ = a.client.Close()
		a.client = nil
	}
}

func (a *App) requireSession() error {
	if a.session == nil {
		return errors.New("not logged in, run `taskio login` first")
	}
	return nil
}

func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

// explain turns client errors into something a person can act on.
func explain(err error) error {
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		return fmt.Errorf("%w (session expired? run `taskio login`)", err)
	case errors.Is(err, client.ErrUnavailable):
		return fmt.Errorf("%w (is the server running?)", err)
	}
	return err
}

// RootCommand assembles the command tree.
func (a *App) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "taskio",
		Short:         "Personal task manager",
		Long:          "taskio keeps your tasks, due dates and tags on a taskio server.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.out = cmd.OutOrStdout()
			return a.connect()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	root.PersistentFlags().StringVarP(&a.config.ServerEndpointAddr, "server", "S", a.config.ServerEndpointAddr, "server gRPC address")
	root.PersistentFlags().StringVar(&a.config.SessionFile, "session", a.config.SessionFile, "session file")
	root.PersistentFlags().DurationVar(&a.config.RequestTimeout, "timeout", a.config.RequestTimeout, "per-request timeout")

	root.AddCommand(
		a.signupCommand(),
		a.loginCommand(),
		a.logoutCommand(),
		a.whoamiCommand(),
		a.listCommand(),
		a.addCommand(),
		a.editCommand(),
		a.doneCommand(),
		a.rmCommand(),
		a.tagsCommand(),
		a.todayCommand(),
		a.attachCommand(),
		a.boardCommand(),
	)
	return root
}

// Run executes the command line and returns a process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	root := a.RootCommand()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		a.close()
		fmt.Fprintln(os.Stderr, "error:", explain(err))
		return 1
	}
	return 0
}
