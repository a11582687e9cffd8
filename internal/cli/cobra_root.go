package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rpattn/clientdesk/internal/apiclient"
	"github.com/rpattn/clientdesk/internal/config"
	"github.com/rpattn/clientdesk/internal/filterstate"
	"github.com/rpattn/clientdesk/internal/repository"

	"github.com/spf13/cobra"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	config config.Config
	out    io.Writer

	clients    repository.ClientRepository
	state      filterstate.Store
	closeState func() error
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(cfg config.Config, out io.Writer) *RootCommand {
	root := &RootCommand{config: cfg, out: out}

	root.cmd = &cobra.Command{
		Use:   "clientq",
		Short: "Query the clientdesk client list",
		Long: `clientq lists clients from a running clientdesk server.

The last filter used is remembered between runs; flags change only the
fields they name.

EXAMPLES:
  clientq list --status active             # Active clients only
  clientq list --search chen --min-value 1e5
  clientq list --server-side               # Let the server apply the filter
  clientq clear                            # Forget the filter and list everyone

CONFIGURATION:
  CLIENTDESK_CLIENT_BASE_URL               Server API base (default: http://localhost:3001/api)
  CLIENTDESK_STATE_DRIVER                  file, sqlite or memory (default: file)
  CLIENTDESK_STATE_PATH                    Where the last filter is kept
  CLIENTDESK_DEBUG                         Print debug output`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if root.closeState != nil {
				return root.closeState()
			}
			return nil
		},
	}
	root.cmd.SetOut(out)

	flags := root.cmd.PersistentFlags()
	flags.String("server", "", "Server API base URL (overrides CLIENTDESK_CLIENT_BASE_URL)")
	flags.String("state-driver", "", "Filter state driver (overrides CLIENTDESK_STATE_DRIVER)")
	flags.String("state-path", "", "Filter state path (overrides CLIENTDESK_STATE_PATH)")

	root.addSubcommands()
	return root
}

// Execute runs the root command
func (r *RootCommand) Execute(ctx context.Context, args []string) error {
	r.cmd.SetArgs(args)
	return r.cmd.ExecuteContext(ctx)
}

func (r *RootCommand) open(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if v, _ := flags.GetString("server"); v != "" {
		r.config.Client.BaseURL = v
	}
	if v, _ := flags.GetString("state-driver"); v != "" {
		r.config.State.Driver = v
	}
	if v, _ := flags.GetString("state-path"); v != "" {
		r.config.State.Path = v
	}

	state, closeState, err := filterstate.Open(r.config.State.Driver, r.config.State.Path)
	if err != nil {
		return fmt.Errorf("failed to open filter state: %w", err)
	}
	r.state = state
	r.closeState = closeState

	if r.clients == nil {
		client := apiclient.New(r.config.Client.BaseURL, apiclient.WithTimeout(r.config.Client.Timeout))
		r.clients = client.Repositories().Clients
	}
	return nil
}

func (r *RootCommand) addSubcommands() {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List clients matching the filter",
		Long: `List clients, changing the remembered filter with any flags given.

An unparseable --min-value is kept but places no constraint.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := ListOptions{}
			flags := cmd.Flags()
			if flags.Changed("status") {
				v, _ := flags.GetString("status")
				opts.Status = &v
			}
			if flags.Changed("search") {
				v, _ := flags.GetString("search")
				opts.Search = &v
			}
			if flags.Changed("min-value") {
				v, _ := flags.GetString("min-value")
				opts.MinValue = &v
			}
			opts.ServerSide, _ = flags.GetBool("server-side")
			return NewListCommand(r.clients, r.state, r.out).Execute(cmd.Context(), opts)
		},
	}
	listCmd.Flags().String("status", "", "all, active, pending or inactive")
	listCmd.Flags().String("search", "", "Case-insensitive name search")
	listCmd.Flags().String("min-value", "", "Minimum total value")
	listCmd.Flags().Bool("server-side", false, "Filter on the server instead of locally")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Reset the filter and list every client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewListCommand(r.clients, r.state, r.out).Execute(cmd.Context(), ListOptions{Clear: true})
		},
	}

	r.cmd.AddCommand(listCmd, clearCmd)
}
