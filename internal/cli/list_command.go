package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rpattn/clientdesk/internal/clientfilter"
	"github.com/rpattn/clientdesk/internal/domain"
	"github.com/rpattn/clientdesk/internal/filterstate"
	"github.com/rpattn/clientdesk/internal/logging"
	"github.com/rpattn/clientdesk/internal/querycache"
	"github.com/rpattn/clientdesk/internal/repository"
)

// ListOptions are the filter changes requested on the command line. Nil
// fields keep the restored value.
type ListOptions struct {
	Status     *string
	Search     *string
	MinValue   *string
	ServerSide bool
	Clear      bool
}

// ListCommand handles the list and clear commands
type ListCommand struct {
	clients repository.ClientRepository
	state   filterstate.Store
	out     io.Writer
}

// NewListCommand creates a new list command handler
func NewListCommand(clients repository.ClientRepository, state filterstate.Store, out io.Writer) *ListCommand {
	return &ListCommand{clients: clients, state: state, out: out}
}

// Execute restores the last filter, applies opts through the filter
// controller and prints the matching clients.
func (c *ListCommand) Execute(ctx context.Context, opts ListOptions) error {
	source := querycache.ClientSideSource(c.clients)
	if opts.ServerSide {
		source = querycache.ServerSideSource(c.clients)
	}
	view := querycache.NewView(querycache.New(source, querycache.WithStateStore(c.state)))

	if opts.Status != nil && !domain.IsValidFilterStatus(*opts.Status) {
		return fmt.Errorf("%w: %q", clientfilter.ErrUnknownStatus, *opts.Status)
	}

	// Every published change is fetched through the view, which also
	// persists it as the last-used filter.
	var (
		clients   []domain.Client
		err       error
		published int
	)
	controller := clientfilter.NewController(filterstate.Restore(ctx, c.state), func(f domain.ClientFilter) {
		published++
		logging.Debugf("filter changed: %+v", f)
		clients, err = view.Apply(ctx, f)
	})

	if opts.Clear {
		controller.Clear()
	}
	if opts.Status != nil {
		if err := controller.SetStatus(*opts.Status); err != nil {
			return err
		}
	}
	if opts.Search != nil {
		controller.SetSearchTerm(*opts.Search)
	}
	if opts.MinValue != nil {
		controller.SetMinValue(*opts.MinValue)
	}
	if published == 0 {
		clients, err = view.Apply(ctx, controller.Filter())
	}
	logging.Debugf("%d filter change(s) published", published)

	if errors.Is(err, querycache.ErrFetchFailed) {
		fmt.Fprintf(c.out, "Failed to load clients, retrying...\n")
		clients, err = view.Retry(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to load clients: %w", err)
	}

	filter := controller.Filter()
	return c.print(controller, filter, clients)
}

func (c *ListCommand) print(controller *clientfilter.Controller, filter domain.ClientFilter, clients []domain.Client) error {
	fmt.Fprintf(c.out, "Filter: status=%s search=%q min=%q\n", filter.Status, filter.SearchTerm, filter.MinTotalValue)
	if controls := controller.StatusControls(clients); len(controls) > 0 {
		labels := make([]string, 0, len(controls))
		for _, control := range controls {
			if control.Active {
				labels = append(labels, "["+control.Label+"]")
			} else {
				labels = append(labels, control.Label)
			}
		}
		fmt.Fprintf(c.out, "Status: %s\n", strings.Join(labels, " "))
	}

	if len(clients) == 0 {
		fmt.Fprintln(c.out, "No clients found")
		return nil
	}

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCOMPANY\tSTATUS\tTOTAL VALUE")
	for _, client := range clients {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\n", client.ID, client.Name, client.Company, client.Status, client.TotalValue)
	}
	return tw.Flush()
}
