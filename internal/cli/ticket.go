package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mostafaosama999/Marketing-agent-sub006/pkg/client"
)

func newTicketCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ticket",
		Short: "Inspect work tickets",
	}

	cmd.AddCommand(newTicketListCmd())
	cmd.AddCommand(newTicketStatusesCmd())

	return cmd
}

func newTicketListCmd() *cobra.Command {
	var status, clientName, ticketType, assignee string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tickets",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &client.TicketListOptions{
				Status:     status,
				ClientName: clientName,
				Type:       ticketType,
				AssignedTo: assignee,
			}

			tickets, err := apiClient.Tickets().List(context.Background(), opts)
			if err != nil {
				return fmt.Errorf("failed to list tickets: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(tickets)
			}

			t := NewTable("ID", "TITLE", "STATUS", "CLIENT", "ASSIGNEE")
			for _, tk := range tickets {
				t.AddRow(tk.ID, truncate(tk.Title, 40), tk.Status, tk.ClientName, tk.AssignedTo)
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by ticket status")
	cmd.Flags().StringVar(&clientName, "client", "", "filter by client name")
	cmd.Flags().StringVar(&ticketType, "type", "", "filter by ticket type")
	cmd.Flags().StringVar(&assignee, "assignee", "", "filter by assigned writer")

	return cmd
}

func newTicketStatusesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "statuses",
		Short: "List the known ticket statuses",
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, err := apiClient.Tickets().Statuses(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list statuses: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(statuses)
			}

			fmt.Println(strings.Join(statuses, "\n"))
			return nil
		},
	}
}
