package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mostafaosama999/Marketing-agent-sub006/pkg/client"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show a back-office overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			rules, err := apiClient.Rules().List(ctx, nil)
			if err != nil {
				return fmt.Errorf("failed to list rules: %w", err)
			}
			enabled := 0
			for _, r := range rules {
				if r.Enabled {
					enabled++
				}
			}

			summary, err := apiClient.Alerts().Summary(ctx)
			if err != nil {
				return fmt.Errorf("failed to get alert summary: %w", err)
			}

			tickets, err := apiClient.Tickets().List(ctx, nil)
			if err != nil {
				return fmt.Errorf("failed to list tickets: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(map[string]interface{}{
					"rules":         len(rules),
					"rules_enabled": enabled,
					"alerts":        summary,
					"tickets":       len(tickets),
				})
			}

			fmt.Println("Back-office Dashboard")
			fmt.Println("=====================")
			fmt.Printf("Rules:    %d (%d enabled)\n", len(rules), enabled)
			fmt.Printf("Alerts:   %d open, %d acknowledged, %d resolved\n",
				summary["open"], summary["acknowledged"], summary["resolved"])
			fmt.Printf("Tickets:  %d\n", len(tickets))

			if summary["open"] > 0 {
				fmt.Println()
				opts := &client.AlertListOptions{
					ListOptions: client.ListOptions{Page: 1, PageSize: 5},
					Status:      "open",
				}
				page, err := apiClient.Alerts().List(ctx, opts)
				if err != nil {
					return fmt.Errorf("failed to list open alerts: %w", err)
				}
				fmt.Println("Most recent open alerts:")
				for _, a := range page.Data {
					fmt.Printf("  %s  %s  %s\n",
						a.CreatedAt.Format("2006-01-02 15:04"), truncate(a.RuleName, 30), a.EntityKey)
				}
			}
			return nil
		},
	}
}
