package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mostafaosama999/Marketing-agent-sub006/pkg/client"
)

func newAlertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alert",
		Short: "Manage fired alerts",
	}

	cmd.AddCommand(newAlertListCmd())
	cmd.AddCommand(newAlertGetCmd())
	cmd.AddCommand(newAlertSummaryCmd())
	cmd.AddCommand(newAlertStatusCmd("ack", "acknowledged", "Acknowledge an alert"))
	cmd.AddCommand(newAlertStatusCmd("resolve", "resolved", "Resolve an alert"))

	return cmd
}

func newAlertListCmd() *cobra.Command {
	var status, ruleType string
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List fired alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &client.AlertListOptions{
				ListOptions: client.ListOptions{Page: page, PageSize: pageSize},
				Status:      status,
				RuleType:    ruleType,
			}

			result, err := apiClient.Alerts().List(context.Background(), opts)
			if err != nil {
				return fmt.Errorf("failed to list alerts: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(result)
			}

			t := NewTable("ID", "RULE", "ENTITY", "STATUS", "FIRED")
			for _, a := range result.Data {
				t.AddRow(a.ID, truncate(a.RuleName, 30), truncate(a.EntityKey, 30),
					formatStatus(a.Status), a.CreatedAt.Format("2006-01-02 15:04"))
			}
			t.Render()
			fmt.Printf("\nPage %d of %d (%d total)\n", result.Page, result.TotalPages, result.TotalItems)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (open, acknowledged, resolved)")
	cmd.Flags().StringVar(&ruleType, "rule-type", "", "filter by rule type")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "page size")

	return cmd
}

func newAlertGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get alert details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := apiClient.Alerts().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get alert: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(a)
			}

			fmt.Printf("ID:       %s\n", a.ID)
			fmt.Printf("Rule:     %s (%s)\n", a.RuleName, a.RuleID)
			fmt.Printf("Type:     %s\n", a.RuleType)
			fmt.Printf("Entity:   %s\n", a.EntityKey)
			fmt.Printf("Status:   %s\n", formatStatus(a.Status))
			fmt.Printf("Metric:   %s\n", strconv.Itoa(a.Metric))
			fmt.Printf("Fired:    %s\n", a.CreatedAt.Format("2006-01-02 15:04:05"))
			if a.Details != "" {
				fmt.Printf("Details:  %s\n", a.Details)
			}
			return nil
		},
	}
}

func newAlertSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show alert counts by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := apiClient.Alerts().Summary(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get summary: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(summary)
			}

			t := NewTable("STATUS", "COUNT")
			for _, status := range []string{"open", "acknowledged", "resolved"} {
				t.AddRow(formatStatus(status), strconv.Itoa(summary[status]))
			}
			t.Render()
			return nil
		},
	}
}

func newAlertStatusCmd(use, status, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient.Alerts().UpdateStatus(context.Background(), args[0], status); err != nil {
				return fmt.Errorf("failed to update alert: %w", err)
			}
			fmt.Printf("Alert %s is now %s\n", args[0], status)
			return nil
		},
	}
}
