package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mostafaosama999/Marketing-agent-sub006/pkg/client"
)

func newRuleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rule",
		Short: "Manage alert rules",
	}

	cmd.AddCommand(newRuleListCmd())
	cmd.AddCommand(newRuleGetCmd())
	cmd.AddCommand(newRuleCreateCmd())
	cmd.AddCommand(newRuleDeleteCmd())
	cmd.AddCommand(newRuleEnableCmd(true))
	cmd.AddCommand(newRuleEnableCmd(false))
	cmd.AddCommand(newRuleTestCmd())

	return cmd
}

func newRuleListCmd() *cobra.Command {
	var ruleType string
	var enabledOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List alert rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			opts := &client.RuleListOptions{Type: ruleType}
			if enabledOnly {
				t := true
				opts.Enabled = &t
			}

			rules, err := apiClient.Rules().List(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to list rules: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(rules)
			}

			t := NewTable("ID", "NAME", "TYPE", "STATE")
			for _, r := range rules {
				t.AddRow(r.ID, truncate(r.Name, 40), r.Type, formatEnabled(r.Enabled))
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&ruleType, "type", "", "filter by rule type")
	cmd.Flags().BoolVar(&enabledOnly, "enabled", false, "only enabled rules")

	return cmd
}

func newRuleGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get rule details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rule, err := apiClient.Rules().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get rule: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(rule)
			}

			fmt.Printf("ID:          %s\n", rule.ID)
			fmt.Printf("Name:        %s\n", rule.Name)
			if rule.Description != "" {
				fmt.Printf("Description: %s\n", rule.Description)
			}
			fmt.Printf("Type:        %s\n", rule.Type)
			fmt.Printf("State:       %s\n", formatEnabled(rule.Enabled))
			fmt.Printf("Created:     %s\n", rule.CreatedAt.Format("2006-01-02 15:04"))

			conditions, _ := json.MarshalIndent(rule.Conditions, "", "  ")
			fmt.Printf("Conditions:\n%s\n", conditions)
			return nil
		},
	}
}

func newRuleCreateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create -f <file>",
		Short: "Create a rule from a JSON definition",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read rule file: %w", err)
			}

			var req client.CreateRuleRequest
			if err := json.Unmarshal(data, &req); err != nil {
				return fmt.Errorf("invalid rule definition: %w", err)
			}

			rule, err := apiClient.Rules().Create(context.Background(), &req)
			if err != nil {
				return fmt.Errorf("failed to create rule: %w", err)
			}

			fmt.Printf("Created rule %s (%s)\n", rule.ID, rule.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file with the rule definition")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newRuleDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient.Rules().Delete(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to delete rule: %w", err)
			}
			fmt.Printf("Deleted rule %s\n", args[0])
			return nil
		},
	}
}

func newRuleEnableCmd(enable bool) *cobra.Command {
	use, short := "enable <id>", "Enable a rule"
	if !enable {
		use, short = "disable <id>", "Disable a rule"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient.Rules().SetEnabled(context.Background(), args[0], enable); err != nil {
				return fmt.Errorf("failed to toggle rule: %w", err)
			}
			fmt.Printf("Rule %s %s\n", args[0], strconv.FormatBool(enable))
			return nil
		},
	}
}

func newRuleTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test <id>",
		Short: "Evaluate a rule and show what it matches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := apiClient.Rules().Test(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to test rule: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(result)
			}

			fmt.Printf("Evaluated at %s: %d match(es)\n\n",
				result.EvaluatedAt.Format("2006-01-02 15:04:05"), result.MatchCount())

			switch {
			case len(result.Tickets) > 0:
				t := NewTable("TICKET", "TITLE", "STATUS", "CLIENT", "DAYS")
				for _, m := range result.Tickets {
					t.AddRow(m.TicketID, truncate(m.Title, 40), m.Status, m.ClientName, strconv.Itoa(m.Days))
				}
				t.Render()
			case len(result.Writers) > 0:
				t := NewTable("WRITER", "NAME", "ISSUE", "TASKS")
				for _, m := range result.Writers {
					t.AddRow(m.WriterID, m.DisplayName, m.Issue, strconv.Itoa(m.TaskCount))
				}
				t.Render()
			case len(result.Clients) > 0:
				t := NewTable("CLIENT", "NAME", "ISSUE", "DAYS SINCE ACTIVITY")
				for _, m := range result.Clients {
					t.AddRow(m.ClientID, m.Name, m.Issue, strconv.Itoa(m.DaysSinceActivity))
				}
				t.Render()
			}
			return nil
		},
	}
}
