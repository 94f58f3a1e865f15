package client

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type NavItem struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Href        string    `json:"href"`
	Icon        string    `json:"icon,omitempty"`
	Children    []NavItem `json:"children,omitempty"`
}

type QuickAction struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Href        string `json:"href"`
	Shortcut    string `json:"shortcut,omitempty"`
}

func NavCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nav",
		Short: "Show the navigation tree",
		Long:  "Shows the navigation tree visible to the authenticated role.",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := NewAPIClientWithCmd(cmd)
			if err != nil {
				return err
			}
			return runNav(cmd, api)
		},
	}

	cmd.Flags().Bool("output", false, "Output as JSON")

	return cmd
}

func runNav(cmd *cobra.Command, api *APIClient) error {
	outputJSON, _ := cmd.Flags().GetBool("output")

	resp, err := api.Get("/navigation")
	if err != nil {
		return fmt.Errorf("failed to load navigation: %w", err)
	}

	var nav []NavItem
	if err := decodeData(resp, &nav); err != nil {
		return err
	}

	if outputJSON {
		return printJSON(cmd, nav)
	}

	printNav(cmd.OutOrStdout(), nav, 0)
	return nil
}

func printNav(out io.Writer, items []NavItem, depth int) {
	for _, item := range items {
		fmt.Fprintf(out, "%*s%-24s %s\n", depth*2, "", item.Name, item.Href)
		printNav(out, item.Children, depth+1)
	}
}

func ActionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "actions",
		Short: "List quick actions",
		Long:  "Lists the quick actions available to the authenticated role.",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := NewAPIClientWithCmd(cmd)
			if err != nil {
				return err
			}
			return runActions(cmd, api)
		},
	}

	cmd.Flags().Bool("output", false, "Output as JSON")

	return cmd
}

func runActions(cmd *cobra.Command, api *APIClient) error {
	outputJSON, _ := cmd.Flags().GetBool("output")

	resp, err := api.Get("/actions")
	if err != nil {
		return fmt.Errorf("failed to load actions: %w", err)
	}

	var actions []QuickAction
	if err := decodeData(resp, &actions); err != nil {
		return err
	}

	if outputJSON {
		return printJSON(cmd, actions)
	}

	out := cmd.OutOrStdout()
	if len(actions) == 0 {
		fmt.Fprintln(out, "No quick actions available.")
		return nil
	}
	for _, a := range actions {
		shortcut := a.Shortcut
		if shortcut == "" {
			shortcut = "-"
		}
		fmt.Fprintf(out, "%-22s %-8s %s\n", a.Name, shortcut, a.Href)
	}
	return nil
}
