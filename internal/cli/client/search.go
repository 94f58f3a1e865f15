package client

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

type PaletteItem struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Href        string `json:"href"`
	Kind        string `json:"kind"`
}

type SearchResult struct {
	Item  PaletteItem `json:"item"`
	Score int         `json:"score"`
}

type SearchResponse struct {
	SearchID   string         `json:"search_id,omitempty"`
	QuickPicks bool           `json:"quick_picks"`
	Results    []SearchResult `json:"results"`
}

type SelectionRequest struct {
	SearchID    string `json:"search_id,omitempty"`
	Href        string `json:"href"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Kind        string `json:"kind"`
}

// SearchCmd queries the palette the same way the web UI does on each keystroke.
func SearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Search the command palette",
		Long:  "Ranks pages, actions, favorites and recents against the query. An empty query lists quick picks.",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := NewAPIClientWithCmd(cmd)
			if err != nil {
				return err
			}
			return runSearch(cmd, api, strings.Join(args, " "), limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of results (server default when 0)")
	cmd.Flags().Bool("output", false, "Output as JSON")

	return cmd
}

func runSearch(cmd *cobra.Command, api *APIClient, query string, limit int) error {
	outputJSON, _ := cmd.Flags().GetBool("output")

	resp, err := api.Post("/palette/search", SearchRequest{Query: query, Limit: limit})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	var searchResp SearchResponse
	if err := decodeData(resp, &searchResp); err != nil {
		return err
	}

	if outputJSON {
		return printJSON(cmd, searchResp)
	}

	out := cmd.OutOrStdout()
	if len(searchResp.Results) == 0 {
		fmt.Fprintln(out, "No results found.")
		return nil
	}

	if searchResp.QuickPicks {
		fmt.Fprintln(out, "Quick picks:")
	} else {
		fmt.Fprintf(out, "Found %d results:\n", len(searchResp.Results))
	}
	for i, result := range searchResp.Results {
		fmt.Fprintf(out, "%2d. %-28s %-10s %s", i+1, result.Item.Name, "["+result.Item.Kind+"]", result.Item.Href)
		if !searchResp.QuickPicks {
			fmt.Fprintf(out, " (%d)", result.Score)
		}
		fmt.Fprintln(out)
	}
	if searchResp.SearchID != "" {
		fmt.Fprintf(out, "\nSearch ID: %s\n", searchResp.SearchID)
	}

	return nil
}

// VisitCmd reports a chosen entry so it shows up in recents.
func VisitCmd() *cobra.Command {
	var req SelectionRequest

	cmd := &cobra.Command{
		Use:   "visit <href>",
		Short: "Record a palette selection",
		Long:  "Records that a page was opened from the palette, adding it to recents.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := NewAPIClientWithCmd(cmd)
			if err != nil {
				return err
			}
			req.Href = args[0]
			if req.Name == "" {
				req.Name = req.Href
			}
			if _, err := api.Post("/palette/selections", req); err != nil {
				return fmt.Errorf("failed to record visit: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded visit to %s\n", req.Href)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Display name (defaults to the href)")
	cmd.Flags().StringVar(&req.Description, "description", "", "Optional description")
	cmd.Flags().StringVar(&req.Kind, "kind", "navigation", "Entry kind")
	cmd.Flags().StringVar(&req.SearchID, "search-id", "", "Search ID returned by 'chairside search'")

	return cmd
}
