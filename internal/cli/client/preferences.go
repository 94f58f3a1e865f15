package client

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

type Favorite struct {
	Href        string `json:"href"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Position    int    `json:"position"`
	CreatedAt   string `json:"created_at"`
}

type FavoriteRequest struct {
	Href        string `json:"href"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type RecentVisit struct {
	Href        string `json:"href"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	VisitedAt   string `json:"visited_at"`
}

type RecentsResponse struct {
	Items   []RecentVisit `json:"items"`
	Cursor  string        `json:"cursor,omitempty"`
	HasMore bool          `json:"has_more"`
}

func FavoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage pinned pages",
		Long:    "List, add and remove the pages pinned to the top of the palette.",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := NewAPIClientWithCmd(cmd)
			if err != nil {
				return err
			}
			return runFavoritesList(cmd, api)
		},
	}

	cmd.Flags().Bool("output", false, "Output as JSON")
	cmd.AddCommand(FavoritesListCmd())
	cmd.AddCommand(FavoritesAddCmd())
	cmd.AddCommand(FavoritesRemoveCmd())

	return cmd
}

func runFavoritesList(cmd *cobra.Command, api *APIClient) error {
	outputJSON, _ := cmd.Flags().GetBool("output")

	resp, err := api.Get("/favorites")
	if err != nil {
		return fmt.Errorf("failed to list favorites: %w", err)
	}

	var favorites []Favorite
	if err := decodeData(resp, &favorites); err != nil {
		return err
	}

	if outputJSON {
		return printJSON(cmd, favorites)
	}

	out := cmd.OutOrStdout()
	if len(favorites) == 0 {
		fmt.Fprintln(out, "No favorites yet.")
		return nil
	}
	for _, f := range favorites {
		fmt.Fprintf(out, "%2d. %-28s %s\n", f.Position, f.Name, f.Href)
	}
	return nil
}

func FavoritesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List pinned pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := NewAPIClientWithCmd(cmd)
			if err != nil {
				return err
			}
			return runFavoritesList(cmd, api)
		},
	}

	cmd.Flags().Bool("output", false, "Output as JSON")

	return cmd
}

func FavoritesAddCmd() *cobra.Command {
	var req FavoriteRequest

	cmd := &cobra.Command{
		Use:   "add <href>",
		Short: "Pin a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := NewAPIClientWithCmd(cmd)
			if err != nil {
				return err
			}
			req.Href = args[0]
			return runFavoritesAdd(cmd, api, req)
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&req.Description, "description", "", "Optional description")
	cmd.MarkFlagRequired("name")

	return cmd
}

func runFavoritesAdd(cmd *cobra.Command, api *APIClient, req FavoriteRequest) error {
	resp, err := api.Put("/favorites", req)
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	var fav Favorite
	if err := decodeData(resp, &fav); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Pinned %s at position %d\n", fav.Href, fav.Position)
	return nil
}

func FavoritesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <href>",
		Aliases: []string{"rm"},
		Short:   "Unpin a page",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := NewAPIClientWithCmd(cmd)
			if err != nil {
				return err
			}
			if _, err := api.Delete("/favorites?href=" + url.QueryEscape(args[0])); err != nil {
				return fmt.Errorf("failed to remove favorite: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unpinned %s\n", args[0])
			return nil
		},
	}
}

func RecentsCmd() *cobra.Command {
	var (
		limit  int
		cursor string
	)

	cmd := &cobra.Command{
		Use:   "recents",
		Short: "List recently visited pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := NewAPIClientWithCmd(cmd)
			if err != nil {
				return err
			}
			return runRecents(cmd, api, limit, cursor)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of results")
	cmd.Flags().StringVar(&cursor, "cursor", "", "Pagination cursor from previous response")
	cmd.Flags().Bool("output", false, "Output as JSON")

	return cmd
}

func runRecents(cmd *cobra.Command, api *APIClient, limit int, cursor string) error {
	outputJSON, _ := cmd.Flags().GetBool("output")

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if cursor != "" {
		q.Set("cursor", cursor)
	}

	resp, err := api.Get("/recents?" + q.Encode())
	if err != nil {
		return fmt.Errorf("failed to list recents: %w", err)
	}

	var page RecentsResponse
	if err := decodeData(resp, &page); err != nil {
		return err
	}

	if outputJSON {
		return printJSON(cmd, page)
	}

	out := cmd.OutOrStdout()
	if len(page.Items) == 0 {
		fmt.Fprintln(out, "No recent visits.")
		return nil
	}
	for _, v := range page.Items {
		fmt.Fprintf(out, "%-20s %-28s %s\n", v.VisitedAt, v.Name, v.Href)
	}
	if page.HasMore && page.Cursor != "" {
		fmt.Fprintf(out, "\nMore results available. Use --cursor %s\n", page.Cursor)
	}
	return nil
}
