package admin

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func ShopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Manage shops",
		Long:  "Create and list shops (tenants)",
	}

	cmd.AddCommand(ShopCreateCmd())
	cmd.AddCommand(ShopListCmd())

	return cmd
}

func ShopCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new shop",
		Long:  "Create a new shop with the specified name",
		Args:  cobra.ExactArgs(1),
		RunE:  runShopCreate,
	}

	cmd.Flags().StringP("output", "o", "text", "Output format (text or json)")

	return cmd
}

func runShopCreate(cmd *cobra.Command, args []string) error {
	ctx, cancel := exitOnSignal()
	defer cancel()
	outputFormat, _ := cmd.Flags().GetString("output")

	pool, err := getDBPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	authSvc, _ := newAuthService(pool)

	shop, err := authSvc.CreateShop(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to create shop: %w", err)
	}

	if outputFormat == "json" {
		return printJSON(cmd, map[string]interface{}{
			"id":         shop.ID,
			"name":       shop.Name,
			"created_at": shop.CreatedAt,
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Shop created: %s (%s)\n", shop.Name, shop.ID)
	return nil
}

func ShopListCmd() *cobra.Command {
	var (
		limit  int
		cursor string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all shops",
		Long:  "List all shops in the system",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShopList(cmd, limit, cursor)
		},
	}

	cmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of results")
	cmd.Flags().StringVar(&cursor, "cursor", "", "Pagination cursor from previous response")

	return cmd
}

func runShopList(cmd *cobra.Command, limit int, cursor string) error {
	ctx, cancel := exitOnSignal()
	defer cancel()
	outputFormat, _ := cmd.Flags().GetString("output")

	pool, err := getDBPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	authSvc, _ := newAuthService(pool)

	result, err := authSvc.ListShops(ctx, cursor, limit)
	if err != nil {
		return fmt.Errorf("failed to list shops: %w", err)
	}

	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		data := make([]map[string]interface{}, len(result.Items))
		for i, shop := range result.Items {
			data[i] = map[string]interface{}{
				"id":         shop.ID,
				"name":       shop.Name,
				"created_at": shop.CreatedAt,
			}
		}
		return printJSON(cmd, map[string]interface{}{
			"items":    data,
			"cursor":   result.Cursor,
			"has_more": result.HasMore,
		})
	}

	if len(result.Items) == 0 {
		fmt.Fprintln(out, "No shops found")
		return nil
	}
	fmt.Fprintln(out, "Shops:")
	for _, shop := range result.Items {
		fmt.Fprintf(out, "  %s: %s (created: %s)\n", shop.ID, shop.Name, shop.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	if result.HasMore && result.Cursor != "" {
		fmt.Fprintf(out, "\nMore results available. Use --cursor %s\n", result.Cursor)
	}

	return nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
	return nil
}
