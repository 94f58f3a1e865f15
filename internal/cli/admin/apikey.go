package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloo-solutions/chairside/internal/domain"
	"github.com/cloo-solutions/chairside/internal/repository"
	"github.com/cloo-solutions/chairside/internal/service"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

type shopLookup interface {
	GetByID(ctx context.Context, id string) (*domain.Shop, error)
	GetByName(ctx context.Context, name string) (*domain.Shop, error)
}

// resolveShopID accepts either a shop id or its name.
func resolveShopID(ctx context.Context, shops shopLookup, shopRef string) (string, error) {
	if _, err := uuid.Parse(shopRef); err == nil {
		shop, err := shops.GetByID(ctx, shopRef)
		if err != nil {
			return "", fmt.Errorf("shop not found: %s", shopRef)
		}
		return shop.ID, nil
	}

	shop, err := shops.GetByName(ctx, shopRef)
	if err != nil {
		if errors.Is(err, domain.ErrShopNotFound) {
			return "", fmt.Errorf("shop not found: %s", shopRef)
		}
		return "", err
	}
	return shop.ID, nil
}

func newAuthService(pool *pgxpool.Pool) (*service.AuthService, *repository.ShopRepository) {
	shopRepo := repository.NewShopRepository(pool)
	return service.NewAuthService(shopRepo, repository.NewAPIKeyRepository(pool), &service.DefaultUUIDGenerator{}), shopRepo
}

func APIKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apikey",
		Short: "Manage API keys",
		Long:  "Create, list, and revoke API keys",
	}

	cmd.AddCommand(APIKeyCreateCmd())
	cmd.AddCommand(APIKeyListCmd())
	cmd.AddCommand(APIKeyRevokeCmd())

	return cmd
}

func APIKeyCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new API key",
		Long:  "Create a new API key for one staff member of a shop",
		RunE:  runAPIKeyCreate,
	}

	cmd.Flags().StringP("shop", "s", "", "Shop ID or name (required)")
	cmd.Flags().StringP("user", "u", "", "Staff member reference (required)")
	cmd.Flags().StringP("role", "r", "", "Role: owner, manager, barber or receptionist (required)")
	cmd.Flags().StringP("name", "n", "", "API key name (required)")
	cmd.Flags().StringP("output", "", "text", "Output format (text or json)")
	cmd.MarkFlagRequired("shop")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("role")
	cmd.MarkFlagRequired("name")

	return cmd
}

func runAPIKeyCreate(cmd *cobra.Command, args []string) error {
	ctx, cancel := exitOnSignal()
	defer cancel()
	shopRef, _ := cmd.Flags().GetString("shop")
	userRef, _ := cmd.Flags().GetString("user")
	role, _ := cmd.Flags().GetString("role")
	name, _ := cmd.Flags().GetString("name")
	outputFormat, _ := cmd.Flags().GetString("output")

	pool, err := getDBPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	authSvc, shopRepo := newAuthService(pool)

	shopID, err := resolveShopID(ctx, shopRepo, shopRef)
	if err != nil {
		return err
	}

	issued, err := authSvc.CreateAPIKey(ctx, service.CreateAPIKeyInput{
		ShopID:  shopID,
		UserRef: userRef,
		Role:    role,
		Name:    name,
	})
	if err != nil {
		return fmt.Errorf("failed to create API key: %w", err)
	}

	if outputFormat == "json" {
		return printJSON(cmd, map[string]interface{}{
			"id":       issued.Key.ID,
			"name":     issued.Key.Name,
			"shop_id":  shopID,
			"user_ref": issued.Key.UserRef,
			"role":     issued.Key.Role,
			"token":    issued.Token,
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "API key created for shop %s\n", shopID)
	fmt.Fprintf(out, "Key ID: %s\n", issued.Key.ID)
	fmt.Fprintf(out, "Key Name: %s\n", issued.Key.Name)
	fmt.Fprintf(out, "User: %s (%s)\n", issued.Key.UserRef, issued.Key.Role)
	fmt.Fprintf(out, "Token: %s\n", issued.Token)
	fmt.Fprintln(out, "\nSave this token now. You won't be able to see it again!")

	return nil
}

func APIKeyListCmd() *cobra.Command {
	var (
		limit  int
		cursor string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List API keys for a shop",
		Long:  "List all API keys for a specific shop",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAPIKeyList(cmd, limit, cursor)
		},
	}

	cmd.Flags().StringP("shop", "s", "", "Shop ID or name (required)")
	cmd.Flags().StringP("output", "", "text", "Output format (text or json)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of results")
	cmd.Flags().StringVar(&cursor, "cursor", "", "Pagination cursor from previous response")
	cmd.MarkFlagRequired("shop")

	return cmd
}

func runAPIKeyList(cmd *cobra.Command, limit int, cursor string) error {
	ctx, cancel := exitOnSignal()
	defer cancel()
	shopRef, _ := cmd.Flags().GetString("shop")
	outputFormat, _ := cmd.Flags().GetString("output")

	pool, err := getDBPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	authSvc, shopRepo := newAuthService(pool)

	shopID, err := resolveShopID(ctx, shopRepo, shopRef)
	if err != nil {
		return err
	}

	result, err := authSvc.ListAPIKeys(ctx, shopID, cursor, limit)
	if err != nil {
		return fmt.Errorf("failed to list API keys: %w", err)
	}

	if outputFormat == "json" {
		data := make([]map[string]interface{}, len(result.Items))
		for i, key := range result.Items {
			data[i] = map[string]interface{}{
				"id":         key.ID,
				"name":       key.Name,
				"shop_id":    key.ShopID,
				"user_ref":   key.UserRef,
				"role":       key.Role,
				"created_at": key.CreatedAt,
				"revoked_at": key.RevokedAt,
				"revoked":    key.IsRevoked(),
			}
		}
		return printJSON(cmd, map[string]interface{}{
			"items":    data,
			"cursor":   result.Cursor,
			"has_more": result.HasMore,
		})
	}

	out := cmd.OutOrStdout()
	if len(result.Items) == 0 {
		fmt.Fprintf(out, "No API keys found for shop %s\n", shopID)
		return nil
	}
	fmt.Fprintf(out, "API keys for shop %s:\n", shopID)
	for _, key := range result.Items {
		status := "active"
		if key.IsRevoked() {
			status = "revoked"
		}
		fmt.Fprintf(out, "  %s: %s [%s/%s] (%s, created: %s)\n", key.ID, key.Name, key.UserRef, key.Role, status, key.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	if result.HasMore && result.Cursor != "" {
		fmt.Fprintf(out, "\nMore results available. Use --cursor %s\n", result.Cursor)
	}

	return nil
}

func APIKeyRevokeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revoke <id>",
		Short: "Revoke an API key",
		Long:  "Revoke an API key by its ID",
		Args:  cobra.ExactArgs(1),
		RunE:  runAPIKeyRevoke,
	}

	cmd.Flags().StringP("output", "", "text", "Output format (text or json)")

	return cmd
}

func runAPIKeyRevoke(cmd *cobra.Command, args []string) error {
	ctx, cancel := exitOnSignal()
	defer cancel()
	keyID := args[0]
	outputFormat, _ := cmd.Flags().GetString("output")

	pool, err := getDBPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	authSvc, _ := newAuthService(pool)
	if err := authSvc.RevokeAPIKey(ctx, keyID); err != nil {
		return fmt.Errorf("failed to revoke API key: %w", err)
	}

	if outputFormat == "json" {
		return printJSON(cmd, map[string]interface{}{
			"id":      keyID,
			"revoked": true,
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "API key %s revoked\n", keyID)
	return nil
}
