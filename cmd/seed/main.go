// Command seed wipes the product catalog and restores the sample dataset.
// Destructive; refuses to run without --yes.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"perfume-shop/internal/config"
	"perfume-shop/internal/infra/mysql"
	mysqlrepo "perfume-shop/internal/repository/mysql"
	"perfume-shop/internal/services"
)

func main() {
	var confirmed bool

	rootCmd := &cobra.Command{
		Use:   "seed",
		Short: "Reset the product catalog to the sample dataset",
		Long: "Deletes every product and inserts the fixed sample catalog. " +
			"Orders are untouched. This cannot be undone.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("refusing to wipe the catalog without --yes")
			}

			log, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer log.Sync()

			cfg := config.Load()
			db, err := mysql.NewMySQL(cfg)
			if err != nil {
				return fmt.Errorf("database connect: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			repo := mysqlrepo.NewProductRepository(db)
			seed := services.SampleProducts()
			if err := repo.ReplaceAll(ctx, seed); err != nil {
				return fmt.Errorf("reseed catalog: %w", err)
			}

			log.Info("catalog reseeded", zap.Int("products", len(seed)))
			return nil
		},
	}
	rootCmd.Flags().BoolVar(&confirmed, "yes", false, "confirm the destructive reseed")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
