package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"depsolve/internal/app"
)

func newCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and validate package catalogs",
	}
	cmd.AddCommand(newCatalogValidateCommand())
	return cmd
}

func newCatalogValidateCommand() *cobra.Command {
	var catalogPath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Parse a catalog file and report package/requirement parse errors",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCatalogValidate(cmd.Context(), cmd, catalogPath)
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Catalog YAML file path")
	_ = viper.BindPFlag("catalog", cmd.Flags().Lookup("catalog"))
	return cmd
}

func runCatalogValidate(ctx context.Context, cmd *cobra.Command, catalogPath string) error {
	service := app.Service{}
	result, err := service.ValidateCatalog(ctx, app.ValidateCatalogRequest{
		CatalogPath: resolveString(cmd, catalogPath, "catalog", "catalog"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("catalog valid: %d packages, %d installed\n", result.PackageCount, result.InstalledCount)
	return nil
}
