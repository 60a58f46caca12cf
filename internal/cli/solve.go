package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"depsolve/internal/app"
)

type solveOptions struct {
	Catalog      string
	CatalogURL   string
	CatalogCache string
	Installed    string
}

func newSolveCommand() *cobra.Command {
	opts := solveOptions{}
	cmd := &cobra.Command{
		Use:   "solve [requirement]",
		Short: "Resolve a requirement against a catalog and print the install plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd.Context(), cmd, opts, args[0])
		},
	}
	bindCatalogFlags(cmd, &opts)
	return cmd
}

func bindCatalogFlags(cmd *cobra.Command, opts *solveOptions) {
	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "Catalog YAML file path")
	cmd.Flags().StringVar(&opts.CatalogURL, "catalog-url", "", "Catalog YAML endpoint (overrides --catalog)")
	cmd.Flags().StringVar(&opts.CatalogCache, "catalog-cache", "", "On-disk cache directory for --catalog-url responses")
	cmd.Flags().StringVar(&opts.Installed, "installed", "", "Installed-package catalog file (defaults to the catalog's own installed section)")

	_ = viper.BindPFlag("catalog", cmd.Flags().Lookup("catalog"))
	_ = viper.BindPFlag("catalog_url", cmd.Flags().Lookup("catalog-url"))
	_ = viper.BindPFlag("catalog_cache", cmd.Flags().Lookup("catalog-cache"))
	_ = viper.BindPFlag("installed", cmd.Flags().Lookup("installed"))
}

func solveRequestFromOptions(cmd *cobra.Command, opts solveOptions, requirement string) app.SolveRequest {
	return app.SolveRequest{
		Requirement:     requirement,
		CatalogPath:     resolveString(cmd, opts.Catalog, "catalog", "catalog"),
		CatalogURL:      resolveString(cmd, opts.CatalogURL, "catalog_url", "catalog-url"),
		CatalogCacheDir: resolveString(cmd, opts.CatalogCache, "catalog_cache", "catalog-cache"),
		InstalledPath:   resolveString(cmd, opts.Installed, "installed", "installed"),
	}
}

func runSolve(ctx context.Context, cmd *cobra.Command, opts solveOptions, requirement string) error {
	req := solveRequestFromOptions(cmd, opts, requirement)
	service := app.NewService(req)
	result, err := service.Solve(ctx, req)
	if err != nil {
		return err
	}
	if len(result.Operations) == 0 {
		fmt.Println("no operations: the requirement is already satisfied")
		return nil
	}
	for _, op := range result.Operations {
		switch op.Kind {
		case "update":
			fmt.Printf("update %s -> %s\n", op.From, op.Package)
		default:
			fmt.Printf("%s %s\n", op.Kind, op.Package)
		}
	}
	return nil
}

func newExplainCommand() *cobra.Command {
	opts := solveOptions{}
	cmd := &cobra.Command{
		Use:   "explain [requirement]",
		Short: "Print the compiled clauses and decision trail for a requirement, without collapsing it into a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := solveRequestFromOptions(cmd, opts, args[0])
			service := app.NewService(req)
			result, err := service.Explain(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Println("clauses:")
			for _, c := range result.Clauses {
				fmt.Printf("  %s\n", c)
			}
			fmt.Println("decisions:")
			for _, d := range result.Decisions {
				fmt.Printf("  %s\n", d)
			}
			return nil
		},
	}
	bindCatalogFlags(cmd, &opts)
	return cmd
}
