package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agenthands/saber/internal/core/catalog"
)

var searchCmd = &cobra.Command{
	Use:   "search <partial name>",
	Short: "Hybrid search: model first, local catalogue when it has nothing",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results := current.Resolver.HybridSearch(cmd.Context(), strings.Join(args, " "))
		return printJSON(cmd, results)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <name>",
	Short: "Hybrid validation: local catalogue first, model on a miss",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		municipality, _ := cmd.Flags().GetString("municipality")
		inst := current.Resolver.HybridValidation(cmd.Context(), strings.Join(args, " "), municipality)
		if inst == nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "could not validate institution")
		}
		return printJSON(cmd, inst)
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and maintain the local institution catalogue",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bundled and stored institutions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(cmd, current.Catalog.Entries())
	},
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <file.toml>",
	Short: "Store the [[institution]] entries of a TOML file in Memgraph",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if current.Graph == nil {
			return fmt.Errorf("memgraph is not configured (set MEMGRAPH_URI)")
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		entries, err := catalog.Parse(data)
		if err != nil {
			return err
		}

		for _, e := range entries {
			id, err := catalog.SaveToGraph(cmd.Context(), current.Graph, e)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s (%s)\n", id, e.Name, e.Municipality)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d institutions\n", len(entries))
		return nil
	},
}

var catalogRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Delete a stored institution from Memgraph",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if current.Graph == nil {
			return fmt.Errorf("memgraph is not configured (set MEMGRAPH_URI)")
		}
		municipality, _ := cmd.Flags().GetString("municipality")
		e := catalog.Entry{Name: strings.Join(args, " "), Municipality: municipality}
		if err := catalog.DeleteFromGraph(cmd.Context(), current.Graph, e); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", e.Name)
		return nil
	},
}
