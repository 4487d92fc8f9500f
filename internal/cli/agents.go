package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/soyeahso/agentdex/internal/catalog"
	"github.com/soyeahso/agentdex/internal/config"
	"github.com/spf13/cobra"
)

func newListAgentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-agents",
		Short: "List all agents in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(paths.Config)
			if err != nil {
				return err
			}

			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}

			return printRecords(cat.Records())
		},
	}
}

func newGetAgentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get-agent <name>",
		Short: "Show one agent by exact name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(paths.Config)
			if err != nil {
				return err
			}

			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}

			rec, err := cat.Get(args[0])
			if err != nil {
				return err
			}

			if jsonOut {
				return printJSON(rec)
			}
			printRecord(rec)
			return nil
		},
	}
}

func newSearchCmd() *cobra.Command {
	var purpose string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search agents by purpose keyword",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(paths.Config)
			if err != nil {
				return err
			}

			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}

			matched := slices.AppendSeq(make([]catalog.AgentRecord, 0), cat.FilterByPurpose(purpose))
			return printRecords(matched)
		},
	}

	cmd.Flags().StringVar(&purpose, "purpose", "", "case-insensitive keyword to match against the purpose field")
	return cmd
}

// printRecords renders records as a table, or JSON with --json.
func printRecords(records []catalog.AgentRecord) error {
	if jsonOut {
		return printJSON(records)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPURPOSE\tREPOSITORY")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Name, r.Purpose, r.RepositoryURL)
	}
	return w.Flush()
}

// printRecord renders a single record in detail.
func printRecord(r catalog.AgentRecord) {
	fmt.Printf("Name:       %s\n", r.Name)
	fmt.Printf("Purpose:    %s\n", r.Purpose)
	if r.RepositoryURL != "" {
		fmt.Printf("Repository: %s\n", r.RepositoryURL)
	}
	if r.HasPaper() {
		fmt.Printf("Paper:      %s\n", *r.PaperTitle)
	} else {
		fmt.Println("Paper:      (none)")
	}
	if len(r.ReferenceLinks) > 0 {
		fmt.Printf("Links:      %s\n", strings.Join(r.ReferenceLinks, ", "))
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
