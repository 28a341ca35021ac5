package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"impactcompare/internal/domain"
)

func newHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect saved comparisons",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved comparisons, newest first",
		Args:  cobra.NoArgs,
		RunE:  runHistoryList,
	})
	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one saved comparison",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryShow,
	}
	show.Flags().Bool("json", false, "Print the stored record as JSON")
	cmd.AddCommand(show)
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one saved comparison",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryDelete,
	})
	return cmd
}

func withStore(cmd *cobra.Command, fn func(historyStore) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cmd.Context(), storePath(cmd, cfg))
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	return withStore(cmd, func(store historyStore) error {
		all, err := store.ListAll(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(all) == 0 {
			fmt.Fprintln(out, "No saved comparisons.")
			return nil
		}
		rows := [][]string{{"ID", "CREATED", "STATUS", "METRIC", "RECOMMENDATION"}}
		for _, c := range all {
			rec := ""
			if c.Result != nil {
				rec = truncate(c.Result.Analysis.Recommendation, 48)
			}
			rows = append(rows, []string{
				c.ID,
				c.CreatedAt.Local().Format("2006-01-02 15:04"),
				string(c.Status),
				c.Context.PrimaryMetric,
				rec,
			})
		}
		printRows(out, rows)
		return nil
	})
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	return withStore(cmd, func(store historyStore) error {
		c, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("comparison %s: %w", args[0], err)
		}
		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(c)
		}
		fmt.Fprintf(out, "%s %s (%s)\n", color.New(color.Bold).Sprint("Comparison"), c.ID, c.Status)
		fmt.Fprintf(out, "Created: %s\n", c.CreatedAt.Local().Format("2006-01-02 15:04"))
		printContext(out, c.Context)
		if c.Result != nil {
			fmt.Fprintln(out)
			printResult(out, *c.Result)
		} else if c.Status == domain.StatusFailed {
			fmt.Fprintf(out, "Failure: %s\n", c.Failure)
		}
		return nil
	})
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(store historyStore) error {
		if err := store.Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("comparison %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	})
}
