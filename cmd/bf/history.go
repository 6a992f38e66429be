package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	bf "nickandperla.net/brainfuck"
)

var (
	historyLimit int
	historyLike  string
	historyDist  int
)

var historyCmd = &cobra.Command{
	Use:           "history",
	Short:         "List recorded runs",
	Long:          "history lists runs recorded to the ledger, newest first. With --like, it instead lists runs whose source is within --distance edit operations of the given source, nearest first.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to list")
	historyCmd.Flags().StringVar(&historyLike, "like", "", "List runs with a source similar to this one")
	historyCmd.Flags().IntVar(&historyDist, "distance", 10, "Maximum edit distance for --like")
}

func runHistory(cmd *cobra.Command, args []string) error {
	toolConfig, err := bf.LoadToolConfig(toolConfigPath)
	if err != nil {
		return fmt.Errorf("unable to load bf config: %v", err)
	}

	if toolConfig.Persistence == nil {
		return fmt.Errorf("no [persistence] section in %s, runs are not being recorded", toolConfigPath)
	}

	persist, err := bf.NewPersistence(toolConfig.Persistence)
	if err != nil {
		return fmt.Errorf("failed to create or initialize Persistence: %v", err)
	}
	defer persist.Shutdown()

	var records []*bf.RunRecord
	if len(historyLike) > 0 {
		records, err = persist.SimilarRuns(historyLike, historyDist, historyLimit)
	} else {
		records, err = persist.RecentRuns(historyLimit)
	}
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tOK\tSTEPS\tOUT\tSOURCE")
	for _, record := range records {
		status := "yes"
		if record.Survived == 0 {
			status = "no"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%s\n",
			record.ID,
			record.CreatedAt.Format("2006-01-02 15:04:05"),
			status,
			record.InstructionsExecuted,
			record.OutputBytes,
			truncateSource(record.Source, 48),
		)
	}
	return w.Flush()
}

func truncateSource(source string, max int) string {
	flat := strings.Join(strings.Fields(source), " ")
	if len(flat) <= max {
		return flat
	}
	return flat[:max-3] + "..."
}
