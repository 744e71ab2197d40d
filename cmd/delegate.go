package main

import (
	"fmt"
	"os/signal"
	"sort"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/recruiting-analytics/internal/ranking"
	"github.com/sells-group/recruiting-analytics/internal/store"
)

var delegateCmd = &cobra.Command{
	Use:   "delegate",
	Short: "Distribute a lead volume by ranking share",
	Long: `Distribute a lead volume across ranked entities in proportion to
their delegation percent. With --companies and --contracts the ranking is
recomputed scoped to that selection, so the shares reflect contract-specific
performance rather than the global ranking.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		mode, filter, err := rankScope(cmd)
		if err != nil {
			return err
		}
		leads, _ := cmd.Flags().GetInt("leads")
		if leads <= 0 {
			return eris.Errorf("delegate: --leads must be positive (got %d)", leads)
		}

		rankCtx, err := loadRankingContext(mode, filter)
		if err != nil {
			return err
		}

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		records, err := st.ListRecords(ctx, filter)
		if err != nil {
			return eris.Wrap(err, "delegate: list records")
		}

		ranker := ranking.New(rankCtx)
		ranked := ranker.RankScoped(records, mode, filter.Companies, filter.Contracts)
		shares := ranking.DistributeLeads(ranked, leads)

		zap.L().Info("delegate: distribution computed",
			zap.Int("leads", leads),
			zap.Int("entities", len(shares)),
		)

		names := make([]string, 0, len(shares))
		for name := range shares {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool { return shares[names[i]] > shares[names[j]] })
		for _, name := range names {
			fmt.Printf("%-30s %d\n", name, shares[name])
		}
		return nil
	},
}

func init() {
	f := delegateCmd.Flags()
	f.String("mode", "recruiter", "ranking mode: recruiter, team, or profiler")
	f.String("from", "", "period start date (YYYY-MM-DD)")
	f.String("to", "", "period end date (YYYY-MM-DD)")
	f.String("companies", "", "comma-separated company filter")
	f.String("contracts", "", "comma-separated contract filter")
	f.String("teams", "", "comma-separated team filter")
	f.Int("leads", 0, "lead volume to distribute")

	rootCmd.AddCommand(delegateCmd)
}
