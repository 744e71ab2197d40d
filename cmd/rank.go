package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/recruiting-analytics/internal/model"
	"github.com/sells-group/recruiting-analytics/internal/ranking"
	"github.com/sells-group/recruiting-analytics/internal/store"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Compute performance rankings",
	Long: `Compute the composite performance ranking for a period.

Records in the date range are aggregated per recruiter, team, or profiler;
entities surviving the configured exclusion rules are converted to rank
percentiles and folded into weighted composite scores.

Examples:
  # Rank recruiters for July
  rank --mode recruiter --from 2026-07-01 --to 2026-07-31

  # Rank teams for one company and contract, export CSV
  rank --mode team --from 2026-07-01 --to 2026-07-31 \
       --companies Acme --contracts OTR --format csv --output ranks.csv

  # Persist the run as a snapshot
  rank --mode recruiter --from 2026-07-01 --to 2026-07-31 --save`,
	RunE: runRank,
}

func init() {
	f := rankCmd.Flags()
	f.String("mode", "recruiter", "ranking mode: recruiter, team, or profiler")
	f.String("from", "", "period start date (YYYY-MM-DD)")
	f.String("to", "", "period end date (YYYY-MM-DD)")
	f.String("companies", "", "comma-separated company filter")
	f.String("contracts", "", "comma-separated contract filter")
	f.String("teams", "", "comma-separated team filter")
	f.String("output", "", "output file path (default: stdout)")
	f.String("format", "table", "output format: table or csv")
	f.Bool("save", false, "save results as a ranking snapshot")

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mode, filter, err := rankScope(cmd)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	save, _ := cmd.Flags().GetBool("save")
	if format != "table" && format != "csv" {
		return eris.Errorf("rank: --format must be table or csv (got %q)", format)
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
		return eris.Wrap(err, "rank: list records")
	}

	log := zap.L().With(zap.String("command", "rank"))
	log.Info("starting ranking run",
		zap.String("mode", string(mode)),
		zap.Int("records", len(records)),
	)

	ranked := ranking.New(rankCtx).Rank(records, mode)

	if err := outputRankings(ranked, format, outputPath); err != nil {
		return err
	}
	if save && len(ranked) > 0 {
		id, err := st.SaveSnapshot(ctx, mode, ranked)
		if err != nil {
			return eris.Wrap(err, "rank: save snapshot")
		}
		fmt.Printf("Snapshot saved: %s\n", id)
	}

	printRankSummary(ranked)
	return nil
}

// rankScope parses the mode and filter flags.
func rankScope(cmd *cobra.Command) (model.Mode, model.FilterSelection, error) {
	modeStr, _ := cmd.Flags().GetString("mode")
	mode := model.Mode(modeStr)
	if !mode.Valid() {
		return "", model.FilterSelection{}, eris.Errorf("rank: --mode must be recruiter, team, or profiler (got %q)", modeStr)
	}

	var filter model.FilterSelection
	if v, _ := cmd.Flags().GetString("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return "", filter, eris.Wrapf(err, "rank: parse --from %q", v)
		}
		filter.From = t
	}
	if v, _ := cmd.Flags().GetString("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return "", filter, eris.Wrapf(err, "rank: parse --to %q", v)
		}
		filter.To = t
	}
	if v, _ := cmd.Flags().GetString("companies"); v != "" {
		filter.Companies = splitAndTrim(v)
	}
	if v, _ := cmd.Flags().GetString("contracts"); v != "" {
		filter.Contracts = splitAndTrim(v)
	}
	if v, _ := cmd.Flags().GetString("teams"); v != "" {
		filter.Teams = splitAndTrim(v)
	}
	return mode, filter, nil
}

// loadRankingContext assembles the engine context from the per-mode settings
// and weight files, falling back to defaults when a file does not exist.
func loadRankingContext(mode model.Mode, filter model.FilterSelection) (ranking.Context, error) {
	rankCtx := ranking.Context{
		Settings: ranking.DefaultSettings(mode),
		Weights:  ranking.DefaultWeights(mode),
		Filter:   filter,
	}

	settingsPath := filepath.Join(cfg.Ranking.SettingsDir, fmt.Sprintf("settings_%s.yaml", mode))
	if _, err := os.Stat(settingsPath); err == nil {
		s, err := ranking.LoadSettings(settingsPath, mode)
		if err != nil {
			return rankCtx, err
		}
		rankCtx.Settings = s
	}

	weightsPath := filepath.Join(cfg.Ranking.WeightsDir, fmt.Sprintf("weights_%s.yaml", mode))
	if _, err := os.Stat(weightsPath); err == nil {
		w, err := ranking.LoadWeights(weightsPath, mode)
		if err != nil {
			return rankCtx, err
		}
		rankCtx.Weights = w
	}

	return rankCtx, nil
}

func outputRankings(ranked []ranking.Ranked, format, outputPath string) error {
	var w *os.File
	if outputPath != "" {
		var err error
		w, err = os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "rank: create output file %s", outputPath)
		}
		defer w.Close() //nolint:errcheck
	} else {
		w = os.Stdout
	}

	switch format {
	case "csv":
		return writeRankCSV(w, ranked)
	default:
		return writeRankTable(w, ranked)
	}
}

func writeRankCSV(w *os.File, ranked []ranking.Ranked) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"rank", "name", "team", "final_score", "effort_score",
		"compliance_score", "arrivals_score", "active_days", "delegation_percent",
	}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "rank: write CSV header")
	}

	for _, r := range ranked {
		row := []string{
			fmt.Sprintf("%d", r.Rank),
			r.Name,
			r.Team,
			fmt.Sprintf("%.2f", r.FinalScore),
			fmt.Sprintf("%.2f", r.Scores[ranking.EffortScore]),
			fmt.Sprintf("%.2f", r.Scores[ranking.ComplianceScore]),
			fmt.Sprintf("%.2f", r.Scores[ranking.ArrivalsScore]),
			fmt.Sprintf("%d", r.ActiveDays),
			fmt.Sprintf("%.2f", r.DelegationPercent),
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "rank: write CSV row")
		}
	}
	return nil
}

func writeRankTable(w *os.File, ranked []ranking.Ranked) error {
	p := message.NewPrinter(language.English)

	header := fmt.Sprintf("%-5s %-30s %-20s %8s %8s %10s %7s %8s\n",
		"Rank", "Name", "Team", "Score", "Effort", "Compliance", "Days", "Deleg%")
	if _, err := fmt.Fprint(w, header); err != nil {
		return eris.Wrap(err, "rank: write table header")
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 103)); err != nil {
		return eris.Wrap(err, "rank: write table separator")
	}

	for _, r := range ranked {
		name := r.Name
		if len(name) > 30 {
			name = name[:27] + "..."
		}
		line := p.Sprintf("%-5d %-30s %-20s %8.2f %8.2f %10.2f %7d %8.2f\n",
			r.Rank, name, r.Team, r.FinalScore,
			r.Scores[ranking.EffortScore], r.Scores[ranking.ComplianceScore],
			r.ActiveDays, r.DelegationPercent)
		if _, err := fmt.Fprint(w, line); err != nil {
			return eris.Wrap(err, "rank: write table row")
		}
	}
	return nil
}

func printRankSummary(ranked []ranking.Ranked) {
	if len(ranked) == 0 {
		fmt.Println("No entities ranked.")
		return
	}
	var sum float64
	for _, r := range ranked {
		sum += r.FinalScore
	}
	p := message.NewPrinter(language.English)
	p.Printf("\n--- Summary ---\n")
	p.Printf("Entities ranked: %d\n", len(ranked))
	p.Printf("Top score:       %.2f (%s)\n", ranked[0].FinalScore, ranked[0].Name)
	p.Printf("Average score:   %.2f\n", sum/float64(len(ranked)))
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
