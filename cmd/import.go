package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/recruiting-analytics/internal/loader"
	"github.com/sells-group/recruiting-analytics/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import activity record exports into the store",
	Long: `Import one or more CSV or XLSX activity exports.

Files are parsed concurrently and matched by header name; unknown columns are
ignored and malformed numeric cells default to 0. Engagement ladder and
tenure columns keep their N/A and "-" sentinels.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		records, err := loader.ReadFiles(ctx, args)
		if err != nil {
			return eris.Wrap(err, "import: read files")
		}
		zap.L().Info("import: files parsed",
			zap.Int("files", len(args)),
			zap.Int("records", len(records)),
		)

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.Migrate(ctx); err != nil {
			return err
		}

		n, err := st.InsertRecords(ctx, records)
		if err != nil {
			return eris.Wrap(err, "import: insert records")
		}
		fmt.Printf("Imported %d records from %d file(s)\n", n, len(args))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
