// One-shot exporter for the primary archive artifacts of a single
// day. Useful for backfills and spot checks; touches no cursors.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"sedimentology/internal/archiver"
	"sedimentology/internal/repository"
)

var (
	withState       bool
	withToken       bool
	withTransaction bool
	outDir          string
)

var rootCmd = &cobra.Command{
	Use:   "export <yyyymmdd>",
	Short: "Export whirlpool archive artifacts for one day",
	Long: `Export writes the primary archive artifacts (state, token,
transaction) of one replayed day as local gzip files, byte-identical
to what the archiver uploads. With no artifact flag, all three are
exported.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.Flags().BoolVar(&withState, "state", false, "export the whirlpool-state artifact")
	rootCmd.Flags().BoolVar(&withToken, "token", false, "export the whirlpool-token artifact")
	rootCmd.Flags().BoolVar(&withTransaction, "transaction", false, "export the whirlpool-transaction artifact")
	rootCmd.Flags().StringVarP(&outDir, "output", "o", ".", "output directory")
}

func runExport(cmd *cobra.Command, args []string) error {
	godotenv.Load()

	date64, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil || len(args[0]) != 8 {
		return fmt.Errorf("invalid yyyymmdd: %q", args[0])
	}
	date := uint32(date64)

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if !withState && !withToken && !withTransaction {
		withState, withToken, withTransaction = true, true, true
	}

	repo, err := repository.NewRepository(dbURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer repo.Close()

	ctx := context.Background()
	exporter := archiver.NewExporter(repo)

	if withToken {
		path := filepath.Join(outDir, fmt.Sprintf("whirlpool-token-%d.json.gz", date))
		if err := exporter.ExportToken(ctx, date, path); err != nil {
			return err
		}
		log.Printf("wrote %s", path)
	}
	if withState {
		path := filepath.Join(outDir, fmt.Sprintf("whirlpool-state-%d.json.gz", date))
		if err := exporter.ExportState(ctx, date, path); err != nil {
			return err
		}
		log.Printf("wrote %s", path)
	}
	if withTransaction {
		path := filepath.Join(outDir, fmt.Sprintf("whirlpool-transaction-%d.jsonl.gz", date))
		if err := exporter.ExportTransaction(ctx, date, path); err != nil {
			return err
		}
		log.Printf("wrote %s", path)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
