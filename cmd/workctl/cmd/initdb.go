package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/good-yellow-bee/workfolio/internal/storage"
)

var initDBPath string

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Initialize the project database",
	Long: `Create the database file if needed, apply pending migrations,
and report the resulting schema.`,
	RunE: runInitDB,
}

func init() {
	initDBCmd.Flags().StringVarP(&initDBPath, "db", "d", "data/projects.db", "database file path")
	rootCmd.AddCommand(initDBCmd)
}

func runInitDB(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(filepath.Dir(initDBPath), 0750); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	store := storage.NewSQLiteStorage(initDBPath)
	if err := store.Open(); err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	if err := store.Migrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	PrintVerbose("migrations applied")

	// Summarize what the migrations produced.
	counts := map[string]int{}
	rows, err := store.DB().Query(`SELECT type, COUNT(*) FROM sqlite_master WHERE name NOT LIKE 'sqlite_%' GROUP BY type`)
	if err != nil {
		return fmt.Errorf("inspect schema: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var typ string
		var n int
		if err := rows.Scan(&typ, &n); err != nil {
			return fmt.Errorf("inspect schema: %w", err)
		}
		counts[typ] = n
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("inspect schema: %w", err)
	}

	fmt.Printf("database ready at %s\n", initDBPath)
	fmt.Printf("  tables:   %d\n", counts["table"])
	fmt.Printf("  indexes:  %d\n", counts["index"])
	fmt.Printf("  triggers: %d\n", counts["trigger"])
	return nil
}
