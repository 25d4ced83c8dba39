package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/devwatch/devwatch/internal/config"
	"github.com/devwatch/devwatch/internal/dashboard"
	"github.com/devwatch/devwatch/internal/repo"
	"github.com/devwatch/devwatch/internal/snapshot"
	"github.com/devwatch/devwatch/internal/store"
)

var dataOutFile string

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Snapshot commands (export, import, reset)",
}

var dataExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all collections as one JSON snapshot",
	RunE:  runDataExport,
}

var dataImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a snapshot, overwriting the collections it contains",
	Args:  cobra.ExactArgs(1),
	RunE:  runDataImport,
}

var dataResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe the store back to the default datasets",
	RunE:  runDataReset,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the default collections if the store is uninitialized",
	RunE:  runSeed,
}

func init() {
	dataExportCmd.Flags().StringVarP(&dataOutFile, "output", "o", "", "write snapshot to file instead of stdout")
	dataCmd.AddCommand(dataExportCmd, dataImportCmd, dataResetCmd)
}

// openSnapshotManager opens the store from config for one-shot data
// commands. The caller must close the returned store.
func openSnapshotManager() (*store.Store, *snapshot.Manager, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	st, err := store.Open(cfg.Storage.Path, logger)
	if err != nil {
		return nil, nil, err
	}

	reg := repo.NewRegistry(st, time.Now)
	agg := dashboard.New(st, reg, time.Now, logger, nil)
	reg.SetRecomputer(agg)

	return st, snapshot.NewManager(st, reg, agg, time.Now), nil
}

func runDataExport(cmd *cobra.Command, args []string) error {
	st, mgr, err := openSnapshotManager()
	if err != nil {
		return err
	}
	defer st.Close()

	snap, err := mgr.Export()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	if dataOutFile != "" {
		if err := os.WriteFile(dataOutFile, data, 0600); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "snapshot written to %s\n", dataOutFile)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func runDataImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	var snap snapshot.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("invalid snapshot file: %w", err)
	}

	st, mgr, err := openSnapshotManager()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := mgr.Import(&snap); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "snapshot imported")
	return nil
}

func runDataReset(cmd *cobra.Command, args []string) error {
	st, mgr, err := openSnapshotManager()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := mgr.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "store reset to defaults")
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	st, _, err := openSnapshotManager()
	if err != nil {
		return err
	}
	defer st.Close()

	seeded, err := st.Seed(time.Now())
	if err != nil {
		return err
	}
	if seeded {
		fmt.Fprintln(cmd.OutOrStdout(), "default collections seeded")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "store already initialized, nothing to do")
	}
	return nil
}
