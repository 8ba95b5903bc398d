package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maloquacious/solicitreview/internal/store"
	"github.com/maloquacious/solicitreview/internal/store/sqlite"
)

func openSQLite(cmd *cobra.Command) (*sqlite.SQLiteStore, string, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, "", err
	}
	dbPath := store.GetDBPath(cfg.StorePath)
	s := sqlite.New(dbPath, schemaVersion)
	if err := s.Open(); err != nil {
		return nil, "", err
	}
	return s, dbPath, nil
}

func runDBCreate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	exists, err := store.CheckExists(cfg.StorePath)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("datastore already exists at %s", store.GetDBPath(cfg.StorePath))
	}

	s, dbPath, err := openSQLite(cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.InitSchema(schemaVersion); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %s (schema %s)\n", dbPath, schemaVersion)
	return nil
}

func runDBUpgrade(cmd *cobra.Command, args []string) error {
	s, dbPath, err := openSQLite(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	state, err := s.CheckState()
	if err != nil {
		return err
	}
	if state == store.StateReady {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is already at schema %s\n", dbPath, schemaVersion)
		return nil
	}
	if err := s.InitSchema(schemaVersion); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "upgraded %s to schema %s\n", dbPath, schemaVersion)
	return nil
}

func runDBVerify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	exists, err := store.CheckExists(cfg.StorePath)
	if err != nil {
		return err
	}
	summary := map[string]string{
		"path":           store.GetDBPath(cfg.StorePath),
		"expectedSchema": schemaVersion,
		"state":          store.StateMissing.String(),
	}
	if exists {
		s, _, err := openSQLite(cmd)
		if err != nil {
			return err
		}
		defer s.Close()
		state, err := s.CheckState()
		if err != nil {
			return err
		}
		current, err := s.GetSchemaVersion()
		if err != nil {
			return err
		}
		summary["state"] = state.String()
		summary["schema"] = current
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return err
	}
	if summary["state"] != store.StateReady.String() {
		return fmt.Errorf("datastore is %s", summary["state"])
	}
	return nil
}
