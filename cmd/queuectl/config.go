package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvelo/queuectl"
	"github.com/mvelo/queuectl/store"
)

func init() {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Read or write a config key",
	}
	rootCmd.AddCommand(configCmd)

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print a config key's effective value",
		Args:  cobra.ExactArgs(1),
		RunE:  runConfigGet,
	}
	configCmd.AddCommand(getCmd)

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a config key's value",
		Args:  cobra.ExactArgs(2),
		RunE:  runConfigSet,
	}
	configCmd.AddCommand(setCmd)
}

var knownDefaults = map[string]string{
	queuectl.KeyMaxRetries:        "3",
	queuectl.KeyBackoffBase:       "2",
	queuectl.KeyMaxBackoffSeconds: "300",
	queuectl.KeyLockLeaseSeconds:  "300",
	queuectl.KeyJobTimeoutSeconds: "3600",
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	cfgStore := store.NewConfigStore(db)
	value, ok, err := cfgStore.GetConfigValue(ctx, args[0])
	if err != nil {
		return err
	}
	if !ok {
		value, ok = knownDefaults[args[0]]
		if !ok {
			return fmt.Errorf("unknown config key %q", args[0])
		}
	}
	fmt.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	cfgStore := store.NewConfigStore(db)
	if err := cfgStore.SetConfigValue(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Printf("%s = %s\n", args[0], args[1])
	return nil
}
