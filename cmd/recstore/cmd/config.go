/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ssargent/recstore/pkg/config"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the recstore configuration file",
	}

	configCmd.AddCommand(newConfigInitCmd())
	configCmd.AddCommand(newConfigShowCmd())

	return configCmd
}

func newConfigInitCmd() *cobra.Command {
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write a configuration file holding the default settings.

An existing file is left alone unless --force is given.

Examples:
	  recstore config init
	  recstore config init --path ./recstore.yaml --report ./out/results.txt`,
		Args: cobra.NoArgs,
		// Skip loading the current config so a broken file can be rewritten
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("path")
			reportPath, _ := cmd.Flags().GetString("report")
			force, _ := cmd.Flags().GetBool("force")

			if path == "" {
				path = config.GetDefaultConfigPath()
			}
			if config.ConfigExists(path) && !force {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
			}

			if _, err := config.BootstrapConfig(path, reportPath); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
			return nil
		},
	}

	initCmd.Flags().String("path", "", "Where to write the config file (default is "+config.GetDefaultConfigPath()+")")
	initCmd.Flags().String("report", "", "Report path to store in the new config")
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	return initCmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := containerFrom(cmd)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(container.GetConfig())
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
