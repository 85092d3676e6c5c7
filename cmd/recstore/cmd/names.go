/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/ssargent/recstore/pkg/store"
)

func newNamesCmd() *cobra.Command {
	namesCmd := &cobra.Command{
		Use:   "names",
		Short: "Work with a file of names, one per line",
		Long: `Load a file of names into a text store and inspect or edit it.

Examples:
	  recstore names print names.txt
	  recstore names get names.txt 2
	  recstore names remove names.txt 0 --out trimmed.txt`,
	}

	namesCmd.AddCommand(newNamesPrintCmd())
	namesCmd.AddCommand(newNamesCountCmd())
	namesCmd.AddCommand(newNamesGetCmd())
	namesCmd.AddCommand(newNamesRemoveCmd())

	return namesCmd
}

func newNamesPrintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print <file>",
		Short: "Print every name in file order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := loadNames(cmd, args[0])
			if err != nil {
				return err
			}
			return names.PrintAll(cmd.OutOrStdout())
		},
	}
}

func newNamesCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count <file>",
		Short: "Print the number of names and the bytes they occupy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := loadNames(cmd, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d names (%s)\n", names.Count(), humanize.IBytes(uint64(names.Len())))
			return nil
		},
	}
}

func newNamesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <file> <index>",
		Short: "Print the name at a zero-based index",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			names, err := loadNames(cmd, args[0])
			if err != nil {
				return err
			}
			name, err := names.At(index)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
}

func newNamesRemoveCmd() *cobra.Command {
	removeCmd := &cobra.Command{
		Use:   "remove <file> <index>",
		Short: "Remove the name at a zero-based index and save the rest",
		Long: `Remove one name and write the remaining names back out.

The input file is overwritten unless --out names another destination.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			names, err := loadNames(cmd, args[0])
			if err != nil {
				return err
			}
			removed, err := names.At(index)
			if err != nil {
				return err
			}
			if err := names.RemoveAt(index); err != nil {
				return err
			}

			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				out = args[0]
			}
			if err := names.SaveToFile(out); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %q, %d names remain in %s\n", removed, names.Count(), out)
			return nil
		},
	}

	removeCmd.Flags().String("out", "", "Write the remaining names here instead of the input file")
	return removeCmd
}

func loadNames(cmd *cobra.Command, path string) (*store.TextStore, error) {
	container, err := containerFrom(cmd)
	if err != nil {
		return nil, err
	}
	names := container.NewTextStore()
	if err := names.LoadFromFile(path); err != nil {
		return nil, err
	}
	return names, nil
}

func parseIndex(s string) (int, error) {
	index, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", s, err)
	}
	return index, nil
}
