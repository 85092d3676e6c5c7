/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMathCmd() *cobra.Command {
	mathCmd := &cobra.Command{
		Use:   "math <file>",
		Short: "Load integers and report their sum, difference, product and quotient",
		Long: `Load whitespace separated 32-bit integers from a file, print them with the
four reductions, and write a calculation report.

A reduction that fails, such as division by zero, is reported in place of its
value and does not stop the others. The report goes to report.path from the
configuration unless --report is given.

Examples:
	  recstore math numbers.txt
	  recstore math numbers.txt --report /tmp/results.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := containerFrom(cmd)
			if err != nil {
				return err
			}

			numbers := container.NewNumericStore()
			if err := numbers.LoadFromFile(args[0]); err != nil {
				return err
			}
			if err := numbers.PrintAll(cmd.OutOrStdout()); err != nil {
				return err
			}

			report := numbers.Calculate()
			lines := report.Lines()
			// Skip the header and the trailing Numbers line, PrintAll covered those
			for _, line := range lines[1 : len(lines)-1] {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}

			reportPath, _ := cmd.Flags().GetString("report")
			if reportPath == "" {
				reportPath = container.GetConfig().Report.Path
			}
			if err := numbers.SaveReport(report, reportPath); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Results written to %s\n", reportPath)
			return nil
		},
	}

	mathCmd.Flags().String("report", "", "Write the calculation report here instead of report.path")
	return mathCmd
}
