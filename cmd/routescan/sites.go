package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"routescan/internal/annot"
	"routescan/internal/diag"
	"routescan/internal/lexer"
	"routescan/internal/report"
)

var sitesCmd = &cobra.Command{
	Use:   "sites [flags] File.java",
	Short: "List the annotation sites of a Java source file",
	Long: `Sites prints every annotation found in the file, including the ones inside
comments and text blocks, marked inactive`,
	Args: cobra.ExactArgs(1),
	RunE: runSites,
}

func init() {
	sitesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	sitesCmd.Flags().Bool("active", false, "only print active sites")
}

func runSites(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	activeOnly, err := cmd.Flags().GetBool("active")
	if err != nil {
		return fmt.Errorf("failed to get active flag: %w", err)
	}

	fs, file, err := loadSingle(args[0])
	if err != nil {
		return err
	}
	bag := inspectBag(cmd)
	reporter := diag.BagReporter{Bag: bag}
	toks, cls := lexer.Classify(file, lexer.Options{Reporter: reporter})
	sites := annot.Scan(file, toks, cls, reporter)
	if activeOnly {
		kept := sites[:0]
		for _, s := range sites {
			if s.Active {
				kept = append(kept, s)
			}
		}
		sites = kept
	}

	if bag.Len() > 0 {
		opts := report.Options{Color: inspectColor(cmd, os.Stderr), Context: 1}
		if err := report.PrettyDiagnostics(cmd.ErrOrStderr(), bag.Sorted(), fs, opts); err != nil {
			return err
		}
	}

	switch format {
	case "pretty":
		return report.PrettySites(cmd.OutOrStdout(), sites, fs, report.Options{Color: inspectColor(cmd, os.Stdout)})
	case "json":
		return report.JSONSites(cmd.OutOrStdout(), sites, fs)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
