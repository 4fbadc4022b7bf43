package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"routescan/internal/diag"
	"routescan/internal/lexer"
	"routescan/internal/report"
)

var lexCmd = &cobra.Command{
	Use:   "lex [flags] File.java",
	Short: "Show the comment and string regions of a Java source file",
	Long:  `Lex classifies a Java source file into code, comment and string regions and optionally dumps its tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runLex,
}

func init() {
	lexCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	lexCmd.Flags().Bool("tokens", false, "also print the token stream")
}

func runLex(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	withTokens, err := cmd.Flags().GetBool("tokens")
	if err != nil {
		return fmt.Errorf("failed to get tokens flag: %w", err)
	}

	fs, file, err := loadSingle(args[0])
	if err != nil {
		return err
	}
	bag := inspectBag(cmd)
	toks, cls := lexer.Classify(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	if !withTokens {
		toks = nil
	}

	// Выводим диагностику в stderr, если есть
	if bag.Len() > 0 {
		opts := report.Options{Color: inspectColor(cmd, os.Stderr), Context: 1}
		if err := report.PrettyDiagnostics(cmd.ErrOrStderr(), bag.Sorted(), fs, opts); err != nil {
			return err
		}
	}

	switch format {
	case "pretty":
		err = report.PrettyLex(cmd.OutOrStdout(), cls, toks, fs, report.Options{Color: inspectColor(cmd, os.Stdout)})
	case "json":
		err = report.JSONLex(cmd.OutOrStdout(), cls, toks, fs)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if bag.HasErrors() {
		return exitError{code: 1}
	}
	return nil
}
