package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codesniff/internal/diagfmt"
	"codesniff/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.php",
	Short: "Print the annotated token stream of a file",
	Long:  `Tokenize breaks a source file into tokens and prints them with their brackets, scopes and conditions`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return usageError(fmt.Errorf("failed to get format flag: %w", err))
	}
	if format != "pretty" && format != "json" {
		return usageError(fmt.Errorf("unknown format: %s", format))
	}
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return usageError(err)
	}
	opts := driver.Options{TabWidth: cfg.Run.TabWidth, Encoding: cfg.Run.Encoding}
	if tw, _ := cmd.Root().PersistentFlags().GetInt("tab-width"); tw >= 0 {
		opts.TabWidth = tw
	}
	if enc, _ := cmd.Root().PersistentFlags().GetString("encoding"); enc != "" {
		opts.Encoding = enc
	}
	if opts.MaxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return usageError(fmt.Errorf("failed to get max-diagnostics flag: %w", err))
	}

	// Выполняем токенизацию
	result, err := driver.Tokenize(filePath, opts)
	if err != nil {
		return usageError(fmt.Errorf("tokenization failed: %w", err))
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.Len() > 0 {
		color, err := useColor(cmd, os.Stderr)
		if err != nil {
			return usageError(err)
		}
		reports := []diagfmt.FileReport{{Path: filePath, File: result.File, Items: result.Bag.Items()}}
		diagfmt.Pretty(cmd.ErrOrStderr(), reports, diagfmt.PrettyOpts{Color: color, Context: 2, TabWidth: opts.TabWidth})
	}

	// Выводим токены в выбранном формате
	out := cmd.OutOrStdout()
	if format == "json" {
		err = diagfmt.FormatTokensJSON(out, result.Stream)
	} else {
		err = diagfmt.FormatTokensPretty(out, result.Stream)
	}
	if err != nil {
		return usageError(err)
	}
	if result.Bag.HasErrors() {
		return silentExit(exitFindings)
	}
	return nil
}
