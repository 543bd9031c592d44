package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"codesniff/internal/config"
	"codesniff/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "codesniff",
	Short: "Token-stream code sniffer and fixer",
	Long: `codesniff tokenizes PHP-like sources, runs sniffs over the token stream,
reports violations and applies their fixes until the text stops changing`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return usageError(err)
		}
		traceCleanup = cleanup
		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		closeTracing()
	},
}

func init() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Current()

	// Добавляем команды
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(sniffsCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 0, "maximum number of diagnostics per file (0=unlimited)")
	flags.String("config", "", "path to "+config.FileName+" (default: search upwards from the target)")
	flags.Int("tab-width", -1, "tab width for columns (default: config, else no expansion)")
	flags.String("encoding", "", "source encoding (default: config or utf-8)")
	addTraceFlags(rootCmd)
	addProfileFlags(rootCmd)
}

// main runs the root command and maps the outcome to an exit code
// (see exitError).
func main() {
	err := rootCmd.Execute()
	closeTracing()
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	if err == nil {
		return exitClean
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(os.Stderr, "codesniff: %v\n", ee.err)
		}
		return ee.code
	}
	// ошибки cobra: флаги, аргументы, неизвестная команда
	fmt.Fprintf(os.Stderr, "codesniff: %v\n", err)
	return exitUsage
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
