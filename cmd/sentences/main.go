// Command sentences is a minimal demonstration front-end over the
// sentences package. It reads one file, runs the processor, and prints
// one line per detected sentence. File globbing, progress bars, and
// text/JSON/markdown output formatting are out of scope — this exists
// only to exercise the library from a real binary.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deltastack/sentences"
)

var (
	language string
	mode     string
)

var rootCmd = &cobra.Command{
	Use:          "sentences [file]",
	Short:        "split a text file into sentences",
	SilenceUsage: true,
	Args:         cobra.ExactArgs(1),
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&language, "language", "l", "en", "built-in language code")
	rootCmd.Flags().StringVarP(&mode, "mode", "m", "adaptive", "execution mode: adaptive, sequential, parallel")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func run(cmd *cobra.Command, args []string) error {
	m, err := parseMode(mode)
	if err != nil {
		return err
	}

	proc, err := sentences.WithConfig(sentences.Config{Language: language, Mode: m})
	if err != nil {
		return err
	}

	out, err := proc.ProcessFile(context.Background(), args[0])
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	text := string(data)

	for i, line := range out.Sentences(text) {
		fmt.Printf("%d: %s\n", i+1, line)
	}
	return nil
}

func parseMode(s string) (sentences.Mode, error) {
	switch s {
	case "adaptive", "":
		return sentences.ModeAdaptive, nil
	case "sequential":
		return sentences.ModeSequential, nil
	case "parallel":
		return sentences.ModeParallel, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
