package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/symdiff"
)

// NewTokensCmd creates the "tokens" subcommand.
func NewTokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens [expression...]",
		Short: "Print the tokens of expressions",
		Long:  "Print one line per token with its column, kind, and text.",
		RunE:  runTokens,
	}

	cmd.Flags().String("in", "", "Input file, - for stdin (default stdin if no args given)")

	return cmd
}

func runTokens(cmd *cobra.Command, args []string) error {
	srcs, err := inputs(cmd, args)
	if err != nil {
		return err
	}
	log := newLogger(cmd)
	out := cmd.OutOrStdout()
	for _, src := range srcs {
		lex := symdiff.NewLexer(src.r)
		n := 0
		for {
			tok, err := lex.Next()
			if err != nil {
				return exitError(exitParse, "%s: %v", src.name, err)
			}
			n++
			fmt.Fprintf(out, "%d\t%v\t%q\n", tok.Pos, tok.Kind, tok.Text)
			if tok.Kind == symdiff.End {
				break
			}
		}
		log.Debug("scanned tokens", "source", src.name, "count", n)
	}
	return nil
}
