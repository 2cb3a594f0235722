package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/symdiff"
)

// NewFmtCmd creates the "fmt" subcommand.
func NewFmtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [expression...]",
		Short: "Print expressions in fully parenthesized form",
		RunE:  runFmt,
	}

	addSourceFlags(cmd)
	addDomainFlag(cmd)

	return cmd
}

func runFmt(cmd *cobra.Command, args []string) error {
	switch domainName(cmd) {
	case "real":
		return fmtAll[symdiff.Real](cmd, args)
	case "complex":
		return fmtAll[symdiff.Complex](cmd, args)
	default:
		return badDomain(cmd)
	}
}

func fmtAll[T symdiff.Scalar[T]](cmd *cobra.Command, args []string) error {
	srcs, err := inputs(cmd, args)
	if err != nil {
		return err
	}
	exprs, err := parseAll[T](cmd, srcs, newLogger(cmd))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, e := range exprs {
		fmt.Fprintln(out, e)
	}
	return nil
}
