package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/symdiff"
)

// NewDiffCmd creates the "diff" subcommand.
func NewDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff --by <var> [expression...]",
		Short: "Differentiate expressions",
		Long: "Print the derivative of each expression with respect to --by. " +
			"If any variables are bound, also evaluate the derivative.",
		RunE: runDiff,
	}

	addSourceFlags(cmd)
	addDomainFlag(cmd)
	addBindingFlags(cmd)
	cmd.Flags().String("by", "", "Variable to differentiate with respect to")
	cmd.Flags().String("fmt", "%g", "Result formatting verb")

	return cmd
}

func runDiff(cmd *cobra.Command, args []string) error {
	switch domainName(cmd) {
	case "real":
		return diffAll(cmd, args, realDomain)
	case "complex":
		return diffAll(cmd, args, complexDomain)
	default:
		return badDomain(cmd)
	}
}

func diffAll[T symdiff.Scalar[T]](cmd *cobra.Command, args []string, d domain[T]) error {
	by, _ := cmd.Flags().GetString("by")
	if by == "" {
		return exitError(exitFlag, "--by is required")
	}
	log := newLogger(cmd)
	exprs, vars, err := load(cmd, args, d, log)
	if err != nil {
		return err
	}
	verb, _ := cmd.Flags().GetString("fmt")
	out := cmd.OutOrStdout()

	ctx := symdiff.NewContext(symdiff.SetVars(vars))
	failed := 0
	for _, e := range exprs {
		de := e.Diff(by)
		log.Debug("differentiated", "expr", e.String(), "by", by)
		if len(vars) == 0 {
			fmt.Fprintln(out, de)
			continue
		}
		r := ctx.Eval(de)
		if err := ctx.Err(); err != nil {
			fmt.Fprintf(out, "%v = %v\n", de, err)
			failed++
			continue
		}
		fmt.Fprintf(out, "%v = "+verb+"\n", de, r)
	}
	if failed > 0 {
		return exitError(exitEval, "%d of %d derivatives failed to evaluate", failed, len(exprs))
	}
	return nil
}
