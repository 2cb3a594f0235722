package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/symdiff"
)

// NewEvalCmd creates the "eval" subcommand.
func NewEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval [expression...]",
		Short: "Evaluate expressions",
		Long: "Evaluate each expression given as an argument or read from --in. " +
			"Variables are bound with --given and --vars.",
		RunE: runEval,
	}

	addSourceFlags(cmd)
	addDomainFlag(cmd)
	addBindingFlags(cmd)
	cmd.Flags().Bool("echo", false, "Print each expression before its result")
	cmd.Flags().String("fmt", "%g", "Result formatting verb")

	return cmd
}

func runEval(cmd *cobra.Command, args []string) error {
	switch domainName(cmd) {
	case "real":
		return evalAll(cmd, args, realDomain)
	case "complex":
		return evalAll(cmd, args, complexDomain)
	default:
		return badDomain(cmd)
	}
}

func evalAll[T symdiff.Scalar[T]](cmd *cobra.Command, args []string, d domain[T]) error {
	log := newLogger(cmd)
	exprs, vars, err := load(cmd, args, d, log)
	if err != nil {
		return err
	}
	verb, _ := cmd.Flags().GetString("fmt")
	echo, _ := cmd.Flags().GetBool("echo")
	out := cmd.OutOrStdout()

	ctx := symdiff.NewContext(symdiff.SetVars(vars))
	failed := 0
	for _, e := range exprs {
		if echo {
			fmt.Fprintf(out, "%v : ", e)
		}
		r := ctx.Eval(e)
		if err := ctx.Err(); err != nil {
			// Failures take the place of the result so that output lines
			// still correspond to input expressions.
			fmt.Fprintln(out, err)
			log.Debug("evaluation failed", "expr", e.String(), "err", err)
			failed++
			continue
		}
		fmt.Fprintf(out, verb+"\n", r)
	}
	if failed > 0 {
		return exitError(exitEval, "%d of %d expressions failed to evaluate", failed, len(exprs))
	}
	return nil
}
