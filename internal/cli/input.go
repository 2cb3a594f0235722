package cli

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/symdiff"
)

// source is a named input containing any number of expressions.
type source struct {
	name string
	r    io.RuneScanner
}

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("in", "", "Input file, - for stdin (default stdin if no args given)")
	cmd.Flags().BoolP("lines", "n", false, "Parse separate input lines as separate expressions")
}

// inputs opens the --in file, if any, followed by each argument.
func inputs(cmd *cobra.Command, args []string) ([]source, error) {
	inname, _ := cmd.Flags().GetString("in")
	var srcs []source
	switch {
	case inname == "-", inname == "" && len(args) == 0:
		srcs = append(srcs, source{name: "<stdin>", r: bufio.NewReader(cmd.InOrStdin())})
	case inname != "":
		data, err := os.ReadFile(inname)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, exitError(exitFile, "file not found: %s", inname)
			}
			return nil, exitError(exitFile, "reading %s: %v", inname, err)
		}
		srcs = append(srcs, source{name: inname, r: strings.NewReader(string(data))})
	}
	for i, arg := range args {
		srcs = append(srcs, source{name: "arg " + strconv.Itoa(i+1), r: strings.NewReader(arg)})
	}
	return srcs, nil
}

// parseAll parses every expression in srcs.
func parseAll[T symdiff.Scalar[T]](cmd *cobra.Command, srcs []source, log *slog.Logger) ([]symdiff.Expr[T], error) {
	var opts []symdiff.ParseOption
	lines, _ := cmd.Flags().GetBool("lines")
	if lines {
		opts = append(opts, symdiff.StopOn('\n'))
	}
	var exprs []symdiff.Expr[T]
	for _, src := range srcs {
		for {
			// First check whether we're done with the input.
			done, err := skipSpace(src.r)
			if err != nil {
				return nil, exitError(exitFile, "reading %s: %v", src.name, err)
			}
			if done {
				break
			}
			e, err := symdiff.Parse[T](src.r, opts...)
			if err != nil {
				return nil, exitError(exitParse, "%s: %v", src.name, err)
			}
			log.Debug("parsed expression", "source", src.name, "expr", e.String())
			exprs = append(exprs, e)
		}
	}
	return exprs, nil
}

// skipSpace discards leading whitespace, including blank lines, and reports
// whether r is exhausted.
func skipSpace(r io.RuneScanner) (bool, error) {
	for {
		c, _, err := r.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return true, nil
			}
			return false, err
		}
		if !unicode.IsSpace(c) {
			return false, r.UnreadRune()
		}
	}
}

// load reads the bindings and expressions for a command.
func load[T symdiff.Scalar[T]](cmd *cobra.Command, args []string, d domain[T], log *slog.Logger) ([]symdiff.Expr[T], map[string]T, error) {
	vars, err := bindings(cmd, d, log)
	if err != nil {
		return nil, nil, err
	}
	srcs, err := inputs(cmd, args)
	if err != nil {
		return nil, nil, err
	}
	exprs, err := parseAll[T](cmd, srcs, log)
	if err != nil {
		return nil, nil, err
	}
	return exprs, vars, nil
}
