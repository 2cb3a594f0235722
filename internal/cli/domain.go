package cli

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/symdiff"
)

// domain holds the conversions that differ between numeric domains.
type domain[T symdiff.Scalar[T]] struct {
	name string
	// given converts the value of a --given flag.
	given func(s string) (T, error)
	// file converts a value from a --vars file.
	file func(v varValue) (T, error)
}

var realDomain = domain[symdiff.Real]{
	name: "real",
	given: func(s string) (symdiff.Real, error) {
		// Plain numbers first, since the grammar has no negative literals.
		if x, _, err := big.ParseFloat(s, 10, symdiff.RealPrec, big.ToNearestEven); err == nil {
			return symdiff.RealFromBig(x), nil
		}
		return symdiff.EvalString[symdiff.Real](s)
	},
	file: func(v varValue) (symdiff.Real, error) {
		if v.Im != 0 {
			return symdiff.Real{}, fmt.Errorf("complex value (%g%+gi) for a real variable", v.Re, v.Im)
		}
		return symdiff.NewReal(v.Re), nil
	},
}

var complexDomain = domain[symdiff.Complex]{
	name: "complex",
	given: func(s string) (symdiff.Complex, error) {
		// re,im with each part a number or an expression.
		re, im, ok := strings.Cut(s, ",")
		x, err := complexPart(re)
		if err != nil || !ok {
			return x, err
		}
		y, err := complexPart(im)
		if err != nil {
			return 0, err
		}
		// x + y*i
		return symdiff.NewComplex(x.Real()-y.Imag(), x.Imag()+y.Real()), nil
	},
	file: func(v varValue) (symdiff.Complex, error) {
		return symdiff.NewComplex(v.Re, v.Im), nil
	},
}

// complexPart converts one part of a complex --given value.
func complexPart(s string) (symdiff.Complex, error) {
	s = strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return symdiff.NewComplex(f, 0), nil
	}
	return symdiff.EvalString[symdiff.Complex](s)
}

func addDomainFlag(cmd *cobra.Command) {
	cmd.Flags().String("domain", "real", "Numeric domain: real | complex")
}

func badDomain(cmd *cobra.Command) error {
	d, _ := cmd.Flags().GetString("domain")
	return exitError(exitFlag, "unknown domain %q (want real or complex)", d)
}

func domainName(cmd *cobra.Command) string {
	d, _ := cmd.Flags().GetString("domain")
	return d
}
