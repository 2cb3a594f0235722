package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// newTestRoot creates a fresh cobra root command wired to all subcommands.
// Each test gets an isolated command tree to avoid shared state.
func newTestRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "symdiff",
		SilenceUsage: true,
	}
	root.PersistentFlags().Bool("verbose", false, "Enable verbose/debug logging")
	root.AddCommand(NewEvalCmd())
	root.AddCommand(NewDiffCmd())
	root.AddCommand(NewFmtCmd())
	root.AddCommand(NewTokensCmd())
	return root
}

// executeCommand runs a cobra command with the given args and captures stdout/stderr.
func executeCommand(root *cobra.Command, args ...string) (stdout, stderr string, err error) {
	var outBuf, errBuf bytes.Buffer
	root.SetOut(&outBuf)
	root.SetErr(&errBuf)
	root.SetArgs(args)
	err = root.Execute()
	return outBuf.String(), errBuf.String(), err
}

// writeTestFile creates a temporary file with the given content and returns its path.
func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// exitCode extracts the exit code carried by err, or -1 if it has none.
func exitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return -1
}

func TestEval_Args(t *testing.T) {
	root := newTestRoot()
	stdout, _, err := executeCommand(root, "eval", "2 + 3 * 4", "2 ^ 3 ^ 2")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if stdout != "14\n512\n" {
		t.Errorf("unexpected output: %q", stdout)
	}
}

func TestEval_Given(t *testing.T) {
	root := newTestRoot()
	stdout, _, err := executeCommand(root, "eval", "--given", "x=2", "--given", "y = 3 * 2", "x * y")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if stdout != "12\n" {
		t.Errorf("unexpected output: %q", stdout)
	}
}

func TestEval_Echo(t *testing.T) {
	root := newTestRoot()
	stdout, _, err := executeCommand(root, "eval", "--echo", "--given", "x=3", "x*x+1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if stdout != "((x * x) + 1) : 10\n" {
		t.Errorf("unexpected output: %q", stdout)
	}
}

func TestEval_Format(t *testing.T) {
	root := newTestRoot()
	stdout, _, err := executeCommand(root, "eval", "--fmt", "%.3f", "1/8")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if stdout != "0.125\n" {
		t.Errorf("unexpected output: %q", stdout)
	}
}

func TestEval_Complex(t *testing.T) {
	root := newTestRoot()
	stdout, _, err := executeCommand(root, "eval", "--domain", "complex", "--given", "x=0,1", "x*x", "ln(0-1)/x")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 results, got: %q", stdout)
	}
	if lines[0] != "(-1+0i)" {
		t.Errorf("x*x gave %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "(3.14159") {
		t.Errorf("ln(-1)/i gave %q", lines[1])
	}
}

func TestEval_GivenNegative(t *testing.T) {
	root := newTestRoot()
	stdout, _, err := executeCommand(root, "eval", "--given", "x=-2", "--given", "y=-1.5e-1", "x", "x*x", "y")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if stdout != "-2\n4\n-0.15\n" {
		t.Errorf("unexpected output: %q", stdout)
	}
}

func TestEval_GivenNegativeComplex(t *testing.T) {
	root := newTestRoot()
	stdout, _, err := executeCommand(root, "eval", "--domain", "complex",
		"--given", "x=1,-1", "--given", "z=-0.5, -2", "x*x", "z", "x")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if stdout != "(0-2i)\n(-0.5-2i)\n(1-1i)\n" {
		t.Errorf("unexpected output: %q", stdout)
	}
}

func TestEval_NaN(t *testing.T) {
	root := newTestRoot()
	stdout, _, err := executeCommand(root, "eval", "0/0", "(0-8)^0.5")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if stdout != "NaN\nNaN\n" {
		t.Errorf("unexpected output: %q", stdout)
	}
}

func TestEval_VarsFile(t *testing.T) {
	path := writeTestFile(t, "vars.yaml", "x: 3\ny: [4, 0]\n")
	root := newTestRoot()
	stdout, _, err := executeCommand(root, "eval", "--vars", path, "x * y")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if stdout != "12\n" {
		t.Errorf("unexpected output: %q", stdout)
	}
}

func TestEval_VarsFileComplex(t *testing.T) {
	path := writeTestFile(t, "vars.yaml", "z: {re: 0, im: 1}\n")
	root := newTestRoot()
	stdout, _, err := executeCommand(root, "eval", "--domain", "complex", "--vars", path, "z * z")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if stdout != "(-1+0i)\n" {
		t.Errorf("unexpected output: %q", stdout)
	}
}

func TestEval_GivenOverridesVars(t *testing.T) {
	path := writeTestFile(t, "vars.yaml", "x: 3\n")
	root := newTestRoot()
	stdout, _, err := executeCommand(root, "eval", "--vars", path, "--given", "x=5", "x")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if stdout != "5\n" {
		t.Errorf("unexpected output: %q", stdout)
	}
}

func TestEval_ComplexValueInRealDomain(t *testing.T) {
	path := writeTestFile(t, "vars.yaml", "z: [1, 2]\n")
	root := newTestRoot()
	_, _, err := executeCommand(root, "eval", "--vars", path, "z")
	if code := exitCode(err); code != exitFlag {
		t.Errorf("expected exit code %d, got %d (%v)", exitFlag, code, err)
	}
}

func TestEval_Lines(t *testing.T) {
	path := writeTestFile(t, "exprs.txt", "1 + 1\n\n2 *\n3\nsin(0)\n")
	root := newTestRoot()
	stdout, _, err := executeCommand(root, "eval", "-n", "--in", path)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if stdout != "2\n6\n0\n" {
		t.Errorf("unexpected output: %q", stdout)
	}
}

func TestEval_BlankLines(t *testing.T) {
	path := writeTestFile(t, "exprs.txt", "1\n   \n\t\n2\n  \n")
	root := newTestRoot()
	stdout, _, err := executeCommand(root, "eval", "-n", "--in", path)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if stdout != "1\n2\n" {
		t.Errorf("unexpected output: %q", stdout)
	}
}

func TestEval_Stdin(t *testing.T) {
	root := newTestRoot()
	root.SetIn(strings.NewReader("2 * 21\n"))
	stdout, _, err := executeCommand(root, "eval")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if stdout != "42\n" {
		t.Errorf("unexpected output: %q", stdout)
	}
}

func TestEval_ParseError(t *testing.T) {
	root := newTestRoot()
	_, _, err := executeCommand(root, "eval", "(x +")
	if code := exitCode(err); code != exitParse {
		t.Fatalf("expected exit code %d, got %d (%v)", exitParse, code, err)
	}
	if !strings.Contains(err.Error(), "arg 1") {
		t.Errorf("error should name the source, got: %q", err.Error())
	}
}

func TestEval_Undefined(t *testing.T) {
	root := newTestRoot()
	stdout, _, err := executeCommand(root, "eval", "x + 1", "2")
	if code := exitCode(err); code != exitEval {
		t.Fatalf("expected exit code %d, got %d (%v)", exitEval, code, err)
	}
	if !strings.Contains(stdout, "undefined variable") {
		t.Errorf("output should mention the undefined variable, got: %q", stdout)
	}
	if !strings.HasSuffix(stdout, "\n2\n") {
		t.Errorf("later expressions should still be evaluated, got: %q", stdout)
	}
}

func TestEval_DomainError(t *testing.T) {
	root := newTestRoot()
	stdout, _, err := executeCommand(root, "eval", "ln(0)")
	if code := exitCode(err); code != exitEval {
		t.Fatalf("expected exit code %d, got %d (%v)", exitEval, code, err)
	}
	if !strings.Contains(stdout, "domain") {
		t.Errorf("output should mention the domain, got: %q", stdout)
	}
}

func TestEval_BadGiven(t *testing.T) {
	for _, given := range []string{"x", "=2", "x=(", "x=y"} {
		root := newTestRoot()
		_, _, err := executeCommand(root, "eval", "--given", given, "1")
		if code := exitCode(err); code != exitFlag {
			t.Errorf("--given %q: expected exit code %d, got %d (%v)", given, exitFlag, code, err)
		}
	}
}

func TestEval_BadDomain(t *testing.T) {
	root := newTestRoot()
	_, _, err := executeCommand(root, "eval", "--domain", "quaternion", "1")
	if code := exitCode(err); code != exitFlag {
		t.Errorf("expected exit code %d, got %d (%v)", exitFlag, code, err)
	}
}

func TestEval_FileNotFound(t *testing.T) {
	root := newTestRoot()
	_, _, err := executeCommand(root, "eval", "--in", "/nonexistent/exprs.txt")
	if code := exitCode(err); code != exitFile {
		t.Errorf("expected exit code %d, got %d (%v)", exitFile, code, err)
	}
	root = newTestRoot()
	_, _, err = executeCommand(root, "eval", "--vars", "/nonexistent/vars.yaml", "1")
	if code := exitCode(err); code != exitFile {
		t.Errorf("expected exit code %d, got %d (%v)", exitFile, code, err)
	}
}

func TestEval_Verbose(t *testing.T) {
	root := newTestRoot()
	_, stderr, err := executeCommand(root, "--verbose", "eval", "--given", "x=1", "x")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !strings.Contains(stderr, "parsed expression") || !strings.Contains(stderr, "bound variable") {
		t.Errorf("expected debug logs, got: %q", stderr)
	}
	root = newTestRoot()
	_, stderr, err = executeCommand(root, "eval", "1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if stderr != "" {
		t.Errorf("expected no logs without --verbose, got: %q", stderr)
	}
}

func TestDiff(t *testing.T) {
	root := newTestRoot()
	stdout, _, err := executeCommand(root, "diff", "--by", "x", "x * y", "exp(x)")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if stdout != "((1 * y) + (x * 0))\n(exp(x) * 1)\n" {
		t.Errorf("unexpected output: %q", stdout)
	}
}

func TestDiff_Eval(t *testing.T) {
	root := newTestRoot()
	stdout, _, err := executeCommand(root, "diff", "--by", "x", "--given", "x=2", "--given", "y=3", "x * y")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if stdout != "((1 * y) + (x * 0)) = 3\n" {
		t.Errorf("unexpected output: %q", stdout)
	}
}

func TestDiff_NoBy(t *testing.T) {
	root := newTestRoot()
	_, _, err := executeCommand(root, "diff", "x")
	if code := exitCode(err); code != exitFlag {
		t.Errorf("expected exit code %d, got %d (%v)", exitFlag, code, err)
	}
}

func TestDiff_EvalError(t *testing.T) {
	root := newTestRoot()
	stdout, _, err := executeCommand(root, "diff", "--by", "x", "--given", "x=0", "x ^ x")
	if code := exitCode(err); code != exitEval {
		t.Fatalf("expected exit code %d, got %d (%v)", exitEval, code, err)
	}
	if !strings.HasPrefix(stdout, "((x ^ x) * ((ln(x) * 1) + ((1 * x) / x))) = ") {
		t.Errorf("unexpected output: %q", stdout)
	}
	if !strings.Contains(stdout, "domain") {
		t.Errorf("output should mention the domain, got: %q", stdout)
	}
}

func TestFmt(t *testing.T) {
	root := newTestRoot()
	stdout, _, err := executeCommand(root, "fmt", "1+2*3", "a^b^c")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if stdout != "(1 + (2 * 3))\n(a ^ (b ^ c))\n" {
		t.Errorf("unexpected output: %q", stdout)
	}
}

func TestFmt_Complex(t *testing.T) {
	root := newTestRoot()
	stdout, _, err := executeCommand(root, "fmt", "--domain", "complex", "2*x")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if stdout != "(2 * x)\n" {
		t.Errorf("unexpected output: %q", stdout)
	}
}

func TestTokens(t *testing.T) {
	root := newTestRoot()
	stdout, _, err := executeCommand(root, "tokens", "sin(x)")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	want := "1\tFunctionName\t\"sin(\"\n" +
		"5\tIdentifier\t\"x\"\n" +
		"6\tRParen\t\")\"\n" +
		"7\tEnd\t\"\"\n"
	if stdout != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", stdout, want)
	}
}

func TestTokens_LexError(t *testing.T) {
	root := newTestRoot()
	_, _, err := executeCommand(root, "tokens", "x $ y")
	if code := exitCode(err); code != exitParse {
		t.Errorf("expected exit code %d, got %d (%v)", exitParse, code, err)
	}
}

func TestSubcommandHelp(t *testing.T) {
	root := newTestRoot()
	stdout, _, err := executeCommand(root, "eval", "--help")
	if err != nil {
		t.Fatalf("eval --help should not error, got: %v", err)
	}
	if !strings.Contains(stdout, "Evaluate each expression") {
		t.Error("eval help should show description")
	}
	for _, flag := range []string{"--given", "--vars", "--domain", "--lines"} {
		if !strings.Contains(stdout, flag) {
			t.Errorf("eval help should show %s flag", flag)
		}
	}
}

func TestVarValueYAML(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want varValue
		err  bool
	}{
		{"scalar", "v: 1.5", varValue{1.5, 0}, false},
		{"int", "v: 2", varValue{2, 0}, false},
		{"mapping", "v: {re: 1, im: -2}", varValue{1, -2}, false},
		{"mapping-re", "v: {re: 4}", varValue{4, 0}, false},
		{"sequence", "v: [0.5, 0.25]", varValue{0.5, 0.25}, false},
		{"short-sequence", "v: [1]", varValue{}, true},
		{"string", "v: one", varValue{}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var m map[string]varValue
			err := yaml.Unmarshal([]byte(c.src), &m)
			if c.err {
				if err == nil {
					t.Errorf("expected error, got %+v", m["v"])
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got := m["v"]; got != c.want {
				t.Errorf("expected %+v, got %+v", c.want, got)
			}
		})
	}
}
