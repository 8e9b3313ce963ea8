package main

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/notation"
	"github.com/zephyrtronium/notation/eval"
	"github.com/zephyrtronium/notation/workspace"
)

var evalCmd = &cobra.Command{
	Use:   "eval [flags] definition...",
	Short: "Define and evaluate parameters and functions.",
	Long: `Define each definition in one workspace, then print the value of every
parameter and the value of every function at each --at point. Definitions
are read from arguments, or one per line from --in or standard input.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inname, _ := cmd.Flags().GetString("in")
		verb, _ := cmd.Flags().GetString("fmt")
		given, _ := cmd.Flags().GetStringArray("given")
		at, _ := cmd.Flags().GetStringArray("at")
		echo, _ := cmd.Flags().GetBool("echo")
		ws, err := newWorkspace()
		if err != nil {
			return err
		}
		inputs, err := readInputs(inname, len(args) == 0)
		if err != nil {
			return err
		}
		inputs = append(inputs, args...)
		r := evalRun{
			ws:    ws,
			w:     cmd.OutOrStdout(),
			verb:  verb,
			echo:  echo,
			prec:  ws.Precision(),
			given: given,
			at:    at,
		}
		return r.run(inputs)
	},
}

func init() {
	f := evalCmd.Flags()
	f.String("in", "", "input file, one definition per line (default stdin if no args given)")
	f.String("fmt", "%g", "result formatting string")
	f.StringArray("given", nil, "name=value parameter setting (any number of times)")
	f.StringArray("at", nil, "comma-separated arguments at which to evaluate functions (any number of times)")
	f.Bool("echo", false, "print each definition with explicit multiplication")
	rootCmd.AddCommand(evalCmd)
}

// evalRun is one run of the eval command.
type evalRun struct {
	ws    *workspace.Workspace
	w     io.Writer
	verb  string
	echo  bool
	prec  uint
	given []string
	at    []string
}

func (r *evalRun) run(inputs []string) error {
	failed := 0
	for _, in := range inputs {
		e, err := r.ws.Define(in)
		if err != nil {
			failed++
			printError(r.w, r.ws.Symbols(), in, err)
			continue
		}
		if r.echo {
			fmt.Fprintf(r.w, "%s : %v\n", e.Source, e)
		}
		for _, h := range e.Hints {
			fmt.Fprintf(r.w, "hint: %s\n", h)
		}
	}
	for _, g := range r.given {
		nm, val, err := r.setting(g)
		if err != nil {
			return err
		}
		if err := r.ws.Set(nm, val); err != nil {
			return fmt.Errorf("setting %s: %w", nm, err)
		}
	}
	points := make([][]*big.Float, 0, len(r.at))
	for _, a := range r.at {
		p, err := r.point(a)
		if err != nil {
			return err
		}
		points = append(points, p)
	}
	verb := r.verb + "\n"
	for _, nm := range r.ws.Names() {
		e, _ := r.ws.Lookup(nm)
		switch e.Kind {
		case notation.KindParameter, notation.KindPlot:
			if e.Kind == notation.KindPlot && len(points) > 0 {
				r.calls(e, points, verb)
				continue
			}
			v, err := r.ws.Value(nm)
			if err != nil {
				failed++
				fmt.Fprintf(r.w, "%s: %v\n", nm, err)
				continue
			}
			fmt.Fprintf(r.w, "%s = "+verb, nm, v)
		case notation.KindFunction:
			failed += r.calls(e, points, verb)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d errors", failed)
	}
	return nil
}

// calls prints the values of a function at each point with the right number
// of arguments, returning the number of errors.
func (r *evalRun) calls(e *workspace.Entry, points [][]*big.Float, verb string) int {
	arity := len(e.Params)
	if e.Kind == notation.KindPlot {
		arity = 1
	}
	failed := 0
	for _, p := range points {
		if len(p) != arity {
			continue
		}
		args := make([]string, len(p))
		for i, x := range p {
			args[i] = x.Text('g', -1)
		}
		call := e.Name + "(" + strings.Join(args, ", ") + ")"
		v, err := r.ws.Call(e.Name, p...)
		if err != nil {
			failed++
			fmt.Fprintf(r.w, "%s: %v\n", call, err)
			continue
		}
		fmt.Fprintf(r.w, "%s = "+verb, call, v)
	}
	log.Debugf("evaluated %s at %d points", e.Name, len(points))
	return failed
}

// setting parses a name=value parameter setting.
func (r *evalRun) setting(s string) (string, *big.Float, error) {
	d := strings.SplitN(s, "=", 2)
	if len(d) != 2 {
		return "", nil, fmt.Errorf(`parameter settings must be "name=value", not %q`, s)
	}
	nm := strings.TrimSpace(r.ws.Symbols().Normalize(d[0]))
	v, err := r.number(d[1])
	if err != nil {
		return "", nil, fmt.Errorf("setting %s: %w", nm, err)
	}
	return nm, v, nil
}

// point parses a comma-separated list of arguments.
func (r *evalRun) point(s string) ([]*big.Float, error) {
	var p []*big.Float
	for _, a := range strings.Split(s, ",") {
		v, err := r.number(a)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", a, err)
		}
		p = append(p, v)
	}
	return p, nil
}

// number evaluates a constant expression like 2π.
func (r *evalRun) number(s string) (*big.Float, error) {
	t := r.ws.Symbols()
	return eval.EvalString(t.InsertImplicitMultiplication(t.Normalize(s)), eval.Prec(r.prec))
}

// readInputs reads definitions from a file, one per line. The name - means
// standard input, which is also used when std is true and no file is named.
func readInputs(inname string, std bool) ([]string, error) {
	var f *os.File
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		defer in.Close()
		f = in
	case inname == "-", std:
		f = os.Stdin
	}
	if f == nil {
		return nil, nil
	}
	var r []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			r = append(r, line)
		}
	}
	return r, sc.Err()
}
