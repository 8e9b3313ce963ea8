package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zephyrtronium/notation/workspace"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Define and evaluate interactively.",
	Long: `Read definitions and expressions line by line. A line with = is a
definition; any other line is evaluated. Lines starting with : are commands:

	:names                   list definitions
	:rm name                 remove a definition
	:set name value          set a parameter
	:sample name from to n   evaluate a function at n points
	:q                       quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		verb, _ := cmd.Flags().GetString("fmt")
		ws, err := newWorkspace()
		if err != nil {
			return err
		}
		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			sc := bufio.NewScanner(os.Stdin)
			next := func() (string, error) {
				if sc.Scan() {
					return sc.Text(), nil
				}
				if err := sc.Err(); err != nil {
					return "", err
				}
				return "", io.EOF
			}
			s := session{ws: ws, w: cmd.OutOrStdout(), verb: verb}
			return s.loop(next)
		}
		state, err := term.MakeRaw(fd)
		if err != nil {
			return err
		}
		defer term.Restore(fd, state)
		screen := struct {
			io.Reader
			io.Writer
		}{os.Stdin, os.Stdout}
		t := term.NewTerminal(screen, "> ")
		s := session{ws: ws, w: t, verb: verb}
		return s.loop(t.ReadLine)
	},
}

func init() {
	replCmd.Flags().String("fmt", "%g", "result formatting string")
	rootCmd.AddCommand(replCmd)
}

// session is an interactive session over a workspace.
type session struct {
	ws   *workspace.Workspace
	w    io.Writer
	verb string
}

// errQuit ends a session.
var errQuit = errors.New("quit")

func (s *session) loop(next func() (string, error)) error {
	for {
		line, err := next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		switch err := s.handle(strings.TrimSpace(line)); err {
		case nil:
		case errQuit:
			return nil
		default:
			printError(s.w, s.ws.Symbols(), line, err)
		}
	}
}

// handle runs one line of input.
func (s *session) handle(line string) error {
	switch {
	case line == "":
		return nil
	case strings.HasPrefix(line, ":"):
		return s.command(strings.Fields(line[1:]))
	case strings.ContainsRune(line, '='):
		e, err := s.ws.Define(line)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.w, e)
		if len(e.Created) > 0 {
			fmt.Fprintf(s.w, "created %s\n", strings.Join(e.Created, ", "))
		}
		for _, h := range e.Hints {
			fmt.Fprintf(s.w, "hint: %s\n", h)
		}
		return nil
	default:
		v, err := s.ws.Evaluate(line)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.w, s.verb+"\n", v)
		return nil
	}
}

func (s *session) command(f []string) error {
	if len(f) == 0 {
		return fmt.Errorf("missing command")
	}
	log.Debugf("command %q", f)
	switch f[0] {
	case "q", "quit":
		return errQuit
	case "names":
		for _, nm := range s.ws.Names() {
			e, _ := s.ws.Lookup(nm)
			fmt.Fprintf(s.w, "%v\t%v\n", e, e.Kind)
		}
		return nil
	case "rm":
		if len(f) != 2 {
			return fmt.Errorf("usage: :rm name")
		}
		return s.ws.Remove(f[1])
	case "set":
		if len(f) != 3 {
			return fmt.Errorf("usage: :set name value")
		}
		v, err := s.ws.Evaluate(f[2])
		if err != nil {
			return err
		}
		return s.ws.Set(f[1], v)
	case "sample":
		if len(f) != 5 {
			return fmt.Errorf("usage: :sample name from to n")
		}
		from, err := s.ws.Evaluate(f[2])
		if err != nil {
			return err
		}
		to, err := s.ws.Evaluate(f[3])
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(f[4])
		if err != nil {
			return err
		}
		pts, err := s.ws.Sample(f[1], from, to, n)
		if err != nil {
			return err
		}
		for _, p := range pts {
			s.point(p)
		}
		return nil
	default:
		return fmt.Errorf("unknown command :%s", f[0])
	}
}

func (s *session) point(p workspace.Point) {
	if p.Err != nil {
		fmt.Fprintf(s.w, s.verb+"\tundefined (%v)\n", p.X, p.Err)
		return
	}
	fmt.Fprintf(s.w, s.verb+"\t"+s.verb+"\n", p.X, p.Y)
}
