package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/notation"
)

var bindCmd = &cobra.Command{
	Use:   "bind [flags] definition...",
	Short: "Classify definitions and list their dependencies.",
	Long: `Bind each definition in turn without creating anything. Names defined by
earlier arguments are live for later ones, and so are the parameters they
would create.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		return runBind(cmd.OutOrStdout(), notation.NewBinder(symbols()), args, asJSON)
	},
}

func init() {
	bindCmd.Flags().Bool("json", false, "print one JSON object per definition")
	rootCmd.AddCommand(bindCmd)
}

// bindResult is the JSON form of a bound definition.
type bindResult struct {
	Input        string     `json:"input"`
	Source       string     `json:"source,omitempty"`
	Kind         string     `json:"kind,omitempty"`
	Name         string     `json:"name,omitempty"`
	Params       []string   `json:"params,omitempty"`
	RHS          string     `json:"rhs,omitempty"`
	Dependencies []string   `json:"dependencies"`
	Missing      []string   `json:"missing"`
	Hints        []string   `json:"hints,omitempty"`
	Error        *bindError `json:"error,omitempty"`
}

type bindError struct {
	Pos         int      `json:"pos,omitempty"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func runBind(w io.Writer, b *notation.Binder, inputs []string, asJSON bool) error {
	live := make(notation.Live)
	enc := json.NewEncoder(w)
	failed := 0
	for _, in := range inputs {
		ex, err := b.Plan(in, live)
		if err != nil {
			failed++
			if asJSON {
				if err := enc.Encode(bindResult{Input: in, Error: jsonError(err)}); err != nil {
					return err
				}
				continue
			}
			printError(w, b.Symbols, in, err)
			continue
		}
		for _, m := range ex.Missing {
			live[m] = notation.KindParameter
		}
		live[ex.Name()] = ex.Kind()
		if asJSON {
			r := bindResult{
				Input:        in,
				Source:       ex.Source,
				Kind:         ex.Kind().String(),
				Name:         ex.Name(),
				Params:       ex.Params(),
				RHS:          ex.RHS,
				Dependencies: nonNil(ex.Dependencies),
				Missing:      nonNil(ex.Missing),
				Hints:        ex.Hints,
			}
			if err := enc.Encode(r); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintf(w, "%s = %s\n", ex.LHS, ex.RHS)
		fmt.Fprintf(w, "\tkind: %v\n", ex.Kind())
		if len(ex.Dependencies) > 0 {
			fmt.Fprintf(w, "\tdepends on: %s\n", strings.Join(ex.Dependencies, ", "))
		}
		if len(ex.Missing) > 0 {
			fmt.Fprintf(w, "\twould create: %s\n", strings.Join(ex.Missing, ", "))
		}
		for _, h := range ex.Hints {
			fmt.Fprintf(w, "\thint: %s\n", h)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d definitions failed", failed, len(inputs))
	}
	return nil
}

func jsonError(err error) *bindError {
	r := bindError{Message: err.Error()}
	if ie, ok := err.(notation.InputError); ok {
		r.Pos = ie.Pos()
	}
	switch err := err.(type) {
	case *notation.NameCollisionError:
		r.Suggestions = err.Suggestions
	case *notation.MultiLetterNameError:
		r.Suggestions = []string{err.Suggestion}
	}
	return &r
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
