package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pexkit/pex/langdef"
	"github.com/pexkit/pex/source"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <grammar-file>",
		Short: "Validate a grammar definition file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, s, e := loadGrammar(args[0])
			if e != nil {
				reportError(e, s)
				return e
			}

			names := g.RuleNames()
			fmt.Printf("%s: %d rules, root %s\n", args[0], len(names), color.CyanString(g.Root().Name()))
			for _, name := range names {
				fmt.Println("  " + name)
			}
			if g.Caseless() {
				fmt.Println("caseless comparison")
			}
			return nil
		},
	}
}

// loadGrammar reads and compiles a grammar file. The source is returned
// even when compilation fails, so the caller can show the offending line.
func loadGrammar(path string) (*langdef.Grammar, *source.Source, error) {
	s, e := source.FromFile(path)
	if e != nil {
		return nil, nil, fileError(e)
	}

	g, e := langdef.Parse(s)
	if e != nil {
		return nil, s, e
	}

	log.Debugf("grammar %s: %d rules", path, len(g.RuleNames()))
	return g, s, nil
}
