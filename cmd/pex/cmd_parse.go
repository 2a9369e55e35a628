package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/pexkit/pex/parser"
	"github.com/pexkit/pex/source"
	"github.com/pexkit/pex/tree"
)

// matchNode is the serializable shape of a match for json and yaml output.
type matchNode struct {
	Id       string      `json:"id" yaml:"id"`
	Content  string      `json:"content" yaml:"content"`
	Line     int         `json:"line" yaml:"line"`
	Col      int         `json:"col" yaml:"col"`
	Children []matchNode `json:"children,omitempty" yaml:"children,omitempty"`
}

func newParseCmd() *cobra.Command {
	var grammarPath, rootName, format string
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "parse -g <grammar-file> <input-file>",
		Short: "Parse an input file and print the match tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, gs, e := loadGrammar(grammarPath)
			if e != nil {
				reportError(e, gs)
				return e
			}

			root := g.Root()
			if rootName != "" {
				root = g.Rule(rootName)
				if root == nil {
					return noSuchRuleError(rootName, grammarPath)
				}
			}

			input, e := source.FromFile(args[0])
			if e != nil {
				return fileError(e)
			}

			pc := g.NewContext(string(input.Content()))
			if maxDepth > 0 {
				pc.SetRecursionLimit(maxDepth)
			}

			started := time.Now()
			ok := pc.Parse(root)
			log.Debugf("parsed %s in %s", input.Name(), time.Since(started))

			for _, r := range pc.Errors() {
				color.Yellow("%s", parser.ResumeError(input.Name(), r).Error())
			}

			if !ok {
				e = parser.FailureError(input.Name(), pc.Furthest())
				reportError(e, input)
				return e
			}
			if !pc.Ended() {
				e = parser.UnconsumedError(input.Name(), pc.Position())
				reportError(e, input)
				return e
			}

			return output(pc.Matches(), format)
		},
	}

	cmd.Flags().StringVarP(&grammarPath, "grammar", "g", "", "grammar definition file (required)")
	cmd.Flags().StringVarP(&rootName, "root", "r", "", "root rule, default is the first defined")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, or yaml")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "rule recursion limit, 0 for none")
	_ = cmd.MarkFlagRequired("grammar")

	return cmd
}

func output(ms []parser.Match[rune], format string) error {
	switch format {
	case "text":
		id := color.New(color.FgCyan).SprintFunc()
		return tree.Dump(os.Stdout, ms, func(m parser.Match[rune]) string {
			return fmt.Sprintf("%s: %q", id(m.Id()), string(m.Content()))
		})
	case "json":
		content, e := json.MarshalIndent(toNodes(ms), "", "  ")
		if e != nil {
			return e
		}
		fmt.Println(string(content))
		return nil
	case "yaml":
		content, e := yaml.Marshal(toNodes(ms))
		if e != nil {
			return e
		}
		fmt.Print(string(content))
		return nil
	}
	return unknownFormatError(format)
}

func toNodes(ms []parser.Match[rune]) []matchNode {
	res := make([]matchNode, len(ms))
	for i, m := range ms {
		res[i] = matchNode{
			Id:       fmt.Sprintf("%v", m.Id()),
			Content:  string(m.Content()),
			Line:     m.Begin().Line(),
			Col:      m.Begin().Col(),
			Children: toNodes(m.Children()),
		}
	}
	return res
}
