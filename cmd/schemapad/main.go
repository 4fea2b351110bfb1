package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	schemapad "github.com/reoring/schemapad"
	"github.com/reoring/schemapad/validate"
)

// CLI defines the command-line interface.
var CLI struct {
	Check CheckCmd `cmd:"" help:"Validate a JSON document against a JSON Schema and print violations with source positions."`
	Fmt   FmtCmd   `cmd:"" help:"Reformat a JSON document with two-space indentation, key order preserved."`
}

type CheckCmd struct {
	Schema string `help:"Path to the schema file (JSON or YAML)." short:"s" required:"" type:"path"`
	Strict bool   `help:"Treat duplicate-key warnings as errors."`
	Doc    string `arg:"" help:"Path to the JSON document." type:"path"`
}

func (c *CheckCmd) Run() error {
	docText, err := os.ReadFile(c.Doc)
	if err != nil {
		return err
	}
	schemaText, err := os.ReadFile(c.Schema)
	if err != nil {
		return err
	}
	if _, iss, err := schemapad.Parse(string(docText)); err != nil {
		return schemapad.AppendIssues(nil, schemapad.Issue{
			Code:    schemapad.CodeParseError,
			Message: fmt.Sprintf("%s: %v", c.Doc, err),
		})
	} else if len(iss) > 0 {
		if c.Strict {
			return iss
		}
		for _, i := range iss {
			fmt.Fprintf(os.Stderr, "%s: warning: %s at %s: %s\n", c.Doc, i.Code, i.Path, i.Message)
		}
	}
	markers := validate.NewEngine().Run(string(docText), string(schemaText))
	for _, m := range markers {
		fmt.Printf("%s:%d:%d: %s: %s\n", c.Doc, m.Range.StartLine, m.Range.StartColumn, m.Keyword, m.Message)
	}
	if len(markers) > 0 {
		return fmt.Errorf("%d violation(s)", len(markers))
	}
	return nil
}

type FmtCmd struct {
	Doc string `arg:"" help:"Path to the JSON document." type:"path"`
}

func (c *FmtCmd) Run() error {
	docText, err := os.ReadFile(c.Doc)
	if err != nil {
		return err
	}
	v, _, err := schemapad.Parse(string(docText))
	if err != nil {
		return schemapad.AppendIssues(nil, schemapad.Issue{
			Code:    schemapad.CodeParseError,
			Message: fmt.Sprintf("%s: %v", c.Doc, err),
		})
	}
	fmt.Println(schemapad.Serialize(v))
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("schemapad"),
		kong.Description("Schema-validating JSON document tooling"),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	if iss, ok := schemapad.AsIssues(err); ok {
		for _, i := range iss {
			fmt.Fprintf(os.Stderr, "schemapad: %s at %s: %s\n", i.Code, i.Path, i.Message)
		}
		os.Exit(1)
	}
	ctx.FatalIfErrorf(err)
}
