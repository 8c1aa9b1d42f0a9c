// Command mvir parses IR source files and can print their structure or
// parse and reprint single commands interactively.
//
// Usage:
//
//	mvir parse   <file.mvir>   validate a program, report the first error
//	mvir inspect <file.mvir>   parse and print the program tree as JSON
//	mvir repl                  read commands one at a time from stdin
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	cli "github.com/urfave/cli/v2"

	"github.com/mvir-lang/mvir/diagnostic"
	"github.com/mvir-lang/mvir/parser"
	"github.com/mvir-lang/mvir/printer"
)

const version = "0.1.0"

func main() {
	app := &cli.App{
		Name:    "mvir",
		Usage:   "front-end parser for the IR",
		Version: version,
		Commands: []*cli.Command{
			parseCommand,
			inspectCommand,
			replCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var parseCommand = &cli.Command{
	Name:      "parse",
	Usage:     "validate a program, reporting the first syntax error",
	ArgsUsage: "<file.mvir>",
	Action: func(c *cli.Context) error {
		path := c.Args().First()
		if path == "" {
			return errors.New("mvir parse: missing <file.mvir>")
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "mvir parse: reading %s", path)
		}
		_, err = parser.ParseProgram(string(src))
		if err != nil {
			return reportParseError(path, string(src), err)
		}
		fmt.Println("ok")
		return nil
	},
}

var inspectCommand = &cli.Command{
	Name:      "inspect",
	Usage:     "parse a program and print its structure as JSON",
	ArgsUsage: "<file.mvir>",
	Action: func(c *cli.Context) error {
		path := c.Args().First()
		if path == "" {
			return errors.New("mvir inspect: missing <file.mvir>")
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "mvir inspect: reading %s", path)
		}
		prog, err := parser.ParseProgram(string(src))
		if err != nil {
			return reportParseError(path, string(src), err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(prog)
	},
}

var replCommand = &cli.Command{
	Name:  "repl",
	Usage: "read and parse one command at a time",
	Action: func(c *cli.Context) error {
		rl, err := readline.NewEx(&readline.Config{
			Prompt: "mvir> ",
			Stdin:  os.Stdin,
			Stdout: os.Stdout,
			Stderr: os.Stderr,
		})
		if err != nil {
			return err
		}
		defer rl.Close()

		for {
			line, err := rl.Readline()
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			if line == "" {
				continue
			}
			cmd, err := parser.ParseCommand(line)
			if err != nil {
				fmt.Fprintln(os.Stderr, reportParseError("<repl>", line, err))
				continue
			}
			fmt.Println(printer.Cmd(cmd))
		}
	},
}

func reportParseError(path, src string, err error) error {
	var perr *parser.ParseError
	if errors.As(err, &perr) {
		col := diagnostic.NewColorizer(os.Stderr.Fd())
		fmt.Fprintf(os.Stderr, "%s: %s", path, col.Render(src, perr.Start, perr.End, perr.Message))
		return cli.Exit("", 1)
	}
	return err
}
