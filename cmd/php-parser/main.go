package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/wudi/php-parser/lexer"
	"github.com/wudi/php-parser/parser"
)

var errColor = color.New(color.FgRed, color.Bold)

func main() {
	app := &cli.Command{
		Name:  "php-parser",
		Usage: "Parse PHP source code and print the abstract syntax tree",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "json",
				Usage:   "Output format: json, ast",
			},
		},
		Commands: []*cli.Command{
			tokensCommand,
			checkCommand,
			replCommand,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			input, err := readInput(cmd.Args().First())
			if err != nil {
				return err
			}
			return parseAndPrint(input, cmd.String("format"))
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		errColor.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var tokensCommand = &cli.Command{
	Name:  "tokens",
	Usage: "Dump the token stream",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		input, err := readInput(cmd.Args().First())
		if err != nil {
			return err
		}
		tokens, lerr := lexer.Tokenize(input)
		if lerr != nil {
			return lerr
		}
		for i, tok := range tokens {
			if tok.Type == lexer.T_EOF {
				break
			}
			fmt.Printf("%3d: %-28s %s at %d:%d\n",
				i+1, tok.Type, tok.Value.Debug(), tok.Position.Line, tok.Position.Column)
		}
		return nil
	},
}

var checkCommand = &cli.Command{
	Name:  "check",
	Usage: "Check syntax only, print a confirmation on success",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		input, err := readInput(cmd.Args().First())
		if err != nil {
			return err
		}
		if _, err := parser.ParseSource(input); err != nil {
			return err
		}
		color.Green("No syntax errors detected")
		return nil
	},
}

var replCommand = &cli.Command{
	Name:  "repl",
	Usage: "Interactive parse loop",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		rl, err := readline.New("php> ")
		if err != nil {
			return err
		}
		defer rl.Close()

		for {
			line, err := rl.Readline()
			if err != nil { // io.EOF 或 Ctrl-C
				return nil
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if line == "exit" || line == "quit" {
				return nil
			}

			source := line
			if !strings.HasPrefix(source, "<?php") {
				source = "<?php " + source
			}
			program, err := parser.ParseSource([]byte(source))
			if err != nil {
				errColor.Println(err)
				continue
			}
			fmt.Println(program.String())
		}
	},
}

// readInput 从文件或标准输入读取源码
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func parseAndPrint(input []byte, format string) error {
	program, err := parser.ParseSource(input)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(program, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case "ast":
		fmt.Println(program.String())
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
	return nil
}
