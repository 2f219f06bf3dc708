package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dhamidi/parsec/config"
	"github.com/dhamidi/parsec/format"
	"github.com/dhamidi/parsec/grammar"
	"github.com/dhamidi/parsec/parser"
	"github.com/spf13/cobra"
)

// errParseFailed signals a failed parse after its state has been printed.
var errParseFailed = errors.New("parse failed")

func newRunCmd() *cobra.Command {
	var grammarName string
	var outputFormat string
	var inputFile string
	var full bool

	cmd := &cobra.Command{
		Use:   "run [text]",
		Short: "Parse text with a grammar and print the final state",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Find(".")
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			input, err := readInput(cmd, args, inputFile)
			if err != nil {
				return err
			}

			name := grammarName
			if name == "" {
				name = cfg.Grammar
				if inputFile != "" {
					name = cfg.GrammarFor(inputFile)
				}
			}
			p, ok := grammar.Lookup(name)
			if !ok {
				return fmt.Errorf("unknown grammar %q (available: %s)", name, strings.Join(grammar.Names(), ", "))
			}
			if !cmd.Flags().Changed("full") {
				full = cfg.Full
			}
			if full {
				p = parser.Full(p)
			}

			var encoder format.Encoder
			switch outputFormat {
			case "json":
				encoder = format.NewJSONEncoder(cmd.OutOrStdout())
			case "text":
				encoder = format.NewTextEncoder(cmd.OutOrStdout())
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			log.Debugf("running grammar %q on %d bytes (full=%t)", name, len(input), full)
			st := p.Run(input)
			if err := encoder.Encode(st); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if st.IsError() {
				log.Infof("grammar %q failed at index %d", name, st.Index)
				return errParseFailed
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&grammarName, "grammar", "g", "", "grammar to run (see 'parsec grammars')")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, text)")
	cmd.Flags().StringVar(&inputFile, "file", "", "read input from this file ('-' for stdin)")
	cmd.Flags().BoolVar(&full, "full", true, "require the grammar to consume the whole input")

	return cmd
}

func readInput(cmd *cobra.Command, args []string, inputFile string) (string, error) {
	switch {
	case len(args) == 1 && inputFile != "":
		return "", fmt.Errorf("give either text or --file, not both")
	case len(args) == 1:
		return args[0], nil
	case inputFile == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	case inputFile != "":
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return "", fmt.Errorf("read input file: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	default:
		return "", fmt.Errorf("no input: give text or --file")
	}
}
