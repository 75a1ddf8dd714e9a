package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/philipp01105/envlog/pretty"
)

const (
	optionNameColor     = "color"
	optionNameTimestamp = "timestamp-format"
)

func newCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "envlog-pretty",
		Short: "Render JSON log lines from stdin as condensed text",
		Long: `Reads line-delimited JSON records, as written by development
processes, and prints them as "<time> <LEVEL> (<name>): <msg> k=v".
Lines that are not JSON objects are copied through unchanged.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			color, err := cmd.Flags().GetString(optionNameColor)
			if err != nil {
				return err
			}
			switch color {
			case pretty.ColorAuto, pretty.ColorAlways, pretty.ColorNever:
			default:
				return fmt.Errorf("invalid --%s %q: want auto, always or never", optionNameColor, color)
			}
			layout, err := cmd.Flags().GetString(optionNameTimestamp)
			if err != nil {
				return err
			}
			return run(cmd.InOrStdin(), cmd.OutOrStdout(), pretty.Options{Color: color, TimestampFormat: layout})
		},
	}

	c.Flags().String(optionNameColor, pretty.ColorAuto, "colour output: auto, always or never")
	c.Flags().String(optionNameTimestamp, "", "Go time layout for the timestamp column")
	return c
}

func run(in io.Reader, out io.Writer, opts pretty.Options) error {
	w, err := pretty.NewWriter(out, opts)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, in); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return w.Flush()
}
