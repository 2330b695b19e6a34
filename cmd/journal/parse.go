package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/asyncopatedsoul/health-protocol/internal/importer"
	"github.com/asyncopatedsoul/health-protocol/pkg/response"
)

func newParseCmd(run runFunc, out printerFunc) *cobra.Command {
	var timezone string

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a journal note without storing anything",
		Long:  "Parse a note read from file, or from stdin when no file (or -) is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readNote(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			return run(cmd, func(a *app) error {
				res, err := a.importer.ParseNote(cmd.Context(), importer.ParseNoteInput{Content: content, Timezone: timezone})
				if err != nil {
					return err
				}
				return out(cmd).result(res, func(w io.Writer) { printParse(w, res) })
			})
		},
	}
	cmd.Flags().StringVar(&timezone, "timezone", "", "timezone for the note date (default importer.default_timezone)")
	return cmd
}

func readNote(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read note: %w", err)
	}
	return string(b), nil
}

func printParse(w io.Writer, res importer.ParseNoteOutput) {
	if res.Date != nil {
		fmt.Fprintf(w, "date: %s\n", res.Date.Format(response.DateTimeFormat))
	} else {
		fmt.Fprintln(w, "date: none")
	}
	for i, pa := range res.Activities {
		kind := "raw"
		if pa.MetadataParsed != nil {
			kind = string(pa.MetadataParsed.Kind())
		}
		fmt.Fprintf(w, "%d. %s [%s]\n", i+1, pa.NameRaw, kind)
		for _, line := range pa.MetadataRaw {
			fmt.Fprintf(w, "     %s\n", line)
		}
	}
}
