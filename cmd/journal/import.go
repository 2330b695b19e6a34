package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/asyncopatedsoul/health-protocol/internal/importer"
	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
)

var errNothingToImport = errors.New("one of --noteId, --noteIds, --userId, --email, --tokenId or --supabaseUserId is required")

type importFlags struct {
	noteID         string
	noteIDs        []string
	user           model.UserSelector
	startDate      string
	endDate        string
	importBy       string
	skipDuplicates bool
	threshold      float64
}

func newImportCmd(run runFunc, out printerFunc) *cobra.Command {
	var f importFlags

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import journal notes as completed activity events",
		Long: `Import one note (--noteId), a list of notes (--noteIds) or every note of a user.

--startDate and --endDate accept epoch milliseconds, YYYY-MM-DD, or relative
expressions such as "today", "3 days ago" or "in 2 weeks".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if f.noteID == "" && len(f.noteIDs) == 0 && f.user.IsZero() {
				return errNothingToImport
			}
			if f.importBy != string(repository.NoteTimeCreatedAt) && f.importBy != string(repository.NoteTimeLastSaved) {
				return importer.ErrInvalidImportBy
			}

			skip := f.skipDuplicates
			return run(cmd, func(a *app) error {
				ctx := cmd.Context()
				p := out(cmd)

				switch {
				case f.noteID != "":
					res, err := a.importer.ImportNote(ctx, importer.ImportNoteInput{
						NoteID:         f.noteID,
						SkipDuplicates: &skip,
						Threshold:      f.threshold,
					})
					if err != nil {
						return err
					}
					return p.result(res, func(w io.Writer) { printNoteImport(w, res) })

				case len(f.noteIDs) > 0:
					res, err := a.importer.ImportNotes(ctx, importer.ImportNotesInput{
						NoteIDs:        f.noteIDs,
						SkipDuplicates: &skip,
						Threshold:      f.threshold,
					})
					if err != nil {
						return err
					}
					return p.result(res, func(w io.Writer) { printBulkImport(w, res) })

				default:
					startMs, endMs, err := a.dates.ParseRangeMs(f.startDate, f.endDate, time.Now())
					if err != nil {
						return fmt.Errorf("%w: %v", importer.ErrInvalidDateRange, err)
					}
					res, err := a.importer.ImportNotesForUser(ctx, importer.ImportNotesForUserInput{
						User:           f.user,
						StartMs:        startMs,
						EndMs:          endMs,
						ImportBy:       repository.NoteTimeField(f.importBy),
						SkipDuplicates: &skip,
						Threshold:      f.threshold,
					})
					if err != nil {
						return err
					}
					return p.result(res, func(w io.Writer) { printBulkImport(w, res) })
				}
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.noteID, "noteId", "", "import a single note")
	flags.StringSliceVar(&f.noteIDs, "noteIds", nil, "import several notes (comma separated)")
	flags.StringVar(&f.user.ID, "userId", "", "import every note of this user")
	flags.StringVar(&f.user.Email, "email", "", "select the user by email")
	flags.StringVar(&f.user.TokenID, "tokenId", "", "select the user by auth token id")
	flags.StringVar(&f.user.ExternalUserID, "supabaseUserId", "", "select the user by external (Supabase) user id")
	flags.StringVar(&f.startDate, "startDate", "", "only notes on or after this date")
	flags.StringVar(&f.endDate, "endDate", "", "only notes on or before this date")
	flags.StringVar(&f.importBy, "importBy", string(repository.NoteTimeCreatedAt), "timestamp the date range applies to: createdAtMs or lastSavedMs")
	flags.BoolVar(&f.skipDuplicates, "skipDuplicates", true, "skip activities already imported from the same note; false re-imports the note")
	flags.Float64Var(&f.threshold, "threshold", 0, "minimum search score for a catalog match (default 0.7)")
	return cmd
}

func printNoteImport(w io.Writer, res importer.ImportNoteOutput) {
	fmt.Fprintf(w, "note %s: found=%d created=%d skipped=%d errors=%d\n",
		res.NoteID, res.ActivitiesFound, res.EventsCreated, res.Skipped, res.Errors)
	for _, r := range res.Results {
		switch {
		case r.Skipped:
			fmt.Fprintf(w, "  - %s skipped (%s)\n", r.Parsed.NameRaw, r.Reason)
		case !r.Success:
			fmt.Fprintf(w, "  ! %s failed: %s\n", r.Parsed.NameRaw, r.Error)
		case r.Activity != nil:
			state := "matched"
			if r.Created {
				state = "created"
			}
			fmt.Fprintf(w, "  + %s -> %s (%s)\n", r.Parsed.NameRaw, r.Activity.Slug, state)
		}
	}
}

func printBulkImport(w io.Writer, res importer.ImportNotesOutput) {
	for _, n := range res.Notes {
		if !n.Success {
			fmt.Fprintf(w, "note %s: failed: %s\n", n.NoteID, n.Error)
			continue
		}
		fmt.Fprintf(w, "note %s: found=%d created=%d skipped=%d errors=%d\n",
			n.NoteID, n.ActivitiesFound, n.EventsCreated, n.Skipped, n.Errors)
	}
	fmt.Fprintf(w, "notes=%d found=%d created=%d skipped=%d errors=%d\n",
		res.NotesProcessed, res.ActivitiesFound, res.EventsCreated, res.Skipped, res.Errors)
}
