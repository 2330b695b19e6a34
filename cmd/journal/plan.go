package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/plan"
	"github.com/asyncopatedsoul/health-protocol/pkg/datemath"
	"github.com/asyncopatedsoul/health-protocol/pkg/response"
)

func newPlanCmd(run runFunc, out printerFunc) *cobra.Command {
	var (
		userID    string
		weeks     int
		days      int
		startDate string
		export    bool
	)

	cmd := &cobra.Command{
		Use:   "plan <programId>",
		Short: "Schedule a program for a user",
		Long: `Expand a program into planned activities at local noon in the user's timezone.
--days wins over --weeks; without either the configured default horizon applies.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" {
				return plan.ErrMissingUser
			}
			return run(cmd, func(a *app) error {
				input := plan.PlanInput{
					UserID:           userID,
					ProgramID:        args[0],
					DurationWeeks:    weeks,
					DurationDays:     days,
					ExportToCalendar: export,
				}
				if startDate != "" {
					t, err := a.dates.Parse(startDate, time.Now())
					if err != nil {
						return fmt.Errorf("invalid --startDate: %w", err)
					}
					input.StartDate = t.In(a.dates.Location()).Format(plan.DateLayout)
				}

				res, err := a.plan.PlanProgramForUser(cmd.Context(), input)
				if err != nil {
					return err
				}
				return out(cmd).result(res, func(w io.Writer) { printPlan(w, res) })
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&userID, "userId", "", "user to plan for (required)")
	flags.IntVar(&weeks, "weeks", 0, "horizon in weeks")
	flags.IntVar(&days, "days", 0, "horizon in days")
	flags.StringVar(&startDate, "startDate", "", "first day of the plan (default today)")
	flags.BoolVar(&export, "export", false, "export planned activities to Google Calendar")
	return cmd
}

func printPlan(w io.Writer, res plan.PlanOutput) {
	loc, err := datemath.LoadLocation(res.Timezone)
	if err != nil {
		loc = time.UTC
	}
	fmt.Fprintf(w, "program %s for %s: %d days from %s (%s)\n",
		res.ProgramID, res.UserID, res.DurationDays, res.Start.In(loc).Format(response.DateFormat), res.Timezone)
	printPlanned(w, res.Planned, loc)
	if len(res.UnknownSlugs) > 0 {
		fmt.Fprintf(w, "unknown activities skipped: %v\n", res.UnknownSlugs)
	}
	if res.CalendarEvents > 0 || res.CalendarSkipped > 0 {
		fmt.Fprintf(w, "calendar: created=%d already exported=%d\n", res.CalendarEvents, res.CalendarSkipped)
	}
}

func printPlanned(w io.Writer, items []model.PlannedActivity, loc *time.Location) {
	for _, it := range items {
		at := time.UnixMilli(it.PlannedTimeUtcMs).In(loc)
		fmt.Fprintf(w, "  %s %s  %-20s %s\n", at.Format(response.DateFormat), at.Weekday().String()[:3], it.ActivitySlug, it.Phase)
	}
}

func newPlannedCmd(run runFunc, out printerFunc) *cobra.Command {
	var (
		userID    string
		programID string
		startDate string
		endDate   string
	)

	cmd := &cobra.Command{
		Use:   "planned",
		Short: "List a user's planned activities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if userID == "" {
				return plan.ErrMissingUser
			}
			return run(cmd, func(a *app) error {
				startMs, endMs, err := a.dates.ParseRangeMs(startDate, endDate, time.Now())
				if err != nil {
					return fmt.Errorf("invalid date range: %w", err)
				}
				items, err := a.plan.ListPlanned(cmd.Context(), plan.ListPlannedInput{
					UserID:    userID,
					ProgramID: programID,
					StartMs:   startMs,
					EndMs:     endMs,
				})
				if err != nil {
					return err
				}
				return out(cmd).result(items, func(w io.Writer) {
					if len(items) == 0 {
						fmt.Fprintln(w, "no planned activities")
						return
					}
					printPlanned(w, items, a.dates.Location())
				})
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&userID, "userId", "", "user whose plan to list (required)")
	flags.StringVar(&programID, "programId", "", "only this program")
	flags.StringVar(&startDate, "startDate", "", "only activities on or after this date")
	flags.StringVar(&endDate, "endDate", "", "only activities on or before this date")
	return cmd
}

func newProgramCmd(run runFunc, out printerFunc) *cobra.Command {
	program := &cobra.Command{Use: "program", Short: "Program definition commands"}

	var userID string
	loadCmd := &cobra.Command{
		Use:   "load <file.yaml>",
		Short: "Validate and store a YAML program definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(a *app) error {
				p, err := a.plan.LoadProgramFile(cmd.Context(), plan.LoadProgramFileInput{Path: args[0], UserID: userID})
				if err != nil {
					return err
				}
				return out(cmd).result(p, func(w io.Writer) {
					fmt.Fprintf(w, "loaded program %s (%s) with %d phases\n", p.ID, p.Name, len(p.Phases))
				})
			})
		},
	}
	loadCmd.Flags().StringVar(&userID, "userId", "", "owner to record instead of the file's")

	showCmd := &cobra.Command{
		Use:   "show <programId>",
		Short: "Print a stored program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(a *app) error {
				p, err := a.plan.GetProgram(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return out(cmd).result(p, func(w io.Writer) { printProgram(w, p) })
			})
		},
	}

	program.AddCommand(loadCmd, showCmd)
	return program
}

func printProgram(w io.Writer, p model.Program) {
	fmt.Fprintf(w, "%s (%s)\n", p.Name, p.ID)
	for i, ph := range p.Phases {
		fmt.Fprintf(w, "phase %d: %s\n", i+1, ph.Name)
		for _, ec := range ph.ExitCriteria {
			if ec.Target != nil && ec.Target.Total > 0 {
				fmt.Fprintf(w, "  exit: %s x%d\n", ec.Slug, ec.Target.Total)
			} else {
				fmt.Fprintf(w, "  exit: %s\n", ec.Slug)
			}
		}
		for _, it := range ph.Sequence {
			when := "unscheduled"
			switch {
			case it.Day != nil:
				when = fmt.Sprintf("day %d", *it.Day)
			case it.Weekday != nil:
				when = fmt.Sprintf("weekday %d", *it.Weekday)
			}
			slugs := make([]string, len(it.Activities))
			for j, a := range it.Activities {
				slugs[j] = a.Slug
			}
			fmt.Fprintf(w, "  %s: %v\n", when, slugs)
		}
	}
}
