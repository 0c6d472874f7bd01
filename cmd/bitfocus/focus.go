package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/BrazeDaGreat/bit-focus-sub001/internal/focus"
)

var (
	focusLogDuration time.Duration
	focusLogStart    string
	focusLogEnd      string
	focusListLimit   int
)

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Track focus sessions",
}

var focusLogCmd = &cobra.Command{
	Use:   "log [tag]",
	Short: "Record a finished focus session",
	Long: `Record a finished focus session.

Either give a duration that ended just now, or explicit start and end
times in RFC 3339.

Examples:
  bitfocus focus log reading --for 25m
  bitfocus focus log "deep work" --start 2025-03-10T09:00:00Z --end 2025-03-10T10:30:00Z`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFocusLog,
}

var focusListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions, most recent first",
	RunE:  runFocusList,
}

var focusStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show focus totals for today and the last 7 days",
	RunE:  runFocusStats,
}

func init() {
	focusLogCmd.Flags().DurationVar(&focusLogDuration, "for", 0, "session length ending now (e.g. 25m, 1h30m)")
	focusLogCmd.Flags().StringVar(&focusLogStart, "start", "", "start time (RFC 3339)")
	focusLogCmd.Flags().StringVar(&focusLogEnd, "end", "", "end time (RFC 3339)")

	focusListCmd.Flags().IntVarP(&focusListLimit, "limit", "n", 0, "show at most n sessions (0 for all)")

	focusCmd.AddCommand(focusLogCmd)
	focusCmd.AddCommand(focusListCmd)
	focusCmd.AddCommand(focusStatsCmd)
}

func runFocusLog(cmd *cobra.Command, args []string) error {
	var tag string
	if len(args) > 0 {
		tag = args[0]
	}

	var start, end time.Time
	switch {
	case focusLogDuration != 0:
		end = time.Now()
		start = end.Add(-focusLogDuration)
	case focusLogStart != "" && focusLogEnd != "":
		var err error
		start, err = time.Parse(time.RFC3339, focusLogStart)
		if err != nil {
			return fmt.Errorf("invalid start time %q: %w", focusLogStart, err)
		}
		end, err = time.Parse(time.RFC3339, focusLogEnd)
		if err != nil {
			return fmt.Errorf("invalid end time %q: %w", focusLogEnd, err)
		}
	default:
		return fmt.Errorf("give either --for or both --start and --end")
	}

	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	sess, err := a.sessions.Add(ctx, tag, start, end)
	if err != nil {
		return fmt.Errorf("failed to log session: %w", err)
	}

	fmt.Printf("Logged %s of focus", focus.FormatDuration(sess.Duration()))
	if sess.Tag != "" {
		fmt.Printf(" on %s", sess.Tag)
	}
	fmt.Println()
	return nil
}

func runFocusList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	sessions := a.sessions.Sessions()
	if len(sessions) == 0 {
		fmt.Println("No sessions logged.")
		return nil
	}
	if focusListLimit > 0 && len(sessions) > focusListLimit {
		sessions = sessions[:focusListLimit]
	}

	for _, s := range sessions {
		tag := s.Tag
		if tag == "" {
			tag = "-"
		}
		fmt.Printf("%s  %s  %s  %s\n",
			s.StartTime.Local().Format("2006-01-02 15:04"),
			focus.FormatDuration(s.Duration()),
			tag,
			s.ID,
		)
	}
	return nil
}

func runFocusStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	now := time.Now()
	fmt.Printf("Today:       %s\n", focus.FormatDuration(a.sessions.TodayTotal(now)))
	fmt.Printf("Last 7 days: %s\n", focus.FormatDuration(a.sessions.Last7DaysTotal(now)))
	return nil
}
