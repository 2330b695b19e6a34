package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/asyncopatedsoul/health-protocol/internal/model"
)

var (
	setLineRe     = regexp.MustCompile(`(?i)^\d+\s*(?:kg|lbs|lb)?\s*x\s*\d+`)
	setMatchRe    = regexp.MustCompile(`(?i)(\d+)\s*(?:kg|lbs|lb)?\s*x\s*(\d+)(?:\s*reps)?`)
	bareWeightRe  = regexp.MustCompile(`(?i)^(\d+)(?:\s*(?:kg|lbs|lb))?$`)
	bareRepsRe    = regexp.MustCompile(`(?i)^(\d+)\s*reps?$`)
	simpleSetRe   = regexp.MustCompile(`(\d+)\s*x\s*(\d+)`)
	minuteUnitRe  = regexp.MustCompile(`(?i)\d+\s*(?:min|mins|minutes)\b`)
	goalTimeRe    = regexp.MustCompile(`(?i)(\d+)\s*(?:min|mins|minutes)\b`)
	repsInTimeRe  = regexp.MustCompile(`(?i)(\d+)\s*in\s*(\d+)\s*(?:min|mins|minutes)\b`)
	firstIntRe    = regexp.MustCompile(`\d+`)
	intSequenceRe = regexp.MustCompile(`^\d+(?:\s+\d+)+$`)
)

// Classify turns the metadata lines of one activity block into a typed value.
// It always returns one of SetList, TimeGoal, SingleValue or Raw.
func Classify(lines []string) model.Metadata {
	if anyMatch(lines, setLineRe) {
		return parseSetList(lines)
	}
	if anyMatch(lines, minuteUnitRe) {
		return parseTimeGoal(lines)
	}
	if len(lines) == 1 {
		if sv, ok := parseSingleValue(lines[0]); ok {
			return sv
		}
	}
	return model.Raw{Lines: append([]string{}, lines...)}
}

func parseSetList(lines []string) model.SetList {
	sets := make([]model.Set, 0, len(lines))
	for _, line := range lines {
		if m := setMatchRe.FindStringSubmatchIndex(line); m != nil {
			notes := strings.TrimSpace(line[:m[0]] + line[m[1]:])
			sets = append(sets, model.Set{
				Weight: atoi(line[m[2]:m[3]]),
				Reps:   atoi(line[m[4]:m[5]]),
				Notes:  notes,
			})
			continue
		}
		// A bare weight is a single-rep set.
		if m := bareWeightRe.FindStringSubmatch(line); m != nil {
			sets = append(sets, model.Set{Weight: atoi(m[1]), Reps: 1})
		}
	}
	return model.SetList{Sets: sets}
}

func parseTimeGoal(lines []string) model.TimeGoal {
	var tg model.TimeGoal

	for _, line := range lines {
		if !isGoalLine(line) {
			continue
		}
		if m := firstIntRe.FindString(line); m != "" {
			tg.GoalReps = intPtr(atoi(m))
		}
		if m := goalTimeRe.FindStringSubmatch(line); m != nil {
			tg.GoalTime = intPtr(atoi(m[1]))
		}
		break
	}

	// An actual "N in M mins" line wins over the goal line, which is used only when it is the sole match.
	var goalMatch []string
	for _, line := range lines {
		m := repsInTimeRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if isGoalLine(line) {
			if goalMatch == nil {
				goalMatch = m
			}
			continue
		}
		goalMatch = m
		break
	}
	if goalMatch != nil {
		tg.Reps = intPtr(atoi(goalMatch[1]))
		tg.Time = intPtr(atoi(goalMatch[2]))
	}

	for _, line := range lines {
		if !intSequenceRe.MatchString(line) {
			continue
		}
		fields := strings.Fields(line)
		tg.RepSets = make([]int, len(fields))
		total := 0
		for i, f := range fields {
			tg.RepSets[i] = atoi(f)
			total += tg.RepSets[i]
		}
		if tg.Reps == nil {
			tg.Reps = intPtr(total)
		}
		break
	}

	return tg
}

func parseSingleValue(line string) (model.SingleValue, bool) {
	if m := simpleSetRe.FindStringSubmatch(line); m != nil {
		return model.SingleValue{Weight: intPtr(atoi(m[1])), Reps: intPtr(atoi(m[2]))}, true
	}
	if m := bareWeightRe.FindStringSubmatch(line); m != nil {
		return model.SingleValue{Weight: intPtr(atoi(m[1]))}, true
	}
	if m := bareRepsRe.FindStringSubmatch(line); m != nil {
		return model.SingleValue{Reps: intPtr(atoi(m[1]))}, true
	}
	return model.SingleValue{}, false
}

func isGoalLine(line string) bool {
	return strings.Contains(strings.ToLower(line), "goal")
}

func anyMatch(lines []string, re *regexp.Regexp) bool {
	for _, line := range lines {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// atoi is only called on \d+ captures; values that overflow int become 0.
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func intPtr(n int) *int { return &n }
