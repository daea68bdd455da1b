package sim

import (
	"fmt"
	"math"
	"strconv"
)

type NoticeKind string

const (
	KindAlert    NoticeKind = "Alert"
	KindWarning  NoticeKind = "Warning"
	KindInfo     NoticeKind = "Info"
	KindReminder NoticeKind = "Reminder"
)

// DefaultThreshold applies when a household never set its own limit.
const DefaultThreshold = 300

// Notice is an intended notification. Classification produces notices
// as data; persistence and delivery happen in a separate dispatch step.
type Notice struct {
	Kind    NoticeKind
	Subject string
	Message string
}

type usageRule struct {
	match func(units float64, threshold int) bool
	build func(units float64, threshold int) Notice
}

// Evaluated top to bottom, first match wins.
var usageRules = []usageRule{
	{
		match: func(u float64, t int) bool { return u > float64(t) },
		build: func(u float64, t int) Notice {
			return Notice{
				Kind:    KindAlert,
				Subject: "Usage Alert",
				Message: fmt.Sprintf("You have exceeded your threshold limit of %d units!", t),
			}
		},
	},
	{
		match: func(u float64, t int) bool { return u > float64(t)*0.8 },
		build: func(u float64, t int) Notice {
			return Notice{
				Kind:    KindWarning,
				Subject: "Usage Warning",
				Message: fmt.Sprintf("Your electricity usage is reaching the threshold of %d units. Consider saving power.", t),
			}
		},
	},
	{
		match: func(u float64, t int) bool { return u < 250 },
		build: func(u float64, t int) Notice {
			return Notice{
				Kind:    KindInfo,
				Subject: "Usage Info",
				Message: fmt.Sprintf("Great job! Your consumption this month is just %s units. Keep saving energy!", formatUnits(u)),
			}
		},
	},
}

// Classify maps monthly consumption onto at most one usage notice.
// A household between 250 units and 80% of its threshold gets nothing.
func Classify(units float64, threshold int) (Notice, bool) {
	for _, r := range usageRules {
		if r.match(units, threshold) {
			return r.build(units, threshold), true
		}
	}
	return Notice{}, false
}

// ReminderNotice builds the pending-bill reminder for an unpaid bill
// from another simulated month.
func ReminderNotice(b Bill) Notice {
	return Notice{
		Kind:    KindReminder,
		Subject: "Pending Bill Reminder",
		Message: fmt.Sprintf("You have a pending electricity bill of ₹%s from %s. Please pay it soon.",
			formatUnits(b.Amount), b.Month),
	}
}

// formatUnits renders an already 2dp-rounded value keeping one decimal
// for whole numbers: 108 -> "108.0", 108.36 -> "108.36".
func formatUnits(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
