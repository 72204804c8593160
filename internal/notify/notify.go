// Package notify turns the overdue and upcoming counts into a desktop
// reminder.
package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/gen2brain/beeep"

	"taskdash/internal/analytics"
	"taskdash/internal/task"
)

type Reminder struct {
	Title   string
	Message string
	// Urgent is set when something is overdue; it asks for an alert
	// rather than a plain notification.
	Urgent bool
}

type Notifier interface {
	Notify(r Reminder) error
}

// Desktop posts reminders through the platform notification service.
type Desktop struct {
	AppName string
}

func (d Desktop) Notify(r Reminder) error {
	if d.AppName != "" {
		beeep.AppName = d.AppName
	}
	if r.Urgent {
		return beeep.Alert(r.Title, r.Message, "")
	}
	return beeep.Notify(r.Title, r.Message, "")
}

// Build describes the pending work in s. It reports false when nothing is
// overdue or due within the week.
func Build(s analytics.Summary) (Reminder, bool) {
	if s.Overdue == 0 && s.Upcoming == 0 {
		return Reminder{}, false
	}
	var parts []string
	if s.Overdue > 0 {
		parts = append(parts, fmt.Sprintf("%s overdue", plural(s.Overdue, "task")))
	}
	if s.Upcoming > 0 {
		parts = append(parts, fmt.Sprintf("%s due in the next 7 days", plural(s.Upcoming, "task")))
	}
	msg := strings.Join(parts, ", ")
	if s.HighPriority > 0 {
		msg += fmt.Sprintf(" (%d high priority)", s.HighPriority)
	}

	title := "Upcoming tasks"
	if s.Overdue > 0 {
		title = "Overdue tasks"
	}
	return Reminder{Title: title, Message: msg, Urgent: s.Overdue > 0}, true
}

// Remind summarizes the whole list at now and sends a reminder if there is
// anything to say. The reminder is returned either way for the caller to
// print.
func Remind(n Notifier, tasks []task.Task, now time.Time) (Reminder, bool, error) {
	r, ok := Build(analytics.Summarize(tasks, now))
	if !ok {
		return r, false, nil
	}
	if err := n.Notify(r); err != nil {
		return r, true, fmt.Errorf("failed to send notification: %w", err)
	}
	return r, true, nil
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
