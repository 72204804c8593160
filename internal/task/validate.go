package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrInvalidTask = errors.New("invalid task")
	ErrNotFound    = errors.New("task not found")
	ErrAmbiguousID = errors.New("task id is ambiguous")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidTask, fmt.Sprintf(format, args...))
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("duedate", func(fl validator.FieldLevel) bool {
		_, ok := ParseDate(fl.Field().String(), time.UTC)
		return ok
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		id := fl.Field().String()
		if id == AllCategories {
			return false
		}
		_, ok := LookupCategory(id)
		return ok
	})
	return v
}

// Validate checks a fully formed task.
func (t Task) Validate() error {
	if err := validate.Struct(t); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return invalidf("%s failed %q check", strings.ToLower(fe.Field()), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidTask, err)
	}
	return nil
}

// Draft is the user input for a new task.
type Draft struct {
	Title       string
	Description string
	DueDate     string
	Priority    string
	CategoryID  string
}

// New builds a task from a draft, filling defaults the way the add form
// does: medium priority, due today, work category.
func New(d Draft, now time.Time) (Task, error) {
	prio, err := ParsePriority(d.Priority)
	if err != nil {
		return Task{}, err
	}
	due := strings.TrimSpace(d.DueDate)
	if due == "" {
		due = now.Format(DateLayout)
	}
	cat := strings.TrimSpace(d.CategoryID)
	if cat == "" {
		cat = categories[0].ID
	}
	t := Task{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		DueDate:     due,
		Priority:    prio,
		CategoryID:  cat,
	}
	if t.Title == "" {
		return Task{}, invalidf("title is required")
	}
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	return t, nil
}
