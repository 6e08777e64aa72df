package doctor

import (
	"context"
	"fmt"

	"github.com/colonyops/todos/internal/core/action"
	"github.com/colonyops/todos/internal/core/journal"
)

// JournalCheck reads every entry and reports records that replay to no effect.
type JournalCheck struct {
	journal journal.Journal
	backend journal.Backend
}

// NewJournalCheck creates a journal check for j.
func NewJournalCheck(j journal.Journal, backend journal.Backend) *JournalCheck {
	return &JournalCheck{journal: j, backend: backend}
}

func (c *JournalCheck) Name() string {
	return "Journal"
}

func (c *JournalCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	entries, err := c.journal.List(ctx)
	if err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  string(c.backend),
			Status: StatusFail,
			Detail: fmt.Sprintf("cannot read: %v", err),
		})
		return result
	}

	result.Items = append(result.Items, CheckItem{
		Label:  string(c.backend),
		Status: StatusPass,
		Detail: fmt.Sprintf("%d actions recorded", len(entries)),
	})

	var (
		lastSeq    int64
		outOfOrder int
		deadToggle int
		badFilter  int
		items      int
	)

	for _, e := range entries {
		if e.Seq <= lastSeq {
			outOfOrder++
		}
		lastSeq = e.Seq

		switch a := e.Action.(type) {
		case action.AddTodo:
			items++
		case action.ToggleTodo:
			if a.Index < 0 || a.Index >= items {
				deadToggle++
			}
		case action.SetVisibilityFilter:
			if !a.Filter.IsValid() {
				badFilter++
			}
		}
	}

	if outOfOrder > 0 {
		result.Items = append(result.Items, CheckItem{
			Label:  "sequence",
			Status: StatusFail,
			Detail: fmt.Sprintf("%d entries out of order", outOfOrder),
		})
	}
	if deadToggle > 0 {
		result.Items = append(result.Items, CheckItem{
			Label:  string(action.TypeToggleTodo),
			Status: StatusWarn,
			Detail: fmt.Sprintf("%d toggles point at no todo", deadToggle),
		})
	}
	if badFilter > 0 {
		result.Items = append(result.Items, CheckItem{
			Label:  string(action.TypeSetVisibilityFilter),
			Status: StatusWarn,
			Detail: fmt.Sprintf("%d filters are not one of %v", badFilter, action.VisibilityFilters()),
		})
	}

	return result
}
