package planning

import (
	"math"
	"sort"
	"time"

	"github.com/peraplan/peraplan_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// reminderWindowDays is how far ahead reminders are surfaced.
const reminderWindowDays = 30

// Reminder is a lead-time-adjusted notification for one projected occurrence.
type Reminder struct {
	EntryID        string          `json:"entryID"`
	Name           string          `json:"name"`
	EntryType      domain.EntryType `json:"entryType"`
	Amount         decimal.Decimal `json:"amount"`
	CurrencyCode   string          `json:"currencyCode"`
	OccurrenceDate time.Time       `json:"occurrenceDate"`
	ReminderDate   time.Time       `json:"reminderDate"`
	DaysUntil      int             `json:"daysUntil"`
	IsAutopay      bool            `json:"isAutopay"`
}

// Reminders derives reminders for every occurrence of the given entries due
// within the next 30 days of now. The reminder date is the occurrence date
// minus the entry's lead time, floored at now so a stale lead time still
// produces an actionable reminder. Output is ordered by occurrence ascending.
func Reminders(entries []domain.ScheduleEntry, now time.Time) []Reminder {
	windowEnd := now.AddDate(0, 0, reminderWindowDays)

	var reminders []Reminder
	for _, entry := range entries {
		if !entry.IsActive {
			continue
		}
		for _, occ := range Occurrences(entry, now, windowEnd, DefaultMaxIterations) {
			reminderDate := occ.AddDate(0, 0, -entry.LeadTimeDays)
			if reminderDate.Before(now) {
				reminderDate = now
			}

			daysUntil := int(math.Ceil(occ.Sub(now).Hours() / 24))
			if daysUntil < 0 {
				daysUntil = 0
			}

			reminders = append(reminders, Reminder{
				EntryID:        entry.EntryID,
				Name:           entry.Name,
				EntryType:      entry.EntryType,
				Amount:         entry.Amount,
				CurrencyCode:   entry.CurrencyCode,
				OccurrenceDate: occ,
				ReminderDate:   reminderDate,
				DaysUntil:      daysUntil,
				IsAutopay:      entry.IsAutopay,
			})
		}
	}

	sort.SliceStable(reminders, func(i, j int) bool {
		return reminders[i].OccurrenceDate.Before(reminders[j].OccurrenceDate)
	})
	return reminders
}
