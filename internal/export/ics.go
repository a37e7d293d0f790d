// Package export renders the document into downstream formats: an ICS
// calendar of leave periods and an xlsx roster snapshot.
package export

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/gokturk078/project-3/internal/model"
)

const icsDateLayout = "2006-01-02"

// LeavesICS renders every leave with a parseable start date as an
// all-day calendar event. Leaves with unparseable dates are skipped;
// the count of skipped records is returned alongside the calendar text.
func LeavesICS(doc *model.Document, now time.Time) (string, int, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//personnel-portal//leave-calendar//TR")

	skipped := 0
	for _, leave := range doc.Leaves {
		start, err := time.Parse(icsDateLayout, leave.StartDate)
		if err != nil {
			skipped++
			continue
		}

		end := start
		if leave.EndDate != "" {
			if parsed, err := time.Parse(icsDateLayout, leave.EndDate); err == nil {
				end = parsed
			}
		}

		event := cal.AddEvent(fmt.Sprintf("leave-%s@personnel-portal", leave.ID))
		event.SetSummary(fmt.Sprintf("%s — %s izin", leave.FullName, leave.Type))
		event.SetAllDayStartAt(start)
		// DTEND is exclusive for all-day events.
		event.SetAllDayEndAt(end.AddDate(0, 0, 1))
		event.SetDtStampTime(now)
		if leave.Note != "" {
			event.SetDescription(leave.Note)
		}
	}

	return cal.Serialize(), skipped, nil
}
