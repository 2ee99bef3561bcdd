package forecaster

import (
	"sort"
	"time"

	"github.com/abhinavsaxena123/Customer-Complaints-Forecasting/timedataset"
	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

// Holiday is a named calendar day annotated on forecast charts
type Holiday struct {
	Name string
	Date time.Time
}

// USHolidays are the federal holidays annotated on forecast charts
var USHolidays = []*cal.Holiday{
	us.NewYear,
	us.MlkDay,
	us.PresidentsDay,
	us.MemorialDay,
	us.Juneteenth,
	us.IndependenceDay,
	us.LaborDay,
	us.ColumbusDay,
	us.VeteransDay,
	us.ThanksgivingDay,
	us.ChristmasDay,
}

// Holidays returns the observed dates of hols falling within [start, end], in date order
func Holidays(hols []*cal.Holiday, start, end time.Time) []Holiday {
	start = timedataset.Date(start)
	end = timedataset.Date(end)

	events := []Holiday{}
	if end.Before(start) {
		return events
	}
	// observed dates can spill into the neighboring year
	for i := start.Year() - 1; i <= end.Year()+1; i++ {
		for _, hol := range hols {
			_, observed := hol.Calc(i)
			if observed.IsZero() {
				continue
			}
			observed = timedataset.Date(observed)
			if observed.Before(start) || observed.After(end) {
				continue
			}
			events = append(events, Holiday{
				Name: hol.Name,
				Date: observed,
			})
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events
}
