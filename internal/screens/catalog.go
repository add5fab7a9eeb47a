package screens

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/five82/crewdeck/internal/crew"
	dt "github.com/five82/crewdeck/internal/datatable"
)

// All builds every screen in tab order. now drives date-derived columns such
// as contract status.
func All(now func() time.Time) []Screen {
	if now == nil {
		now = time.Now
	}
	return []Screen{
		crewChanges(),
		onboard(),
		vacationers(newClock(now)),
		contracts(newClock(now)),
		cases(),
		vessels(),
	}
}

// clock pins the reference time for date-derived columns. Boards stamp it
// once at the start of each pass over their rows, so every comparison in a
// sort sees the same day.
type clock struct {
	now func() time.Time
	at  time.Time
}

func newClock(now func() time.Time) *clock {
	c := &clock{now: now}
	c.stamp()
	return c
}

func (c *clock) stamp() { c.at = c.now() }

func (c *clock) Now() time.Time { return c.at }

func str(s string) dt.Value { return dt.String(s) }

func money(v dt.Value, _ any) string {
	if v.IsEmpty() {
		return "-"
	}
	n, err := strconv.ParseInt(v.String(), 10, 64)
	if err != nil {
		return v.String()
	}
	return "$" + humanize.Comma(n)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func dateText(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

func crewChanges() Screen {
	cols := []dt.Column[crew.CrewChange]{
		{Key: "id", Label: "ID", Visible: true, Sortable: true, MinWidth: 7, Value: func(c crew.CrewChange) dt.Value { return str(c.ID) }},
		{Key: "vessel", Label: "Vessel", Visible: true, Sortable: true, MinWidth: 10, Value: func(c crew.CrewChange) dt.Value { return str(c.Vessel) }},
		{Key: "port", Label: "Port", Visible: true, Sortable: true, Value: func(c crew.CrewChange) dt.Value { return str(c.Port) }},
		{Key: "date", Label: "Date", Visible: true, Sortable: true, MinWidth: 10, Value: func(c crew.CrewChange) dt.Value { return dt.Time(c.Date) }},
		{Key: "rank", Label: "Rank", Visible: true, Sortable: true, Value: func(c crew.CrewChange) dt.Value { return dt.Tag(c.Rank) }},
		{Key: "onsigner", Label: "On-signer", Visible: true, Sortable: true, Value: func(c crew.CrewChange) dt.Value { return str(c.Onsigner) }},
		{Key: "offsigner", Label: "Off-signer", Visible: true, Sortable: true, Value: func(c crew.CrewChange) dt.Value { return str(c.Offsigner) }},
		{Key: "status", Label: "Status", Visible: true, Sortable: true, Value: func(c crew.CrewChange) dt.Value { return dt.Tag(string(c.Status)) }},
	}
	table := dt.Table[crew.CrewChange]{
		RowKey: func(c crew.CrewChange) string { return c.ID },
		Filter: dt.Filter[crew.CrewChange]{
			Search: []func(crew.CrewChange) string{
				func(c crew.CrewChange) string { return c.ID },
				func(c crew.CrewChange) string { return c.Vessel },
				func(c crew.CrewChange) string { return c.Port },
				func(c crew.CrewChange) string { return c.Onsigner },
				func(c crew.CrewChange) string { return c.Offsigner },
			},
			Facets: []dt.Facet[crew.CrewChange]{
				{Key: "vessel", Label: "Vessel", Value: func(c crew.CrewChange) string { return c.Vessel }},
				{Key: "status", Label: "Status", Value: func(c crew.CrewChange) string { return string(c.Status) }},
				{Key: "rank", Label: "Rank", Value: func(c crew.CrewChange) string { return c.Rank }},
			},
		},
		EmptyMessage: "No crew changes match the current filters.",
	}
	return NewBoard("changes", "Crew Changes", cols, table,
		func(ds crew.Dataset) []crew.CrewChange { return ds.CrewChanges },
		func(c crew.CrewChange) []Field {
			return []Field{
				{"ID", c.ID},
				{"Vessel", c.Vessel},
				{"Port", dash(c.Port)},
				{"Date", dateText(c.Date)},
				{"Rank", dash(c.Rank)},
				{"On-signer", dash(c.Onsigner)},
				{"Off-signer", dash(c.Offsigner)},
				{"Status", string(c.Status)},
			}
		})
}

func seafarerDetail(s crew.Seafarer) []Field {
	return []Field{
		{"ID", s.ID},
		{"Name", s.Name},
		{"Rank", dash(s.Rank)},
		{"Nationality", dash(s.Nationality)},
		{"Status", string(s.Status)},
		{"Vessel", dash(s.Vessel)},
		{"Signed on", dateText(s.SignOn)},
		{"Contract end", dateText(s.ContractEnd)},
		{"Available from", dateText(s.AvailableFrom)},
	}
}

func seafarerKey(s crew.Seafarer) string { return s.ID }

func onboard() Screen {
	cols := []dt.Column[crew.Seafarer]{
		{Key: "id", Label: "ID", Visible: true, Sortable: true, Value: func(s crew.Seafarer) dt.Value { return str(s.ID) }},
		{Key: "name", Label: "Name", Visible: true, Sortable: true, MinWidth: 12, Value: func(s crew.Seafarer) dt.Value { return str(s.Name) }},
		{Key: "rank", Label: "Rank", Visible: true, Sortable: true, Value: func(s crew.Seafarer) dt.Value { return dt.Tag(s.Rank) }},
		{Key: "vessel", Label: "Vessel", Visible: true, Sortable: true, Value: func(s crew.Seafarer) dt.Value { return str(s.Vessel) }},
		{Key: "nationality", Label: "Nationality", Visible: true, Sortable: true, Value: func(s crew.Seafarer) dt.Value { return dt.Tag(s.Nationality) }},
		{Key: "sign_on", Label: "Signed On", Visible: true, Sortable: true, Value: func(s crew.Seafarer) dt.Value { return dt.Time(s.SignOn) }},
		{Key: "contract_end", Label: "Contract End", Visible: true, Sortable: true, Value: func(s crew.Seafarer) dt.Value { return dt.Time(s.ContractEnd) }},
	}
	table := dt.Table[crew.Seafarer]{
		RowKey: seafarerKey,
		Filter: dt.Filter[crew.Seafarer]{
			Search: []func(crew.Seafarer) string{
				func(s crew.Seafarer) string { return s.ID },
				func(s crew.Seafarer) string { return s.Name },
				func(s crew.Seafarer) string { return s.Vessel },
			},
			Facets: []dt.Facet[crew.Seafarer]{
				{Key: "vessel", Label: "Vessel", Value: func(s crew.Seafarer) string { return s.Vessel }},
				{Key: "rank", Label: "Rank", Value: func(s crew.Seafarer) string { return s.Rank }},
				{Key: "nationality", Label: "Nationality", Value: func(s crew.Seafarer) string { return s.Nationality }},
			},
		},
		EmptyMessage: "No seafarers onboard match the current filters.",
	}
	return NewBoard("onboard", "Onboard", cols, table,
		func(ds crew.Dataset) []crew.Seafarer { return ds.Onboard() },
		seafarerDetail)
}

func vacationers(clk *clock) Screen {
	cols := []dt.Column[crew.Seafarer]{
		{Key: "id", Label: "ID", Visible: true, Sortable: true, Value: func(s crew.Seafarer) dt.Value { return str(s.ID) }},
		{Key: "name", Label: "Name", Visible: true, Sortable: true, MinWidth: 12, Value: func(s crew.Seafarer) dt.Value { return str(s.Name) }},
		{Key: "rank", Label: "Rank", Visible: true, Sortable: true, Value: func(s crew.Seafarer) dt.Value { return dt.Tag(s.Rank) }},
		{Key: "nationality", Label: "Nationality", Visible: true, Sortable: true, Value: func(s crew.Seafarer) dt.Value { return dt.Tag(s.Nationality) }},
		{Key: "available_from", Label: "Available", Visible: true, Sortable: true, Value: func(s crew.Seafarer) dt.Value { return dt.Time(s.AvailableFrom) }},
		{
			Key: "ready_in", Label: "Ready In", Visible: true, Sortable: true,
			Value: func(s crew.Seafarer) dt.Value {
				if s.AvailableFrom.IsZero() {
					return dt.Value{}
				}
				return dt.Int(crew.DaysUntil(s.AvailableFrom, clk.Now()))
			},
			Render: func(v dt.Value, s crew.Seafarer) string {
				if v.IsEmpty() {
					return "-"
				}
				days := crew.DaysUntil(s.AvailableFrom, clk.Now())
				if days <= 0 {
					return "ready"
				}
				return fmt.Sprintf("%dd", days)
			},
		},
	}
	table := dt.Table[crew.Seafarer]{
		RowKey: seafarerKey,
		Filter: dt.Filter[crew.Seafarer]{
			Search: []func(crew.Seafarer) string{
				func(s crew.Seafarer) string { return s.ID },
				func(s crew.Seafarer) string { return s.Name },
				func(s crew.Seafarer) string { return s.Rank },
			},
			Facets: []dt.Facet[crew.Seafarer]{
				{Key: "rank", Label: "Rank", Value: func(s crew.Seafarer) string { return s.Rank }},
				{Key: "nationality", Label: "Nationality", Value: func(s crew.Seafarer) string { return s.Nationality }},
			},
		},
		EmptyMessage: "No vacationers match the current filters.",
	}
	return NewBoard("vacation", "Vacationers", cols, table,
		func(ds crew.Dataset) []crew.Seafarer { return ds.Vacationers() },
		seafarerDetail).withStamp(clk.stamp)
}

func contracts(clk *clock) Screen {
	status := func(c crew.Contract) string { return string(crew.ClassifyContract(c, clk.Now())) }
	cols := []dt.Column[crew.Contract]{
		{Key: "id", Label: "ID", Visible: true, Sortable: true, Value: func(c crew.Contract) dt.Value { return str(c.ID) }},
		{Key: "seafarer", Label: "Seafarer", Visible: true, Sortable: true, MinWidth: 12, Value: func(c crew.Contract) dt.Value { return str(c.Seafarer) }},
		{Key: "rank", Label: "Rank", Visible: true, Sortable: true, Value: func(c crew.Contract) dt.Value { return dt.Tag(c.Rank) }},
		{Key: "vessel", Label: "Vessel", Visible: true, Sortable: true, Value: func(c crew.Contract) dt.Value { return str(c.Vessel) }},
		{Key: "start", Label: "Start", Visible: true, Sortable: true, Value: func(c crew.Contract) dt.Value { return dt.Time(c.Start) }},
		{Key: "end", Label: "End", Visible: true, Sortable: true, Value: func(c crew.Contract) dt.Value { return dt.Time(c.End) }},
		{
			Key: "remaining", Label: "Remaining", Visible: false, Sortable: true,
			Value: func(c crew.Contract) dt.Value {
				days, ok := crew.DaysRemaining(c, clk.Now())
				if !ok {
					return dt.Value{}
				}
				return dt.Int(days)
			},
			Render: func(v dt.Value, _ crew.Contract) string {
				if v.IsEmpty() {
					return "open"
				}
				return v.String() + "d"
			},
		},
		{
			Key: "wage", Label: "Monthly Wage", Visible: true, Sortable: true,
			Value:  func(c crew.Contract) dt.Value { return dt.Int(c.MonthlyWage) },
			Render: func(v dt.Value, c crew.Contract) string { return money(v, c) },
		},
		{Key: "status", Label: "Status", Visible: true, Sortable: true, Value: func(c crew.Contract) dt.Value { return dt.Tag(status(c)) }},
	}
	table := dt.Table[crew.Contract]{
		RowKey: func(c crew.Contract) string { return c.ID },
		Filter: dt.Filter[crew.Contract]{
			Search: []func(crew.Contract) string{
				func(c crew.Contract) string { return c.ID },
				func(c crew.Contract) string { return c.Seafarer },
				func(c crew.Contract) string { return c.Vessel },
			},
			Facets: []dt.Facet[crew.Contract]{
				{Key: "vessel", Label: "Vessel", Value: func(c crew.Contract) string { return c.Vessel }},
				{Key: "rank", Label: "Rank", Value: func(c crew.Contract) string { return c.Rank }},
				{Key: "status", Label: "Status", Value: status},
			},
		},
		EmptyMessage: "No contracts match the current filters.",
	}
	return NewBoard("contracts", "Contracts", cols, table,
		func(ds crew.Dataset) []crew.Contract { return ds.Contracts },
		func(c crew.Contract) []Field {
			remaining := "open ended"
			if days, ok := crew.DaysRemaining(c, clk.Now()); ok {
				remaining = fmt.Sprintf("%d days", days)
			}
			return []Field{
				{"ID", c.ID},
				{"Seafarer", c.Seafarer},
				{"Rank", dash(c.Rank)},
				{"Vessel", dash(c.Vessel)},
				{"Start", dateText(c.Start)},
				{"End", dateText(c.End)},
				{"Remaining", remaining},
				{"Monthly wage", money(dt.Int(c.MonthlyWage), c)},
				{"Status", status(c)},
			}
		}).withStamp(clk.stamp)
}

func cases() Screen {
	cols := []dt.Column[crew.Case]{
		{Key: "id", Label: "Case", Visible: true, Sortable: true, Value: func(c crew.Case) dt.Value { return str(c.ID) }},
		{Key: "vessel", Label: "Vessel", Visible: true, Sortable: true, Value: func(c crew.Case) dt.Value { return str(c.Vessel) }},
		{
			Key: "seafarer", Label: "Seafarer", Visible: true, Sortable: true,
			Value:  func(c crew.Case) dt.Value { return str(c.Seafarer) },
			Render: func(v dt.Value, _ crew.Case) string { return dash(v.String()) },
		},
		{Key: "category", Label: "Category", Visible: true, Sortable: true, Value: func(c crew.Case) dt.Value { return dt.Tag(c.Category) }},
		{Key: "club", Label: "Club", Visible: true, Sortable: true, Value: func(c crew.Case) dt.Value { return str(c.Club) }},
		{Key: "opened", Label: "Opened", Visible: true, Sortable: true, Value: func(c crew.Case) dt.Value { return dt.Time(c.Opened) }},
		{
			Key: "reserve", Label: "Reserve", Visible: true, Sortable: true,
			Value:  func(c crew.Case) dt.Value { return dt.Int(c.Reserve) },
			Render: func(v dt.Value, c crew.Case) string { return money(v, c) },
		},
		{Key: "status", Label: "Status", Visible: true, Sortable: true, Value: func(c crew.Case) dt.Value { return dt.Tag(string(c.Status)) }},
	}
	table := dt.Table[crew.Case]{
		RowKey: func(c crew.Case) string { return c.ID },
		Filter: dt.Filter[crew.Case]{
			Search: []func(crew.Case) string{
				func(c crew.Case) string { return c.ID },
				func(c crew.Case) string { return c.Vessel },
				func(c crew.Case) string { return c.Seafarer },
			},
			Facets: []dt.Facet[crew.Case]{
				{Key: "vessel", Label: "Vessel", Value: func(c crew.Case) string { return c.Vessel }},
				{Key: "category", Label: "Category", Value: func(c crew.Case) string { return c.Category }},
				{Key: "status", Label: "Status", Value: func(c crew.Case) string { return string(c.Status) }},
			},
		},
		EmptyMessage: "No P&I cases match the current filters.",
	}
	return NewBoard("cases", "P&I Cases", cols, table,
		func(ds crew.Dataset) []crew.Case { return ds.Cases },
		func(c crew.Case) []Field {
			return []Field{
				{"Case", c.ID},
				{"Vessel", c.Vessel},
				{"Seafarer", dash(c.Seafarer)},
				{"Category", dash(c.Category)},
				{"Club", dash(c.Club)},
				{"Opened", dateText(c.Opened)},
				{"Reserve", money(dt.Int(c.Reserve), c)},
				{"Status", string(c.Status)},
			}
		})
}

func vessels() Screen {
	cols := []dt.Column[crew.Vessel]{
		{Key: "id", Label: "ID", Visible: true, Sortable: true, Value: func(v crew.Vessel) dt.Value { return str(v.ID) }},
		{Key: "name", Label: "Name", Visible: true, Sortable: true, MinWidth: 12, Value: func(v crew.Vessel) dt.Value { return str(v.Name) }},
		{Key: "imo", Label: "IMO", Visible: true, Sortable: true, Value: func(v crew.Vessel) dt.Value { return str(v.IMO) }},
		{Key: "type", Label: "Type", Visible: true, Sortable: true, Value: func(v crew.Vessel) dt.Value { return dt.Tag(v.Type) }},
		{Key: "flag", Label: "Flag", Visible: true, Sortable: true, Value: func(v crew.Vessel) dt.Value { return dt.Tag(v.Flag) }},
		{
			Key: "gt", Label: "GT", Visible: true, Sortable: true,
			Value: func(v crew.Vessel) dt.Value { return dt.Int(v.GrossTonnage) },
			Render: func(_ dt.Value, v crew.Vessel) string {
				if v.GrossTonnage == 0 {
					return "-"
				}
				return humanize.Comma(int64(v.GrossTonnage))
			},
		},
		{Key: "built", Label: "Built", Visible: true, Sortable: true, Value: func(v crew.Vessel) dt.Value { return dt.Int(v.Built) }},
		{Key: "manager", Label: "Manager", Visible: false, Sortable: false, Value: func(v crew.Vessel) dt.Value { return str(v.Manager) }},
	}
	table := dt.Table[crew.Vessel]{
		RowKey: func(v crew.Vessel) string { return v.ID },
		Filter: dt.Filter[crew.Vessel]{
			Search: []func(crew.Vessel) string{
				func(v crew.Vessel) string { return v.ID },
				func(v crew.Vessel) string { return v.Name },
				func(v crew.Vessel) string { return v.IMO },
			},
			Facets: []dt.Facet[crew.Vessel]{
				{Key: "flag", Label: "Flag", Value: func(v crew.Vessel) string { return v.Flag }},
				{Key: "type", Label: "Type", Value: func(v crew.Vessel) string { return v.Type }},
			},
		},
		EmptyMessage: "No vessels match the current filters.",
	}
	return NewBoard("vessels", "Vessels", cols, table,
		func(ds crew.Dataset) []crew.Vessel { return ds.Vessels },
		func(v crew.Vessel) []Field {
			built := "-"
			if v.Built > 0 {
				built = strconv.Itoa(v.Built)
			}
			return []Field{
				{"ID", v.ID},
				{"Name", v.Name},
				{"IMO", dash(v.IMO)},
				{"Type", dash(v.Type)},
				{"Flag", dash(v.Flag)},
				{"Gross tonnage", humanize.Comma(int64(v.GrossTonnage))},
				{"Built", built},
				{"Manager", dash(v.Manager)},
			}
		})
}
