package screens

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/crewdeck/internal/crew"
	"github.com/five82/crewdeck/internal/datatable"
)

var refDay = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testDataset() crew.Dataset {
	return crew.Dataset{
		Vessels: []crew.Vessel{
			{ID: "V1", Name: "Nordic Star", IMO: "9301234", Flag: "NO", Type: "Tanker", GrossTonnage: 58000, Built: 2009},
			{ID: "V2", Name: "Pacific Dawn", IMO: "9412345", Flag: "PA", Type: "Bulker", GrossTonnage: 31000, Built: 2014},
		},
		Seafarers: []crew.Seafarer{
			{ID: "S1", Name: "Ana Reyes", Rank: "Master", Nationality: "PH", Vessel: "Nordic Star", Status: crew.StatusOnboard, SignOn: day(2025, 11, 2)},
			{ID: "S2", Name: "Jonas Berg", Rank: "Cook", Nationality: "NO", Status: crew.StatusVacation, AvailableFrom: day(2026, 3, 11)},
			{ID: "S3", Name: "Li Wei", Rank: "AB", Nationality: "CN", Vessel: "Pacific Dawn", Status: crew.StatusOnboard},
		},
		Contracts: []crew.Contract{
			{ID: "c1", Seafarer: "Ana Reyes", Rank: "Master", Vessel: "A", Start: day(2025, 6, 1), End: day(2026, 12, 1), MonthlyWage: 12500},
			{ID: "c2", Seafarer: "Jonas Berg", Rank: "Cook", Vessel: "B", Start: day(2025, 1, 1), End: day(2026, 1, 31), MonthlyWage: 2800},
			{ID: "c3", Seafarer: "Li Wei", Rank: "AB", Vessel: "A", Start: day(2025, 2, 1), End: day(2026, 2, 1), MonthlyWage: 1900},
		},
		CrewChanges: []crew.CrewChange{
			{ID: "CC1", Vessel: "Nordic Star", Port: "Rotterdam", Date: day(2026, 3, 20), Rank: "Master", Onsigner: "Per Lund", Offsigner: "Ana Reyes", Status: crew.ChangePlanned},
		},
		Cases: []crew.Case{
			{ID: "PI-1", Vessel: "Nordic Star", Category: "Injury", Club: "Gard", Opened: day(2026, 1, 4), Status: crew.CaseOpen, Reserve: 45000},
		},
	}
}

func testScreens(t *testing.T) []Screen {
	t.Helper()
	all := All(func() time.Time { return refDay })
	for _, s := range all {
		s.SetData(testDataset())
	}
	return all
}

func mustLookup(t *testing.T, all []Screen, id string) Screen {
	t.Helper()
	s, err := Lookup(all, id)
	if err != nil {
		t.Fatalf("Lookup(%q) error = %v", id, err)
	}
	return s
}

func TestAll_ScreenOrder(t *testing.T) {
	want := []string{"changes", "onboard", "vacation", "contracts", "cases", "vessels"}
	if diff := cmp.Diff(want, IDs(All(nil))); diff != "" {
		t.Fatalf("screen ids mismatch (-want +got):\n%s", diff)
	}
}

func TestLookup(t *testing.T) {
	all := All(nil)
	if s := mustLookup(t, all, " Contracts "); s.ID() != "contracts" {
		t.Fatalf("Lookup returned %q", s.ID())
	}
	if _, err := Lookup(all, "payroll"); !errors.Is(err, ErrUnknownScreen) {
		t.Fatalf("Lookup(payroll) error = %v, want ErrUnknownScreen", err)
	}
}

func TestContracts_ScenarioFacetThenSort(t *testing.T) {
	s := mustLookup(t, testScreens(t), "contracts")
	s.ToggleFacet("vessel", "A")
	if err := s.SetSort(datatable.SortConfig{Key: "status", Direction: datatable.Asc}); err != nil {
		t.Fatalf("SetSort error = %v", err)
	}
	if diff := cmp.Diff([]string{"c1", "c3"}, s.RowKeys()); diff != "" {
		t.Fatalf("row keys mismatch (-want +got):\n%s", diff)
	}
	visible, total := s.Counts()
	if visible != 2 || total != 3 {
		t.Fatalf("Counts() = %d/%d, want 2/3", visible, total)
	}
}

func TestContracts_StatusIsDerivedFromClock(t *testing.T) {
	s := mustLookup(t, testScreens(t), "contracts")
	facets := s.Facets()
	var statuses []string
	for _, f := range facets {
		if f.Key == "status" {
			statuses = f.Options
		}
	}
	if diff := cmp.Diff([]string{"ACTIVE", "EXPIRED"}, statuses); diff != "" {
		t.Fatalf("status options mismatch (-want +got):\n%s", diff)
	}

	fields, ok := s.Detail("c1")
	if !ok {
		t.Fatalf("Detail(c1) not found")
	}
	got := map[string]string{}
	for _, f := range fields {
		got[f.Label] = f.Value
	}
	if got["Monthly wage"] != "$12,500" {
		t.Fatalf("Monthly wage = %q, want %q", got["Monthly wage"], "$12,500")
	}
	if got["Remaining"] != "275 days" {
		t.Fatalf("Remaining = %q, want %q", got["Remaining"], "275 days")
	}
}

func TestOnboardAndVacation_SplitSeafarers(t *testing.T) {
	all := testScreens(t)
	if diff := cmp.Diff([]string{"S1", "S3"}, mustLookup(t, all, "onboard").RowKeys()); diff != "" {
		t.Fatalf("onboard mismatch (-want +got):\n%s", diff)
	}
	vac := mustLookup(t, all, "vacation")
	if diff := cmp.Diff([]string{"S2"}, vac.RowKeys()); diff != "" {
		t.Fatalf("vacation mismatch (-want +got):\n%s", diff)
	}
	view := vac.View()
	last := view.Rows[0].Cells[len(view.Rows[0].Cells)-1]
	if last != "10d" {
		t.Fatalf("ready in = %q, want %q", last, "10d")
	}
}

func TestSearch_MatchesConfiguredFields(t *testing.T) {
	s := mustLookup(t, testScreens(t), "changes")
	tests := []struct {
		query string
		want  int
	}{
		{"rotter", 1},
		{"PER LUND", 1},
		{"ana", 1},
		{"  ", 1},
		{"singapore", 0},
	}
	for _, tt := range tests {
		s.SetQuery(tt.query)
		if got := len(s.RowKeys()); got != tt.want {
			t.Fatalf("query %q matched %d rows, want %d", tt.query, got, tt.want)
		}
	}
}

func TestEmptyStates(t *testing.T) {
	s := mustLookup(t, testScreens(t), "cases")
	s.SetQuery("no such case")
	view := s.View()
	if view.State != datatable.ViewEmpty {
		t.Fatalf("State = %v, want ViewEmpty", view.State)
	}
	if view.Message != "No P&I cases match the current filters." {
		t.Fatalf("Message = %q", view.Message)
	}

	for _, c := range s.Columns() {
		if c.Visible {
			if err := s.ToggleColumn(c.Key); err != nil {
				t.Fatalf("ToggleColumn(%q) error = %v", c.Key, err)
			}
		}
	}
	if got := s.View().State; got != datatable.ViewNoColumns {
		t.Fatalf("State = %v, want ViewNoColumns", got)
	}
	s.ShowAllColumns()
	if got := len(s.View().Headers); got != len(s.Columns()) {
		t.Fatalf("headers after ShowAllColumns = %d, want %d", got, len(s.Columns()))
	}
}

func TestColumns_ToggleKeepsOrder(t *testing.T) {
	s := mustLookup(t, testScreens(t), "vessels")
	before := columnKeys(s.Columns())
	if err := s.ToggleColumn("imo"); err != nil {
		t.Fatalf("ToggleColumn error = %v", err)
	}
	if diff := cmp.Diff(before, columnKeys(s.Columns())); diff != "" {
		t.Fatalf("column order changed (-want +got):\n%s", diff)
	}
	for _, h := range s.View().Headers {
		if h.Key == "imo" {
			t.Fatalf("hidden column imo still rendered")
		}
	}
	if err := s.ToggleColumn("draft"); !errors.Is(err, ErrUnknownColumn) {
		t.Fatalf("ToggleColumn(draft) error = %v, want ErrUnknownColumn", err)
	}
}

func TestColumns_ResizeAndAutoSize(t *testing.T) {
	s := mustLookup(t, testScreens(t), "vessels")
	width := func() int {
		for _, h := range s.View().Headers {
			if h.Key == "name" {
				return h.Width
			}
		}
		return -1
	}
	natural := width()
	if err := s.ResizeColumn("name", 4); err != nil {
		t.Fatalf("ResizeColumn error = %v", err)
	}
	if got := width(); got != natural+4 {
		t.Fatalf("width after resize = %d, want %d", got, natural+4)
	}
	if err := s.AutoSizeColumn("name"); err != nil {
		t.Fatalf("AutoSizeColumn error = %v", err)
	}
	if got := width(); got != natural {
		t.Fatalf("width after autosize = %d, want %d", got, natural)
	}
}

func TestSort_HeaderClicksAndErrors(t *testing.T) {
	s := mustLookup(t, testScreens(t), "vessels")
	s.ClickHeader("gt")
	s.ClickHeader("gt")
	if diff := cmp.Diff([]string{"V1", "V2"}, s.RowKeys()); diff != "" {
		t.Fatalf("desc tonnage mismatch (-want +got):\n%s", diff)
	}
	s.ClickHeader("gt")
	if s.Sort().Active() {
		t.Fatalf("sort still active after three clicks: %+v", s.Sort())
	}

	s.ClickHeader("manager")
	if s.Sort().Active() {
		t.Fatalf("non-sortable header click changed sort: %+v", s.Sort())
	}
	if err := s.SetSort(datatable.SortConfig{Key: "manager"}); err == nil {
		t.Fatalf("SetSort(manager) error = nil, want error")
	}
	if err := s.SetSort(datatable.SortConfig{Key: "draft"}); !errors.Is(err, ErrUnknownColumn) {
		t.Fatalf("SetSort(draft) error = %v, want ErrUnknownColumn", err)
	}
}

func TestSetData_KeepsViewState(t *testing.T) {
	s := mustLookup(t, testScreens(t), "vessels")
	s.ToggleFacet("flag", "PA")
	s.SetHighlight("V2")
	s.SetData(testDataset())
	view := s.View()
	if len(view.Rows) != 1 || !view.Rows[0].Highlighted {
		t.Fatalf("rows after SetData = %+v, want highlighted V2 only", view.Rows)
	}
	s.ClearFilters()
	if got := len(s.RowKeys()); got != 2 {
		t.Fatalf("rows after ClearFilters = %d, want 2", got)
	}
}

func columnKeys(cols []datatable.ColumnInfo) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Key
	}
	return out
}

func TestDateColumns_ReadClockOncePerPass(t *testing.T) {
	calls := 0
	// Each read moves the clock a full day forward.
	advancing := func() time.Time {
		calls++
		return refDay.AddDate(0, 0, calls)
	}
	all := All(advancing)
	for _, s := range all {
		s.SetData(testDataset())
	}

	s := mustLookup(t, all, "contracts")
	if err := s.ToggleColumn("remaining"); err != nil {
		t.Fatalf("ToggleColumn(remaining) error = %v", err)
	}
	if err := s.SetSort(datatable.SortConfig{Key: "remaining"}); err != nil {
		t.Fatalf("SetSort error = %v", err)
	}

	calls = 0
	v := s.View()
	if calls != 1 {
		t.Fatalf("clock read %d times during one view, want 1", calls)
	}

	col := -1
	for i, h := range v.Headers {
		if h.Key == "remaining" {
			col = i
		}
	}
	if col < 0 {
		t.Fatalf("remaining column not visible")
	}
	var keys, cells []string
	for _, r := range v.Rows {
		keys = append(keys, r.Key)
		cells = append(cells, r.Cells[col])
	}
	// c2 ends one day before c3, so their counts differ by exactly one.
	today := refDay.AddDate(0, 0, 1)
	want := []string{
		fmt.Sprintf("%dd", crew.DaysUntil(day(2026, 1, 31), today)),
		fmt.Sprintf("%dd", crew.DaysUntil(day(2026, 2, 1), today)),
		fmt.Sprintf("%dd", crew.DaysUntil(day(2026, 12, 1), today)),
	}
	if diff := cmp.Diff([]string{"c2", "c3", "c1"}, keys); diff != "" {
		t.Fatalf("row order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, cells); diff != "" {
		t.Fatalf("remaining cells mismatch (-want +got):\n%s", diff)
	}

	calls = 0
	_ = mustLookup(t, all, "vacation").RowKeys()
	if calls != 1 {
		t.Fatalf("vacation board read the clock %d times, want 1", calls)
	}
}
