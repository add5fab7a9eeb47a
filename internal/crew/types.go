package crew

import "time"

// Vessel holds the particulars of a managed ship.
type Vessel struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	IMO          string `yaml:"imo"`
	Flag         string `yaml:"flag"`
	Type         string `yaml:"type"`
	GrossTonnage int    `yaml:"gross_tonnage"`
	Built        int    `yaml:"built"`
	Manager      string `yaml:"manager"`
}

// SeafarerStatus says whether a seafarer is serving or ashore.
type SeafarerStatus string

const (
	StatusOnboard  SeafarerStatus = "ONBOARD"
	StatusVacation SeafarerStatus = "VACATION"
)

// Seafarer is a crew member. Onboard seafarers carry a vessel and sign-on
// date; vacationers carry the date they are available for rotation.
type Seafarer struct {
	ID            string         `yaml:"id"`
	Name          string         `yaml:"name"`
	Rank          string         `yaml:"rank"`
	Nationality   string         `yaml:"nationality"`
	Vessel        string         `yaml:"vessel"`
	Status        SeafarerStatus `yaml:"status"`
	SignOn        time.Time      `yaml:"sign_on"`
	ContractEnd   time.Time      `yaml:"contract_end"`
	AvailableFrom time.Time      `yaml:"available_from"`
}

// Contract is an employment agreement between a seafarer and a vessel.
type Contract struct {
	ID          string    `yaml:"id"`
	Seafarer    string    `yaml:"seafarer"`
	Rank        string    `yaml:"rank"`
	Vessel      string    `yaml:"vessel"`
	Start       time.Time `yaml:"start"`
	End         time.Time `yaml:"end"`
	MonthlyWage int       `yaml:"monthly_wage"`
}

// ChangeStatus tracks a crew change through its logistics.
type ChangeStatus string

const (
	ChangePlanned   ChangeStatus = "PLANNED"
	ChangeConfirmed ChangeStatus = "CONFIRMED"
	ChangeCompleted ChangeStatus = "COMPLETED"
	ChangeCancelled ChangeStatus = "CANCELLED"
)

// CrewChange swaps an off-signer for an on-signer at a port.
type CrewChange struct {
	ID        string       `yaml:"id"`
	Vessel    string       `yaml:"vessel"`
	Port      string       `yaml:"port"`
	Date      time.Time    `yaml:"date"`
	Rank      string       `yaml:"rank"`
	Onsigner  string       `yaml:"onsigner"`
	Offsigner string       `yaml:"offsigner"`
	Status    ChangeStatus `yaml:"status"`
}

// CaseStatus is the lifecycle state of a P&I case.
type CaseStatus string

const (
	CaseOpen     CaseStatus = "OPEN"
	CaseClosed   CaseStatus = "CLOSED"
	CaseReopened CaseStatus = "REOPENED"
)

// Case is a protection and indemnity claim logged against a vessel.
type Case struct {
	ID       string     `yaml:"id"`
	Vessel   string     `yaml:"vessel"`
	Seafarer string     `yaml:"seafarer"`
	Category string     `yaml:"category"`
	Club     string     `yaml:"club"`
	Opened   time.Time  `yaml:"opened"`
	Status   CaseStatus `yaml:"status"`
	Reserve  int        `yaml:"reserve"`
}

// Dataset is an immutable snapshot of every collection.
type Dataset struct {
	Vessels     []Vessel
	Seafarers   []Seafarer
	Contracts   []Contract
	CrewChanges []CrewChange
	Cases       []Case
}

// Onboard returns the seafarers currently serving.
func (d Dataset) Onboard() []Seafarer {
	return d.seafarersWith(StatusOnboard)
}

// Vacationers returns the seafarers ashore awaiting rotation.
func (d Dataset) Vacationers() []Seafarer {
	return d.seafarersWith(StatusVacation)
}

func (d Dataset) seafarersWith(status SeafarerStatus) []Seafarer {
	var out []Seafarer
	for _, s := range d.Seafarers {
		if s.Status == status {
			out = append(out, s)
		}
	}
	return out
}

// Clone returns a deep copy whose slices share nothing with d.
func (d Dataset) Clone() Dataset {
	return Dataset{
		Vessels:     cloneSlice(d.Vessels),
		Seafarers:   cloneSlice(d.Seafarers),
		Contracts:   cloneSlice(d.Contracts),
		CrewChanges: cloneSlice(d.CrewChanges),
		Cases:       cloneSlice(d.Cases),
	}
}

// Counts reports the size of each collection keyed by a short name.
func (d Dataset) Counts() map[string]int {
	return map[string]int{
		"vessels":      len(d.Vessels),
		"seafarers":    len(d.Seafarers),
		"contracts":    len(d.Contracts),
		"crew_changes": len(d.CrewChanges),
		"cases":        len(d.Cases),
	}
}

func cloneSlice[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}
