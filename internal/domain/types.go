package domain

// Records fetched from the Timetastic API. Field names follow the API's
// JSON payloads; everything here is read-only input for one pipeline run.

type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func (u User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

type AbsenceType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Absence is one booked time-off record. StartType/EndType are "Morning" or
// "Afternoon" and give half-day granularity at the span boundaries. Status
// may be absent from the payload when the account auto-approves bookings.
type Absence struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"userId"`
	UserName      string  `json:"userName"`
	AbsenceTypeID int64   `json:"absenceTypeId"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	StartType     string  `json:"startType"`
	EndType       string  `json:"endType"`
	Status        string  `json:"status"`
	Reason        string  `json:"reason"`
	Approved      bool    `json:"approved"`
	Duration      float64 `json:"duration"`
	Deduction     float64 `json:"deduction"`
}

// DayEntry is one absence's contribution to one calendar day inside the
// reporting window.
type DayEntry struct {
	UserName    string
	AbsenceType string
	Reason      string
	Approved    bool
	Duration    float64
	Deduction   float64
}

// CalendarMap is the day-by-day grid for the reporting window. Dates holds
// every ISO date in the window in ascending order; Entries has a key for
// each of them, empty slices included, so renderers can show quiet days.
type CalendarMap struct {
	Dates   []string
	Entries map[string][]DayEntry
}

// PersonSummary is the per-person rollup across the whole window. Days are
// display labels ("Tue, Jun 3"); Types is the comma-joined set of absence
// type names in first-seen order.
type PersonSummary struct {
	UserName  string
	Days      []string
	Types     string
	TotalDays int
}
