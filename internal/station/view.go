package station

// Snapshot is a copy of a view's state, safe to hand to a renderer.
type Snapshot struct {
	Query    string
	Stations []Displayed
	Message  string
}

// View owns the state shown to one user: the last query, the displayed
// stations with their reservation flags, and the search feedback message.
//
// View is not safe for concurrent use; callers serialise access per view.
type View struct {
	catalog  *Catalog
	query    string
	stations []Displayed
	message  string
}

// NewView creates a view showing the whole catalog, nothing reserved and no message.
func NewView(catalog *Catalog) *View {
	return &View{
		catalog:  catalog,
		stations: fresh(catalog.records),
	}
}

// Search runs a location search and replaces the displayed stations and the
// message. Previous reservations are discarded, including those on stations
// that appear again in the new results.
func (v *View) Search(query string) SearchResult {
	result := Search(query, v.catalog.records)

	v.query = query
	v.stations = fresh(result.Results)
	v.message = result.Message

	return result
}

// Reserve reserves a displayed station. See Reserve for the guard rules.
// The message is left untouched.
func (v *View) Reserve(id int) bool {
	return Reserve(v.stations, id)
}

// Cancel cancels the reservation of a displayed station. The message is left untouched.
func (v *View) Cancel(id int) bool {
	return Cancel(v.stations, id)
}

// Snapshot returns a copy of the current state.
func (v *View) Snapshot() Snapshot {
	stations := make([]Displayed, len(v.stations))
	copy(stations, v.stations)

	return Snapshot{
		Query:    v.query,
		Stations: stations,
		Message:  v.message,
	}
}

func fresh(records []Record) []Displayed {
	out := make([]Displayed, len(records))
	for i, r := range records {
		out[i] = Displayed{Record: r}
	}
	return out
}
