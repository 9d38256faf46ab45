package models

// Station is a catalog entry.
type Station struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Status  string `json:"status"`
	ETA     string `json:"eta"`
}

// StationList is the full catalog.
type StationList struct {
	Items []Station `json:"items"`
	Total int       `json:"total"`
}

// Presentation tells the client how to render a displayed station.
type Presentation struct {
	Badge          string `json:"badge"`
	ReserveEnabled bool   `json:"reserveEnabled"`
	ReserveLabel   string `json:"reserveLabel"`
	ReserveTone    string `json:"reserveTone"`
	CancelVisible  bool   `json:"cancelVisible"`
	ETALabel       string `json:"etaLabel"`
}

// DisplayedStation is a station in a session view.
type DisplayedStation struct {
	Station
	Reserved     bool         `json:"reserved"`
	Presentation Presentation `json:"presentation"`
}

// View is the state of a session: last query, displayed stations, and the
// search feedback message when the last search matched nothing.
type View struct {
	Query    string             `json:"query"`
	Message  string             `json:"message,omitempty"`
	Stations []DisplayedStation `json:"stations"`
}

// SearchRequest is the body of POST /v1/session/search.
type SearchRequest struct {
	Query string `json:"query"`
}

// SessionCreated is returned by POST /v1/sessions.
type SessionCreated struct {
	Token     string    `json:"token"`
	ExpiresAt Timestamp `json:"expiresAt"`
	View      View      `json:"view"`
}
