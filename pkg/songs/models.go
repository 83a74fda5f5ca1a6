package songs

// Song is the canonical song entry: title-level metadata plus the ordered
// lyric sections the bulletin prints.
type Song struct {
	ID           int64     `json:"-"`
	Title        string    `json:"title"`
	HymnalNumber string    `json:"hymnal_number,omitempty"`
	HymnalName   string    `json:"hymnal_name,omitempty"`
	TuneName     string    `json:"tune_name,omitempty"`
	Note         string    `json:"note,omitempty"`
	Service      string    `json:"service,omitempty"` // corpus of origin, e.g. "9am"
	Sections     []Section `json:"sections"`
}

// Section is one verse or chorus block.
type Section struct {
	Type  string   `json:"type"` // "verse" or "chorus"
	Lines []string `json:"lines"`
}
