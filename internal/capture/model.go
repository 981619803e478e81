package capture

// Record is one user's accumulated captures of a single species. The shiny
// flag is sticky: once a shiny has been caught, the record keeps the shiny
// presentation on later ordinary catches.
type Record struct {
	ID        int64
	UserID    int64
	Species   string
	ImageURL  string
	Shiny     bool
	Legendary bool
	Mythical  bool
	Count     int
}
