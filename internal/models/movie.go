package models

// Movie mirrors a record of the movie catalog. Year is stored as text because
// the source catalog keeps it that way.
type Movie struct {
	ID     int      `json:"-"`
	Title  string   `json:"title"`
	Year   string   `json:"year"`
	Genres []string `json:"genres"`
}

// MovieSummary is a catalog record enriched with a generated plot summary.
type MovieSummary struct {
	Title   string `json:"title"`
	Year    string `json:"year"`
	Genres  string `json:"genres"`
	Summary string `json:"summary"`
}
