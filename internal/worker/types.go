package worker

// Worker is a personnel record as returned by the registry queries.
type Worker struct {
	Surname string `json:"surname" yaml:"surname"`
	Name    string `json:"name" yaml:"name"`
	Zodiac  string `json:"zodiac" yaml:"zodiac"`
	Year    int    `json:"year" yaml:"year"`
}

// LookupEntry is a row of the name lookup table.
// Refs counts the workers referencing it.
type LookupEntry struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Refs  int    `json:"refs"`
}
