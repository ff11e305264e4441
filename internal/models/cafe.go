package models

// Cafe is a single venue read from a cafe source.
type Cafe struct {
	Name        string      // Name is the display name of the cafe.
	Coordinates Coordinates // Coordinates is the location of the cafe.
}

// RankedCafe is a cafe annotated with its distance from the user.
type RankedCafe struct {
	Title       string      // Title is the display name of the cafe.
	Distance    float64     // Distance from the origin in kilometers.
	Coordinates Coordinates // Coordinates is the location of the cafe.
}
