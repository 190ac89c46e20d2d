package catalog

// Genre is the closed set of browse categories
type Genre string

const (
	GenreFiction    Genre = "fiction"
	GenreNonFiction Genre = "non-fiction"
	GenreMystery    Genre = "mystery"
	GenreSciFi      Genre = "scifi"
	GenreBiography  Genre = "biography"
	GenreHistory    Genre = "history"
	GenreChildren   Genre = "children"
	GenreCooking    Genre = "cooking"
	GenreArt        Genre = "art"
	GenreSelfHelp   Genre = "self-help"
	GenreOther      Genre = "other"
)

// AllGenres lists every genre in display order
func AllGenres() []Genre {
	return []Genre{
		GenreFiction, GenreNonFiction, GenreMystery, GenreSciFi,
		GenreBiography, GenreHistory, GenreChildren, GenreCooking,
		GenreArt, GenreSelfHelp, GenreOther,
	}
}

// IsValid checks if the genre is one of the known categories
func (g Genre) IsValid() bool {
	for _, known := range AllGenres() {
		if g == known {
			return true
		}
	}
	return false
}

// String returns the string representation of Genre
func (g Genre) String() string {
	return string(g)
}

// Condition is the closed set of used-book conditions a seller can declare
type Condition string

const (
	ConditionNew        Condition = "new"
	ConditionLikeNew    Condition = "like-new"
	ConditionVeryGood   Condition = "very-good"
	ConditionGood       Condition = "good"
	ConditionAcceptable Condition = "acceptable"
)

// AllConditions lists every condition from best to worst
func AllConditions() []Condition {
	return []Condition{
		ConditionNew, ConditionLikeNew, ConditionVeryGood,
		ConditionGood, ConditionAcceptable,
	}
}

// IsValid checks if the condition is one of the known grades
func (c Condition) IsValid() bool {
	for _, known := range AllConditions() {
		if c == known {
			return true
		}
	}
	return false
}

// String returns the string representation of Condition
func (c Condition) String() string {
	return string(c)
}
