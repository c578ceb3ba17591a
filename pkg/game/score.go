package game

// linePoints is the base score for clearing 1, 2, 3 or 4 rows in one lock.
var linePoints = [...]int{40, 100, 300, 1200}

// pointsFor returns the base points for a lock that cleared n rows. Clears
// beyond the table score as the largest entry.
func pointsFor(n int) int {
	if n <= 0 {
		return 0
	}
	if n > len(linePoints) {
		n = len(linePoints)
	}
	return linePoints[n-1]
}

// LevelFor derives the level from a cumulative score.
func LevelFor(score int) int {
	return score/1000 + 1
}
