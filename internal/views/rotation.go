package views

import "fmt"

// Rotation is a generated station schedule. Groups holds the player ids per
// group; Schedule[r][s] is the index of the group at station s in round r.
// Rounds always equals the station count, so each group visits every station
// exactly once across the full schedule. A different round count would need
// a regenerated schedule.
type Rotation struct {
	Groups   [][]string `json:"groups"`
	Schedule [][]int    `json:"schedule"`
}

// GenerateRotation partitions players round-robin into numStations groups
// (index modulo station count) and builds the cyclic schedule
// schedule[r][s] = (s + r) mod numStations.
func GenerateRotation(playerIDs []string, numStations int) (*Rotation, error) {
	if numStations < 1 {
		return nil, fmt.Errorf("station count must be at least 1, got %d", numStations)
	}

	groups := make([][]string, numStations)
	for i := range groups {
		groups[i] = []string{}
	}
	for i, pid := range playerIDs {
		groups[i%numStations] = append(groups[i%numStations], pid)
	}

	schedule := make([][]int, numStations)
	for r := 0; r < numStations; r++ {
		row := make([]int, numStations)
		for s := 0; s < numStations; s++ {
			row[s] = (s + r) % numStations
		}
		schedule[r] = row
	}

	return &Rotation{Groups: groups, Schedule: schedule}, nil
}
