package game

import "fmt"

const (
	AreasEvaluation   = "areas"
	RegionsEvaluation = "regions"
	BorderEvaluation  = "border"
)

var evaluations = map[string]Evaluate{
	AreasEvaluation:   EvaluateAreas,
	RegionsEvaluation: EvaluateRegions,
	BorderEvaluation:  EvaluateBorderStrength,
}

// EvaluationByName returns the evaluation function registered under name.
func EvaluationByName(name string) (Evaluate, error) {
	evaluate, ok := evaluations[name]
	if !ok {
		return nil, fmt.Errorf("unknown evaluation %q", name)
	}
	return evaluate, nil
}

// IsConstantSum reports whether the entries of the named evaluation always add up to the
// number of areas, which alpha-beta pruning relies on.
func IsConstantSum(name string) bool {
	return name == AreasEvaluation
}

// EvaluateAreas simply tallies the number of areas each player controls.
// The entries always sum to the number of areas on the board.
func EvaluateAreas(b BoardView) []float64 {
	players := b.Players()
	scores := make([]float64, len(players))
	for i, player := range players {
		scores[i] = float64(len(b.PlayerAreas(player)))
	}
	return scores
}

// EvaluateRegions scores each player by their controlled areas plus the size of their largest
// connected region, which is what their end-of-turn reinforcement depends on.
func EvaluateRegions(b BoardView) []float64 {
	players := b.Players()
	scores := make([]float64, len(players))
	for i, player := range players {
		scores[i] = float64(len(b.PlayerAreas(player))) + float64(LargestRegion(b, player))
	}
	return scores
}

// EvaluateBorderStrength adds to the area count how well each player's border areas hold up
// against their strongest enemy neighbour, scaled to at most one point per border area.
func EvaluateBorderStrength(b BoardView) []float64 {
	players := b.Players()
	scores := make([]float64, len(players))
	for i, player := range players {
		score := float64(len(b.PlayerAreas(player)))
		for _, id := range b.PlayerBorder(player) {
			strongest := 0
			for _, adj := range b.Adjacent(id) {
				if b.Owner(adj) != player && b.Dice(adj) > strongest {
					strongest = b.Dice(adj)
				}
			}
			// Troop difference mimics the line of attack, in [-7, 7]
			score += float64(b.Dice(id)-strongest) / float64(2*(MaxDice-1))
		}
		scores[i] = score
	}
	return scores
}

// LargestRegion returns the size of the player's largest connected group of areas.
func LargestRegion(b BoardView, player int) int {
	visited := make(map[int]bool)
	largest := 0
	for _, id := range b.PlayerAreas(player) {
		if visited[id] {
			continue
		}
		if size := dfs(b, id, player, visited); size > largest {
			largest = size
		}
	}
	return largest
}

// dfs returns the size of the connected component of player's areas containing start
func dfs(b BoardView, start, player int, visited map[int]bool) int {
	if visited[start] {
		return 0
	}
	visited[start] = true

	size := 1
	for _, neighbor := range b.Adjacent(start) {
		if b.Owner(neighbor) == player {
			size += dfs(b, neighbor, player, visited)
		}
	}
	return size
}
