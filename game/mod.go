package game

// Evaluate scores a position for every player, in the board's player order.
// The searcher compares entries of the returned vector by the deciding player's index.
type Evaluate func(BoardView) []float64
