// meta/meta.go
package meta

// MAX_TRANSFERS is the server cap on transfers in a single turn.
const MAX_TRANSFERS = 6

// ATTACK_TRANSFERS is how much of the transfer cap attack helper chains may use.
const ATTACK_TRANSFERS = 4

// THREAT_MARGIN is how many dice an enemy may be ahead before it counts as a threat.
const THREAT_MARGIN = 1

// SEARCH_DEPTH is the number of simulated turns the tree search looks ahead.
const SEARCH_DEPTH = 3

// MAX_SIMULATED_ACTIONS caps the commands of one simulated turn.
const MAX_SIMULATED_ACTIONS = 128

// MAX_TURNS caps the length of a local game.
const MAX_TURNS = 300

// MAX_MOVES_PER_TURN caps the commands an agent may issue in one real turn.
const MAX_MOVES_PER_TURN = 200

// MAX_RESERVE caps the dice a player can bank when all their areas are full.
const MAX_RESERVE = 64
