package entity

const (
	PvPMode     = "pvp"
	WithBotMode = "bot"

	RandomStrategy  = "random"
	OptimalStrategy = "optimal"
)

type Scoreboard struct {
	XWins int `json:"x_wins"`
	OWins int `json:"o_wins"`
	Draws int `json:"draws"`
}

// Record tallies a finished round by its winner mark.
func (that *Scoreboard) Record(winner string) {
	switch winner {
	case PlayerX:
		that.XWins++
	case PlayerO:
		that.OWins++
	case PlayerTie:
		that.Draws++
	}
}

// Unrecord takes a tallied result back, for when the finishing move is undone.
func (that *Scoreboard) Unrecord(winner string) {
	switch {
	case winner == PlayerX && that.XWins > 0:
		that.XWins--
	case winner == PlayerO && that.OWins > 0:
		that.OWins--
	case winner == PlayerTie && that.Draws > 0:
		that.Draws--
	}
}

// Session is one sitting of play: the players, the game on the table and the
// running score across rounds.
type Session struct {
	ID         string     `json:"id"`
	Mode       string     `json:"mode"`
	Strategy   string     `json:"strategy,omitempty"`
	Players    []*Player  `json:"players"`
	Game       *Game      `json:"game"`
	Scoreboard Scoreboard `json:"scoreboard"`
}

func (that *Session) IsWithBot() bool {
	return that.Mode == WithBotMode
}

func (that *Session) BotPlayer() *Player {
	for _, player := range that.Players {
		if player.IsBot() {
			return player
		}
	}
	return nil
}

func (that *Session) PlayerByMark(mark string) *Player {
	for _, player := range that.Players {
		if player.Mark == mark {
			return player
		}
	}
	return nil
}

// StartNextRound resets the board and keeps the tally. The loser of the
// previous round starts; after a draw the start alternates.
func (that *Session) StartNextRound() {
	that.Game = NewGame(that.nextStarter())
}

func (that *Session) nextStarter() string {
	prev := that.Game
	if prev == nil {
		return PlayerX
	}

	switch prev.Winner {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		if prev.Starter == PlayerX {
			return PlayerO
		}
		return PlayerX
	}
}
