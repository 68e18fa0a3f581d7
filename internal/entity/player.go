package entity

const (
	HumanKind = "human"
	BotKind   = "bot"

	BotName = "Computer"
)

type Player struct {
	Name string `json:"name"`
	Mark string `json:"mark,omitempty"`
	Kind string `json:"kind"`
}

func NewHumanPlayer(name, mark string) *Player {
	return &Player{Name: name, Mark: mark, Kind: HumanKind}
}

func NewBotPlayer(mark string) *Player {
	return &Player{Name: BotName, Mark: mark, Kind: BotKind}
}

func (that *Player) IsBot() bool {
	return that.Kind == BotKind
}
