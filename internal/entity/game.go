package entity

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

// Solution is the optimal reply for a board. Action is nil when the board is terminal.
type Solution struct {
	Board  Board   `json:"board"`
	Player Mark    `json:"player"`
	Action *Action `json:"action"`
	Value  int     `json:"value"`
	Nodes  int64   `json:"nodes,omitempty"`
}

// Position describes a board as the rules engine sees it.
type Position struct {
	Board    Board     `json:"board"`
	Player   Mark      `json:"player"`
	Actions  []Action  `json:"actions"`
	Winner   Mark      `json:"winner"`
	Status   string    `json:"status"`
	Utility  *int      `json:"utility,omitempty"`
	Solution *Solution `json:"solution,omitempty"`
}

func (that *Position) IsFinished() bool {
	return that.Status == StatusFinished
}

// TurnResult is the board after a caller's action and, if the game went on, the bot's reply.
type TurnResult struct {
	Board     Board   `json:"board"`
	Action    Action  `json:"action"`
	BotAction *Action `json:"bot_action,omitempty"`
	Winner    Mark    `json:"winner"`
	Status    string  `json:"status"`
}

// Playout is a game played out by both sides choosing optimal actions.
type Playout struct {
	Start   Board    `json:"start"`
	Actions []Action `json:"actions"`
	Final   Board    `json:"final"`
	Winner  Mark     `json:"winner"`
	Utility int      `json:"utility"`
}
