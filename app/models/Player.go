package models

// Player is the lobby record, one row per seat. The in-game turn state
// lives in platform/engine.
type Player struct {
	User_id  string
	Game_id  string
	Username string
	Seat     int
}

type PlayerDto struct {
	Username string `json:"username"`
	Balance  int    `json:"balance"`
	Pos      int    `json:"pos"`
	Jail     bool   `json:"jail"`
	Bankrupt bool   `json:"bankrupt"`
}
