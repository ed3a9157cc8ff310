package queries

import (
	"github.com/DedS3t/monopoly-ledger/app/models"
	"github.com/go-pg/pg/v10"
)

func VerifyGame(id string, db *pg.DB) bool {
	game := &models.Game{Id: id}
	err := db.Model(game).WherePK().Select()
	return err == nil
}

func GetUserData(userID string, db *pg.DB) (*models.User, error) {
	user := &models.User{Id: userID}
	if err := db.Model(user).WherePK().Select(); err != nil {
		return nil, err
	}
	return user, nil
}

func CreatePlayer(player models.Player, db *pg.DB) error {
	_, err := db.Model(&player).Insert()
	return err
}

func DeletePlayer(userID, gameID string, db *pg.DB) error {
	player := new(models.Player)
	_, err := db.Model(player).Where("user_id = ? and game_id = ?", userID, gameID).Delete()
	return err
}

// GetPlayers returns the seated players of a game in seating order.
func GetPlayers(gameID string, db *pg.DB) ([]models.Player, error) {
	var players []models.Player
	err := db.Model(&players).Where("game_id = ?", gameID).Order("seat ASC").Select()
	return players, err
}

func SetGameStatus(gameID, status string, db *pg.DB) error {
	game := &models.Game{Id: gameID}
	_, err := db.Model(game).WherePK().Set("status = ?", status).Update()
	return err
}

// SetWinner records the outcome and closes the game record.
func SetWinner(gameID, winner string, db *pg.DB) error {
	game := &models.Game{Id: gameID}
	_, err := db.Model(game).WherePK().
		Set("status = ?", "finished").
		Set("winner = ?", winner).
		Update()
	return err
}

// CleanUpGame removes the seat rows once a game is finished. The game
// row stays behind with its status and winner.
func CleanUpGame(gameID string, db *pg.DB) {
	player := new(models.Player)
	db.Model(player).Where("game_id = ?", gameID).Delete()
}
