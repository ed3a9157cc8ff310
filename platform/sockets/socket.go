package socket

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/DedS3t/monopoly-ledger/app/models"
	"github.com/DedS3t/monopoly-ledger/platform/board"
	"github.com/DedS3t/monopoly-ledger/platform/cache"
	"github.com/DedS3t/monopoly-ledger/platform/database"
	"github.com/DedS3t/monopoly-ledger/platform/draw"
	"github.com/DedS3t/monopoly-ledger/platform/engine"
	"github.com/DedS3t/monopoly-ledger/platform/ledger"
	"github.com/DedS3t/monopoly-ledger/platform/logging"
	"github.com/DedS3t/monopoly-ledger/platform/queries"
	"github.com/go-pg/pg/v10"
	socketio "github.com/googollee/go-socket.io"
	"github.com/gomodule/redigo/redis"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const bankAccount = ledger.Account("banker")

// session is one running game. The engine is single threaded per game,
// the mutex serializes the socket events that drive it.
type session struct {
	mu      sync.Mutex
	game    *engine.Game
	players map[string]*engine.Player // user id -> seat
	current *engine.Player
	rolled  bool
}

func (s *session) playerOf(userID string) *engine.Player {
	return s.players[userID]
}

type registry struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func (r *registry) get(gameID string) *session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[gameID]
}

func (r *registry) put(gameID string, s *session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[gameID] = s
}

func (r *registry) drop(gameID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, gameID)
}

type actionPayload struct {
	GameID   string `json:"game_id"`
	UserID   string `json:"user_id"`
	CardPos  int    `json:"card_pos"`
	Amount   int    `json:"amount"`
	BuyerID  string `json:"buyer_id"`
	Price    int    `json:"price"`
	Accepted bool   `json:"accepted"`

	Decisions engine.TurnDecisions `json:"decisions"`
}

func CreateSocketIOServer() {
	server, err := socketio.NewServer(nil)
	if err != nil {
		panic(err)
	}
	db := database.PostgreSQLConnection()
	defer db.Close()

	pool := cache.CreateRedisPool()
	defer pool.Close()

	games := &registry{sessions: map[string]*session{}}
	gameBoard := board.Load("platform/board/spaces.json")

	server.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext("")
		return nil
	})

	server.OnEvent("/", "join-game", func(s socketio.Conn, jsonStr string) {
		var payload actionPayload
		json.Unmarshal([]byte(jsonStr), &payload)

		if payload.GameID == "" || !queries.VerifyGame(payload.GameID, db) {
			s.Emit("error-message", "Invalid game")
			s.Emit("failed")
			return
		}
		if payload.UserID == "" {
			s.Emit("error-message", "User not authenticated")
			s.Emit("failed")
			return
		}
		user, err := queries.GetUserData(payload.UserID, db)
		if err != nil {
			s.Emit("error-message", "User retrieval failed")
			s.Emit("failed")
			return
		}
		err = queries.CreatePlayer(models.Player{
			Game_id:  payload.GameID,
			User_id:  payload.UserID,
			Username: user.Email,
			Seat:     server.RoomLen("/", payload.GameID),
		}, db)
		if err != nil {
			s.Emit("error-message", "Failed creating player")
			s.Emit("failed")
			return
		}

		server.BroadcastToRoom("/", payload.GameID, "player-join")
		s.Join(payload.GameID)
		s.Emit("joined-game")
	})

	server.OnEvent("/", "leave-game", func(s socketio.Conn, jsonStr string) {
		var payload actionPayload
		json.Unmarshal([]byte(jsonStr), &payload)

		s.Leave(payload.GameID)
		queries.DeletePlayer(payload.UserID, payload.GameID, db)
		server.BroadcastToRoom("/", payload.GameID, "player-left")
	})

	server.OnEvent("/", "start-game", func(s socketio.Conn, gameID string) {
		if games.get(gameID) != nil {
			s.Emit("error-message", "Game already running")
			return
		}
		rows, err := queries.GetPlayers(gameID, db)
		if err != nil || len(rows) <= 1 {
			s.Emit("error-message", "Unable to start game")
			return
		}

		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		decks := draw.Load("platform/draw/cards.json", rng)
		ldgr := ledger.NewRedis(pool, gameID, bankAccount)

		sess := &session{players: map[string]*engine.Player{}}
		var seats []*engine.Player
		for _, row := range rows {
			p := engine.NewPlayer(row.Username, ledger.Account(row.User_id))
			sess.players[row.User_id] = p
			seats = append(seats, p)
		}

		game, err := engine.New(gameBoard, decks, ldgr, bankAccount, seats, rng, logging.ForGame(gameID))
		if err != nil {
			logrus.WithError(err).Error("ledger init failed")
			s.Emit("error-message", "Unable to start game")
			return
		}
		game.OnEvent = func(kind string, data map[string]interface{}) {
			eventJSON, err := json.Marshal(data)
			if err != nil {
				return
			}
			server.BroadcastToRoom("/", gameID, kind, string(eventJSON))
		}
		sess.game = game
		sess.current = seats[0]
		games.put(gameID, sess)

		queries.SetGameStatus(gameID, "in progress", db)
		rowsJSON, _ := json.Marshal(rows)
		server.BroadcastToRoom("/", gameID, "game-start", string(rowsJSON))
		server.BroadcastToRoom("/", gameID, "change-turn", rows[0].User_id)
	})

	server.OnEvent("/", "roll-dice", func(s socketio.Conn, jsonStr string) {
		var payload actionPayload
		json.Unmarshal([]byte(jsonStr), &payload)

		sess := games.get(payload.GameID)
		if sess == nil {
			s.Emit("error-message", "Game not running")
			return
		}
		sess.mu.Lock()
		defer sess.mu.Unlock()

		player := sess.playerOf(payload.UserID)
		if player == nil || player != sess.current {
			s.Emit("error-message", "Not your turn")
			return
		}
		if sess.rolled {
			s.Emit("error-message", "You have already rolled the dice")
			return
		}
		decisions := payload.Decisions
		if err := sess.game.ServeTurn(player, &decisions); err != nil {
			logrus.WithError(err).Error("turn failed")
			s.Emit("error-message", "Ledger unavailable, try again")
			return
		}
		sess.rolled = true
		broadcastState(server, payload.GameID, sess)

		if sess.game.GameOver() {
			finishGame(server, games, pool, db, payload.GameID, sess)
		}
	})

	server.OnEvent("/", "end-turn", func(s socketio.Conn, jsonStr string) {
		var payload actionPayload
		json.Unmarshal([]byte(jsonStr), &payload)

		sess := games.get(payload.GameID)
		if sess == nil {
			s.Emit("error-message", "Game not running")
			return
		}
		sess.mu.Lock()
		defer sess.mu.Unlock()

		player := sess.playerOf(payload.UserID)
		if player == nil || player != sess.current {
			s.Emit("error-message", "Not your turn")
			return
		}
		if !sess.rolled {
			s.Emit("error-message", "You must roll the dice first!")
			return
		}
		next := sess.game.NextPlayer(player)
		if next == nil {
			finishGame(server, games, pool, db, payload.GameID, sess)
			return
		}
		sess.current = next
		sess.rolled = false
		server.BroadcastToRoom("/", payload.GameID, "change-turn", userOf(sess, next))
	})

	propertyAction := func(s socketio.Conn, jsonStr string, action func(sess *session, p *engine.Player, payload actionPayload) error) {
		var payload actionPayload
		json.Unmarshal([]byte(jsonStr), &payload)

		sess := games.get(payload.GameID)
		if sess == nil {
			s.Emit("error-message", "Game not running")
			return
		}
		sess.mu.Lock()
		defer sess.mu.Unlock()

		player := sess.playerOf(payload.UserID)
		if player == nil || player != sess.current {
			s.Emit("error-message", "Not your turn")
			return
		}
		if err := action(sess, player, payload); err != nil {
			s.Emit("error-message", err.Error())
		}
	}

	server.OnEvent("/", "buy-house", func(s socketio.Conn, jsonStr string) {
		propertyAction(s, jsonStr, func(sess *session, p *engine.Player, payload actionPayload) error {
			return sess.game.BuyHousesAt(p, payload.CardPos, payload.Amount)
		})
	})

	server.OnEvent("/", "buy-hotel", func(s socketio.Conn, jsonStr string) {
		propertyAction(s, jsonStr, func(sess *session, p *engine.Player, payload actionPayload) error {
			return sess.game.BuyHotelAt(p, payload.CardPos)
		})
	})

	server.OnEvent("/", "sell-house", func(s socketio.Conn, jsonStr string) {
		propertyAction(s, jsonStr, func(sess *session, p *engine.Player, payload actionPayload) error {
			return sess.game.SellHousesAt(p, payload.CardPos, payload.Amount)
		})
	})

	server.OnEvent("/", "sell-hotel", func(s socketio.Conn, jsonStr string) {
		propertyAction(s, jsonStr, func(sess *session, p *engine.Player, payload actionPayload) error {
			return sess.game.SellHotelAt(p, payload.CardPos)
		})
	})

	server.OnEvent("/", "mortgage", func(s socketio.Conn, jsonStr string) {
		propertyAction(s, jsonStr, func(sess *session, p *engine.Player, payload actionPayload) error {
			return sess.game.MortgageAt(p, payload.CardPos)
		})
	})

	server.OnEvent("/", "unmortgage", func(s socketio.Conn, jsonStr string) {
		propertyAction(s, jsonStr, func(sess *session, p *engine.Player, payload actionPayload) error {
			return sess.game.UnMortgageAt(p, payload.CardPos)
		})
	})

	server.OnEvent("/", "trade", func(s socketio.Conn, jsonStr string) {
		propertyAction(s, jsonStr, func(sess *session, p *engine.Player, payload actionPayload) error {
			buyer := sess.playerOf(payload.BuyerID)
			if buyer == nil {
				return engine.ErrInvalidCommand
			}
			return sess.game.Trade(p, buyer, payload.CardPos, payload.Price, payload.Accepted)
		})
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		logrus.WithError(e).Error("socket error")
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		rooms := s.Rooms()
		for _, room := range rooms {
			server.BroadcastToRoom("/", room, "player-left")
		}
		s.LeaveAll()
	})

	go server.Serve()
	defer server.Close()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
	})

	mux := http.NewServeMux()
	mux.Handle("/socket.io/", server)
	http.ListenAndServe(":8000", c.Handler(mux))
}

// broadcastState pushes every seat's balance and board state to the
// room after a turn resolves.
func broadcastState(server *socketio.Server, gameID string, sess *session) {
	dtos := make([]models.PlayerDto, 0, len(sess.game.Players))
	for _, p := range sess.game.Players {
		balance, err := sess.game.Ledger.BalanceOf(p.Account)
		if err != nil {
			logrus.WithError(err).Error("state broadcast failed")
			return
		}
		dtos = append(dtos, models.PlayerDto{
			Username: p.Name,
			Balance:  balance,
			Pos:      p.Position,
			Jail:     p.InJail,
			Bankrupt: p.State == engine.Bankrupt,
		})
	}
	stateJSON, err := json.Marshal(dtos)
	if err != nil {
		return
	}
	server.BroadcastToRoom("/", gameID, "game-state", string(stateJSON))
}

func userOf(sess *session, p *engine.Player) string {
	for userID, player := range sess.players {
		if player == p {
			return userID
		}
	}
	return ""
}

// finishGame persists the winner and drops the game's ledger keys.
func finishGame(server *socketio.Server, games *registry, pool *redis.Pool, db *pg.DB, gameID string, sess *session) {
	winner := sess.game.Winner()
	name := ""
	if winner != nil {
		name = winner.Name
	}
	queries.SetWinner(gameID, name, db)
	queries.CleanUpGame(gameID, db)
	server.BroadcastToRoom("/", gameID, "game-over", name)
	games.drop(gameID)

	conn := pool.Get()
	defer conn.Close()
	keys, err := cache.KeysByPattern(gameID+".*", &conn)
	if err != nil {
		return
	}
	for _, key := range keys {
		cache.Del(key, &conn)
	}
}
