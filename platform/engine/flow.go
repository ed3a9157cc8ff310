package engine

// NextPlayer returns the next non-bankrupt player in seating order
// after current, or nil when nobody else is standing.
func (g *Game) NextPlayer(current *Player) *Player {
	start := 0
	for i, p := range g.Players {
		if p == current {
			start = i
			break
		}
	}
	for offset := 1; offset <= len(g.Players); offset++ {
		p := g.Players[(start+offset)%len(g.Players)]
		if p.State == Active {
			return p
		}
	}
	return nil
}

// GameOver reports whether exactly one player is left standing.
func (g *Game) GameOver() bool {
	active := 0
	for _, p := range g.Players {
		if p.State == Active {
			active++
		}
	}
	return active <= 1
}

// Winner returns the last active player once the game is over.
func (g *Game) Winner() *Player {
	if !g.GameOver() {
		return nil
	}
	for _, p := range g.Players {
		if p.State == Active {
			return p
		}
	}
	return nil
}

// HaltWinner ranks the active players by total asset value for an early
// halt. The second return is false on a tie, the caller decides what a
// tie means.
func (g *Game) HaltWinner() (*Player, bool, error) {
	var winner *Player
	highest := -1
	tied := false
	for _, p := range g.Players {
		if p.State != Active {
			continue
		}
		assets, err := g.TotalAssetValue(p)
		if err != nil {
			return nil, false, err
		}
		if assets > highest {
			winner = p
			highest = assets
			tied = false
		} else if assets == highest {
			tied = true
		}
	}
	if winner == nil || tied {
		return nil, false, nil
	}
	return winner, true, nil
}

// Play serves turns round-robin with the given decider until one player
// remains or maxTurns runs out. Returns the winner, or nil when the cap
// was hit first.
func (g *Game) Play(d Decider, maxTurns int) (*Player, error) {
	current := g.Players[0]
	for turn := 0; turn < maxTurns; turn++ {
		if g.GameOver() {
			break
		}
		if err := g.ServeTurn(current, d); err != nil {
			return nil, err
		}
		current = g.NextPlayer(current)
		if current == nil {
			break
		}
	}
	return g.Winner(), nil
}
