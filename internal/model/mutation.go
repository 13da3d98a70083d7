package model

// Mutation is one recognized change to a player record. The API boundary
// decodes request fields into these variants, so unknown fields are
// rejected there instead of being silently dropped.
type Mutation interface {
	apply(p *Player)
}

// SetBalance replaces one coin balance (clamped to zero)
type SetBalance struct {
	Coin   CoinID
	Amount float64
}

func (m SetBalance) apply(p *Player) {
	p.SetBalance(m.Coin, m.Amount)
}

// AddBalance adds a delta to one coin balance (floored at zero, so a
// large negative delta empties the balance rather than erroring)
type AddBalance struct {
	Coin  CoinID
	Delta float64
}

func (m AddBalance) apply(p *Player) {
	p.AddBalance(m.Coin, m.Delta)
}

// SetInventory replaces the inventory wholesale
type SetInventory struct {
	Items []InventoryItem
}

func (m SetInventory) apply(p *Player) {
	if m.Items == nil {
		p.Inventory = []InventoryItem{}
		return
	}
	p.Inventory = m.Items
}

// SetScores replaces the whole score map. This bypasses the
// overwrite-if-greater rule on purpose: it is the admin escape hatch for
// bulk correction. Gameplay reporting must go through UpdateScore.
type SetScores struct {
	Scores map[string]float64
}

func (m SetScores) apply(p *Player) {
	if m.Scores == nil {
		p.Scores = make(map[string]float64)
		return
	}
	p.Scores = m.Scores
}

// SetCompleted sets one minigame completion flag
type SetCompleted struct {
	Game MinigameID
	Done bool
}

func (m SetCompleted) apply(p *Player) {
	p.Completed[m.Game] = m.Done
}

// SetScrapOwned sets one scrap ownership flag
type SetScrapOwned struct {
	Game  MinigameID
	Owned bool
}

func (m SetScrapOwned) apply(p *Player) {
	p.ScrapOwned[m.Game] = m.Owned
}

// SetSeenIntro records whether the player has seen the intro
type SetSeenIntro struct {
	Seen bool
}

func (m SetSeenIntro) apply(p *Player) {
	p.HasSeenIntro = m.Seen
}

// Apply applies each mutation in order and rederives CompletedAll.
// Mutations are independent: there is no rollback of earlier ones.
func Apply(p *Player, mutations []Mutation) {
	for _, m := range mutations {
		m.apply(p)
	}
	p.RecomputeCompletedAll()
}
