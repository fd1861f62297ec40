package model

// rarityOrder is the search order for candidate actions: the captured
// rarity first, then the lower ones, then the higher ones.
func rarityOrder(r Rarity) []Rarity {
	order := []Rarity{r}
	for lower := int(r) - 1; lower >= int(Common); lower-- {
		order = append(order, Rarity(lower))
	}
	for higher := int(r) + 1; higher <= int(Legendary); higher++ {
		order = append(order, Rarity(higher))
	}
	return order
}

// candidates draws two distinct actions the active player could actually
// carry out, preferring the captured rarity. It returns nil when fewer than
// two exist.
func (g *Game) candidates(r Rarity) []PowerAction {
	var out []PowerAction
	for _, rarity := range rarityOrder(r) {
		ids := actionsByRarity[rarity]
		for _, i := range g.rng.Perm(len(ids)) {
			a := g.newAction(ids[i], g.active, g.whereCaptured)
			if !hasValidInput(a) {
				continue
			}
			out = append(out, a)
			if len(out) == 2 {
				return out
			}
		}
	}
	return nil
}

// hasValidInput reports whether any input at all satisfies a.
func hasValidInput(a PowerAction) bool {
	switch a.FollowUp() {
	case FollowUpNone:
		return a.ValidInput(NoFollowUp())
	case FollowUpLocation:
		for _, loc := range allLocations() {
			if a.ValidInput(LocationFollowUp(loc)) {
				return true
			}
		}
	case FollowUpMove:
		for _, from := range allLocations() {
			for _, to := range allLocations() {
				if a.ValidInput(MoveFollowUp(Move{Start: from, End: to})) {
					return true
				}
			}
		}
	}
	return false
}

func allLocations() []Location {
	out := make([]Location, 0, BoardSize*BoardSize)
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			out = append(out, Location{Row: row, Col: col})
		}
	}
	return out
}

// spawnPowerObject may drop a new power object on a free cell of the middle
// rows, subject to the spawn chance and the cap on objects in play.
func (g *Game) spawnPowerObject() {
	s := g.settings
	if s.SpawnChance <= 0 || len(g.board.PowerObjects()) >= s.MaxPowerObjects {
		return
	}
	if g.rng.Float64() >= s.SpawnChance {
		return
	}
	var free []Location
	for row := 2; row < BoardSize-2; row++ {
		for col := 0; col < BoardSize; col++ {
			loc := Location{Row: row, Col: col}
			if g.board.vacant(loc) {
				free = append(free, loc)
			}
		}
	}
	if len(free) == 0 {
		return
	}
	o := NewPowerObject(g.rollRarity(), free[g.rng.Intn(len(free))])
	if err := g.board.PlacePowerObject(o); err != nil {
		g.log.Warnw("power object spawn failed", "game", g.ID, "error", err)
		return
	}
	g.spawned[o] = o.at
	g.log.Debugw("power object spawned", "game", g.ID, "at", o.at.String(), "rarity", o.rarity)
}

func (g *Game) rollRarity() Rarity {
	total := 0
	for _, w := range g.settings.RarityWeights {
		total += w
	}
	if total <= 0 {
		return Common
	}
	n := g.rng.Intn(total)
	for i, w := range g.settings.RarityWeights {
		if n < w {
			return rarities[i]
		}
		n -= w
	}
	return Common
}
