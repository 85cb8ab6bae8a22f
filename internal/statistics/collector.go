package statistics

import "github.com/lox/holdem-cli/internal/match"

// Collector is a match.EventSubscriber tallying how hands and pots end.
// Collectors are not safe for concurrent use; give each match its own and
// Merge them afterwards.
type Collector struct {
	Hands       int
	Showdowns   int // hands with at least one pot shown down
	Uncontested int // pots won without a showdown
	SidePots    int // side pots awarded with chips in them
	Splits      int // pots shared by tied hands
	Eliminated  int

	// PotSizes holds every awarded pot in big blinds
	PotSizes Sample

	bigBlind int
	shown    bool
}

// NewCollector creates an empty collector
func NewCollector() *Collector {
	return &Collector{}
}

// OnEvent implements match.EventSubscriber
func (c *Collector) OnEvent(event match.Event) {
	switch e := event.(type) {
	case match.HandStartEvent:
		c.Hands++
		c.bigBlind = e.BigBlind
		c.shown = false
	case match.PotAwardedEvent:
		if e.Amount == 0 {
			return
		}
		if e.Pot > 0 {
			c.SidePots++
		}
		if len(e.Winners) > 1 {
			c.Splits++
		}
		if e.Showdown {
			if !c.shown {
				c.Showdowns++
				c.shown = true
			}
		} else {
			c.Uncontested++
		}
		if c.bigBlind > 0 {
			c.PotSizes.Add(float64(e.Amount) / float64(c.bigBlind))
		}
	case match.EliminatedEvent:
		c.Eliminated++
	}
}

// Merge folds other's counts into c
func (c *Collector) Merge(other *Collector) {
	c.Hands += other.Hands
	c.Showdowns += other.Showdowns
	c.Uncontested += other.Uncontested
	c.SidePots += other.SidePots
	c.Splits += other.Splits
	c.Eliminated += other.Eliminated
	c.PotSizes.Merge(&other.PotSizes)
}

// ShowdownRate is the share of hands that reached a showdown
func (c *Collector) ShowdownRate() float64 {
	if c.Hands == 0 {
		return 0
	}
	return float64(c.Showdowns) / float64(c.Hands)
}
