package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mitchelldurbincs/openhex/internal/game/core"
)

// ErrInvalid wraps every validation failure of a scenario document
var ErrInvalid = errors.New("invalid scenario")

// Scenario is a hand-authored starting position
type Scenario struct {
	Name          string        `yaml:"name"`
	Players       int           `yaml:"players"`
	CurrentPlayer int           `yaml:"current_player"`
	Turn          int           `yaml:"turn"`
	Hexes         []HexSpec     `yaml:"hexes"`
	Kingdoms      []KingdomSpec `yaml:"kingdoms,omitempty"`
}

// HexSpec describes one land hex. A missing owner leaves the hex unowned.
type HexSpec struct {
	Q      int    `yaml:"q"`
	R      int    `yaml:"r"`
	Owner  *int   `yaml:"owner,omitempty"`
	Entity string `yaml:"entity,omitempty"`
	Level  int    `yaml:"level,omitempty"`
	Played bool   `yaml:"played,omitempty"`
}

// KingdomSpec lists the hexes of a kingdom as [q, r] pairs. The id only
// names the kingdom inside the document.
type KingdomSpec struct {
	ID     int      `yaml:"id"`
	Player int      `yaml:"player"`
	Gold   int      `yaml:"gold"`
	Hexes  [][2]int `yaml:"hexes"`
}

// Load decodes and validates a scenario document. Unknown fields are
// rejected.
func Load(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads a scenario from path
func LoadFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks the document without building a world. Kingdom
// connectivity needs the world and is checked by World.
func (s *Scenario) Validate() error {
	if s.Players < 1 {
		return invalid("players must be positive, got %d", s.Players)
	}
	if s.CurrentPlayer < 0 || s.CurrentPlayer >= s.Players {
		return invalid("current_player %d out of range", s.CurrentPlayer)
	}
	if s.Turn < 0 {
		return invalid("negative turn %d", s.Turn)
	}

	owners := make(map[core.HexCoord]int, len(s.Hexes))
	for _, h := range s.Hexes {
		c := core.NewHexCoord(h.Q, h.R)
		if _, dup := owners[c]; dup {
			return invalid("duplicate hex %v", c)
		}
		owner := int(core.NoPlayer)
		if h.Owner != nil {
			owner = *h.Owner
			if owner < 0 || owner >= s.Players {
				return invalid("hex %v owner %d out of range", c, owner)
			}
		}
		owners[c] = owner
		if _, err := h.entity(); err != nil {
			return invalid("hex %v: %v", c, err)
		}
	}

	claimed := make(map[core.HexCoord]int)
	ids := make(map[int]bool, len(s.Kingdoms))
	for _, k := range s.Kingdoms {
		if ids[k.ID] {
			return invalid("duplicate kingdom id %d", k.ID)
		}
		ids[k.ID] = true
		if len(k.Hexes) < 2 {
			return invalid("kingdom %d needs at least two hexes", k.ID)
		}
		if k.Gold < 0 {
			return invalid("kingdom %d has negative gold", k.ID)
		}
		for _, pair := range k.Hexes {
			c := core.NewHexCoord(pair[0], pair[1])
			owner, ok := owners[c]
			if !ok {
				return invalid("kingdom %d lists unknown hex %v", k.ID, c)
			}
			if owner != k.Player {
				return invalid("kingdom %d of player %d lists hex %v owned by %d", k.ID, k.Player, c, owner)
			}
			if other, taken := claimed[c]; taken {
				return invalid("hex %v belongs to kingdoms %d and %d", c, other, k.ID)
			}
			claimed[c] = k.ID
		}
	}
	return nil
}

func (h HexSpec) entity() (core.Entity, error) {
	switch strings.ToLower(h.Entity) {
	case "", "empty":
		return core.Empty, nil
	case "capital":
		return core.NewCapital(), nil
	case "tower":
		return core.NewTower(), nil
	case "grave":
		return core.NewGrave(), nil
	case "tree":
		// the kind depends on the coast and is filled in by World
		return core.Entity{Kind: core.EntityTree}, nil
	case "unit":
		if h.Level < 1 || h.Level > core.DefaultRules().UnitMaxLevel {
			return core.Empty, fmt.Errorf("unit level %d out of range", h.Level)
		}
		return core.NewUnit(h.Level).WithPlayed(h.Played), nil
	default:
		return core.Empty, fmt.Errorf("unknown entity %q", h.Entity)
	}
}

// World builds the scenario's world. Without a kingdoms section every
// same-owner group of two or more hexes becomes a kingdom with no gold.
func (s *Scenario) World() (*core.World, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	coords := make([]core.HexCoord, len(s.Hexes))
	for i, h := range s.Hexes {
		coords[i] = core.NewHexCoord(h.Q, h.R)
	}
	w, err := core.NewWorld(coords)
	if err != nil {
		return nil, err
	}
	w.SetTurn(s.Turn)

	for i, h := range s.Hexes {
		c := coords[i]
		if h.Owner != nil {
			w.SetOwner(c, core.PlayerID(*h.Owner))
		}
		e, _ := h.entity()
		if e.IsTree() {
			e = core.NewTree(w.TreeKindAt(c))
		}
		w.SetEntity(c, e)
	}

	if len(s.Kingdoms) == 0 {
		w.FormKingdoms()
		return w, nil
	}
	for _, spec := range s.Kingdoms {
		k := w.NewKingdom(core.PlayerID(spec.Player), spec.Gold)
		for _, pair := range spec.Hexes {
			w.SetKingdom(core.NewHexCoord(pair[0], pair[1]), k.ID())
		}
		if !k.IsConnected(w) {
			return nil, invalid("kingdom %d is not connected", spec.ID)
		}
	}
	return w, nil
}

// FirstPlayer is the index into the turn order of the player who moves
// first
func (s *Scenario) FirstPlayer() core.PlayerID {
	return core.PlayerID(s.CurrentPlayer)
}
