package scenario

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/openhex/internal/game/core"
	"github.com/mitchelldurbincs/openhex/internal/testutil"
)

func TestLoadFile(t *testing.T) {
	s, err := LoadFile("testdata/split-capture.yaml")
	require.NoError(t, err)

	assert.Equal(t, "split-capture", s.Name)
	assert.Equal(t, 2, s.Players)
	assert.Equal(t, core.PlayerID(0), s.FirstPlayer())
	assert.Len(t, s.Hexes, 8)
	assert.Len(t, s.Kingdoms, 2)

	w, err := s.World()
	require.NoError(t, err)
	testutil.AssertInvariants(t, w)

	assert.Equal(t, 1, w.Turn())
	assert.Equal(t, 8, w.Len())

	a := w.KingdomAt(core.NewHexCoord(0, 0))
	require.NotNil(t, a)
	assert.Equal(t, core.PlayerID(0), a.Player())
	assert.Equal(t, 20, a.Gold())
	assert.Equal(t, 3, a.Size())
	assert.Equal(t, core.NewUnit(2), w.Hex(core.NewHexCoord(2, 0)).Entity())

	b := w.KingdomAt(core.NewHexCoord(3, 1))
	require.NotNil(t, b)
	assert.Equal(t, 12, b.Gold())
	assert.Equal(t, 4, b.Size())

	tree := w.Hex(core.NewHexCoord(2, 1))
	assert.Equal(t, core.NoPlayer, tree.Owner())
	assert.Equal(t, core.NewTree(w.TreeKindAt(tree.Coord())), tree.Entity())
}

func TestWorld_FormsKingdomsWhenOmitted(t *testing.T) {
	doc := `
name: implicit
players: 2
hexes:
  - {q: 0, r: 0, owner: 0, entity: capital}
  - {q: 1, r: 0, owner: 0, entity: unit, level: 1, played: true}
  - {q: 2, r: 0, owner: 1}
`
	s, err := Load(strings.NewReader(doc))
	require.NoError(t, err)

	w, err := s.World()
	require.NoError(t, err)

	require.Len(t, w.Kingdoms(), 1)
	k := w.Kingdoms()[0]
	assert.Equal(t, 2, k.Size())
	assert.Equal(t, 0, k.Gold())
	assert.True(t, w.Hex(core.NewHexCoord(1, 0)).Entity().Played)
	assert.False(t, w.Hex(core.NewHexCoord(2, 0)).HasKingdom())
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "no players",
			doc:  "players: 0\nhexes: []\n",
		},
		{
			name: "current player out of range",
			doc:  "players: 2\ncurrent_player: 2\n",
		},
		{
			name: "duplicate hex",
			doc:  "players: 1\nhexes:\n  - {q: 0, r: 0}\n  - {q: 0, r: 0}\n",
		},
		{
			name: "owner out of range",
			doc:  "players: 2\nhexes:\n  - {q: 0, r: 0, owner: 3}\n",
		},
		{
			name: "unknown entity",
			doc:  "players: 1\nhexes:\n  - {q: 0, r: 0, entity: castle}\n",
		},
		{
			name: "unit without level",
			doc:  "players: 1\nhexes:\n  - {q: 0, r: 0, owner: 0, entity: unit}\n",
		},
		{
			name: "kingdom hex owned by someone else",
			doc: `players: 2
hexes:
  - {q: 0, r: 0, owner: 0}
  - {q: 1, r: 0, owner: 1}
kingdoms:
  - {id: 1, player: 0, hexes: [[0,0],[1,0]]}
`,
		},
		{
			name: "kingdom lists unknown hex",
			doc: `players: 1
hexes:
  - {q: 0, r: 0, owner: 0}
kingdoms:
  - {id: 1, player: 0, hexes: [[0,0],[1,0]]}
`,
		},
		{
			name: "hex in two kingdoms",
			doc: `players: 1
hexes:
  - {q: 0, r: 0, owner: 0}
  - {q: 1, r: 0, owner: 0}
  - {q: 2, r: 0, owner: 0}
kingdoms:
  - {id: 1, player: 0, hexes: [[0,0],[1,0]]}
  - {id: 2, player: 0, hexes: [[1,0],[2,0]]}
`,
		},
		{
			name: "single hex kingdom",
			doc: `players: 1
hexes:
  - {q: 0, r: 0, owner: 0}
kingdoms:
  - {id: 1, player: 0, hexes: [[0,0]]}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoad_UnknownField(t *testing.T) {
	_, err := Load(strings.NewReader("players: 1\nweather: rain\n"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestWorld_DisconnectedKingdom(t *testing.T) {
	doc := `players: 1
hexes:
  - {q: 0, r: 0, owner: 0, entity: capital}
  - {q: 2, r: 0, owner: 0}
  - {q: 1, r: 0}
kingdoms:
  - {id: 1, player: 0, hexes: [[0,0],[2,0]]}
`
	s, err := Load(strings.NewReader(doc))
	require.NoError(t, err)

	_, err = s.World()
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "not connected")
}
