package game_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kumarlokesh/detective-quest/internal/casefile"
	"github.com/kumarlokesh/detective-quest/internal/game"
	"github.com/kumarlokesh/detective-quest/internal/mansion"
	"github.com/kumarlokesh/detective-quest/internal/suspects"
)

func defaultCase(t *testing.T) (*mansion.Tree, *suspects.Table) {
	t.Helper()
	tree, table, err := casefile.Default().Build()
	require.NoError(t, err)
	return tree, table
}

func play(t *testing.T, s *game.Session, keys ...string) {
	t.Helper()
	for _, k := range keys {
		c, err := game.ParseChoice(k)
		require.NoError(t, err)
		require.NoError(t, s.Apply(c))
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		input string
		want  game.Choice
	}{
		{"e", game.ChoiceLeft},
		{"E", game.ChoiceLeft},
		{"  d\n", game.ChoiceRight},
		{"D", game.ChoiceRight},
		{"s", game.ChoiceQuit},
		{"Sair", game.ChoiceQuit},
		{"esquerda", game.ChoiceLeft},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := game.ParseChoice(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "   ", "x", "\n", "ç"} {
		_, err := game.ParseChoice(bad)
		assert.ErrorIs(t, err, game.ErrInvalidChoice, "input %q", bad)
	}
}

func TestParseTier(t *testing.T) {
	tier, err := game.ParseTier("Adventurer")
	require.NoError(t, err)
	assert.Equal(t, game.TierAdventurer, tier)
	assert.True(t, tier.CollectsClues())
	assert.False(t, tier.HasVerdict())

	_, err = game.ParseTier("expert")
	assert.Error(t, err)
}

func TestSession_StartsAtRoot(t *testing.T) {
	tree, _ := defaultCase(t)
	s := game.NewSession(tree)

	assert.Equal(t, "Hall", s.Current().Name)
	assert.Equal(t, game.StateExploring, s.State())
	assert.False(t, s.Done())
	assert.Equal(t, []string{"Pegadas de lama"}, s.Clues().InOrder())
	assert.Equal(t, game.TierMaster, s.Tier())
}

func TestSession_KitchenPath(t *testing.T) {
	tree, table := defaultCase(t)

	t.Run("accusing the maid wins", func(t *testing.T) {
		s := game.NewSession(tree)
		play(t, s, "e", "e")

		assert.Equal(t, "Kitchen", s.Current().Name)
		assert.Equal(t, game.StateLeaf, s.State())
		assert.Equal(t, []string{
			"Lençol manchado",
			"Panela com odor estranho",
			"Pegadas de lama",
		}, s.Clues().InOrder())
		assert.Equal(t, []string{
			"Pegadas de lama",
			"Lençol manchado",
			"Panela com odor estranho",
		}, s.Collected())

		v, err := s.Accuse(table, "Camareira")
		require.NoError(t, err)
		assert.Equal(t, 2, v.Count)
		assert.True(t, v.Won)
		assert.Equal(t, &v, s.Verdict())
	})

	t.Run("accusing the gardener loses", func(t *testing.T) {
		s := game.NewSession(tree)
		play(t, s, "e", "e")

		v, err := s.Accuse(table, "Jardineiro")
		require.NoError(t, err)
		assert.Equal(t, 1, v.Count)
		assert.False(t, v.Won)
	})

	t.Run("matching is exact", func(t *testing.T) {
		s := game.NewSession(tree)
		play(t, s, "e", "e")

		v, err := s.Accuse(table, "camareira")
		require.NoError(t, err)
		assert.Equal(t, 0, v.Count)
		assert.False(t, v.Won)
	})
}

func TestSession_QuitAtHall(t *testing.T) {
	tree, table := defaultCase(t)
	s := game.NewSession(tree)
	play(t, s, "s")

	assert.Equal(t, game.StateQuit, s.State())
	assert.Equal(t, "Hall", s.Current().Name)
	assert.Equal(t, []string{"Pegadas de lama"}, s.Clues().InOrder())

	v, err := s.Accuse(table, "Jardineiro")
	require.NoError(t, err)
	assert.Equal(t, 1, v.Count)
	assert.False(t, v.Won)

	_, err = s.Accuse(table, "Camareira")
	assert.ErrorIs(t, err, game.ErrAlreadyJudged)
}

func TestSession_InvalidMovesKeepState(t *testing.T) {
	tree := mansion.NewRoom("Hall", "mud")
	tree.Link(mansion.NewRoom("Cellar", ""), nil)
	mt, err := mansion.New(tree)
	require.NoError(t, err)

	s := game.NewSession(mt)

	_, err = game.ParseChoice("x")
	assert.ErrorIs(t, err, game.ErrInvalidChoice)

	err = s.Apply(game.ChoiceRight)
	assert.ErrorIs(t, err, game.ErrNoPath)
	assert.Equal(t, "Hall", s.Current().Name)
	assert.Equal(t, game.StateExploring, s.State())
	assert.Equal(t, 1, s.Clues().Len())

	err = s.Apply(game.Choice(42))
	assert.ErrorIs(t, err, game.ErrInvalidChoice)
	assert.Equal(t, "Hall", s.Current().Name)

	require.NoError(t, s.Apply(game.ChoiceLeft))
	assert.Equal(t, "Cellar", s.Current().Name)
	assert.True(t, s.Done())

	assert.ErrorIs(t, s.Apply(game.ChoiceLeft), game.ErrWalkOver)
	assert.ErrorIs(t, s.Apply(game.ChoiceQuit), game.ErrWalkOver)
	assert.Equal(t, game.StateLeaf, s.State())
}

func TestSession_EveryPathHalts(t *testing.T) {
	tree, _ := defaultCase(t)

	// a complete tree of depth 3 has 4 root-to-leaf paths
	paths := [][]game.Choice{
		{game.ChoiceLeft, game.ChoiceLeft},
		{game.ChoiceLeft, game.ChoiceRight},
		{game.ChoiceRight, game.ChoiceLeft},
		{game.ChoiceRight, game.ChoiceRight},
	}
	for _, path := range paths {
		s := game.NewSession(tree)
		moves := 0
		for !s.Done() {
			require.Less(t, moves, tree.Depth(), "walk did not halt")
			require.NoError(t, s.Apply(path[moves]))
			moves++
		}
		assert.True(t, s.Current().IsLeaf())
		assert.Equal(t, 3, s.Clues().Len())
	}
}

func TestSession_AccuseBeforeEnd(t *testing.T) {
	tree, table := defaultCase(t)
	s := game.NewSession(tree)

	_, err := s.Accuse(table, "Camareira")
	assert.ErrorIs(t, err, game.ErrWalkInProgress)
	assert.Nil(t, s.Verdict())
}

func TestSession_NoviceTier(t *testing.T) {
	tree, table := defaultCase(t)
	s := game.NewSession(tree, game.WithTier(game.TierNovice))
	play(t, s, "d", "d")

	assert.Equal(t, "Bedroom", s.Current().Name)
	assert.True(t, s.Clues().Empty())

	_, err := s.Accuse(table, "Bibliotecário")
	assert.ErrorIs(t, err, game.ErrNoVerdict)
}

func TestSession_Threshold(t *testing.T) {
	tree, table := defaultCase(t)
	s := game.NewSession(tree, game.WithThreshold(3))
	play(t, s, "d", "e")

	v, err := s.Accuse(table, "Bibliotecário")
	require.NoError(t, err)
	assert.Equal(t, 2, v.Count)
	assert.Equal(t, 3, v.Threshold)
	assert.False(t, v.Won)
}

func TestEvaluate_MissesCountForNobody(t *testing.T) {
	tree, table := defaultCase(t)
	s := game.NewSession(tree)

	s.Clues().Insert("Bilhete rasgado")
	s.Clues().Insert("Pegadas de lama")

	v := game.Evaluate(s.Clues(), table, "Jardineiro", game.DefaultThreshold)
	assert.Equal(t, 2, v.Count)
	assert.True(t, v.Won)
}

func TestSnapshotRestore(t *testing.T) {
	tree, table := defaultCase(t)
	s := game.NewSession(tree, game.WithID("case-1"))
	play(t, s, "d")

	snap := s.Snapshot()
	assert.Equal(t, game.Snapshot{
		ID:        "case-1",
		Tier:      game.TierMaster,
		Room:      "Library",
		Clues:     []string{"Pegadas de lama", "Livro com página faltando"},
		State:     game.StateExploring,
		Threshold: game.DefaultThreshold,
	}, snap)

	restored, err := game.Restore(tree, snap, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "case-1", restored.ID())
	assert.Equal(t, s.Clues().InOrder(), restored.Clues().InOrder())

	play(t, restored, "e")
	assert.Equal(t, "Office", restored.Current().Name)

	v, err := restored.Accuse(table, "Bibliotecário")
	require.NoError(t, err)
	assert.True(t, v.Won)

	again, err := game.Restore(tree, restored.Snapshot(), zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, again.Verdict())
	assert.Equal(t, v, *again.Verdict())

	// the snapshotted session is unaffected
	assert.Equal(t, "Library", s.Current().Name)
}

func TestRestore_Errors(t *testing.T) {
	tree, _ := defaultCase(t)

	_, err := game.Restore(tree, game.Snapshot{Room: "Cellar", State: game.StateQuit, Tier: game.TierMaster}, zerolog.Nop())
	assert.ErrorIs(t, err, game.ErrUnknownRoom)

	_, err = game.Restore(tree, game.Snapshot{Room: "Hall", State: "sleeping", Tier: game.TierMaster}, zerolog.Nop())
	assert.Error(t, err)

	_, err = game.Restore(tree, game.Snapshot{Room: "Hall", State: game.StateQuit, Tier: "expert"}, zerolog.Nop())
	assert.Error(t, err)
}
