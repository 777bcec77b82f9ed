package card

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayanda4rbn/khasinomvp-sub000/internal/apperrors"
)

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func countOf(cards []Card) map[Card]int {
	m := make(map[Card]int, len(cards))
	for _, c := range cards {
		m[c]++
	}
	return m
}

func TestNewDeck(t *testing.T) {
	t.Parallel()

	deck := NewDeck()
	require.Len(t, deck, DeckSize)
	assert.NoError(t, Validate(deck))

	for _, s := range Suits {
		for v := MinValue; v <= MaxValue; v++ {
			assert.Contains(t, deck, Card{Value: v, Suit: s})
		}
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	deck := NewDeck()
	deck[1] = deck[0]
	err := Validate(deck)
	assert.True(t, errors.Is(err, apperrors.ErrDeckIntegrity))

	err = Validate(NewDeck()[:39])
	assert.True(t, errors.Is(err, apperrors.ErrDeckIntegrity))
}

func TestShuffle_IsPermutation(t *testing.T) {
	t.Parallel()

	original := NewDeck()
	for seed := range uint64(50) {
		shuffled := Shuffle(original, testRand(seed))
		require.Len(t, shuffled, DeckSize)
		assert.Equal(t, countOf(original), countOf(shuffled))
		assert.NoError(t, Validate(shuffled))
	}
}

func TestShuffle_CorruptInputRebuilds(t *testing.T) {
	t.Parallel()

	corrupt := NewDeck()
	corrupt[5] = corrupt[6]

	shuffled := Shuffle(corrupt, testRand(7))
	assert.NoError(t, Validate(shuffled))
}

func TestDeal(t *testing.T) {
	t.Parallel()

	deck := Shuffle(NewDeck(), testRand(3))

	for _, n := range []int{0, 1, 10, 20, 40} {
		dealt, remaining, err := Deal(deck, n)
		require.NoError(t, err)
		assert.Len(t, dealt, n)
		assert.Len(t, remaining, len(deck)-n)

		joined := append(append(Deck{}, dealt...), remaining...)
		assert.Equal(t, countOf(deck), countOf(joined))
	}
}

func TestDeal_InsufficientCards(t *testing.T) {
	t.Parallel()

	deck := NewDeck()[:5]
	dealt, remaining, err := Deal(deck, 6)

	assert.True(t, errors.Is(err, apperrors.ErrInsufficientCards))
	assert.Empty(t, dealt)
	assert.Equal(t, deck, remaining)
}

func TestEnsureFairTenDistribution(t *testing.T) {
	t.Parallel()

	player := MustParseAll("10s", "10h", "10c", "10d", "1s", "2s", "3s", "4s", "5s", "6s")
	ai := MustParseAll("1h", "2h", "3h", "4h", "5h", "6h", "7h", "8h", "9h", "1c")

	for seed := range uint64(20) {
		p, a := EnsureFairTenDistribution(player, ai, testRand(seed))

		assert.Len(t, p, len(player))
		assert.Len(t, a, len(ai))
		diff := CountTens(p) - CountTens(a)
		assert.LessOrEqual(t, diff, 1)
		assert.GreaterOrEqual(t, diff, -1)

		all := append(append([]Card{}, p...), a...)
		assert.Equal(t, countOf(append(append([]Card{}, player...), ai...)), countOf(all))
	}
}

func TestEnsureFairTenDistribution_AlreadyFair(t *testing.T) {
	t.Parallel()

	player := MustParseAll("10s", "1s")
	ai := MustParseAll("2h", "3h")

	p, a := EnsureFairTenDistribution(player, ai, testRand(1))
	assert.Equal(t, player, p)
	assert.Equal(t, ai, a)
}

func TestEnsureFairTenDistribution_Unbalanceable(t *testing.T) {
	t.Parallel()

	ai := MustParseAll("10s", "10h", "10c")
	p, a := EnsureFairTenDistribution(nil, ai, testRand(1))
	assert.Empty(t, p)
	assert.Equal(t, ai, a)
}

func TestDrawPool(t *testing.T) {
	t.Parallel()

	pool, err := DrawPool(5, testRand(9))
	require.NoError(t, err)
	assert.Len(t, pool, 5)
	assert.NoError(t, validateUnique(pool))
}
