package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/schnapsen/internal/apperrors"
	"github.com/palemoky/schnapsen/internal/game/card"
)

// rigRound builds a round with fixed hands and talon so tests are deterministic.
func rigRound(t *testing.T, hands [2][]card.Card, trump card.Card, talon []card.Card, lead int) *Round {
	t.Helper()
	r := NewRound()
	r.phase = PhasePlaying
	r.players[0].Hand = append([]card.Card{}, hands[0]...)
	r.players[1].Hand = append([]card.Card{}, hands[1]...)
	r.trumpCard = &trump
	r.trumpSuit = trump.Suit
	r.talon = append([]card.Card{}, talon...)
	r.turnSeat = lead
	r.closerSeat = -1
	return r
}

func c(s card.Suit, rk card.Rank) card.Card { return card.Card{Suit: s, Rank: rk} }

func TestStartRound_DealShape(t *testing.T) {
	r := NewRound()
	r.StartRound()

	assert.Equal(t, PhasePlaying, r.CurrentPhase())
	assert.Len(t, r.Hand(0), 5)
	assert.Len(t, r.Hand(1), 5)
	// Talon size includes the face-up trump card.
	assert.Equal(t, 10, r.TalonSize())
	require.NotNil(t, r.TrumpCard())
	assert.Equal(t, r.TrumpCard().Suit, r.TrumpSuit())
	// Non-dealer leads the first trick.
	assert.Equal(t, 1, r.TurnSeat())
	assert.Equal(t, 0, r.DealerSeat())
	assert.Equal(t, card.DeckSize, r.CardCount())
}

func TestResetRound_RotatesDealer(t *testing.T) {
	r := NewRound()
	r.StartRound()
	r.ResetRound()

	assert.Equal(t, 1, r.DealerSeat())
	assert.Equal(t, 0, r.TurnSeat())
	assert.Equal(t, card.DeckSize, r.CardCount())
}

func TestPlayCard_Rejections(t *testing.T) {
	r := NewRound()
	_, err := r.PlayCard(0, c(card.Hearts, card.RankA))
	assert.ErrorIs(t, err, apperrors.ErrGameNotStart)

	r.StartRound()
	wrongSeat := r.DealerSeat()
	_, err = r.PlayCard(wrongSeat, r.Hand(wrongSeat)[0])
	assert.ErrorIs(t, err, apperrors.ErrNotYourTurn)

	lead := r.TurnSeat()
	// A card in the opponent's hand is guaranteed not to be in ours.
	notHeld := r.Hand(opponent(lead))[0]
	_, err = r.PlayCard(lead, notHeld)
	assert.ErrorIs(t, err, apperrors.ErrCardNotInHand)
}

func TestPlayCard_TurnAlternatesAndConservation(t *testing.T) {
	r := NewRound()
	r.StartRound()

	lead := r.TurnSeat()
	out, err := r.PlayCard(lead, r.Hand(lead)[0])
	require.NoError(t, err)
	require.NotNil(t, out.Move)
	assert.Equal(t, opponent(lead), out.Move.NextSeat)
	assert.Equal(t, card.DeckSize, r.CardCount())

	follower := r.TurnSeat()
	out, err = r.PlayCard(follower, r.Hand(follower)[0])
	require.NoError(t, err)
	require.NotNil(t, out.Trick)
	// Both draw after an open-talon trick.
	assert.Len(t, r.Hand(0), 5)
	assert.Len(t, r.Hand(1), 5)
	assert.Equal(t, 8, r.TalonSize())
	assert.Equal(t, out.Trick.Winner, r.TurnSeat())
	assert.Equal(t, card.DeckSize, r.CardCount())
}

func TestResolveTrick_TrumpBeatsLeadSuit(t *testing.T) {
	r := rigRound(t,
		[2][]card.Card{
			{c(card.Hearts, card.RankA), c(card.Hearts, card.RankK)},
			{c(card.Spades, card.RankJ), c(card.Clubs, card.RankQ)},
		},
		c(card.Spades, card.Rank10),
		[]card.Card{c(card.Diamonds, card.RankK), c(card.Diamonds, card.RankQ)},
		0,
	)

	_, err := r.PlayCard(0, c(card.Hearts, card.RankA))
	require.NoError(t, err)
	out, err := r.PlayCard(1, c(card.Spades, card.RankJ))
	require.NoError(t, err)
	require.NotNil(t, out.Trick)

	assert.Equal(t, 1, out.Trick.Winner)
	assert.Equal(t, 13, out.Trick.Points) // A=11 + J=2
	assert.Equal(t, 13, r.Points(1))
	assert.Equal(t, 0, r.Points(0))
}

func TestStrictRules_OnlyWhenTalonClosedOrEmpty(t *testing.T) {
	// Open talon: follower may discard off-suit freely.
	r := rigRound(t,
		[2][]card.Card{
			{c(card.Hearts, card.RankA)},
			{c(card.Hearts, card.Rank10), c(card.Clubs, card.RankJ)},
		},
		c(card.Spades, card.RankJ),
		[]card.Card{c(card.Diamonds, card.RankK), c(card.Diamonds, card.RankQ), c(card.Diamonds, card.RankJ)},
		0,
	)
	_, err := r.PlayCard(0, c(card.Hearts, card.RankA))
	require.NoError(t, err)
	_, err = r.PlayCard(1, c(card.Clubs, card.RankJ))
	assert.NoError(t, err)
}

func TestStrictRules_FarbzwangAfterClose(t *testing.T) {
	r := rigRound(t,
		[2][]card.Card{
			{c(card.Hearts, card.RankA), c(card.Clubs, card.RankK)},
			{c(card.Hearts, card.Rank10), c(card.Clubs, card.RankJ)},
		},
		c(card.Spades, card.RankJ),
		[]card.Card{c(card.Diamonds, card.RankK), c(card.Diamonds, card.RankQ)},
		0,
	)
	require.NoError(t, r.CloseTalon(0))

	_, err := r.PlayCard(0, c(card.Hearts, card.RankA))
	require.NoError(t, err)
	// Holds hearts, must follow suit.
	_, err = r.PlayCard(1, c(card.Clubs, card.RankJ))
	assert.ErrorIs(t, err, apperrors.ErrFarbzwang)
	_, err = r.PlayCard(1, c(card.Hearts, card.Rank10))
	assert.NoError(t, err)
}

func TestStrictRules_StichzwangMustBeat(t *testing.T) {
	r := rigRound(t,
		[2][]card.Card{
			{c(card.Hearts, card.RankK)},
			{c(card.Hearts, card.RankA), c(card.Hearts, card.RankJ)},
		},
		c(card.Spades, card.RankJ),
		nil, // empty talon activates strict rules
		0,
	)
	_, err := r.PlayCard(0, c(card.Hearts, card.RankK))
	require.NoError(t, err)
	_, err = r.PlayCard(1, c(card.Hearts, card.RankJ))
	assert.ErrorIs(t, err, apperrors.ErrStichzwang)
	_, err = r.PlayCard(1, c(card.Hearts, card.RankA))
	assert.NoError(t, err)
}

func TestAnnounce_PendingUntilFirstTrickWin(t *testing.T) {
	r := rigRound(t,
		[2][]card.Card{
			{c(card.Hearts, card.RankK), c(card.Hearts, card.RankQ), c(card.Hearts, card.RankA)},
			{c(card.Clubs, card.RankJ), c(card.Clubs, card.RankQ), c(card.Clubs, card.RankK)},
		},
		c(card.Spades, card.Rank10),
		[]card.Card{c(card.Diamonds, card.RankK), c(card.Diamonds, card.RankQ), c(card.Diamonds, card.RankJ), c(card.Diamonds, card.RankA)},
		0,
	)

	res, err := r.Announce(0, card.Hearts)
	require.NoError(t, err)
	assert.Equal(t, 20, res.Points)
	assert.False(t, res.Trump)
	assert.Nil(t, res.Round)
	// No trick won yet so the points stay pending.
	assert.Equal(t, 0, r.Points(0))
	assert.Equal(t, 20, r.PendingPoints(0))

	// The announcer must now play the king or queen of the announced suit.
	_, err = r.PlayCard(0, c(card.Hearts, card.RankA))
	assert.ErrorIs(t, err, apperrors.ErrConstraintViolation)

	_, err = r.PlayCard(0, c(card.Hearts, card.RankK))
	require.NoError(t, err)
	out, err := r.PlayCard(1, c(card.Clubs, card.RankJ))
	require.NoError(t, err)
	require.NotNil(t, out.Trick)

	// Winning the first trick banks the pending marriage.
	assert.Equal(t, 0, out.Trick.Winner)
	assert.Equal(t, 4+2+20, r.Points(0))
	assert.Equal(t, 0, r.PendingPoints(0))
}

func TestAnnounce_Rejections(t *testing.T) {
	r := rigRound(t,
		[2][]card.Card{
			{c(card.Hearts, card.RankK), c(card.Hearts, card.RankQ)},
			{c(card.Clubs, card.RankJ), c(card.Clubs, card.Rank10)},
		},
		c(card.Spades, card.Rank10),
		[]card.Card{c(card.Diamonds, card.RankK), c(card.Diamonds, card.RankQ)},
		0,
	)

	_, err := r.Announce(1, card.Clubs)
	assert.ErrorIs(t, err, apperrors.ErrNotYourTurn)

	// Missing the queen.
	_, err = r.Announce(0, card.Diamonds)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAnnouncement)

	// Mid-trick announcement is not allowed.
	_, err = r.PlayCard(0, c(card.Hearts, card.RankK))
	require.NoError(t, err)
	r.turnSeat = 0
	_, err = r.Announce(0, card.Hearts)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAnnouncement)
}

func TestAnnounce_TrumpMarriageInstantWin(t *testing.T) {
	r := rigRound(t,
		[2][]card.Card{
			{c(card.Spades, card.RankK), c(card.Spades, card.RankQ), c(card.Spades, card.RankA)},
			{c(card.Clubs, card.RankJ), c(card.Clubs, card.RankQ), c(card.Clubs, card.RankK)},
		},
		c(card.Spades, card.Rank10),
		[]card.Card{c(card.Diamonds, card.RankK), c(card.Diamonds, card.RankQ), c(card.Diamonds, card.RankJ), c(card.Diamonds, card.RankA)},
		0,
	)
	// Rig seat 0 to 50 banked points with a trick already won.
	r.players[0].Points = 50
	r.players[0].Tricks = append(r.players[0].Tricks, Trick{})

	res, err := r.Announce(0, card.Spades)
	require.NoError(t, err)
	assert.Equal(t, 40, res.Points)
	assert.True(t, res.Trump)
	require.NotNil(t, res.Round)

	assert.Equal(t, 0, res.Round.Winner)
	assert.Equal(t, 90, res.Round.WinnerPoints)
	// Loser took no tricks and has zero points: schneider, 3 Bummerl.
	assert.Equal(t, 3, res.Round.VictoryPoints)
	assert.Equal(t, PhaseRoundOver, r.CurrentPhase())
	assert.Len(t, r.Announcements(), 1)
}

func TestExchangeTrump(t *testing.T) {
	r := rigRound(t,
		[2][]card.Card{
			{c(card.Spades, card.RankJ), c(card.Hearts, card.RankA)},
			{c(card.Clubs, card.RankJ), c(card.Clubs, card.Rank10)},
		},
		c(card.Spades, card.RankA),
		[]card.Card{c(card.Diamonds, card.RankK), c(card.Diamonds, card.RankQ)},
		0,
	)

	_, err := r.ExchangeTrump(1)
	assert.ErrorIs(t, err, apperrors.ErrNotYourTurn)

	res, err := r.ExchangeTrump(0)
	require.NoError(t, err)
	assert.Equal(t, c(card.Spades, card.RankJ), res.NewTrumpCard)
	assert.Equal(t, c(card.Spades, card.RankA), res.ReceivedCard)
	assert.True(t, card.Contains(r.Hand(0), c(card.Spades, card.RankA)))
	assert.False(t, card.Contains(r.Hand(0), c(card.Spades, card.RankJ)))
	assert.Equal(t, c(card.Spades, card.RankJ), *r.TrumpCard())
	// The turn does not pass on an exchange.
	assert.Equal(t, 0, r.TurnSeat())

	// Jack is gone, a second exchange must fail.
	_, err = r.ExchangeTrump(0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidExchange)
}

func TestCloseTalon(t *testing.T) {
	r := rigRound(t,
		[2][]card.Card{
			{c(card.Hearts, card.RankA)},
			{c(card.Clubs, card.RankJ)},
		},
		c(card.Spades, card.Rank10),
		[]card.Card{c(card.Diamonds, card.RankK)},
		0,
	)

	assert.ErrorIs(t, r.CloseTalon(1), apperrors.ErrNotYourTurn)
	require.NoError(t, r.CloseTalon(0))
	assert.True(t, r.TalonClosed())
	assert.Equal(t, 0, r.CloserSeat())
	// Closing again is rejected, state unchanged.
	assert.ErrorIs(t, r.CloseTalon(0), apperrors.ErrTalonAlreadyClosed)

	empty := rigRound(t,
		[2][]card.Card{{c(card.Hearts, card.RankA)}, {c(card.Clubs, card.RankJ)}},
		c(card.Spades, card.Rank10),
		nil,
		0,
	)
	empty.trumpCard = nil
	assert.ErrorIs(t, empty.CloseTalon(0), apperrors.ErrTalonEmpty)
}

func TestClosedTalon_NoDrawAfterTrick(t *testing.T) {
	r := rigRound(t,
		[2][]card.Card{
			{c(card.Hearts, card.RankA), c(card.Hearts, card.RankK)},
			{c(card.Hearts, card.Rank10), c(card.Hearts, card.RankJ)},
		},
		c(card.Spades, card.RankJ),
		[]card.Card{c(card.Diamonds, card.RankK), c(card.Diamonds, card.RankQ)},
		0,
	)
	require.NoError(t, r.CloseTalon(0))

	_, err := r.PlayCard(0, c(card.Hearts, card.RankA))
	require.NoError(t, err)
	out, err := r.PlayCard(1, c(card.Hearts, card.Rank10))
	require.NoError(t, err)
	require.NotNil(t, out.Trick)

	assert.Len(t, r.Hand(0), 1)
	assert.Len(t, r.Hand(1), 1)
	assert.Nil(t, out.Trick.Dealt[0])
	assert.Nil(t, out.Trick.Dealt[1])
	assert.True(t, out.Trick.TalonClosed)
}

func TestCloserFails_NonCloserWinsWithRaisedStake(t *testing.T) {
	// Seat 0 closes, plays out the hand without reaching 66.
	r := rigRound(t,
		[2][]card.Card{
			{c(card.Hearts, card.RankA)},
			{c(card.Hearts, card.Rank10)},
		},
		c(card.Spades, card.RankJ),
		[]card.Card{c(card.Diamonds, card.RankK)},
		0,
	)
	r.players[0].Points = 40
	r.players[0].Tricks = append(r.players[0].Tricks, Trick{})
	r.players[1].Points = 30
	r.players[1].Tricks = append(r.players[1].Tricks, Trick{})
	require.NoError(t, r.CloseTalon(0))

	_, err := r.PlayCard(0, c(card.Hearts, card.RankA))
	require.NoError(t, err)
	out, err := r.PlayCard(1, c(card.Hearts, card.Rank10))
	require.NoError(t, err)
	require.NotNil(t, out.Round)

	// The closer won the last trick but fell short of 66: non-closer wins.
	assert.Equal(t, 1, out.Round.Winner)
	assert.Equal(t, 0, out.Round.Loser)
	// Closer failure raises the stake to at least 2.
	assert.GreaterOrEqual(t, out.Round.VictoryPoints, 2)
	assert.Equal(t, PhaseRoundOver, r.CurrentPhase())
}

func TestOpenExhaustion_LastTrickWinnerTakesRound(t *testing.T) {
	r := rigRound(t,
		[2][]card.Card{
			{c(card.Hearts, card.RankA)},
			{c(card.Hearts, card.Rank10)},
		},
		c(card.Spades, card.RankJ),
		nil,
		0,
	)
	r.trumpCard = nil
	r.players[0].Points = 40
	r.players[0].Tricks = append(r.players[0].Tricks, Trick{})
	r.players[1].Points = 35
	r.players[1].Tricks = append(r.players[1].Tricks, Trick{})

	_, err := r.PlayCard(0, c(card.Hearts, card.RankA))
	require.NoError(t, err)
	out, err := r.PlayCard(1, c(card.Hearts, card.Rank10))
	require.NoError(t, err)
	require.NotNil(t, out.Round)

	assert.Equal(t, 0, out.Round.Winner)
	assert.Equal(t, 1, out.Round.VictoryPoints)
}

func TestEndRound_SchneiderScoring(t *testing.T) {
	r := rigRound(t,
		[2][]card.Card{
			{c(card.Hearts, card.RankA), c(card.Hearts, card.Rank10)},
			{c(card.Hearts, card.RankK), c(card.Hearts, card.RankJ)},
		},
		c(card.Spades, card.RankJ),
		nil,
		0,
	)
	r.trumpCard = nil
	r.players[0].Points = 60
	r.players[0].Tricks = append(r.players[0].Tricks, Trick{})

	_, err := r.PlayCard(0, c(card.Hearts, card.RankA))
	require.NoError(t, err)
	out, err := r.PlayCard(1, c(card.Hearts, card.RankJ))
	require.NoError(t, err)
	require.NotNil(t, out.Round)

	// Loser never won a trick and sits at zero: 3 Bummerl.
	assert.Equal(t, 0, out.Round.Winner)
	assert.Equal(t, 3, out.Round.VictoryPoints)
	assert.Equal(t, 3, r.Bummerl(0))
}

func TestEndRound_MatchOverAtSeven(t *testing.T) {
	r := rigRound(t,
		[2][]card.Card{
			{c(card.Hearts, card.RankA)},
			{c(card.Hearts, card.RankJ)},
		},
		c(card.Spades, card.RankJ),
		nil,
		0,
	)
	r.trumpCard = nil
	r.players[0].Points = 70
	r.players[0].BummerlPoints = 6
	r.players[0].Tricks = append(r.players[0].Tricks, Trick{})
	r.players[1].Points = 40
	r.players[1].Tricks = append(r.players[1].Tricks, Trick{})

	_, err := r.PlayCard(0, c(card.Hearts, card.RankA))
	require.NoError(t, err)
	out, err := r.PlayCard(1, c(card.Hearts, card.RankJ))
	require.NoError(t, err)
	require.NotNil(t, out.Round)

	assert.True(t, out.Round.MatchOver)
	assert.Equal(t, 1, out.Round.WinnerMatchWins)
	assert.Equal(t, PhaseMatchOver, r.CurrentPhase())

	r.ResetMatch()
	assert.Equal(t, 0, r.Bummerl(0))
	assert.Equal(t, 0, r.Bummerl(1))
	assert.Equal(t, 1, r.MatchWins(0))
	assert.Equal(t, PhasePlaying, r.CurrentPhase())
}

func TestLastTalonCard_LoserDrawsTrumpCard(t *testing.T) {
	trump := c(card.Spades, card.RankA)
	r := rigRound(t,
		[2][]card.Card{
			{c(card.Hearts, card.RankA), c(card.Hearts, card.RankK)},
			{c(card.Hearts, card.RankJ), c(card.Hearts, card.RankQ)},
		},
		trump,
		[]card.Card{c(card.Diamonds, card.RankK)},
		0,
	)

	_, err := r.PlayCard(0, c(card.Hearts, card.RankA))
	require.NoError(t, err)
	out, err := r.PlayCard(1, c(card.Hearts, card.RankJ))
	require.NoError(t, err)
	require.NotNil(t, out.Trick)

	// Winner draws the last face-down card, loser takes the face-up trump.
	assert.Equal(t, 0, out.Trick.Winner)
	require.NotNil(t, out.Trick.Dealt[0])
	assert.Equal(t, c(card.Diamonds, card.RankK), *out.Trick.Dealt[0])
	require.NotNil(t, out.Trick.Dealt[1])
	assert.Equal(t, trump, *out.Trick.Dealt[1])
	assert.Nil(t, r.TrumpCard())
	assert.Equal(t, 0, r.TalonSize())
	assert.Equal(t, 6, r.CardCount())
}
