package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// patentRoom builds a four-human Dubiously Patented room at the problem
// submission phase, with no bots in play.
func patentRoom(t *testing.T, o *Orchestrator) (*Room, []*Player) {
	t.Helper()
	room := createRoom(o, "host-1", VariantPatented)
	players := []*Player{
		join(o, room, "conn-1", "Ada"),
		join(o, room, "conn-2", "Grace"),
		join(o, room, "conn-3", "Edsger"),
		join(o, room, "conn-4", "Barbara"),
	}
	o.do(func() {
		o.handleGameAction("conn-1", ActionPayload{Action: ActStartGame})
	})
	return room, players
}

func TestPatentFlowToPresentations(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	room, players := patentRoom(t, o)

	o.do(func() {
		require.Equal(t, PhaseDPProblemSubmit, room.Phase)
		for _, p := range players {
			assert.Equal(t, patentStartMoney, p.Score, "everyone starts with the same money")
		}

		for i, p := range players {
			o.handleSubmitProblems(room, p, []string{
				fmt.Sprintf("problem %d-a", i),
				fmt.Sprintf("problem %d-b", i),
			})
		}
		require.Equal(t, PhaseDPPick, room.Phase, "all problems in")

		pt := room.Patent
		for i, p := range players {
			choices := pt.ChoicesByPlayer[p.ID]
			require.Len(t, choices, patentChoices)
			own := fmt.Sprintf("problem %d", i)
			for _, c := range choices {
				assert.NotContains(t, c, own, "players never pick their own problem")
			}
		}

		// A pick outside the dealt choices is ignored.
		o.handleSelectProblem(room, players[0], "not on the card")
		assert.Empty(t, pt.SelectedByPlayer)

		for _, p := range players {
			o.handleSelectProblem(room, p, pt.ChoicesByPlayer[p.ID][0])
		}
		require.Equal(t, PhaseDPDrawing, room.Phase)

		// A titleless drawing is ignored.
		o.handleSubmitDrawing(room, players[0], "doodle", "  ")
		assert.Empty(t, pt.Drawings)

		for _, p := range players {
			o.handleSubmitDrawing(room, p, "doodle", "The Gadget")
		}
		require.Equal(t, PhaseDPPresenting, room.Phase)
		assert.Len(t, pt.PresentOrder, 4)
		assert.Zero(t, pt.Presenter)
	})
}

func TestPatentInvestmentTransfers(t *testing.T) {
	o, em := newTestOrchestrator(t)
	room, players := patentRoom(t, o)

	var investorConn string
	o.do(func() {
		for i, p := range players {
			o.handleSubmitProblems(room, p, []string{fmt.Sprintf("problem %d", i)})
		}
		pt := room.Patent
		for _, p := range players {
			o.handleSelectProblem(room, p, pt.ChoicesByPlayer[p.ID][0])
		}
		for _, p := range players {
			o.handleSubmitDrawing(room, p, "doodle", "The Gadget")
		}
		require.Equal(t, PhaseDPPresenting, room.Phase)

		o.startInvesting(room)
		require.Equal(t, PhaseDPInvesting, room.Phase)

		presenter := o.currentPresenter(room)
		require.NotNil(t, presenter)
		var audience []*Player
		for _, p := range players {
			if p.ID != presenter.ID {
				audience = append(audience, p)
			}
		}
		require.Len(t, audience, 3)
		investorConn = audience[0].ConnID

		// The presenter cannot invest in themselves.
		o.handleInvest(room, presenter, presenter.ConnID, 100)
		assert.Empty(t, pt.InvestedBy)

		// A non-positive amount is an explicit error.
		o.handleInvest(room, audience[0], audience[0].ConnID, 0)
		assert.Empty(t, pt.InvestedBy)

		// Money moves immediately and is capped at the balance.
		o.handleInvest(room, audience[0], audience[0].ConnID, 5000)
		assert.Equal(t, 0, audience[0].Score, "over-invest drains the balance")
		assert.Equal(t, patentStartMoney*2, presenter.Score)
		assert.Equal(t, patentStartMoney, pt.Investments[presenter.ID])

		// One investment per presentation.
		o.handleInvest(room, audience[0], audience[0].ConnID, 100)
		assert.Equal(t, 0, audience[0].Score)

		// The phase holds until every audience member has invested.
		o.handleInvest(room, audience[1], audience[1].ConnID, 200)
		require.Equal(t, PhaseDPInvesting, room.Phase)
		o.handleInvest(room, audience[2], audience[2].ConnID, 150)
		require.Equal(t, PhaseDPPresenting, room.Phase)
		assert.Equal(t, 1, pt.Presenter)
	})

	errSeen := false
	for _, ev := range em.eventsFor(investorConn) {
		if ev.Event == EvError {
			errSeen = true
		}
	}
	assert.True(t, errSeen, "zero investment produces an error event")
}
