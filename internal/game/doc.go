// Package game implements the six-seat no-limit Hold'em betting engine used by
// the trainer.
//
// The main type is Table, a complete snapshot of one hand: seats, blinds,
// pot, board and whose turn it is. Every entry point is state-in/state-out:
// ApplyAction and AdvanceIfRoundComplete return a new *Table and never modify
// the one they were given, so callers can keep old snapshots for undo.
//
// # Basic Usage
//
//	rng := randutil.New(42)
//	t := game.StartHand(rng, 3)
//	for t.Phase == game.PhasePlaying {
//	    a := game.BotAction(t, t.ToAct, rng)
//	    next, err := game.ApplyAction(t, t.ToAct, a)
//	    if err != nil {
//	        return err
//	    }
//	    t = next
//	}
//	fmt.Println(t.Result.Winners)
//
// # Rules
//
// Blinds are 1/2 with 200 chip stacks unless overridden with HandOption
// values. Stacks are reset at the start of every hand. A raise must reach
// MinRaiseTo, which is the raise target plus the size of the last raise;
// going all-in for less is always allowed. A raise reopens action for every
// other seat still in the hand. When the river betting closes, the best
// seven-card hand wins and split pots give the odd chip to the first winner
// left of the dealer.
package game
