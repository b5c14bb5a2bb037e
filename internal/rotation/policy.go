package rotation

// Decide computes the rotation for a completed game. It is a pure function:
// no I/O, no side effects, and an empty queue is a valid input, not an error.
//
// queueLength is the number of players in the waiting queue at decision time.
// Players on court were dequeued when their game started, so they are never
// part of this count. The priority order is:
//
//  1. winnerStreak at or above the consecutive-win limit forces a full
//     rotation regardless of demand,
//  2. a waiting queue at or above the high-demand threshold forces a full
//     rotation,
//  3. otherwise only the losing pair departs.
func (c Config) Decide(queueLength int, winners, losers []string, winnerStreak int) Decision {
	switch {
	case winnerStreak >= c.MaxConsecutiveWins:
		return Decision{
			Type:        Full,
			Reason:      ReasonConsecutiveWinLimit,
			PlayersOff:  concat(winners, losers),
			PlayersStay: []string{},
			NextUpCount: capCount(4, queueLength),
		}
	case queueLength >= c.FullRotationQueueLen:
		return Decision{
			Type:        Full,
			Reason:      ReasonHighDemand,
			PlayersOff:  concat(winners, losers),
			PlayersStay: []string{},
			NextUpCount: capCount(4, queueLength),
		}
	default:
		return Decision{
			Type:        Partial,
			Reason:      ReasonNormalPlay,
			PlayersOff:  append([]string{}, losers...),
			PlayersStay: append([]string{}, winners...),
			NextUpCount: capCount(2, queueLength),
		}
	}
}

// capCount limits the next-up pull to the players actually waiting. A short
// queue leaves court slots open; that is accepted, not an error.
func capCount(want, queueLength int) int {
	if queueLength < want {
		return queueLength
	}
	return want
}

func concat(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}
