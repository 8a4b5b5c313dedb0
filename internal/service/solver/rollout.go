package solver

import (
	"github.com/cympfh/connect-four/internal/domain"
)

// RandomMove picks one of the legal moves of b with equal probability.
func RandomMove(b *domain.Board, rnd RandomSource) (int, error) {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return -1, domain.ErrNoLegalMove
	}
	return moves[rnd.IntN(len(moves))], nil
}

// Rollout plays uniformly random moves on b until somebody connects four or
// the board fills up, and returns the winner (Empty for a full board).
// b is mutated; callers pass a clone they own.
func Rollout(b *domain.Board, rnd RandomSource) domain.PlayerID {
	for {
		if winner := domain.Judge(b); winner != domain.Empty {
			return winner
		}
		col, err := RandomMove(b, rnd)
		if err != nil {
			return domain.Empty
		}
		if err := b.PlayInPlace(col); err != nil {
			// unreachable: col came from LegalMoves
			return domain.Empty
		}
	}
}
