package phh

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lox/holdem-cli/internal/game"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hand *HandHistory) ([]byte, error) {
	var buf strings.Builder
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

// FormatAction converts a move to its PHH action string. player is the
// zero-based PHH player index and total the player's action for the street
// after the move. Bets and raises with no total are not emitted.
func FormatAction(player int, move game.Move, total int) (string, bool) {
	ref := playerRef(player)
	switch move {
	case game.Fold:
		return ref + " f", true
	case game.Check, game.Call:
		return ref + " cc", true
	case game.Bet, game.Raise:
		if total <= 0 {
			return "", false
		}
		return fmt.Sprintf("%s cbr %d", ref, total), true
	default:
		return fmt.Sprintf("# %s %s %d", ref, move, total), true
	}
}

func playerRef(player int) string {
	return fmt.Sprintf("p%d", player+1)
}
