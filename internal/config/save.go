package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/lox/holdem-cli/internal/fileutil"
)

// Encode renders the setup in the layout Load reads back, including the
// resume block when one is set.
func (s Setup) Encode() []byte {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	game := root.AppendNewBlock("game", nil).Body()
	game.SetAttributeValue("players", cty.NumberIntVal(int64(s.Players)))
	game.SetAttributeValue("starting_stack", cty.NumberIntVal(int64(s.StartingStack)))
	game.SetAttributeValue("big_blind", cty.NumberIntVal(int64(s.BigBlind)))
	game.SetAttributeValue("blind_interval", cty.StringVal(s.BlindInterval.String()))
	game.SetAttributeValue("blind_scheme", cty.StringVal(s.BlindScheme))
	if s.Seed != 0 {
		game.SetAttributeValue("seed", cty.NumberIntVal(s.Seed))
	}

	if r := s.Resume; r != nil {
		root.AppendNewline()
		resume := root.AppendNewBlock("resume", nil).Body()
		resume.SetAttributeValue("round", cty.NumberIntVal(int64(r.Round)))
		resume.SetAttributeValue("remaining", cty.StringVal(r.Remaining.String()))
		resume.SetAttributeValue("stacks", intList(r.Stacks))
		resume.SetAttributeValue("dealer", cty.NumberIntVal(int64(r.Dealer)))
		if len(r.IDs) > 0 {
			resume.SetAttributeValue("ids", intList(r.IDs))
		}
	}

	return f.Bytes()
}

// Save validates the setup and writes it to filename atomically
func Save(filename string, s Setup) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid setup: %w", err)
	}
	if err := fileutil.WriteFileAtomic(filename, s.Encode(), 0o644); err != nil {
		return fmt.Errorf("saving %s: %w", filename, err)
	}
	return nil
}

func intList(values []int) cty.Value {
	if len(values) == 0 {
		return cty.ListValEmpty(cty.Number)
	}
	out := make([]cty.Value, len(values))
	for i, v := range values {
		out[i] = cty.NumberIntVal(int64(v))
	}
	return cty.ListVal(out)
}
