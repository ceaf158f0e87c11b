package main

import (
	"fmt"

	"github.com/fwojciec/worldart"
)

// Run executes the refill command.
func (c *RefillCmd) Run(deps *Dependencies) error {
	field, err := worldart.ParseField(c.Field)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", worldart.ErrorMessage(err))
		return err
	}

	rec, err := deps.Records.FindRecordByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", worldart.ErrorMessage(err))
		return err
	}

	switch {
	case deps.Refiller.CanRefill(rec, field):
		err = deps.Refiller.Refill(deps.Ctx, rec, field)
	case c.Search && deps.Refiller.CanSearch(rec, field):
		err = c.refillFromSearch(deps, rec, field)
	case !field.Refillable():
		err = worldart.Errorf(worldart.EINVALID, "field %s cannot be refilled", field)
	default:
		err = worldart.Errorf(worldart.EINVALID, "record has no catalog source; use --search")
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", worldart.ErrorMessage(err))
		return err
	}

	if err := deps.Records.UpdateRecord(deps.Ctx, rec); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", worldart.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Refilled %s of %q\n", field, rec.Name)
	return nil
}

func (c *RefillCmd) refillFromSearch(deps *Dependencies, rec *worldart.Record, field worldart.Field) error {
	candidates, err := deps.Refiller.Search(deps.Ctx, rec, field)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return worldart.Errorf(worldart.ENOTFOUND, "nothing found for %q", rec.FirstName())
	}
	if c.Pick < 1 || c.Pick > len(candidates) {
		printCandidates(deps, candidates)
		return worldart.Errorf(worldart.EINVALID, "pick must be between 1 and %d", len(candidates))
	}
	return deps.Refiller.RefillFromSearchResult(deps.Ctx, rec, field, candidates[c.Pick-1])
}
