package main

import (
	"fmt"

	"github.com/fwojciec/worldart"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return worldart.Errorf(worldart.EINVALID, "use --force to confirm deletion")
	}

	rec, err := deps.Records.FindRecordByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: record %q not found. Use 'worldart list' to see stored records.\n", c.ID)
		return err
	}

	if err := deps.Records.DeleteRecord(deps.Ctx, rec.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", worldart.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted record %q\n", rec.Name)
	return nil
}
