package main

import (
	"fmt"

	"github.com/fwojciec/worldart"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	rec, err := deps.Records.FindRecordByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", worldart.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "ID: %s\n", rec.ID)
	fmt.Fprintln(deps.Stdout, worldart.FormatRecord(rec))
	return nil
}
