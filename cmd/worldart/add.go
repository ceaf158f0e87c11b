package main

import (
	"fmt"

	"github.com/fwojciec/worldart"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	rec := &worldart.Record{Name: c.Name}
	rec.AddSource(c.Source)

	if err := deps.Completer.Complete(deps.Ctx, rec); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", worldart.ErrorMessage(err))
		return err
	}

	if err := deps.Records.CreateRecord(deps.Ctx, rec); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", worldart.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added record %q (%s)\n", rec.Name, rec.ID)
	return nil
}
