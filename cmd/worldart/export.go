package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/worldart"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	rec, err := deps.Records.FindRecordByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", worldart.ErrorMessage(err))
		return err
	}

	if c.Output == "" {
		return deps.Exporter.Write(deps.Stdout, rec)
	}

	b, err := deps.Exporter.Encode(rec)
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.Output, b, 0644); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %q to %s\n", rec.Name, c.Output)
	return nil
}
