package main

import (
	"fmt"

	"github.com/fwojciec/worldart"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := worldart.RecordFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Name != "" {
		filter.Name = &c.Name
	}
	if c.Type != "" {
		typ := worldart.Type(c.Type)
		filter.Type = &typ
	}

	records, err := deps.Records.FindRecords(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", worldart.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No records found. Use 'worldart fill' to add some.")
		return nil
	}

	for _, r := range records {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", r.ID, r.Name, typeLabel(r.Type), r.DatePremiere)
	}

	return nil
}

func typeLabel(t worldart.Type) string {
	if t == "" {
		return "-"
	}
	return string(t)
}
