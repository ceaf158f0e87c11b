package main

import (
	"fmt"

	"github.com/fwojciec/worldart"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	sector := c.Sector
	if sector == worldart.SectorAll {
		sector = ""
	}

	candidates, err := deps.Searcher.Search(deps.Ctx, worldart.SearchRequest{Name: c.Name, Sector: sector})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", worldart.ErrorMessage(err))
		return err
	}

	if len(candidates) == 0 {
		fmt.Fprintf(deps.Stdout, "Nothing found for %q.\n", c.Name)
		return nil
	}

	printCandidates(deps, candidates)
	return nil
}

func printCandidates(deps *Dependencies, candidates []worldart.Candidate) {
	for i, c := range candidates {
		fmt.Fprintf(deps.Stdout, "%d. %s\n   %s\n", i+1, c.Name, c.URL)
	}
}
