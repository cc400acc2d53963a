package main

import (
	"fmt"

	"github.com/osokin/leadscout"
)

// Run executes the queries command. It compiles the template without
// touching the network, so a bad template surfaces before a run is
// started.
func (c *QueriesCmd) Run(deps *Dependencies) error {
	qs, err := leadscout.NewQuerySet(c.Template, c.Companies, c.Positions, c.Sites, c.ExcludeSites)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
		return err
	}

	for q := range qs.All() {
		fmt.Fprintln(deps.Stdout, q.Query)
	}
	return nil
}
