// Package bootstrap performs the generation engine's one-time,
// process-lifetime load step: parse the rules document
// and the exercise catalogue, once, and hand back an immutable pair ready
// to back any number of Generate calls. The two documents are unrelated
// reads, so they load concurrently via errgroup rather than sequentially.
package bootstrap

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/wabbazzar/shredly/internal/catalogue"
	"github.com/wabbazzar/shredly/internal/rules"
)

// Inputs is the immutable pair every generation call is built on.
type Inputs struct {
	Rules     *rules.Rules
	Catalogue *catalogue.Catalogue
}

// Load reads and type-checks the rules document and exercise catalogue
// concurrently, returning as soon as both complete (or the first failure,
// per errgroup.Group semantics).
func Load(rulesPath, cataloguePath, baseDir string) (Inputs, error) {
	var g errgroup.Group
	var loadedRules *rules.Rules
	var loadedCatalogue *catalogue.Catalogue

	g.Go(func() error {
		r, err := rules.Load(rulesPath, baseDir)
		if err != nil {
			return fmt.Errorf("bootstrap: failed to load rules: %w", err)
		}
		loadedRules = r
		return nil
	})
	g.Go(func() error {
		c, err := catalogue.Load(cataloguePath, baseDir)
		if err != nil {
			return fmt.Errorf("bootstrap: failed to load catalogue: %w", err)
		}
		loadedCatalogue = c
		return nil
	})

	if err := g.Wait(); err != nil {
		return Inputs{}, err
	}
	return Inputs{Rules: loadedRules, Catalogue: loadedCatalogue}, nil
}
