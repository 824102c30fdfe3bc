package cmd

import (
	"fmt"
	"io"

	"bundlepacks/constants"
	"bundlepacks/grouping"
	"bundlepacks/logger"
	"bundlepacks/manifest"
)

// Plan is the grouping handed to the pipeline
type Plan struct {
	Names  []string
	Groups [][]string
	Value  string
	Source string
}

// PackResolver turns the manifest into a Plan
type PackResolver struct {
	config CommandConfig
	log    logger.Logger
}

// NewPackResolver creates a new resolver
func NewPackResolver(config CommandConfig, log logger.Logger) *PackResolver {
	return &PackResolver{
		config: config,
		log:    log,
	}
}

// Resolve loads the manifest and splits its packs. Any error means the
// manifest cannot be used at all.
func (r *PackResolver) Resolve() (*Plan, error) {
	r.log.Debug("Loading manifest", logger.String("path", r.config.ManifestPath))

	m, err := manifest.Load(r.config.ManifestPath)
	if err != nil {
		return nil, err
	}

	names := m.PackNames()
	r.log.Debug("Collected pack names",
		logger.Int("fullPatchPacks", len(m.FullPatchPacks)),
		logger.Int("updatePacks", len(m.UpdatePacks)),
		logger.Int("named", len(names)))

	groups, err := grouping.Split(names, r.config.GroupCount)
	if err != nil {
		return nil, err
	}

	return &Plan{
		Names:  names,
		Groups: groups,
		Value:  grouping.Format(groups),
		Source: constants.SourceManifest,
	}, nil
}

// Fallback returns the configured default grouping. Value is kept verbatim.
func (r *PackResolver) Fallback() *Plan {
	groups := grouping.Parse(r.config.DefaultPacks)
	names := make([]string, 0, grouping.Count(groups))
	for _, group := range groups {
		names = append(names, group...)
	}
	return &Plan{
		Names:  names,
		Groups: groups,
		Value:  r.config.DefaultPacks,
		Source: constants.SourceFallback,
	}
}

// ResolveOrFallback reports a failed Resolve on errOut and substitutes the
// fallback plan.
func (r *PackResolver) ResolveOrFallback(errOut io.Writer) *Plan {
	plan, err := r.Resolve()
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		r.log.Debug("Using fallback bundle packs", logger.String("value", r.config.DefaultPacks))
		return r.Fallback()
	}
	return plan
}
