package config

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alexlux58/AWS-ALERTING/internal/domain/repository"
	"github.com/alexlux58/AWS-ALERTING/internal/shared/types"
)

// ParameterCache memoizes parameter-store lookups for one invocation.
// Create a new cache per run; it is not safe for concurrent use.
type ParameterCache struct {
	repo   repository.ParameterRepository
	values map[string]string
}

// NewParameterCache creates an empty cache in front of repo.
func NewParameterCache(repo repository.ParameterRepository) *ParameterCache {
	return &ParameterCache{repo: repo, values: make(map[string]string)}
}

// Get returns every requested name. Only names not yet cached are fetched, and any
// name still absent afterwards is a configuration error.
func (c *ParameterCache) Get(ctx context.Context, names []string) (map[string]string, error) {
	var missing []string
	seen := make(map[string]bool)
	for _, name := range names {
		if _, ok := c.values[name]; !ok && !seen[name] {
			missing = append(missing, name)
			seen[name] = true
		}
	}

	if len(missing) > 0 {
		fetched, err := c.repo.GetParameters(ctx, missing)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", types.ErrConfiguration, err)
		}
		for name, value := range fetched {
			c.values[name] = value
		}
	}

	result := make(map[string]string, len(names))
	var notFound []string
	for _, name := range names {
		value, ok := c.values[name]
		if !ok {
			notFound = append(notFound, name)
			continue
		}
		result[name] = value
	}
	if len(notFound) > 0 {
		sort.Strings(notFound)
		return nil, fmt.Errorf("%w: parameters not found: %s", types.ErrConfiguration, strings.Join(notFound, ", "))
	}
	return result, nil
}

// ResolveReportSettings fetches and parses the report parameters.
func ResolveReportSettings(ctx context.Context, cache *ParameterCache, env types.ReportEnv) (types.ReportSettings, error) {
	values, err := cache.Get(ctx, env.ParameterNames())
	if err != nil {
		return types.ReportSettings{}, err
	}

	settings := types.ReportSettings{
		ReportTo:       splitRecipients(values[env.ParamReportTo]),
		ReportFrom:     strings.TrimSpace(values[env.ParamReportFrom]),
		ArchiveBucket:  strings.TrimSpace(values[env.ParamArchiveBucket]),
		IncludeMTD:     ToBool(values[env.ParamIncludeMTD]),
		IncludeDrivers: ToBool(values[env.ParamIncludeDrivers]),
	}

	topN, err := strconv.Atoi(strings.TrimSpace(values[env.ParamTopNServices]))
	if err != nil || topN <= 0 {
		return types.ReportSettings{}, fmt.Errorf("%w: %s must be a positive integer, got %q",
			types.ErrConfiguration, env.ParamTopNServices, values[env.ParamTopNServices])
	}
	settings.TopN = topN

	switch {
	case len(settings.ReportTo) == 0:
		return types.ReportSettings{}, fmt.Errorf("%w: %s is empty", types.ErrConfiguration, env.ParamReportTo)
	case settings.ReportFrom == "":
		return types.ReportSettings{}, fmt.Errorf("%w: %s is empty", types.ErrConfiguration, env.ParamReportFrom)
	case settings.ArchiveBucket == "":
		return types.ReportSettings{}, fmt.Errorf("%w: %s is empty", types.ErrConfiguration, env.ParamArchiveBucket)
	}

	return settings, nil
}

func splitRecipients(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if addr := strings.TrimSpace(part); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// FileParameterRepository serves parameters from a local configuration file.
type FileParameterRepository struct {
	values map[string]string
}

// NewFileParameterRepository wraps the parameters section of a loaded config.
func NewFileParameterRepository(cfg *types.Config) *FileParameterRepository {
	values := make(map[string]string)
	if cfg != nil {
		for k, v := range cfg.Parameters {
			values[k] = v
		}
	}
	return &FileParameterRepository{values: values}
}

// GetParameters returns the known names.
func (r *FileParameterRepository) GetParameters(_ context.Context, names []string) (map[string]string, error) {
	out := make(map[string]string, len(names))
	for _, name := range names {
		if v, ok := r.values[name]; ok {
			out[name] = v
		}
	}
	return out, nil
}
