package config

import (
	"github.com/temirov/aiderpick/internal/filter"
	"github.com/temirov/aiderpick/internal/utils"
)

// EffectiveSkipList resolves the configured skip patterns against the built-in
// defaults. When ReplaceDefaults is set the configured patterns stand alone;
// otherwise they extend the defaults.
func (configuration SkipConfiguration) EffectiveSkipList() filter.SkipList {
	if configuration.ReplaceDefaults != nil && *configuration.ReplaceDefaults {
		return filter.SkipList{
			FileNamePatterns:  utils.DeduplicatePatterns(configuration.Files),
			DirectoryPrefixes: utils.DeduplicatePatterns(configuration.Directories),
		}
	}
	return filter.DefaultSkipList().Extend(configuration.Files, configuration.Directories)
}
