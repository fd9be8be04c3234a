package config

import "regexp"

var productionLabel = regexp.MustCompile(`(?i)production`)

// IsProductionLabel reports whether an environment label names production.
func IsProductionLabel(label string) bool {
	return productionLabel.MatchString(label)
}
