// ABOUTME: Environment variable expansion and Unicode normalization of demo script labels
// ABOUTME: Replaces ${VAR} patterns with os.Getenv values; unset vars become empty

package config

import (
	"os"
	"regexp"

	"golang.org/x/text/unicode/norm"
)

var envVarPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// ResolveEnvVars expands ${VAR} patterns in every label of s and
// normalizes the result to NFC, so a decomposed "e\u0301" from a file name
// in the environment is drawn as one precomposed rune.
func ResolveEnvVars(s *Script) {
	for _, label := range []*string{
		&s.Bar.Label, &s.Bar.TrailingLabel,
		&s.Percent.Label, &s.Percent.TrailingLabel,
		&s.Spinner.Label, &s.Spinner.TrailingLabel,
	} {
		*label = norm.NFC.String(expandEnv(*label))
	}
}

// expandEnv replaces ${VAR} with os.Getenv(VAR). Unset vars become "".
func expandEnv(s string) string {
	if s == "" {
		return s
	}
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}
