package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Priority label constants.
const (
	CriticalValue = "Critical" // Critical priority
	HighValue     = "High"     // High priority
	ModerateValue = "Moderate" // Moderate priority
	LowValue      = "Low"      // Low priority
	UnscoredValue = "Unscored" // No score could be computed
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold)     // criticalColor represents standard danger.
	HighColor     = color.New(color.FgMagenta, color.Bold) // highColor represents strong, distinct warning.
	ModerateColor = color.New(color.FgYellow)              // moderateColor represents standard caution, not bold.
	LowColor      = color.New(color.FgCyan)                // lowColor represents informational / low-priority signal.
	UnscoredColor = color.New(color.FgWhite)               // unscoredColor represents absent signal.
)

// GetPlainLabel returns a plain text label indicating the priority level
// based on the entry's score relative to the top score of the run. This is
// the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(score, topScore float64) string {
	if topScore <= 0 {
		return LowValue
	}
	pct := score / topScore * 100
	switch {
	case pct >= 80:
		return CriticalValue
	case pct >= 60:
		return HighValue
	case pct >= 40:
		return ModerateValue
	default:
		return LowValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(score, topScore float64) string {
	text := GetPlainLabel(score, topScore)

	switch text {
	case CriticalValue:
		return CriticalColor.Sprint(text)
	case HighValue:
		return HighColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	default: // "Low"
		return LowColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// ShouldIgnore returns true if the given path matches any of the exclude patterns.
// It supports simple glob patterns (using filepath.Match) when the pattern
// contains wildcard characters (*, ?, [ ]). Patterns ending with '/' are treated
// as path segments. Patterns starting with '.' are treated as suffix (extension)
// matches. A user can provide patterns like "vendor/", "migrations/", "*.gen.py".
func ShouldIgnore(path string, excludes []string) bool {
	for _, ex := range excludes {
		ex = strings.TrimSpace(ex)
		if ex == "" {
			continue
		}

		// If the pattern contains glob characters, try filepath.Match.
		if strings.ContainsAny(ex, "*?[") {
			if ok, err := filepath.Match(ex, path); err == nil && ok {
				return true
			}
			// Also try matching against the base filename (e.g. *.gen.py)
			if ok, err := filepath.Match(ex, filepath.Base(path)); err == nil && ok {
				return true
			}
			continue
		}

		// Handle segment, suffix, or substring matches
		switch {
		case strings.HasSuffix(ex, "/"):
			if strings.Contains(path, "/"+ex) || strings.HasPrefix(path, ex) {
				return true
			}
		case strings.HasPrefix(ex, "."):
			if strings.HasSuffix(path, ex) {
				return true
			}
		case strings.Contains(path, ex):
			return true
		}
	}
	return false
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".lookout_cache.db"
	}
	return filepath.Join(homeDir, ".lookout_cache.db")
}

// GetAnalysisDBFilePath returns the path to the SQLite DB file for analysis storage.
func GetAnalysisDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".lookout_analysis.db"
	}
	return filepath.Join(homeDir, ".lookout_analysis.db")
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to ensure there's space for both the "..." prefix and
// at least one character of content.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
