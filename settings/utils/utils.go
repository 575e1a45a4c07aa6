package utils

import (
	"regexp"
	"sort"

	"github.com/gin-gonic/gin"
)

func JSON(c *gin.Context, status int, v any) {
	c.Header("Content-Type", "application/json")
	c.JSON(status, v)
}

func Error(c *gin.Context, status int, message string) {
	JSON(c, status, gin.H{"message": message})
}

var placeholderRe = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)

// ExtractVariables returns the sorted, de-duplicated placeholder names in s.
func ExtractVariables(s string) []string {
	seen := map[string]bool{}
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(s, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	sort.Strings(names)
	return names
}

// Substitute replaces {{name}} placeholders in s with values. Placeholders
// without a value are left as-is and reported in missing.
func Substitute(s string, values map[string]string) (string, []string) {
	var missing []string
	seen := map[string]bool{}
	out := placeholderRe.ReplaceAllStringFunc(s, func(match string) string {
		name := placeholderRe.FindStringSubmatch(match)[1]
		if v, ok := values[name]; ok {
			return v
		}
		if !seen[name] {
			seen[name] = true
			missing = append(missing, name)
		}
		return match
	})
	sort.Strings(missing)
	return out, missing
}
