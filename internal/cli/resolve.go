package cli

import (
	"strings"

	"github.com/nhle/dragtodo/internal/model"
)

// resolveID expands a unique id prefix to the full id. Exact matches win;
// unknown or ambiguous prefixes are returned unchanged so the task list
// treats them as a missing id.
func resolveID(tasks []model.Task, arg string) string {
	if arg == "" || model.IndexOf(tasks, arg) >= 0 {
		return arg
	}

	match := ""
	for _, t := range tasks {
		if !strings.HasPrefix(t.ID, arg) {
			continue
		}
		if match != "" {
			return arg
		}
		match = t.ID
	}
	if match == "" {
		return arg
	}
	return match
}
