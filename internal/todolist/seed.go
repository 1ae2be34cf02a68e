package todolist

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/nhle/dragtodo/internal/model"
)

var seedNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("dragtodo.seed"))

// SeedTasks builds open tasks from names, skipping names that Add would
// reject. When newID is nil the ids are derived from position and name,
// so the same seed yields the same ids on every start.
func SeedTasks(names []string, newID func() string) []model.Task {
	tasks := make([]model.Task, 0, len(names))
	for i, n := range names {
		n = strings.TrimSpace(n)
		if utf8.RuneCountInString(n) < model.MinNameLength {
			continue
		}
		var id string
		if newID != nil {
			id = newID()
		} else {
			id = uuid.NewSHA1(seedNamespace, []byte(strconv.Itoa(i)+"\x00"+n)).String()
		}
		tasks = append(tasks, model.Task{ID: id, Name: n})
	}
	return tasks
}
