package orgmode

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/harrisonrobin/lockin/pkg/model"
)

var (
	headlineRegex = regexp.MustCompile(`^\*+\s+(TODO|DONE)\s+(?:\[#[A-Z]\]\s*)?(.*?)(?:\s+:[\w:@]+:)?\s*$`)
	deadlineRegex = regexp.MustCompile(`DEADLINE:\s+<(\d{4}-\d{2}-\d{2})[^>]*>`)
)

// ParseFile parses an Org-mode file and returns its dated TODO/DONE entries.
func ParseFile(filePath string) ([]model.Task, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Parse(file)
}

// Parse reads TODO and DONE headlines with a DEADLINE. Returned tasks have
// no id; headlines without a deadline are skipped.
func Parse(r io.Reader) ([]model.Task, error) {
	scanner := bufio.NewScanner(r)
	var tasks []model.Task
	var current *model.Task

	flush := func() {
		if current != nil && current.Title != "" && current.DueDate != "" {
			tasks = append(tasks, *current)
		}
		current = nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "*") {
			flush()
			if matches := headlineRegex.FindStringSubmatch(line); len(matches) > 0 {
				current = &model.Task{
					Title:     strings.TrimSpace(matches[2]),
					Completed: matches[1] == "DONE",
				}
			}
			continue
		}

		if current != nil && current.DueDate == "" {
			if matches := deadlineRegex.FindStringSubmatch(line); len(matches) > 0 {
				current.DueDate = matches[1]
			}
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}
