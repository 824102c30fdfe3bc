// Package grouping splits an ordered list of pack names into contiguous
// groups and converts groups to and from the pipeline's delimited format.
package grouping

import (
	"errors"
	"fmt"
	"strings"

	"bundlepacks/constants"
)

var (
	// ErrNoPacks is returned when there is nothing to split.
	ErrNoPacks = errors.New("no bundle packs found in manifest")

	// ErrInvalidGroupCount is returned for a target group count below one.
	ErrInvalidGroupCount = errors.New("group count must be at least 1")
)

// GroupSize returns ceil(total/groups). Any groups value is safe, including
// ones far larger than total.
func GroupSize(total, groups int) (int, error) {
	if groups < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidGroupCount, groups)
	}
	if total < 1 {
		return 0, ErrNoPacks
	}
	size := total / groups
	if total%groups != 0 {
		size++
	}
	return size, nil
}

// Split partitions names into at most groups contiguous chunks of GroupSize
// elements, the last one possibly shorter. Order is preserved.
func Split(names []string, groups int) ([][]string, error) {
	size, err := GroupSize(len(names), groups)
	if err != nil {
		return nil, err
	}

	chunks := make([][]string, 0, len(names)/size+1)
	for start := 0; start < len(names); start += size {
		end := min(start+size, len(names))
		chunks = append(chunks, names[start:end:end])
	}
	return chunks, nil
}

// Format joins names with commas and groups with pipes.
func Format(groups [][]string) string {
	parts := make([]string, len(groups))
	for i, group := range groups {
		parts[i] = strings.Join(group, constants.NameSeparator)
	}
	return strings.Join(parts, constants.GroupSeparator)
}

// Parse is the inverse of Format. Blank names are dropped and groups left
// empty by that are removed.
func Parse(value string) [][]string {
	var groups [][]string
	for _, part := range strings.Split(value, constants.GroupSeparator) {
		var group []string
		for _, name := range strings.Split(part, constants.NameSeparator) {
			if name = strings.TrimSpace(name); name != "" {
				group = append(group, name)
			}
		}
		if len(group) > 0 {
			groups = append(groups, group)
		}
	}
	return groups
}

// Count returns the total number of names across groups.
func Count(groups [][]string) int {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	return total
}
