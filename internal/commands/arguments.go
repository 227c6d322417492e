package commands

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePRNumbers parses one or more PR number arguments, preserving order
// and rejecting duplicates so a PR is never processed twice in one batch.
func ParsePRNumbers(args []string) ([]int, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("at least one PR number is required")
	}

	seen := make(map[int]bool, len(args))
	numbers := make([]int, 0, len(args))
	for _, arg := range args {
		number, err := strconv.Atoi(arg)
		if err != nil || number <= 0 {
			return nil, fmt.Errorf("invalid PR number: %q", arg)
		}
		if seen[number] {
			continue
		}
		seen[number] = true
		numbers = append(numbers, number)
	}

	return numbers, nil
}

// ParsePRNumber parses a single required PR number argument
func ParsePRNumber(args []string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("PR number is required")
	}

	number, err := strconv.Atoi(args[0])
	if err != nil || number <= 0 {
		return 0, fmt.Errorf("invalid PR number: %q", args[0])
	}
	return number, nil
}

// SplitRepoQualifier splits an "owner/name" repository qualifier
func SplitRepoQualifier(qualifier string) (org, repo string, err error) {
	parts := strings.Split(qualifier, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository qualifier %q (expected owner/name)", qualifier)
	}
	return parts[0], parts[1], nil
}
