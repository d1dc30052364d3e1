package utils

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/oklog/ulid"
	"github.com/spf13/cobra"

	"github.com/datazip-inc/tap-persona/utils/logger"
)

// Ternary is a generic helper for one-line conditionals
func Ternary(cond bool, a, b any) any {
	if cond {
		return a
	}
	return b
}

// UnmarshalFile reads a JSON file into the provided structure.
// When logContent is set the parsed content is debug logged, so never
// enable it for files carrying secrets.
func UnmarshalFile(filePath string, dest any, logContent bool) error {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %s", filePath, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("failed to unmarshal file %s: %s", filePath, err)
	}

	if logContent {
		logger.Debugf("content of file %s is %v", filePath, dest)
	}

	return nil
}

// ArrayContains checks an array for the existence of an element
// matching the predicate and returns its index
func ArrayContains[T any](array []T, match func(elem T) bool) (int, bool) {
	for idx, elem := range array {
		if match(elem) {
			return idx, true
		}
	}

	return -1, false
}

// ForEach runs fn over the array, stopping at the first error
func ForEach[T any](array []T, fn func(one T) error) error {
	for _, one := range array {
		if err := fn(one); err != nil {
			return err
		}
	}

	return nil
}

func MapKeys[K comparable, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	return keys
}

func IsValidSubcommand(available []*cobra.Command, sub string) bool {
	for _, command := range available {
		if command.Use == sub {
			return true
		}
	}
	return false
}

// ULID returns a lexicographically sortable unique ID used for thread naming
func ULID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
