package typeutils

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"
)

// Compare returns 0 for equal, -1 if a < b else 1 if a > b.
// Strings that parse as timestamps compare as instants, not bytes, so
// mixed RFC3339 precisions order correctly.
func Compare(a, b any) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	switch aVal := a.(type) {
	case int, int8, int16, int32, int64:
		aInt := reflect.ValueOf(a).Convert(reflect.TypeOf(int64(0))).Int()
		bInt := reflect.ValueOf(b).Convert(reflect.TypeOf(int64(0))).Int()
		if aInt < bInt {
			return -1
		} else if aInt > bInt {
			return 1
		}
		return 0
	case float32, float64:
		aFloat := reflect.ValueOf(a).Convert(reflect.TypeOf(float64(0))).Float()
		bFloat := reflect.ValueOf(b).Convert(reflect.TypeOf(float64(0))).Float()

		if math.IsNaN(aFloat) {
			if math.IsNaN(bFloat) {
				return 0
			}
			return -1
		}
		if math.IsNaN(bFloat) {
			return 1
		}

		const eps = 1e-6
		diff := aFloat - bFloat
		if math.Abs(diff) < eps {
			return 0
		} else if diff < 0 {
			return -1
		}
		return 1
	case time.Time:
		bTime, ok := toGoTime(b)
		if !ok {
			return strings.Compare(fmt.Sprintf("%v", a), fmt.Sprintf("%v", b))
		}
		return aVal.Compare(bTime)
	case Time:
		bTime, ok := b.(Time)
		if ok {
			return aVal.Compare(bTime)
		}
		if goTime, ok := toGoTime(b); ok {
			return aVal.Time.Compare(goTime)
		}
		return strings.Compare(fmt.Sprintf("%v", a), fmt.Sprintf("%v", b))
	case string:
		bStr, ok := b.(string)
		if !ok {
			return strings.Compare(aVal, fmt.Sprintf("%v", b))
		}

		aTime, aErr := ParseTimestamp(aVal)
		bTime, bErr := ParseTimestamp(bStr)
		if aErr == nil && bErr == nil {
			return aTime.Compare(bTime)
		}

		return strings.Compare(aVal, bStr)
	case bool:
		bBool := b.(bool)
		if !aVal && bBool {
			return -1
		} else if aVal && !bBool {
			return 1
		}
		return 0
	default:
		return strings.Compare(fmt.Sprintf("%v", a), fmt.Sprintf("%v", b))
	}
}

// MaxCursor implements monotonic cursor advancement: the candidate wins
// only when it is strictly greater than the current value.
func MaxCursor(current, candidate any) any {
	if candidate == nil {
		return current
	}
	if current == nil || Compare(candidate, current) == 1 {
		return candidate
	}
	return current
}

func toGoTime(v any) (time.Time, bool) {
	switch typed := v.(type) {
	case time.Time:
		return typed, true
	case Time:
		return typed.Time, true
	case string:
		parsed, err := ParseTimestamp(typed)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	default:
		return time.Time{}, false
	}
}
