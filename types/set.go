package types

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goccy/go-json"
)

// Set is an insert-ordered, thread safe hash set; serializes as a JSON array.
type Set[T comparable] struct {
	mu       sync.RWMutex
	elements map[T]struct{}
	order    []T
}

func NewSet[T comparable](elements ...T) *Set[T] {
	set := &Set[T]{elements: make(map[T]struct{})}
	set.Insert(elements...)
	return set
}

func (s *Set[T]) Insert(elements ...T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, elem := range elements {
		if _, found := s.elements[elem]; !found {
			s.elements[elem] = struct{}{}
			s.order = append(s.order, elem)
		}
	}
}

func (s *Set[T]) Exists(element T) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, found := s.elements[element]
	return found
}

func (s *Set[T]) Remove(element T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.elements[element]; !found {
		return
	}
	delete(s.elements, element)
	for idx, elem := range s.order {
		if elem == element {
			s.order = append(s.order[:idx], s.order[idx+1:]...)
			break
		}
	}
}

func (s *Set[T]) Array() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	arr := make([]T, len(s.order))
	copy(arr, s.order)
	return arr
}

func (s *Set[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.elements)
}

// ProperSubsetOf reports whether s is a proper subset of other.
func (s *Set[T]) ProperSubsetOf(other *Set[T]) bool {
	if other == nil || s.Len() >= other.Len() {
		return false
	}
	for _, elem := range s.Array() {
		if !other.Exists(elem) {
			return false
		}
	}
	return true
}

func (s *Set[T]) Difference(other *Set[T]) *Set[T] {
	diff := NewSet[T]()
	for _, elem := range s.Array() {
		if other == nil || !other.Exists(elem) {
			diff.Insert(elem)
		}
	}
	return diff
}

func (s *Set[T]) String() string {
	sorted := make([]string, 0, s.Len())
	for _, elem := range s.Array() {
		sorted = append(sorted, fmt.Sprintf("%v", elem))
	}
	sort.Strings(sorted)
	return fmt.Sprintf("%v", sorted)
}

func (s *Set[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Array())
}

func (s *Set[T]) UnmarshalJSON(data []byte) error {
	var arr []T
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}

	s.mu.Lock()
	s.elements = make(map[T]struct{})
	s.order = nil
	s.mu.Unlock()

	s.Insert(arr...)
	return nil
}
