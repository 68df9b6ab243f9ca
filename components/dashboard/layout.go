package dashboard

import (
	"fmt"
	"sort"
)

func sortByOrder[T any, S any](v Variant[T, S], items []T) {
	sort.SliceStable(items, func(i, j int) bool {
		return v.ItemOrder(items[i]) < v.ItemOrder(items[j])
	})
}

// moveItem applies splice semantics: the element at from is removed and
// reinserted at to, then every order is rewritten to its new index.
func moveItem[T any, S any](v Variant[T, S], items []T, from, to int) ([]T, error) {
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) {
		return nil, fmt.Errorf("%w: from=%d to=%d len=%d", ErrIndexOutOfRange, from, to, len(items))
	}
	result := make([]T, 0, len(items))
	result = append(result, items[:from]...)
	result = append(result, items[from+1:]...)
	moved := items[from]
	result = append(result[:to], append([]T{moved}, result[to:]...)...)
	for i := range result {
		result[i] = v.WithOrder(result[i], i)
	}
	return result, nil
}

func applyOrderOverride[T any, S any](v Variant[T, S], items []T, order []string) []T {
	if len(order) == 0 {
		return items
	}
	index := make(map[string]T, len(items))
	for _, item := range items {
		index[v.ItemKey(item)] = item
	}
	result := make([]T, 0, len(items))
	seen := make(map[string]struct{}, len(order))
	for _, key := range order {
		if item, ok := index[key]; ok {
			if _, dup := seen[key]; dup {
				continue
			}
			result = append(result, item)
			seen[key] = struct{}{}
		}
	}
	for _, item := range items {
		if _, ok := seen[v.ItemKey(item)]; !ok {
			result = append(result, item)
		}
	}
	for i := range result {
		result[i] = v.WithOrder(result[i], i)
	}
	return result
}
