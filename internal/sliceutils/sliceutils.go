package sliceutils

func Map[S any, T any](f func(s S) T, sourceArray []S) []T {
	targetArray := make([]T, 0, len(sourceArray))
	for _, sourceElement := range sourceArray {
		targetArray = append(targetArray, f(sourceElement))
	}
	return targetArray
}
