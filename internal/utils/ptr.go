package utils

func Ptr[T any](v T) *T {
	return &v
}

// Clone copies the value behind v so the copy can be changed independently.
func Clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	return Ptr(*v)
}
