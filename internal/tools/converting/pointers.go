package converting

// Unwrap returns the zero value of T for nil.
func Unwrap[T any](x *T) (r T) {
	if x != nil {
		r = *x
	}

	return
}

func PointerToValue[T any](v T) *T {
	return &v
}

// ClonePointer returns a new pointer to a copy of *x, nil stays nil.
func ClonePointer[T any](x *T) *T {
	if x == nil {
		return nil
	}

	return PointerToValue(*x)
}
