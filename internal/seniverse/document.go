package seniverse

import "fmt"

// Document is a decoded JSON object as returned by the vendor.
type Document map[string]any

// Lookup walks path from d. String segments index objects and int segments
// index arrays. It reports false as soon as a segment is missing or the
// value has the wrong shape.
func (d Document) Lookup(path ...any) (any, bool) {
	var cur any = d
	for _, seg := range path {
		switch key := seg.(type) {
		case string:
			obj, ok := AsDocument(cur)
			if !ok {
				return nil, false
			}
			cur, ok = obj[key]
			if !ok {
				return nil, false
			}
		case int:
			arr, ok := cur.([]any)
			if !ok || key < 0 || key >= len(arr) {
				return nil, false
			}
			cur = arr[key]
		default:
			return nil, false
		}
	}
	return cur, true
}

// Object returns the object at path, or an empty Document when the path is
// missing or does not hold an object.
func (d Document) Object(path ...any) Document {
	v, ok := d.Lookup(path...)
	if !ok {
		return Document{}
	}
	obj, ok := AsDocument(v)
	if !ok {
		return Document{}
	}
	return obj
}

// AsDocument converts a decoded JSON value to a Document.
func AsDocument(v any) (Document, bool) {
	switch obj := v.(type) {
	case Document:
		return obj, true
	case map[string]any:
		return Document(obj), true
	default:
		return nil, false
	}
}

// First returns the first element of the array found at path.
// It fails with ErrNoData when the array is absent, empty, not an array, or
// its first element is not an object.
func First(doc Document, path ...any) (Document, error) {
	arr, err := array(doc, path)
	if err != nil {
		return nil, err
	}
	first, ok := AsDocument(arr[0])
	if !ok {
		return nil, fmt.Errorf("%v: first element is not an object: %w", path, ErrNoData)
	}
	return first, nil
}

// Items returns every object element of the array found at path.
// Non-object elements are skipped. It fails with ErrNoData when no object
// element remains.
func Items(doc Document, path ...any) ([]Document, error) {
	arr, err := array(doc, path)
	if err != nil {
		return nil, err
	}
	items := make([]Document, 0, len(arr))
	for _, v := range arr {
		if obj, ok := AsDocument(v); ok {
			items = append(items, obj)
		}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%v: no object elements: %w", path, ErrNoData)
	}
	return items, nil
}

func array(doc Document, path []any) ([]any, error) {
	v, ok := doc.Lookup(path...)
	if !ok {
		return nil, fmt.Errorf("%v: missing: %w", path, ErrNoData)
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%v: not an array: %w", path, ErrNoData)
	}
	if len(arr) == 0 {
		return nil, fmt.Errorf("%v: empty: %w", path, ErrNoData)
	}
	return arr, nil
}
