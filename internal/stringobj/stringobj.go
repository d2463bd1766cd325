// Package stringobj aids in writing String methods for objects
// with a JSON-like output.
package stringobj

import (
	"fmt"
	"reflect"
	"strings"
)

// Builder builds String output for objects,
// listing attributes in the order they were added
// and skipping zero-value attributes.
//
// The zero value is ready to use.
type Builder struct {
	out   strings.Builder
	count int
}

// Put adds the given attribute-value pair to the builder,
// skipping it if the value is a zero value.
func (b *Builder) Put(name string, value interface{}) {
	if value == nil || reflect.ValueOf(value).IsZero() {
		return
	}
	b.put(name, value)
}

// PutAlways adds the given attribute-value pair to the builder
// even if the value is a zero value.
func (b *Builder) PutAlways(name string, value interface{}) {
	b.put(name, value)
}

func (b *Builder) put(name string, value interface{}) {
	if b.count > 0 {
		b.out.WriteString(", ")
	}
	b.count++
	fmt.Fprintf(&b.out, "%s: %v", name, value)
}

// String returns the final string representation.
func (b *Builder) String() string {
	return "{" + b.out.String() + "}"
}
