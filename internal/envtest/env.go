// Package envtest provides a fake environment for tests
// that inject a Getenv function in place of os.Getenv.
package envtest

import (
	"fmt"
)

// Empty is an environment with no variables set.
var Empty = &Env{}

// Env is a fake, immutable environment.
type Env struct {
	vars map[string]string
}

// Pairs builds an environment from alternating names and values.
func Pairs(pairs ...string) (*Env, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("%d items in environment are not even", len(pairs))
	}

	vars := make(map[string]string, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		vars[pairs[i]] = pairs[i+1]
	}
	return &Env{vars: vars}, nil
}

// MustPairs is like Pairs, but panics on an odd number of items.
func MustPairs(pairs ...string) *Env {
	e, err := Pairs(pairs...)
	if err != nil {
		panic(err)
	}
	return e
}

// With returns a copy of the environment with name set to value.
// The receiver is left unchanged.
func (e *Env) With(name, value string) *Env {
	vars := make(map[string]string, e.Len()+1)
	if e != nil {
		for k, v := range e.vars {
			vars[k] = v
		}
	}
	vars[name] = value
	return &Env{vars: vars}
}

// Len reports the number of variables set.
func (e *Env) Len() int {
	if e == nil {
		return 0
	}
	return len(e.vars)
}

// Getenv is an analog for os.Getenv.
// Unset variables are empty.
func (e *Env) Getenv(name string) string {
	if e == nil {
		return ""
	}
	return e.vars[name]
}
