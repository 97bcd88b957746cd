package core

import (
	"reflect"

	"github.com/ilsrd/ilsrd/state"
)

// Get retrieves a module by its concrete type, mirroring the teacher's
// impl/utils.go Get[T state.NyModule](s) helper: modules refer to each
// other by type, never by storing a direct pointer, so initialization
// order never matters.
func Get[T state.NyModule](s *state.State) T {
	t := reflect.TypeFor[T]()
	return s.Modules[t.String()].(T)
}

func registerModule(s *state.State, m state.NyModule) error {
	s.Modules[reflect.TypeOf(m).String()] = m
	return m.Init(s)
}
