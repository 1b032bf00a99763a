// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Package test collects together helper functions used by the test files of
// other packages in the project. None of the functions here are
// sophisticated; they exist only to reduce boilerplate in table-driven tests
// of bus, CPU and scheduler behaviour.
package test

import (
	"reflect"
	"testing"
)

// ExpectEquality fails the test if got and want are not deeply equal.
func ExpectEquality(t *testing.T, got, want interface{}) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, wanted %v", got, want)
	}
}

// Equate is a historical alias for ExpectEquality, kept because several
// table-driven tests in this tree were written against it.
func Equate(t *testing.T, got, want interface{}) {
	t.Helper()
	ExpectEquality(t, got, want)
}

// ExpectInequality fails the test if got and want are deeply equal.
func ExpectInequality(t *testing.T, got, want interface{}) {
	t.Helper()
	if reflect.DeepEqual(got, want) {
		t.Errorf("got %v, wanted something other than %v", got, want)
	}
}

// ExpectApproximate fails the test if got and want, converted to float64,
// differ by more than tolerance, a fraction of want (0.1 allows 10% either
// side).
func ExpectApproximate(t *testing.T, got, want interface{}, tolerance float64) {
	t.Helper()

	g, gok := toFloat64(got)
	w, wok := toFloat64(want)
	if !gok || !wok {
		t.Errorf("cannot compare %T and %T approximately", got, want)
		return
	}

	d := g - w
	if d < 0 {
		d = -d
	}
	limit := w * tolerance
	if limit < 0 {
		limit = -limit
	}
	if d > limit {
		t.Errorf("got %v, wanted %v (within %v)", got, want, tolerance)
	}
}

func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// ExpectSuccess fails the test if v is a non-nil error or a false bool.
func ExpectSuccess(t *testing.T, v interface{}) {
	t.Helper()
	switch v := v.(type) {
	case nil:
		return
	case bool:
		if !v {
			t.Errorf("expected success, got false")
		}
	case error:
		if v != nil {
			t.Errorf("expected success, got error: %v", v)
		}
	}
}

// ExpectFailure fails the test if v is a nil error or a true bool.
func ExpectFailure(t *testing.T, v interface{}) {
	t.Helper()
	switch v := v.(type) {
	case bool:
		if v {
			t.Errorf("expected failure, got true")
		}
	case error:
		if v == nil {
			t.Errorf("expected failure, got nil error")
		}
	}
}
