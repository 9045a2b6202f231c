/*
Package assert holds the assertions shared by the lockbox tests. Each of
them stops the test on failure.
*/
package assert

import (
	"reflect"

	"github.com/iov-one/lockbox/errors"
)

// Tester is the part of testing.TB the assertions need.
type Tester interface {
	Helper()
	Logf(string, ...interface{})
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails unless value is nil, a typed nil pointer included.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if value == nil {
		return
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		if v.IsNil() {
			return
		}
	}
	// %+v prints the stack of errors that carry one.
	t.Fatalf("want nil, got %+v", value)
}

// Equal compares want and got with reflect.DeepEqual.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("want %T %v\n got %T %v", want, want, got, got)
	}
}

// Panics fails unless fn panics.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("no panic")
		}
	}()
	fn()
}

// IsErr fails unless got is want or is matched by want's Is method.
func IsErr(t Tester, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if m, ok := want.(interface{ Is(error) bool }); ok && m.Is(got) {
		return
	}
	t.Fatalf("want %q, got %+v", want, got)
}

// FieldError checks the errors err reports for field. A nil want asserts
// that there are none, otherwise there must be exactly one and it must
// match want.
func FieldError(t Tester, err error, field string, want *errors.Error) {
	t.Helper()
	found := errors.FieldErrors(err, field)
	wantCount := 1
	if want == nil {
		wantCount = 0
	}
	if len(found) != wantCount {
		for i, e := range found {
			t.Logf("field %q error %d: %s", field, i+1, e)
		}
		t.Fatalf("want %d errors for field %q, got %d", wantCount, field, len(found))
	}
	if want != nil && !want.Is(found[0]) {
		t.Fatalf("field %q: want %q, got %q", field, want, found[0])
	}
}
