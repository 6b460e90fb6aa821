package types

import "testing"

func TestSimpleEquals(t *testing.T) {
	a := NewSimple(Integer)
	b := NewSimple(Integer)
	c := NewSimple(RealT)

	if !a.Equals(b) {
		t.Fatal("expected integer == integer")
	}
	if a.Equals(c) {
		t.Fatal("expected integer != real")
	}
}

func TestArrayEquals(t *testing.T) {
	a := NewArray(NewSimple(Integer), 5)
	b := NewArray(NewSimple(Integer), 5)
	c := NewArray(NewSimple(Integer), 6)
	d := NewArray(NewSimple(RealT), 5)

	if !a.Equals(b) {
		t.Fatal("expected same-size same-element arrays to be equal")
	}
	if a.Equals(c) {
		t.Fatal("expected different-size arrays to be unequal")
	}
	if a.Equals(d) {
		t.Fatal("expected different-element arrays to be unequal")
	}
}

func TestRecordEquals(t *testing.T) {
	r1 := NewRecord([]Field{{Name: "age", Type: NewSimple(Integer)}})
	r2 := NewRecord([]Field{{Name: "age", Type: NewSimple(Integer)}})
	r3 := NewRecord([]Field{{Name: "height", Type: NewSimple(Integer)}})

	if !r1.Equals(r2) {
		t.Fatal("expected structurally identical records to be equal")
	}
	if r1.Equals(r3) {
		t.Fatal("expected differently-named fields to be unequal")
	}
}

func TestRecordFieldType(t *testing.T) {
	r := NewRecord([]Field{{Name: "age", Type: NewSimple(Integer)}})
	if typ, ok := r.FieldType("age"); !ok || !typ.Equals(NewSimple(Integer)) {
		t.Fatal("expected to find field 'age' of type integer")
	}
	if _, ok := r.FieldType("height"); ok {
		t.Fatal("did not expect field 'height' to exist")
	}
}

func TestCompatible(t *testing.T) {
	tests := []struct {
		target, value Type
		want          bool
	}{
		{NewSimple(Integer), NewSimple(Integer), true},
		{NewSimple(RealT), NewSimple(Integer), true},
		{NewSimple(Integer), NewSimple(RealT), false},
		{NewSimple(Boolean), NewSimple(Integer), false},
		{NewArray(NewSimple(Integer), 5), NewArray(NewSimple(Integer), 5), true},
		{NewArray(NewSimple(Integer), 5), NewArray(NewSimple(Integer), 6), false},
		{NewArray(NewSimple(RealT), 5), NewArray(NewSimple(Integer), 5), true},
	}
	for i, tt := range tests {
		if got := Compatible(tt.target, tt.value); got != tt.want {
			t.Errorf("tests[%d]: Compatible(%s, %s) = %v, want %v", i, tt.target, tt.value, got, tt.want)
		}
	}
}

func TestResultOfBinaryNumeric(t *testing.T) {
	if res, ok := ResultOfBinaryNumeric(NewSimple(Integer), NewSimple(Integer)); !ok || res.String() != Integer {
		t.Fatal("expected integer+integer -> integer")
	}
	if res, ok := ResultOfBinaryNumeric(NewSimple(Integer), NewSimple(RealT)); !ok || res.String() != RealT {
		t.Fatal("expected integer+real -> real")
	}
	if _, ok := ResultOfBinaryNumeric(NewSimple(Boolean), NewSimple(Integer)); ok {
		t.Fatal("expected boolean operand to be rejected")
	}
}

func TestCastableBetween(t *testing.T) {
	castables := []string{Integer, RealT, Boolean}
	for _, from := range castables {
		for _, to := range castables {
			if !CastableBetween(NewSimple(from), NewSimple(to)) {
				t.Errorf("expected cast %s -> %s to be valid", from, to)
			}
		}
	}
	if CastableBetween(NewSimple(StringT), NewSimple(Integer)) {
		t.Fatal("did not expect string -> integer to be castable")
	}
	if CastableBetween(NewSimple(Integer), NewSimple(StringT)) {
		t.Fatal("did not expect integer -> string to be castable")
	}
}
