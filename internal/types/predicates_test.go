package types

import "testing"

func TestPredicates(t *testing.T) {
	in := NewInterner()
	i32 := Typ[Int32]
	arr := in.Array(i32, 4)
	str := in.Array(in.Const(Typ[Char]), 6)
	unsized := in.UnsizedArray(Typ[Char])
	st := newStruct("S", i32)
	fn := NewFunc(nil, nil)

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"IsConst(const int)", IsConst(in.Const(i32)), true},
		{"IsConst(int)", IsConst(i32), false},
		{"IsInt32(const int)", IsInt32(in.Const(i32)), true},
		{"IsBool(bool)", IsBool(Typ[Bool]), true},
		{"IsVoid(void)", IsVoid(Typ[Void]), true},
		{"IsPrimitive(char)", IsPrimitive(Typ[Char]), true},
		{"IsPrimitive([4]int)", IsPrimitive(arr), false},
		{"IsArray([4]int)", IsArray(arr), true},
		{"IsArray(const [4]int)", IsArray(in.Const(arr)), true},
		{"IsArray(S)", IsArray(st), false},
		{"IsStruct(S)", IsStruct(st), true},
		{"IsFunction(func)", IsFunction(fn), true},
		{"IsFunction(int)", IsFunction(i32), false},
		{"IsCharArray([6]const char)", IsCharArray(str), true},
		{"IsCharArray([]char)", IsCharArray(unsized), true},
		{"IsCharArray([4]int)", IsCharArray(arr), false},
		{"IsContiguouslyStored([4]int)", IsContiguouslyStored(arr), true},
		{"IsContiguouslyStored([]char)", IsContiguouslyStored(unsized), false},
		{"IsContiguouslyStored(S)", IsContiguouslyStored(st), true},
		{"IsContiguouslyStored(int)", IsContiguouslyStored(i32), false},
		{"HasUniformContents([4]int)", HasUniformContents(arr), true},
		{"HasUniformContents(S)", HasUniformContents(st), false},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestUnqualified(t *testing.T) {
	in := NewInterner()
	arr := in.Array(Typ[Int32], 2)
	if Unqualified(in.Const(arr)) != Type(arr) {
		t.Error("Unqualified(const [2]int) != [2]int")
	}
	if Unqualified(arr) != Type(arr) {
		t.Error("Unqualified must be identity on unqualified types")
	}
}

func TestNarrowing(t *testing.T) {
	in := NewInterner()
	arr := in.Array(Typ[Int32], 2)
	if AsArray(in.Const(arr)) != arr {
		t.Error("AsArray does not look through const")
	}
	st := newStruct("S", Typ[Int32])
	if AsStruct(st) != st {
		t.Error("AsStruct mismatch")
	}
	if AsBasic(in.Const(Typ[Char])) != Typ[Char] {
		t.Error("AsBasic mismatch")
	}

	misuse := []struct {
		name string
		fn   func()
	}{
		{"AsArray(int)", func() { AsArray(Typ[Int32]) }},
		{"AsStruct([2]int)", func() { AsStruct(arr) }},
		{"AsFunction(int)", func() { AsFunction(Typ[Int32]) }},
		{"AsBasic(S)", func() { AsBasic(st) }},
	}
	for _, tt := range misuse {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("%s did not panic", tt.name)
				}
			}()
			tt.fn()
		})
	}
}
