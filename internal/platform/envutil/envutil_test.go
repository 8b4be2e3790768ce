package envutil

import "testing"

func TestString(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_STR", "  hello  ")
	if got := String("ENVUTIL_TEST_STR", "def"); got != "hello" {
		t.Fatalf("String=%q, want trimmed value", got)
	}
	if got := String("ENVUTIL_TEST_MISSING", "def"); got != "def" {
		t.Fatalf("String=%q, want default for unset var", got)
	}
}

func TestInt(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_INT", "42")
	if got := Int("ENVUTIL_TEST_INT", 7); got != 42 {
		t.Fatalf("Int=%d, want 42", got)
	}
	t.Setenv("ENVUTIL_TEST_INT", "not a number")
	if got := Int("ENVUTIL_TEST_INT", 7); got != 7 {
		t.Fatalf("Int=%d, want default on parse failure", got)
	}
}

func TestBool(t *testing.T) {
	cases := []struct {
		value string
		def   bool
		want  bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"ON", false, true},
		{"false", true, false},
		{"off", true, false},
		{"maybe", true, true},
	}
	for _, tc := range cases {
		t.Run(tc.value, func(t *testing.T) {
			t.Setenv("ENVUTIL_TEST_BOOL", tc.value)
			if got := Bool("ENVUTIL_TEST_BOOL", tc.def); got != tc.want {
				t.Fatalf("Bool(%q, %v)=%v, want %v", tc.value, tc.def, got, tc.want)
			}
		})
	}
}
