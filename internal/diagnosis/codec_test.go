package diagnosis

import (
	"errors"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	for _, label := range Classes() {
		name, err := ClassToName(label)
		if err != nil {
			t.Fatalf("ClassToName(%d) failed: %v", label, err)
		}
		back, err := NameToClass(name)
		if err != nil {
			t.Fatalf("NameToClass(%q) failed: %v", name, err)
		}
		if back != label {
			t.Errorf("NameToClass(ClassToName(%d)) = %d, want %d", label, back, label)
		}
	}

	for _, name := range Names() {
		label, err := NameToClass(name)
		if err != nil {
			t.Fatalf("NameToClass(%q) failed: %v", name, err)
		}
		back, err := ClassToName(label)
		if err != nil {
			t.Fatalf("ClassToName(%d) failed: %v", label, err)
		}
		if back != name {
			t.Errorf("ClassToName(NameToClass(%q)) = %q, want %q", name, back, name)
		}
	}
}

func TestClassToName_OutOfRange(t *testing.T) {
	for _, label := range []int{-1, NumClasses(), 100} {
		t.Run("", func(t *testing.T) {
			if _, err := ClassToName(label); !errors.Is(err, ErrClassOutOfRange) {
				t.Errorf("ClassToName(%d) error = %v, want ErrClassOutOfRange", label, err)
			}
		})
	}
}

func TestNameToClass_Unknown(t *testing.T) {
	tests := []string{"", "copd", "Flu", "Healthy "}

	for _, name := range tests {
		if _, err := NameToClass(name); !errors.Is(err, ErrUnknownDiagnosis) {
			t.Errorf("NameToClass(%q) error = %v, want ErrUnknownDiagnosis", name, err)
		}
	}
}

func TestNumClasses(t *testing.T) {
	if got := NumClasses(); got != 8 {
		t.Errorf("NumClasses() = %d, want 8", got)
	}
	if got := len(Classes()); got != NumClasses() {
		t.Errorf("len(Classes()) = %d, want %d", got, NumClasses())
	}
}

func TestNames_Copy(t *testing.T) {
	first := Names()
	first[0] = "mutated"

	second := Names()
	if second[0] != "Healthy" {
		t.Error("Names() should return a copy, not the backing slice")
	}
}
