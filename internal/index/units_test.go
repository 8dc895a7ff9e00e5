package index

import "testing"

func TestExtractUnitsGoFunctionsInSourceOrder(t *testing.T) {
	src := "package demo\n\nfunc A() {\n\treturn\n}\n\nfunc B() {\n\treturn\n}\n"
	got := ExtractUnits("demo.go", []byte(src))
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
	if got[0].StartLine >= got[1].StartLine {
		t.Fatalf("units not in source order: %+v", got)
	}
	if got[1].EndLine != 9 {
		t.Fatalf("last unit end line = %d, want EOF line 9", got[1].EndLine)
	}
}

func TestExtractUnitsUnknownExtensionReturnsNil(t *testing.T) {
	if got := ExtractUnits("notes.txt", []byte("hello")); got != nil {
		t.Fatalf("ExtractUnits on unknown extension = %+v, want nil", got)
	}
}

func TestExtractUnitsPythonMethodNameIncludesClass(t *testing.T) {
	src := "class Greeter:\n    def hello(self):\n        return 1\n"
	got := ExtractUnits("greeter.py", []byte(src))
	if len(got) != 1 {
		t.Fatalf("len(got) = %d, want 1", len(got))
	}
	if got[0].Name != "greeter.Greeter.hello" {
		t.Fatalf("Name = %q, want %q", got[0].Name, "greeter.Greeter.hello")
	}
}
