package fonts

import "testing"

func TestLoadDefaults(t *testing.T) {
	if err := LoadDefaults(12); err != nil {
		t.Fatalf("LoadDefaults: %v", err)
	}
	for _, name := range []FontName{Regular} {
		face := name.Get()
		if face == nil {
			t.Fatalf("%s: nil face", name)
		}
		if h := face.Metrics().Height.Ceil(); h <= 0 {
			t.Errorf("%s: line height %d", name, h)
		}
	}
}

func TestLoadInvalidFont(t *testing.T) {
	if err := LoadFontWithSize("broken", []byte("not a font"), 10); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestMissingFontPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unknown font")
		}
	}()
	FontName("missing").Get()
}
