package catalog

import "testing"

func TestByName(t *testing.T) {
	tests := []struct {
		name     string
		lookup   string
		wantCode string
		wantOK   bool
	}{
		{name: "English", lookup: "English", wantCode: "en-US", wantOK: true},
		{name: "Spanish", lookup: "Spanish", wantCode: "es-ES", wantOK: true},
		{name: "Urdu", lookup: "Urdu", wantCode: "ur-PK", wantOK: true},
		{name: "Unknown", lookup: "Klingon", wantCode: "", wantOK: false},
		{name: "Case sensitive", lookup: "english", wantCode: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lang, ok := ByName(tt.lookup)
			if ok != tt.wantOK {
				t.Fatalf("ByName(%q) ok = %v, want %v", tt.lookup, ok, tt.wantOK)
			}
			if lang.Code != tt.wantCode {
				t.Errorf("ByName(%q) code = %q, want %q", tt.lookup, lang.Code, tt.wantCode)
			}
		})
	}
}

func TestByCode(t *testing.T) {
	lang, ok := ByCode("ja-JP")
	if !ok || lang.Name != "Japanese" {
		t.Errorf("ByCode(ja-JP) = %+v, %v; want Japanese, true", lang, ok)
	}
	if _, ok := ByCode("xx-XX"); ok {
		t.Error("ByCode(xx-XX) should not resolve")
	}
}

func TestCodeForName_FallsBackToDefault(t *testing.T) {
	if code := CodeForName("Martian"); code != "en-US" {
		t.Errorf("CodeForName(Martian) = %q, want en-US", code)
	}
	if code := CodeForName("German"); code != "de-DE" {
		t.Errorf("CodeForName(German) = %q, want de-DE", code)
	}
}

func TestNames_CatalogOrder(t *testing.T) {
	names := Names()
	if len(names) != len(Supported()) {
		t.Fatalf("len(Names) = %d, want %d", len(names), len(Supported()))
	}
	if names[0] != "English" || names[len(names)-1] != "Spanish" {
		t.Errorf("Names order = %v", names)
	}
}

func TestSupported_ReturnsCopy(t *testing.T) {
	first := Supported()
	first[0].Name = "mutated"
	if Supported()[0].Name != "English" {
		t.Error("Supported() must return a copy, not the backing table")
	}
}
