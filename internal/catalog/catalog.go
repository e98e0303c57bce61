// Package catalog holds the static mapping between supported language
// names and their speech/TTS locale codes. The table is immutable
// process-wide state.
package catalog

// Language pairs a human-readable name with its BCP-47 locale code
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Flag string `json:"flag"`
}

var supported = []Language{
	{Code: "en-US", Name: "English", Flag: "🇺🇸"},
	{Code: "ur-PK", Name: "Urdu", Flag: "🇵🇰"},
	{Code: "ar-SA", Name: "Arabic", Flag: "🇸🇦"},
	{Code: "zh-CN", Name: "Chinese", Flag: "🇨🇳"},
	{Code: "fr-FR", Name: "French", Flag: "🇫🇷"},
	{Code: "de-DE", Name: "German", Flag: "🇩🇪"},
	{Code: "hi-IN", Name: "Hindi", Flag: "🇮🇳"},
	{Code: "it-IT", Name: "Italian", Flag: "🇮🇹"},
	{Code: "ja-JP", Name: "Japanese", Flag: "🇯🇵"},
	{Code: "ko-KR", Name: "Korean", Flag: "🇰🇷"},
	{Code: "pt-PT", Name: "Portuguese", Flag: "🇵🇹"},
	{Code: "ru-RU", Name: "Russian", Flag: "🇷🇺"},
	{Code: "es-ES", Name: "Spanish", Flag: "🇪🇸"},
}

// Default returns English, the fallback language
func Default() Language {
	return supported[0]
}

// Supported returns a copy of the catalog
func Supported() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

// Names returns the human-readable names in catalog order
func Names() []string {
	out := make([]string, len(supported))
	for i, l := range supported {
		out[i] = l.Name
	}
	return out
}

// ByName looks a language up by its human-readable name
func ByName(name string) (Language, bool) {
	for _, l := range supported {
		if l.Name == name {
			return l, true
		}
	}
	return Language{}, false
}

// ByCode looks a language up by its locale code
func ByCode(code string) (Language, bool) {
	for _, l := range supported {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// CodeForName resolves a language name to its locale code, falling back
// to the default when the name is unknown
func CodeForName(name string) string {
	if l, ok := ByName(name); ok {
		return l.Code
	}
	return Default().Code
}
