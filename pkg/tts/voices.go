package tts

// Voice describes one resolvable synthesis voice.
type Voice struct {
	// Name is the backend voice name (e.g. a Cloud TTS voice).
	Name string

	// LanguageCode is the backend language code. Some backends use broader
	// codes than callers (Cloud TTS serves Gulf Arabic as "ar-XA").
	LanguageCode string
}

// voiceRegistry maps caller language codes to symbolic voice IDs.
// Symbolic IDs ("default_female", "default_male") keep callers decoupled
// from backend voice naming.
var voiceRegistry = map[string]map[string]Voice{
	"ar-SA": {
		"default_female": {Name: "ar-XA-Wavenet-A", LanguageCode: "ar-XA"},
		"default_male":   {Name: "ar-XA-Wavenet-B", LanguageCode: "ar-XA"},
	},
	"en-US": {
		"default_female": {Name: "en-US-Wavenet-F", LanguageCode: "en-US"},
		"default_male":   {Name: "en-US-Wavenet-D", LanguageCode: "en-US"},
	},
	"en-GB": {
		"default_female": {Name: "en-GB-Wavenet-A", LanguageCode: "en-GB"},
		"default_male":   {Name: "en-GB-Wavenet-B", LanguageCode: "en-GB"},
	},
	"fr-FR": {
		"default_female": {Name: "fr-FR-Wavenet-A", LanguageCode: "fr-FR"},
		"default_male":   {Name: "fr-FR-Wavenet-B", LanguageCode: "fr-FR"},
	},
}

// ResolveVoice maps a (language, symbolic voice) pair to a backend voice.
// The second return is false for unsupported pairs — callers treat that as
// recoverable absence, not an error.
func ResolveVoice(language, voiceID string) (Voice, bool) {
	voices, ok := voiceRegistry[language]
	if !ok {
		return Voice{}, false
	}
	v, ok := voices[voiceID]
	return v, ok
}

// SupportedLanguages lists the registered caller language codes.
func SupportedLanguages() []string {
	langs := make([]string, 0, len(voiceRegistry))
	for code := range voiceRegistry {
		langs = append(langs, code)
	}
	return langs
}
