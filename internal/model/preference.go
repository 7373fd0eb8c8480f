package model

// LanguagePreferenceKey is the storage key of the language preference.
const LanguagePreferenceKey = "app_language"

// DefaultLanguage is used when nothing has been stored.
const DefaultLanguage = "en"

// SupportedLanguages are the languages the app ships translations for.
var SupportedLanguages = []string{"en", "ta"}

// IsSupportedLanguage reports whether lang has translations.
func IsSupportedLanguage(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}
