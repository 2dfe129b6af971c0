package intl

import (
	"golang.org/x/text/language"
)

type SupportedLanguage struct {
	Code        string
	VerboseName string
	Tag         language.Tag
}

// The UI ships English only. ApplicationOptions.SupportedLanguages can
// narrow the list further but never extend it past what the bundle holds.
var allSupportedLanguages = []SupportedLanguage{
	{
		Code:        "en",
		VerboseName: "English",
		Tag:         language.English,
	},
}

// GetSupportedLanguages filters the supported list down to the given codes.
// An empty whitelist keeps everything.
func GetSupportedLanguages(whitelist []string) []SupportedLanguage {
	if len(whitelist) == 0 {
		return allSupportedLanguages
	}

	allowed := make(map[string]bool, len(whitelist))
	for _, code := range whitelist {
		allowed[code] = true
	}

	filtered := make([]SupportedLanguage, 0, len(whitelist))
	for _, lang := range allSupportedLanguages {
		if allowed[lang.Code] {
			filtered = append(filtered, lang)
		}
	}

	return filtered
}
