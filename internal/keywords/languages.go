package keywords

// Language describes one supported target language and where its learners
// congregate. The table is an ordered slice on purpose: language detection
// resolves ties by first configured match.
type Language struct {
	Code       string
	Name       string
	NativeName string
	// Aliases are extra English names used in trigger templates and
	// detection (e.g. "mandarin" for Chinese).
	Aliases    []string
	Subreddits []string
}

// Languages returns the supported language table in detection order.
func Languages() []Language {
	return []Language{
		{Code: "ja", Name: "Japanese", NativeName: "日本語", Subreddits: []string{"LearnJapanese", "japanese"}},
		{Code: "en", Name: "English", NativeName: "English", Subreddits: []string{"EnglishLearning", "ENGLISH"}},
		{Code: "es", Name: "Spanish", NativeName: "Español", Subreddits: []string{"learnspanish", "Spanish"}},
		{Code: "fr", Name: "French", NativeName: "Français", Subreddits: []string{"French", "learnfrench"}},
		{Code: "de", Name: "German", NativeName: "Deutsch", Subreddits: []string{"German", "learngerman"}},
		{Code: "it", Name: "Italian", NativeName: "Italiano", Subreddits: []string{"italianlearning", "Italian"}},
		{Code: "pt", Name: "Portuguese", NativeName: "Português", Subreddits: []string{"Portuguese", "learnportuguese"}},
		{Code: "ko", Name: "Korean", NativeName: "한국어", Subreddits: []string{"Korean", "hanguk"}},
		{Code: "zh", Name: "Chinese", NativeName: "中文", Aliases: []string{"Mandarin"}, Subreddits: []string{"ChineseLanguage", "Chinese", "MandarinChinese"}},
		{Code: "hi", Name: "Hindi", NativeName: "हिन्दी", Subreddits: []string{"Hindi", "learnHindi"}},
		{Code: "ru", Name: "Russian", NativeName: "Русский", Subreddits: []string{"Russian", "learnRussian"}},
		{Code: "vi", Name: "Vietnamese", NativeName: "Tiếng Việt", Subreddits: []string{"Vietnamese", "learnVietnamese"}},
		{Code: "nl", Name: "Dutch", NativeName: "Nederlands", Subreddits: []string{"LearnDutch", "Dutch"}},
		{Code: "fil", Name: "Filipino", NativeName: "Filipino", Aliases: []string{"Tagalog"}, Subreddits: []string{"Tagalog", "Filipino"}},
		{Code: "id", Name: "Indonesian", NativeName: "Bahasa Indonesia", Subreddits: []string{"Indonesian", "learnIndonesian"}},
		{Code: "tr", Name: "Turkish", NativeName: "Türkçe", Subreddits: []string{"turkishlearning", "Turkish"}},
	}
}

// GeneralSubreddits are language-learning communities not tied to a single
// language.
func GeneralSubreddits() []string {
	return []string{"languagelearning", "language_exchange", "polyglot"}
}

// AllSubreddits returns the full deduplicated roster to monitor, general
// communities first, then per-language ones in table order.
func AllSubreddits() []string {
	seen := make(map[string]struct{})
	roster := make([]string, 0, 40)

	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		roster = append(roster, name)
	}

	for _, sub := range GeneralSubreddits() {
		add(sub)
	}

	for _, lang := range Languages() {
		for _, sub := range lang.Subreddits {
			add(sub)
		}
	}

	return roster
}
