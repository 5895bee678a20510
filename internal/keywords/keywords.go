package keywords

// LanguagePlaceholder marks where a language name is substituted into a
// templated trigger phrase.
const LanguagePlaceholder = "{language}"

// TriggerTemplates are expanded once per supported language (name and
// aliases) before matching.
func TriggerTemplates() []string {
	return []string{
		"speak {language}",
		"learning {language}",
		"best way to learn {language}",
		"fluency in {language}",
		"practice speaking {language}",
		"become conversational in {language}",
		"conversational {language}",
	}
}

// TriggerKeywords are literal phrases whose presence raises signal.
func TriggerKeywords() []string {
	return []string{
		// Speaking anxiety / emotional
		"afraid to speak",
		"scared to speak",
		"scared to talk",
		"nervous to speak",
		"anxiety when speaking",
		"speaking anxiety",
		"freeze up",
		"freezing up",
		"blank out",
		"mind goes blank",
		"too shy",
		"embarrassed to speak",
		"frustrated",
		"overwhelmed",
		"losing motivation",
		"want to give up",
		"giving up",
		"stuck at",
		"hit a wall",
		"plateau",

		// Life events / deadlines
		"moving to",
		"relocating to",
		"going to move",
		"in-laws",
		"in laws",
		"partner's family",
		"spouse's family",
		"meeting family",
		"job interview",
		"work trip",
		"business meeting",
		"business trip",
		"need to learn fast",
		"need to learn quickly",
		"before i move",
		"before moving",

		// App/method frustration
		"duolingo isn't working",
		"duolingo doesn't work",
		"duolingo not helping",
		"quit duolingo",
		"beyond duolingo",
		"apps don't help",
		"apps aren't helping",
		"textbook isn't helping",
		"still can't speak",
		"can't speak",
		"can read but can't speak",
		"understand but can't speak",
		"years of studying",
		"studied for years",
		"been learning for",
		"learning for months",
		"learning for years",

		// Heritage speakers / family
		"heritage speaker",
		"lost my language",
		"can't speak to relatives",
		"bilingual couple",
		"language barrier relationship",
		"conversational fluency",

		// Specific needs
		"conversation practice",
		"speaking practice",
		"speaking partner",
		"conversation partner",
		"language partner",
		"native speaker",
		"real conversations",
		"actual conversations",
		"practical speaking",
		"everyday conversation",
		"daily conversation",
		"survival phrases",
		"need to speak",
		"want to speak",
		"improve my speaking",
		"practice speaking",

		// Intermediate+ learners
		"intermediate",
		"upper intermediate",
		"advanced but",
		"b1",
		"b2",
		"c1",
		"conversational level",
		"can hold a conversation",
	}
}

// ExcludeKeywords veto a post regardless of trigger matches: test prep,
// homework, translation requests, passive media consumption, and resource
// shopping are low-signal for a speaking-practice product.
func ExcludeKeywords() []string {
	return []string{
		// Proficiency tests
		"jlpt",
		"n1",
		"n2",
		"n3",
		"n4",
		"n5",
		"hsk",
		"topik",
		"dele",
		"delf",
		"dalf",
		"goethe",
		"telc",
		"toefl",
		"ielts",
		"test prep",
		"exam prep",
		"pass the exam",

		// Academic / homework
		"homework",
		"assignment",
		"school project",
		"university course",
		"college course",
		"quiz",
		"final exam",
		"midterm",
		"professor",
		"teacher said",

		// Translation requests
		"translate this",
		"what does this mean",
		"help me translate",
		"can someone translate",
		"translation help",
		"what does this say",
		"how do you say",

		// Passive media consumption
		"anime",
		"manga",
		"light novel",
		"visual novel",
		"kdrama",
		"cdrama",
		"jdrama",
		"subtitles",
		"webtoon",

		// Off-topic
		"tattoo",
		"song lyrics",
		"lyrics translation",
		"meme",

		// Resource requests
		"best textbook",
		"textbook recommendation",
		"anki deck",
		"flashcard",
		"grammar guide",
		"what app",
		"which app",
		"youtube channel",
		"podcast recommendation",
	}
}
