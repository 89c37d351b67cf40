package locale

// Key identifies a display label.
type Key int

const (
	KeyTitle Key = iota
	KeyWelcome
	KeyHomeSubheading
	KeyHomeDescription
	KeySectionHome
	KeySectionStories
	KeySectionPlaces
	KeyActionSubmit
	KeyActionRead
	KeyNavigate
	KeyChooseSection
	KeyChooseAction
	KeyToggleLanguage
	KeyName
	KeyAge
	KeyLocation
	KeyStoryTitle
	KeyStorySummary
	KeyStoryMoral
	KeySubmitStory
	KeySuccess
	KeyValidationError
	KeyFailure
	KeyPlaceTitle
	KeyPlaceDescription
	KeyPlaceSignificance
	KeySubmitPlace
	KeyImageUpload
	KeyReadStories
	KeyReadPlaces
	KeyYears
	KeyNoEntries

	keyCount
)

// Table maps every Key to its display string for one locale.
type Table [keyCount]string

// Get returns the label for k.
func (t *Table) Get(k Key) string {
	if k < 0 || k >= keyCount {
		return ""
	}
	return t[k]
}

// Keys returns every label key in declaration order.
func Keys() []Key {
	out := make([]Key, 0, keyCount)
	for k := Key(0); k < keyCount; k++ {
		out = append(out, k)
	}
	return out
}

// Labels returns the complete label table for l.
func Labels(l Locale) *Table {
	if !l.valid() {
		l = Default
	}
	return &tables[l]
}

// Text returns a single label for l.
func Text(l Locale, k Key) string {
	return Labels(l).Get(k)
}

var tables = [localeCount]Table{
	English: {
		KeyTitle:          "Preserving Telugu Heritage",
		KeyWelcome:        "Welcome to the Telugu Cultural Collection Portal!",
		KeyHomeSubheading: "✨ Let’s celebrate the voices of our people, one story at a time.",
		KeyHomeDescription: "🧚 Explore and preserve our culture through:\n\n" +
			"- 📚 Fairy Tales passed through generations\n" +
			"- 🏞️ Place-Based Histories from your region\n\n" +
			"Share your story or explore others — in your language, your voice, your memories.",
		KeySectionHome:       "🏠 Home",
		KeySectionStories:    "📚 Fairy Tales",
		KeySectionPlaces:     "🏞️ Place-Based Histories",
		KeyActionSubmit:      "📬 Submit",
		KeyActionRead:        "📖 Read",
		KeyNavigate:          "📂 Navigate",
		KeyChooseSection:     "Choose Section",
		KeyChooseAction:      "Choose Action",
		KeyToggleLanguage:    "🌐 Change Language (Current: English)",
		KeyName:              "Full Name",
		KeyAge:               "Age",
		KeyLocation:          "Your Current Location",
		KeyStoryTitle:        "Story Title",
		KeyStorySummary:      "Short Description / Summary",
		KeyStoryMoral:        "Moral of the Story",
		KeySubmitStory:       "📬 Submit Story",
		KeySuccess:           "Thank you! Your story has been submitted successfully.",
		KeyValidationError:   "⚠️ Please fill in all fields correctly.",
		KeyFailure:           "⚠️ Something went wrong while saving your submission. Please try again.",
		KeyPlaceTitle:        "Place Name",
		KeyPlaceDescription:  "Describe the Place",
		KeyPlaceSignificance: "Historical or Cultural Importance",
		KeySubmitPlace:       "📬 Submit History",
		KeyImageUpload:       "📷 Upload an image",
		KeyReadStories:       "📖 Submitted Telugu Folk Tales",
		KeyReadPlaces:        "📖 Submitted Place-Based Histories",
		KeyYears:             "yrs",
		KeyNoEntries:         "No submissions yet.",
	},
	Telugu: {
		KeyTitle:          "తెలుగు వారసత్వాన్ని సంరక్షించండి",
		KeyWelcome:        "తెలుగు సాంస్కృతిక సేకరణ పోర్టల్‌కు స్వాగతం!",
		KeyHomeSubheading: "✨ మన కథల ద్వారా మన స్వరం మళ్లీ వినిపిద్దాం.",
		KeyHomeDescription: "🧚 మన సంస్కృతిని అన్వేషించండి మరియు పరిరక్షించండి:\n\n" +
			"- 📚 తరాలుగా చెప్పుకొస్తున్న జానపద కథలు\n" +
			"- 🏞️ మన ప్రాంతంలోని ప్రదేశ ఆధారిత చరిత్రలు\n\n" +
			"మీ కథను పంచుకోండి లేదా ఇతరుల కథలను అన్వేషించండి — మీ భాషలో, మీ స్వరంలో, మీ జ్ఞాపకాలతో.",
		KeySectionHome:       "🏠 హోమ్",
		KeySectionStories:    "📚 జానపద కథలు",
		KeySectionPlaces:     "🏞️ చారిత్రక ప్రదేశాలు",
		KeyActionSubmit:      "📬 సమర్పించు",
		KeyActionRead:        "📖 చదువు",
		KeyNavigate:          "📂 విభాగాలు",
		KeyChooseSection:     "విభాగాన్ని ఎంచుకోండి",
		KeyChooseAction:      "చర్యను ఎంచుకోండి",
		KeyToggleLanguage:    "🌐 భాష మార్చండి (ప్రస్తుతము: తెలుగు)",
		KeyName:              "పూర్తి పేరు",
		KeyAge:               "వయస్సు",
		KeyLocation:          "మీ ప్రస్తుత స్థానము",
		KeyStoryTitle:        "కథ శీర్షిక",
		KeyStorySummary:      "చిన్న వివరణ",
		KeyStoryMoral:        "కథ నైతికత",
		KeySubmitStory:       "📬 కథను సమర్పించు",
		KeySuccess:           "ధన్యవాదాలు! మీ కథ విజయవంతంగా సమర్పించబడింది.",
		KeyValidationError:   "⚠️ దయచేసి అన్ని ఖాళీలను సరైన రీతిలో పూరించండి.",
		KeyFailure:           "⚠️ మీ సమర్పణను భద్రపరచడంలో సమస్య వచ్చింది. దయచేసి మళ్లీ ప్రయత్నించండి.",
		KeyPlaceTitle:        "ప్రదేశం పేరు",
		KeyPlaceDescription:  "ప్రదేశాన్ని వివరించండి",
		KeyPlaceSignificance: "చారిత్రక లేదా సాంస్కృతిక ప్రాముఖ్యత",
		KeySubmitPlace:       "📬 చారిత్రక సమాచారం సమర్పించు",
		KeyImageUpload:       "📷 చిత్రాన్ని అప్‌లోడ్ చేయండి",
		KeyReadStories:       "📖 సమర్పించిన జానపద కథలు",
		KeyReadPlaces:        "📖 సమర్పించిన ప్రదేశాల చరిత్రలు",
		KeyYears:             "సంవత్సరాలు",
		KeyNoEntries:         "ఇంకా సమర్పణలు లేవు.",
	},
}
