package handlers

import (
	"github.com/AnshRaj112/heritage-backend/internal/locale"
	"github.com/AnshRaj112/heritage-backend/internal/models"
	"github.com/AnshRaj112/heritage-backend/internal/navigation"
	"github.com/AnshRaj112/heritage-backend/internal/services"
)

// labels exposes a locale table to templates by name.
type labels struct {
	Title, Welcome, HomeSubheading, HomeDescription              string
	Navigate, ChooseSection, ChooseAction, ToggleLanguage        string
	Name, Age, Location                                          string
	StoryTitle, StorySummary, StoryMoral, SubmitStory            string
	PlaceTitle, PlaceDescription, PlaceSignificance, SubmitPlace string
	ImageUpload, ReadStories, ReadPlaces, Years, NoEntries       string
}

func labelsFor(l locale.Locale) labels {
	t := locale.Labels(l)
	return labels{
		Title:             t.Get(locale.KeyTitle),
		Welcome:           t.Get(locale.KeyWelcome),
		HomeSubheading:    t.Get(locale.KeyHomeSubheading),
		HomeDescription:   t.Get(locale.KeyHomeDescription),
		Navigate:          t.Get(locale.KeyNavigate),
		ChooseSection:     t.Get(locale.KeyChooseSection),
		ChooseAction:      t.Get(locale.KeyChooseAction),
		ToggleLanguage:    t.Get(locale.KeyToggleLanguage),
		Name:              t.Get(locale.KeyName),
		Age:               t.Get(locale.KeyAge),
		Location:          t.Get(locale.KeyLocation),
		StoryTitle:        t.Get(locale.KeyStoryTitle),
		StorySummary:      t.Get(locale.KeyStorySummary),
		StoryMoral:        t.Get(locale.KeyStoryMoral),
		SubmitStory:       t.Get(locale.KeySubmitStory),
		PlaceTitle:        t.Get(locale.KeyPlaceTitle),
		PlaceDescription:  t.Get(locale.KeyPlaceDescription),
		PlaceSignificance: t.Get(locale.KeyPlaceSignificance),
		SubmitPlace:       t.Get(locale.KeySubmitPlace),
		ImageUpload:       t.Get(locale.KeyImageUpload),
		ReadStories:       t.Get(locale.KeyReadStories),
		ReadPlaces:        t.Get(locale.KeyReadPlaces),
		Years:             t.Get(locale.KeyYears),
		NoEntries:         t.Get(locale.KeyNoEntries),
	}
}

type navLink struct {
	Label  string
	Href   string
	Active bool
}

type flash struct {
	Kind string // "success" or "error"
	Text string
}

type pageData struct {
	L        labels
	Lang     string
	Path     string
	Sections []navLink
	Actions  []navLink
	Flash    *flash
	Form     map[string]string
	Location string
	Stories  []models.Story
	Places   []services.PlaceEntry
}

func newPageData(l locale.Locale, st navigation.State) *pageData {
	data := &pageData{
		L:    labelsFor(l),
		Lang: l.Code(),
		Path: st.Path(),
		Form: map[string]string{},
	}
	for _, s := range navigation.Sections {
		data.Sections = append(data.Sections, navLink{
			Label:  s.Label(l),
			Href:   st.Select(s).Path(),
			Active: s == st.Section,
		})
	}
	if st.Section != navigation.Home {
		for _, a := range navigation.Actions {
			data.Actions = append(data.Actions, navLink{
				Label:  a.Label(l),
				Href:   st.Choose(a).Path(),
				Active: a == st.Action,
			})
		}
	}
	return data
}

// pageName picks the template for a state.
func pageName(st navigation.State) string {
	switch st.Section {
	case navigation.Stories:
		return "story_" + string(st.Action)
	case navigation.Places:
		return "place_" + string(st.Action)
	}
	return "home"
}
