package view

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var supported = []language.Tag{language.English, language.Finnish}

var matcher = language.NewMatcher(supported)

var translations = map[string][2]string{
	// key: {English, Finnish}
	"work20.title":                            {"Work 2.0", "Work 2.0"},
	"work20.info":                             {"Internships at our partner start-ups. Open a posting to read more and apply on the start-up's own site.", "Harjoittelupaikkoja kumppaniyrityksissämme. Avaa ilmoitus lukeaksesi lisää ja hae suoraan yrityksen sivuilla."},
	"work20.loading":                          {"Loading…", "Ladataan…"},
	"work20.empty":                            {"No internships right now.", "Ei harjoittelupaikkoja juuri nyt."},
	"work20.nav.admin":                        {"Admin", "Ylläpito"},
	"work20.nav.startUps":                     {"Start-ups", "Start-upit"},
	"work20.nav.addInternship":                {"Add internship", "Lisää harjoittelu"},
	"work20.alert.empty":                      {"Fill in every required field.", "Täytä kaikki pakolliset kentät."},
	"work20.alert.close":                      {"Close", "Sulje"},
	"work20.startUp.alert.get":                {"Could not load start-ups.", "Start-upien lataaminen epäonnistui."},
	"work20.startUp.add":                      {"Add start-up", "Lisää start-up"},
	"work20.startUp.edit":                     {"Edit start-up", "Muokkaa start-upia"},
	"work20.startUp.name":                     {"Name", "Nimi"},
	"work20.startUp.url":                      {"Website", "Verkkosivu"},
	"work20.startUp.logo":                     {"Logo", "Logo"},
	"work20.startUp.logoUpload":               {"Upload logo", "Lataa logo"},
	"work20.startUp.file":                     {"Current file", "Nykyinen tiedosto"},
	"work20.startUp.fileMissing":              {"No file chosen", "Ei valittua tiedostoa"},
	"work20.startUp.fileUnchanged":            {"File unchanged", "Tiedostoa ei muutettu"},
	"work20.startUp.archived":                 {"Archived", "Arkistoitu"},
	"work20.startUp.button.add":               {"Add", "Lisää"},
	"work20.startUp.button.edit":              {"Save", "Tallenna"},
	"work20.startUp.button.delete":            {"Delete start-up", "Poista start-up"},
	"work20.startUp.visitPage":                {"Visit page", "Vieraile sivulla"},
	"work20.internship.alert.get":             {"Could not load internships.", "Harjoittelupaikkojen lataaminen epäonnistui."},
	"work20.internship.add":                   {"Add internship", "Lisää harjoittelu"},
	"work20.internship.edit":                  {"Edit internship", "Muokkaa harjoittelua"},
	"work20.internship.startUp":               {"Start-up", "Start-up"},
	"work20.internship.name":                  {"Title", "Otsikko"},
	"work20.internship.type":                  {"Type", "Tyyppi"},
	"work20.internship.industries":            {"Industries", "Toimialat"},
	"work20.internship.titleIndustries":       {"Industries (comma separated)", "Toimialat (pilkulla eroteltuna)"},
	"work20.internship.deadlineApplication":   {"Application deadline", "Hakuaika päättyy"},
	"work20.internship.description":           {"Description", "Kuvaus"},
	"work20.internship.duration":              {"Duration", "Kesto"},
	"work20.internship.durationShort":         {"Duration (short)", "Kesto (lyhyt)"},
	"work20.internship.salary":                {"Salary", "Palkka"},
	"work20.internship.location":              {"Location", "Sijainti"},
	"work20.internship.requiredExperiences":   {"Required experience", "Vaadittu kokemus"},
	"work20.internship.showField":             {"Show", "Näytä"},
	"work20.internship.link":                  {"Application link", "Hakulinkki"},
	"work20.internship.archived":              {"Archived", "Arkistoitu"},
	"work20.internship.work":                  {"Work", "Työ"},
	"work20.internship.apply":                 {"Apply", "Hae"},
	"work20.internship.view":                  {"View", "Näytä"},
	"work20.internship.close":                 {"Close", "Sulje"},
	"work20.internship.button.edit":           {"Edit", "Muokkaa"},
	"work20.internship.button.delete":         {"Delete", "Poista"},
	"work20.internship.button.save":           {"Save", "Tallenna"},
	"work20.internship.confirmDelete":         {"Delete this internship?", "Poistetaanko tämä harjoittelu?"},
	"work20.internship.cancel":                {"Cancel", "Peruuta"},
	"work20.status.success-add-start-up":      {"Start-up added.", "Start-up lisätty."},
	"work20.status.success-edit-start-up":     {"Start-up saved.", "Start-up tallennettu."},
	"work20.status.success-delete-start-up":   {"Start-up deleted.", "Start-up poistettu."},
	"work20.status.success-add-internship":    {"Internship added.", "Harjoittelu lisätty."},
	"work20.status.success-edit-internship":   {"Internship saved.", "Harjoittelu tallennettu."},
	"work20.status.success-delete-internship": {"Internship deleted.", "Harjoittelu poistettu."},
	"work20.status.failure":                   {"Something went wrong. Try again.", "Jotain meni pieleen. Yritä uudelleen."},
}

var translationCatalog = buildCatalog()

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, texts := range translations {
		// Keys contain no verbs, so SetString cannot fail here.
		_ = b.SetString(language.English, key, texts[0])
		_ = b.SetString(language.Finnish, key, texts[1])
	}
	return b
}

// Printer returns a translator for the best supported match of an
// Accept-Language header value. English is the fallback.
func Printer(acceptLanguage string) *message.Printer {
	return message.NewPrinter(Language(acceptLanguage), message.Catalog(translationCatalog))
}

// Language picks the supported language for an Accept-Language value.
func Language(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, idx, _ := matcher.Match(tags...)
	return supported[idx]
}
