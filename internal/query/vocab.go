// Discoverus - Personalized Content Discovery and A/B Experimentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discoverus

package query

// Static vocabulary tables. These are package-level immutable data built at
// init and never mutated at runtime, which keeps interpretation free of
// cross-request coupling.

// genreSynonyms maps lowercased query terms to canonical genre names.
// Longer phrases are matched before their substrings by the interpreter.
var genreSynonyms = map[string][]string{
	"Comedy":    {"comedy", "comedies", "funny", "humor", "humorous", "laugh"},
	"Drama":     {"drama", "dramas", "emotional", "touching"},
	"Thriller":  {"thriller", "thrillers", "suspense", "suspenseful", "mystery"},
	"Action":    {"action", "fast-paced"},
	"Adventure": {"adventure"},
	"Romance":   {"romance", "romantic", "rom-com", "romantic comedy"},
	"Horror":    {"horror", "frightening", "terrifying"},
	"Sci-Fi":    {"sci-fi", "sci fi", "science fiction", "futuristic", "space", "alien"},
	"Fantasy":   {"fantasy", "magical", "wizard", "magic"},
	"Crime":     {"crime", "criminal", "gangster", "mob", "detective"},
	"Biography": {"biography", "biographical", "true story", "real story"},
	"History":   {"history", "historical", "period piece"},
	"Family":    {"family", "kids", "children", "family-friendly"},
	"War":       {"war movie", "war film", "wartime"},
	"Animation": {"animation", "animated", "cartoon"},
}

// knownCast lists canonical cast names recognized by phrase match. Query
// aliases (e.g. shortened first names) map to the canonical entry.
var knownCast = map[string][]string{
	"Tom Hanks":           {"tom hanks", "thomas hanks"},
	"Leonardo DiCaprio":   {"leonardo dicaprio", "leo dicaprio"},
	"Morgan Freeman":      {"morgan freeman"},
	"Robert De Niro":      {"robert de niro", "robert deniro", "bobby de niro"},
	"Al Pacino":           {"al pacino"},
	"Brad Pitt":           {"brad pitt", "bradley pitt"},
	"Matt Damon":          {"matt damon", "matthew damon"},
	"Julia Roberts":       {"julia roberts"},
	"Meryl Streep":        {"meryl streep"},
	"Denzel Washington":   {"denzel washington"},
	"Keanu Reeves":        {"keanu reeves"},
	"Christian Bale":      {"christian bale"},
	"Heath Ledger":        {"heath ledger"},
	"Robin Williams":      {"robin williams"},
	"Anthony Hopkins":     {"anthony hopkins"},
	"Jodie Foster":        {"jodie foster"},
	"Harrison Ford":       {"harrison ford"},
	"Samuel L. Jackson":   {"samuel l. jackson", "samuel jackson", "sam jackson"},
	"John Travolta":       {"john travolta"},
	"Uma Thurman":         {"uma thurman"},
	"Tim Robbins":         {"tim robbins"},
	"Marlon Brando":       {"marlon brando"},
	"James Caan":          {"james caan"},
	"Edward Norton":       {"edward norton", "ed norton"},
	"Laurence Fishburne":  {"laurence fishburne"},
	"Carrie-Anne Moss":    {"carrie-anne moss", "carrie anne moss"},
	"Ray Liotta":          {"ray liotta"},
	"Joe Pesci":           {"joe pesci"},
	"Viggo Mortensen":     {"viggo mortensen"},
	"Ian McKellen":        {"ian mckellen"},
	"Elijah Wood":         {"elijah wood"},
	"Marion Cotillard":    {"marion cotillard"},
	"Tom Hardy":           {"tom hardy"},
	"Jack Nicholson":      {"jack nicholson"},
	"Bill Murray":         {"bill murray"},
	"Jeff Bridges":        {"jeff bridges"},
	"Liam Neeson":         {"liam neeson"},
}

// vibeLexicon maps canonical vibe tags to the query terms that select them.
var vibeLexicon = map[string][]string{
	"funny":             {"funny", "hilarious", "lighthearted"},
	"serious":           {"serious", "intense", "heavy"},
	"romantic":          {"romantic", "sweet", "cute", "date night"},
	"exciting":          {"exciting", "thrilling", "action-packed", "adrenaline"},
	"scary":             {"scary", "spooky", "creepy", "horror"},
	"thought-provoking": {"thought-provoking", "deep", "philosophical", "meaningful", "cerebral"},
	"feel-good":         {"feel-good", "feel good", "uplifting", "heartwarming"},
	"light":             {"light", "easy", "fun", "entertaining"},
	"dark":              {"dark", "gritty", "disturbing", "bleak"},
	"family":            {"wholesome"},
}

// stopwords are dropped during residual keyword extraction. Includes the
// domain terms that carry no filtering signal ("movie", "film").
var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "have": {}, "has": {}, "had": {}, "do": {},
	"does": {}, "did": {}, "will": {}, "would": {}, "could": {},
	"should": {}, "can": {}, "me": {}, "my": {}, "i": {}, "you": {},
	"some": {}, "any": {}, "that": {}, "this": {}, "from": {},
	"find": {}, "show": {}, "want": {}, "like": {}, "about": {},
	"movie": {}, "movies": {}, "film": {}, "films": {}, "something": {},
	"watch": {}, "see": {}, "please": {},
}

// phraseEntry pairs a lowercased query phrase with its canonical value.
type phraseEntry struct {
	phrase    string
	canonical string
}

// buildPhraseTable flattens a canonical->aliases map into a slice sorted by
// phrase length descending, so multi-word phrases win over substrings.
// Deterministic: ties are ordered lexicographically.
func buildPhraseTable(table map[string][]string) []phraseEntry {
	var entries []phraseEntry
	for canonical, aliases := range table {
		for _, alias := range aliases {
			entries = append(entries, phraseEntry{phrase: alias, canonical: canonical})
		}
	}
	sortPhrases(entries)
	return entries
}

func sortPhrases(entries []phraseEntry) {
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && phraseLess(entries[j], entries[j-1]); j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
}

func phraseLess(a, b phraseEntry) bool {
	if len(a.phrase) != len(b.phrase) {
		return len(a.phrase) > len(b.phrase)
	}
	return a.phrase < b.phrase
}

// Flattened tables built once at init.
var (
	genrePhrases = buildPhraseTable(genreSynonyms)
	castPhrases  = buildPhraseTable(knownCast)
	vibePhrases  = buildPhraseTable(vibeLexicon)
)
