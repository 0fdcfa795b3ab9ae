package poem

import "strings"

// Top20Tags is the default base vocabulary offered to coders.
var Top20Tags = []string{
	"nature", "body", "death", "love", "existential", "identity", "self",
	"beauty", "america", "loss", "animals", "history", "memories", "family",
	"writing", "ancestry", "thought", "landscapes", "war", "time",
}

// Top50Tags extends the base vocabulary with the next most frequent corpus tags.
var Top50Tags = append(append([]string{}, Top20Tags...),
	"religion", "grief", "violence", "aging", "childhood", "desire", "night", "mothers",
	"language", "birds", "social justice", "music", "flowers", "politics",
	"hope", "heartache", "fathers", "gender", "environment", "spirituality",
	"loneliness", "oceans", "dreams", "survival", "cities", "earth", "despair",
	"anxiety", "weather", "illness", "home",
)

// AllCorpusTags is the complete tag vocabulary observed in the corpus,
// searched when a coder wants a tag outside the base set.
var AllCorpusTags = append(append([]string{}, Top50Tags...),
	"past", "myth", "travel", "sadness", "lgbtq", "mourning", "work", "future",
	"plants", "afterlife", "happiness", "romance", "sex", "eating", "love, contemporary",
	"beginning", "creation", "turmoil", "friendship", "parenting", "pastoral",
	"lust", "immigration", "daughters", "anger", "nostalgia", "ambition",
	"migration", "space", "carpe diem", "ghosts", "marriage", "reading",
	"popular culture", "economy", "tragedy", "drinking", "clothing", "sons",
	"gun violence", "americana", "buildings", "money", "silence", "gardens",
	"rebellion", "new york city", "heroes", "science", "gratitude",
	"storms", "deception", "technology", "slavery", "cooking", "apocalypse",
	"humor", "dance", "doubt", "regret", "flight", "sports",
	"national parks", "school", "oblivion", "dogs", "suffrage",
	"old age", "drugs", "teaching", "innocence", "sisters", "enemies", "brothers",
	"covid-19", "math", "american revolution", "incarceration", "pets", "underworld",
	"pacifism", "divorce", "suburbia", "theft", "patience", "movies", "civil war",
	"cats", "moving", "luck", "miracles", "jealousy", "vanity", "infidelity", "high school",
)

// MoodOptions lists the eight basic emotions offered as mood tags.
var MoodOptions = []string{
	"anger", "anticipation", "disgust", "fear", "joy", "sadness", "surprise", "trust",
}

// TagSet resolves a configured tag set name to its vocabulary. Unknown names
// fall back to the top-20 set.
func TagSet(name string) []string {
	if name == "top50" {
		return Top50Tags
	}
	return Top20Tags
}

// SearchTags returns corpus tags containing the query, case-insensitively,
// skipping tags already selected or already offered in the base set. An
// empty query matches nothing.
func SearchTags(query string, selected []string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	skip := make(map[string]struct{}, len(selected)+len(Top20Tags))
	for _, t := range selected {
		skip[t] = struct{}{}
	}
	for _, t := range Top20Tags {
		skip[t] = struct{}{}
	}
	var matches []string
	for _, tag := range AllCorpusTags {
		if _, ok := skip[tag]; ok {
			continue
		}
		if strings.Contains(strings.ToLower(tag), query) {
			matches = append(matches, tag)
		}
	}
	return matches
}
