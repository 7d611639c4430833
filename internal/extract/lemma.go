package extract

import "strings"

// irregularLemmas covers the irregular past forms common in narrative prose.
var irregularLemmas = map[string]string{
	"went": "go", "gone": "go",
	"sat": "sit", "stood": "stand", "lay": "lie", "rose": "rise",
	"ran": "run", "came": "come", "left": "leave", "fell": "fall",
	"said": "say", "told": "tell", "spoke": "speak", "wrote": "write",
	"saw": "see", "seen": "see", "heard": "hear", "thought": "think",
	"knew": "know", "felt": "feel", "found": "find", "met": "meet",
	"took": "take", "taken": "take", "gave": "give", "given": "give",
	"got": "get", "made": "make", "held": "hold", "kept": "keep",
	"brought": "bring", "bought": "buy", "caught": "catch",
	"began": "begin", "begun": "begin", "woke": "wake", "slept": "sleep",
	"ate": "eat", "eaten": "eat", "drank": "drink", "drove": "drive",
	"flew": "fly", "wore": "wear", "broke": "break", "threw": "throw",
}

// Lemma reduces an inflected verb to a base form. A small rule set is
// enough here: the lemma is only used for projection text and artifacts,
// never for matching.
func Lemma(verb string) string {
	w := strings.ToLower(verb)

	if lemma, ok := irregularLemmas[w]; ok {
		return lemma
	}

	switch {
	case strings.HasSuffix(w, "ies") && len(w) > 4:
		return w[:len(w)-3] + "y"
	case strings.HasSuffix(w, "ied") && len(w) > 4:
		return w[:len(w)-3] + "y"
	case strings.HasSuffix(w, "ed") && len(w) > 3:
		stem := w[:len(w)-2]
		if doubled(stem) {
			return undouble(stem) // stopped -> stop
		}
		return restoreE(stem) // smiled -> smile, walked -> walk
	case strings.HasSuffix(w, "ing") && len(w) > 4:
		return undouble(w[:len(w)-3]) // running -> run
	case strings.HasSuffix(w, "es") && len(w) > 3:
		return w[:len(w)-2]
	case strings.HasSuffix(w, "s") && len(w) > 2 && !strings.HasSuffix(w, "ss"):
		return w[:len(w)-1]
	}

	return w
}

// restoreE re-adds a final silent e dropped before "-ed" for short stems:
// "smil" -> "smile", "hop" -> "hope". Multi-syllable stems ("enter",
// "walk") are left alone.
func restoreE(stem string) string {
	n := len(stem)
	if n < 3 || vowelGroups(stem) != 1 {
		return stem
	}
	if !isVowel(stem[n-1]) && isVowel(stem[n-2]) {
		return stem + "e"
	}
	return stem
}

func vowelGroups(w string) int {
	groups := 0
	inGroup := false
	for i := 0; i < len(w); i++ {
		if isVowel(w[i]) {
			if !inGroup {
				groups++
			}
			inGroup = true
		} else {
			inGroup = false
		}
	}
	return groups
}

// doubled reports a doubled final consonant left by suffix stripping.
func doubled(stem string) bool {
	n := len(stem)
	return n >= 2 && stem[n-1] == stem[n-2] && !isVowel(stem[n-1])
}

// undouble collapses a doubled final consonant.
func undouble(stem string) string {
	if doubled(stem) {
		return stem[:len(stem)-1]
	}
	return stem
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
