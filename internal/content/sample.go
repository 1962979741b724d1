package content

import (
	"math/rand/v2"

	"codeberg.org/snonux/poplingo/internal/language"
	"codeberg.org/snonux/poplingo/internal/notebook"
)

// SampleEntries picks min(n, len(entries)) entries uniformly without replacement.
// With len(entries) <= n every entry is returned in its original order.
// A nil r uses the global unseeded source.
func SampleEntries(entries []notebook.WordEntry, n int, r *rand.Rand) []notebook.WordEntry {
	if n <= 0 {
		return nil
	}
	if len(entries) <= n {
		out := make([]notebook.WordEntry, len(entries))
		copy(out, entries)
		return out
	}

	idx := make([]int, len(entries))
	for i := range idx {
		idx[i] = i
	}
	shuffle := rand.Shuffle
	if r != nil {
		shuffle = r.Shuffle
	}
	shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

	out := make([]notebook.WordEntry, n)
	for i := 0; i < n; i++ {
		out[i] = entries[idx[i]]
	}
	return out
}

// dominantNative returns the most common native language among entries.
// Ties go to the language that reached the highest count first.
func dominantNative(entries []notebook.WordEntry, fallback language.Language) language.Language {
	counts := make(map[language.Language]int)
	best := fallback
	bestCount := 0
	for _, e := range entries {
		if e.NativeLang == "" {
			continue
		}
		counts[e.NativeLang]++
		if counts[e.NativeLang] > bestCount {
			best = e.NativeLang
			bestCount = counts[e.NativeLang]
		}
	}
	return best
}
