// Package words holds the Scribble Scrabble word pool and guess helpers.
package words

import (
	"strings"

	"github.com/valyala/fastrand"
)

// Pool is the static drawing-word list. It is sampled with replacement
// across rounds, so it never runs dry.
var Pool = []string{
	// Animals
	"dog", "cat", "elephant", "giraffe", "lion", "tiger", "bear", "monkey", "penguin", "dolphin",
	"whale", "shark", "octopus", "butterfly", "spider", "snake", "frog", "turtle", "rabbit", "horse",
	"cow", "pig", "chicken", "duck", "owl", "eagle", "parrot", "flamingo", "kangaroo", "koala",
	// Food
	"pizza", "hamburger", "hotdog", "taco", "sushi", "sandwich", "cake", "cookie", "donut", "icecream",
	"apple", "banana", "orange", "watermelon", "strawberry", "grapes", "pineapple", "cherry", "lemon", "avocado",
	"popcorn", "pretzel", "pancake", "waffle", "burrito", "noodles", "bread", "butter", "chocolate", "candy",
	// Objects
	"phone", "computer", "television", "camera", "clock", "lamp", "chair", "table", "bed", "couch",
	"book", "pencil", "scissors", "umbrella", "glasses", "hat", "shoe", "sock", "shirt", "pants",
	"guitar", "piano", "drum", "microphone", "headphones", "balloon", "candle", "gift", "trophy", "medal",
	// Places
	"house", "castle", "hospital", "school", "church", "lighthouse", "pyramid", "igloo", "tent", "bridge",
	"tower", "windmill", "barn", "airport", "beach", "mountain", "volcano", "island", "forest", "desert",
	// Transportation
	"car", "bus", "train", "airplane", "helicopter", "boat", "ship", "submarine", "rocket", "bicycle",
	// People & nature
	"baby", "wizard", "pirate", "ninja", "robot", "alien", "zombie", "vampire", "mermaid", "angel",
	"tree", "flower", "rainbow", "cloud", "lightning", "tornado", "fire", "star", "cactus", "sunflower",
	// Activities
	"football", "basketball", "bowling", "swimming", "skiing", "surfing", "fishing", "dancing", "painting", "yoga",
}

// Options returns n distinct words for the drawer to pick from.
func Options(n int) []string {
	if n > len(Pool) {
		n = len(Pool)
	}
	out := make([]string, 0, n)
	seen := make(map[string]struct{}, n)
	for len(out) < n {
		w := Pool[fastrand.Uint32n(uint32(len(Pool)))]
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// Hint masks a word for the guessers, keeping spaces and revealing the
// letters at revealed indices, e.g. "_ a _ _ y".
func Hint(word string, revealed []int) string {
	isRevealed := make(map[int]struct{}, len(revealed))
	for _, i := range revealed {
		isRevealed[i] = struct{}{}
	}
	parts := make([]string, 0, len(word))
	for i, r := range word {
		switch {
		case r == ' ':
			parts = append(parts, " ")
		default:
			if _, ok := isRevealed[i]; ok {
				parts = append(parts, strings.ToUpper(string(r)))
			} else {
				parts = append(parts, "_")
			}
		}
	}
	return strings.Join(parts, " ")
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsCorrect compares a guess against the word, case-insensitively.
func IsCorrect(guess, word string) bool {
	return normalize(guess) == normalize(word)
}

// IsClose reports whether a wrong guess is near the word: edit distance
// at most 1 for words of up to five letters, at most 2 otherwise.
func IsClose(guess, word string) bool {
	g, w := normalize(guess), normalize(word)
	if g == w {
		return false
	}
	threshold := 2
	if len(w) <= 5 {
		threshold = 1
	}
	return levenshtein(g, w) <= threshold
}

func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j-1]+cost, min(curr[j-1]+1, prev[j]+1))
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
