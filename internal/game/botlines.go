package game

import (
	"fmt"

	"github.com/valyala/fastrand"
)

// Canned bot material. Pools are sampled with replacement so they never
// run out, whatever the round count.

var botFirstNames = []string{
	"Turbo", "Mega", "Captain", "Professor", "Baron", "Disco", "Cosmic",
	"Sneaky", "Grumpy", "Wobbly", "Electric", "Majestic",
}

var botLastNames = []string{
	"Toaster", "Gizmo", "Pickle", "Waffles", "Sprocket", "Noodle",
	"Biscuit", "Turnip", "Gadget", "Crouton", "Doodle", "Pretzel",
}

// botName builds a CPU display name that is free in the room.
func botName(room *Room) string {
	for {
		name := fmt.Sprintf("%s %s (CPU)",
			sample(botFirstNames), sample(botLastNames))
		if room.PlayerByName(name) == nil {
			return name
		}
	}
}

var BotPrompts = []string{
	"The worst thing to say at a job interview is ___.",
	"My secret talent is ___.",
	"The next big fitness trend will be ___.",
	"You should never microwave ___.",
	"The real reason dinosaurs went extinct: ___.",
	"My autobiography would be titled ___.",
	"The worst pizza topping ever invented is ___.",
	"If I were invisible for a day I would ___.",
	"The school cafeteria's mystery meal is actually ___.",
	"My superhero weakness would be ___.",
	"Grandma's browser history is full of ___.",
	"The eleventh commandment should be ___.",
}

var BotAnswers = []string{
	"a suspiciously confident pigeon",
	"my collection of novelty socks",
	"interpretive dance, obviously",
	"whatever was in the fridge",
	"three raccoons in a trench coat",
	"aggressive yodeling",
	"an expired coupon",
	"the power of friendship",
	"a lukewarm glass of milk",
	"my cousin's garage band",
}

var BotProblems = []string{
	"My socks keep disappearing in the laundry.",
	"I can never fold a fitted sheet.",
	"My phone battery dies at the worst moments.",
	"The shopping cart always has one bad wheel.",
	"My headphones tangle themselves overnight.",
	"I always pick the slowest checkout line.",
	"Toast always lands butter side down.",
	"I forget names two seconds after hearing them.",
	"My umbrella flips inside out in any wind.",
	"The snooze button is too easy to hit.",
}

var inventionAdjectives = []string{
	"Self-Folding", "Solar-Powered", "Reversible", "Inflatable",
	"Voice-Activated", "Pocket-Sized", "Gravity-Defying", "Scented",
}

var inventionNouns = []string{
	"Sock Finder", "Sheet Wrangler", "Queue Predictor", "Toast Flipper",
	"Name Whisperer", "Umbrella Shield", "Alarm Negotiator", "Cart Stabilizer",
}

var inventionSuffixes = []string{
	"3000", "Deluxe", "Pro", "Max", "Jr.", "XL", "Prime", "2.0",
}

// botInventionTitle produces a patent-worthy product name.
func botInventionTitle() string {
	return fmt.Sprintf("The %s %s %s",
		sample(inventionAdjectives), sample(inventionNouns), sample(inventionSuffixes))
}

func sample(pool []string) string {
	return pool[fastrand.Uint32n(uint32(len(pool)))]
}
