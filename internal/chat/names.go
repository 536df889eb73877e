package chat

import (
	"math/rand/v2"
	"strconv"
)

var anonAdjectives = []string{
	"Anonymous", "Mystery", "Secret", "Hidden", "Unknown", "Phantom",
	"Shadow", "Silent", "Quiet", "Invisible", "Stranger", "Random",
}

var anonNouns = []string{
	"User", "Person", "Individual", "Someone", "Visitor", "Guest",
	"Wanderer", "Explorer", "Seeker", "Friend", "Companion", "Soul",
}

// anonymousUsername builds the throwaway identity shown to stranger chat
// partners, e.g. "SilentWanderer472".
func anonymousUsername() string {
	adjective := anonAdjectives[rand.IntN(len(anonAdjectives))]
	noun := anonNouns[rand.IntN(len(anonNouns))]
	return adjective + noun + strconv.Itoa(100+rand.IntN(900))
}
