package content

import "math/rand/v2"

const (
	trackURL = "https://open.spotify.com/track/"
	embedURL = "https://open.spotify.com/embed/track/"
)

type Song struct {
	ID       string
	URL      string
	EmbedURL string
}

func songFor(id string) Song {
	return Song{ID: id, URL: trackURL + id, EmbedURL: embedURL + id}
}

// Picker is the randomness RandomSong needs. *rand.Rand satisfies it.
type Picker interface {
	IntN(n int) int
}

// TrackCount is the size of the curated list.
func TrackCount() int { return len(data.Tracks) }

// RandomSong picks a track uniformly. A nil picker uses the global source.
func RandomSong(r Picker) Song {
	return songFor(data.Tracks[intN(r, len(data.Tracks))])
}

// AnotherSong picks a track other than current when the list allows it.
func AnotherSong(r Picker, current string) Song {
	tracks := data.Tracks
	if len(tracks) < 2 {
		return songFor(tracks[0])
	}
	skip := -1
	for i, id := range tracks {
		if id == current {
			skip = i
			break
		}
	}
	if skip < 0 {
		return RandomSong(r)
	}
	i := intN(r, len(tracks)-1)
	if i >= skip {
		i++
	}
	return songFor(tracks[i])
}

func intN(r Picker, n int) int {
	if r == nil {
		return rand.IntN(n)
	}
	return r.IntN(n)
}
