package game

import "slices"

// RankEntry is one row of the final standings.
type RankEntry struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Position int    `json:"position"`
	Bot      bool   `json:"isBot,omitempty"`
}

// Rankings orders every player by score. Tied scores share a position.
func Rankings(room *Room, ascending bool) []RankEntry {
	out := make([]RankEntry, 0, len(room.Players))
	for _, p := range room.Players {
		out = append(out, RankEntry{
			PlayerID: p.ID,
			Name:     p.Name,
			Score:    p.Score,
			Bot:      p.Bot,
		})
	}
	slices.SortStableFunc(out, func(a, b RankEntry) int {
		if ascending {
			return a.Score - b.Score
		}
		return b.Score - a.Score
	})
	for i := range out {
		if i > 0 && out[i].Score == out[i-1].Score {
			out[i].Position = out[i-1].Position
			continue
		}
		out[i].Position = i + 1
	}
	return out
}

// Winner returns the top-ranked player id, or "" for an empty room.
func Winner(room *Room, ascending bool) string {
	ranks := Rankings(room, ascending)
	if len(ranks) == 0 {
		return ""
	}
	return ranks[0].PlayerID
}
