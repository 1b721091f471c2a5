package store

import "time"

// PlaylistSongRow is one row of the playlist/songs LEFT JOIN. Song columns are
// NULL for a playlist without songs.
type PlaylistSongRow struct {
	PlaylistID string
	Name       string
	Username   string
	SongID     *string
	Title      *string
	Performer  *string
}

// ActivityRow is one row of the activity log joined with users and songs.
// Username and Title are NULL once the user or song is gone.
type ActivityRow struct {
	Username *string
	Title    *string
	Action   string
	Time     time.Time
}

// MapPlaylistSongs folds joined rows into one playlist. ok is false when rows is
// empty, meaning the playlist does not exist.
func MapPlaylistSongs(rows []PlaylistSongRow) (pl PlaylistWithSongs, ok bool) {
	if len(rows) == 0 {
		return PlaylistWithSongs{}, false
	}

	pl = PlaylistWithSongs{
		ID:       rows[0].PlaylistID,
		Name:     rows[0].Name,
		Username: rows[0].Username,
		Songs:    make([]SongSummary, 0, len(rows)),
	}
	for _, r := range rows {
		if r.SongID == nil {
			continue
		}
		pl.Songs = append(pl.Songs, SongSummary{
			ID:        *r.SongID,
			Title:     deref(r.Title),
			Performer: deref(r.Performer),
		})
	}
	return pl, true
}

// MapActivities keeps row order, which the query sorts by time.
func MapActivities(playlistID string, rows []ActivityRow) PlaylistActivities {
	out := PlaylistActivities{
		PlaylistID: playlistID,
		Activities: make([]Activity, 0, len(rows)),
	}
	for _, r := range rows {
		out.Activities = append(out.Activities, Activity{
			Username: deref(r.Username),
			Title:    deref(r.Title),
			Action:   Action(r.Action),
			Time:     r.Time,
		})
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
