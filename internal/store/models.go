package store

import "time"

type Song struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	Performer string  `json:"performer"`
	Genre     string  `json:"genre"`
	Duration  *int    `json:"duration"`
	AlbumID   *string `json:"albumId"`
}

// SongSummary is the projection used in song lists, albums and playlists.
type SongSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Performer string `json:"performer"`
}

type SongInput struct {
	Title     string
	Year      int
	Performer string
	Genre     string
	Duration  *int
	AlbumID   *string
}

// SongFilter matches case-insensitive substrings; empty fields match everything.
type SongFilter struct {
	Title     string
	Performer string
}

type Album struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Year     int           `json:"year"`
	CoverURL *string       `json:"coverUrl"`
	Songs    []SongSummary `json:"songs"`
}

type AlbumInput struct {
	Name string
	Year int
}

type PlaylistSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

type PlaylistWithSongs struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Username string        `json:"username"`
	Songs    []SongSummary `json:"songs"`
}

type Action string

const (
	ActionAdd    Action = "add"
	ActionDelete Action = "delete"
)

// ActivityRecord is a freshly appended playlist_song_activities row.
type ActivityRecord struct {
	ID         string    `json:"id"`
	PlaylistID string    `json:"playlistId"`
	SongID     string    `json:"songId"`
	UserID     string    `json:"userId"`
	Action     Action    `json:"action"`
	Time       time.Time `json:"time"`
}

type Activity struct {
	Username string    `json:"username"`
	Title    string    `json:"title"`
	Action   Action    `json:"action"`
	Time     time.Time `json:"time"`
}

type PlaylistActivities struct {
	PlaylistID string     `json:"playlistId"`
	Activities []Activity `json:"activities"`
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
}

type UserInput struct {
	Username string
	Password string
	Fullname string
}
