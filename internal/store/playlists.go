package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-service/internal/apperror"

	"github.com/charmbracelet/log"
	"github.com/jackc/pgx/v5"
)

const (
	msgPlaylistNotFound = "playlist not found"
	msgNotEntitled      = "you are not entitled to access this resource"
)

// CollaboratorVerifier reports whether a user may act on a playlist they do not own.
type CollaboratorVerifier interface {
	VerifyCollaborator(ctx context.Context, playlistID, userID string) error
}

type PlaylistsStore struct {
	db            DB
	collaborators CollaboratorVerifier
	logger        *log.Logger
	now           func() time.Time
}

func NewPlaylistsStore(db DB, collaborators CollaboratorVerifier, logger *log.Logger) *PlaylistsStore {
	return &PlaylistsStore{
		db:            db,
		collaborators: collaborators,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *PlaylistsStore) AddPlaylist(ctx context.Context, name, owner string) (string, error) {
	var id string
	err := s.db.QueryRow(ctx, `
		INSERT INTO playlists (id, name, owner)
		VALUES ($1, $2, $3)
		RETURNING id
	`, newID("playlist"), name, owner).Scan(&id)
	if isForeignKeyViolation(err) {
		return "", apperror.Invariant("failed to add playlist").Wrap(err)
	}
	if err != nil {
		return "", fmt.Errorf("playlists: insert: %w", err)
	}
	if id == "" {
		return "", apperror.Invariant("failed to add playlist")
	}
	return id, nil
}

// GetPlaylists lists the playlists a user owns or collaborates on. Grouping keeps
// one row per playlist when the collaborations join fans out.
func (s *PlaylistsStore) GetPlaylists(ctx context.Context, userID string) ([]PlaylistSummary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT p.id, p.name, u.username
		FROM playlists p
		LEFT JOIN collaborations c ON c.playlist_id = p.id
		LEFT JOIN users u ON u.id = p.owner
		WHERE p.owner = $1 OR c.user_id = $1
		GROUP BY p.id, p.name, u.username
		ORDER BY p.name, p.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("playlists: list: %w", err)
	}
	defer rows.Close()

	playlists := []PlaylistSummary{}
	for rows.Next() {
		var (
			p        PlaylistSummary
			username *string
		)
		if err := rows.Scan(&p.ID, &p.Name, &username); err != nil {
			return nil, fmt.Errorf("playlists: scan: %w", err)
		}
		p.Username = deref(username)
		playlists = append(playlists, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("playlists: rows: %w", err)
	}
	return playlists, nil
}

func (s *PlaylistsStore) DeletePlaylistByID(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("playlists: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("failed to delete playlist, id not found")
	}
	return nil
}

// CheckSong fails with NotFound unless the song exists.
func (s *PlaylistsStore) CheckSong(ctx context.Context, songID string) error {
	var id string
	err := s.db.QueryRow(ctx, `SELECT id FROM songs WHERE id = $1`, songID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NotFound("song not found")
	}
	if err != nil {
		return fmt.Errorf("playlists: check song: %w", err)
	}
	return nil
}

// AddPlaylistSong inserts the pair; the unique constraint on (playlist_id, song_id)
// turns a concurrent or repeated add into an Invariant error.
func (s *PlaylistsStore) AddPlaylistSong(ctx context.Context, playlistID, songID string) (string, error) {
	var id string
	err := s.db.QueryRow(ctx, `
		INSERT INTO playlist_songs (id, playlist_id, song_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`, newID("playlistSong"), playlistID, songID).Scan(&id)
	if isUniqueViolation(err) || isForeignKeyViolation(err) || errors.Is(err, pgx.ErrNoRows) {
		return "", apperror.Invariant("failed to add song to playlist").Wrap(err)
	}
	if err != nil {
		return "", fmt.Errorf("playlists: add song: %w", err)
	}
	return id, nil
}

// GetPlaylistSongByID returns the playlist with its songs in insertion order. The
// join is rooted at playlists so an empty playlist still yields one row.
func (s *PlaylistsStore) GetPlaylistSongByID(ctx context.Context, playlistID string) (PlaylistWithSongs, error) {
	rows, err := s.db.Query(ctx, `
		SELECT p.id, p.name, u.username, sg.id, sg.title, sg.performer
		FROM playlists p
		LEFT JOIN users u ON u.id = p.owner
		LEFT JOIN playlist_songs ps ON ps.playlist_id = p.id
		LEFT JOIN songs sg ON sg.id = ps.song_id
		WHERE p.id = $1
		ORDER BY ps.added_at, ps.id
	`, playlistID)
	if err != nil {
		return PlaylistWithSongs{}, fmt.Errorf("playlists: get songs: %w", err)
	}
	defer rows.Close()

	var joined []PlaylistSongRow
	for rows.Next() {
		var (
			r        PlaylistSongRow
			username *string
		)
		if err := rows.Scan(&r.PlaylistID, &r.Name, &username, &r.SongID, &r.Title, &r.Performer); err != nil {
			return PlaylistWithSongs{}, fmt.Errorf("playlists: scan songs: %w", err)
		}
		r.Username = deref(username)
		joined = append(joined, r)
	}
	if err := rows.Err(); err != nil {
		return PlaylistWithSongs{}, fmt.Errorf("playlists: rows: %w", err)
	}

	pl, ok := MapPlaylistSongs(joined)
	if !ok {
		return PlaylistWithSongs{}, apperror.NotFound(msgPlaylistNotFound)
	}
	return pl, nil
}

func (s *PlaylistsStore) DeletePlaylistSong(ctx context.Context, playlistID, songID string) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM playlist_songs
		WHERE playlist_id = $1 AND song_id = $2
	`, playlistID, songID)
	if err != nil {
		return fmt.Errorf("playlists: remove song: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.Invariant("failed to remove song from playlist")
	}
	return nil
}

// AddPlaylistActivity appends one log row stamped with the current time.
func (s *PlaylistsStore) AddPlaylistActivity(ctx context.Context, playlistID, songID, userID string, action Action) (ActivityRecord, error) {
	rec := ActivityRecord{
		ID:         newID("activity"),
		PlaylistID: playlistID,
		SongID:     songID,
		UserID:     userID,
		Action:     action,
		Time:       s.now().UTC(),
	}

	tag, err := s.db.Exec(ctx, `
		INSERT INTO playlist_song_activities (id, playlist_id, song_id, user_id, action, time)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, rec.ID, rec.PlaylistID, rec.SongID, rec.UserID, string(rec.Action), rec.Time)
	if err != nil {
		return ActivityRecord{}, fmt.Errorf("playlists: add activity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ActivityRecord{}, apperror.Invariant("failed to add song activity")
	}
	return rec, nil
}

// GetPlaylistActivities returns the log oldest first; seq breaks ties between
// entries written within the same timestamp.
func (s *PlaylistsStore) GetPlaylistActivities(ctx context.Context, playlistID string) (PlaylistActivities, error) {
	rows, err := s.db.Query(ctx, `
		SELECT u.username, sg.title, a.action, a.time
		FROM playlist_song_activities a
		LEFT JOIN users u ON u.id = a.user_id
		LEFT JOIN songs sg ON sg.id = a.song_id
		WHERE a.playlist_id = $1
		ORDER BY a.time ASC, a.seq ASC
	`, playlistID)
	if err != nil {
		return PlaylistActivities{}, fmt.Errorf("playlists: activities: %w", err)
	}
	defer rows.Close()

	var logRows []ActivityRow
	for rows.Next() {
		var r ActivityRow
		if err := rows.Scan(&r.Username, &r.Title, &r.Action, &r.Time); err != nil {
			return PlaylistActivities{}, fmt.Errorf("playlists: scan activity: %w", err)
		}
		logRows = append(logRows, r)
	}
	if err := rows.Err(); err != nil {
		return PlaylistActivities{}, fmt.Errorf("playlists: rows: %w", err)
	}
	return MapActivities(playlistID, logRows), nil
}
