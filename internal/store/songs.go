package store

import (
	"context"
	"errors"
	"fmt"

	"catalog-service/internal/apperror"

	"github.com/jackc/pgx/v5"
)

type SongsStore struct {
	db DB
}

func NewSongsStore(db DB) *SongsStore {
	return &SongsStore{db: db}
}

func (s *SongsStore) AddSong(ctx context.Context, in SongInput) (string, error) {
	var id string
	err := s.db.QueryRow(ctx, `
		INSERT INTO songs (id, title, year, performer, genre, duration, album_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, newID("song"), in.Title, in.Year, in.Performer, in.Genre, in.Duration, in.AlbumID).Scan(&id)
	if isForeignKeyViolation(err) {
		return "", apperror.NotFound("album not found").Wrap(err)
	}
	if err != nil {
		return "", fmt.Errorf("songs: insert: %w", err)
	}
	if id == "" {
		return "", apperror.Invariant("failed to add song")
	}
	return id, nil
}

func (s *SongsStore) GetSongs(ctx context.Context, f SongFilter) ([]SongSummary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, performer
		FROM songs
		WHERE ($1::text = '' OR title ILIKE '%' || $1 || '%')
		  AND ($2::text = '' OR performer ILIKE '%' || $2 || '%')
		ORDER BY title, id
	`, f.Title, f.Performer)
	if err != nil {
		return nil, fmt.Errorf("songs: list: %w", err)
	}
	return scanSongSummaries(rows)
}

func (s *SongsStore) GetSongByID(ctx context.Context, id string) (Song, error) {
	var song Song
	err := s.db.QueryRow(ctx, `
		SELECT id, title, year, performer, genre, duration, album_id
		FROM songs
		WHERE id = $1
	`, id).Scan(
		&song.ID,
		&song.Title,
		&song.Year,
		&song.Performer,
		&song.Genre,
		&song.Duration,
		&song.AlbumID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Song{}, apperror.NotFound("song not found")
	}
	if err != nil {
		return Song{}, fmt.Errorf("songs: get: %w", err)
	}
	return song, nil
}

// GetSongsByAlbumID lists the songs referencing an album.
func (s *SongsStore) GetSongsByAlbumID(ctx context.Context, albumID string) ([]SongSummary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, performer
		FROM songs
		WHERE album_id = $1
		ORDER BY title, id
	`, albumID)
	if err != nil {
		return nil, fmt.Errorf("songs: list by album: %w", err)
	}
	return scanSongSummaries(rows)
}

func (s *SongsStore) EditSongByID(ctx context.Context, id string, in SongInput) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE songs
		SET title = $2,
			year = $3,
			performer = $4,
			genre = $5,
			duration = $6,
			album_id = $7
		WHERE id = $1
	`, id, in.Title, in.Year, in.Performer, in.Genre, in.Duration, in.AlbumID)
	if isForeignKeyViolation(err) {
		return apperror.NotFound("album not found").Wrap(err)
	}
	if err != nil {
		return fmt.Errorf("songs: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("failed to update song, id not found")
	}
	return nil
}

func (s *SongsStore) DeleteSongByID(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM songs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("songs: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("failed to delete song, id not found")
	}
	return nil
}

func scanSongSummaries(rows pgx.Rows) ([]SongSummary, error) {
	defer rows.Close()

	songs := []SongSummary{}
	for rows.Next() {
		var s SongSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Performer); err != nil {
			return nil, fmt.Errorf("songs: scan: %w", err)
		}
		songs = append(songs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("songs: rows: %w", err)
	}
	return songs, nil
}
