package store

import (
	"context"
	"errors"
	"fmt"

	"catalog-service/internal/apperror"

	"github.com/charmbracelet/log"
	"github.com/jackc/pgx/v5"
)

type AlbumsStore struct {
	db     DB
	songs  *SongsStore
	cache  LikesCache
	logger *log.Logger
}

// NewAlbumsStore wires the album queries. cache may be nil, in which case like
// counts are always read from the database.
func NewAlbumsStore(db DB, songs *SongsStore, cache LikesCache, logger *log.Logger) *AlbumsStore {
	return &AlbumsStore{db: db, songs: songs, cache: cache, logger: logger}
}

func (s *AlbumsStore) AddAlbum(ctx context.Context, in AlbumInput) (string, error) {
	var id string
	err := s.db.QueryRow(ctx, `
		INSERT INTO albums (id, name, year)
		VALUES ($1, $2, $3)
		RETURNING id
	`, newID("album"), in.Name, in.Year).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("albums: insert: %w", err)
	}
	if id == "" {
		return "", apperror.Invariant("failed to add album")
	}
	return id, nil
}

// GetAlbumByID returns the album with its songs; an album without songs has an
// empty, non-nil Songs slice.
func (s *AlbumsStore) GetAlbumByID(ctx context.Context, id string) (Album, error) {
	var album Album
	err := s.db.QueryRow(ctx, `
		SELECT id, name, year, cover
		FROM albums
		WHERE id = $1
	`, id).Scan(&album.ID, &album.Name, &album.Year, &album.CoverURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return Album{}, apperror.NotFound("album not found")
	}
	if err != nil {
		return Album{}, fmt.Errorf("albums: get: %w", err)
	}

	songs, err := s.songs.GetSongsByAlbumID(ctx, id)
	if err != nil {
		return Album{}, err
	}
	album.Songs = songs
	return album, nil
}

func (s *AlbumsStore) EditAlbumByID(ctx context.Context, id string, in AlbumInput) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE albums
		SET name = $2,
			year = $3
		WHERE id = $1
	`, id, in.Name, in.Year)
	if err != nil {
		return fmt.Errorf("albums: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("failed to update album, id not found")
	}
	return nil
}

func (s *AlbumsStore) DeleteAlbumByID(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM albums WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("albums: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("failed to delete album, id not found")
	}
	return nil
}

func (s *AlbumsStore) EditAlbumCoverByID(ctx context.Context, id, coverURL string) error {
	tag, err := s.db.Exec(ctx, `UPDATE albums SET cover = $2 WHERE id = $1`, id, coverURL)
	if err != nil {
		return fmt.Errorf("albums: update cover: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("failed to update album cover, id not found")
	}
	return nil
}

func (s *AlbumsStore) LikeAlbum(ctx context.Context, albumID, userID string) error {
	if err := s.albumExists(ctx, albumID); err != nil {
		return err
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO user_album_likes (id, user_id, album_id)
		VALUES ($1, $2, $3)
	`, newID("like"), userID, albumID)
	if isUniqueViolation(err) {
		return apperror.Invariant("album already liked").Wrap(err)
	}
	if isForeignKeyViolation(err) {
		return apperror.NotFound("album not found").Wrap(err)
	}
	if err != nil {
		return fmt.Errorf("albums: like: %w", err)
	}
	return s.invalidateLikes(ctx, albumID)
}

func (s *AlbumsStore) UnlikeAlbum(ctx context.Context, albumID, userID string) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM user_album_likes
		WHERE album_id = $1 AND user_id = $2
	`, albumID, userID)
	if err != nil {
		return fmt.Errorf("albums: unlike: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("like not found")
	}
	return s.invalidateLikes(ctx, albumID)
}

// GetAlbumLikes returns the like count and whether it came from the cache.
func (s *AlbumsStore) GetAlbumLikes(ctx context.Context, albumID string) (int, bool, error) {
	if s.cache != nil {
		n, ok, err := s.cache.GetLikes(ctx, albumID)
		if err != nil {
			s.logger.Warn("likes cache read failed, using database", "album", albumID, "err", err)
		} else if ok {
			return n, true, nil
		}
	}

	var n int
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(l.id)
		FROM albums a
		LEFT JOIN user_album_likes l ON l.album_id = a.id
		WHERE a.id = $1
		GROUP BY a.id
	`, albumID).Scan(&n)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, apperror.NotFound("album not found")
	}
	if err != nil {
		return 0, false, fmt.Errorf("albums: count likes: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetLikes(ctx, albumID, n); err != nil {
			s.logger.Warn("likes cache write failed", "album", albumID, "err", err)
		}
	}
	return n, false, nil
}

func (s *AlbumsStore) albumExists(ctx context.Context, id string) error {
	var found string
	err := s.db.QueryRow(ctx, `SELECT id FROM albums WHERE id = $1`, id).Scan(&found)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NotFound("album not found")
	}
	if err != nil {
		return fmt.Errorf("albums: lookup: %w", err)
	}
	return nil
}

func (s *AlbumsStore) invalidateLikes(ctx context.Context, albumID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.InvalidateLikes(ctx, albumID)
}
