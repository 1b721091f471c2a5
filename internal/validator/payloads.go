package validator

// SongPayload is the body of POST /songs and PUT /songs/{id}.
type SongPayload struct {
	Title     string  `json:"title" validate:"required"`
	Year      int     `json:"year" validate:"required,min=1800,notfuture"`
	Genre     string  `json:"genre" validate:"required"`
	Performer string  `json:"performer" validate:"required"`
	Duration  *int    `json:"duration" validate:"omitempty,min=0"`
	AlbumID   *string `json:"albumId" validate:"omitempty"`
}

type AlbumPayload struct {
	Name string `json:"name" validate:"required"`
	Year int    `json:"year" validate:"required,min=1800,notfuture"`
}

// PlaylistPayload carries an optional name; the handler defaults it to "unnamed".
type PlaylistPayload struct {
	Name string `json:"name" validate:"omitempty,max=200"`
}

type PlaylistSongPayload struct {
	SongID string `json:"songId" validate:"required"`
}

type CollaborationPayload struct {
	PlaylistID string `json:"playlistId" validate:"required"`
	UserID     string `json:"userId" validate:"required"`
}

type UserPayload struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required"`
	Fullname string `json:"fullname" validate:"required"`
}

type LoginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenPayload struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}
