package catalog

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"

	"catalog-service/internal/apperror"
	"catalog-service/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHandlePostAlbum_YearRange(t *testing.T) {
	tests := []struct {
		name           string
		year           int
		expectedStatus int
	}{
		{name: "Too Old", year: 1700, expectedStatus: http.StatusBadRequest},
		{name: "Future", year: 9999, expectedStatus: http.StatusBadRequest},
		{name: "Lower Bound", year: 1800, expectedStatus: http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil)
			if tt.expectedStatus == http.StatusCreated {
				env.albums.On("AddAlbum", anyCtx, store.AlbumInput{Name: "Viva la Vida", Year: tt.year}).Return("album-1", nil)
			}

			w := env.do(http.MethodPost, "/albums", map[string]any{"name": "Viva la Vida", "year": tt.year}, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestHandleGetAlbum(t *testing.T) {
	env := newTestEnv(t, nil)
	env.albums.On("GetAlbumByID", anyCtx, "album-1").Return(store.Album{
		ID:    "album-1",
		Name:  "Viva la Vida",
		Year:  2008,
		Songs: []store.SongSummary{},
	}, nil)

	w := env.do(http.MethodGet, "/albums/album-1", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"coverUrl":null`)
	assert.Contains(t, w.Body.String(), `"songs":[]`)
}

func TestHandleAlbumLikes(t *testing.T) {
	env := newTestEnv(t, nil)
	auth := env.bearer(t, "user-1")

	env.albums.On("LikeAlbum", anyCtx, "album-1", "user-1").Return(nil).Once()
	env.albums.On("LikeAlbum", anyCtx, "album-1", "user-1").Return(apperror.Invariant("album already liked")).Once()
	env.albums.On("GetAlbumLikes", anyCtx, "album-1").Return(1, false, nil).Once()
	env.albums.On("GetAlbumLikes", anyCtx, "album-1").Return(1, true, nil).Once()
	env.albums.On("UnlikeAlbum", anyCtx, "album-1", "user-1").Return(nil)

	w := env.do(http.MethodPost, "/albums/album-1/likes", nil, auth)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = env.do(http.MethodPost, "/albums/album-1/likes", nil, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodGet, "/albums/album-1/likes", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-Data-Source"))
	var data struct {
		Likes int `json:"likes"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &data))
	assert.Equal(t, 1, data.Likes)

	w = env.do(http.MethodGet, "/albums/album-1/likes", nil, "")
	assert.Equal(t, "cache", w.Header().Get("X-Data-Source"))

	w = env.do(http.MethodDelete, "/albums/album-1/likes", nil, auth)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleAlbumLikes_RequiresAuth(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodPost, "/albums/album-1/likes", nil, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

var testPNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func coverRequest(t *testing.T, field, filename, contentType string, content []byte) *http.Request {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/albums/album-1/covers", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHandlePostCover(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.albums.On("EditAlbumCoverByID", anyCtx, "album-1", mock.MatchedBy(func(url string) bool {
			return strings.HasPrefix(url, "http://localhost:5000/uploads/images/") && strings.HasSuffix(url, "-cover.png")
		})).Return(nil)

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, coverRequest(t, "cover", "cover.png", "image/png", testPNG))

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var data struct {
			CoverURL string `json:"coverUrl"`
		}
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &data))

		name := strings.TrimPrefix(data.CoverURL, "http://localhost:5000/uploads/images/")
		_, err := os.Stat(env.covers.Dir() + "/" + name)
		assert.NoError(t, err)

		served := httptest.NewRecorder()
		env.router.ServeHTTP(served, httptest.NewRequest(http.MethodGet, "/uploads/images/"+name, nil))
		assert.Equal(t, http.StatusOK, served.Code)
		assert.Equal(t, testPNG, served.Body.Bytes())
	})

	t.Run("Wrong Declared Type", func(t *testing.T) {
		env := newTestEnv(t, nil)

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, coverRequest(t, "cover", "cover.txt", "text/plain", []byte("hello")))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Content Is Not An Image", func(t *testing.T) {
		env := newTestEnv(t, nil)

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, coverRequest(t, "cover", "cover.png", "image/png", []byte("plain text pretending")))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Missing Field", func(t *testing.T) {
		env := newTestEnv(t, nil)

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, coverRequest(t, "file", "cover.png", "image/png", testPNG))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Too Large", func(t *testing.T) {
		env := newTestEnv(t, nil)
		big := append(append([]byte{}, testPNG...), make([]byte, maxCoverBytes)...)

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, coverRequest(t, "cover", "cover.png", "image/png", big))

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("Unknown Album Removes File", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.albums.On("EditAlbumCoverByID", anyCtx, "album-1", mock.Anything).
			Return(apperror.NotFound("failed to update album cover, id not found"))

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, coverRequest(t, "cover", "cover.png", "image/png", testPNG))

		assert.Equal(t, http.StatusNotFound, w.Code)
		entries, err := os.ReadDir(env.covers.Dir())
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
