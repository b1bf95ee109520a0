package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jsphweid/chordex/chord"
	"github.com/jsphweid/chordex/model"
	"github.com/stretchr/testify/assert"
)

func newTestRouter() http.Handler {
	return NewRouter(chord.NewAnalyzer(chord.DefaultCatalog()), nil, []string{"http://piano.test"})
}

func createAnalyzeReqBody(notes model.Notes) io.Reader {
	data, err := json.Marshal(model.AnalyzeRequestBody{Notes: notes})
	if err != nil {
		panic(err.Error())
	}
	return bytes.NewReader(data)
}

func TestAnalyzeMinorSeventh(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/analyze", createAnalyzeReqBody(model.Notes{62, 65, 69, 72}))
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, req)

	assert := assert.New(t)
	assert.Equal(http.StatusOK, w.Code)
	assert.Equal("application/json", w.Header().Get("Content-Type"))

	var res []model.ChordMatch
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &res))
	if assert.Len(res, 2) {
		assert.Equal(model.ChordMatch{
			Shape:     "Minor 7th",
			Notation:  "m7",
			Chord:     "Dm7",
			Root:      "D",
			Bass:      "D",
			Inversion: 0,
		}, res[0])
	}
}

func TestAnalyzeNothingIsAnEmptyList(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/analyze", createAnalyzeReqBody(model.Notes{60}))
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, req)

	assert := assert.New(t)
	assert.Equal(http.StatusOK, w.Code)
	assert.JSONEq("[]", w.Body.String())
}

func TestAnalyzeBadBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader([]byte("{nope")))
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, req)

	assert := assert.New(t)
	assert.Equal(http.StatusBadRequest, w.Code)

	var res model.ErrorResponse
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &res))
	assert.Contains(res.Error, "could not parse request body")
}

func TestAnalyzeOnlyAcceptsPost(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/analyze", nil)
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestCatalog(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/catalog", nil)
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, req)

	assert := assert.New(t)
	assert.Equal(http.StatusOK, w.Code)

	var res []model.ChordShape
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &res))
	assert.Len(res, 28)
	assert.Equal(model.ChordShape{Name: "Major", Notation: "maj", Intervals: []int{0, 4, 7}}, res[0])
}

func TestCorsPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/analyze", nil)
	req.Header.Set("Origin", "http://piano.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, req)

	assert.Equal(t, "http://piano.test", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCorsRejectsUnknownOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/analyze", createAnalyzeReqBody(model.Notes{60, 67}))
	req.Header.Set("Origin", "http://evil.test")
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
