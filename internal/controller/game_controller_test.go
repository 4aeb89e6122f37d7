package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"escape_room_backend/internal/repository"
	"escape_room_backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newGameRouter wires the public game routes against the in-memory store
// and the sample workbook (one room, "Szoba1", three questions).
func newGameRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	workbook := service.NewWorkbookService()
	data, err := workbook.Template()
	require.NoError(t, err)
	require.NoError(t, workbook.LoadBytes(data))

	game := service.NewGameService(repository.NewMemoryProgressRepository(), workbook, 0)
	ctrl := NewGameController(game, workbook)

	router := gin.New()
	router.GET("/api/rooms", ctrl.ListRooms)
	router.GET("/api/rooms/:room/state", ctrl.GetState)
	router.POST("/api/rooms/:room/answers", ctrl.SubmitAnswer)
	return router
}

type envelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func doGet(t *testing.T, router *gin.Engine, path string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func doSubmit(t *testing.T, router *gin.Engine, room, team, answer string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	body, err := json.Marshal(gin.H{"teamId": team, "answer": answer})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/rooms/"+room+"/answers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func asMap(t *testing.T, v interface{}) map[string]interface{} {
	t.Helper()
	m, ok := v.(map[string]interface{})
	require.True(t, ok, "expected JSON object, got %T", v)
	return m
}

func TestListRooms(t *testing.T) {
	router := newGameRouter(t)

	w, env := doGet(t, router, "/api/rooms")

	assert.Equal(t, http.StatusOK, w.Code)
	rooms, ok := env.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, rooms, 1)
	room := asMap(t, rooms[0])
	assert.Equal(t, "Szoba1", room["name"])
	assert.Equal(t, float64(3), room["totalQuestions"])
}

func TestGetStateUnknownRoomNotFound(t *testing.T) {
	router := newGameRouter(t)

	w, _ := doGet(t, router, "/api/rooms/Nincs/state?team=csapat1")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetStateRequiresTeam(t *testing.T) {
	router := newGameRouter(t)

	w, _ := doGet(t, router, "/api/rooms/Szoba1/state")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doGet(t, router, "/api/rooms/Szoba1/state?team=%20%20")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitUnknownRoomNotFound(t *testing.T) {
	router := newGameRouter(t)

	w, _ := doSubmit(t, router, "Nincs", "csapat1", "lila")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitRequiresTeam(t *testing.T) {
	router := newGameRouter(t)

	w, _ := doSubmit(t, router, "Szoba1", "", "lila")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitWrongAnswerLocksTeam(t *testing.T) {
	router := newGameRouter(t)

	w, env := doSubmit(t, router, "Szoba1", "csapat1", "rossz")

	assert.Equal(t, http.StatusOK, w.Code)
	result := asMap(t, env.Data)
	assert.Equal(t, false, result["correct"])

	state := asMap(t, result["state"])
	assert.Equal(t, true, state["locked"])
	assert.Equal(t, float64(60), state["lockTotalSeconds"])
	remaining, ok := state["remainingSeconds"].(float64)
	require.True(t, ok)
	assert.Greater(t, remaining, float64(0))
	assert.LessOrEqual(t, remaining, float64(60))
}

func TestSubmitWhileLockedReturnsCountdown(t *testing.T) {
	router := newGameRouter(t)

	w, _ := doSubmit(t, router, "Szoba1", "csapat1", "rossz")
	require.Equal(t, http.StatusOK, w.Code)

	// The second attempt is not evaluated, even with the right answer;
	// the response is the countdown the client should render.
	w, env := doSubmit(t, router, "Szoba1", "csapat1", "lila")

	assert.Equal(t, http.StatusLocked, w.Code)
	assert.Equal(t, "locked", env.Message)

	state := asMap(t, env.Data)
	assert.Equal(t, true, state["locked"])
	assert.Equal(t, float64(0), state["questionIndex"])
	assert.Equal(t, float64(60), state["lockTotalSeconds"])
	remaining, ok := state["remainingSeconds"].(float64)
	require.True(t, ok)
	assert.Greater(t, remaining, float64(0))
}

func TestSubmitToCompletedRoomConflict(t *testing.T) {
	router := newGameRouter(t)

	for _, answer := range []string{"lila", "kék", "ALPHA07"} {
		w, env := doSubmit(t, router, "Szoba1", "csapat1", answer)
		require.Equal(t, http.StatusOK, w.Code)
		result := asMap(t, env.Data)
		require.Equal(t, true, result["correct"], "answer %q should advance", answer)
	}

	w, env := doGet(t, router, "/api/rooms/Szoba1/state?team=csapat1")
	require.Equal(t, http.StatusOK, w.Code)
	state := asMap(t, env.Data)
	assert.Equal(t, true, state["completed"])

	w, _ = doSubmit(t, router, "Szoba1", "csapat1", "lila")
	assert.Equal(t, http.StatusConflict, w.Code)
}
