package handler

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleAndAvailability(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, request{method: http.MethodPost, path: "/weekly-availability", headers: env.bearer(),
		body: map[string]any{"rows": []map[string]any{
			{"weekday": 1, "start_time": "9", "end_time": "13", "appointment_type": "tutoring"},
		}}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Len(t, decode(t, w)["rows"], 1)

	w = env.do(t, request{method: http.MethodPost, path: "/weekly-availability", headers: env.bearer(),
		body: map[string]any{"rows": []map[string]any{{"weekday": 9, "start_time": "9", "end_time": "13"}}}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, request{method: http.MethodGet, path: "/weekly-availability?type=tutoring", headers: env.bearer()})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 1)

	w = env.do(t, request{method: http.MethodPost, path: "/schedule-blocks", headers: env.bearer(),
		body: map[string]any{"date": "2030-06-03", "time_slot": "12:00", "label": "Lunch"}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	block := decode(t, w)["block"].(map[string]any)
	blockID := strconv.FormatFloat(block["id"].(float64), 'f', 0, 64)

	w = env.do(t, request{method: http.MethodPost, path: "/appointments", body: bookingBody("2030-06-03", 10)})
	require.Equal(t, http.StatusCreated, w.Code)

	// 2030-06-03 is a Monday
	w = env.do(t, request{method: http.MethodGet, path: "/availability?date=2030-06-03&type=tutoring"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []any{"09:00:00", "11:00:00"}, decode(t, w)["slots"])

	// a blocked slot refuses client bookings
	w = env.do(t, request{method: http.MethodPost, path: "/appointments", body: bookingBody("2030-06-03", 12)})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, request{method: http.MethodGet, path: "/schedule-blocks?date=2030-06-03", headers: env.bearer()})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 1)

	w = env.do(t, request{method: http.MethodDelete, path: "/schedule-blocks/" + blockID, headers: env.bearer()})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, request{method: http.MethodGet, path: "/availability?date=2030-06-03&type=tutoring"})
	assert.Equal(t, []any{"09:00:00", "11:00:00", "12:00:00"}, decode(t, w)["slots"])

	w = env.do(t, request{method: http.MethodGet, path: "/availability?date=tomorrow"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
