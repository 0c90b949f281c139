package handler

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemwithlyn/booking/internal/common/cnst"
)

func TestPortalIdentity(t *testing.T) {
	env := newTestEnv(t)
	headers, _ := env.portalUser(t, "ana")

	tests := []struct {
		name    string
		headers map[string]string
		code    int
	}{
		{"no headers", nil, http.StatusUnauthorized},
		{"username mismatch", map[string]string{cnst.XUserID: headers[cnst.XUserID], cnst.XUsername: "eve"}, http.StatusUnauthorized},
		{"admin account", map[string]string{cnst.XUserID: strconv.FormatUint(uint64(env.admin.ID), 10), cnst.XUsername: "lyn"}, http.StatusForbidden},
		{"valid", headers, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, request{method: http.MethodGet, path: "/client/appointments", headers: tt.headers})
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}
}

func TestPortalCancel(t *testing.T) {
	env := newTestEnv(t)
	ana, anaClient := env.portalUser(t, "ana")
	_, bobClient := env.portalUser(t, "bob")
	mine := env.appointment(t, anaClient.ID, "2030-06-03", "09:00:00")
	theirs := env.appointment(t, bobClient.ID, "2030-06-03", "10:00:00")

	w := env.do(t, request{method: http.MethodGet, path: "/client/appointments", headers: ana})
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeList(t, w)
	require.Len(t, list, 1)
	assert.EqualValues(t, mine.ID, list[0]["id"])
	assert.Equal(t, true, list[0]["canCancel"])
	assert.Equal(t, true, list[0]["canReschedule"])

	// another client's appointment looks absent
	w = env.do(t, request{method: http.MethodPost, path: "/client/appointments/" + strconv.Itoa(int(theirs.ID)) + "/cancel", headers: ana})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "E4041", errorCode(t, w))

	w = env.do(t, request{method: http.MethodPost, path: "/client/appointments/" + strconv.Itoa(int(mine.ID)) + "/cancel", headers: ana})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, decode(t, w)["success"])

	w = env.do(t, request{method: http.MethodGet, path: "/client/appointments", headers: ana})
	assert.Empty(t, decodeList(t, w))
}

func TestPortalReschedule(t *testing.T) {
	env := newTestEnv(t)
	ana, anaClient := env.portalUser(t, "ana")
	mine := env.appointment(t, anaClient.ID, "2030-06-03", "09:00:00")
	env.appointment(t, anaClient.ID, "2030-06-04", "09:00:00")
	path := "/client/appointments/" + strconv.Itoa(int(mine.ID)) + "/reschedule"

	w := env.do(t, request{method: http.MethodPost, path: path, headers: ana,
		body: map[string]any{"date": "2030-06-03", "time": "9:00:00"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "E1001", errorCode(t, w))

	w = env.do(t, request{method: http.MethodPost, path: path, headers: ana,
		body: map[string]any{"date": "2030-06-04", "time": 9}})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "E4091", errorCode(t, w))

	w = env.do(t, request{method: http.MethodPost, path: path, headers: ana,
		body: map[string]any{"date": "2030-06-05", "time": "15:00"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	appt := body["appointment"].(map[string]any)
	assert.Equal(t, "2030-06-05", appt["date"])
	assert.Equal(t, "15:00:00", appt["time"])

	w = env.do(t, request{method: http.MethodPost, path: path, headers: ana,
		body: map[string]any{"date": "2030-06-06", "time": "15:00"}})
	assert.Equal(t, http.StatusForbidden, w.Code)
	body = decode(t, w)
	assert.Equal(t, "E3001", body["code"])
	assert.Contains(t, body["error"], "rescheduled")
	assert.NotEmpty(t, body["traceId"])

	w = env.do(t, request{method: http.MethodGet, path: "/client/appointments", headers: ana})
	list := decodeList(t, w)
	require.Len(t, list, 2)
	assert.Equal(t, false, list[1]["canReschedule"])
	assert.Equal(t, true, list[1]["canCancel"])
}
