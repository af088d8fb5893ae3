package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel-backoffice/services"

	"github.com/gin-gonic/gin"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{services.ErrInvalidDates, http.StatusBadRequest},
		{fmt.Errorf("%w: bad", services.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("%w: room 4", services.ErrNotFound), http.StatusNotFound},
		{services.ErrRoomConflict, http.StatusConflict},
		{services.ErrAlreadyExists, http.StatusConflict},
		{fmt.Errorf("%w: cancelled", services.ErrInvalidState), http.StatusUnprocessableEntity},
		{services.ErrInvalidCredentials, http.StatusForbidden},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.err), tc.err.Error())
	}
}

type envelope struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Error   string `json:"error"`
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, hook := logtest.NewNullLogger()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/reservations", nil)
	respondError(c, log, services.ErrRoomConflict)

	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, body.Success)
	assert.Equal(t, "room_conflict", body.Code)
	assert.Empty(t, hook.Entries)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/invoices", nil)
	respondError(c, log, errors.New("connection reset"))

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal", body.Code)
	assert.NotContains(t, body.Error, "connection reset")
	require.Len(t, hook.Entries, 1)
}

func TestParseID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for raw, want := range map[string]bool{"12": true, "0": false, "-3": false, "abc": false, "": false} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: raw}}
		id, ok := parseID(c, "id")
		assert.Equal(t, want, ok, raw)
		if ok {
			assert.EqualValues(t, 12, id)
		} else {
			assert.Equal(t, http.StatusBadRequest, w.Code)
		}
	}
}

func TestQueryID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?room_id=", nil)
	id, ok := queryID(c, "room_id")
	assert.True(t, ok)
	assert.Nil(t, id)

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?room_id=7", nil)
	id, ok = queryID(c, "room_id")
	require.True(t, ok)
	assert.EqualValues(t, 7, *id)

	w := httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?room_id=x", nil)
	_, ok = queryID(c, "room_id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNumberText(t *testing.T) {
	assert.Equal(t, "", numberText(nil))
	assert.Equal(t, "12.5", numberText("12.5"))
	assert.Equal(t, "0.1", numberText(0.1))
	assert.Equal(t, "40", numberText(float64(40)))
	assert.Equal(t, "true", numberText(true))
}
