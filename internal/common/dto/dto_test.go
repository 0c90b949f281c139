package dto

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexTimeUnmarshal(t *testing.T) {
	cases := map[string]FlexTime{
		`"14:30"`:    "14:30",
		`"08:15:00"`: "08:15:00",
		`9`:          "9",
		`"9"`:        "9",
		`null`:       "",
	}
	for in, want := range cases {
		var got FlexTime
		require.NoError(t, json.Unmarshal([]byte(in), &got), in)
		assert.Equal(t, want, got, in)
	}

	var bad FlexTime
	assert.Error(t, json.Unmarshal([]byte(`{"h":9}`), &bad))
}

func TestCreateAppointmentRequestDecode(t *testing.T) {
	body := `{
		"title": "Algebra", "client_name": "Sam", "client_email": "sam@example.com",
		"date": "2024-06-03", "time": 9, "amount_paid": "45.00", "price": 50,
		"recurrence": "weekly", "occurrences": 2, "weekdays": ["Monday", "Wednesday"],
		"isAdmin": true
	}`
	var req CreateAppointmentRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	assert.Equal(t, FlexTime("9"), req.Time)
	assert.True(t, req.AmountPaid.Equal(decimal.NewFromInt(45)))
	assert.True(t, req.Price.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, []string{"Monday", "Wednesday"}, req.Weekdays)
	assert.True(t, req.IsAdmin)
}

func TestUpdateAppointmentRequestIgnoresUnknownKeys(t *testing.T) {
	var req UpdateAppointmentRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"New","paid":true,"client_cancel_count":0}`), &req))
	require.NotNil(t, req.Title)
	assert.Equal(t, "New", *req.Title)
	assert.Nil(t, req.Date)
	assert.Nil(t, req.ClientID)
}
