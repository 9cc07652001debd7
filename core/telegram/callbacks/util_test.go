package callbacks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	tele "gopkg.in/telebot.v4"
)

func TestParseCallbackData(t *testing.T) {
	cases := []struct {
		name    string
		data    string
		unique  string
		payload string
	}{
		{"key and payload", "\\freq_page|2", "req_page", "2"},
		{"key only", "\\fshow_help", "show_help", ""},
		{"no prefix", "del_req|42", "del_req", "42"},
		{"empty payload", "\\frole|", "role", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			unique, payload := ParseCallbackData(&tele.Callback{Data: tc.data})
			assert.Equal(t, tc.unique, unique)
			assert.Equal(t, tc.payload, payload)
		})
	}
}

func TestParseCallbackDataNil(t *testing.T) {
	unique, payload := ParseCallbackData(nil)
	assert.Empty(t, unique)
	assert.Empty(t, payload)
}
