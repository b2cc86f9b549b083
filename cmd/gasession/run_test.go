package main

import (
	"testing"
	"time"

	"github.com/m-mizutani/gasession/internal/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	now := time.Date(2020, 1, 3, 1, 0, 0, 0, time.UTC)

	t.Run("Yesterday by default", func(tt *testing.T) {
		d, err := parseDate("", now)
		require.NoError(tt, err)
		assert.Equal(tt, "2020-01-02", d.Format("2006-01-02"))
	})

	t.Run("Given date", func(tt *testing.T) {
		d, err := parseDate("2019-12-31", now)
		require.NoError(tt, err)
		assert.Equal(tt, time.Date(2019, 12, 31, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("Invalid date", func(tt *testing.T) {
		_, err := parseDate("2019/12/31", now)
		assert.Error(tt, err)
	})
}

func TestGuessFormat(t *testing.T) {
	assert.Equal(t, adaptor.FormatMsgpack, guessFormat("a/b.msg.gz"))
	assert.Equal(t, adaptor.FormatJSON, guessFormat("a/b.jsonl.gz"))
}
