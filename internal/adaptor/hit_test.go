package adaptor_test

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/m-mizutani/gasession/internal/adaptor"
	"github.com/m-mizutani/gasession/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readHits(t *testing.T, r io.Reader) []*models.Hit {
	dec, err := adaptor.NewHitDecoder(r)
	require.NoError(t, err)

	var hits []*models.Hit
	for {
		hit, err := dec.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		hits = append(hits, hit)
	}
	return hits
}

func TestHitDecoder(t *testing.T) {
	t.Run("Fields and timestamp", func(tt *testing.T) {
		src := strings.Join([]string{
			`{"timestamp":"2020-01-02T03:04:05Z","t":"pageview","cd5":"s1","ev":3,"ni":null,"nested":{"a":1}}`,
			``,
			`{"timestamp":1577934245,"t":"event"}`,
			`{"timestamp":1577934245500,"t":"event"}`,
			`{"timestamp":"broken","t":"event"}`,
			`{"t":"event","flag":true}`,
		}, "\n")

		hits := readHits(tt, strings.NewReader(src))
		require.Equal(tt, 5, len(hits))

		expected := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
		assert.True(tt, expected.Equal(hits[0].Timestamp))
		assert.Equal(tt, "pageview", hits[0].Fields["t"])
		assert.Equal(tt, "s1", hits[0].Fields["cd5"])
		assert.Equal(tt, 3.0, hits[0].Fields["ev"])
		_, hasNull := hits[0].Fields["ni"]
		assert.False(tt, hasNull)
		_, hasNested := hits[0].Fields["nested"]
		assert.False(tt, hasNested)
		_, hasTimestamp := hits[0].Fields["timestamp"]
		assert.False(tt, hasTimestamp)

		assert.True(tt, expected.Equal(hits[1].Timestamp))
		assert.True(tt, expected.Add(500*time.Millisecond).Equal(hits[2].Timestamp))
		assert.False(tt, hits[3].HasTimestamp())
		assert.False(tt, hits[4].HasTimestamp())
		assert.Equal(tt, true, hits[4].Fields["flag"])
	})

	t.Run("Gzipped stream", func(tt *testing.T) {
		buf := &bytes.Buffer{}
		gw := gzip.NewWriter(buf)
		_, err := gw.Write([]byte(`{"timestamp":"2020-01-02T03:04:05+09:00","cd5":"s1"}` + "\n"))
		require.NoError(tt, err)
		require.NoError(tt, gw.Close())

		hits := readHits(tt, buf)
		require.Equal(tt, 1, len(hits))
		assert.Equal(tt, "s1", hits[0].Fields["cd5"])
		assert.Equal(tt, 18, hits[0].Timestamp.UTC().Hour())
	})

	t.Run("Broken line", func(tt *testing.T) {
		dec, err := adaptor.NewHitDecoder(strings.NewReader(`{"t":"pageview"}` + "\n" + `{"t":`))
		require.NoError(tt, err)

		_, err = dec.Next()
		require.NoError(tt, err)
		_, err = dec.Next()
		require.Error(tt, err)
		assert.Contains(tt, err.Error(), "line 2")
	})

	t.Run("Not object", func(tt *testing.T) {
		dec, err := adaptor.NewHitDecoder(strings.NewReader(`[1,2]`))
		require.NoError(tt, err)
		_, err = dec.Next()
		assert.Error(tt, err)
	})
}
