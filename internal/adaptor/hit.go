package adaptor

import (
	"bufio"
	"io"
	"time"

	"github.com/m-mizutani/gasession/pkg/models"
	"github.com/pkg/errors"
	"github.com/valyala/fastjson"
)

const (
	// HitTimestampKey is key of timestamp in a hit row
	HitTimestampKey = "timestamp"

	hitLineBufferSize = 64 * 1024
	hitLineMaxSize    = 16 * 1024 * 1024

	// epoch value larger than this is treated as milliseconds
	epochMilliThreshold = 1e12
)

var hitTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05.999999999 MST",
}

// HitDecoder reads hit rows in JSON lines format. The stream can be gzipped.
type HitDecoder struct {
	scanner *bufio.Scanner
	parser  fastjson.Parser
	line    int
}

// NewHitDecoder is constructor of HitDecoder
func NewHitDecoder(r io.Reader) (*HitDecoder, error) {
	src, err := decompress(r)
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, hitLineBufferSize), hitLineMaxSize)

	return &HitDecoder{scanner: scanner}, nil
}

// Next returns a hit of next line. io.EOF is returned at the end of stream.
// Blank lines are skipped.
func (x *HitDecoder) Next() (*models.Hit, error) {
	for x.scanner.Scan() {
		x.line++
		raw := x.scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		v, err := x.parser.ParseBytes(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "Fail to parse hit row at line %d", x.line)
		}

		hit, err := ValueToHit(v)
		if err != nil {
			return nil, errors.Wrapf(err, "Invalid hit row at line %d", x.line)
		}
		return hit, nil
	}

	if err := x.scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "Fail to read hit rows")
	}
	return nil, io.EOF
}

// ValueToHit converts a JSON object to Hit. Null, object and array values are
// ignored. A number is stored as float64.
func ValueToHit(v *fastjson.Value) (*models.Hit, error) {
	obj, err := v.Object()
	if err != nil {
		return nil, errors.Wrap(err, "Hit row must be JSON object")
	}

	var ts time.Time
	fields := map[string]interface{}{}

	obj.Visit(func(key []byte, value *fastjson.Value) {
		k := string(key)
		if k == HitTimestampKey {
			ts = parseHitTimestamp(value)
			return
		}

		switch value.Type() {
		case fastjson.TypeString:
			fields[k] = string(value.GetStringBytes())
		case fastjson.TypeNumber:
			fields[k] = value.GetFloat64()
		case fastjson.TypeTrue:
			fields[k] = true
		case fastjson.TypeFalse:
			fields[k] = false
		}
	})

	return models.NewHit(ts, fields), nil
}

// parseHitTimestamp accepts RFC3339 string or epoch seconds/milliseconds.
// Zero time is returned for unparsable value.
func parseHitTimestamp(v *fastjson.Value) time.Time {
	switch v.Type() {
	case fastjson.TypeNumber:
		n := v.GetFloat64()
		if n <= 0 {
			return time.Time{}
		}
		if n >= epochMilliThreshold {
			return time.Unix(0, int64(n)*int64(time.Millisecond)).UTC()
		}
		sec := int64(n)
		return time.Unix(sec, int64((n-float64(sec))*float64(time.Second))).UTC()

	case fastjson.TypeString:
		s := string(v.GetStringBytes())
		for _, layout := range hitTimeLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts
			}
		}
		logger.WithField("timestamp", s).Debug("Unparsable timestamp")
	}

	return time.Time{}
}
