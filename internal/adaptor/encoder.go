package adaptor

import (
	"encoding/json"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// EncoderFactory is constructor type of Encoder
type EncoderFactory func(w io.Writer) Encoder

// Encoder writes records to w given to EncoderFactory
type Encoder interface {
	Encode(v interface{}) error
	Close() error
	Size() int64
	Ext() string
	ContentEncoding() string
}

// Output formats
const (
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
)

// LookupFormat returns encoder and decoder of the format name. Empty name
// means FormatJSON.
func LookupFormat(name string) (EncoderFactory, DecoderFactory, error) {
	switch name {
	case "", FormatJSON:
		return NewJSONEncoder, NewJSONDecoder, nil
	case FormatMsgpack:
		return NewMsgpackEncoder, NewMsgpackDecoder, nil
	default:
		return nil, nil, errors.Errorf("Unsupported format: %s", name)
	}
}

type jsonGzipEncoder struct {
	gw      *gzip.Writer
	enc     *json.Encoder
	counter *sizeCounter
}

func (x *jsonGzipEncoder) Encode(v interface{}) error { return x.enc.Encode(v) }
func (x *jsonGzipEncoder) Close() error               { return x.gw.Close() }
func (x *jsonGzipEncoder) Size() int64                { return x.counter.wroteSize }
func (x *jsonGzipEncoder) Ext() string                { return "jsonl.gz" }
func (x *jsonGzipEncoder) ContentEncoding() string    { return "gzip" }

// NewJSONEncoder creates gzipped JSON lines encoder. It is default encoder of
// session records.
func NewJSONEncoder(w io.Writer) Encoder {
	gw := gzip.NewWriter(w)
	counter := &sizeCounter{wr: gw}
	enc := json.NewEncoder(counter)
	enc.SetEscapeHTML(false)

	return &jsonGzipEncoder{
		gw:      gw,
		counter: counter,
		enc:     enc,
	}
}

type msgpackGzipEncoder struct {
	gw      *gzip.Writer
	enc     *msgpack.Encoder
	counter *sizeCounter
}

func (x *msgpackGzipEncoder) Encode(v interface{}) error { return x.enc.Encode(v) }
func (x *msgpackGzipEncoder) Close() error               { return x.gw.Close() }
func (x *msgpackGzipEncoder) Size() int64                { return x.counter.wroteSize }
func (x *msgpackGzipEncoder) Ext() string                { return "msg.gz" }
func (x *msgpackGzipEncoder) ContentEncoding() string    { return "gzip" }

// NewMsgpackEncoder creates gzipped msgpack stream encoder.
func NewMsgpackEncoder(w io.Writer) Encoder {
	gw := gzip.NewWriter(w)
	counter := &sizeCounter{wr: gw}
	return &msgpackGzipEncoder{
		gw:      gw,
		counter: counter,
		enc:     msgpack.NewEncoder(counter),
	}
}

// sizeCounter counts raw (uncompressed) size of written data.
type sizeCounter struct {
	wr        io.Writer
	wroteSize int64
}

func (x *sizeCounter) Write(p []byte) (int, error) {
	x.wroteSize += int64(len(p))
	return x.wr.Write(p)
}
