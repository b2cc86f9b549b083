package adaptor

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// DecoderFactory is constructor type of Decoder
type DecoderFactory func(r io.ReadCloser) Decoder

// Decoder reads records encoded by Encoder. Decode returns io.EOF at the end
// of stream.
type Decoder interface {
	Decode(v interface{}) error
}

var gzipMagic = []byte{0x1f, 0x8b}

// decompress wraps r by gzip reader if r starts with gzip magic bytes. S3 may
// return decompressed body for an object with gzip Content-Encoding.
func decompress(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(gzipMagic))
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "Fail to read head of stream")
	}

	if len(head) == len(gzipMagic) && head[0] == gzipMagic[0] && head[1] == gzipMagic[1] {
		gr, err := gzip.NewReader(br)
		if err != nil {
			return nil, errors.Wrap(err, "Fail to create gzip reader")
		}
		return gr, nil
	}

	return br, nil
}

type jsonDecoder struct {
	src io.Reader
	dec *json.Decoder
}

func (x *jsonDecoder) Decode(v interface{}) error {
	if x.dec == nil {
		r, err := decompress(x.src)
		if err != nil {
			return err
		}
		x.dec = json.NewDecoder(r)
	}
	return x.dec.Decode(v)
}

// NewJSONDecoder creates decoder of JSON lines with or without gzip.
func NewJSONDecoder(r io.ReadCloser) Decoder {
	return &jsonDecoder{src: r}
}

type msgpackDecoder struct {
	src io.Reader
	dec *msgpack.Decoder
}

func (x *msgpackDecoder) Decode(v interface{}) error {
	if x.dec == nil {
		r, err := decompress(x.src)
		if err != nil {
			return err
		}
		x.dec = msgpack.NewDecoder(r)
	}
	return x.dec.Decode(v)
}

// NewMsgpackDecoder creates decoder of msgpack stream with or without gzip.
func NewMsgpackDecoder(r io.ReadCloser) Decoder {
	return &msgpackDecoder{src: r}
}

// DecoderByName chooses decoder by file name. Name having "msg" extension is
// decoded as msgpack, others are JSON lines.
func DecoderByName(name string) DecoderFactory {
	if strings.HasSuffix(name, ".msg") || strings.HasSuffix(name, ".msg.gz") {
		return NewMsgpackDecoder
	}
	return NewJSONDecoder
}
