package adaptor

import (
	"compress/gzip"
	"encoding/json"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// EncoderFactory is interface Encoder constructor
type EncoderFactory func(w io.Writer) Encoder

// Encoder serializes record values to a stream
type Encoder interface {
	Encode(v interface{}) error
	Close() error
	Size() int64
	Ext() string
	ContentEncoding() string
}

type jsonEncoder struct {
	enc     *json.Encoder
	counter *sizeCounter
}

func (x *jsonEncoder) Encode(v interface{}) error { return x.enc.Encode(v) }
func (x *jsonEncoder) Close() error               { return nil }
func (x *jsonEncoder) Size() int64                { return x.counter.wroteSize }
func (x *jsonEncoder) Ext() string                { return "json" }
func (x *jsonEncoder) ContentEncoding() string    { return "" }

// NewJSONEncoder creates newline-delimited JSON encoder. The delivery
// stream's deserializer expects this format.
func NewJSONEncoder(w io.Writer) Encoder {
	counter := &sizeCounter{wr: w}
	return &jsonEncoder{
		counter: counter,
		enc:     json.NewEncoder(counter),
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

// NewMsgpackEncoder creates gzipped msgpack encoder for raw record archive
func NewMsgpackEncoder(w io.Writer) Encoder {
	gw := gzip.NewWriter(w)
	counter := &sizeCounter{wr: gw}
	return &msgpackGzipEncoder{
		gw:      gw,
		counter: counter,
		enc:     msgpack.NewEncoder(counter),
	}
}

type sizeCounter struct {
	wr        io.Writer
	wroteSize int64
}

func (x *sizeCounter) Write(p []byte) (int, error) {
	x.wroteSize += int64(len(p))
	return x.wr.Write(p)
}
