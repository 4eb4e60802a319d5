// Package restyutil dumps the http traffic of resty clients, one file per
// request and response, for debugging scrapers offline.
package restyutil

import (
	"strconv"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

type InstrumentOutput interface {
	Write(id string, contents string)
}

// Dump numbers the messages of every client it instruments in a single
// sequence, so clients sharing an output never reuse an id.
type Dump struct {
	output    InstrumentOutput
	idcounter atomic.Uint64
}

func NewDump(output InstrumentOutput) *Dump {
	return &Dump{output: output}
}

// Client writes every response client gets to the output of d. A nil Dump
// or a Dump without output does nothing.
func (d *Dump) Client(client *resty.Client) {
	if d == nil || d.output == nil {
		return
	}
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		id := strconv.FormatUint(d.idcounter.Add(1), 10)
		d.output.Write(id, formatHttpMessage(res))
		return nil
	})
}
