package broadcast

import (
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
)

// Encode renders evt as one JSON frame. The returned slice is owned by the
// caller.
func Encode(evt Event) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(evt); err != nil {
		return nil, fmt.Errorf("encode event %s: %w", evt.Type, err)
	}

	out := buf.Bytes()
	if n := len(out); n > 0 && out[n-1] == '\n' {
		out = out[:n-1]
	}
	return append([]byte(nil), out...), nil
}

// Decode parses a frame produced by Encode. Data is left as generic JSON.
func Decode(raw []byte) (Event, error) {
	var evt Event
	if err := sonic.Unmarshal(raw, &evt); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	return evt, nil
}
