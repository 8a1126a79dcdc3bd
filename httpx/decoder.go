/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package httpx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"sync"

	"dirpx.dev/errcatalog/dto"
	"dirpx.dev/errcatalog/registry"
)

// DefaultMaxBody caps the error body a Decoder reads.
const DefaultMaxBody = 1 << 20

// Decoder rebuilds errors from HTTP responses written by Writer (or by any
// service speaking the same DTO format).
type Decoder struct {
	// Registry rebuilds the errors. Nil selects a registry over the built-in
	// catalog.
	Registry *registry.Registry
	// MaxBody caps the bytes read from the body; zero means DefaultMaxBody.
	MaxBody int64
}

var defaultRegistry = sync.OnceValue(func() *registry.Registry {
	r, err := registry.NewDefault()
	if err != nil {
		panic(err)
	}
	return r
})

// Decode returns nil for 2xx responses. Otherwise it reads the body as a
// dto.Throwable (XML or JSON by Content-Type) and rebuilds it through the
// registry. A body that is not a DTO yields the error registered for the
// response status, with the trimmed body as message.
//
// Decode does not close resp.Body.
func (d Decoder) Decode(resp *http.Response) error {
	if resp == nil {
		return nil
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	limit := d.MaxBody
	if limit <= 0 {
		limit = DefaultMaxBody
	}
	var raw []byte
	if resp.Body != nil {
		b, err := io.ReadAll(io.LimitReader(resp.Body, limit))
		if err != nil {
			return fmt.Errorf("httpx: read error body: %w", err)
		}
		raw = b
	}

	reg := d.Registry
	if reg == nil {
		reg = defaultRegistry()
	}
	if t, ok := decodeThrowable(resp.Header.Get("Content-Type"), raw); ok {
		return reg.FromDTO(t)
	}
	return reg.ByHTTPStatus(resp.StatusCode, strings.TrimSpace(string(raw)))
}

func decodeThrowable(contentType string, raw []byte) (*dto.Throwable, bool) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, false
	}
	mt, _, _ := mime.ParseMediaType(contentType)

	var t *dto.Throwable
	switch {
	case mt == contentTypeXML || mt == "text/xml":
		x, err := dto.DecodeXML(bytes.NewReader(raw))
		if err != nil {
			return nil, false
		}
		t = x
	default:
		var j dto.Throwable
		if err := json.Unmarshal(raw, &j); err != nil {
			return nil, false
		}
		t = &j
	}
	if t.ClassName == "" && t.Message == "" && t.Cause == nil {
		return nil, false
	}
	return t, true
}
