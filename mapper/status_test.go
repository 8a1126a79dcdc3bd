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

package mapper

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"dirpx.dev/errcatalog"
	"dirpx.dev/errcatalog/kind"
	"google.golang.org/grpc/codes"
)

func TestStatusOf(t *testing.T) {
	m, err := New(WithGRPCOverride(kind.Conflict, int(codes.AlreadyExists)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if st := StatusOf(m, nil); st.HTTP != 200 || st.GRPC != codes.OK {
		t.Fatalf("nil: got %+v", st)
	}
	if st := StatusOf(m, errors.New("boom")); st.HTTP != 500 || st.GRPC != codes.Internal {
		t.Fatalf("plain error: got %+v", st)
	}

	wrapped := fmt.Errorf("save: %w", errcatalog.E(kind.Conflict, "dup"))
	if st := StatusOf(m, wrapped); st.HTTP != 409 || st.GRPC != codes.AlreadyExists {
		t.Fatalf("wrapped conflict: got %+v", st)
	}

	// A status carried by the error beats the mapper.
	carried := errcatalog.E(kind.MustParse("ledger.closed"), "closed").WithCodes(0, http.StatusGone)
	if st := StatusOf(m, carried); st.HTTP != 410 || st.GRPC != codes.NotFound {
		t.Fatalf("carried status: got %+v", st)
	}
}
