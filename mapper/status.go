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
	"dirpx.dev/errcatalog"
	"dirpx.dev/errcatalog/apis"
	"dirpx.dev/errcatalog/kind"
	"google.golang.org/grpc/codes"
)

// StatusOf resolves the transport statuses of err. Errors without a kind are
// treated as kind.Generic. An HTTP status carried by the error itself wins
// over the mapper; its gRPC code is then derived from that status unless the
// mapper produced something more specific than Internal.
//
// A nil err yields 200 / OK.
func StatusOf(m apis.Mapper, err error) apis.Status {
	if err == nil {
		return apis.Status{HTTP: 200, GRPC: codes.OK}
	}
	k := errcatalog.KindOf(err)
	if k == kind.Empty {
		k = kind.Generic
	}
	st := m.Status(k)
	if carried := errcatalog.HTTPStatusOf(err); carried != 0 && carried != st.HTTP {
		st.HTTP = carried
		if st.GRPC == codes.Internal && carried < 500 {
			st.GRPC = GRPCFromHTTP(carried)
		}
	}
	return st
}
