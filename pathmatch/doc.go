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

// Package pathmatch decides which access rule applies to an HTTP request.
//
// Rules (Matcher) pair an HTTP method and an ant-style path pattern with an
// access mode, roles and IP ranges. Properties prepares the rule list into a
// fixed precedence order (see Compare) and Middleware enforces it on bearer
// tokens, answering with catalog errors for 401 and 403.
package pathmatch
