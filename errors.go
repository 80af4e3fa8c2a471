/*
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package do_while

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrEmptyInvocation is returned when an invocation holds no clauses.
var ErrEmptyInvocation = errors.New("invocation contains no clauses")

// SyntaxError describes a malformed clause. Offset is a byte offset
// within the invocation text; callers mapping invocations back to
// source files use it to recover the line number.
type SyntaxError struct {
	Clause int // zero-based clause index
	Offset int // byte offset within the invocation
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("clause %d: %s", e.Clause+1, e.Msg)
}
