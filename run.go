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

// Run executes body, then evaluates cond, repeating both while cond
// holds. body always runs at least once, and cond is evaluated
// immediately after each run of body. It is the closure form of a
// plain do-while clause.
func Run(body func(), cond func() bool) {
	for {
		body()
		if !cond() {
			return
		}
	}
}

// RunBetween is Run with a separator: between runs after each true
// evaluation of cond, before the next run of body. It never runs after
// the final false evaluation, so for a loop of n iterations between
// runs exactly n-1 times.
func RunBetween(body func(), cond func() bool, between func()) {
	for {
		body()
		if !cond() {
			return
		}
		between()
	}
}
