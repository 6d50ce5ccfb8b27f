// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ruby knows the layout and naming conventions of generated Ruby
// client libraries, and assembles the post-processing pipeline applied to
// freshly generated code.
package ruby

import "github.com/iancoleman/strcase"

// ServicePath returns the path segment used for a service in the library's
// lib/ and test/ trees, e.g. "asset" or "secret_manager".
func ServicePath(service string) string {
	return strcase.ToSnake(service)
}

// Namespace returns the Ruby module namespace for a service,
// e.g. "Google::Cloud::Asset".
func Namespace(service string) string {
	return "Google::Cloud::" + strcase.ToCamel(service)
}
