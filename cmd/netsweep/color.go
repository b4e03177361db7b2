// (c) Siemens AG 2026
//
// SPDX-License-Identifier: MIT

package main

import "github.com/muesli/termenv"

var (
	probingStyle   = termenv.Style{}.Foreground(termenv.ANSIYellow)
	reachableStyle = termenv.Style{}.Foreground(termenv.ANSIGreen)
)

var portStyle = termenv.Style{}.Bold()
