// SPDX-License-Identifier: MPL-2.0

// Command spss-wrapper launches IBM SPSS through Bottles on Linux.
package main

import cmd "github.com/spsswrap/spss-wrapper/cmd/spss-wrapper"

func main() {
	cmd.Execute()
}
