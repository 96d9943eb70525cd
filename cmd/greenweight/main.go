// Command greenweight prints green-weight estimates for southern pines.
//
// Usage:
//
//	greenweight                      # sample table for dbh=10 height=60 mtop=4
//	greenweight estimate --species loblolly --region lcp --dbh 12 --height 70 --mtop 4
//	greenweight sweep --species longleaf --dbh 12 --height 70 --from 2 --to 6 --steps 9
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
