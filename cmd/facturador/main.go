// Command facturador opera el documento persistido desde la terminal:
// importa planillas, exporta reportes y levanta el servidor HTTP.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
