// Command vpk0info prints a vpk0 artifact's header and both Huffman trees
// without decoding its body.
package main

import (
	"fmt"
	"os"

	"github.com/retrocodec/vpk0"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <path-to-vpk0-file>\n", os.Args[0])
		os.Exit(1)
	}

	if err := run(os.Args[1]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	header, offsetTree, lengthTree, err := vpk0.Inspect(data)
	if err != nil {
		return err
	}

	fmt.Printf("decompressed size: %d\n", header.Size)
	fmt.Printf("method:            %s\n", header.Method)
	fmt.Printf("offset tree:       %s\n", offsetTree)
	fmt.Printf("length tree:       %s\n", lengthTree)

	return nil
}
