package main

import (
	"log"
	"os"

	"github.com/viant/clientcredentials/cmd"
)

func main() {
	if err := cmd.Run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
