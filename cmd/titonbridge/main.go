/*
titonbridge
Copyright (c) 2024-2026 Vallox titonbridge contributors
MIT License
*/

package main

import (
	"log"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
