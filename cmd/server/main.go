package main

import "enroll/internal/app/server"

func main() {
	server.Run()
}
