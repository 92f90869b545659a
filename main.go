package main

import "absencebot/internal/app"

func main() {
	app.Main()
}
